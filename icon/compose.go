package icon

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	svg "github.com/ajstarks/svgo"

	"icon-generator/models"
)

var (
	xmlDeclRe = regexp.MustCompile(`<\?xml[^>]*\?>\s*`)
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>|</svg\s*>`)
)

// innerMarkup strips XML declarations and <svg> wrapper tags from source art
// so only the graphical content gets nested, avoiding invalid nested document
// declarations.
func innerMarkup(markup string) string {
	markup = xmlDeclRe.ReplaceAllString(markup, "")
	return strings.TrimSpace(svgTagRe.ReplaceAllString(markup, ""))
}

// flagLayout returns the inner flag diameter and the diagonal offset of the
// second circle for a canvas size.
func flagLayout(size int) (diameter, offset int) {
	if size == 56 {
		return 38, 18
	}
	return 66, 34
}

// CombineFlags composes two circular-clipped flags with a diagonal overlap on
// a size x size canvas. A non-nil badge switches the circles to the fixed
// 66-diameter layout on 100x100 proportions and overlays the badge at the
// bottom-left edge. Output is byte-identical for identical inputs.
func CombineFlags(flag1, flag2 string, size int, badge *models.BadgeAsset) string {
	diameter, offset := flagLayout(size)
	logical := size
	if badge != nil {
		diameter, offset = flagLayout(100)
		logical = 100
	}
	center := float64(diameter) / 2
	radius := center - 0.5

	var buf bytes.Buffer
	c := svg.New(&buf)
	c.Startview(size, size, 0, 0, logical, logical)

	c.Def()
	c.ClipPath(`id="circleClip"`)
	circle(c, center, radius, "")
	c.ClipEnd()
	c.DefEnd()

	clippedFlag(c, flag1, 0, diameter, center, radius)
	clippedFlag(c, flag2, offset, diameter, center, radius)

	if badge != nil {
		embedBadge(c, *badge, logical)
	}

	c.End()
	return buf.String()
}

// clippedFlag nests one flag at its native 512 viewBox scaled to the inner
// diameter, clipped to the shared circle, with a light-gray edge ring on top.
func clippedFlag(c *svg.SVG, art string, offset, diameter int, center, radius float64) {
	c.Gtransform(fmt.Sprintf("translate(%d,%d)", offset, offset))
	c.Group(`clip-path="url(#circleClip)"`)
	fmt.Fprintf(c.Writer, `<svg width="%d" height="%d" viewBox="0 0 512 512">%s</svg>`,
		diameter, diameter, innerMarkup(art))
	c.Gend()
	circle(c, center, radius, ` fill="none" stroke="#EAEAEA" stroke-width="1"`)
	c.Gend()
}

// circle writes the clip/ring circle directly: its radius sits on a half-unit
// boundary, which the integer svgo primitives cannot express.
func circle(c *svg.SVG, center, radius float64, attrs string) {
	fmt.Fprintf(c.Writer, `<circle cx="%g" cy="%g" r="%g"%s />`+"\n", center, center, radius, attrs)
}

// CryptoIcon composes a crypto icon on a size x size canvas with 0..100
// logical coordinates. Empty art selects the procedural fallback glyph.
func CryptoIcon(symbol, art string, size int, badge *models.BadgeAsset) string {
	var buf bytes.Buffer
	c := svg.New(&buf)
	c.Startview(size, size, 0, 0, 100, 100)

	if art != "" {
		scale := 1.75
		if size == 100 {
			scale = 3.125
		}
		c.Gtransform(fmt.Sprintf("translate(0, 0) scale(%g)", scale))
		io.WriteString(c.Writer, innerMarkup(art))
		c.Gend()
	} else {
		fallbackGlyph(c, symbol, size)
	}

	if badge != nil {
		// The viewBox is 0..100 regardless of the pixel size, so the badge
		// aligns with the logical canvas bottom, not the pixel height.
		embedBadge(c, *badge, 100)
	}

	c.End()
	return buf.String()
}

// fallbackGlyph draws a filled square in the symbol's derived color with the
// symbol's first character centered in white.
func fallbackGlyph(c *svg.SVG, symbol string, size int) {
	fontSize := 28
	if size == 100 {
		fontSize = 50
	}

	initial := "?"
	if r := []rune(symbol); len(r) > 0 {
		initial = strings.ToUpper(string(r[0]))
	}

	c.Rect(0, 0, 100, 100, fmt.Sprintf(`fill="#%s"`, DeriveColor(symbol)))
	c.Text(50, 50, initial,
		fmt.Sprintf(`font-family="Arial, sans-serif" font-size="%d" font-weight="bold" text-anchor="middle" dominant-baseline="central" fill="#FFFFFF"`, fontSize))
}

// embedBadge places a badge at its intrinsic size, bottom edge on the canvas
// bottom edge, left edge on the canvas left edge.
func embedBadge(c *svg.SVG, badge models.BadgeAsset, canvas int) {
	y := canvas - badge.Height
	c.Gtransform(fmt.Sprintf("translate(0,%d)", y))
	fmt.Fprintf(c.Writer, `<svg width="%d" height="%d">%s</svg>`,
		badge.Width, badge.Height, innerMarkup(badge.Markup))
	c.Gend()
}
