package icon

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"icon-generator/models"
)

// Rendering happens at 2x the target and is downsampled with Lanczos, which
// keeps circle edges clean at the small output sizes.
const supersample = 2

// ringColor matches the edge ring the vector composition strokes around each
// flag circle.
var ringColor = color.NRGBA{R: 0xEA, G: 0xEA, B: 0xEA, A: 0xFF}

// glyphFont backs the fallback initial. The face ships embedded in x/image,
// so parsing it cannot fail at runtime.
var glyphFont = func() *opentype.Font {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		panic(err)
	}
	return f
}()

// RasterizeFlagPair renders the flag-pair composition to a PNG of exactly
// size x size pixels, on the same layout CombineFlags emits. The SVG
// renderer only handles standalone root-viewBox documents, so the
// composition happens in raster space: each flag is rasterized on its own,
// clipped to its circle, ringed, and drawn onto the shared canvas.
func RasterizeFlagPair(flag1, flag2 string, size int, badge *models.BadgeAsset) ([]byte, error) {
	diameter, offset := flagLayout(size)
	logical := size
	if badge != nil {
		diameter, offset = flagLayout(100)
		logical = 100
	}

	side := size * supersample
	unit := float64(side) / float64(logical)
	canvas := image.NewRGBA(image.Rect(0, 0, side, side))

	for i, art := range []string{flag1, flag2} {
		disc, err := flagDisc(art, diameter, unit)
		if err != nil {
			return nil, err
		}
		at := 0
		if i == 1 {
			at = int(math.Round(float64(offset) * unit))
		}
		draw.Draw(canvas, disc.Bounds().Add(image.Pt(at, at)), disc, image.Point{}, draw.Over)
	}

	if badge != nil {
		if err := overlayBadge(canvas, *badge, unit); err != nil {
			return nil, err
		}
	}
	return encodePNG(canvas, size)
}

// RasterizeCryptoIcon renders the crypto composition to a PNG of exactly
// size x size pixels, matching CryptoIcon's layout: source art scaled from
// its native viewBox, or the derived-color fallback glyph, plus the badge
// overlay at the bottom-left edge.
func RasterizeCryptoIcon(symbol, art string, size int, badge *models.BadgeAsset) ([]byte, error) {
	side := size * supersample
	unit := float64(side) / 100
	canvas := image.NewRGBA(image.Rect(0, 0, side, side))

	if art != "" {
		scale := 1.75
		if size == 100 {
			scale = 3.125
		}
		if err := drawScaledArt(canvas, art, scale*unit); err != nil {
			return nil, err
		}
	} else if err := drawFallbackGlyph(canvas, symbol, size); err != nil {
		return nil, err
	}

	if badge != nil {
		if err := overlayBadge(canvas, *badge, unit); err != nil {
			return nil, err
		}
	}
	return encodePNG(canvas, size)
}

// renderDocument rasterizes one standalone SVG document to exactly w x h
// pixels, scaling its root viewBox to fill the target. Malformed markup
// wraps models.ErrRenderFailed.
func renderDocument(markup string, w, h int) (*image.RGBA, error) {
	parsed, err := oksvg.ReadIconStream(strings.NewReader(markup), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing svg: %v", models.ErrRenderFailed, err)
	}
	parsed.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	parsed.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}

// flagDisc rasterizes one flag scaled to the inner diameter, clips it to the
// circle and strokes the light-gray edge ring over the rim.
func flagDisc(art string, diameter int, unit float64) (*image.RGBA, error) {
	d := int(math.Round(float64(diameter) * unit))
	img, err := renderDocument(art, d, d)
	if err != nil {
		return nil, err
	}
	center := float64(d) / 2
	radius := (float64(diameter)/2 - 0.5) * unit
	clipCircle(img, center, radius)
	strokeCircle(img, center, radius, unit)
	return img, nil
}

// clipCircle scales each pixel's coverage by its distance to the circle
// edge, leaving everything outside the radius transparent with an
// antialiased rim. Pixel data is alpha-premultiplied, so all four channels
// scale together.
func clipCircle(img *image.RGBA, center, radius float64) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dist := math.Hypot(float64(x)+0.5-center, float64(y)+0.5-center)
			cov := radius + 0.5 - dist
			if cov >= 1 {
				continue
			}
			if cov < 0 {
				cov = 0
			}
			i := img.PixOffset(x, y)
			for c := 0; c < 4; c++ {
				img.Pix[i+c] = uint8(float64(img.Pix[i+c])*cov + 0.5)
			}
		}
	}
}

// strokeCircle blends a ring of the given width over the circle edge.
func strokeCircle(img *image.RGBA, center, radius, width float64) {
	b := img.Bounds()
	half := width / 2
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dist := math.Hypot(float64(x)+0.5-center, float64(y)+0.5-center)
			cov := half + 0.5 - math.Abs(dist-radius)
			if cov <= 0 {
				continue
			}
			if cov > 1 {
				cov = 1
			}
			blendPixel(img, x, y, ringColor, cov)
		}
	}
}

// blendPixel draws src over the pixel at the given coverage.
func blendPixel(img *image.RGBA, x, y int, src color.NRGBA, cov float64) {
	a := cov * float64(src.A) / 255
	i := img.PixOffset(x, y)
	img.Pix[i+0] = uint8(float64(src.R)*a + float64(img.Pix[i+0])*(1-a) + 0.5)
	img.Pix[i+1] = uint8(float64(src.G)*a + float64(img.Pix[i+1])*(1-a) + 0.5)
	img.Pix[i+2] = uint8(float64(src.B)*a + float64(img.Pix[i+2])*(1-a) + 0.5)
	img.Pix[i+3] = uint8(255*a + float64(img.Pix[i+3])*(1-a) + 0.5)
}

// drawScaledArt rasterizes the art document at scale times its native
// viewBox and draws it at the canvas origin.
func drawScaledArt(canvas *image.RGBA, art string, scale float64) error {
	parsed, err := oksvg.ReadIconStream(strings.NewReader(art), oksvg.IgnoreErrorMode)
	if err != nil {
		return fmt.Errorf("%w: parsing svg: %v", models.ErrRenderFailed, err)
	}
	w := int(math.Round(parsed.ViewBox.W * scale))
	h := int(math.Round(parsed.ViewBox.H * scale))
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: art has no drawable area", models.ErrRenderFailed)
	}
	parsed.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	parsed.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	draw.Draw(canvas, img.Bounds(), img, image.Point{}, draw.Over)
	return nil
}

// drawFallbackGlyph fills the canvas with the symbol's derived color and
// centers the uppercased initial in white.
func drawFallbackGlyph(canvas *image.RGBA, symbol string, size int) error {
	fill := parseHexColor(DeriveColor(symbol))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	side := canvas.Bounds().Dx()
	fontSize := 28.0
	if size == 100 {
		fontSize = 50
	}
	face, err := opentype.NewFace(glyphFont, &opentype.FaceOptions{
		Size:    fontSize * float64(side) / 100,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("%w: loading glyph face: %v", models.ErrRenderFailed, err)
	}
	defer face.Close()

	initial := "?"
	if r := []rune(symbol); len(r) > 0 {
		initial = strings.ToUpper(string(r[0]))
	}

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.White,
		Face: face,
	}
	adv := drawer.MeasureString(initial)
	metrics := face.Metrics()
	drawer.Dot = fixed.Point26_6{
		X: (fixed.I(side) - adv) / 2,
		Y: fixed.I(side/2) + (metrics.Ascent-metrics.Descent)/2,
	}
	drawer.DrawString(initial)
	return nil
}

// overlayBadge draws the badge at its intrinsic size, bottom edge on the
// canvas bottom edge, left edge on the canvas left edge.
func overlayBadge(canvas *image.RGBA, badge models.BadgeAsset, unit float64) error {
	w := int(math.Round(float64(badge.Width) * unit))
	h := int(math.Round(float64(badge.Height) * unit))
	img, err := renderDocument(badge.Markup, w, h)
	if err != nil {
		return err
	}
	at := image.Pt(0, canvas.Bounds().Dy()-h)
	draw.Draw(canvas, img.Bounds().Add(at), img, image.Point{}, draw.Over)
	return nil
}

// parseHexColor decodes an rrggbb triple; DeriveColor output is always valid.
func parseHexColor(s string) color.NRGBA {
	var r, g, b uint8
	fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b)
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
}

func encodePNG(canvas *image.RGBA, size int) ([]byte, error) {
	out := imaging.Resize(canvas, size, size, imaging.Lanczos)
	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("%w: encoding png: %v", models.ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}
