package icon

import (
	"fmt"
	"strings"
	"testing"

	"icon-generator/models"
)

const testFlagArt = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 512 512"><rect width="512" height="512" fill="#b22234"/></svg>`

func testBadge(variant string, w, h int) *models.BadgeAsset {
	return &models.BadgeAsset{
		Variant: variant,
		Brand:   "Default",
		Width:   w,
		Height:  h,
		Markup: fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d"><rect width="%d" height="%d" fill="#222"/></svg>`,
			w, h, w, h, w, h),
	}
}

func TestCombineFlagsDeterministic(t *testing.T) {
	first := CombineFlags(testFlagArt, testFlagArt, 56, nil)
	second := CombineFlags(testFlagArt, testFlagArt, 56, nil)
	if first != second {
		t.Error("CombineFlags is not byte-identical across identical calls")
	}
	if first == "" {
		t.Fatal("CombineFlags produced empty markup")
	}
}

func TestCombineFlagsLayout(t *testing.T) {
	markup := CombineFlags(testFlagArt, testFlagArt, 56, nil)

	// Inner diameter 38, second circle at diagonal offset 18, clip radius 18.5.
	for _, want := range []string{
		`viewBox="0 0 56 56"`,
		`translate(18,18)`,
		`width="38" height="38" viewBox="0 0 512 512"`,
		`r="18.5"`,
		`stroke="#EAEAEA"`,
	} {
		if !strings.Contains(markup, want) {
			t.Errorf("Expected markup to contain %q", want)
		}
	}

	large := CombineFlags(testFlagArt, testFlagArt, 100, nil)
	for _, want := range []string{
		`viewBox="0 0 100 100"`,
		`translate(34,34)`,
		`width="66" height="66" viewBox="0 0 512 512"`,
		`r="32.5"`,
	} {
		if !strings.Contains(large, want) {
			t.Errorf("Expected 100px markup to contain %q", want)
		}
	}
}

func TestCombineFlagsStripsWrappers(t *testing.T) {
	markup := CombineFlags(testFlagArt, testFlagArt, 56, nil)

	if strings.Contains(markup, "encoding=") {
		t.Error("Embedded art's XML declaration leaked into the composition")
	}
	if !strings.Contains(markup, `fill="#b22234"`) {
		t.Error("Embedded art's graphical content is missing")
	}
}

func TestCombineFlagsBadgePlacement(t *testing.T) {
	badge := testBadge("OTC", 80, 42)
	markup := CombineFlags(testFlagArt, testFlagArt, 100, badge)

	// Badged layout keeps the 66-diameter circles and bottom-left badge:
	// y = 100 - 42 = 58.
	for _, want := range []string{
		`translate(0,58)`,
		`<svg width="80" height="42">`,
		`translate(34,34)`,
		`r="32.5"`,
	} {
		if !strings.Contains(markup, want) {
			t.Errorf("Expected badged markup to contain %q", want)
		}
	}

	// Badged 56px variant still uses the 100x100 proportions.
	small := CombineFlags(testFlagArt, testFlagArt, 56, badge)
	if !strings.Contains(small, `width="56" height="56"`) {
		t.Error("Expected 56px canvas dimensions")
	}
	if !strings.Contains(small, `viewBox="0 0 100 100"`) {
		t.Error("Expected badged 56px variant on 100x100 proportions")
	}
	if !strings.Contains(small, `translate(34,34)`) {
		t.Error("Expected badged 56px variant to keep the 66-diameter layout")
	}
}

func TestCryptoIconFallback(t *testing.T) {
	markup := CryptoIcon("XYZ", "", 100, nil)

	if !strings.Contains(markup, `fill="#`+DeriveColor("XYZ")+`"`) {
		t.Error("Expected fallback rect filled with the derived color")
	}
	if !strings.Contains(markup, ">X<") {
		t.Error("Expected uppercased first character as centered text")
	}
	if !strings.Contains(markup, `font-size="50"`) {
		t.Errorf("Expected font size 50 for 100px canvas")
	}

	small := CryptoIcon("xyz", "", 56, nil)
	if !strings.Contains(small, `font-size="28"`) {
		t.Errorf("Expected font size 28 for 56px canvas")
	}
	if !strings.Contains(small, ">X<") {
		t.Error("Expected the initial uppercased for lowercase symbols")
	}
}

func TestCryptoIconWithArt(t *testing.T) {
	art := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><circle cx="16" cy="16" r="16" fill="#f7931a"/></svg>`

	markup := CryptoIcon("BTC", art, 100, nil)
	if !strings.Contains(markup, `scale(3.125)`) {
		t.Error("Expected scale factor 3.125 for 100px canvas")
	}
	if !strings.Contains(markup, `fill="#f7931a"`) {
		t.Error("Expected the art's inner content embedded")
	}

	small := CryptoIcon("BTC", art, 56, nil)
	if !strings.Contains(small, `scale(1.75)`) {
		t.Error("Expected scale factor 1.75 for 56px canvas")
	}
}

func TestCryptoIconBadgePlacement(t *testing.T) {
	badge := testBadge("LEVERAGED", 48, 48)
	markup := CryptoIcon("XYZ", "", 100, badge)

	// y = 100 - 48 = 52.
	if !strings.Contains(markup, `translate(0,52)`) {
		t.Error("Expected badge translated to the bottom-left edge")
	}
	if !strings.Contains(markup, `<svg width="48" height="48">`) {
		t.Error("Expected badge embedded at its intrinsic dimensions")
	}

	// The 56px canvas shares the 0..100 viewBox, so the badge keeps the same
	// logical position with its bottom edge on the canvas bottom.
	small := CryptoIcon("XYZ", "", 56, badge)
	if !strings.Contains(small, `translate(0,52)`) {
		t.Error("Expected the 56px badge aligned with the logical canvas bottom")
	}
	if strings.Contains(small, `translate(0,8)`) {
		t.Error("Badge offset computed against the pixel size instead of the viewBox")
	}
}
