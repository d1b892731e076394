package icon

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"icon-generator/assets"
	"icon-generator/models"
)

func testDatasets() ([]models.Currency, []models.Crypto) {
	currencies := []models.Currency{
		{Code: "USD", Name: "US Dollar", Icon: "https://flags.example/us.svg", Countries: []string{"United States"}},
		{Code: "EUR", Name: "Euro", Icon: "https://flags.example/european_union.svg", Countries: []string{"Germany"}},
	}
	cryptos := []models.Crypto{
		{Symbol: "BTC", Name: "Bitcoin"},
		{Symbol: "XYZ", Name: "XYZ Token"},
	}
	return currencies, cryptos
}

func testBadgeDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Default"), 0o755); err != nil {
		t.Fatal(err)
	}
	otc := `<svg xmlns="http://www.w3.org/2000/svg" width="80" height="42"><rect width="80" height="42" fill="#111"/></svg>`
	lev := `<svg xmlns="http://www.w3.org/2000/svg" width="48" height="48"><circle cx="24" cy="24" r="24" fill="#111"/></svg>`
	if err := os.WriteFile(filepath.Join(dir, "Default", "OTC.svg"), []byte(otc), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Default", "LEVERAGED.svg"), []byte(lev), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func testGenerator(t *testing.T, flagHandler http.HandlerFunc) *Generator {
	t.Helper()

	if flagHandler == nil {
		flagHandler = func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 512 512"><rect width="512" height="512" fill="#b22234"/></svg>`))
		}
	}
	server := httptest.NewServer(flagHandler)
	t.Cleanup(server.Close)

	fetcher := assets.NewFlagFetcher()
	fetcher.BaseURL = server.URL

	artDir := t.TempDir()
	btc := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><circle cx="16" cy="16" r="16" fill="#f7931a"/></svg>`
	if err := os.WriteFile(filepath.Join(artDir, "btc.svg"), []byte(btc), 0o644); err != nil {
		t.Fatal(err)
	}

	currencies, cryptos := testDatasets()
	return NewGenerator(currencies, cryptos, fetcher,
		assets.NewBadgeStore(testBadgeDir(t)), assets.NewArtStore(artDir))
}

var wantVariantNames = []string{
	"Original_56x56",
	"Original_100x100",
	"OTC_56x56",
	"OTC_100x100",
	"LEVERAGED_56x56",
	"LEVERAGED_100x100",
}

func checkVariantMatrix(t *testing.T, result []models.GeneratedAsset) {
	t.Helper()
	if len(result) != 6 {
		t.Fatalf("Expected 6 variants, got %d", len(result))
	}
	for i, asset := range result {
		if asset.Name != wantVariantNames[i] {
			t.Errorf("Variant %d: expected name %s, got %s", i, wantVariantNames[i], asset.Name)
		}
		if asset.SVG == "" {
			t.Errorf("Variant %s has empty markup", asset.Name)
		}
		if len(asset.PNG) == 0 {
			t.Errorf("Variant %s has empty raster bytes", asset.Name)
			continue
		}
		cfg, err := png.DecodeConfig(bytes.NewReader(asset.PNG))
		if err != nil {
			t.Errorf("Variant %s: invalid PNG: %v", asset.Name, err)
			continue
		}
		wantSize := 100
		if strings.HasSuffix(asset.Name, "_56x56") {
			wantSize = 56
		}
		if cfg.Width != wantSize || cfg.Height != wantSize {
			t.Errorf("Variant %s: expected %dx%d pixels, got %dx%d",
				asset.Name, wantSize, wantSize, cfg.Width, cfg.Height)
		}
	}
}

func TestGenerateFlagAssets(t *testing.T) {
	g := testGenerator(t, nil)

	result, err := g.GenerateFlagAssets(context.Background(), "USD", "EUR", "Default")
	if err != nil {
		t.Fatalf("GenerateFlagAssets failed: %v", err)
	}
	checkVariantMatrix(t, result)

	// The rendered pixels must reflect the composition: the flag fill inside
	// the clip circles, nothing outside them.
	plain := decodePNG(t, result[0].PNG)
	if r, _, _, a := rgba8(plain, 19, 19); a < 250 || !near(r, 0xb2) {
		t.Errorf("Circle center = (r=%d,a=%d), expected the served flag fill", r, a)
	}
	if _, _, _, a := rgba8(plain, 55, 55); a != 0 {
		t.Errorf("Corner outside both circles has alpha %d, expected transparent", a)
	}

	// OTC_100x100 carries the badge at the bottom-left edge.
	badged := decodePNG(t, result[3].PNG)
	if r, g8, b, a := rgba8(badged, 2, 97); a < 250 || !near(r, 0x11) || !near(g8, 0x11) || !near(b, 0x11) {
		t.Errorf("Badge corner = (%d,%d,%d,%d), expected the badge fill", r, g8, b, a)
	}
}

func TestGenerateFlagAssetsCaseInsensitive(t *testing.T) {
	g := testGenerator(t, nil)

	if _, err := g.GenerateFlagAssets(context.Background(), "usd", "eur", "Default"); err != nil {
		t.Fatalf("Expected case-insensitive resolution, got %v", err)
	}
}

func TestGenerateFlagAssetsInvalidCode(t *testing.T) {
	g := testGenerator(t, nil)

	_, err := g.GenerateFlagAssets(context.Background(), "USD", "ZZZ", "Default")
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for unknown code, got %v", err)
	}
}

func TestGenerateFlagAssetsFetchFailure(t *testing.T) {
	g := testGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := g.GenerateFlagAssets(context.Background(), "USD", "EUR", "Default")
	if !errors.Is(err, models.ErrFetchFailed) {
		t.Errorf("Expected ErrFetchFailed when flag art is unreachable, got %v", err)
	}
}

func TestGenerateFlagAssetsMissingBrand(t *testing.T) {
	g := testGenerator(t, nil)

	_, err := g.GenerateFlagAssets(context.Background(), "USD", "EUR", "NoSuchBrand")
	if !errors.Is(err, models.ErrAssetNotFound) {
		t.Errorf("Expected ErrAssetNotFound for missing badge brand, got %v", err)
	}
}

func TestGenerateCryptoAssets(t *testing.T) {
	g := testGenerator(t, nil)

	result, err := g.GenerateCryptoAssets(context.Background(), "BTC", "Default")
	if err != nil {
		t.Fatalf("GenerateCryptoAssets failed: %v", err)
	}
	checkVariantMatrix(t, result)

	// Local art exists for BTC, so no fallback rect should appear.
	if strings.Contains(result[0].SVG, DeriveColor("BTC")) {
		t.Error("Expected local art for BTC, not the fallback glyph")
	}
}

func TestGenerateCryptoAssetsFallback(t *testing.T) {
	g := testGenerator(t, nil)

	result, err := g.GenerateCryptoAssets(context.Background(), "XYZ", "Default")
	if err != nil {
		t.Fatalf("GenerateCryptoAssets failed: %v", err)
	}
	checkVariantMatrix(t, result)

	if !strings.Contains(result[0].SVG, `fill="#`+DeriveColor("XYZ")+`"`) {
		t.Error("Expected fallback glyph with the derived color")
	}
	if !strings.Contains(result[0].SVG, ">X<") {
		t.Error("Expected the symbol's first character in the fallback glyph")
	}

	// The initial must be visible in the raster too: white pixels over the
	// derived-color square at the canvas center.
	img := decodePNG(t, result[1].PNG)
	found := false
	for y := 30; y < 70 && !found; y++ {
		for x := 30; x < 70; x++ {
			if r, g, b, _ := rgba8(img, x, y); r > 200 && g > 200 && b > 200 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("No white pixels in the center region; the fallback initial is missing from the raster")
	}
}

func TestGenerateCryptoAssetsUnknownSymbol(t *testing.T) {
	g := testGenerator(t, nil)

	// Canonical resolution happens before composition, so no fallback icon is
	// drawn for symbols outside the dataset.
	_, err := g.GenerateCryptoAssets(context.Background(), "NOTREAL", "Default")
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for unknown symbol, got %v", err)
	}
}
