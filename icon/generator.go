package icon

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"icon-generator/models"
)

// FlagArtResolver retrieves country flag art, typically over the network.
type FlagArtResolver interface {
	Fetch(ctx context.Context, countryCode string) (string, error)
}

// BadgeLoader resolves a (brand, variant) pair to its badge asset.
type BadgeLoader interface {
	Load(brand, variant string) (models.BadgeAsset, error)
}

// CryptoArtLoader resolves local crypto art; a miss is not an error.
type CryptoArtLoader interface {
	Load(symbol string) (string, bool, error)
}

// Generator drives the variant matrix for one request: resolve canonical
// identifiers, compose each variant's markup, rasterize it. It holds only
// read-only state and is safe for concurrent use.
type Generator struct {
	currencies map[string]models.Currency
	cryptos    map[string]models.Crypto
	flags      FlagArtResolver
	badges     BadgeLoader
	art        CryptoArtLoader
}

func NewGenerator(currencies []models.Currency, cryptos []models.Crypto,
	flags FlagArtResolver, badges BadgeLoader, art CryptoArtLoader) *Generator {
	g := &Generator{
		currencies: make(map[string]models.Currency, len(currencies)),
		cryptos:    make(map[string]models.Crypto, len(cryptos)),
		flags:      flags,
		badges:     badges,
		art:        art,
	}
	for _, c := range currencies {
		g.currencies[strings.ToLower(c.Code)] = c
	}
	for _, c := range cryptos {
		g.cryptos[strings.ToLower(c.Symbol)] = c
	}
	return g
}

var countryCodeRe = regexp.MustCompile(`/([a-z_]+)\.svg$`)

// countryCode extracts the flag code from a currency's icon reference.
func countryCode(iconRef string) string {
	if m := countryCodeRe.FindStringSubmatch(iconRef); m != nil {
		return m[1]
	}
	return "xx"
}

// GenerateFlagAssets produces the six-variant matrix for a currency pair.
// Resolution is exact and case-insensitive; both flags are fetched once, in
// parallel, and reused across variants. Any failed dependency fails the whole
// request: the result is always six assets or an error.
func (g *Generator) GenerateFlagAssets(ctx context.Context, code1, code2, brand string) ([]models.GeneratedAsset, error) {
	cur1, ok := g.currencies[strings.ToLower(code1)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown currency %q", models.ErrInvalidInput, code1)
	}
	cur2, ok := g.currencies[strings.ToLower(code2)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown currency %q", models.ErrInvalidInput, code2)
	}

	var art1, art2 string
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		art1, err = g.flags.Fetch(ctx, countryCode(cur1.Icon))
		return err
	})
	eg.Go(func() error {
		var err error
		art2, err = g.flags.Fetch(ctx, countryCode(cur2.Icon))
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	badges, err := g.loadBadges(brand)
	if err != nil {
		return nil, err
	}

	assets := make([]models.GeneratedAsset, 0, len(models.VariantMatrix))
	for _, key := range models.VariantMatrix {
		markup := CombineFlags(art1, art2, key.Size, badges[key.Overlay])
		raster, err := RasterizeFlagPair(art1, art2, key.Size, badges[key.Overlay])
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", key.Name(), err)
		}
		assets = append(assets, models.GeneratedAsset{Name: key.Name(), SVG: markup, PNG: raster})
	}
	return assets, nil
}

// GenerateCryptoAssets produces the six-variant matrix for a crypto symbol.
// The symbol must resolve against the canonical dataset before composition;
// missing local art then falls back to the procedural glyph.
func (g *Generator) GenerateCryptoAssets(ctx context.Context, symbol, brand string) ([]models.GeneratedAsset, error) {
	crypto, ok := g.cryptos[strings.ToLower(symbol)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown crypto symbol %q", models.ErrInvalidInput, symbol)
	}

	art, _, err := g.art.Load(crypto.Symbol)
	if err != nil {
		return nil, err
	}

	badges, err := g.loadBadges(brand)
	if err != nil {
		return nil, err
	}

	assets := make([]models.GeneratedAsset, 0, len(models.VariantMatrix))
	for _, key := range models.VariantMatrix {
		markup := CryptoIcon(crypto.Symbol, art, key.Size, badges[key.Overlay])
		raster, err := RasterizeCryptoIcon(crypto.Symbol, art, key.Size, badges[key.Overlay])
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", key.Name(), err)
		}
		assets = append(assets, models.GeneratedAsset{Name: key.Name(), SVG: markup, PNG: raster})
	}
	return assets, nil
}

// loadBadges resolves both overlay badges up front; all badged variants of a
// request share the same brand dependency, so one miss fails everything.
func (g *Generator) loadBadges(brand string) (map[models.Overlay]*models.BadgeAsset, error) {
	if brand == "" {
		return nil, fmt.Errorf("%w: missing brand", models.ErrInvalidInput)
	}
	badges := map[models.Overlay]*models.BadgeAsset{models.OverlayNone: nil}
	for _, overlay := range []models.Overlay{models.OverlayOTC, models.OverlayLeveraged} {
		badge, err := g.badges.Load(brand, overlay.String())
		if err != nil {
			return nil, err
		}
		badges[overlay] = &badge
	}
	return badges, nil
}
