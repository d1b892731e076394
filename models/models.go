package models

// Currency is one entry of the forex reference dataset. Code is the unique
// canonical key; Icon points at the circle-flag art for the issuing country.
type Currency struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Icon      string   `json:"icon"`
	Countries []string `json:"countries,omitempty"`
}

// Crypto is one entry of the cryptocurrency reference dataset. Symbol is the
// unique canonical key. Color is an optional brand color hint from the
// manifest; when empty a color is derived from the symbol.
type Crypto struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
}

// BadgeAsset is a brand-scoped overlay marker (OTC, LEVERAGED). Width and
// Height are the intrinsic dimensions parsed from the badge SVG; they drive
// the bottom-left placement of the overlay on the composed canvas.
type BadgeAsset struct {
	Variant string
	Brand   string
	Width   int
	Height  int
	Markup  string
}

// GeneratedAsset is one rendered variant returned to the caller. PNG is the
// raster form of SVG at the variant's pixel size.
type GeneratedAsset struct {
	Name string `json:"name"`
	SVG  string `json:"svg"`
	PNG  []byte `json:"png"`
}
