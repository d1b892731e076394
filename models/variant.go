package models

import "fmt"

// Overlay selects the badge composited onto a base icon, if any.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayOTC
	OverlayLeveraged
)

func (o Overlay) String() string {
	switch o {
	case OverlayOTC:
		return "OTC"
	case OverlayLeveraged:
		return "LEVERAGED"
	default:
		return "Original"
	}
}

// VariantKey identifies one cell of the (overlay x size) variant matrix. It is
// carried through the generation pipeline as a typed value instead of being
// parsed back out of result names.
type VariantKey struct {
	Overlay Overlay
	Size    int
}

// Name returns the caller-visible variant name, e.g. "OTC_56x56".
func (v VariantKey) Name() string {
	return fmt.Sprintf("%s_%dx%d", v.Overlay, v.Size, v.Size)
}

// VariantMatrix is the fixed set of variants produced per request, in the
// canonical result order.
var VariantMatrix = []VariantKey{
	{OverlayNone, 56},
	{OverlayNone, 100},
	{OverlayOTC, 56},
	{OverlayOTC, 100},
	{OverlayLeveraged, 56},
	{OverlayLeveraged, 100},
}
