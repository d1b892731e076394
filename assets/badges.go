package assets

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"icon-generator/models"
)

// BadgeStore loads brand-scoped badge overlays from disk. Layout:
// <dir>/<brand>/<VARIANT>.svg, e.g. badges/Default/OTC.svg.
type BadgeStore struct {
	Dir string
}

func NewBadgeStore(dir string) *BadgeStore {
	return &BadgeStore{Dir: dir}
}

// Load reads the badge for a (brand, variant) pair. A missing file wraps
// models.ErrAssetNotFound: absence is an error here, never a fallback.
func (s *BadgeStore) Load(brand, variant string) (models.BadgeAsset, error) {
	path := filepath.Join(s.Dir, brand, variant+".svg")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.BadgeAsset{}, fmt.Errorf("%w: badge %s for brand %s", models.ErrAssetNotFound, variant, brand)
		}
		return models.BadgeAsset{}, fmt.Errorf("reading badge %s: %v", path, err)
	}

	width, height, err := svgDimensions(data)
	if err != nil {
		return models.BadgeAsset{}, fmt.Errorf("badge %s: %v", path, err)
	}

	return models.BadgeAsset{
		Variant: variant,
		Brand:   brand,
		Width:   width,
		Height:  height,
		Markup:  string(data),
	}, nil
}

// svgDimensions extracts the intrinsic size from the root <svg> element:
// width/height attributes first, viewBox as a fallback.
func svgDimensions(data []byte) (int, int, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			return 0, 0, fmt.Errorf("no svg root element: %v", err)
		}
		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "svg" {
			continue
		}

		var width, height int
		var viewBox string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "width":
				width = parseLength(attr.Value)
			case "height":
				height = parseLength(attr.Value)
			case "viewBox":
				viewBox = attr.Value
			}
		}
		if width > 0 && height > 0 {
			return width, height, nil
		}
		if viewBox != "" {
			parts := strings.Fields(viewBox)
			if len(parts) == 4 {
				w := parseLength(parts[2])
				h := parseLength(parts[3])
				if w > 0 && h > 0 {
					return w, h, nil
				}
			}
		}
		return 0, 0, fmt.Errorf("svg root has no usable dimensions")
	}
}

func parseLength(value string) int {
	value = strings.TrimSuffix(strings.TrimSpace(value), "px")
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return int(f)
}
