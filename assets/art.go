package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ArtStore serves local cryptocurrency icon art: <dir>/<symbol>.svg with
// lowercase symbol names.
type ArtStore struct {
	Dir string
}

func NewArtStore(dir string) *ArtStore {
	return &ArtStore{Dir: dir}
}

// Load returns the art markup for a symbol. A missing file is a clean miss
// (composition falls back to a procedural glyph), not an error.
func (s *ArtStore) Load(symbol string) (string, bool, error) {
	path := filepath.Join(s.Dir, strings.ToLower(symbol)+".svg")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading crypto art %s: %v", path, err)
	}
	return string(data), true, nil
}
