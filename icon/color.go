package icon

import "fmt"

// DeriveColor maps a seed string to a stable 6-hex-digit color. It folds the
// string into a 32-bit accumulator with the classic base-31 rolling hash and
// hex-encodes the low three bytes. Not cryptographic, just collision-tolerant
// enough for fallback glyph backgrounds. The empty string yields "000000".
func DeriveColor(seed string) string {
	var hash int32
	for _, r := range seed {
		hash = int32(r) + (hash<<5 - hash)
	}
	return fmt.Sprintf("%02x%02x%02x", byte(hash), byte(hash>>8), byte(hash>>16))
}
