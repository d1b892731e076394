package icon

import (
	"regexp"
	"testing"
)

var hexColorRe = regexp.MustCompile(`^[0-9a-f]{6}$`)

func TestDeriveColorDeterministic(t *testing.T) {
	for _, seed := range []string{"BTC", "ETH", "XYZ", "usd", "a", "long seed with spaces"} {
		first := DeriveColor(seed)
		second := DeriveColor(seed)
		if first != second {
			t.Errorf("DeriveColor(%q) not deterministic: %s vs %s", seed, first, second)
		}
		if !hexColorRe.MatchString(first) {
			t.Errorf("DeriveColor(%q) = %q, not 6 lowercase hex digits", seed, first)
		}
	}
}

func TestDeriveColorEmpty(t *testing.T) {
	if got := DeriveColor(""); got != "000000" {
		t.Errorf("DeriveColor(\"\") = %q, want 000000", got)
	}
}

func TestDeriveColorSpreads(t *testing.T) {
	// Different seeds should generally land on different colors.
	seen := map[string]string{}
	for _, seed := range []string{"BTC", "ETH", "DOGE", "ADA", "SOL"} {
		c := DeriveColor(seed)
		if prev, ok := seen[c]; ok {
			t.Errorf("Seeds %q and %q collide on %s", prev, seed, c)
		}
		seen[c] = seed
	}
}
