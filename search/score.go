package search

import (
	"github.com/agnivade/levenshtein"
)

// normalizedScore measures how far query is from value on a 0 (exact) to
// 1 (unrelated) scale. Both sides are expected lowercased.
//
// Besides the whole-string edit distance, every query-sized window of the
// value is tried, so partial prefixes and infixes ("bit" against "bitcoin")
// still score well; window matches pay a small coverage penalty so a full
// exact match always ranks above them.
func normalizedScore(query, value string) float64 {
	if query == value {
		return 0
	}
	q := []rune(query)
	v := []rune(value)
	if len(q) == 0 || len(v) == 0 {
		return 1
	}

	longest := len(q)
	if len(v) > longest {
		longest = len(v)
	}
	best := float64(levenshtein.ComputeDistance(query, value)) / float64(longest)

	if len(v) > len(q) {
		coverage := 0.1 * (1 - float64(len(q))/float64(len(v)))
		for i := 0; i+len(q) <= len(v); i++ {
			window := string(v[i : i+len(q)])
			d := float64(levenshtein.ComputeDistance(query, window))/float64(len(q)) + coverage
			if d < best {
				best = d
			}
		}
	}

	if best > 1 {
		best = 1
	}
	return best
}
