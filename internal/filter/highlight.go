package filter

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// MatchedIndexes returns the positions in name that a search query matched,
// for highlighting. Substring matches report the contiguous run; otherwise
// the fuzzy character positions are used. Nil when nothing matched.
func MatchedIndexes(name, query string) []int {
	if query == "" || name == "" {
		return nil
	}

	lowerName := strings.ToLower(name)
	lowerQuery := strings.ToLower(query)

	// Lower-casing can change byte lengths outside ASCII; only trust the
	// substring offsets when it did not.
	if len(lowerName) == len(name) {
		if start := strings.Index(lowerName, lowerQuery); start >= 0 {
			idx := make([]int, 0, len(lowerQuery))
			for i := start; i < start+len(lowerQuery); i++ {
				idx = append(idx, i)
			}
			return idx
		}
	}

	matches := fuzzy.Find(lowerQuery, []string{lowerName})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}
