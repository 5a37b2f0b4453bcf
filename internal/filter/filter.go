// Package filter derives display subsets from the canonical restaurant
// collection. Every function is pure: inputs are never modified and a new
// slice is returned on each call, even when nothing was filtered out.
package filter

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/tiffin/internal/domain"
)

// DefaultTopRatedThreshold is the rating a restaurant must exceed to count as top rated
const DefaultTopRatedThreshold = 4.5

// NameMatcher selects restaurants by name for a search query
type NameMatcher func(c domain.Collection, query string) domain.Collection

// TopRated keeps restaurants rated strictly above threshold. Unrated
// restaurants never qualify.
func TopRated(c domain.Collection, threshold float64) domain.Collection {
	return keep(c, func(r domain.Restaurant) bool {
		v, ok := r.Rating()
		return ok && v > threshold
	})
}

// ByName keeps restaurants whose lower-cased name contains the lower-cased
// query. The query is not trimmed; an empty query keeps everything.
func ByName(c domain.Collection, query string) domain.Collection {
	q := strings.ToLower(query)
	return keep(c, func(r domain.Restaurant) bool {
		return strings.Contains(strings.ToLower(r.Name), q)
	})
}

// FuzzyByName keeps restaurants whose name contains the query's characters
// in order, ignoring case ("sph" matches "Spice Hut"). Order is preserved;
// results are not ranked.
func FuzzyByName(c domain.Collection, query string) domain.Collection {
	return keep(c, func(r domain.Restaurant) bool {
		return fuzzy.MatchFold(query, r.Name)
	})
}

// MatcherFor returns the name matcher for a search mode.
// Unknown modes fall back to substring matching.
func MatcherFor(mode string) NameMatcher {
	if mode == "fuzzy" {
		return FuzzyByName
	}
	return ByName
}

func keep(c domain.Collection, pred func(domain.Restaurant) bool) domain.Collection {
	out := make(domain.Collection, 0, len(c))
	for _, r := range c {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
