// Package listing holds the fetched restaurant collection and the subset
// currently on screen.
package listing

import "github.com/mmcdole/tiffin/internal/domain"

// Store keeps two independent slots: canonical (last successful fetch) and
// displayed (what the renderer shows). Both are replaced wholesale; neither
// is ever patched in place. Store is not safe for concurrent use.
type Store struct {
	canonical domain.Collection
	displayed domain.Collection
}

// NewStore returns a store with both slots empty
func NewStore() *Store {
	return &Store{
		canonical: domain.Collection{},
		displayed: domain.Collection{},
	}
}

// Canonical returns a copy of the canonical collection
func (s *Store) Canonical() domain.Collection {
	return s.canonical.Clone()
}

// Displayed returns a copy of the displayed collection
func (s *Store) Displayed() domain.Collection {
	return s.displayed.Clone()
}

// CanonicalLen avoids a copy when only the size matters
func (s *Store) CanonicalLen() int { return len(s.canonical) }

// DisplayedLen avoids a copy when only the size matters
func (s *Store) DisplayedLen() int { return len(s.displayed) }

// ReplaceCanonical sets canonical and resets displayed to the same content.
// The two slots never share a backing array.
func (s *Store) ReplaceCanonical(c domain.Collection) {
	s.canonical = c.Clone()
	s.displayed = c.Clone()
}

// ReplaceDisplayed sets displayed only. c should be a subsequence of canonical.
func (s *Store) ReplaceDisplayed(c domain.Collection) {
	s.displayed = c.Clone()
}
