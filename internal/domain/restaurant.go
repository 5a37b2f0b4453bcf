package domain

import (
	"fmt"
	"strings"
)

// Restaurant is one directory entry, normalized from the upstream listing.
// Optional upstream fields stay at their zero value when absent.
type Restaurant struct {
	ID                string   // Upstream restaurant ID (navigation + render key)
	Name              string   // Display name, may be empty
	ImageID           string   // CDN image identifier
	Cuisines          []string // Ordered cuisine labels, nil when absent
	AreaName          string   // Neighbourhood
	AvgRating         *float64 // nil = unrated
	AvgRatingString   string   // Upstream preformatted rating ("4.3", "--")
	ETASummary        string   // Delivery estimate ("25-30 mins")
	IsVeg             bool     // Pure vegetarian kitchen
	DiscountHeader    string   // e.g. "50% OFF"
	DiscountSubHeader string   // e.g. "UPTO ₹100"
}

// Collection is an ordered sequence of restaurants. Order is display order.
type Collection []Restaurant

// Rated reports whether the restaurant carries a numeric rating.
func (r Restaurant) Rated() bool {
	return r.AvgRating != nil
}

// Rating returns the numeric rating and whether one is present.
func (r Restaurant) Rating() (float64, bool) {
	if r.AvgRating == nil {
		return 0, false
	}
	return *r.AvgRating, true
}

// RatingLabel returns the text shown next to the rating icon.
func (r Restaurant) RatingLabel() string {
	if r.AvgRatingString != "" {
		return r.AvgRatingString
	}
	if v, ok := r.Rating(); ok {
		return fmt.Sprintf("%.1f", v)
	}
	return "--"
}

// CuisineLine joins cuisines for display
func (r Restaurant) CuisineLine() string {
	return strings.Join(r.Cuisines, ", ")
}

// Discount returns "header subHeader", or "" when there is no discount header.
func (r Restaurant) Discount() string {
	if r.DiscountHeader == "" {
		return ""
	}
	return strings.TrimSpace(r.DiscountHeader + " " + r.DiscountSubHeader)
}

// ImageURL joins the CDN prefix and image ID. Empty when the record has no image.
func (r Restaurant) ImageURL(prefix string) string {
	if r.ImageID == "" {
		return ""
	}
	return prefix + r.ImageID
}

// IDs returns the IDs of the collection in order.
func (c Collection) IDs() []string {
	ids := make([]string, len(c))
	for i, r := range c {
		ids[i] = r.ID
	}
	return ids
}

// Clone returns an independent copy of the collection. Always non-nil.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Float returns a pointer to v, for building rated records.
func Float(v float64) *float64 {
	return &v
}
