package swiggy

import (
	"encoding/json"
	"fmt"

	"github.com/mmcdole/tiffin/internal/domain"
)

// DefaultSections are the card positions of the two restaurant grids
var DefaultSections = [2]int{1, 4}

// ExtractSections decodes the listing envelope and returns the restaurant
// arrays found at the two card positions, in order. All positional knowledge
// of the upstream payload lives here.
//
// A missing card, a missing path segment or an unexpected shape at either
// position is an error; no partial result is returned.
func ExtractSections(body []byte, sections [2]int) ([]RestaurantEntry, []RestaurantEntry, error) {
	var resp ListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Data == nil {
		return nil, nil, fmt.Errorf("response has no data")
	}

	first, err := extractSection(resp.Data.Cards, sections[0])
	if err != nil {
		return nil, nil, err
	}
	second, err := extractSection(resp.Data.Cards, sections[1])
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

func extractSection(cards []json.RawMessage, idx int) ([]RestaurantEntry, error) {
	if idx < 0 || idx >= len(cards) {
		return nil, fmt.Errorf("card %d missing (response has %d cards)", idx, len(cards))
	}

	var wrapper CardWrapper
	if err := json.Unmarshal(cards[idx], &wrapper); err != nil {
		return nil, fmt.Errorf("card %d: unexpected shape: %w", idx, err)
	}

	switch {
	case wrapper.Card == nil || wrapper.Card.Card == nil:
		return nil, fmt.Errorf("card %d: missing card.card", idx)
	case wrapper.Card.Card.GridElements == nil:
		return nil, fmt.Errorf("card %d: missing gridElements", idx)
	case wrapper.Card.Card.GridElements.InfoWithStyle == nil:
		return nil, fmt.Errorf("card %d: missing infoWithStyle", idx)
	case wrapper.Card.Card.GridElements.InfoWithStyle.Restaurants == nil:
		return nil, fmt.Errorf("card %d: missing restaurants", idx)
	}

	return *wrapper.Card.Card.GridElements.InfoWithStyle.Restaurants, nil
}

// MapRestaurants converts both sections into one collection, first section
// first. Entries without an info block or ID are rejected.
func MapRestaurants(first, second []RestaurantEntry) (domain.Collection, error) {
	out := make(domain.Collection, 0, len(first)+len(second))
	for _, section := range [][]RestaurantEntry{first, second} {
		for i, entry := range section {
			if entry.Info == nil || entry.Info.ID == "" {
				return nil, fmt.Errorf("restaurant entry %d has no id", i)
			}
			out = append(out, MapRestaurant(*entry.Info))
		}
	}
	return out, nil
}

// MapRestaurant converts a single upstream record
func MapRestaurant(info RestaurantInfo) domain.Restaurant {
	r := domain.Restaurant{
		ID:              info.ID,
		Name:            info.Name,
		ImageID:         info.CloudinaryImageID.Value,
		Cuisines:        info.Cuisines.Value,
		AreaName:        info.AreaName.Value,
		AvgRatingString: info.AvgRatingString.Value,
		IsVeg:           info.Veg.Value,
	}
	if info.AvgRating.Value != nil {
		r.AvgRating = domain.Float(*info.AvgRating.Value)
	}
	if sla := info.SLA.Value; sla != nil {
		r.ETASummary = sla.SlaString
	}
	if d := info.Discount.Value; d != nil {
		r.DiscountHeader = d.Header
		r.DiscountSubHeader = d.SubHeader
	}
	return r
}
