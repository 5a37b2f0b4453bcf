package swiggy

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ListResponse is the top level listing envelope. Cards are kept raw because
// every card position carries a different payload; only the two grid cards
// are decoded.
type ListResponse struct {
	StatusCode int       `json:"statusCode"`
	Data       *ListData `json:"data"`
}

// ListData holds the card array
type ListData struct {
	Cards []json.RawMessage `json:"cards"`
}

// CardWrapper is one entry of data.cards ({"card": {"card": {...}}})
type CardWrapper struct {
	Card *CardEnvelope `json:"card"`
}

// CardEnvelope is the middle "card" level
type CardEnvelope struct {
	Card *GridCard `json:"card"`
}

// GridCard is a card that lays restaurants out in a grid
type GridCard struct {
	ID           string        `json:"id,omitempty"`
	GridElements *GridElements `json:"gridElements"`
}

// GridElements wraps the styled info block
type GridElements struct {
	InfoWithStyle *InfoWithStyle `json:"infoWithStyle"`
}

// InfoWithStyle carries the restaurant list. A nil pointer means the key was absent.
type InfoWithStyle struct {
	Restaurants *[]RestaurantEntry `json:"restaurants"`
}

// RestaurantEntry is one element of the restaurants array
type RestaurantEntry struct {
	Info *RestaurantInfo `json:"info"`
}

// RestaurantInfo is the per-restaurant payload. Only id and name are
// decoded strictly; a badly typed optional field reads as absent.
type RestaurantInfo struct {
	ID                string                  `json:"id"`
	Name              string                  `json:"name"`
	CloudinaryImageID Optional[string]        `json:"cloudinaryImageId"`
	Locality          Optional[string]        `json:"locality"`
	AreaName          Optional[string]        `json:"areaName"`
	CostForTwo        Optional[string]        `json:"costForTwo"`
	Cuisines          Optional[[]string]      `json:"cuisines"`
	AvgRating         Rating                  `json:"avgRating"`
	AvgRatingString   Optional[string]        `json:"avgRatingString"`
	Veg               Optional[bool]          `json:"veg"`
	SLA               Optional[*SLA]          `json:"sla"`
	Discount          Optional[*DiscountInfo] `json:"aggregatedDiscountInfoV3"`
}

// Optional decodes a field upstream sometimes sends with another type. A
// mismatch leaves the zero value instead of failing the whole card.
type Optional[T any] struct {
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		o.Value = zero
		return nil
	}
	o.Value = v
	return nil
}

// Rating is avgRating: a number, a numeric string, or anything else
// (e.g. "--") meaning unrated.
type Rating struct {
	Value *float64
}

func (r *Rating) UnmarshalJSON(data []byte) error {
	r.Value = nil
	if string(data) == "null" {
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		var s string
		if json.Unmarshal(data, &s) != nil {
			return nil
		}
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return nil
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	r.Value = &f
	return nil
}

// SLA holds delivery estimates
type SLA struct {
	DeliveryTime int    `json:"deliveryTime,omitempty"`
	SlaString    string `json:"slaString,omitempty"`
}

// DiscountInfo is the discount badge shown over the card image
type DiscountInfo struct {
	Header    string `json:"header,omitempty"`
	SubHeader string `json:"subHeader,omitempty"`
}
