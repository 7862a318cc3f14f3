package models

import (
	"errors"
	"fmt"
	"strings"
)

// Dish is a single menu entry. Drinks share the same shape.
type Dish struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Restaurant is one directory listing. County is empty as stored in the
// directory and filled in when a listing is returned by the search engine.
type Restaurant struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Cuisine         string   `json:"cuisine"`
	PriceRange      string   `json:"price_range"`
	Rating          float64  `json:"rating"`
	Address         string   `json:"address,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Email           string   `json:"email,omitempty"`
	Images          []string `json:"images"`
	SocialMedia     []string `json:"social_media"`
	Dishes          []Dish   `json:"dishes"`
	Drinks          []Dish   `json:"drinks"`
	OperatingHours  []string `json:"operating_hours"`
	SpecialFeatures string   `json:"special_features,omitempty"`

	County string `json:"county,omitempty"`
}

// ReserveURL is the first social media link, used as the reservation channel.
func (r Restaurant) ReserveURL() string {
	for _, u := range r.SocialMedia {
		if u != "" {
			return u
		}
	}
	return ""
}

// CountyGroup holds the restaurants of one county in upstream order.
type CountyGroup struct {
	County      string       `json:"county"`
	Restaurants []Restaurant `json:"restaurants"`
}

// Directory is the full collection grouped by county. It is replaced
// wholesale on load and never edited in place.
type Directory []CountyGroup

// Counties returns county names in directory order.
func (d Directory) Counties() []string {
	names := make([]string, 0, len(d))
	for _, g := range d {
		names = append(names, g.County)
	}
	return names
}

// Len counts restaurants across every county.
func (d Directory) Len() int {
	n := 0
	for _, g := range d {
		n += len(g.Restaurants)
	}
	return n
}

// Find looks a restaurant up by its id within the named county. Both
// comparisons are exact.
func (d Directory) Find(id, county string) (Restaurant, bool) {
	for _, g := range d {
		if g.County != county {
			continue
		}
		for _, r := range g.Restaurants {
			if r.ID == id {
				r.County = g.County
				return r, true
			}
		}
		return Restaurant{}, false
	}
	return Restaurant{}, false
}

// PriceTier is the coarse price bucket a user can filter by.
type PriceTier string

const (
	PriceLow    PriceTier = "low"
	PriceMedium PriceTier = "medium"
	PriceHigh   PriceTier = "high"
)

// ParsePriceTier accepts the three tier names in any case. An empty string
// yields the zero tier, meaning no price filter.
func ParsePriceTier(s string) (PriceTier, error) {
	switch t := PriceTier(strings.ToLower(strings.TrimSpace(s))); t {
	case "", PriceLow, PriceMedium, PriceHigh:
		return t, nil
	default:
		return "", fmt.Errorf("unknown price tier %q", s)
	}
}

// SearchCriteria is what a user submits from the search form.
type SearchCriteria struct {
	County    string
	DishQuery string
}

// FilterSet refines an existing result list. Zero values are no-ops.
type FilterSet struct {
	Cuisine   string
	PriceTier PriceTier
	MinRating *float64
}

// ErrInvalidSearchRequest is returned when a search names neither a county
// nor a dish.
var ErrInvalidSearchRequest = errors.New("please select a county or enter a dish name to search")

// Normalize trims the county and trims and lower-cases the dish query.
func (c SearchCriteria) Normalize() SearchCriteria {
	return SearchCriteria{
		County:    strings.TrimSpace(c.County),
		DishQuery: strings.ToLower(strings.TrimSpace(c.DishQuery)),
	}
}

// Validate rejects criteria that would match the whole directory.
func (c SearchCriteria) Validate() error {
	n := c.Normalize()
	if n.County == "" && n.DishQuery == "" {
		return ErrInvalidSearchRequest
	}
	return nil
}
