package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrFetchFailure wraps every transport, query, status or decode failure of a
// directory source.
var ErrFetchFailure = errors.New("fetch failure")

type restaurantFields Restaurant

// UnmarshalJSON accepts a numeric id and a rating sent as a string. A rating
// that does not parse becomes 0. List fields are never left nil.
func (r *Restaurant) UnmarshalJSON(data []byte) error {
	aux := struct {
		*restaurantFields
		ID     json.RawMessage `json:"id"`
		Rating json.RawMessage `json:"rating"`
	}{restaurantFields: (*restaurantFields)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id, err := flexString(aux.ID)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	r.ID = id
	r.Rating = flexFloat(aux.Rating)
	*r = r.WithLists()
	return nil
}

// WithLists returns r with nil list fields replaced by empty ones, so they
// encode as [] rather than null.
func (r Restaurant) WithLists() Restaurant {
	if r.Images == nil {
		r.Images = []string{}
	}
	if r.SocialMedia == nil {
		r.SocialMedia = []string{}
	}
	if r.Dishes == nil {
		r.Dishes = []Dish{}
	}
	if r.Drinks == nil {
		r.Drinks = []Dish{}
	}
	if r.OperatingHours == nil {
		r.OperatingHours = []string{}
	}
	return r
}

func flexString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

func flexFloat(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

// DecodeRestaurants decodes records one at a time. Records that cannot be
// decoded are left out and reported in skipped, keyed by their position.
func DecodeRestaurants(raws []json.RawMessage) (restaurants []Restaurant, skipped []error) {
	restaurants = make([]Restaurant, 0, len(raws))
	for i, raw := range raws {
		var r Restaurant
		if err := json.Unmarshal(raw, &r); err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		restaurants = append(restaurants, r)
	}
	return restaurants, skipped
}

// DecodeCountyGroups decodes a JSON array of county groups. A group whose
// county name is not a string is skipped along with its records; bad records
// inside a good group are skipped on their own. Only a body that is not a
// JSON array at all is an error.
func DecodeCountyGroups(data []byte) (Directory, []error, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, nil, err
	}

	dir := make(Directory, 0, len(raws))
	var skipped []error
	for i, raw := range raws {
		var g struct {
			County      string            `json:"county"`
			Restaurants []json.RawMessage `json:"restaurants"`
		}
		if err := json.Unmarshal(raw, &g); err != nil {
			skipped = append(skipped, fmt.Errorf("county %d: %w", i, err))
			continue
		}
		restaurants, bad := DecodeRestaurants(g.Restaurants)
		for _, err := range bad {
			skipped = append(skipped, fmt.Errorf("county %s: %w", g.County, err))
		}
		dir = append(dir, CountyGroup{County: g.County, Restaurants: restaurants})
	}
	return dir, skipped, nil
}
