// Package search implements the restaurant filter and search engine. All
// functions are pure over the directory value they are handed and never
// fail: missing fields simply do not match.
package search

import (
	"strings"

	"dishfinder/models"
)

const (
	// DefaultPreviewLimit is how many matching dish names a result card shows.
	DefaultPreviewLimit = 3
	// DefaultRecommendations is the size of the "you might like" list.
	DefaultRecommendations = 6
)

// Search selects restaurants by county and dish. The county match is
// case-insensitive; the dish query matches any dish name or description as a
// case-insensitive substring. Output keeps county-then-restaurant order and
// each entry is annotated with its county.
//
// Criteria that fail Validate yield nil; callers reject those requests before
// getting here.
func Search(dir models.Directory, criteria models.SearchCriteria) []models.Restaurant {
	c := criteria.Normalize()
	if c.Validate() != nil {
		return nil
	}

	results := []models.Restaurant{}
	for _, group := range dir {
		if c.County != "" && !strings.EqualFold(group.County, c.County) {
			continue
		}
		for _, r := range group.Restaurants {
			if c.DishQuery != "" && !hasDish(r, c.DishQuery) {
				continue
			}
			r.County = group.County
			results = append(results, r)
		}
	}
	return results
}

// MatchingDishPreview returns up to limit dish names, in menu order, whose
// name or description contains query. An empty query returns an empty slice.
func MatchingDishPreview(r models.Restaurant, query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	names := []string{}
	if q == "" || limit <= 0 {
		return names
	}
	for _, d := range r.Dishes {
		if dishMatches(d, q) {
			names = append(names, d.Name)
			if len(names) == limit {
				break
			}
		}
	}
	return names
}

func hasDish(r models.Restaurant, q string) bool {
	for _, d := range r.Dishes {
		if dishMatches(d, q) {
			return true
		}
	}
	return false
}

// q must already be lower-cased.
func dishMatches(d models.Dish, q string) bool {
	return strings.Contains(strings.ToLower(d.Name), q) ||
		strings.Contains(strings.ToLower(d.Description), q)
}
