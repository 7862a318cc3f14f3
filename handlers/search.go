package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"dishfinder/directory"
	"dishfinder/models"
	"dishfinder/search"
)

const (
	msgNoResults    = "No Results Found"
	msgLoadFailed   = "Failed to Load Restaurant Data. Please Try Again."
	msgNeedCriteria = "Please Select a County or Enter a Dish Name to Search."
)

var errBadFilter = errors.New("invalid filter")

// Listing is a restaurant as shown on a result card.
type Listing struct {
	models.Restaurant
	FeaturedDishes []string `json:"featured_dishes,omitempty"`
	ReserveURL     string   `json:"reserve_url,omitempty"`
}

func newListing(r models.Restaurant, dishQuery string) Listing {
	return Listing{
		Restaurant:     r.WithLists(),
		FeaturedDishes: search.MatchingDishPreview(r, dishQuery, search.DefaultPreviewLimit),
		ReserveURL:     r.ReserveURL(),
	}
}

func newListings(rs []models.Restaurant, dishQuery string) []Listing {
	out := make([]Listing, 0, len(rs))
	for _, r := range rs {
		out = append(out, newListing(r, dishQuery))
	}
	return out
}

// ParseSearchParams reads the search form from the URL query. "dish" falls
// back to "q". An unknown price tier or a non-numeric rating is an error.
func ParseSearchParams(query url.Values) (models.SearchCriteria, models.FilterSet, error) {
	criteria := models.SearchCriteria{
		County:    query.Get("county"),
		DishQuery: query.Get("dish"),
	}
	if criteria.DishQuery == "" {
		criteria.DishQuery = query.Get("q")
	}

	filters := models.FilterSet{Cuisine: query.Get("cuisine")}

	tier, err := models.ParsePriceTier(query.Get("price"))
	if err != nil {
		return criteria, filters, fmt.Errorf("%w: %v", errBadFilter, err)
	}
	filters.PriceTier = tier

	if v := strings.TrimSpace(query.Get("rating")); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return criteria, filters, fmt.Errorf("%w: %v", errBadFilter, err)
		}
		filters.MinRating = &rating
	}
	return criteria, filters, nil
}

// SearchHandler runs a search followed by the optional filters. A directory
// that failed to load answers 503 so clients can tell it apart from an empty
// result.
func SearchHandler(idx *directory.Index, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria, filters, err := ParseSearchParams(r.URL.Query())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := criteria.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, msgNeedCriteria)
			return
		}
		if idx.LoadFailed() {
			writeError(w, http.StatusServiceUnavailable, msgLoadFailed)
			return
		}

		found := search.Search(idx.Snapshot(), criteria)
		results := search.ApplyFilters(found, filters)

		log.Debug("Search",
			zap.String("county", criteria.County),
			zap.String("dish", criteria.DishQuery),
			zap.Int("matched", len(found)),
			zap.Int("filtered", len(results)))

		resp := map[string]interface{}{
			"restaurants": newListings(results, criteria.Normalize().DishQuery),
			"total_count": len(results),
		}
		if len(results) == 0 {
			resp["message"] = msgNoResults
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
