package handlers

import (
	"net/http"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"dishfinder/directory"
	"dishfinder/search"
	"dishfinder/worker"
)

// RestaurantHandler serves the details modal. With ?county= the restaurant is
// looked up in the loaded directory; without it the source is asked directly.
func RestaurantHandler(idx *directory.Index, src worker.Source, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "id is required")
			return
		}

		county := r.URL.Query().Get("county")
		var found bool
		var listing Listing
		if county != "" {
			res, ok := idx.Find(id, county)
			listing, found = newListing(res, ""), ok
		} else if src != nil {
			res, ok := src.FetchRestaurant(r.Context(), id)
			listing, found = newListing(res, ""), ok
		}

		if !found {
			log.Debug("Restaurant not found", zap.String("id", id), zap.String("county", county))
			writeError(w, http.StatusNotFound, "Restaurant not found")
			return
		}
		writeJSON(w, http.StatusOK, listing)
	}
}

type lockedShuffler struct {
	mu  sync.Mutex
	rnd search.Shuffler
}

func (l *lockedShuffler) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rnd.Shuffle(n, swap)
}

// RecommendationsHandler serves the "you might like" list. ?limit= overrides
// the default of six.
func RecommendationsHandler(idx *directory.Index, rnd search.Shuffler) http.HandlerFunc {
	var shuffler search.Shuffler
	if rnd != nil {
		shuffler = &lockedShuffler{rnd: rnd}
	}
	return func(w http.ResponseWriter, r *http.Request) {
		limit := search.DefaultRecommendations
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			limit = n
		}
		picks := search.Recommend(idx.Snapshot(), limit, shuffler)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"restaurants": newListings(picks, ""),
		})
	}
}
