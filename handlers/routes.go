package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"dishfinder/directory"
	"dishfinder/search"
	"dishfinder/worker"
)

// Routes mounts every endpoint on a new mux.
func Routes(idx *directory.Index, src worker.Source, rnd search.Shuffler, log *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/search", SearchHandler(idx, log))
	mux.HandleFunc("GET /api/recommendations", RecommendationsHandler(idx, rnd))
	mux.HandleFunc("GET /api/restaurants/{id}", RestaurantHandler(idx, src, log))
	mux.HandleFunc("GET /api/counties", CountiesHandler())
	mux.HandleFunc("GET /api/cuisines", CuisinesHandler())
	mux.HandleFunc("GET /healthz", HealthHandler(idx))

	return mux
}
