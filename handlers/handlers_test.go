package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"dishfinder/directory"
	"dishfinder/handlers"
	"dishfinder/models"
)

type stubSource struct {
	byID map[string]models.Restaurant
}

func (s stubSource) FetchDirectory(context.Context) (models.Directory, error) {
	return models.Directory{}, nil
}

func (s stubSource) FetchRestaurant(_ context.Context, id string) (models.Restaurant, bool) {
	r, ok := s.byID[id]
	return r, ok
}

func fixture() models.Directory {
	return models.Directory{
		{County: "Nairobi", Restaurants: []models.Restaurant{
			{
				ID: "r1", Name: "Trattoria", Cuisine: "Italian", PriceRange: "KES 1000-2000", Rating: 4.2,
				SocialMedia: []string{"https://instagram.com/trattoria"},
				Dishes: []models.Dish{
					{Name: "Pizza Margherita", Description: "Tomato and basil"},
					{Name: "Calzone", Description: "Folded pizza"},
				},
			},
			{
				ID: "r2", Name: "Mama Oliech", Cuisine: "Kenyan", PriceRange: "KES 3500+", Rating: 3.0,
				Dishes: []models.Dish{{Name: "Fish", Description: "Tilapia"}},
			},
		}},
		{County: "Mombasa", Restaurants: []models.Restaurant{
			{ID: "m1", Name: "Tamarind", Cuisine: "Seafood", PriceRange: "Upscale", Rating: 4.8},
		}},
	}
}

type searchResponse struct {
	Restaurants []struct {
		ID             string   `json:"id"`
		County         string   `json:"county"`
		FeaturedDishes []string `json:"featured_dishes"`
		ReserveURL     string   `json:"reserve_url"`
	} `json:"restaurants"`
	TotalCount int    `json:"total_count"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

func newMux(t *testing.T, loadErr error) http.Handler {
	t.Helper()
	idx := directory.New()
	if loadErr != nil {
		idx.Replace(nil, loadErr)
	} else {
		idx.Replace(fixture(), nil)
	}
	src := stubSource{byID: map[string]models.Restaurant{"remote": {ID: "remote", Name: "Remote Grill"}}}
	return handlers.Routes(idx, src, rand.New(rand.NewPCG(1, 1)), zaptest.NewLogger(t))
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, searchResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var body searchResponse
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	}
	return rec, body
}

func TestSearch_CountyAndDish(t *testing.T) {
	rec, body := get(t, newMux(t, nil), "/api/search?county=nairobi&dish=Pizza")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body.Restaurants, 1)
	assert.Equal(t, 1, body.TotalCount)
	hit := body.Restaurants[0]
	assert.Equal(t, "r1", hit.ID)
	assert.Equal(t, "Nairobi", hit.County)
	assert.Equal(t, []string{"Pizza Margherita", "Calzone"}, hit.FeaturedDishes)
	assert.Equal(t, "https://instagram.com/trattoria", hit.ReserveURL)
}

func TestSearch_WithFilters(t *testing.T) {
	h := newMux(t, nil)

	_, body := get(t, h, "/api/search?county=Nairobi&price=high")
	require.Len(t, body.Restaurants, 1)
	assert.Equal(t, "r2", body.Restaurants[0].ID)

	_, body = get(t, h, "/api/search?county=Nairobi&rating=4")
	require.Len(t, body.Restaurants, 1)
	assert.Equal(t, "r1", body.Restaurants[0].ID)

	_, body = get(t, h, "/api/search?county=Mombasa&price=low")
	require.Len(t, body.Restaurants, 1, "no digits in price range passes the price filter")
}

func TestSearch_NoResults(t *testing.T) {
	rec, body := get(t, newMux(t, nil), "/api/search?dish=sushi")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, body.Restaurants)
	assert.Empty(t, body.Restaurants)
	assert.Equal(t, "No Results Found", body.Message)
}

func TestSearch_RejectsEmptyCriteria(t *testing.T) {
	rec, body := get(t, newMux(t, nil), "/api/search?cuisine=Italian")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please Select a County or Enter a Dish Name to Search.", body.Error)
}

func TestSearch_RejectsBadFilters(t *testing.T) {
	h := newMux(t, nil)
	rec, _ := get(t, h, "/api/search?county=Nairobi&price=cheap")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = get(t, h, "/api/search?county=Nairobi&rating=five")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearch_LoadFailure(t *testing.T) {
	rec, body := get(t, newMux(t, errors.New("fetch failure")), "/api/search?county=Nairobi")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Failed to Load Restaurant Data. Please Try Again.", body.Error)
}

func TestRecommendations(t *testing.T) {
	h := newMux(t, nil)

	_, body := get(t, h, "/api/recommendations")
	assert.Len(t, body.Restaurants, 3)

	_, body = get(t, h, "/api/recommendations?limit=2")
	require.Len(t, body.Restaurants, 2)
	for _, r := range body.Restaurants {
		assert.NotEmpty(t, r.County)
	}

	rec, _ := get(t, h, "/api/recommendations?limit=-3")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendations_EmptyDirectory(t *testing.T) {
	rec, body := get(t, newMux(t, errors.New("down")), "/api/recommendations")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, body.Restaurants)
	assert.Empty(t, body.Restaurants)
}

func TestRecommendations_ConcurrentRequests(t *testing.T) {
	h := newMux(t, nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recommendations", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		}()
	}
	wg.Wait()
}

func TestRestaurant(t *testing.T) {
	h := newMux(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/restaurants/m1?county=Mombasa", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Tamarind", got["name"])
	assert.Equal(t, "Mombasa", got["county"])
	assert.Equal(t, []interface{}{}, got["dishes"])
	assert.Equal(t, []interface{}{}, got["drinks"])
	assert.Equal(t, []interface{}{}, got["operating_hours"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/restaurants/remote", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Remote Grill")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/restaurants/m1?county=Nairobi", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/restaurants/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetadata(t *testing.T) {
	h := newMux(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/counties", nil))
	var counties []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counties))
	assert.Len(t, counties, 47)
	assert.Contains(t, counties, "Nairobi")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cuisines", nil))
	var cuisines []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cuisines))
	assert.Contains(t, cuisines, "Swahili")
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newMux(t, errors.New("down")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "degraded", got["status"])
	assert.Equal(t, true, got["load_failed"])
}

func TestWithRequestLog(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := handlers.WithRequestLog(inner, zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Len(t, rec.Header().Get(handlers.RequestIDHeader), 36)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(handlers.RequestIDHeader, "abc")
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(handlers.RequestIDHeader))
}
