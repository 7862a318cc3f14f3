package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"dishfinder/models"
)

const restaurantJSON = `json_build_object(
	'id', r.restaurant_id,
	'name', r.name,
	'cuisine', r.cuisine,
	'price_range', COALESCE(r.price_range, ''),
	'rating', COALESCE(r.rating, 0),
	'address', COALESCE(r.address, ''),
	'phone', COALESCE(r.phone, ''),
	'email', COALESCE(r.email, ''),
	'images', COALESCE(r.images, '[]'::jsonb),
	'social_media', COALESCE(r.social_media, '[]'::jsonb),
	'dishes', COALESCE(r.dishes, '[]'::jsonb),
	'drinks', COALESCE(r.drinks, '[]'::jsonb),
	'operating_hours', COALESCE(r.operating_hours, '[]'::jsonb),
	'special_features', COALESCE(r.special_features, '')
)`

// DirectoryQuery returns one row per county, in id order, with its
// restaurants aggregated as a JSON array in insertion order.
var DirectoryQuery = `
	SELECT c.county_name,
	       COALESCE((SELECT json_agg(` + restaurantJSON + ` ORDER BY r.id)
	                 FROM restaurants r WHERE r.county_id = c.id), '[]')
	FROM counties c
	ORDER BY c.id ASC`

var RestaurantQuery = `
	SELECT ` + restaurantJSON + `
	FROM restaurants r
	WHERE r.restaurant_id = $1
	ORDER BY r.id ASC
	LIMIT 1`

// Source serves the directory from PostgreSQL with the same contract as the
// upstream HTTP client.
type Source struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewSource(db *sql.DB, log *zap.Logger) *Source {
	if log == nil {
		log = zap.NewNop()
	}
	return &Source{DB: db, Log: log}
}

// FetchDirectory returns an empty directory and an error wrapping
// models.ErrFetchFailure when the query fails. Restaurant rows whose payload
// does not decode are logged and left out.
func (s *Source) FetchDirectory(ctx context.Context) (models.Directory, error) {
	dir, err := s.readDirectory(ctx)
	if err != nil {
		s.Log.Error("Directory query error", zap.Error(err))
		return models.Directory{}, fmt.Errorf("%w: %v", models.ErrFetchFailure, err)
	}
	return dir, nil
}

func (s *Source) readDirectory(ctx context.Context) (models.Directory, error) {
	rows, err := s.DB.QueryContext(ctx, DirectoryQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dir := models.Directory{}
	for rows.Next() {
		g, skipped, err := ScanCountyGroup(rows)
		if err != nil {
			return nil, err
		}
		for _, e := range skipped {
			s.Log.Warn("Skipping malformed restaurant row", zap.String("county", g.County), zap.Error(e))
		}
		dir = append(dir, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dir, nil
}

// FetchRestaurant reports absent for unknown ids and for query failures.
func (s *Source) FetchRestaurant(ctx context.Context, id string) (models.Restaurant, bool) {
	var raw []byte
	err := s.DB.QueryRowContext(ctx, RestaurantQuery, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Restaurant{}, false
	}
	var r models.Restaurant
	if err == nil {
		err = json.Unmarshal(raw, &r)
	}
	if err != nil {
		s.Log.Error("Restaurant query error", zap.String("id", id), zap.Error(err))
		return models.Restaurant{}, false
	}
	return r, true
}

type rowScanner interface {
	Scan(dest ...any) error
}

// ScanCountyGroup reads one row of DirectoryQuery. Restaurants that fail to
// decode are returned in skipped instead of failing the row.
func ScanCountyGroup(row rowScanner) (models.CountyGroup, []error, error) {
	var g models.CountyGroup
	var restaurantsJSON []byte
	if err := row.Scan(&g.County, &restaurantsJSON); err != nil {
		return g, nil, err
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(restaurantsJSON, &raws); err != nil {
		return g, nil, fmt.Errorf("county %s: %w", g.County, err)
	}
	var skipped []error
	g.Restaurants, skipped = models.DecodeRestaurants(raws)
	return g, skipped, nil
}
