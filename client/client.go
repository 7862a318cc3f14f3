// Package client reads the restaurant directory from the upstream JSON API.
//
// Failures never reach callers as faults: FetchDirectory degrades to an empty
// directory and FetchRestaurant to "absent". Both log what went wrong.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"dishfinder/models"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     *zap.Logger
}

func New(baseURL string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    httpClient,
		Log:     log,
	}
}

// FetchDirectory loads every county group. The endpoint may answer with
// {"restaurants": [...]} or with the bare array. On failure the returned
// directory is empty and the error wraps models.ErrFetchFailure; it has
// already been logged. Records that do not decode are logged and left out.
func (c *Client) FetchDirectory(ctx context.Context) (models.Directory, error) {
	body, status, err := c.get(ctx, "/restaurants")
	if err == nil && status/100 != 2 {
		err = fmt.Errorf("unexpected status %d", status)
	}
	var dir models.Directory
	if err == nil {
		dir, err = DecodeDirectory(body, c.Log)
	}
	if err != nil {
		c.Log.Error("Error fetching restaurants", zap.String("url", c.BaseURL+"/restaurants"), zap.Error(err))
		return models.Directory{}, fmt.Errorf("%w: restaurants: %v", models.ErrFetchFailure, err)
	}
	c.Log.Debug("Fetched restaurants", zap.Int("counties", len(dir)), zap.Int("restaurants", dir.Len()))
	return dir, nil
}

// FetchRestaurant loads one restaurant by id. A 404 or any failure reports
// the restaurant as absent.
func (c *Client) FetchRestaurant(ctx context.Context, id string) (models.Restaurant, bool) {
	path := "/restaurants/" + url.PathEscape(id)
	body, status, err := c.get(ctx, path)
	if err == nil && status == http.StatusNotFound {
		c.Log.Debug("Restaurant not found", zap.String("id", id))
		return models.Restaurant{}, false
	}
	if err == nil && status/100 != 2 {
		err = fmt.Errorf("unexpected status %d", status)
	}
	var r models.Restaurant
	if err == nil {
		err = json.Unmarshal(body, &r)
	}
	if err == nil && r.ID == "" && r.Name == "" {
		err = errors.New("empty restaurant payload")
	}
	if err != nil {
		c.Log.Error("Error fetching restaurant by id", zap.String("id", id), zap.Error(err))
		return models.Restaurant{}, false
	}
	return r, true
}

func (c *Client) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// DecodeDirectory accepts either the wrapped or the bare directory shape.
// Malformed county groups and records are skipped and logged on log; only a
// body that is neither shape fails.
func DecodeDirectory(body []byte, log *zap.Logger) (models.Directory, error) {
	if log == nil {
		log = zap.NewNop()
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty body")
	}

	groups := trimmed
	if trimmed[0] != '[' {
		var wrapped struct {
			Restaurants json.RawMessage `json:"restaurants"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, err
		}
		groups = bytes.TrimSpace(wrapped.Restaurants)
		if len(groups) == 0 || bytes.Equal(groups, []byte("null")) {
			return models.Directory{}, nil
		}
	}

	dir, skipped, err := models.DecodeCountyGroups(groups)
	if err != nil {
		return nil, err
	}
	for _, e := range skipped {
		log.Warn("Skipping malformed restaurant record", zap.Error(e))
	}
	return dir, nil
}
