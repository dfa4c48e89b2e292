// Package geocoder implements reverse geocoding against the Google
// Geocoding JSON API, with an optional Redis cache in front of it.
package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"risk_service/internal/domain/model"
	"risk_service/internal/metrics"
)

const maxResponseBytes = 2 << 20

// Client is a reverse-geocoding client.
type Client struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	cache    *redis.Client
	cacheTTL time.Duration
}

// NewClient creates a geocoder. cache may be nil to disable caching.
func NewClient(apiKey, baseURL string, timeout time.Duration, cache *redis.Client, cacheTTL time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:   apiKey,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

type geocodeResponse struct {
	Status  string                `json:"status"`
	Results []model.GeocodeResult `json:"results"`
}

// ReverseGeocode returns the provider's matches for a point, best first.
// A point the provider knows nothing about yields an empty slice, not an
// error.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) ([]model.GeocodeResult, error) {
	// Cache key rounds to ~1 m so repeated clicks on the same spot hit.
	key := fmt.Sprintf("revgeo:%.5f,%.5f", lat, lng)
	if cached, ok := c.cacheGet(ctx, key); ok {
		return cached, nil
	}

	start := time.Now()
	results, err := c.fetch(ctx, lat, lng)
	metrics.GeocodeDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, err
	}

	c.cacheSet(ctx, key, results)
	return results, nil
}

func (c *Client) fetch(ctx context.Context, lat, lng float64) ([]model.GeocodeResult, error) {
	q := url.Values{}
	q.Set("latlng", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("key", c.apiKey)
	u := fmt.Sprintf("%s/json?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status: %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	switch decoded.Status {
	case "OK", "ZERO_RESULTS":
		return decoded.Results, nil
	default:
		return nil, fmt.Errorf("geocoder status: %s", decoded.Status)
	}
}

func (c *Client) cacheGet(ctx context.Context, key string) ([]model.GeocodeResult, bool) {
	if c.cache == nil {
		return nil, false
	}
	data, err := c.cache.Get(ctx, key).Bytes()
	if err != nil {
		metrics.GeocodeCacheMissesTotal.Inc()
		return nil, false
	}
	var results []model.GeocodeResult
	if err := json.Unmarshal(data, &results); err != nil {
		metrics.GeocodeCacheMissesTotal.Inc()
		return nil, false
	}
	metrics.GeocodeCacheHitsTotal.Inc()
	return results, true
}

func (c *Client) cacheSet(ctx context.Context, key string, results []model.GeocodeResult) {
	if c.cache == nil {
		return
	}
	if data, err := json.Marshal(results); err == nil {
		c.cache.Set(ctx, key, data, c.cacheTTL)
	}
}
