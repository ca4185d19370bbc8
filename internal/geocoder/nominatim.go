// Package geocoder provides a Nominatim (OpenStreetMap) geocoding client.
package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Option configures the client.
type Option func(*NominatimClient)

// WithBaseURL points the client at another Nominatim instance.
func WithBaseURL(baseURL string) Option {
	return func(c *NominatimClient) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *NominatimClient) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the maximum requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *NominatimClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NominatimClient geocodes free-form queries against the Nominatim search API.
type NominatimClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewNominatimClient creates a client. The public instance allows one
// request per second, which is the default limit.
func NewNominatimClient(opts ...Option) *NominatimClient {
	c := &NominatimClient{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(1, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geocode returns the best match for req.Query, or nil when Nominatim has
// no result.
func (c *NominatimClient) Geocode(ctx context.Context, req models.GeocodeRequest) (*models.Coordinates, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("geocoder: rate limit: %w", err)
	}

	params := url.Values{
		"q":      {req.Query},
		"format": {"jsonv2"},
		"limit":  {"1"},
	}
	if req.CountryHint != "" {
		params.Set("countrycodes", req.CountryHint)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocoder: build request: %w", err)
	}
	if req.UserAgent != "" {
		httpReq.Header.Set("User-Agent", req.UserAgent)
	}
	httpReq.Header.Set("Accept-Language", "ja")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("geocoder: request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder: nominatim returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("geocoder: read body: %w", err)
	}

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, fmt.Errorf("geocoder: parse response: %w", err)
	}
	if len(places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder: parse latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder: parse longitude %q: %w", places[0].Lon, err)
	}

	return &models.Coordinates{Latitude: lat, Longitude: lon}, nil
}
