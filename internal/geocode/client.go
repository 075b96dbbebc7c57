// Package geocode resolves contractor names to coordinates with the Google
// Geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const DefaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// ErrNoResults is returned when the provider knows no place by that name.
var ErrNoResults = errors.New("geocode: no results")

type Location struct {
	Lat              float64
	Lng              float64
	FormattedAddress string
}

// Geocoder turns a free-form address or company name into a location.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Location, error)
}

// Client implements Geocoder against the Google Geocoding API.
type Client struct {
	key        string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(key, baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		key:     key,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *Client) Geocode(ctx context.Context, address string) (Location, error) {
	params := url.Values{
		"address": {address},
		"key":     {c.key},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Location{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Location{}, fmt.Errorf("geocode API error: status %d: %s", resp.StatusCode, body)
	}

	var gr response
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return Location{}, fmt.Errorf("decode response: %w", err)
	}

	switch gr.Status {
	case "OK":
	case "ZERO_RESULTS":
		return Location{}, fmt.Errorf("%w for %q", ErrNoResults, address)
	default:
		return Location{}, fmt.Errorf("geocode API status %s: %s", gr.Status, gr.ErrorMessage)
	}
	if len(gr.Results) == 0 {
		return Location{}, fmt.Errorf("%w for %q", ErrNoResults, address)
	}

	r := gr.Results[0]
	loc := Location{
		Lat:              r.Geometry.Location.Lat,
		Lng:              r.Geometry.Location.Lng,
		FormattedAddress: r.FormattedAddress,
	}
	c.logger.Debug().
		Str("address", address).
		Float64("lat", loc.Lat).
		Float64("lng", loc.Lng).
		Msg("Geocoded")
	return loc, nil
}

// Google Geocoding API response types.

type response struct {
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message"`
	Results      []result `json:"results"`
}

type result struct {
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}
