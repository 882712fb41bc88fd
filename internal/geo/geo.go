// Package geo resolves client IP addresses to an approximate location
// through an ipapi-style HTTP service. Lookups are strictly
// best-effort: every failure returns an error the caller is expected
// to absorb.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"cosmicgarden/internal/domain/flower"
)

const lookupTimeout = 3 * time.Second

// Client implements flower.Locator.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a geolocation client for an ipapi.co-compatible service.
func New(baseURL string, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: lookupTimeout,
		},
		log: log.With("component", "geo"),
	}
}

type lookupResponse struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CountryName string  `json:"country_name"`
	City        string  `json:"city"`
	Error       bool    `json:"error,omitempty"`
	Reason      string  `json:"reason,omitempty"`
}

// Locate resolves ip to a location. The lookup is bounded by its own
// timeout so it can never stall the planting pipeline.
func (c *Client) Locate(ctx context.Context, ip string) (*flower.Geo, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s/json/", c.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation service returned status %d", resp.StatusCode)
	}

	var parsed lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parse geolocation response: %w", err)
	}
	if parsed.Error {
		return nil, fmt.Errorf("geolocation lookup failed: %s", parsed.Reason)
	}

	return &flower.Geo{
		Latitude:  parsed.Latitude,
		Longitude: parsed.Longitude,
		Country:   parsed.CountryName,
		City:      parsed.City,
	}, nil
}
