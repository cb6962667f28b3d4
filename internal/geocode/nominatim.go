// Package geocode resolves free-text place names to coordinates using
// the OpenStreetMap Nominatim service. It is only used while running
// `auroraeye configure`.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org/search"

// Nominatim's usage policy requires an identifying User-Agent.
const userAgent = "auroraeye/1.0 (aurora visibility tracker)"

// ErrNotFound means the service answered but had no match for the query.
var ErrNotFound = errors.New("location not found")

// Client is a Nominatim forward-geocoding client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a geocoding client with the given request timeout.
func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		logger:     logger,
	}
}

// Resolve converts "city, country" to coordinates.
func (c *Client) Resolve(ctx context.Context, city, country string) (lat, lon float64, err error) {
	query := fmt.Sprintf("%s, %s", city, country)
	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("looking up coordinates", zap.String("query", query))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, 0, fmt.Errorf("nominatim API error: status %d: %s", resp.StatusCode, body)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return 0, 0, fmt.Errorf("decode response: %w", err)
	}

	if len(places) == 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrNotFound, query)
	}

	// Nominatim encodes coordinates as strings.
	lat, err = strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse latitude %q: %w", places[0].Lat, err)
	}
	lon, err = strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse longitude %q: %w", places[0].Lon, err)
	}

	c.logger.Info("resolved location",
		zap.String("query", query),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))

	return lat, lon, nil
}

// Nominatim API response types.

type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}
