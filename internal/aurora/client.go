// Package aurora is the client for the Auroras.live API, which reports
// geomagnetic activity (KP index) for a coordinate pair.
package aurora

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "http://api.auroras.live/v1/"

// DefaultTimeout bounds each per-location request.
const DefaultTimeout = 10 * time.Second

// ErrNoKP means the API answered but the response carried no KP value.
var ErrNoKP = errors.New("unable to determine KP index from API response")

// Client issues one GET per location against the Auroras.live endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates an aurora API client.
func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		logger:     logger,
	}
}

// Fetch requests current conditions for the coordinates and extracts the
// KP index. The raw response body is returned alongside for debugging.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (kp float64, raw []byte, err error) {
	params := url.Values{
		"type":     {"all"},
		"lat":      {strconv.FormatFloat(lat, 'f', -1, 64)},
		"long":     {strconv.FormatFloat(lon, 'f', -1, 64)},
		"forecast": {"false"},
		"threeday": {"false"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	c.logger.Debug("fetching aurora data", zap.Float64("lat", lat), zap.Float64("lon", lon))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("aurora API request: %w", err)
	}
	defer resp.Body.Close()

	raw, err = io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, nil, fmt.Errorf("aurora API error: status %d: %s", resp.StatusCode, raw)
	}

	kp, err = extractKP(raw)
	if err != nil {
		return 0, raw, err
	}

	c.logger.Debug("aurora data fetched", zap.Float64("kp", kp))
	return kp, raw, nil
}

// extractKP digs the KP index out of the response. It lives at ace.kp,
// or ace.current.kp in some payload variants, and may be encoded as a
// JSON number or a quoted string.
func extractKP(raw []byte) (float64, error) {
	var body apiResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	if body.Ace.KP.present {
		return body.Ace.KP.value, nil
	}
	if body.Ace.Current.KP.present {
		return body.Ace.Current.KP.value, nil
	}
	return 0, ErrNoKP
}

// Auroras.live response types.

type apiResponse struct {
	Ace struct {
		KP      kpValue `json:"kp"`
		Current struct {
			KP kpValue `json:"kp"`
		} `json:"current"`
	} `json:"ace"`
}

// kpValue tolerates both `"kp": 4.33` and `"kp": "4.33"`.
type kpValue struct {
	value   float64
	present bool
}

func (k *kpValue) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse kp %s: %w", data, err)
	}
	k.value = v
	k.present = true
	return nil
}
