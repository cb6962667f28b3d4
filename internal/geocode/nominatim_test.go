package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		logger:     zap.NewNop(),
	}
}

func TestResolve_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Tromsø, Norway", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		resp := []place{{Lat: "69.6496", Lon: "18.9553", DisplayName: "Tromsø, Troms, Norway"}}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	lat, lon, err := c.Resolve(context.Background(), "Tromsø", "Norway")
	require.NoError(t, err)
	assert.Equal(t, 69.6496, lat)
	assert.Equal(t, 18.9553, lon)
}

func TestResolve_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, _, err := c.Resolve(context.Background(), "Atlantis", "Ocean")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, _, err := c.Resolve(context.Background(), "Tromsø", "Norway")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestResolve_BadCoordinateEncoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat": "north-ish", "lon": "18.9"}]`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, _, err := c.Resolve(context.Background(), "Tromsø", "Norway")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse latitude")
}
