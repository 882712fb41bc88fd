package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestClient_Locate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/203.0.113.7/json/", r.URL.Path)
		w.Write([]byte(`{
			"latitude": 38.72,
			"longitude": -9.14,
			"country_name": "Portugal",
			"city": "Lisbon"
		}`))
	}))
	defer server.Close()

	geo, err := New(server.URL, slog.Default()).Locate(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, "Portugal", geo.Country)
	assert.Equal(t, "Lisbon", geo.City)
	assert.InDelta(t, 38.72, geo.Latitude, 0.001)
	assert.InDelta(t, -9.14, geo.Longitude, 0.001)
}

func TestClient_Locate_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": true, "reason": "Reserved IP Address"}`))
	}))
	defer server.Close()

	_, err := New(server.URL, slog.Default()).Locate(context.Background(), "10.0.0.1")
	assert.ErrorContains(t, err, "Reserved IP Address")
}

func TestClient_Locate_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := New(server.URL, slog.Default()).Locate(context.Background(), "203.0.113.7")
	assert.Error(t, err)
}

func TestClient_Locate_Unreachable(t *testing.T) {
	_, err := New("http://127.0.0.1:1", slog.Default()).Locate(context.Background(), "203.0.113.7")
	assert.Error(t, err)
}
