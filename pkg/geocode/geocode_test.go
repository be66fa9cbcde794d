package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocode(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/geocode/search", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "99 Rama IV Rd 10110", r.URL.Query().Get("text"))
		fmt.Fprint(w, `{"results":[{"lat":13.7306,"lon":100.5418}]}`)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, time.Second)
	lat, lon, err := client.Geocode(context.Background(), "99 Rama IV Rd 10110")
	require.NoError(t, err)
	assert.InDelta(t, 13.7306, lat, 1e-9)
	assert.InDelta(t, 100.5418, lon, 1e-9)

	// Second lookup for the same text is served from cache.
	_, _, err = client.Geocode(context.Background(), "99 Rama IV Rd 10110")
	require.NoError(t, err)
	assert.Equal(t, 1, requests)
}

func TestGeocodeNoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"results":[]}`)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, time.Second)
	_, _, err := client.Geocode(context.Background(), "nowhere")
	assert.Error(t, err)
}

func TestGeocodeBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, time.Second)
	for i := 0; i < 10; i++ {
		_, _, err := client.Geocode(context.Background(), "nowhere")
		assert.Error(t, err)
	}
	assert.Equal(t, 5, requests, "breaker stops hitting the provider after five failures")
}

func TestStaticMap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/staticmap", r.URL.Path)
		assert.Equal(t, "png", r.URL.Query().Get("format"))
		assert.Len(t, r.URL.Query()["marker"], 2)
		w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, time.Second)
	image, err := client.StaticMap(context.Background(), 13.7, 100.5, 13.75, 100.54)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), image)
}

func TestStaticMapProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, time.Second)
	_, err := client.StaticMap(context.Background(), 13.7, 100.5, 13.75, 100.54)
	assert.ErrorContains(t, err, "429")
}

func TestZoomForDistance(t *testing.T) {
	cases := []struct {
		km   float64
		want int
	}{
		{0.5, 15},
		{1, 15},
		{3, 12},
		{15, 10},
		{80, 8},
		{400, 6},
		{2000, 5},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, zoomForDistance(tc.km), "%.1f km", tc.km)
	}
}

func TestHaversineKm(t *testing.T) {
	// Bangkok to Chiang Mai is roughly 580 km.
	d := haversineKm(13.7563, 100.5018, 18.7883, 98.9853)
	assert.InDelta(t, 580, d, 15)

	assert.Zero(t, haversineKm(13.7, 100.5, 13.7, 100.5))
}
