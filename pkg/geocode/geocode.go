// Package geocode talks to the Geoapify HTTP APIs: forward geocoding
// for shipping addresses and static-map rendering for order tracking.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/clinicore/clinic-api/pkg/circuitbreaker"
)

const (
	geocodeCacheTTL = 24 * time.Hour
	mapWidth        = 640
	mapHeight       = 480
)

// PlaceholderPNG is a 1x1 transparent PNG served when the provider is
// unavailable or coordinates are missing.
var PlaceholderPNG = []byte{
	137, 80, 78, 71, 13, 10, 26, 10, 0, 0, 0, 13, 73, 72, 68, 82, 0, 0, 0, 1,
	0, 0, 0, 1, 8, 4, 0, 0, 0, 181, 28, 12, 2, 0, 0, 0, 11, 73, 68, 65, 84,
	120, 156, 99, 96, 96, 0, 0, 0, 3, 0, 1, 104, 38, 89, 13, 0, 0, 0, 0, 73,
	69, 78, 68, 174, 66, 96, 130,
}

type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	breaker    *circuitbreaker.CircuitBreaker
	cache      *gocache.Cache
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseURL:    baseURL,
		breaker: circuitbreaker.New(circuitbreaker.Settings{
			Name:        "geoapify",
			MaxFailures: 5,
			Cooldown:    30 * time.Second,
		}),
		cache: gocache.New(geocodeCacheTTL, 10*time.Minute),
	}
}

type coordinates struct {
	Lat float64
	Lon float64
}

// Geocode resolves a free-text address to coordinates. Results are
// cached per address text.
func (c *Client) Geocode(ctx context.Context, address string) (lat, lon float64, err error) {
	if cached, ok := c.cache.Get(address); ok {
		coords := cached.(coordinates)
		return coords.Lat, coords.Lon, nil
	}

	var coords coordinates
	err = c.breaker.Execute(func() error {
		var execErr error
		coords, execErr = c.geocode(ctx, address)
		return execErr
	})
	if err != nil {
		return 0, 0, err
	}

	c.cache.SetDefault(address, coords)
	return coords.Lat, coords.Lon, nil
}

func (c *Client) geocode(ctx context.Context, address string) (coordinates, error) {
	endpoint := fmt.Sprintf("%s/geocode/search?%s", c.baseURL, url.Values{
		"text":   {address},
		"limit":  {"1"},
		"format": {"json"},
		"apiKey": {c.apiKey},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return coordinates{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return coordinates{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return coordinates{}, fmt.Errorf("geocode request failed with status %d", resp.StatusCode)
	}

	var payload struct {
		Results []struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return coordinates{}, err
	}
	if len(payload.Results) == 0 {
		return coordinates{}, fmt.Errorf("no geocode result for address")
	}
	return coordinates{Lat: payload.Results[0].Lat, Lon: payload.Results[0].Lon}, nil
}

// StaticMap renders a PNG with the shipment and destination markers.
func (c *Client) StaticMap(ctx context.Context, shipLat, shipLon, addrLat, addrLon float64) ([]byte, error) {
	var image []byte
	err := c.breaker.Execute(func() error {
		var execErr error
		image, execErr = c.staticMap(ctx, shipLat, shipLon, addrLat, addrLon)
		return execErr
	})
	if err != nil {
		return nil, err
	}
	return image, nil
}

func (c *Client) staticMap(ctx context.Context, shipLat, shipLon, addrLat, addrLon float64) ([]byte, error) {
	centerLat := (shipLat + addrLat) / 2
	centerLon := (shipLon + addrLon) / 2
	zoom := zoomForDistance(haversineKm(shipLat, shipLon, addrLat, addrLon))

	params := url.Values{
		"style":  {"osm-bright"},
		"width":  {fmt.Sprintf("%d", mapWidth)},
		"height": {fmt.Sprintf("%d", mapHeight)},
		"format": {"png"},
		"apiKey": {c.apiKey},
		"center": {fmt.Sprintf("lonlat:%.6f,%.6f", centerLon, centerLat)},
		"zoom":   {fmt.Sprintf("%d", zoom)},
		"marker": {
			fmt.Sprintf("lonlat:%.6f,%.6f;type:material;color:#ff4d4f;size:64", shipLon, shipLat),
			fmt.Sprintf("lonlat:%.6f,%.6f;type:material;color:#2196f3;size:64", addrLon, addrLat),
		},
	}

	endpoint := fmt.Sprintf("%s/staticmap?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("static map request failed with status %d body %q", resp.StatusCode, body)
	}
	return io.ReadAll(resp.Body)
}

func zoomForDistance(distanceKm float64) int {
	switch {
	case distanceKm <= 1:
		return 15
	case distanceKm <= 5:
		return 12
	case distanceKm <= 20:
		return 10
	case distanceKm <= 100:
		return 8
	case distanceKm <= 500:
		return 6
	default:
		return 5
	}
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Pow(math.Sin(dLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
