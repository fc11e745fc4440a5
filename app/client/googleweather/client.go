package googleweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tourplan/app/config"

	"github.com/samber/do"
	"github.com/samber/oops"
	"golang.org/x/sync/singleflight"
	"googlemaps.github.io/maps"
)

const (
	weatherBaseURL = "https://weather.googleapis.com/v1/forecast/hours:lookup"
	requestTimeout = 15 * time.Second
)

var (
	ErrNoGeocodeResults = errors.New("address did not geocode to any location")
	ErrBadForecast      = errors.New("invalid hourly forecast response")
)

// Client resolves a free-text address to coordinates and fetches the
// hourly forecast for them. Results are never cached; concurrent
// lookups for the same address share one in-flight request.
type Client struct {
	apiKey     string
	geocoder   *maps.Client
	httpClient *http.Client
	baseURL    string

	group singleflight.Group
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	geocoder, err := maps.NewClient(maps.WithAPIKey(cfg.GoogleMaps.Key))
	if err != nil {
		return nil, oops.Errorf("failed to create maps client: %w", err)
	}

	return &Client{
		apiKey:   cfg.GoogleMaps.Key,
		geocoder: geocoder,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: weatherBaseURL,
	}, nil
}

// Forecast geocodes the address and returns the normalized hourly
// forecast for the resolved coordinates, in provider order.
func (c *Client) Forecast(ctx context.Context, address string) ([]HourlyForecast, error) {
	key := strings.ToLower(strings.TrimSpace(address))

	v, err, _ := c.group.Do(key, func() (any, error) {
		lat, lng, err := c.geocode(ctx, address)
		if err != nil {
			return nil, err
		}

		return c.fetchHours(ctx, lat, lng)
	})
	if err != nil {
		return nil, err
	}

	return v.([]HourlyForecast), nil
}

func (c *Client) geocode(ctx context.Context, address string) (float64, float64, error) {
	results, err := c.geocoder.Geocode(ctx, &maps.GeocodingRequest{
		Address: address,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding request failed: %w", err)
	}

	if len(results) == 0 {
		return 0, 0, fmt.Errorf("%q: %w", address, ErrNoGeocodeResults)
	}

	location := results[0].Geometry.Location
	return location.Lat, location.Lng, nil
}

func (c *Client) fetchHours(ctx context.Context, lat, lng float64) ([]HourlyForecast, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("location.latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("location.longitude", strconv.FormatFloat(lng, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast request returned status %d: %w", resp.StatusCode, ErrBadForecast)
	}

	var payload forecastResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode forecast response: %w", err)
	}

	if len(payload.ForecastHours) == 0 {
		return nil, fmt.Errorf("no forecast hours in response: %w", ErrBadForecast)
	}

	return normalizeHours(payload.ForecastHours)
}
