package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var (
	// ErrNotFound means the forecast lookup failed: transport error,
	// non-2xx response, or an empty forecast for the city.
	ErrNotFound = errors.New("city not found")
	// ErrGeoLookupFailed means the reverse geocode lookup failed.
	ErrGeoLookupFailed = errors.New("geo lookup failed")
)

// Client talks to the OpenWeatherMap HTTP API. Requests run through a
// circuit breaker so a flapping provider fails fast instead of piling up
// slow calls.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

// NewClient creates a gateway client. baseURL is the API root without a
// trailing slash, e.g. "https://api.openweathermap.org/data/2.5".
func NewClient(baseURL, apiKey string, log *zap.Logger) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		breaker: cb,
		log:     log,
	}
}

// Forecast fetches the multi-day forecast for a city. Any failure is
// reported as ErrNotFound wrapping the city name.
func (c *Client) Forecast(ctx context.Context, city string) (SampleSeries, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp     float64 `json:"temp"`
				Humidity float64 `json:"humidity"`
			} `json:"main"`
			Wind struct {
				Speed float64 `json:"speed"`
			} `json:"wind"`
		} `json:"list"`
	}

	if err := c.getJSON(ctx, "/forecast", q, &payload); err != nil {
		c.log.Debug("forecast fetch failed", zap.String("city", city), zap.Error(err))
		return nil, fmt.Errorf("%w: %q", ErrNotFound, city)
	}
	if len(payload.List) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, city)
	}

	series := make(SampleSeries, 0, len(payload.List))
	for _, item := range payload.List {
		series = append(series, Sample{
			Timestamp: item.Dt,
			Temp:      item.Main.Temp,
			Humidity:  item.Main.Humidity,
			WindSpeed: item.Wind.Speed,
		})
	}
	return series, nil
}

// CityByCoordinates resolves a latitude/longitude pair to a city name.
// Any failure is reported as ErrGeoLookupFailed.
func (c *Client) CityByCoordinates(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("appid", c.apiKey)

	var payload struct {
		Name string `json:"name"`
	}

	if err := c.getJSON(ctx, "/weather", q, &payload); err != nil {
		c.log.Debug("reverse geocode failed", zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		return "", fmt.Errorf("%w: %.4f,%.4f", ErrGeoLookupFailed, lat, lon)
	}
	if payload.Name == "" {
		return "", fmt.Errorf("%w: %.4f,%.4f", ErrGeoLookupFailed, lat, lon)
	}
	return payload.Name, nil
}

// getJSON performs a GET through the circuit breaker and decodes the body.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		return err
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}
