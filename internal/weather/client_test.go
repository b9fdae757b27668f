package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const forecastJSON = `{
	"list": [
		{"dt": 1746435600, "main": {"temp": 11.5, "humidity": 64}, "wind": {"speed": 3.4}},
		{"dt": 1746446400, "main": {"temp": 14.0, "humidity": 58}, "wind": {"speed": 4.1}}
	]
}`

func TestClient_Forecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Kyiv" || q.Get("units") != "metric" || q.Get("appid") != "test-key" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(forecastJSON))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", zap.NewNop())
	series, err := c.Forecast(context.Background(), "Kyiv")
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("want 2 samples, got %d", len(series))
	}
	if series[0].Temp != 11.5 || series[0].Humidity != 64 || series[0].WindSpeed != 3.4 {
		t.Fatalf("first sample mismatch: %+v", series[0])
	}
	if series[0].Timestamp != 1746435600 {
		t.Fatalf("timestamp mismatch: %d", series[0].Timestamp)
	}
}

func TestClient_Forecast_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", zap.NewNop())
	_, err := c.Forecast(context.Background(), "Nowhere")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "Nowhere") {
		t.Fatalf("error must mention the city: %v", err)
	}
}

func TestClient_Forecast_EmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"list": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", zap.NewNop())
	_, err := c.Forecast(context.Background(), "Kyiv")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty forecast must be ErrNotFound, got %v", err)
	}
}

func TestClient_CityByCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("lat") == "" || q.Get("lon") == "" {
			t.Errorf("missing coordinates in query %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"name": "Kyiv"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", zap.NewNop())
	city, err := c.CityByCoordinates(context.Background(), 50.4501, 30.5234)
	if err != nil {
		t.Fatalf("CityByCoordinates: %v", err)
	}
	if city != "Kyiv" {
		t.Fatalf("want Kyiv, got %q", city)
	}
}

func TestClient_CityByCoordinates_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", zap.NewNop())
	_, err := c.CityByCoordinates(context.Background(), 0, 0)
	if !errors.Is(err, ErrGeoLookupFailed) {
		t.Fatalf("want ErrGeoLookupFailed, got %v", err)
	}
}
