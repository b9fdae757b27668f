package weather

import (
	"math"
	"net/url"
	"strings"
	"testing"
	"time"
)

// sampleAt builds a Sample at the given UTC instant.
func sampleAt(t *testing.T, y int, m time.Month, d, hh int, temp float64) Sample {
	t.Helper()
	return Sample{
		Timestamp: time.Date(y, m, d, hh, 0, 0, 0, time.UTC).Unix(),
		Temp:      temp,
		Humidity:  64,
		WindSpeed: 3.4,
	}
}

// dayHeaders counts rendered day blocks; every date header ends in "*:".
func dayHeaders(msg string) int {
	return strings.Count(msg, "*:")
}

func TestFormatCityWeatherMessage_TodayOneBucket(t *testing.T) {
	series := SampleSeries{
		sampleAt(t, 2025, time.May, 5, 9, 11.5),
		sampleAt(t, 2025, time.May, 5, 12, 14.0),
		sampleAt(t, 2025, time.May, 5, 15, 15.2),
		sampleAt(t, 2025, time.May, 6, 9, 10.0),
	}
	msg := FormatCityWeatherMessage("Kyiv", series, SelectionToday)

	if !strings.Contains(msg, "Погода в місті Kyiv") {
		t.Fatalf("message must mention the city: %q", msg)
	}
	if got := dayHeaders(msg); got != 1 {
		t.Fatalf("want exactly 1 date header, got %d:\n%s", got, msg)
	}
	if !strings.Contains(msg, "Monday, 5 May 2025") {
		t.Fatalf("want first bucket's date header, got:\n%s", msg)
	}
	if strings.Contains(msg, "6 May") {
		t.Fatalf("today selection must not include the second date:\n%s", msg)
	}

	// One line per sample of the first bucket, chronological order.
	i9 := strings.Index(msg, "⏰ *09:00*")
	i12 := strings.Index(msg, "⏰ *12:00*")
	i15 := strings.Index(msg, "⏰ *15:00*")
	if i9 < 0 || i12 < 0 || i15 < 0 {
		t.Fatalf("missing sample lines:\n%s", msg)
	}
	if !(i9 < i12 && i12 < i15) {
		t.Fatalf("sample lines out of order:\n%s", msg)
	}
	if strings.Count(msg, "⏰") != 3 {
		t.Fatalf("want 3 sample lines, got %d:\n%s", strings.Count(msg, "⏰"), msg)
	}
}

func TestFormatCityWeatherMessage_WeekCapsAtSevenBuckets(t *testing.T) {
	var series SampleSeries
	for d := 0; d < 9; d++ {
		series = append(series, sampleAt(t, 2025, time.May, 5+d, 12, 20.0))
	}
	msg := FormatCityWeatherMessage("Lviv", series, SelectionWeek)

	if got := dayHeaders(msg); got != 7 {
		t.Fatalf("want 7 date headers, got %d:\n%s", got, msg)
	}
	if !strings.Contains(msg, "5 May 2025") || !strings.Contains(msg, "11 May 2025") {
		t.Fatalf("want the 7 earliest dates:\n%s", msg)
	}
	if strings.Contains(msg, "12 May") || strings.Contains(msg, "13 May") {
		t.Fatalf("dates beyond the seventh must be dropped:\n%s", msg)
	}
}

func TestFormatCityWeatherMessage_UnrecognizedSelectionFallsBackToWeek(t *testing.T) {
	var series SampleSeries
	for d := 0; d < 9; d++ {
		series = append(series, sampleAt(t, 2025, time.May, 5+d, 12, 20.0))
	}
	msg := FormatCityWeatherMessage("Odesa", series, Selection("everything"))

	if got := dayHeaders(msg); got != 7 {
		t.Fatalf("unrecognized selection must take the week path, got %d headers", got)
	}
}

func TestFormatCityWeatherMessage_EmptySeries(t *testing.T) {
	for _, sel := range []Selection{SelectionToday, SelectionWeek, Selection("bogus")} {
		msg := FormatCityWeatherMessage("Kyiv", nil, sel)
		want := "🌍 *Погода в місті Kyiv:*\n\n\n\n" + messageFooter
		if msg != want {
			t.Fatalf("selection %q: empty series message mismatch:\n got %q\nwant %q", sel, msg, want)
		}
	}
}

func TestGenerateShareLink_RoundTrip(t *testing.T) {
	series := SampleSeries{
		sampleAt(t, 2025, time.May, 5, 9, 11.5),
		sampleAt(t, 2025, time.May, 5, 12, 14.0),
	}
	link := GenerateShareLink("Kyiv", series, SelectionToday)

	if !strings.HasPrefix(link, "https://t.me/share/url?url=") {
		t.Fatalf("unexpected link prefix: %q", link)
	}
	// No "+" encoding: spaces must be %20 so any consumer decodes them.
	if strings.Contains(link, "+") {
		t.Fatalf("link must not encode spaces as '+': %q", link)
	}

	decoded, err := url.QueryUnescape(strings.TrimPrefix(link, "https://t.me/share/url?url="))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := FormatCityWeatherMessage("Kyiv", series, SelectionToday); decoded != want {
		t.Fatalf("round trip mismatch:\n got %q\nwant %q", decoded, want)
	}
}

func TestFormatTemperature(t *testing.T) {
	if got := FormatTemperature(20.0); got != "20.0°C" {
		t.Fatalf("FormatTemperature(20.0) = %q", got)
	}
	if got := FormatTemperature(25.7); got != "25.7°C" {
		t.Fatalf("FormatTemperature(25.7) = %q", got)
	}
	if got := FormatTemperature(-3.0); got != "-3.0°C" {
		t.Fatalf("FormatTemperature(-3.0) = %q", got)
	}
	if got := FormatTemperature(math.NaN()); got != "*" {
		t.Fatalf("FormatTemperature(NaN) = %q, want placeholder", got)
	}
}

func TestFormatWindSpeed(t *testing.T) {
	if got := FormatWindSpeed(3.4); got != "3.4 м/с" {
		t.Fatalf("FormatWindSpeed(3.4) = %q", got)
	}
}

func TestFormatHumidity(t *testing.T) {
	if got := FormatHumidity(64); got != "64" {
		t.Fatalf("FormatHumidity(64) = %q", got)
	}
}
