package weather

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	messageHeaderFmt = "🌍 *Погода в місті %s:*"
	messageFooter    = "☀️ Залишайтесь на зв'язку з нашим ботом для отримання актуальної інформації!"
	shareURLPrefix   = "https://t.me/share/url?url="

	// All bucketing and rendering uses UTC dates. The provider returns
	// unix timestamps; anchoring to a single zone keeps bucket membership
	// a pure function of the timestamp.
	bucketKeyLayout  = "2006-01-02"
	dateHeaderLayout = "Monday, 2 January 2006"
	timeOfDayLayout  = "15:04"
)

// FormatCityWeatherMessage renders a full weather message for a city:
// fixed header, one block per selected day bucket, fixed footer.
// An empty series yields header and footer with an empty body.
func FormatCityWeatherMessage(city string, series SampleSeries, sel Selection) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(messageHeaderFmt, city))
	b.WriteString("\n\n")
	b.WriteString(renderForecast(series, sel))
	b.WriteString("\n\n")
	b.WriteString(messageFooter)
	return b.String()
}

// GenerateShareLink percent-encodes the full weather message into a
// Telegram share deep-link.
func GenerateShareLink(city string, series SampleSeries, sel Selection) string {
	return shareURLPrefix + encodeComponent(FormatCityWeatherMessage(city, series, sel))
}

// renderForecast buckets the series by calendar date and renders the first
// bucket for "today", or the first up to seven buckets otherwise. Any
// unrecognized selection takes the week path.
func renderForecast(series SampleSeries, sel Selection) string {
	keys, buckets := bucketByDate(series)

	if sel == SelectionToday && len(keys) > 1 {
		keys = keys[:1]
	} else if len(keys) > 7 {
		keys = keys[:7]
	}

	blocks := make([]string, 0, len(keys))
	for _, key := range keys {
		blocks = append(blocks, renderDay(key, buckets[key]))
	}
	return strings.Join(blocks, "\n\n")
}

// bucketByDate groups samples by UTC calendar date, preserving both the
// order in which dates first appear and the per-date sample order.
func bucketByDate(series SampleSeries) ([]string, map[string][]Sample) {
	keys := make([]string, 0)
	buckets := make(map[string][]Sample)
	for _, s := range series {
		key := time.Unix(s.Timestamp, 0).UTC().Format(bucketKeyLayout)
		if _, ok := buckets[key]; !ok {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], s)
	}
	return keys, buckets
}

func renderDay(dateKey string, samples []Sample) string {
	var b strings.Builder
	b.WriteString("*")
	b.WriteString(formatDateHeader(dateKey))
	b.WriteString("*:")
	for _, s := range samples {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("⏰ *%s* - %s, 🌬 %s, 💧 %s%%",
			time.Unix(s.Timestamp, 0).UTC().Format(timeOfDayLayout),
			FormatTemperature(s.Temp),
			FormatWindSpeed(s.WindSpeed),
			FormatHumidity(s.Humidity),
		))
	}
	return b.String()
}

func formatDateHeader(dateKey string) string {
	d, err := time.Parse(bucketKeyLayout, dateKey)
	if err != nil {
		return dateKey
	}
	return d.Format(dateHeaderLayout)
}

// FormatTemperature renders a temperature to one decimal with its unit.
// NaN renders as a placeholder instead of failing.
func FormatTemperature(t float64) string {
	if math.IsNaN(t) {
		return "*"
	}
	return fmt.Sprintf("%.1f°C", t)
}

// FormatWindSpeed renders a wind speed to one decimal with its unit.
func FormatWindSpeed(v float64) string {
	return fmt.Sprintf("%.1f м/с", v)
}

// FormatHumidity renders humidity as an integer percent (no unit).
func FormatHumidity(h float64) string {
	return strconv.FormatFloat(h, 'f', 0, 64)
}

// encodeComponent percent-encodes s for use in a URL query value, using
// %20 for spaces rather than "+".
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
