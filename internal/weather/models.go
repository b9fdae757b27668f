package weather

// Sample is a single forecast point as returned by the provider.
type Sample struct {
	Timestamp int64   // unix seconds
	Temp      float64 // °C
	Humidity  float64 // percent
	WindSpeed float64 // m/s
}

// SampleSeries is a chronologically ordered forecast, typically at a
// 3-hour cadence spanning up to 5 days. Order is the provider's order.
type SampleSeries []Sample

// Selection chooses how many day buckets of a forecast to render.
type Selection string

const (
	SelectionToday Selection = "today"
	SelectionWeek  Selection = "week"
)
