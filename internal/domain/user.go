package domain

// User holds everything the bot tracks for a single chat: the ordered list
// of subscribed cities and the per-city daily notification times.
type User struct {
	ID     int64
	Cities []string // insertion order = display order; duplicates are kept as entered

	// Notifications maps a city to its daily notification time ("HH:mm").
	// At most one time per city; setting again overwrites.
	Notifications map[string]string
}
