package domain

// Stage is the per-chat conversation state. The router consults it when a
// free-form text message arrives to decide what the user is answering.
type Stage int

const (
	// StageIdle means no question is pending; free-form text is ignored.
	StageIdle Stage = iota
	// StageAwaitingCity means the next text message is a city name to add.
	StageAwaitingCity
	// StageAwaitingNotificationTime means the next text message is an
	// "HH:mm" time for the city carried in Session.City.
	StageAwaitingNotificationTime
)

// Session is the conversation state for one chat. The zero value is idle.
type Session struct {
	Stage Stage
	City  string // set only while awaiting a notification time
}
