package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidTimeFormat is returned for notification times that are not
// valid 24-hour "HH:mm" strings.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// A single-digit hour is accepted ("8:30"), single-digit minutes are not.
var timeOfDayRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseTimeOfDay validates a user-supplied notification time. It trims
// surrounding whitespace and returns the trimmed value on success.
func ParseTimeOfDay(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !timeOfDayRe.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return s, nil
}
