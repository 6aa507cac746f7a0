package util

import (
	"fmt"
	"strings"
	"time"
)

var clockLayouts = []string{"15:04", "3:04PM", "3:04 PM", "03:04PM", "03:04 PM"}

const clockFormats = "Valid formats:\n" +
	"• 24-hour format: HH:MM (e.g., '23:30', '09:45')\n" +
	"• 12-hour format: HH:MM[AM|PM] (e.g., '11:30PM', '9:45 AM')"

// NextClockTime returns the next moment, strictly after now, whose wall
// clock reads the given time of day in now's location.
func NextClockTime(input string, now time.Time) (time.Time, error) {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	for _, layout := range clockLayouts {
		parsed, err := time.Parse(layout, normalized)
		if err != nil {
			continue
		}
		target := time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
		if !target.After(now) {
			target = target.AddDate(0, 0, 1)
		}
		return target, nil
	}
	return time.Time{}, fmt.Errorf("invalid time format: %s\n\n%s", normalized, clockFormats)
}

// SecondsUntil returns the whole seconds between now and the next occurrence
// of the given time of day.
func SecondsUntil(input string, now time.Time) (int, error) {
	target, err := NextClockTime(input, now)
	if err != nil {
		return 0, err
	}
	return int(target.Sub(now) / time.Second), nil
}
