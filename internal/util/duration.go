package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const durationFormats = "Valid formats:\n" +
	"• Whole seconds: 300, 90, 0\n" +
	"• Go duration: 5m, 1h30m, 45s"

// ParseSeconds parses either a whole number of seconds or a Go duration
// string. Fractions of a second are truncated.
func ParseSeconds(input string) (int, error) {
	input = strings.TrimSpace(input)
	if seconds, err := strconv.Atoi(input); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("invalid duration format: %s\n\nDurations must not be negative.\n\n%s", input, durationFormats)
		}
		return seconds, nil
	}

	duration, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s\n\n%s", input, durationFormats)
	}
	if duration < 0 {
		return 0, fmt.Errorf("invalid duration format: %s\n\nDurations must not be negative.\n\n%s", input, durationFormats)
	}
	return int(duration / time.Second), nil
}

// ParseReminders parses a comma-separated list of reminder marks. Each mark
// accepts the formats of ParseSeconds. Blank entries are skipped.
func ParseReminders(input string) ([]int, error) {
	var marks []int
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		seconds, err := ParseSeconds(part)
		if err != nil {
			return nil, err
		}
		marks = append(marks, seconds)
	}
	return marks, nil
}

// ParseList splits a comma-separated list, trimming blanks.
func ParseList(input string) []string {
	var items []string
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}
