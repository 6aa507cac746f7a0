package idle

import (
	"errors"
	"fmt"
	"strings"
)

// Default values used when a field is not configured.
const (
	DefaultDuration = 5 * 60
	DefaultWait     = 0
)

// DefaultEvents returns the activity identifiers watched when none are configured.
func DefaultEvents() []string {
	return []string{"mousemove", "keypress"}
}

// Config is the immutable per-session timer configuration. Durations are in
// whole seconds.
type Config struct {
	Duration  int      `yaml:"duration"`
	Events    []string `yaml:"events"`
	Loop      bool     `yaml:"loop"`
	Reminders []int    `yaml:"reminders"`
	Wait      int      `yaml:"wait"`
}

// DefaultConfig returns a Config populated with the default values.
func DefaultConfig() Config {
	return Config{
		Duration: DefaultDuration,
		Events:   DefaultEvents(),
		Wait:     DefaultWait,
	}
}

// Validate reports the first problem found in the configuration. The engine
// and watcher never call it; whoever builds a Config is expected to.
func (c Config) Validate() error {
	if c.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %d", c.Duration)
	}
	if c.Wait < 0 {
		return fmt.Errorf("wait must not be negative, got %d", c.Wait)
	}
	if len(c.Events) == 0 {
		return errors.New("at least one activity event is required")
	}
	for i, event := range c.Events {
		if strings.TrimSpace(event) == "" {
			return fmt.Errorf("event %d is empty", i)
		}
	}
	return nil
}

// HasReminder reports whether remaining is one of the configured marks.
func (c Config) HasReminder(remaining int) bool {
	for _, mark := range c.Reminders {
		if mark == remaining {
			return true
		}
	}
	return false
}

// WithEvent returns a copy of c that also watches event, unless it is already watched.
func (c Config) WithEvent(event string) Config {
	for _, existing := range c.Events {
		if existing == event {
			return c
		}
	}
	events := make([]string, 0, len(c.Events)+1)
	events = append(events, c.Events...)
	c.Events = append(events, event)
	return c
}
