package idle

import "time"

// EventType identifies what an Event reports.
type EventType string

const (
	// EventDisplay carries a freshly computed countdown label.
	EventDisplay EventType = "display"
	// EventRemind fires when the remaining seconds hit a reminder mark.
	EventRemind EventType = "remind"
	// EventIdle fires once per expiration of the idle window.
	EventIdle EventType = "idle"
)

// Event is a notification emitted by the Engine.
type Event struct {
	Type      EventType
	Remaining int
	Display   string
	At        time.Time
}

// Handler receives engine notifications on the host loop.
type Handler func(Event)
