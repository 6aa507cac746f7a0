package idle

import "time"

// TaskID is an opaque handle to a scheduled task. The zero value never refers
// to an armed task, so cancelling it is always a no-op.
type TaskID uint64

// SubscriptionID identifies one handler registered on an EventSource.
type SubscriptionID uint64

// Scheduler runs callbacks on the host loop.
type Scheduler interface {
	// Every runs task repeatedly, every interval, until cancelled.
	Every(interval time.Duration, task func()) TaskID
	// After runs task once after delay unless cancelled first.
	After(delay time.Duration, task func()) TaskID
	// Cancel disarms a task. Unknown and already cancelled IDs are ignored.
	Cancel(id TaskID)
}

// EventSource delivers activity events to subscribed handlers.
type EventSource interface {
	Subscribe(event string, handler func()) SubscriptionID
	Unsubscribe(event string, id SubscriptionID)
}

// Clock reads wall-clock time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads time.Now.
var SystemClock Clock = ClockFunc(time.Now)
