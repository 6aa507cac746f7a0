package idle

import "fmt"

// Engine owns the countdown state. Remaining time is always derived from the
// wall clock and the window start, never accumulated from ticks.
//
// Engine is not safe for concurrent use. It expects a host that runs each
// callback to completion before dispatching the next.
type Engine struct {
	config Config
	clock  Clock
	emit   Handler

	startMillis int64
	remaining   int
	display     string
}

// NewEngine creates an Engine. A nil clock uses SystemClock and a nil handler
// discards notifications.
func NewEngine(config Config, clock Clock, emit Handler) *Engine {
	if clock == nil {
		clock = SystemClock
	}
	if emit == nil {
		emit = func(Event) {}
	}
	return &Engine{
		config:    config,
		clock:     clock,
		emit:      emit,
		remaining: config.Duration,
	}
}

// Initialize starts the first window and renders the initial label. A mark
// equal to the full duration fires here, since no tick reads it in the first
// window.
func (e *Engine) Initialize() {
	e.startMillis = e.nowMillis()
	e.recompute()
	e.computeDisplay()
	e.checkReminders()
}

// Tick samples the clock once. When looping and the window has run out, the
// next window starts one second ahead so the following tick reads the full
// duration instead of one second less.
func (e *Engine) Tick() {
	e.recompute()
	e.computeDisplay()
	e.checkReminders()

	if e.remaining <= 0 && e.config.Loop {
		e.startMillis = e.nowMillis() + 1000
	}
}

// Reset starts a new window at the current time.
func (e *Engine) Reset() {
	e.startMillis = e.nowMillis()
	e.recompute()
	e.computeDisplay()
}

// FireIdle emits the idle notification. It is driven by its own task and does
// not touch the countdown.
func (e *Engine) FireIdle() {
	e.emit(Event{
		Type:      EventIdle,
		Remaining: e.remaining,
		Display:   e.display,
		At:        e.clock.Now(),
	})
}

// Remaining returns the seconds left in the current window as of the last
// sample. It is negative once a non-looping countdown has expired.
func (e *Engine) Remaining() int {
	return e.remaining
}

// Display returns the current label.
func (e *Engine) Display() string {
	return e.display
}

// Frozen reports whether the label has stopped updating because a
// non-looping countdown ran past zero.
func (e *Engine) Frozen() bool {
	return e.remaining < 0 && !e.config.Loop
}

// Duration returns the configured window length in seconds.
func (e *Engine) Duration() int {
	return e.config.Duration
}

func (e *Engine) recompute() {
	elapsedMillis := e.nowMillis() - e.startMillis
	e.remaining = e.config.Duration - int(elapsedMillis/1000)
}

func (e *Engine) computeDisplay() {
	if e.Frozen() {
		return
	}
	e.display = FormatDisplay(e.remaining)
	e.emit(Event{
		Type:      EventDisplay,
		Remaining: e.remaining,
		Display:   e.display,
		At:        e.clock.Now(),
	})
}

func (e *Engine) checkReminders() {
	if e.Frozen() || !e.config.HasReminder(e.remaining) {
		return
	}
	e.emit(Event{
		Type:      EventRemind,
		Remaining: e.remaining,
		Display:   e.display,
		At:        e.clock.Now(),
	})
}

func (e *Engine) nowMillis() int64 {
	return e.clock.Now().UnixMilli()
}

// FormatDisplay renders seconds as MM:SS. Minutes are not wrapped at 60.
// Negative values render as 00:00.
func FormatDisplay(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

