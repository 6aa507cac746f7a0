package idle

import (
	"errors"
	"log"
	"time"
)

// TickInterval is the sampling period of the countdown.
const TickInterval = time.Second

// ErrAlreadyStarted is returned by Start when the watcher is already active.
var ErrAlreadyStarted = errors.New("watcher already started")

// State is the watcher's position in the countdown lifecycle.
type State string

const (
	StateIdle    State = "idle"
	StateWaiting State = "waiting"
	StateRunning State = "running"
	StateFired   State = "fired"
	StateExpired State = "expired"
	StateStopped State = "stopped"
)

type subscription struct {
	event string
	id    SubscriptionID
}

// Watcher supervises the engine: it owns the start delay, the idle and tick
// tasks, and the activity subscriptions. The idle and tick tasks are always
// armed and cancelled together.
type Watcher struct {
	config    Config
	engine    *Engine
	scheduler Scheduler
	events    EventSource

	state     State
	delayTask TaskID
	idleTask  TaskID
	tickTask  TaskID
	subs      []subscription
}

// NewWatcher wires an engine to a scheduler and an activity source. The
// engine must have been built with the same config.
func NewWatcher(config Config, engine *Engine, scheduler Scheduler, events EventSource) *Watcher {
	return &Watcher{
		config:    config,
		engine:    engine,
		scheduler: scheduler,
		events:    events,
		state:     StateIdle,
	}
}

// Start begins the session, after the configured wait if there is one.
func (w *Watcher) Start() error {
	switch w.state {
	case StateIdle, StateStopped:
	default:
		return ErrAlreadyStarted
	}

	if w.config.Wait > 0 {
		w.state = StateWaiting
		w.delayTask = w.scheduler.After(time.Duration(w.config.Wait)*time.Second, w.begin)
		log.Printf("watcher: waiting %ds before start", w.config.Wait)
		return nil
	}
	w.begin()
	return nil
}

func (w *Watcher) begin() {
	w.delayTask = 0
	w.engine.Initialize()
	w.arm()
	seen := make(map[string]bool, len(w.config.Events))
	for _, event := range w.config.Events {
		if seen[event] {
			continue
		}
		seen[event] = true
		id := w.events.Subscribe(event, w.OnActivity)
		w.subs = append(w.subs, subscription{event: event, id: id})
	}
	w.state = StateRunning
	log.Printf("watcher: started (duration=%ds loop=%t events=%v)", w.config.Duration, w.config.Loop, w.config.Events)
}

// OnActivity is the shared reset handler. It restarts the idle window and
// both periodic tasks from zero. Calls before the session has begun, or
// after Stop, are ignored.
func (w *Watcher) OnActivity() {
	if !w.begun() {
		return
	}
	w.disarm()
	w.engine.Reset()
	w.arm()
	w.state = StateRunning
}

// Stop cancels every task and removes every subscription the watcher added.
// It is safe to call at any time and more than once.
func (w *Watcher) Stop() {
	if w.state == StateIdle || w.state == StateStopped {
		return
	}
	w.scheduler.Cancel(w.delayTask)
	w.delayTask = 0
	w.disarm()
	for _, sub := range w.subs {
		w.events.Unsubscribe(sub.event, sub.id)
	}
	w.subs = nil
	w.state = StateStopped
	log.Printf("watcher: stopped")
}

// State returns the current lifecycle state.
func (w *Watcher) State() State {
	return w.state
}

// Engine returns the supervised engine.
func (w *Watcher) Engine() *Engine {
	return w.engine
}

// Armed reports how many tasks and subscriptions the watcher currently holds.
func (w *Watcher) Armed() (tasks, subscriptions int) {
	for _, id := range []TaskID{w.delayTask, w.idleTask, w.tickTask} {
		if id != 0 {
			tasks++
		}
	}
	return tasks, len(w.subs)
}

func (w *Watcher) begun() bool {
	switch w.state {
	case StateRunning, StateFired, StateExpired:
		return true
	}
	return false
}

func (w *Watcher) arm() {
	w.idleTask = w.scheduler.Every(w.idleInterval(), w.onIdle)
	w.tickTask = w.scheduler.Every(TickInterval, w.onTick)
}

func (w *Watcher) disarm() {
	w.scheduler.Cancel(w.idleTask)
	w.scheduler.Cancel(w.tickTask)
	w.idleTask = 0
	w.tickTask = 0
}

// idleInterval never drops below one tick; a zero duration would otherwise
// spin the scheduler.
func (w *Watcher) idleInterval() time.Duration {
	interval := time.Duration(w.config.Duration) * time.Second
	if interval < TickInterval {
		return TickInterval
	}
	return interval
}

func (w *Watcher) onIdle() {
	w.engine.FireIdle()
	w.state = StateFired
}

func (w *Watcher) onTick() {
	w.engine.Tick()
	switch {
	case w.engine.Frozen():
		w.state = StateExpired
	case w.state == StateFired && w.config.Loop && w.engine.Remaining() > 0:
		w.state = StateRunning
	}
}
