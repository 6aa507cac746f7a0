// Package loop provides a real-time, single-goroutine host for the idle
// watcher. Timers fire on their own goroutines but only post work into one
// dispatch queue, so every callback runs to completion before the next.
package loop

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/stigoleg/vidle/internal/idle"
)

// ErrStopped is returned by Run when the loop was already stopped.
var ErrStopped = errors.New("loop stopped")

const defaultQueueSize = 64

type task struct {
	stop chan struct{}
	once sync.Once
}

func (t *task) cancel() {
	t.once.Do(func() { close(t.stop) })
}

// Loop implements idle.Scheduler, idle.EventSource and idle.Clock.
//
// Every, After, Cancel, Post and Publish may be called from any goroutine.
// Subscribe, Unsubscribe and Subscriptions belong to the loop goroutine, as
// do all task callbacks and event handlers.
type Loop struct {
	mu      sync.Mutex
	clock   idle.Clock
	queue   chan func()
	stopCh  chan struct{}
	stopped bool
	nextID  idle.TaskID
	tasks   map[idle.TaskID]*task
	bus     *idle.Bus
}

// New creates a Loop. queueSize values <= 0 use a default.
func New(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Loop{
		clock:  idle.SystemClock,
		queue:  make(chan func(), queueSize),
		stopCh: make(chan struct{}),
		tasks:  make(map[idle.TaskID]*task),
		bus:    idle.NewBus(),
	}
}

// Now implements idle.Clock.
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// Run dispatches queued work until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return ErrStopped
	}
	l.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.stopCh:
			return nil
		case fn := <-l.queue:
			fn()
		}
	}
}

// Stop cancels every armed task and ends Run. It is idempotent.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	for id, t := range l.tasks {
		t.cancel()
		delete(l.tasks, id)
	}
	close(l.stopCh)
}

// Post queues fn for the loop goroutine. It reports false if the loop is
// stopped. Post blocks while the queue is full.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.stopCh:
		return false
	case l.queue <- fn:
		return true
	}
}

// Do runs fn on the loop goroutine and waits for it to return. It reports
// false if the loop stopped before fn ran. Calling Do from a task callback or
// event handler deadlocks.
func (l *Loop) Do(fn func()) bool {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-l.stopCh:
		select {
		case <-done:
			return true
		default:
			return false
		}
	}
}

// Publish delivers an activity event on the loop goroutine.
func (l *Loop) Publish(event string) bool {
	return l.Post(func() {
		l.bus.Publish(event)
	})
}

// Every implements idle.Scheduler.
func (l *Loop) Every(interval time.Duration, fn func()) idle.TaskID {
	if interval <= 0 {
		interval = idle.TickInterval
	}
	id, t := l.add()
	if t == nil {
		return 0
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				if !l.post(t.stop, l.guard(id, fn)) {
					return
				}
			}
		}
	}()
	return id
}

// After implements idle.Scheduler.
func (l *Loop) After(delay time.Duration, fn func()) idle.TaskID {
	id, t := l.add()
	if t == nil {
		return 0
	}
	go func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-t.stop:
		case <-timer.C:
			l.post(t.stop, l.guard(id, func() {
				l.Cancel(id)
				fn()
			}))
		}
	}()
	return id
}

// Cancel implements idle.Scheduler.
func (l *Loop) Cancel(id idle.TaskID) {
	if id == 0 {
		return
	}
	l.mu.Lock()
	t, ok := l.tasks[id]
	delete(l.tasks, id)
	l.mu.Unlock()
	if ok {
		t.cancel()
	}
}

// Pending returns the number of armed tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Subscribe implements idle.EventSource.
func (l *Loop) Subscribe(event string, handler func()) idle.SubscriptionID {
	return l.bus.Subscribe(event, handler)
}

// Unsubscribe implements idle.EventSource.
func (l *Loop) Unsubscribe(event string, id idle.SubscriptionID) {
	l.bus.Unsubscribe(event, id)
}

// Subscriptions returns the number of live activity subscriptions.
func (l *Loop) Subscriptions() int {
	return l.bus.Len()
}

func (l *Loop) add() (idle.TaskID, *task) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		log.Printf("loop: schedule after stop ignored")
		return 0, nil
	}
	l.nextID++
	t := &task{stop: make(chan struct{})}
	l.tasks[l.nextID] = t
	return l.nextID, t
}

// guard drops the callback if the task was cancelled between the timer
// firing and the loop dispatching it.
func (l *Loop) guard(id idle.TaskID, fn func()) func() {
	return func() {
		l.mu.Lock()
		_, armed := l.tasks[id]
		l.mu.Unlock()
		if armed {
			fn()
		}
	}
}

func (l *Loop) post(stop <-chan struct{}, fn func()) bool {
	select {
	case <-stop:
		return false
	case <-l.stopCh:
		return false
	case l.queue <- fn:
		return true
	}
}
