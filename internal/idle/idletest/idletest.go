// Package idletest provides a virtual-time host for driving the idle engine
// and watcher deterministically in tests.
package idletest

import (
	"sort"
	"time"

	"github.com/stigoleg/vidle/internal/idle"
)

// Epoch is the default start time of a Scheduler's virtual clock.
var Epoch = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

type task struct {
	id       idle.TaskID
	due      time.Time
	interval time.Duration
	periodic bool
	fn       func()
}

// Scheduler is a manual idle.Scheduler and idle.Clock. Time only moves when
// Advance or Shift is called, and due tasks run synchronously inside Advance.
type Scheduler struct {
	now    time.Time
	nextID idle.TaskID
	tasks  map[idle.TaskID]*task
}

// NewScheduler returns a Scheduler whose clock reads start.
func NewScheduler(start time.Time) *Scheduler {
	return &Scheduler{
		now:   start,
		tasks: make(map[idle.TaskID]*task),
	}
}

// Now implements idle.Clock.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// Every implements idle.Scheduler.
func (s *Scheduler) Every(interval time.Duration, fn func()) idle.TaskID {
	return s.add(interval, true, fn)
}

// After implements idle.Scheduler.
func (s *Scheduler) After(delay time.Duration, fn func()) idle.TaskID {
	return s.add(delay, false, fn)
}

// Cancel implements idle.Scheduler.
func (s *Scheduler) Cancel(id idle.TaskID) {
	delete(s.tasks, id)
}

// Pending returns the number of armed tasks.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Shift moves the clock forward without running any task.
func (s *Scheduler) Shift(d time.Duration) {
	s.now = s.now.Add(d)
}

// Advance moves the clock forward by d, running every task that falls due on
// the way at its due time. Tasks due at the same instant run in the order
// they were scheduled.
func (s *Scheduler) Advance(d time.Duration) {
	target := s.now.Add(d)
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.due
		if next.periodic {
			next.due = next.due.Add(next.interval)
		} else {
			delete(s.tasks, next.id)
		}
		next.fn()
	}
	s.now = target
}

func (s *Scheduler) add(interval time.Duration, periodic bool, fn func()) idle.TaskID {
	if periodic && interval <= 0 {
		interval = idle.TickInterval
	}
	s.nextID++
	s.tasks[s.nextID] = &task{
		id:       s.nextID,
		due:      s.now.Add(interval),
		interval: interval,
		periodic: periodic,
		fn:       fn,
	}
	return s.nextID
}

func (s *Scheduler) nextDue(limit time.Time) *task {
	due := make([]*task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.due.After(limit) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].id < due[j].id
		}
		return due[i].due.Before(due[j].due)
	})
	return due[0]
}

// Recorder collects engine notifications.
type Recorder struct {
	Events []idle.Event
}

// Handle implements idle.Handler.
func (r *Recorder) Handle(event idle.Event) {
	r.Events = append(r.Events, event)
}

// Count returns how many events of type t were recorded.
func (r *Recorder) Count(t idle.EventType) int {
	n := 0
	for _, event := range r.Events {
		if event.Type == t {
			n++
		}
	}
	return n
}

// Displays returns every recorded label in order.
func (r *Recorder) Displays() []string {
	var labels []string
	for _, event := range r.Events {
		if event.Type == idle.EventDisplay {
			labels = append(labels, event.Display)
		}
	}
	return labels
}

// Reminders returns the payload of every remind event in order.
func (r *Recorder) Reminders() []int {
	var marks []int
	for _, event := range r.Events {
		if event.Type == idle.EventRemind {
			marks = append(marks, event.Remaining)
		}
	}
	return marks
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.Events = nil
}

// Host bundles a virtual scheduler, an activity bus and a recorder around a
// watcher built from config.
type Host struct {
	Scheduler *Scheduler
	Bus       *idle.Bus
	Recorder  *Recorder
	Engine    *idle.Engine
	Watcher   *idle.Watcher
}

// NewHost builds a Host starting at Epoch. The watcher is not started.
func NewHost(config idle.Config) *Host {
	scheduler := NewScheduler(Epoch)
	bus := idle.NewBus()
	recorder := &Recorder{}
	engine := idle.NewEngine(config, scheduler, recorder.Handle)
	return &Host{
		Scheduler: scheduler,
		Bus:       bus,
		Recorder:  recorder,
		Engine:    engine,
		Watcher:   idle.NewWatcher(config, engine, scheduler, bus),
	}
}

// Seconds advances the virtual clock by n whole seconds.
func (h *Host) Seconds(n int) {
	h.Scheduler.Advance(time.Duration(n) * time.Second)
}
