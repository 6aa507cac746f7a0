package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/vidle/internal/idle"
)

// taskFiredMsg is delivered when a scheduled task falls due.
type taskFiredMsg struct {
	id idle.TaskID
}

type scheduledTask struct {
	due      time.Time
	interval time.Duration
	periodic bool
	fn       func()
}

// scheduler implements idle.Scheduler on top of tea.Tick. Tasks only run
// inside Update, so the engine never sees concurrent calls. Commands created
// while scheduling are collected and handed to the runtime by drain.
// Periodic tasks re-arm from their due time, so handling latency does not
// accumulate across firings.
type scheduler struct {
	now     func() time.Time
	nextID  idle.TaskID
	tasks   map[idle.TaskID]*scheduledTask
	pending []tea.Cmd
}

func newScheduler() *scheduler {
	return &scheduler{now: time.Now, tasks: make(map[idle.TaskID]*scheduledTask)}
}

func (s *scheduler) Every(interval time.Duration, fn func()) idle.TaskID {
	if interval <= 0 {
		interval = idle.TickInterval
	}
	return s.add(interval, true, fn)
}

func (s *scheduler) After(delay time.Duration, fn func()) idle.TaskID {
	return s.add(delay, false, fn)
}

func (s *scheduler) Cancel(id idle.TaskID) {
	delete(s.tasks, id)
}

func (s *scheduler) add(d time.Duration, periodic bool, fn func()) idle.TaskID {
	s.nextID++
	id := s.nextID
	s.tasks[id] = &scheduledTask{due: s.now().Add(d), interval: d, periodic: periodic, fn: fn}
	s.pending = append(s.pending, wait(id, d))
	return id
}

// fire runs the task behind msg. Messages for cancelled tasks are dropped.
func (s *scheduler) fire(msg taskFiredMsg) {
	t, ok := s.tasks[msg.id]
	if !ok {
		return
	}
	if t.periodic {
		now := s.now()
		t.due = t.due.Add(t.interval)
		// Slots missed entirely, e.g. across a suspend, are skipped.
		for !t.due.After(now) {
			t.due = t.due.Add(t.interval)
		}
		s.pending = append(s.pending, wait(msg.id, t.due.Sub(now)))
	} else {
		delete(s.tasks, msg.id)
	}
	t.fn()
}

// drain returns the commands queued since the last call.
func (s *scheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

func (s *scheduler) armed() int {
	return len(s.tasks)
}

func wait(id idle.TaskID, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return taskFiredMsg{id: id}
	})
}
