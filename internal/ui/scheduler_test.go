package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerPeriodicTaskRearms(t *testing.T) {
	s := newScheduler()
	calls := 0

	id := s.Every(time.Second, func() { calls++ })
	assert.NotNil(t, s.drain())
	assert.Nil(t, s.drain())

	s.fire(taskFiredMsg{id: id})
	s.fire(taskFiredMsg{id: id})

	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, s.armed())
	assert.NotNil(t, s.drain())
}

func TestSchedulerAfterRunsOnce(t *testing.T) {
	s := newScheduler()
	calls := 0

	id := s.After(time.Second, func() { calls++ })
	s.drain()

	s.fire(taskFiredMsg{id: id})
	s.fire(taskFiredMsg{id: id})

	assert.Equal(t, 1, calls)
	assert.Zero(t, s.armed())
	assert.Nil(t, s.drain())
}

func TestSchedulerCancel(t *testing.T) {
	s := newScheduler()
	calls := 0

	id := s.Every(time.Second, func() { calls++ })
	s.Cancel(id)
	s.Cancel(id)
	s.Cancel(0)

	s.fire(taskFiredMsg{id: id})
	assert.Zero(t, calls)
	assert.Zero(t, s.armed())
}

func TestSchedulerIDsAreUnique(t *testing.T) {
	s := newScheduler()
	a := s.Every(time.Second, func() {})
	s.Cancel(a)
	b := s.Every(time.Second, func() {})
	assert.NotEqual(t, a, b)
}

func TestSchedulerTaskCancellingItself(t *testing.T) {
	s := newScheduler()
	var id = s.Every(time.Second, nil)
	s.tasks[id].fn = func() { s.Cancel(id) }

	s.fire(taskFiredMsg{id: id})
	assert.Zero(t, s.armed())
}

func TestSchedulerRearmsFromDueTime(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newScheduler()
	s.now = func() time.Time { return now }

	id := s.Every(time.Second, func() {})
	start := now

	now = now.Add(1300 * time.Millisecond)
	s.fire(taskFiredMsg{id: id})
	assert.Equal(t, start.Add(2*time.Second), s.tasks[id].due)

	now = now.Add(900 * time.Millisecond)
	s.fire(taskFiredMsg{id: id})
	assert.Equal(t, start.Add(3*time.Second), s.tasks[id].due, "late handling does not drift the next slot")
}

func TestSchedulerSkipsMissedSlots(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newScheduler()
	s.now = func() time.Time { return now }

	id := s.Every(time.Second, func() {})
	start := now

	now = now.Add(5500 * time.Millisecond)
	s.fire(taskFiredMsg{id: id})
	assert.Equal(t, start.Add(6*time.Second), s.tasks[id].due)
}
