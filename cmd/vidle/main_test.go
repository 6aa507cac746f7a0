package main

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stigoleg/vidle/internal/config"
	"github.com/stigoleg/vidle/internal/idle"
	"github.com/stigoleg/vidle/internal/platform"
)

var at = time.Date(2024, 1, 1, 10, 0, 5, 0, time.UTC)

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name     string
		event    idle.Event
		expected []string
	}{
		{
			name:     "display",
			event:    idle.Event{Type: idle.EventDisplay, Display: "04:59", At: at},
			expected: []string{"10:00:05", "display", "04:59"},
		},
		{
			name:     "remind",
			event:    idle.Event{Type: idle.EventRemind, Remaining: 30, Display: "00:30", At: at},
			expected: []string{"10:00:05", "remind", "00:30"},
		},
		{
			name:     "idle",
			event:    idle.Event{Type: idle.EventIdle, At: at},
			expected: []string{"10:00:05", "idle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := formatLine(tt.event)
			assert.NotContains(t, line, "\n")
			for _, want := range tt.expected {
				assert.Contains(t, line, want)
			}
		})
	}
}

func TestWithSystemEvent(t *testing.T) {
	cfg := idle.DefaultConfig()
	assert.Equal(t, cfg, withSystemEvent(cfg, false))
	assert.Contains(t, withSystemEvent(cfg, true).Events, platform.SystemInputEvent)
	assert.NotContains(t, cfg.Events, platform.SystemInputEvent)
}

func TestIdleHookIgnoresOtherEvents(t *testing.T) {
	h := &idleHook{command: "exit 1", done: make(chan error, 1)}
	h.handle(idle.Event{Type: idle.EventDisplay})
	h.handle(idle.Event{Type: idle.EventRemind})

	select {
	case <-h.done:
		t.Fatal("hook ran for a non-idle event")
	default:
	}
}

func TestIdleHookRunsCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell hook test needs /bin/sh")
	}

	h := &idleHook{command: `test "$VIDLE_EVENT" = idle`, done: make(chan error, 1)}
	h.handle(idle.Event{Type: idle.EventIdle, At: at})

	select {
	case err := <-h.done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("hook did not finish")
	}
}

func TestIdleHookReportsFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell hook test needs /bin/sh")
	}

	h := &idleHook{command: "exit 3", done: make(chan error, 1)}
	h.handle(idle.Event{Type: idle.EventIdle, At: at})

	select {
	case err := <-h.done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("hook did not finish")
	}
}

func TestRunHeadlessExitOnIdle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping real-time headless test in short mode")
	}

	cfg := idle.DefaultConfig()
	cfg.Duration = 1
	var out bytes.Buffer

	err := runHeadless(config.Options{Idle: cfg, ExitOnIdle: true}, strings.NewReader(""), &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "00:01")
	assert.Contains(t, out.String(), "idle")
}
