package integration

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stigoleg/vidle/internal/config"
	"github.com/stigoleg/vidle/internal/idle"
	"github.com/stigoleg/vidle/internal/platform"
	"github.com/stigoleg/vidle/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInput reports a system idle time that drops back to zero whenever
// input is simulated.
type fakeInput struct {
	mu        sync.Mutex
	lastInput time.Time
	samples   atomic.Int64
}

func (f *fakeInput) touch() {
	f.mu.Lock()
	f.lastInput = time.Now()
	f.mu.Unlock()
}

func (f *fakeInput) IdleDuration() (time.Duration, error) {
	f.samples.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return time.Since(f.lastInput), nil
}

func TestSystemActivityKeepsSessionAwake(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping system activity test in short mode")
	}

	input := &fakeInput{lastInput: time.Now().Add(-time.Hour)}
	cfg := idle.DefaultConfig()
	cfg.Duration = 1
	c := newCollector()

	var s session.Session
	require.NoError(t, s.Start(session.Options{
		Config:         cfg,
		Handler:        c.handle,
		SystemActivity: true,
		Provider:       input,
		ProbeInterval:  50 * time.Millisecond,
	}))
	defer s.Stop()
	require.True(t, s.SystemActivity())

	stop := time.After(2500 * time.Millisecond)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-ticker.C:
			input.touch()
		case <-stop:
			break loop
		}
	}

	assert.Zero(t, c.count(idle.EventIdle), "OS input should keep resetting the countdown")
	assert.Greater(t, input.samples.Load(), int64(10))

	waitIdle(t, c, 3*time.Second)
}

func TestSystemActivityUnavailable(t *testing.T) {
	cfg := idle.DefaultConfig()
	cfg.Duration = 60

	var s session.Session
	require.NoError(t, s.Start(session.Options{
		Config:         cfg,
		SystemActivity: true,
		Provider: platform.IdleProviderFunc(func() (time.Duration, error) {
			return 0, platform.ErrIdleUnsupported
		}),
	}))
	defer s.Stop()

	assert.True(t, s.IsRunning())
	assert.False(t, s.SystemActivity())
}

func TestConfigReloadRestartsSession(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping config reload test in short mode")
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("duration: 600\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	var s session.Session
	require.NoError(t, s.Start(session.Options{Config: cfg}))
	defer s.Stop()

	reloaded := make(chan struct{}, 4)
	w, err := config.Watch(path, 20*time.Millisecond, func() {
		next, err := config.Load(path)
		if err != nil {
			return
		}
		s.Stop()
		if s.Start(session.Options{Config: next}) == nil {
			reloaded <- struct{}{}
		}
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("duration: 90\nloop: true\n"), 0o644))

	select {
	case <-reloaded:
	case <-time.After(3 * time.Second):
		t.Fatal("config change did not restart the session")
	}

	snap, ok := s.Snapshot()
	require.True(t, ok)
	assert.Equal(t, "01:30", snap.Display)
}
