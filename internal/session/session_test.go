package session

import (
	"testing"
	"time"

	"github.com/stigoleg/vidle/internal/idle"
	"github.com/stigoleg/vidle/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(duration int) idle.Config {
	config := idle.DefaultConfig()
	config.Duration = duration
	return config
}

func TestSessionStartStop(t *testing.T) {
	var s Session
	assert.False(t, s.IsRunning())

	require.NoError(t, s.Start(Options{Config: testConfig(60)}))
	assert.True(t, s.IsRunning())

	snap, ok := s.Snapshot()
	require.True(t, ok)
	assert.Equal(t, "01:00", snap.Display)
	assert.Equal(t, 60, snap.Remaining)
	assert.Equal(t, idle.StateRunning, snap.State)

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())

	// Second stop is a no-op.
	require.NoError(t, s.Stop())
}

func TestSessionStartTwice(t *testing.T) {
	var s Session
	require.NoError(t, s.Start(Options{Config: testConfig(60)}))
	defer s.Stop()

	assert.ErrorIs(t, s.Start(Options{Config: testConfig(60)}), ErrAlreadyRunning)
}

func TestSessionInvalidConfig(t *testing.T) {
	var s Session
	config := testConfig(60)
	config.Events = nil

	require.Error(t, s.Start(Options{Config: config}))
	assert.False(t, s.IsRunning())
}

func TestSessionStoppedOperations(t *testing.T) {
	var s Session
	assert.False(t, s.Publish("keypress"))

	_, ok := s.Snapshot()
	assert.False(t, ok)
	assert.False(t, s.SystemActivity())
}

func TestSessionRestart(t *testing.T) {
	var s Session
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Start(Options{Config: testConfig(30)}))
		require.NoError(t, s.StopWithTimeout(time.Second))
	}
	assert.False(t, s.IsRunning())
}

func TestSessionFiresIdle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping real-time test in short mode")
	}

	events := make(chan idle.Event, 64)
	var s Session
	require.NoError(t, s.Start(Options{
		Config:  testConfig(1),
		Handler: func(e idle.Event) { events <- e },
	}))
	defer s.Stop()

	deadline := time.After(3 * time.Second)
	for {
		select {
		case e := <-events:
			if e.Type == idle.EventIdle {
				return
			}
		case <-deadline:
			t.Fatal("idle event did not arrive")
		}
	}
}

func TestSessionActivityResets(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping real-time test in short mode")
	}

	var s Session
	require.NoError(t, s.Start(Options{Config: testConfig(10)}))
	defer s.Stop()

	time.Sleep(1200 * time.Millisecond)
	snap, ok := s.Snapshot()
	require.True(t, ok)
	assert.Less(t, snap.Remaining, 10)

	require.True(t, s.Publish("keypress"))
	snap, ok = s.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 10, snap.Remaining)
	assert.Equal(t, "00:10", snap.Display)
}

func TestSessionSystemActivityUnsupported(t *testing.T) {
	var s Session
	require.NoError(t, s.Start(Options{
		Config:         testConfig(60),
		SystemActivity: true,
		Provider: platform.IdleProviderFunc(func() (time.Duration, error) {
			return 0, platform.ErrIdleUnsupported
		}),
	}))
	defer s.Stop()

	assert.True(t, s.IsRunning())
	assert.False(t, s.SystemActivity())
}

func TestSessionSystemActivityProbe(t *testing.T) {
	var s Session
	require.NoError(t, s.Start(Options{
		Config:         testConfig(60),
		SystemActivity: true,
		ProbeInterval:  10 * time.Millisecond,
		Provider: platform.IdleProviderFunc(func() (time.Duration, error) {
			return time.Hour, nil
		}),
	}))

	assert.True(t, s.SystemActivity())
	require.NoError(t, s.Stop())
	assert.False(t, s.SystemActivity())
}
