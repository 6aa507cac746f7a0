// Package session runs an idle watcher on a real-time loop for hosts that
// have no event loop of their own.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/stigoleg/vidle/internal/idle"
	"github.com/stigoleg/vidle/internal/loop"
	"github.com/stigoleg/vidle/internal/platform"
)

// ErrAlreadyRunning is returned by Start on a running session.
var ErrAlreadyRunning = errors.New("session already running")

// Options configures a Session.
type Options struct {
	Config idle.Config
	// Handler receives engine notifications on the loop goroutine. It must
	// not call back into the Session.
	Handler idle.Handler

	// SystemActivity also watches OS-level input through a platform probe.
	SystemActivity bool
	// Provider overrides the platform idle provider.
	Provider      platform.IdleProvider
	ProbeInterval time.Duration
}

// Snapshot is a point-in-time view of the countdown.
type Snapshot struct {
	Display   string
	Remaining int
	State     idle.State
}

// Session manages one running watcher.
type Session struct {
	mu      sync.Mutex
	running bool
	loop    *loop.Loop
	watcher *idle.Watcher
	probe   *platform.Probe
	cleanup *Cleanup
}

// IsRunning returns whether the session is active.
func (s *Session) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start builds the loop, engine and watcher and starts them.
func (s *Session) Start(opts Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	config := opts.Config
	if err := config.Validate(); err != nil {
		return err
	}
	if opts.SystemActivity {
		config = config.WithEvent(platform.SystemInputEvent)
	}

	l := loop.New(0)
	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan error, 1)
	go func() {
		runDone <- l.Run(ctx)
	}()

	var (
		watcher  *idle.Watcher
		startErr error
	)
	l.Do(func() {
		engine := idle.NewEngine(config, l, opts.Handler)
		watcher = idle.NewWatcher(config, engine, l, l)
		startErr = watcher.Start()
	})
	if startErr != nil {
		cancel()
		<-runDone
		return startErr
	}

	cleanup := NewCleanup(DefaultCleanupTimeout)

	var probe *platform.Probe
	if opts.SystemActivity {
		provider := opts.Provider
		if provider == nil {
			provider = platform.NewIdleProvider()
		}
		probe = platform.NewProbe(provider, opts.ProbeInterval, func() {
			l.Publish(platform.SystemInputEvent)
		})
		if err := probe.Start(ctx); err != nil {
			log.Printf("session: system activity disabled: %v", err)
			probe = nil
		} else {
			cleanup.Add("probe", func() error {
				probe.Stop()
				return nil
			})
		}
	}

	cleanup.Add("watcher", func() error {
		if !l.Do(watcher.Stop) {
			return errors.New("loop exited before the watcher stopped")
		}
		return nil
	})
	cleanup.Add("loop", func() error {
		cancel()
		if err := <-runDone; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	s.loop = l
	s.watcher = watcher
	s.probe = probe
	s.cleanup = cleanup
	s.running = true
	log.Printf("session: started")
	return nil
}

// Stop tears the session down with the default timeout.
func (s *Session) Stop() error {
	return s.StopWithTimeout(0)
}

// StopWithTimeout cancels every task, removes every subscription and stops
// the loop. Calling it on a stopped session is a no-op.
func (s *Session) StopWithTimeout(timeout time.Duration) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	cleanup := s.cleanup
	s.running = false
	s.loop = nil
	s.watcher = nil
	s.probe = nil
	s.cleanup = nil
	s.mu.Unlock()

	cleanup.SetTimeout(timeout)
	if err := cleanup.Run(); err != nil {
		log.Printf("session: stopped with error: %v", err)
		return err
	}
	log.Printf("session: stopped")
	return nil
}

// Publish delivers an activity event. It reports false when the session is
// not running.
func (s *Session) Publish(event string) bool {
	s.mu.Lock()
	l := s.loop
	s.mu.Unlock()
	if l == nil {
		return false
	}
	return l.Publish(event)
}

// Snapshot reads the countdown on the loop goroutine.
func (s *Session) Snapshot() (Snapshot, bool) {
	s.mu.Lock()
	l, watcher := s.loop, s.watcher
	s.mu.Unlock()
	if l == nil {
		return Snapshot{}, false
	}

	var snap Snapshot
	ok := l.Do(func() {
		engine := watcher.Engine()
		snap = Snapshot{
			Display:   engine.Display(),
			Remaining: engine.Remaining(),
			State:     watcher.State(),
		}
	})
	return snap, ok
}

// SystemActivity reports whether the OS probe is running.
func (s *Session) SystemActivity() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.probe != nil && s.probe.IsRunning()
}
