package session

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// DefaultCleanupTimeout bounds how long teardown may take.
const DefaultCleanupTimeout = 5 * time.Second

type cleanupStep struct {
	name string
	fn   func() error
}

// Cleanup runs named teardown steps exactly once, in the order they were
// added, within a deadline. A panicking step is recorded as an error and the
// remaining steps still run.
type Cleanup struct {
	mu      sync.Mutex
	steps   []cleanupStep
	timeout time.Duration
	once    sync.Once
	err     error
}

// NewCleanup creates a Cleanup. timeout values <= 0 use DefaultCleanupTimeout.
func NewCleanup(timeout time.Duration) *Cleanup {
	if timeout <= 0 {
		timeout = DefaultCleanupTimeout
	}
	return &Cleanup{timeout: timeout}
}

// Add registers a step. Steps added after Run are never executed.
func (c *Cleanup) Add(name string, fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps = append(c.steps, cleanupStep{name: name, fn: fn})
}

// SetTimeout changes the deadline used by a later Run.
func (c *Cleanup) SetTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = timeout
}

// Run executes the steps on the first call and returns the joined step
// errors. Later calls return the same result without running anything.
func (c *Cleanup) Run() error {
	c.once.Do(func() {
		c.err = c.run()
	})
	return c.err
}

func (c *Cleanup) run() error {
	c.mu.Lock()
	steps := append([]cleanupStep(nil), c.steps...)
	timeout := c.timeout
	c.mu.Unlock()

	if len(steps) == 0 {
		return nil
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, step := range steps {
			if err := runStep(step); err != nil {
				log.Printf("cleanup: %s: %v", step.name, err)
				record(err)
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		log.Printf("cleanup: timeout after %v, some steps may not have finished", timeout)
		record(fmt.Errorf("cleanup timeout exceeded after %v", timeout))
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}

func runStep(step cleanupStep) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic during cleanup: %v", step.name, r)
		}
	}()
	if err := step.fn(); err != nil {
		return fmt.Errorf("%s: %w", step.name, err)
	}
	return nil
}
