package platform

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// SystemInputEvent is the activity identifier published by Probe.
const SystemInputEvent = "systeminput"

// DefaultProbeInterval is how often Probe samples the OS idle time.
const DefaultProbeInterval = time.Second

// Probe polls an IdleProvider and calls publish whenever the OS saw user
// input since the previous sample. It turns input the terminal never sees
// (other windows, other apps) into activity events.
type Probe struct {
	provider IdleProvider
	interval time.Duration
	publish  func()

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	last    time.Duration
	primed  bool
}

// NewProbe creates a Probe. interval values <= 0 use DefaultProbeInterval.
func NewProbe(provider IdleProvider, interval time.Duration, publish func()) *Probe {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &Probe{
		provider: provider,
		interval: interval,
		publish:  publish,
	}
}

// Start takes a first sample and begins polling. It fails with
// ErrIdleUnsupported, or the provider's error, when the first sample fails.
func (p *Probe) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return errors.New("probe already running")
	}

	idle, err := p.provider.IdleDuration()
	if err != nil {
		return err
	}
	p.last = idle
	p.primed = true

	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	p.running = true

	go p.run(ctx, p.done)
	log.Printf("probe: started (interval=%s)", p.interval)
	return nil
}

// Stop ends polling and waits for the polling goroutine to exit. It is
// idempotent.
func (p *Probe) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.cancel()
	done := p.done
	p.mu.Unlock()

	<-done
	log.Printf("probe: stopped")
}

// IsRunning reports whether the probe is polling.
func (p *Probe) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Probe) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sample()
		}
	}
}

// sample reports input when the idle time went backwards or is shorter than
// one polling interval.
func (p *Probe) sample() bool {
	idle, err := p.provider.IdleDuration()
	if err != nil {
		log.Printf("probe: sample failed: %v", err)
		return false
	}

	p.mu.Lock()
	active := p.primed && (idle < p.last || idle < p.interval)
	p.last = idle
	p.primed = true
	p.mu.Unlock()

	if active {
		p.publish()
	}
	return active
}
