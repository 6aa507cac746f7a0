package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/stigoleg/vidle/internal/config"
	"github.com/stigoleg/vidle/internal/idle"
	"github.com/stigoleg/vidle/internal/session"
	"github.com/stigoleg/vidle/internal/ui"
)

const lineTimeLayout = "15:04:05"

var (
	timeStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"})
	displayStyle = lipgloss.NewStyle().Bold(true)
	remindStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D98E04", Dark: "#F5B94A"})
	idleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"})
)

// formatLine renders one notification as a single output line.
func formatLine(e idle.Event) string {
	stamp := timeStyle.Render(e.At.Format(lineTimeLayout))
	switch e.Type {
	case idle.EventRemind:
		return fmt.Sprintf("%s %s %s", stamp, remindStyle.Render("remind"), e.Display)
	case idle.EventIdle:
		return fmt.Sprintf("%s %s", stamp, idleStyle.Render("idle"))
	default:
		return fmt.Sprintf("%s %s %s", stamp, string(e.Type), displayStyle.Render(e.Display))
	}
}

// headless drives a session without a terminal UI.
type headless struct {
	opts config.Options
	out  io.Writer
	hook *idleHook

	mu       sync.Mutex
	session  session.Session
	idleOnce sync.Once
	idle     chan struct{}
}

func newHeadless(opts config.Options, out io.Writer) *headless {
	return &headless{
		opts: opts,
		out:  out,
		hook: &idleHook{command: opts.OnIdle},
		idle: make(chan struct{}),
	}
}

func (h *headless) handle(e idle.Event) {
	fmt.Fprintln(h.out, formatLine(e))
	h.hook.handle(e)
	if e.Type == idle.EventIdle && h.opts.ExitOnIdle {
		h.idleOnce.Do(func() { close(h.idle) })
	}
}

func (h *headless) start(cfg idle.Config) error {
	return h.session.Start(session.Options{
		Config:         cfg,
		Handler:        h.handle,
		SystemActivity: h.opts.SystemActivity,
	})
}

// restart swaps in a new configuration.
func (h *headless) restart(cfg idle.Config) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.session.Stop(); err != nil {
		log.Printf("headless: stop before restart: %v", err)
	}
	return h.start(cfg)
}

// readActivity publishes a keypress for every line read from in.
func (h *headless) readActivity(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		h.session.Publish(ui.EventKeyPress)
	}
	if err := scanner.Err(); err != nil {
		log.Printf("headless: reading input: %v", err)
	}
}

func runHeadless(opts config.Options, in io.Reader, out io.Writer) error {
	h := newHeadless(opts, out)
	if err := h.start(opts.Idle); err != nil {
		return err
	}

	cleanup := session.NewCleanup(0)

	if opts.WatchConfig {
		w, err := config.Watch(opts.ConfigPath, 0, func() {
			cfg, err := opts.Reload()
			if err != nil {
				log.Printf("headless: keeping current config: %v", err)
				return
			}
			if err := h.restart(cfg); err != nil {
				log.Printf("headless: restart failed: %v", err)
			}
		})
		if err != nil {
			log.Printf("headless: config reload disabled: %v", err)
		} else {
			cleanup.Add("config watcher", w.Close)
		}
	}
	cleanup.Add("session", func() error {
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.session.Stop()
	})

	go h.readActivity(in)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, getSignalsForPlatform()...)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		log.Printf("headless: received signal: %v", sig)
	case <-h.idle:
		log.Printf("headless: exiting on idle")
	}

	return cleanup.Run()
}
