package ui

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/vidle/internal/idle"
)

// ActivityMsg publishes an activity event from outside the terminal, such
// as the system input probe.
type ActivityMsg struct {
	Event string
}

// ConfigMsg replaces the running configuration. The watcher is stopped and
// a fresh countdown starts with the new values.
type ConfigMsg struct {
	Config idle.Config
}

// QuitMsg stops the watcher and ends the program.
type QuitMsg struct{}

// Options configures a Model.
type Options struct {
	Config idle.Config
	// Clock defaults to the system clock.
	Clock idle.Clock
	// OnEvent receives every engine notification from inside Update.
	OnEvent    idle.Handler
	ExitOnIdle bool
}

// host holds the mutable timer state shared by every copy of the Model.
type host struct {
	clock     idle.Clock
	scheduler *scheduler
	bus       *idle.Bus
	engine    *idle.Engine
	watcher   *idle.Watcher
	inbox     []idle.Event
	err       error
}

func newHost(config idle.Config, clock idle.Clock) *host {
	h := &host{
		clock:     clock,
		scheduler: newScheduler(),
		bus:       idle.NewBus(),
	}
	h.build(config)
	return h
}

func (h *host) build(config idle.Config) {
	h.engine = idle.NewEngine(config, h.clock, func(e idle.Event) {
		h.inbox = append(h.inbox, e)
	})
	h.watcher = idle.NewWatcher(config, h.engine, h.scheduler, h.bus)
}

func (h *host) start() {
	if err := h.watcher.Start(); err != nil {
		h.err = err
		log.Printf("ui: %v", err)
	}
}

func (h *host) restart(config idle.Config) {
	h.watcher.Stop()
	h.build(config)
	h.err = nil
	h.start()
}

// takeInbox returns and clears the notifications emitted since the last call.
func (h *host) takeInbox() []idle.Event {
	events := h.inbox
	h.inbox = nil
	return events
}

// notice is a timestamped notification line.
type notice struct {
	text string
	at   time.Time
}

// Model holds the UI state around the idle timer.
type Model struct {
	host       *host
	config     idle.Config
	onEvent    idle.Handler
	exitOnIdle bool

	keys     KeyMap
	help     help.Model
	progress progress.Model
	width    int

	lastReminder *notice
	lastIdle     *notice
	idleCount    int
	quitting     bool
}

// New returns a Model for config. The countdown starts in Init.
func New(opts Options) Model {
	clock := opts.Clock
	if clock == nil {
		clock = idle.SystemClock
	}
	return Model{
		host:       newHost(opts.Config, clock),
		config:     opts.Config,
		onEvent:    opts.OnEvent,
		exitOnIdle: opts.ExitOnIdle,
		keys:       DefaultKeys(),
		help:       NewHelpModel(),
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40)),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	m.host.start()
	return tea.Batch(m.host.scheduler.drain(), tea.SetWindowTitle("vidle"))
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return Update(msg, m)
}

// View implements tea.Model
func (m Model) View() string {
	return View(m)
}

// Remaining returns the seconds left in the current window.
func (m Model) Remaining() int {
	return m.host.engine.Remaining()
}

// Display returns the countdown label.
func (m Model) Display() string {
	return m.host.engine.Display()
}

// State returns the watcher state.
func (m Model) State() idle.State {
	return m.host.watcher.State()
}

// IdleCount returns the number of idle notifications seen.
func (m Model) IdleCount() int {
	return m.idleCount
}

// Err returns the last error raised while starting the watcher.
func (m Model) Err() error {
	return m.host.err
}

// elapsed is the fraction of the window that has passed.
func (m Model) elapsed() float64 {
	switch m.host.watcher.State() {
	case idle.StateIdle, idle.StateWaiting:
		return 0
	}
	duration := m.config.Duration
	if duration <= 0 {
		return 1
	}
	remaining := m.host.engine.Remaining()
	fraction := float64(duration-remaining) / float64(duration)
	switch {
	case fraction < 0:
		return 0
	case fraction > 1:
		return 1
	}
	return fraction
}
