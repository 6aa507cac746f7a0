package ui

import (
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/vidle/internal/idle"
)

// Activity event identifiers published for terminal input.
const (
	EventKeyDown   = "keydown"
	EventKeyPress  = "keypress"
	EventMouseMove = "mousemove"
	EventMouseDown = "mousedown"
	EventMouseUp   = "mouseup"
	EventWheel     = "wheel"
	EventResize    = "resize"
	EventFocus     = "focus"
	EventBlur      = "blur"
)

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.ToggleHelp):
			m.help.ShowAll = !m.help.ShowAll
		default:
			m.publish(EventKeyDown, EventKeyPress)
		}

	case tea.MouseMsg:
		m.publish(MouseEvent(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = progressWidth(msg.Width)
		m.publish(EventResize)

	case tea.FocusMsg:
		m.publish(EventFocus)

	case tea.BlurMsg:
		m.publish(EventBlur)

	case QuitMsg:
		return m.quit()

	case ActivityMsg:
		m.publish(msg.Event)

	case ConfigMsg:
		log.Printf("ui: applying new configuration")
		m.config = msg.Config
		m.lastReminder = nil
		m.host.restart(msg.Config)

	case taskFiredMsg:
		m.host.scheduler.fire(msg)
	}

	m, cmd = m.deliver()
	if m.quitting {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.host.scheduler.drain())
}

// MouseEvent maps a mouse message to its activity event identifier.
func MouseEvent(msg tea.MouseMsg) string {
	if tea.MouseEvent(msg).IsWheel() {
		return EventWheel
	}
	switch msg.Action {
	case tea.MouseActionPress:
		return EventMouseDown
	case tea.MouseActionRelease:
		return EventMouseUp
	default:
		return EventMouseMove
	}
}

func (m *Model) publish(events ...string) {
	for _, event := range events {
		m.host.bus.Publish(event)
	}
}

// deliver applies the engine notifications raised while handling a message.
func (m Model) deliver() (Model, tea.Cmd) {
	for _, e := range m.host.takeInbox() {
		switch e.Type {
		case idle.EventRemind:
			m.lastReminder = &notice{text: idle.FormatDisplay(e.Remaining) + " remaining", at: e.At}
		case idle.EventIdle:
			m.idleCount++
			m.lastIdle = &notice{text: "idle", at: e.At}
		}
		if m.onEvent != nil {
			m.onEvent(e)
		}
		if e.Type == idle.EventIdle && m.exitOnIdle {
			log.Printf("ui: exiting on idle")
			return m.quit()
		}
	}
	return m, nil
}

func (m Model) quit() (Model, tea.Cmd) {
	m.host.watcher.Stop()
	m.quitting = true
	return m, tea.Quit
}

func progressWidth(termWidth int) int {
	const maxWidth = 60
	width := termWidth - 4
	switch {
	case width > maxWidth:
		return maxWidth
	case width < 10:
		return 10
	}
	return width
}
