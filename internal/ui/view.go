package ui

import (
	"fmt"
	"strings"

	"github.com/stigoleg/vidle/internal/idle"
)

const timeLayout = "15:04:05"

// View renders the current state of the model to a string.
func View(m Model) string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(Current.Title.Render("Idle Timer"))
	b.WriteString("\n\n")

	b.WriteString(countdownView(m))
	b.WriteString("\n")
	b.WriteString(" " + m.progress.ViewAs(m.elapsed()))
	b.WriteString("\n\n")

	b.WriteString(Current.Status.Render(statusLine(m)))
	b.WriteString("\n")

	if m.lastReminder != nil {
		b.WriteString(Current.Reminder.Render(fmt.Sprintf("Reminder: %s (%s)", m.lastReminder.text, m.lastReminder.at.Format(timeLayout))))
		b.WriteString("\n")
	}
	if m.lastIdle != nil {
		b.WriteString(Current.Idle.Render(fmt.Sprintf("Idle at %s", m.lastIdle.at.Format(timeLayout))))
		b.WriteString("\n")
	}
	b.WriteString(Current.Status.Render(fmt.Sprintf("Idle notifications: %d", m.idleCount)))
	b.WriteString("\n")

	if err := m.host.err; err != nil {
		b.WriteString("\n" + Current.Error.Render(err.Error()) + "\n")
	}

	b.WriteString("\n" + Current.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func countdownView(m Model) string {
	engine := m.host.engine
	switch m.host.watcher.State() {
	case idle.StateIdle, idle.StateWaiting:
		return Current.Waiting.Render(idle.FormatDisplay(m.config.Duration))
	}
	if engine.Frozen() {
		return Current.Expired.Render(engine.Display())
	}
	return Current.Countdown.Render(engine.Display())
}

func statusLine(m Model) string {
	parts := []string{stateLabel(m.host.watcher.State(), m.config.Wait)}
	if m.config.Loop {
		parts = append(parts, "loop on")
	}
	if len(m.config.Reminders) > 0 {
		marks := make([]string, len(m.config.Reminders))
		for i, mark := range m.config.Reminders {
			marks[i] = idle.FormatDisplay(mark)
		}
		parts = append(parts, "reminders "+strings.Join(marks, ", "))
	}
	parts = append(parts, fmt.Sprintf("watching %d events", len(m.config.Events)))
	return strings.Join(parts, " • ")
}

func stateLabel(state idle.State, wait int) string {
	switch state {
	case idle.StateWaiting:
		return fmt.Sprintf("Starting in %ds", wait)
	case idle.StateRunning:
		return "Counting down"
	case idle.StateFired:
		return "Idle"
	case idle.StateExpired:
		return "Expired"
	case idle.StateStopped:
		return "Stopped"
	default:
		return "Not started"
	}
}
