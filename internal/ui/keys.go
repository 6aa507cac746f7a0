package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keys the timer handles itself. Every other key counts
// as activity.
type KeyMap struct {
	Quit       key.Binding
	ToggleHelp key.Binding

	// Help-only entries describing what counts as activity.
	AnyKey key.Binding
	Mouse  key.Binding
}

// DefaultKeys returns the default key bindings for the application.
func DefaultKeys() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		AnyKey: key.NewBinding(
			key.WithKeys("any"),
			key.WithHelp("any key", "reset countdown"),
		),
		Mouse: key.NewBinding(
			key.WithKeys("mouse"),
			key.WithHelp("mouse", "reset countdown"),
		),
	}
}

// NewHelpModel returns a configured help model.
func NewHelpModel() help.Model {
	h := help.New()
	h.ShortSeparator = " • "
	return h
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.ToggleHelp}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AnyKey, k.Mouse},
		{k.ToggleHelp, k.Quit},
	}
}
