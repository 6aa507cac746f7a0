// Package ui provides the terminal user interface for the idle timer.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color scheme used throughout the application
type Colors struct {
	Subtle    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Special   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
}

var defaultColors = Colors{
	Subtle:    lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"},
	Highlight: lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"},
	Special:   lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"},
	Warning:   lipgloss.AdaptiveColor{Light: "#D98E04", Dark: "#F5B94A"},
	Error:     lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4040"},
}

// Style represents a collection of styles used in the application
type Style struct {
	Title     lipgloss.Style
	Countdown lipgloss.Style
	Expired   lipgloss.Style
	Waiting   lipgloss.Style
	Status    lipgloss.Style
	Reminder  lipgloss.Style
	Idle      lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
}

// DefaultStyle returns the default style configuration
func DefaultStyle() Style {
	base := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	countdown := base.
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2).
		Bold(true)

	return Style{
		Title: base.
			Bold(true).
			Foreground(defaultColors.Highlight),

		Countdown: countdown.
			Foreground(defaultColors.Highlight).
			BorderForeground(defaultColors.Highlight),

		Expired: countdown.
			Foreground(defaultColors.Error).
			BorderForeground(defaultColors.Error),

		Waiting: countdown.
			Foreground(defaultColors.Subtle).
			BorderForeground(defaultColors.Subtle),

		Status: base.
			Foreground(defaultColors.Subtle),

		Reminder: base.
			Foreground(defaultColors.Warning),

		Idle: base.
			Bold(true).
			Foreground(defaultColors.Special),

		Help: base.
			Foreground(defaultColors.Subtle),

		Error: base.
			Foreground(defaultColors.Error),
	}
}

// Current holds the current style configuration
var Current = DefaultStyle()
