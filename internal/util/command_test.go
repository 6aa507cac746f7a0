package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCommand(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		expected bool
	}{
		{name: "common command exists - go", command: "go", expected: true},
		{name: "nonexistent command", command: "this-command-definitely-does-not-exist-12345", expected: false},
		{name: "empty string", command: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasCommand(tt.command))
		})
	}
}

func TestCommandName(t *testing.T) {
	assert.Equal(t, "loginctl", CommandName("loginctl lock-session"))
	assert.Equal(t, "notify-send", CommandName("  notify-send 'idle'  "))
	assert.Empty(t, CommandName("   "))
}
