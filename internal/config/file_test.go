package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stigoleg/vidle/internal/idle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		expected  idle.Config
		wantError string
	}{
		{
			name:     "empty file keeps defaults",
			content:  "",
			expected: idle.DefaultConfig(),
		},
		{
			name: "all keys",
			content: `duration: 5m
events: [keypress, wheel]
loop: true
reminders: [60, 30s]
wait: 10
`,
			expected: idle.Config{
				Duration:  300,
				Events:    []string{"keypress", "wheel"},
				Loop:      true,
				Reminders: []int{60, 30},
				Wait:      10,
			},
		},
		{
			name:    "partial file",
			content: "duration: 90\n",
			expected: idle.Config{
				Duration: 90,
				Events:   idle.DefaultEvents(),
				Wait:     idle.DefaultWait,
			},
		},
		{
			name:      "bad duration",
			content:   "duration: soon\n",
			wantError: "Valid formats",
		},
		{
			name:      "negative wait",
			content:   "wait: -1\n",
			wantError: "must not be negative",
		},
		{
			name:      "blank event",
			content:   "events: [keypress, '  ']\n",
			wantError: "event 1 is empty",
		},
		{
			name:      "mapping for duration",
			content:   "duration: {minutes: 5}\n",
			wantError: "expected seconds or a duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := Load(writeFile(t, tt.content))
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, config)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, ErrConfigNotFound)
	assert.Equal(t, idle.DefaultConfig(), config)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "config.yaml", filepath.Base(DefaultPath()))
	assert.Equal(t, "vidle", filepath.Base(filepath.Dir(DefaultPath())))
}
