package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/stigoleg/vidle/internal/idle"
	"github.com/stigoleg/vidle/internal/util"
)

// ErrConfigNotFound is returned by Load when the file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// seconds decodes either an integer or a Go duration string.
type seconds int

func (s *seconds) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected seconds or a duration", value.Line)
	}
	parsed, err := util.ParseSeconds(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = seconds(parsed)
	return nil
}

// file mirrors the YAML layout. Pointers distinguish unset keys from zero
// values.
type file struct {
	Duration  *seconds  `yaml:"duration"`
	Events    []string  `yaml:"events"`
	Loop      *bool     `yaml:"loop"`
	Reminders []seconds `yaml:"reminders"`
	Wait      *seconds  `yaml:"wait"`
}

func (f file) apply(config idle.Config) idle.Config {
	if f.Duration != nil {
		config.Duration = int(*f.Duration)
	}
	if len(f.Events) > 0 {
		config.Events = append([]string(nil), f.Events...)
	}
	if f.Loop != nil {
		config.Loop = *f.Loop
	}
	if f.Reminders != nil {
		config.Reminders = make([]int, len(f.Reminders))
		for i, mark := range f.Reminders {
			config.Reminders[i] = int(mark)
		}
	}
	if f.Wait != nil {
		config.Wait = int(*f.Wait)
	}
	return config
}

// DefaultPath returns $XDG_CONFIG_HOME/vidle/config.yaml, or the platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "vidle.yaml")
	}
	return filepath.Join(dir, "vidle", "config.yaml")
}

// Load reads a YAML config file on top of the defaults. Keys missing from
// the file keep their default values.
func Load(path string) (idle.Config, error) {
	config := idle.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return config, fmt.Errorf("reading %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return config, fmt.Errorf("parsing %s: %w", path, err)
	}

	config = f.apply(config)
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}
