// Package config builds the vidle command line and resolves the idle
// configuration from defaults, the YAML config file and flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/stigoleg/vidle/internal/idle"
	"github.com/stigoleg/vidle/internal/util"
)

// Options is the fully resolved command line.
type Options struct {
	Idle           idle.Config
	ConfigPath     string
	WatchConfig    bool
	Headless       bool
	ExitOnIdle     bool
	OnIdle         string
	SystemActivity bool

	reload func() (idle.Config, error)
}

// Reload reads the config file again and reapplies the flag overrides.
func (o Options) Reload() (idle.Config, error) {
	if o.reload == nil {
		return o.Idle, nil
	}
	return o.reload()
}

type values struct {
	duration  string
	events    string
	loop      bool
	reminders string
	wait      string
	startAt   string

	configPath     string
	watchConfig    bool
	headless       bool
	exitOnIdle     bool
	onIdle         string
	systemActivity bool

	now func() time.Time
}

// NewCommand returns the root command. run receives the resolved options.
func NewCommand(version string, run func(cmd *cobra.Command, opts Options) error) *cobra.Command {
	v := &values{now: time.Now}

	cmd := &cobra.Command{
		Use:   "vidle",
		Short: "Idle-detection countdown timer",
		Long: `vidle counts down while you are idle and resets on any activity.

When the countdown reaches zero an idle notification fires. Reminders fire
at chosen marks on the way down, and loop mode starts a new countdown after
each idle notification.`,
		Example: `  vidle -d 5m -r 60,30
  vidle --duration 90 --loop --start-at 09:00
  vidle --headless --exit-on-idle -d 2m --system-activity`,
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := v.resolve(cmd.Flags().Changed)
			if err != nil {
				return err
			}
			return run(cmd, opts)
		},
	}
	cmd.SetVersionTemplate("vidle version {{.Version}}\n")

	flags := cmd.Flags()
	flags.StringVarP(&v.duration, "duration", "d", "", `idle duration, seconds or a Go duration such as "5m" (default 300)`)
	flags.StringVarP(&v.events, "events", "e", "", "comma-separated activity events (default "+strings.Join(idle.DefaultEvents(), ",")+")")
	flags.BoolVarP(&v.loop, "loop", "l", false, "start a new countdown after each idle notification")
	flags.StringVarP(&v.reminders, "reminders", "r", "", "comma-separated remaining-time marks that trigger a reminder")
	flags.StringVarP(&v.wait, "wait", "w", "", "delay before the countdown starts")
	flags.StringVar(&v.startAt, "start-at", "", `start the countdown at a clock time such as "22:30" or "10:30PM"`)
	flags.StringVarP(&v.configPath, "config", "c", "", "config file (default "+DefaultPath()+")")
	flags.BoolVar(&v.watchConfig, "watch-config", false, "restart the countdown when the config file changes")
	flags.BoolVar(&v.headless, "headless", false, "print events as lines instead of running the TUI")
	flags.BoolVar(&v.exitOnIdle, "exit-on-idle", false, "exit after the first idle notification")
	flags.StringVar(&v.onIdle, "on-idle", "", "shell command to run on every idle notification")
	flags.BoolVar(&v.systemActivity, "system-activity", false, "treat OS-level input outside the terminal as activity")
	cmd.MarkFlagsMutuallyExclusive("wait", "start-at")

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.AddCommand(newCompletionCommand())
	return cmd
}

func (v *values) resolve(changed func(string) bool) (Options, error) {
	path := v.configPath
	explicit := changed("config")
	if path == "" {
		path = DefaultPath()
	}

	reload := func() (idle.Config, error) {
		config, err := Load(path)
		if err != nil {
			if !errors.Is(err, ErrConfigNotFound) || explicit {
				return config, err
			}
			config = idle.DefaultConfig()
		}
		return v.override(config, changed)
	}

	config, err := reload()
	if err != nil {
		return Options{}, err
	}

	if v.onIdle != "" && !util.HasCommand(util.CommandName(v.onIdle)) {
		return Options{}, fmt.Errorf("on-idle command %q not found in PATH", util.CommandName(v.onIdle))
	}

	return Options{
		Idle:           config,
		ConfigPath:     path,
		WatchConfig:    v.watchConfig,
		Headless:       v.headless,
		ExitOnIdle:     v.exitOnIdle,
		OnIdle:         v.onIdle,
		SystemActivity: v.systemActivity,
		reload:         reload,
	}, nil
}

// override applies the flags the user set on top of config.
func (v *values) override(config idle.Config, changed func(string) bool) (idle.Config, error) {
	if changed("duration") {
		seconds, err := util.ParseSeconds(v.duration)
		if err != nil {
			return config, err
		}
		config.Duration = seconds
	}
	if changed("events") {
		config.Events = util.ParseList(v.events)
	}
	if changed("loop") {
		config.Loop = v.loop
	}
	if changed("reminders") {
		marks, err := util.ParseReminders(v.reminders)
		if err != nil {
			return config, err
		}
		config.Reminders = marks
	}
	if changed("wait") {
		seconds, err := util.ParseSeconds(v.wait)
		if err != nil {
			return config, err
		}
		config.Wait = seconds
	}
	if changed("start-at") {
		seconds, err := util.SecondsUntil(v.startAt, v.now())
		if err != nil {
			return config, err
		}
		config.Wait = seconds
	}
	return config, config.Validate()
}

func newCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate a shell completion script",
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return WriteCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

// WriteCompletion writes the completion script for shell.
func WriteCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell %q", shell)
	}
}

var (
	errorColor  = lipgloss.Color("#FF4040")
	detailColor = lipgloss.Color("#999999")

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(0, 1)
)

// FormatError renders err for the terminal. Errors carrying a help block
// after a blank line are drawn in a bordered box.
func FormatError(err error) string {
	msg := err.Error()
	header, details, found := strings.Cut(msg, "\n\n")
	if !found {
		return errorStyle.Render("Error: " + msg)
	}
	return errorBoxStyle.Render(fmt.Sprintf("%s\n\n%s",
		errorStyle.Render(header),
		lipgloss.NewStyle().Foreground(detailColor).Render(details)))
}
