package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/vidle/internal/config"
	"github.com/stigoleg/vidle/internal/idle"
	"github.com/stigoleg/vidle/internal/platform"
	"github.com/stigoleg/vidle/internal/session"
	"github.com/stigoleg/vidle/internal/ui"
)

// withSystemEvent adds the probe's event to cfg when the probe is enabled.
func withSystemEvent(cfg idle.Config, enabled bool) idle.Config {
	if !enabled {
		return cfg
	}
	return cfg.WithEvent(platform.SystemInputEvent)
}

func runTUI(opts config.Options) error {
	if os.Getenv("VIDLE_DEBUG") != "" {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	hook := &idleHook{command: opts.OnIdle}
	model := ui.New(ui.Options{
		Config:     withSystemEvent(opts.Idle, opts.SystemActivity),
		OnEvent:    hook.handle,
		ExitOnIdle: opts.ExitOnIdle,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithoutSignalHandler(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanup := session.NewCleanup(0)

	if opts.SystemActivity {
		probe := platform.NewProbe(platform.NewIdleProvider(), 0, func() {
			p.Send(ui.ActivityMsg{Event: platform.SystemInputEvent})
		})
		if err := probe.Start(ctx); err != nil {
			log.Printf("tui: system activity disabled: %v", err)
		} else {
			cleanup.Add("probe", func() error {
				probe.Stop()
				return nil
			})
		}
	}

	if opts.WatchConfig {
		w, err := config.Watch(opts.ConfigPath, 0, func() {
			cfg, err := opts.Reload()
			if err != nil {
				log.Printf("tui: keeping current config: %v", err)
				return
			}
			p.Send(ui.ConfigMsg{Config: withSystemEvent(cfg, opts.SystemActivity)})
		})
		if err != nil {
			log.Printf("tui: config reload disabled: %v", err)
		} else {
			cleanup.Add("config watcher", w.Close)
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, getSignalsForPlatform()...)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			log.Printf("tui: received signal: %v", sig)
			p.Send(ui.QuitMsg{})
		case <-ctx.Done():
		}
	}()

	_, runErr := p.Run()
	if err := cleanup.Run(); err != nil {
		log.Printf("tui: cleanup: %v", err)
	}
	return runErr
}
