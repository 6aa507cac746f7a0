package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/stigoleg/vidle/internal/idle"
)

// idleHook runs a shell command on every idle notification. The command is
// started and left to finish on its own; failures are only logged.
type idleHook struct {
	command string
	done    chan error
}

func (h *idleHook) handle(e idle.Event) {
	if e.Type != idle.EventIdle || h.command == "" {
		return
	}

	cmd := shellCommand(h.command)
	cmd.Env = append(os.Environ(),
		"VIDLE_EVENT="+string(e.Type),
		"VIDLE_AT="+e.At.Format(time.RFC3339),
		"VIDLE_REMAINING="+strconv.Itoa(e.Remaining),
	)
	if err := cmd.Start(); err != nil {
		log.Printf("hook: failed to start %q: %v", h.command, err)
		h.report(err)
		return
	}

	go func() {
		err := cmd.Wait()
		if err != nil {
			log.Printf("hook: %q failed: %v", h.command, err)
		}
		h.report(err)
	}()
}

func (h *idleHook) report(err error) {
	if h.done == nil {
		return
	}
	select {
	case h.done <- err:
	default:
	}
}
