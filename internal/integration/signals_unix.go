//go:build !windows

// Package integration holds end-to-end tests that run the idle watcher on
// real time, in-process and in helper processes.
package integration

import (
	"os"
	"syscall"
)

func shutdownSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	}
}

func interrupt(proc *os.Process) error {
	return proc.Signal(syscall.SIGINT)
}

func terminate(proc *os.Process) error {
	return proc.Signal(syscall.SIGTERM)
}
