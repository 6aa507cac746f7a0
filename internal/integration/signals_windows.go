//go:build windows

// Package integration holds end-to-end tests that run the idle watcher on
// real time, in-process and in helper processes.
package integration

import (
	"errors"
	"os"
	"syscall"
)

var errSignalUnsupported = errors.New("sending signals is not supported on windows")

func shutdownSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
	}
}

func interrupt(proc *os.Process) error {
	return errSignalUnsupported
}

func terminate(proc *os.Process) error {
	return errSignalUnsupported
}
