//go:build !windows

package main

import (
	"os"
	"os/exec"
	"syscall"
)

func getSignalsForPlatform() []os.Signal {
	return []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		syscall.SIGHUP,
	}
}

func shellCommand(commandLine string) *exec.Cmd {
	return exec.Command("/bin/sh", "-c", commandLine)
}
