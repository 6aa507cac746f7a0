//go:build windows

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
	}
}

func shellCommand(commandLine string) *exec.Cmd {
	return exec.Command("cmd", "/C", commandLine)
}
