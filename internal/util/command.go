package util

import (
	"os/exec"
	"strings"
)

// HasCommand checks if a command is available in the system PATH.
func HasCommand(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// CommandName returns the executable named by the first word of a shell
// command line.
func CommandName(commandLine string) string {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
