//go:build linux

package platform

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/stigoleg/vidle/internal/util"
)

const (
	displayServerWayland = "wayland"
	displayServerX11     = "x11"
	displayServerUnknown = "unknown"
)

// xprintidleProvider reads the X11 idle counter. xprintidle does not work
// under Wayland.
type xprintidleProvider struct {
	path string
}

func newIdleProvider() IdleProvider {
	if detectDisplayServer() == displayServerWayland || !util.HasCommand("xprintidle") {
		return unsupportedIdleProvider{}
	}
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return unsupportedIdleProvider{}
	}
	return &xprintidleProvider{path: path}
}

func (p *xprintidleProvider) IdleDuration() (time.Duration, error) {
	var out bytes.Buffer
	cmd := exec.Command(p.path)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseMillis(strings.TrimSpace(out.String()))
}

func parseMillis(value string) (time.Duration, error) {
	millis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse xprintidle output %q: %w", value, err)
	}
	if millis < 0 {
		millis = 0
	}
	return time.Duration(millis) * time.Millisecond, nil
}

func detectDisplayServer() string {
	switch strings.ToLower(os.Getenv("XDG_SESSION_TYPE")) {
	case displayServerWayland:
		return displayServerWayland
	case displayServerX11:
		return displayServerX11
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return displayServerWayland
	}
	if os.Getenv("DISPLAY") != "" {
		return displayServerX11
	}
	return displayServerUnknown
}
