package platform

import (
	"errors"
	"time"
)

// ErrIdleUnsupported indicates the OS idle time cannot be read here.
var ErrIdleUnsupported = errors.New("system idle time unsupported")

// IdleProvider reports how long the system has gone without user input.
type IdleProvider interface {
	IdleDuration() (time.Duration, error)
}

// IdleProviderFunc adapts a function to IdleProvider.
type IdleProviderFunc func() (time.Duration, error)

// IdleDuration implements IdleProvider.
func (f IdleProviderFunc) IdleDuration() (time.Duration, error) {
	return f()
}

// NewIdleProvider returns the provider for the current platform.
func NewIdleProvider() IdleProvider {
	return newIdleProvider()
}

type unsupportedIdleProvider struct{}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, ErrIdleUnsupported
}
