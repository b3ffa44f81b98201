//go:build !linux

package platform

import (
	"os"
	"os/signal"
)

var terminationSignals = []os.Signal{os.Interrupt}

// Lockdown masks SIGINT, the one termination signal Go's os/signal
// package exposes portably. Platforms with a richer signal set (Linux)
// mask more of them; see lockdown_linux.go.
func Lockdown() error {
	signal.Ignore(terminationSignals...)
	return nil
}
