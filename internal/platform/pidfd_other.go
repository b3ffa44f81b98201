//go:build !linux

package platform

import (
	"fmt"
	"os"
	"syscall"
)

// KillBackend has no pidfd primitive outside Linux, so it signals by
// bare pid; the race window against pid reuse is accepted on these
// platforms since this repo's primary target is Linux initramfs.
func KillBackend(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("finding pid %d: %w", pid, err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("sending SIGTERM to pid %d: %w", pid, err)
	}
	return nil
}

// ForceKillBackend mirrors KillBackend's stance, escalating to SIGKILL.
func ForceKillBackend(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("finding pid %d: %w", pid, err)
	}
	if err := proc.Signal(syscall.SIGKILL); err != nil {
		return fmt.Errorf("sending SIGKILL to pid %d: %w", pid, err)
	}
	return nil
}
