package platform

import (
	"fmt"
	"syscall"
)

// pidfd_open/pidfd_send_signal syscall numbers on Linux 5.1+/5.3+.
const (
	sysPidfdOpen       = 434
	sysPidfdSendSignal = 424
)

// pidFd is a file descriptor referring to a process, used to kill a
// spawned voice/fingerprint backend deterministically: unlike signaling
// by pid, a pidfd can't be raced by pid reuse between the check and the
// kill.
type pidFd int

func pidfdOpen(pid int) (pidFd, error) {
	fd, _, errno := syscall.Syscall(sysPidfdOpen, uintptr(pid), 0, 0)
	if errno != 0 {
		return 0, errno
	}
	return pidFd(fd), nil
}

func (fd pidFd) sendSignal(sig syscall.Signal) error {
	_, _, errno := syscall.Syscall6(sysPidfdSendSignal, uintptr(fd), uintptr(sig), 0, 0, 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// KillBackend terminates the process identified by pid deterministically,
// used when a spawned voice or fingerprint backend exceeds its bounded
// timeout (§4.2's Method.PromptAndVerify contract requires every backend
// call to be abortable). It sends SIGTERM only; ForceKillBackend sends
// SIGKILL.
func KillBackend(pid int) error {
	fd, err := pidfdOpen(pid)
	if err != nil {
		return fmt.Errorf("opening pidfd for pid %d: %w", pid, err)
	}
	defer syscall.Close(int(fd))

	if err := fd.sendSignal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("sending SIGTERM to pid %d: %w", pid, err)
	}
	return nil
}

// ForceKillBackend escalates to SIGKILL; ExecSpeechToText.Transcribe
// calls it when KillBackend returns an error.
func ForceKillBackend(pid int) error {
	fd, err := pidfdOpen(pid)
	if err != nil {
		return fmt.Errorf("opening pidfd for pid %d: %w", pid, err)
	}
	defer syscall.Close(int(fd))

	if err := fd.sendSignal(syscall.SIGKILL); err != nil {
		return fmt.Errorf("sending SIGKILL to pid %d: %w", pid, err)
	}
	return nil
}
