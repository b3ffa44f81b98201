package platform

import (
	"context"
	"os"
	"strconv"
	"time"
)

// PidWatchInterval is the polling period for PidMonitor, matching the
// bound the teacher's pidmonitor package enforces on its own poll
// interval ([1ms, 1s]).
const PidWatchInterval = 50 * time.Millisecond

// PidExited is sent on a PidMonitor's channel when the watched process
// is no longer running.
type PidExited struct {
	Pid int
	At  time.Time
}

// PidMonitor polls a pid's liveness via /proc, the portable
// equivalent of the teacher's pidmonitor package's polling design. Used
// to notice a spawned voice/fingerprint backend exiting on its own
// (crash, unexpected EOF) while its result is still being awaited.
type PidMonitor struct {
	pid    int
	events chan PidExited
	cancel context.CancelFunc
}

// NewPidMonitor starts watching pid immediately.
func NewPidMonitor(ctx context.Context, pid int) *PidMonitor {
	ctx, cancel := context.WithCancel(ctx)
	pm := &PidMonitor{
		pid:    pid,
		events: make(chan PidExited, 1),
		cancel: cancel,
	}
	go pm.run(ctx)
	return pm
}

func (pm *PidMonitor) run(ctx context.Context) {
	ticker := time.NewTicker(PidWatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !pidAlive(pm.pid) {
				select {
				case pm.events <- PidExited{Pid: pm.pid, At: time.Now()}:
				default:
				}
				return
			}
		}
	}
}

func pidAlive(pid int) bool {
	_, err := os.Stat("/proc/" + strconv.Itoa(pid))
	return err == nil
}

// Events returns the channel PidMonitor reports on. It fires at most
// once, then the monitor goroutine exits.
func (pm *PidMonitor) Events() <-chan PidExited {
	return pm.events
}

// Stop ends the monitor goroutine. Safe to call more than once.
func (pm *PidMonitor) Stop() {
	pm.cancel()
}
