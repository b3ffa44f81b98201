package platform

import (
	"context"
	"os"
	"time"
)

// DeviceWatchInterval is the polling period for DeviceWatcher. A wipe
// pass reads/writes in multi-megabyte chunks (BufferSize), so polling
// once a second is frequent enough to catch a device disappearing mid
// pass without adding meaningful overhead. A var, not a const, so tests
// can tighten it rather than waiting out a real second per assertion.
var DeviceWatchInterval = 1 * time.Second

// DeviceVanished is sent on a DeviceWatcher's channel when the watched
// device node stops existing.
type DeviceVanished struct {
	Device string
	At     time.Time
}

// DeviceWatcher polls a device node's existence on a fixed interval and
// reports if it disappears, the failure mode §4.4.5 requires the wipe
// engine to treat as an IoError on whichever pass is in flight (e.g. a
// USB enclosure unplugged mid-wipe).
type DeviceWatcher struct {
	device string
	events chan DeviceVanished
	cancel context.CancelFunc
}

// NewDeviceWatcher starts watching device immediately; callers drain
// Events() for at most one notification before calling Stop.
func NewDeviceWatcher(ctx context.Context, device string) *DeviceWatcher {
	ctx, cancel := context.WithCancel(ctx)
	dw := &DeviceWatcher{
		device: device,
		events: make(chan DeviceVanished, 1),
		cancel: cancel,
	}
	go dw.run(ctx)
	return dw
}

func (dw *DeviceWatcher) run(ctx context.Context) {
	ticker := time.NewTicker(DeviceWatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := os.Stat(dw.device); os.IsNotExist(err) {
				select {
				case dw.events <- DeviceVanished{Device: dw.device, At: time.Now()}:
				default:
				}
				return
			}
		}
	}
}

// Events returns the channel DeviceWatcher reports on. It fires at most
// once, then the watcher goroutine exits.
func (dw *DeviceWatcher) Events() <-chan DeviceVanished {
	return dw.events
}

// Stop ends the watcher goroutine. Safe to call more than once.
func (dw *DeviceWatcher) Stop() {
	dw.cancel()
}
