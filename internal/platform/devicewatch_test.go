package platform

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDeviceWatcherFiresOnRemoval covers the failure mode §4.4/§5
// document: a device node vanishing mid-pass (e.g. a USB enclosure
// unplugged) must be reported exactly once on Events().
func TestDeviceWatcherFiresOnRemoval(t *testing.T) {
	origInterval := DeviceWatchInterval
	DeviceWatchInterval = 10 * time.Millisecond
	defer func() { DeviceWatchInterval = origInterval }()

	path := filepath.Join(t.TempDir(), "device.img")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("creating device file: %v", err)
	}

	dw := NewDeviceWatcher(context.Background(), path)
	defer dw.Stop()

	if err := os.Remove(path); err != nil {
		t.Fatalf("removing device file: %v", err)
	}

	select {
	case ev := <-dw.Events():
		if ev.Device != path {
			t.Errorf("event device = %q, want %q", ev.Device, path)
		}
	case <-time.After(time.Second):
		t.Fatal("DeviceWatcher never reported the removed device")
	}
}

// TestDeviceWatcherSilentWhileDevicePresent ensures a watcher on a
// device that never disappears doesn't fire spuriously.
func TestDeviceWatcherSilentWhileDevicePresent(t *testing.T) {
	origInterval := DeviceWatchInterval
	DeviceWatchInterval = 10 * time.Millisecond
	defer func() { DeviceWatchInterval = origInterval }()

	path := filepath.Join(t.TempDir(), "device.img")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("creating device file: %v", err)
	}

	dw := NewDeviceWatcher(context.Background(), path)
	defer dw.Stop()

	select {
	case ev := <-dw.Events():
		t.Fatalf("unexpected event for a device that never vanished: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

// TestDeviceWatcherStopIsIdempotent covers that Stop is safe to call
// more than once.
func TestDeviceWatcherStopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.img")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("creating device file: %v", err)
	}

	dw := NewDeviceWatcher(context.Background(), path)
	dw.Stop()
	dw.Stop()
}
