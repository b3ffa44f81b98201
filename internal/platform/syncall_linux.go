package platform

import "golang.org/x/sys/unix"

// SyncAll flushes OS buffers system-wide (§4.3 stage 6). unix.Sync has
// no return value to check on Linux — it never fails in a way the
// caller can act on — so this always returns nil.
func SyncAll() error {
	unix.Sync()
	return nil
}
