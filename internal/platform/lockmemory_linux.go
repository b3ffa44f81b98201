package platform

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// LockMemory requests the OS pin the process's address space against
// paging, so credential buffers and derived keys never touch swap. It
// is best effort and never fatal (§4.5): a refusal (e.g. RLIMIT_MEMLOCK
// too low for an unprivileged process) is logged and ignored.
func LockMemory() {
	if err := unix.Mlockall(unix.MCL_CURRENT | unix.MCL_FUTURE); err != nil {
		logrus.Warnf("platform: mlockall refused, continuing without memory pinning: %v", err)
	}
}
