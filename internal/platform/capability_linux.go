package platform

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/sirupsen/logrus"
)

// Linux capability(7) bits this package cares about. Numbering matches
// include/uapi/linux/capability.h.
const (
	capSysAdmin = 21
	capSysRawio = 17
)

const (
	linuxCapabilityVersion3 = 0x20080522
	prCapbsetDrop           = 24
)

// capHeader/capData mirror struct __user_cap_header_struct /
// struct __user_cap_data_struct, the same shape the teacher's
// capability package uses for its v3 capability set (capability.go's
// capsV3), but here accessed through a raw capget(2) syscall since this
// package only needs a read of the effective set, not a general-purpose
// capability library.
type capHeader struct {
	version uint32
	pid     int32
}

type capData struct {
	effective   uint32
	permitted   uint32
	inheritable uint32
}

func capget(hdr *capHeader, data *[2]capData) error {
	_, _, errno := syscall.Syscall(syscall.SYS_CAPGET, uintptr(unsafe.Pointer(hdr)), uintptr(unsafe.Pointer(data)), 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// HasSysRawio reports whether the running process currently holds
// CAP_SYS_RAWIO in its effective set, the pre-flight check §4.5
// requires before C4 opens a raw block device for writing.
func HasSysRawio() (bool, error) {
	return hasEffective(capSysRawio)
}

// HasSysAdmin reports whether the running process currently holds
// CAP_SYS_ADMIN, needed for the mount/unmount calls in C3's cleanup
// stage.
func HasSysAdmin() (bool, error) {
	return hasEffective(capSysAdmin)
}

func hasEffective(cap uint) (bool, error) {
	var hdr capHeader
	hdr.version = linuxCapabilityVersion3
	hdr.pid = 0

	var data [2]capData
	if err := capget(&hdr, &data); err != nil {
		return false, fmt.Errorf("capget: %w", err)
	}

	idx, bit := cap/32, cap%32
	return data[idx].effective&(1<<bit) != 0, nil
}

// DropBoundingSet irreversibly removes every capability from the
// process's bounding set except CAP_SYS_RAWIO and CAP_SYS_ADMIN via
// PR_CAPBSET_DROP, used during C3 stage 1 (lockdown) so that nothing
// running after this point — including a wedged external auth backend
// that survives into the sequencer — can regain privilege through a
// setuid helper. CAP_SYS_RAWIO and CAP_SYS_ADMIN are kept: stage 5 still
// needs to open the raw device and stage 3 still needs to unmount.
// Best-effort: a failure to drop an individual bit is logged, not
// fatal, since the sequencer must still proceed to destruction.
func DropBoundingSet() {
	for c := uintptr(0); c <= 63; c++ {
		if c == capSysRawio || c == capSysAdmin {
			continue
		}
		_, _, errno := syscall.Syscall(syscall.SYS_PRCTL, prCapbsetDrop, c, 0)
		if errno != 0 && errno != syscall.EINVAL {
			logrus.Debugf("platform: dropping capability bit %d failed: %v", c, errno)
		}
	}
}
