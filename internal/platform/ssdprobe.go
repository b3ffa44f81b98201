package platform

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// FS is the afero filesystem used for sysfs probes, swappable in tests
// the same way config.FS is.
var FS afero.Fs = afero.NewOsFs()

// IsRotational reports whether device (e.g. "/dev/sda") is backed by
// spinning media, by reading /sys/block/<dev>/queue/rotational. §4.4.6
// uses this to decide whether to emit the SSD overwrite-reliability
// warning: non-rotational media doesn't guarantee overwritten sectors
// are physically destroyed, since wear-leveling can retire a sector out
// from under every overwrite pass.
//
// A lookup failure (device not found under /sys/block, malformed
// content) returns false, nil rather than an error — the caller treats
// "unknown" the same as "not rotational" and still emits the warning,
// per the fail-safe stance in §4.4.6.
func IsRotational(device string) (bool, error) {
	name := blockDeviceName(device)
	if name == "" {
		return false, nil
	}

	path := filepath.Join("/sys/block", name, "queue", "rotational")
	data, err := afero.ReadFile(FS, path)
	if err != nil {
		return false, nil
	}

	val, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false, nil
	}
	return val == 1, nil
}

// blockDeviceName strips a /dev/ prefix and any trailing partition
// number, e.g. "/dev/sda1" -> "sda", "/dev/nvme0n1p2" -> "nvme0n1", so
// the rotational probe targets the whole-disk sysfs entry rather than a
// partition, which has no queue/ directory of its own.
func blockDeviceName(device string) string {
	name := strings.TrimPrefix(device, "/dev/")
	if name == device {
		return ""
	}

	if strings.HasPrefix(name, "nvme") {
		if i := strings.LastIndex(name, "p"); i > 0 {
			if _, err := strconv.Atoi(name[i+1:]); err == nil {
				return name[:i]
			}
		}
		return name
	}

	trimmed := strings.TrimRight(name, "0123456789")
	if trimmed == "" {
		return name
	}
	return trimmed
}
