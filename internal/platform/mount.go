package platform

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
)

// IsMountPoint quickly checks whether path is a mountpoint by comparing
// device IDs for path versus its parent, avoiding the expensive parse of
// /proc/self/mountinfo for the common case. Adapted from the teacher's
// mount.IsMountPoint; this fast path doesn't catch bind-mounts (the
// device ID doesn't differ), which is fine here since C3's cleanup
// stage only needs a best-effort check before attempting the unmount.
func IsMountPoint(path string) (bool, error) {
	if path == "/" {
		return true, nil
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat path: %w", err)
	}

	parentInfo, err := os.Stat(parentDir(path))
	if err != nil {
		return false, fmt.Errorf("failed to stat parent path: %w", err)
	}

	fileStat, ok1 := fileInfo.Sys().(*syscall.Stat_t)
	parentStat, ok2 := parentInfo.Sys().(*syscall.Stat_t)
	if !ok1 || !ok2 {
		return false, fmt.Errorf("failed to retrieve Stat_t from file info")
	}

	return fileStat.Dev != parentStat.Dev, nil
}

func parentDir(path string) string {
	i := strings.LastIndexByte(strings.TrimRight(path, "/"), '/')
	if i <= 0 {
		return "/"
	}
	return path[:i]
}

// Unmount performs a best-effort unmount of mountPoint, the C3 stage-3
// cleanup step. A failure is swallowed by the caller (the sequencer
// never lets a cleanup failure abort the pipeline) — this function only
// distinguishes "nothing to do" (not a mountpoint) from a real error so
// the caller can log usefully.
func Unmount(mountPoint string) error {
	mounted, err := IsMountPoint(mountPoint)
	if err != nil {
		return fmt.Errorf("checking mountpoint %s: %w", mountPoint, err)
	}
	if !mounted {
		logrus.Debugf("platform: %s is not mounted, nothing to unmount", mountPoint)
		return nil
	}

	if err := syscall.Unmount(mountPoint, 0); err != nil {
		if err := syscall.Unmount(mountPoint, syscall.MNT_FORCE); err != nil {
			return fmt.Errorf("unmounting %s: %w", mountPoint, err)
		}
	}
	return nil
}

// mountEntry mirrors one line of /proc/self/mountinfo, used by
// DeviceIsMounted below to check whether a device is currently
// mounted anywhere before the wipe engine opens it for writing.
type mountEntry struct {
	MountPoint string
	Device     string
}

// parseMountinfo parses /proc/self/mountinfo. It is tolerant of
// malformed lines (skips them) since this is advisory, not load-bearing.
func parseMountinfo(path string) ([]mountEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []mountEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		// mountinfo fields: ... mountpoint ... - fstype source ...
		// The separator "-" marks the start of the fixed trailer.
		sep := -1
		for i, f := range fields {
			if f == "-" {
				sep = i
				break
			}
		}
		if sep < 0 || sep+2 >= len(fields) || len(fields) < 5 {
			continue
		}
		entries = append(entries, mountEntry{
			MountPoint: fields[4],
			Device:     fields[sep+2],
		})
	}
	return entries, sc.Err()
}

// MountinfoPath is the source DeviceIsMounted reads, overridable in
// tests the same way config.CmdlinePath is.
var MountinfoPath = "/proc/self/mountinfo"

// DeviceIsMounted reports whether device appears as the source of any
// current mount, consulting MountinfoPath. Used as an extra pre-flight
// safety check before C4 opens a device for destructive writes.
func DeviceIsMounted(device string) (bool, error) {
	entries, err := parseMountinfo(MountinfoPath)
	if err != nil {
		return false, fmt.Errorf("reading mountinfo: %w", err)
	}
	for _, e := range entries {
		if e.Device == device {
			return true, nil
		}
	}
	return false, nil
}
