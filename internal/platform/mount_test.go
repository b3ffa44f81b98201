package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParentDir(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/mnt/vault", "/mnt"},
		{"/mnt/vault/", "/mnt"},
		{"/mnt", "/"},
		{"/", "/"},
	}
	for _, tt := range tests {
		if got := parentDir(tt.path); got != tt.want {
			t.Errorf("parentDir(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

// TestIsMountPointRoot covers the fast-path special case: "/" is always
// reported as a mountpoint without stat'ing anything.
func TestIsMountPointRoot(t *testing.T) {
	mounted, err := IsMountPoint("/")
	if err != nil {
		t.Fatalf("IsMountPoint(/): %v", err)
	}
	if !mounted {
		t.Error("IsMountPoint(/) = false, want true")
	}
}

// TestIsMountPointOrdinaryDirectory covers the common negative case: a
// plain subdirectory shares its parent's device ID and isn't a
// mountpoint (the fast path this function uses doesn't catch
// bind-mounts, which is documented as acceptable for C3's best-effort
// cleanup check).
func TestIsMountPointOrdinaryDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "subdir")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("creating subdir: %v", err)
	}

	mounted, err := IsMountPoint(sub)
	if err != nil {
		t.Fatalf("IsMountPoint(%q): %v", sub, err)
	}
	if mounted {
		t.Errorf("IsMountPoint(%q) = true, want false", sub)
	}
}

// TestUnmountSkipsNonMountpoint covers the no-op path: Unmount on a
// directory that isn't mounted anywhere returns nil without attempting
// a real unmount syscall.
func TestUnmountSkipsNonMountpoint(t *testing.T) {
	dir := t.TempDir()
	if err := Unmount(dir); err != nil {
		t.Errorf("Unmount(%q) = %v, want nil for a non-mountpoint", dir, err)
	}
}

// TestParseMountinfo covers the /proc/self/mountinfo line-shape parser
// against a representative excerpt, including a malformed line that
// must be skipped rather than aborting the whole parse.
func TestParseMountinfo(t *testing.T) {
	const sample = `36 35 98:0 / / rw,noatime - ext4 /dev/sda1 rw,errors=remount-ro
this line is garbage and has no separator
60 35 0:35 / /mnt/vault rw,relatime shared:1 - ext4 /dev/sdb1 rw
`
	path := filepath.Join(t.TempDir(), "mountinfo")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("writing sample mountinfo: %v", err)
	}

	entries, err := parseMountinfo(path)
	if err != nil {
		t.Fatalf("parseMountinfo: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("parseMountinfo returned %d entries, want 2 (malformed line must be skipped)", len(entries))
	}

	want := []mountEntry{
		{MountPoint: "/", Device: "/dev/sda1"},
		{MountPoint: "/mnt/vault", Device: "/dev/sdb1"},
	}
	for i, e := range entries {
		if e != want[i] {
			t.Errorf("entries[%d] = %+v, want %+v", i, e, want[i])
		}
	}
}

// TestDeviceIsMountedMatchesSource covers the pre-flight check C3 runs
// before C4 opens target_device: a device listed as a mount source in
// mountinfo is reported as mounted, one that isn't is reported as not.
func TestDeviceIsMountedMatchesSource(t *testing.T) {
	const sample = `60 35 0:35 / /mnt/vault rw,relatime shared:1 - ext4 /dev/sdb1 rw
`
	path := filepath.Join(t.TempDir(), "mountinfo")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("writing sample mountinfo: %v", err)
	}

	orig := MountinfoPath
	MountinfoPath = path
	defer func() { MountinfoPath = orig }()

	mounted, err := DeviceIsMounted("/dev/sdb1")
	if err != nil {
		t.Fatalf("DeviceIsMounted: %v", err)
	}
	if !mounted {
		t.Error("DeviceIsMounted(/dev/sdb1) = false, want true")
	}

	mounted, err = DeviceIsMounted("/dev/unrelated")
	if err != nil {
		t.Fatalf("DeviceIsMounted: %v", err)
	}
	if mounted {
		t.Error("DeviceIsMounted(/dev/unrelated) = true, want false")
	}
}
