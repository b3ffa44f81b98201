package platform

import (
	"testing"

	"github.com/spf13/afero"
)

func TestBlockDeviceName(t *testing.T) {
	tests := []struct {
		device string
		want   string
	}{
		{"/dev/sda", "sda"},
		{"/dev/sda1", "sda"},
		{"/dev/sdb12", "sdb"},
		{"/dev/nvme0n1", "nvme0n1"},
		{"/dev/nvme0n1p2", "nvme0n1"},
		{"not-a-dev-path", ""},
	}
	for _, tt := range tests {
		if got := blockDeviceName(tt.device); got != tt.want {
			t.Errorf("blockDeviceName(%q) = %q, want %q", tt.device, got, tt.want)
		}
	}
}

// TestIsRotationalReadsSysfs covers §4.4.6's SSD probe via the FS seam:
// a rotational value of "1" reports true, "0" reports false.
func TestIsRotationalReadsSysfs(t *testing.T) {
	orig := FS
	defer func() { FS = orig }()

	FS = afero.NewMemMapFs()
	afero.WriteFile(FS, "/sys/block/sda/queue/rotational", []byte("1\n"), 0o644)
	afero.WriteFile(FS, "/sys/block/nvme0n1/queue/rotational", []byte("0\n"), 0o644)

	rotational, err := IsRotational("/dev/sda")
	if err != nil {
		t.Fatalf("IsRotational(/dev/sda): %v", err)
	}
	if !rotational {
		t.Error("IsRotational(/dev/sda) = false, want true")
	}

	rotational, err = IsRotational("/dev/nvme0n1")
	if err != nil {
		t.Fatalf("IsRotational(/dev/nvme0n1): %v", err)
	}
	if rotational {
		t.Error("IsRotational(/dev/nvme0n1) = true, want false")
	}
}

// TestIsRotationalUnknownDeviceIsFailSafe covers §4.4.6's fail-safe
// stance: a device with no sysfs entry reports false (treated the same
// as "not rotational", so the SSD warning still fires) rather than an
// error that could abort the wipe.
func TestIsRotationalUnknownDeviceIsFailSafe(t *testing.T) {
	orig := FS
	defer func() { FS = orig }()

	FS = afero.NewMemMapFs()

	rotational, err := IsRotational("/dev/doesnotexist")
	if err != nil {
		t.Fatalf("IsRotational: unexpected error %v", err)
	}
	if rotational {
		t.Error("IsRotational for an unknown device = true, want false")
	}
}
