package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// AlignmentRequired is true wherever unbuffered I/O is a flag on the
// open call (§4.4.4) — on Linux that's O_DIRECT, which implies
// 512-byte-aligned offsets and sizes.
const AlignmentRequired = true

// RewriteRawPath is a no-op on Linux: there is no separate raw/buffered
// character-device alias for a block device the way there is on
// Darwin (§4.4.4's "…/diskN → …/rdiskN" rule is Darwin-specific).
func RewriteRawPath(path string) string { return path }

type linuxHandle struct {
	f    *os.File
	path string
}

// OpenWrite opens path for uncached, serialized writes using a
// write-through mode with O_DIRECT set, per §4.4.4.
func OpenWrite(path string) (Handle, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|unix.O_DIRECT|unix.O_SYNC, 0)
	if err != nil {
		return nil, wrapIO("open_write", path, err)
	}
	return &linuxHandle{f: f, path: path}, nil
}

// OpenRead reopens path for read-back verification (§4.4.3 step 1).
func OpenRead(path string) (Handle, error) {
	f, err := os.OpenFile(path, os.O_RDONLY|unix.O_DIRECT, 0)
	if err != nil {
		return nil, wrapIO("open_read", path, err)
	}
	return &linuxHandle{f: f, path: path}, nil
}

func (h *linuxHandle) SeekBegin() error {
	_, err := h.f.Seek(0, 0)
	return wrapIO("seek", h.path, err)
}

func (h *linuxHandle) Write(buf []byte) (int, error) {
	n, err := writeRetry(h.f, buf)
	return n, wrapIO("write", h.path, err)
}

func (h *linuxHandle) Read(buf []byte) (int, error) {
	n, err := readRetry(h.f, buf)
	return n, wrapIO("read", h.path, err)
}

// Sync issues fdatasync, the strongest per-device flush Linux offers
// for a raw block device (the ordering preference of §4.4.2 puts
// per-device fsync ahead of a generic buffer flush; fdatasync is
// equivalent here since O_DIRECT bypasses the page cache already).
func (h *linuxHandle) Sync() error {
	return wrapIO("sync", h.path, unix.Fdatasync(int(h.f.Fd())))
}

func (h *linuxHandle) Close() error {
	return wrapIO("close", h.path, h.f.Close())
}

// Size returns the device's total size via the BLKGETSIZE64 ioctl.
func (h *linuxHandle) Size() (uint64, error) {
	sz, err := unix.IoctlGetUint64(int(h.f.Fd()), unix.BLKGETSIZE64)
	if err != nil {
		return 0, wrapIO("ioctl BLKGETSIZE64", h.path, err)
	}
	return sz, nil
}
