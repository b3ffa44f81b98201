package platform

import (
	"os"
	"regexp"

	"golang.org/x/sys/unix"
)

// AlignmentRequired is false on Darwin: unbuffered access is requested
// via F_NOCACHE after open, not an O_DIRECT-style flag that constrains
// offsets and sizes to sector multiples.
const AlignmentRequired = false

var diskPathPattern = regexp.MustCompile(`^(.*/)disk(\d.*)$`)

// RewriteRawPath implements §4.4.4's prefix-insertion rule: a path of
// the form ".../diskN" becomes ".../rdiskN" so writes go to the raw
// character-device alias instead of the buffered block device. An
// already-raw path passes through unchanged.
func RewriteRawPath(path string) string {
	m := diskPathPattern.FindStringSubmatch(path)
	if m == nil {
		return path
	}
	return m[1] + "rdisk" + m[2]
}

type darwinHandle struct {
	f    *os.File
	path string
}

func OpenWrite(path string) (Handle, error) {
	path = RewriteRawPath(path)
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, wrapIO("open_write", path, err)
	}
	if err := setNoCache(f); err != nil {
		f.Close()
		return nil, wrapIO("F_NOCACHE", path, err)
	}
	return &darwinHandle{f: f, path: path}, nil
}

func OpenRead(path string) (Handle, error) {
	path = RewriteRawPath(path)
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, wrapIO("open_read", path, err)
	}
	return &darwinHandle{f: f, path: path}, nil
}

func setNoCache(f *os.File) error {
	_, _, errno := unix.Syscall(unix.SYS_FCNTL, f.Fd(), unix.F_NOCACHE, 1)
	if errno != 0 {
		return errno
	}
	return nil
}

func (h *darwinHandle) SeekBegin() error {
	_, err := h.f.Seek(0, 0)
	return wrapIO("seek", h.path, err)
}

func (h *darwinHandle) Write(buf []byte) (int, error) {
	n, err := writeRetry(h.f, buf)
	return n, wrapIO("write", h.path, err)
}

func (h *darwinHandle) Read(buf []byte) (int, error) {
	n, err := readRetry(h.f, buf)
	return n, wrapIO("read", h.path, err)
}

// Sync prefers F_FULLFSYNC semantics over fsync where available, per
// §4.4.4's POSIX contract.
func (h *darwinHandle) Sync() error {
	_, _, errno := unix.Syscall(unix.SYS_FCNTL, h.f.Fd(), unix.F_FULLFSYNC, 0)
	if errno != 0 {
		return wrapIO("fullfsync", h.path, h.f.Sync())
	}
	return nil
}

func (h *darwinHandle) Close() error {
	return wrapIO("close", h.path, h.f.Close())
}

func (h *darwinHandle) Size() (uint64, error) {
	st, err := h.f.Stat()
	if err != nil {
		return 0, wrapIO("stat", h.path, err)
	}
	return uint64(st.Size()), nil
}
