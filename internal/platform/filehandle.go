package platform

import "os"

// fileHandle is a generic Handle backed by a plain *os.File, with none
// of the OS-specific cache-bypass semantics OpenWrite/OpenRead provide
// on Linux/Darwin. It backs the unsupported-platform fallback in
// rawdevice_other.go and is also exported via NewFileHandle for tests
// that exercise the wipe engine against an ordinary file standing in
// for a device, since a sandboxed test run can't reliably open a real
// block device with O_DIRECT.
type fileHandle struct {
	f *os.File
}

// NewFileHandle wraps an already-open *os.File as a Handle, for tests.
func NewFileHandle(f *os.File) Handle {
	return &fileHandle{f: f}
}

func newFileHandle(path string, write bool) (Handle, error) {
	flag := os.O_RDONLY
	if write {
		flag = os.O_WRONLY
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		op := "open_read"
		if write {
			op = "open_write"
		}
		return nil, wrapIO(op, path, err)
	}
	return &fileHandle{f: f}, nil
}

func (h *fileHandle) SeekBegin() error {
	_, err := h.f.Seek(0, 0)
	return wrapIO("seek", h.f.Name(), err)
}

func (h *fileHandle) Write(buf []byte) (int, error) {
	n, err := writeRetry(h.f, buf)
	return n, wrapIO("write", h.f.Name(), err)
}

func (h *fileHandle) Read(buf []byte) (int, error) {
	n, err := readRetry(h.f, buf)
	return n, wrapIO("read", h.f.Name(), err)
}

func (h *fileHandle) Sync() error {
	return wrapIO("sync", h.f.Name(), h.f.Sync())
}

func (h *fileHandle) Close() error {
	return wrapIO("close", h.f.Name(), h.f.Close())
}

func (h *fileHandle) Size() (uint64, error) {
	st, err := h.f.Stat()
	if err != nil {
		return 0, wrapIO("stat", h.f.Name(), err)
	}
	return uint64(st.Size()), nil
}
