//go:build !linux && !darwin

package platform

// AlignmentRequired is conservatively true on platforms this repo
// doesn't have a dedicated raw-I/O backend for; ChunkSize then rounds
// to 512-byte multiples, which is always a legal (if sometimes
// unnecessary) write size.
const AlignmentRequired = true

// RewriteRawPath is a no-op outside Linux/Darwin.
func RewriteRawPath(path string) string { return path }

// OpenWrite/OpenRead fall back to the generic file-backed handle. There
// is no uncached-write guarantee on an unsupported platform; §4.4.4's
// cache-bypass contract is only claimed for Linux and Darwin.
func OpenWrite(path string) (Handle, error) { return newFileHandle(path, true) }
func OpenRead(path string) (Handle, error)  { return newFileHandle(path, false) }
