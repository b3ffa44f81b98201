// Package platform implements C5, the narrow uniform surface over the
// host OS (CSPRNG, raw block-device I/O with cache-bypass semantics,
// memory pinning, shutdown, secure zeroing) plus the supporting
// infrastructure adapted from the teacher repo: mount-table inspection,
// capability manipulation, symlink-safe path resolution, SSD detection,
// device-liveness polling, session locking, backend-process monitoring
// and log redaction.
package platform

import (
	"fmt"

	"github.com/vaultgate/gate/internal/diag"
)

// BufferSize is the chunk size used for every wipe pass. §4.4.2 requires
// at least 1 MiB, 512-byte aligned; 4 MiB is the recommended value.
const BufferSize = 4 * 1024 * 1024

// alignment is the sector size raw/unbuffered I/O must respect.
const alignment = 512

// Handle is the uniform raw-device handle abstraction of §4.4.4:
// open_write(path), open_read(path), seek_begin, write, read, sync,
// close. Exactly one of OpenWrite/OpenRead produces a given Handle; it
// is owned by the current pass and released before the next pass opens
// a new one (§5's resource discipline — verification must reopen in
// read mode).
type Handle interface {
	// SeekBegin seeks to offset 0.
	SeekBegin() error
	// Write writes buf, retrying on interrupted or short writes. It
	// returns the number of bytes written, which may be less than
	// len(buf) only on a genuine I/O error.
	Write(buf []byte) (int, error)
	// Read reads into buf, retrying on interrupted or short reads.
	Read(buf []byte) (int, error)
	// Sync issues the platform's strongest cache-flush-to-media
	// primitive available. Returning without having flushed is a bug.
	Sync() error
	// Close releases the handle.
	Close() error
	// Size returns the device's total size in bytes.
	Size() (uint64, error)
}

// AlignChunk rounds chunk down to the nearest 512-byte multiple when the
// platform requires unbuffered-I/O alignment. If this yields 0, the
// caller must stop (§4.4.2).
func AlignChunk(chunk int, alignmentRequired bool) int {
	if !alignmentRequired {
		return chunk
	}
	return chunk - (chunk % alignment)
}

// ChunkSize returns the buffer size to use for a write of remaining
// bytes, aligned per alignmentRequired.
func ChunkSize(remaining uint64, alignmentRequired bool) int {
	chunk := BufferSize
	if uint64(chunk) > remaining {
		chunk = int(remaining)
	}
	return AlignChunk(chunk, alignmentRequired)
}

// wrapIO wraps err (if non-nil) as diag.ErrIO with context.
func wrapIO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %v: %w", op, path, err, diag.ErrIO)
}
