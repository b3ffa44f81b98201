package wipe

import (
	"bytes"
	"fmt"
	"time"

	"github.com/vaultgate/gate/internal/platform"
	"github.com/vaultgate/gate/internal/ui"
)

// verifyPass re-reads device after a Pattern pass and compares every
// chunk byte-exactly against the expected tiled pattern (§4.4.3). It
// reports the mismatch count rather than stopping at the first one, so
// the caller can decide severity.
func verifyPass(device string, pass Pass, size uint64, passNum, totalPasses int, progress ProgressFunc) (int, error) {
	h, err := openRead(device)
	if err != nil {
		return 0, fmt.Errorf("opening device for verify: %w", err)
	}
	defer h.Close()

	if err := h.SeekBegin(); err != nil {
		return 0, fmt.Errorf("seeking to start: %w", err)
	}

	got := make([]byte, platform.BufferSize)
	want := make([]byte, platform.BufferSize)

	var read uint64
	mismatches := 0
	lastReport := time.Time{}

	for read < size {
		remaining := size - read
		chunk := platform.ChunkSize(remaining, platform.AlignmentRequired)
		if chunk == 0 {
			break
		}

		n, err := h.Read(got[:chunk])
		if err != nil {
			return mismatches, fmt.Errorf("reading at offset %d: %w", read, err)
		}
		read += uint64(n)

		if err := fillChunk(want[:n], pass); err != nil {
			return mismatches, fmt.Errorf("building expected pattern: %w", err)
		}
		if !bytes.Equal(got[:n], want[:n]) {
			mismatches++
		}

		if progress != nil && time.Since(lastReport) >= ProgressThrottle {
			progress(ui.Progress{
				CurrentPass: passNum,
				TotalPasses: totalPasses,
				BytesDone:   read,
				BytesTotal:  size,
				Phase:       "Verify",
				Description: passDescription(pass),
			})
			lastReport = time.Now()
		}
	}

	if progress != nil {
		progress(ui.Progress{
			CurrentPass: passNum,
			TotalPasses: totalPasses,
			BytesDone:   read,
			BytesTotal:  size,
			Phase:       "Verify",
			Description: passDescription(pass),
		})
	}

	return mismatches, nil
}

// VerifyOnlyScan performs the VERIFY_ONLY algorithm's zero-write
// read-only scan (§4.4.1): it reads the whole device once and reports
// any I/O error. It never treats an unreadable sector as a pattern
// mismatch — VERIFY_ONLY writes nothing, so there's nothing to compare
// against.
func VerifyOnlyScan(device string, progress ProgressFunc) error {
	h, err := openRead(device)
	if err != nil {
		return fmt.Errorf("opening device for scan: %w", err)
	}
	defer h.Close()

	size, err := h.Size()
	if err != nil {
		return fmt.Errorf("determining device size: %w", err)
	}

	if err := h.SeekBegin(); err != nil {
		return fmt.Errorf("seeking to start: %w", err)
	}

	buf := make([]byte, platform.BufferSize)
	var read uint64
	lastReport := time.Time{}

	for read < size {
		remaining := size - read
		chunk := platform.ChunkSize(remaining, platform.AlignmentRequired)
		if chunk == 0 {
			break
		}

		n, err := h.Read(buf[:chunk])
		read += uint64(n)
		if err != nil {
			return fmt.Errorf("reading at offset %d: %w", read, err)
		}

		if progress != nil && time.Since(lastReport) >= ProgressThrottle {
			progress(ui.Progress{
				CurrentPass: 1,
				TotalPasses: 1,
				BytesDone:   read,
				BytesTotal:  size,
				Phase:       "Verify",
				Description: "read-only scan",
			})
			lastReport = time.Now()
		}
	}

	return nil
}
