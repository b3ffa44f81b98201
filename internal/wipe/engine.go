package wipe

import (
	"context"
	"fmt"
	"time"

	"github.com/vaultgate/gate/internal/diag"
	"github.com/vaultgate/gate/internal/platform"
	"github.com/vaultgate/gate/internal/ui"
)

// ProgressThrottle is the minimum interval between progress-callback
// invocations within a single pass (§4.4.5: "at most once per 500ms").
const ProgressThrottle = 500 * time.Millisecond

// openWrite/openRead are indirected through package vars, the same seam
// pattern config.FS and platform.FS use, so tests can exercise the
// engine against platform.NewFileHandle-backed plain files instead of a
// real O_DIRECT block device.
var (
	openWrite = platform.OpenWrite
	openRead  = platform.OpenRead
)

// ProgressFunc receives one progress record; it must not block for long
// since it is invoked synchronously from the I/O path (§5).
type ProgressFunc func(ui.Progress)

// Result summarizes one Run invocation.
type Result struct {
	PassesWritten  int
	PassesVerified int
	Mismatches     int
}

// Run executes plan against device, in order, flushing to media after
// every pass (§4.4.2 step 2) before the next pass opens a new write
// handle. If verify is true, every Pattern pass is immediately
// read back and compared (§4.4.3); Random passes are never verified.
// A pass failure is recorded to sink and stops the plan with an error;
// verify failures and mismatches are recorded to sink and do not stop it.
func Run(device string, plan Plan, verify bool, progress ProgressFunc, sink diag.Sink) (Result, error) {
	var result Result

	for i, pass := range plan {
		size, err := deviceSize(device)
		if err != nil {
			sink.Record(diag.Diagnostic{Stage: diag.StageWipePass, Err: err, At: time.Now()})
			return result, fmt.Errorf("wipe: determining device size: %w", err)
		}

		if err := runPass(device, pass, size, i+1, len(plan), progress); err != nil {
			sink.Record(diag.Diagnostic{Stage: diag.StageWipePass, Err: err, At: time.Now()})
			return result, fmt.Errorf("wipe: pass %d/%d: %w", i+1, len(plan), err)
		}
		result.PassesWritten++

		if verify && pass.Kind == Pattern {
			mismatches, err := verifyPass(device, pass, size, i+1, len(plan), progress)
			if err != nil {
				sink.Record(diag.Diagnostic{Stage: diag.StageWipeVerify, Err: err, At: time.Now()})
			} else {
				result.PassesVerified++
				result.Mismatches += mismatches
				if mismatches > 0 {
					sink.Record(diag.Diagnostic{
						Stage: diag.StageWipeVerify,
						Err:   fmt.Errorf("%w: %d mismatched chunk(s) in pass %d", diag.ErrVerifyMismatch, mismatches, i+1),
						At:    time.Now(),
					})
				}
			}
		}
	}

	return result, nil
}

func deviceSize(device string) (uint64, error) {
	h, err := openRead(device)
	if err != nil {
		return 0, err
	}
	defer h.Close()
	return h.Size()
}

// runPass executes one write pass in full, per §4.4.2. A DeviceWatcher
// polls for the target device node vanishing mid-pass (e.g. a USB
// enclosure unplugged during a long write) and fails the pass with an
// IoError rather than spinning against a handle that can no longer
// reach media; it is stopped before this function returns, so
// verification (a separate reopen) never races against it.
func runPass(device string, pass Pass, size uint64, passNum, totalPasses int, progress ProgressFunc) error {
	h, err := openWrite(device)
	if err != nil {
		return fmt.Errorf("opening device for write: %w", err)
	}
	defer h.Close()

	if err := h.SeekBegin(); err != nil {
		return fmt.Errorf("seeking to start: %w", err)
	}

	watcher := platform.NewDeviceWatcher(context.Background(), device)
	defer watcher.Stop()

	buf := make([]byte, platform.BufferSize)
	var written uint64
	lastReport := time.Time{}

	for written < size {
		select {
		case ev := <-watcher.Events():
			return fmt.Errorf("device %s vanished at offset %d: %w", ev.Device, written, diag.ErrIO)
		default:
		}

		remaining := size - written
		chunk := platform.ChunkSize(remaining, platform.AlignmentRequired)
		if chunk == 0 {
			break
		}

		if err := fillChunk(buf[:chunk], pass); err != nil {
			return fmt.Errorf("filling pass buffer: %w", err)
		}

		n, err := h.Write(buf[:chunk])
		written += uint64(n)
		if err != nil {
			return fmt.Errorf("writing at offset %d: %w", written, err)
		}

		if progress != nil && time.Since(lastReport) >= ProgressThrottle {
			progress(ui.Progress{
				CurrentPass: passNum,
				TotalPasses: totalPasses,
				BytesDone:   written,
				BytesTotal:  size,
				Phase:       "Write",
				Description: passDescription(pass),
			})
			lastReport = time.Now()
		}
	}

	if progress != nil {
		progress(ui.Progress{
			CurrentPass: passNum,
			TotalPasses: totalPasses,
			BytesDone:   written,
			BytesTotal:  size,
			Phase:       "Write",
			Description: passDescription(pass),
		})
	}

	if err := h.Sync(); err != nil {
		return fmt.Errorf("flushing pass to media: %w", err)
	}
	return nil
}

// fillChunk fills buf per the pass spec: fresh CSPRNG bytes for Random,
// or the tiled repeating pattern for Pattern.
func fillChunk(buf []byte, pass Pass) error {
	switch pass.Kind {
	case Random:
		return platform.Random(buf)
	case Pattern:
		k := len(pass.Pattern)
		for i := range buf {
			buf[i] = pass.Pattern[i%k]
		}
		return nil
	default:
		return fmt.Errorf("unknown pass kind %d", pass.Kind)
	}
}

func passDescription(pass Pass) string {
	switch pass.Kind {
	case Random:
		return "random"
	case Pattern:
		return fmt.Sprintf("pattern %x", pass.Pattern)
	default:
		return "unknown"
	}
}
