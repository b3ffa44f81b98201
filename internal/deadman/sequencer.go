// Package deadman implements C3, the uninterruptible destruction
// pipeline invoked exactly once when the gate reaches Exhausted (I2).
package deadman

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vaultgate/gate/internal/config"
	"github.com/vaultgate/gate/internal/diag"
	"github.com/vaultgate/gate/internal/platform"
	"github.com/vaultgate/gate/internal/ui"
	"github.com/vaultgate/gate/internal/wipe"
)

// CountdownDuration is the fixed, non-cancellable warning period of
// §4.3 stage 2.
const CountdownDuration = 5 * time.Second

// EncryptionBackend is the optional disk-encryption collaborator of
// §4.3 stage 4 (the "scramble" step). VaultGate ships no concrete
// implementation — LUKS-style volume management is explicitly out of
// scope (§1) — so a nil EncryptionBackend makes the sequencer skip
// scrambling without failing, exactly as the stage's contract requires.
type EncryptionBackend interface {
	// Available reports whether the backend can act on device right now.
	Available(device string) bool
	// FormatWithRandomKey reformats device with a freshly generated
	// random volume key and passphrase, both supplied by the caller so
	// they can be zeroed immediately after the call returns.
	FormatWithRandomKey(device string, key, passphrase []byte) error
}

// Sequencer runs the §4.3 pipeline. Shutdown defaults to
// platform.Shutdown; tests override it to observe invocation without
// actually powering off the test machine.
type Sequencer struct {
	Config     *config.Config
	Screen     ui.Screen
	Sink       diag.Sink
	Encryption EncryptionBackend
	Shutdown   func()
}

// New builds a Sequencer wired to the real platform primitives.
func New(cfg *config.Config, screen ui.Screen, sink diag.Sink, enc EncryptionBackend) *Sequencer {
	return &Sequencer{
		Config:     cfg,
		Screen:     screen,
		Sink:       sink,
		Encryption: enc,
		Shutdown:   platform.Shutdown,
	}
}

// Run executes the seven stages of §4.3 in order. It never returns
// control to the caller on a real platform (stage 7 blocks forever);
// it only returns here so tests can inject a Shutdown stub and observe
// that every stage ran.
func (s *Sequencer) Run() {
	s.lockdown()
	s.countdown()
	s.cleanup()
	s.scramble()
	s.overwrite()
	s.sync()
	s.poweroff()
}

// lockdown masks every asynchronous termination/stop signal the host
// exposes and drops the process's capability bounding set down to
// CAP_SYS_RAWIO/CAP_SYS_ADMIN (§4.3 stage 1). From this point on, no
// stage may return early on failure — every remaining stage is
// best-effort and the pipeline always advances (§5's cancellation
// model: after lockdown, no code path checks for cancellation).
func (s *Sequencer) lockdown() {
	if err := platform.Lockdown(); err != nil {
		s.record(diag.StageLockdown, err)
	}
	platform.DropBoundingSet()
}

// countdown displays the fixed warning for CountdownDuration. It is
// non-cancellable by construction: nothing here selects on a context
// or a signal channel.
func (s *Sequencer) countdown() {
	s.Screen.ShowCountdown(int(CountdownDuration / time.Second))
	time.Sleep(CountdownDuration)
}

// cleanup best-effort unmounts mount_point; it does not close an
// encryption mapping. Failures are swallowed per §4.3 stage 3. mount_point is
// resolved symlink-free first (§4.4.4's resolution contract) so a
// symlink substituted between config validation and this stage can't
// redirect the unmount at the wrong path.
func (s *Sequencer) cleanup() {
	if s.Config.MountPoint == "" {
		return
	}

	mountPoint := s.Config.MountPoint
	if resolved, err := platform.ResolvePath(mountPoint); err != nil {
		s.record(diag.StageCleanup, err)
	} else {
		mountPoint = resolved
	}

	if err := platform.Unmount(mountPoint); err != nil {
		s.record(diag.StageCleanup, err)
	}
}

// scramble reformats target_device with a fresh random key iff
// encrypt_before_wipe is set and an encryption backend is available
// (§4.3 stage 4). Both key and passphrase are secure-zeroed immediately
// after use regardless of outcome (I3, §5's resource discipline).
func (s *Sequencer) scramble() {
	if !s.Config.EncryptBeforeWipe || s.Encryption == nil || !s.Encryption.Available(s.Config.TargetDevice) {
		return
	}

	key, err := platform.RandomBytes(64)
	if err != nil {
		s.record(diag.StageScramble, err)
		return
	}
	defer platform.SecureZero(key)

	passphrase, err := platform.RandomBytes(32)
	if err != nil {
		s.record(diag.StageScramble, err)
		return
	}
	defer platform.SecureZero(passphrase)

	if err := s.Encryption.FormatWithRandomKey(s.Config.TargetDevice, key, passphrase); err != nil {
		s.record(diag.StageScramble, err)
	}
}

// overwrite invokes C4 with the configured algorithm (§4.3 stage 5). If
// that run fails outright, a fallback single-pass RANDOM overwrite is
// attempted against the same device before the pipeline moves on.
//
// Before C4 opens anything, target_device is resolved symlink-free
// (§4.4.4: a symlink substituted after config validation can't redirect
// the destructive write) and checked against the current mount table as
// an extra pre-flight safety signal — a positive result doesn't abort
// the overwrite (stage 3's unmount is itself best-effort and this stage
// must still advance), it's recorded so the diagnostic trail shows
// whether cleanup actually succeeded.
func (s *Sequencer) overwrite() {
	device := s.Config.TargetDevice
	if resolved, err := platform.ResolvePath(device); err != nil {
		s.record(diag.StageOverwrite, err)
	} else {
		device = resolved
	}

	if mounted, err := platform.DeviceIsMounted(device); err != nil {
		s.record(diag.StageOverwrite, err)
	} else if mounted {
		s.record(diag.StageOverwrite, fmt.Errorf("target device %s still appears mounted before overwrite", device))
	}

	if s.Config.WipeAlgorithm == config.AlgorithmVerifyOnly {
		// §9's open question: VERIFY_ONLY as the dead-man's algorithm is
		// never silently remapped to something destructive. The sequencer
		// runs the documented read-only scan and nothing else.
		s.record(diag.StageOverwrite, fmt.Errorf("wipe_algorithm is VERIFY_ONLY: the overwrite stage runs a read-only scan and destroys nothing"))
		if err := wipe.VerifyOnlyScan(device, s.progressFunc()); err != nil {
			s.record(diag.StageOverwrite, err)
		}
		return
	}

	plan := wipe.PlanFor(s.Config.WipeAlgorithm)
	_, err := wipe.Run(device, plan, s.Config.VerifyPasses, s.progressFunc(), s.Sink)
	if err == nil {
		return
	}
	s.record(diag.StageOverwrite, err)

	fallback := wipe.PlanFor(config.AlgorithmRandom)
	if _, err := wipe.Run(device, fallback, false, s.progressFunc(), s.Sink); err != nil {
		s.record(diag.StageOverwrite, fmt.Errorf("fallback random overwrite also failed: %w", err))
	}
}

func (s *Sequencer) progressFunc() func(ui.Progress) {
	if s.Screen == nil {
		return nil
	}
	return s.Screen.ShowProgress
}

// sync flushes OS buffers (§4.3 stage 6).
func (s *Sequencer) sync() {
	if err := platform.SyncAll(); err != nil {
		s.record(diag.StageSync, err)
	}
}

// poweroff invokes the platform shutdown primitive (§4.3 stage 7). On a
// real platform this never returns; if it somehow does, the pipeline
// must never hand control back to the caller, so platform.Shutdown's
// own implementations block forever rather than returning.
func (s *Sequencer) poweroff() {
	shutdown := s.Shutdown
	if shutdown == nil {
		shutdown = platform.Shutdown
	}
	shutdown()
}

func (s *Sequencer) record(stage diag.Stage, err error) {
	logrus.WithField("stage", stage).WithError(err).Warn("deadman: stage recorded a non-fatal error")
	if s.Sink != nil {
		s.Sink.Record(diag.Diagnostic{Stage: stage, Err: err, At: time.Now()})
	}
}
