// Package diag defines the error taxonomy and non-fatal diagnostic sink
// shared by the authentication gate, the dead-man's sequencer and the
// wipe engine.
package diag

import "errors"

// Sentinel errors. Components wrap these with fmt.Errorf("...: %w", Err...)
// so callers can recover the category with errors.Is while still getting a
// useful message. None of these, nor any error wrapping them, may carry a
// plaintext credential or derived key in their message.
var (
	// ErrConfigMissing means the configuration record could not be found
	// (no target device, no credential reference).
	ErrConfigMissing = errors.New("config missing")

	// ErrConfigInvalid means the configuration record was found but is
	// malformed (bad reference format, empty target device, etc).
	ErrConfigInvalid = errors.New("config invalid")

	// ErrAuthMismatch is a normal failed attempt; never surfaced past the
	// gate's own remaining-attempts message.
	ErrAuthMismatch = errors.New("credential mismatch")

	// ErrAuthBackendError covers hardware going away mid-session or a
	// speech engine fault. Treated as a failed attempt by the gate.
	ErrAuthBackendError = errors.New("auth backend error")

	// ErrIO covers device open/read/write/sync failures.
	ErrIO = errors.New("device io error")

	// ErrVerifyMismatch is reported via the diagnostic sink; it never
	// fails the wipe algorithm by itself.
	ErrVerifyMismatch = errors.New("verification mismatch")

	// ErrPlatformFatal covers CSPRNG refusal. Fatal to the wipe engine
	// (a pass cannot be formed without random bytes).
	ErrPlatformFatal = errors.New("platform fatal error")
)

// Stage names used in Diagnostic records, kept as typed constants rather
// than bare strings so a typo in a stage name fails at compile time.
type Stage string

const (
	StageLockdown   Stage = "lockdown"
	StageCountdown  Stage = "countdown"
	StageCleanup    Stage = "cleanup"
	StageScramble   Stage = "scramble"
	StageOverwrite  Stage = "overwrite"
	StageSync       Stage = "sync"
	StagePowerOff   Stage = "poweroff"
	StageWipePass   Stage = "wipe-pass"
	StageWipeVerify Stage = "wipe-verify"
)
