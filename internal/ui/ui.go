// Package ui defines the single narrow capability the core gate drives
// instead of porting any of the three concrete TUI backends (§9: "Three
// UI backends → one interface. Treat the UI as a trait/capability with
// named screens and status/error sinks; the core takes one
// implementation by reference.").
package ui

import "context"

// Screen is the capability the authentication gate and dead-man's
// sequencer drive. Every method here corresponds to one of the "named
// screens" (login, progress, warning) plus the status/error sink from
// §2's external collaborators table.
type Screen interface {
	// ReadPassword prompts for and returns a plaintext credential. ok is
	// false if the user cancelled the prompt (§4.2's Prompting→AttemptFailed
	// cancellation path); the returned buffer is owned by the caller, who
	// must zero it once done (I3).
	ReadPassword(ctx context.Context) (credential []byte, ok bool, err error)

	// ShowRemainingAttempts reports only the count, never raw diagnostics
	// (§7's propagation policy: "the UI sees summary text, never raw
	// diagnostics").
	ShowRemainingAttempts(remaining int)

	// ShowGranted renders the success screen.
	ShowGranted()

	// ShowCountdown renders the fixed, non-cancellable dead-man's warning
	// for the given duration (§4.3 stage 2).
	ShowCountdown(seconds int)

	// ShowProgress renders one wipe progress record (§3, §4.4.5).
	ShowProgress(p Progress)

	// ShowWarning renders an advisory (e.g. the §4.4.6 SSD warning).
	ShowWarning(message string)

	// ShowStatus is the general status/error sink named in §2.
	ShowStatus(message string)
}

// Progress mirrors §3's progress record. It is a pure data carrier: the
// wipe engine fills it in and hands it to its ProgressFunc callback.
type Progress struct {
	CurrentPass  int
	TotalPasses  int
	BytesDone    uint64
	BytesTotal   uint64
	ElapsedSecs  float64
	ETASecs      float64
	ThroughputBs float64
	Phase        string // "Write" or "Verify"
	Description  string
}
