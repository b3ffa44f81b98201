package authcred

import (
	"context"

	"github.com/vaultgate/gate/internal/config"
	"github.com/vaultgate/gate/internal/ui"
)

// FingerprintBackend is the opaque match API a real sensor driver
// supplies (out of scope for this core — §2 lists the sensor itself as
// an external collaborator). It mirrors the "freshly-acquired template
// against an enrolled template" contract from §4.1.
type FingerprintBackend interface {
	// Available reports whether a sensor is physically present and
	// responsive right now — the runtime-availability probe of §4.2.1.
	Available(ctx context.Context) bool

	// Acquire captures a fresh template and compares it against the
	// enrolled one, returning Success/Failure/Error.
	Acquire(ctx context.Context) (Outcome, error)
}

// NullFingerprintBackend always reports unavailable. It stands in for
// the real sensor driver so VaultGate builds and runs without one; the
// gate's method-selection policy (§4.2.1) then simply skips FINGERPRINT
// without consuming an attempt, exactly as it would on hardware lacking
// a sensor.
type NullFingerprintBackend struct{}

func (NullFingerprintBackend) Available(context.Context) bool            { return false }
func (NullFingerprintBackend) Acquire(context.Context) (Outcome, error) { return Error, nil }

// FingerprintMethod adapts a FingerprintBackend to the Method capability.
type FingerprintMethod struct {
	Backend FingerprintBackend
	Screen  ui.Screen
}

func NewFingerprintMethod(backend FingerprintBackend, screen ui.Screen) *FingerprintMethod {
	return &FingerprintMethod{Backend: backend, Screen: screen}
}

func (m *FingerprintMethod) Name() config.AuthMethod { return config.MethodFingerprint }

func (m *FingerprintMethod) Available(ctx context.Context) bool {
	return m.Backend.Available(ctx)
}

func (m *FingerprintMethod) PromptAndVerify(ctx context.Context, _ *config.Config) (Outcome, error) {
	m.Screen.ShowStatus("place finger on sensor")
	return m.Backend.Acquire(ctx)
}
