package authcred

import (
	"context"

	"github.com/vaultgate/gate/internal/config"
)

// Method is the capability every auth backend implements, realizing §9's
// "compile-time method selection becomes runtime polymorphism" design
// note: the compile-time absence of a fingerprint or voice backend in
// the source becomes the construction-time absence of a Method variant
// here, rather than a build tag branching inside the gate.
type Method interface {
	// Name identifies the method for logging and the method-selection
	// policy (§4.2.1's fixed PASSWORD, FINGERPRINT, VOICE priority order).
	Name() config.AuthMethod

	// Available performs the runtime-availability probe. A method whose
	// hardware is missing is skipped without consuming an attempt.
	Available(ctx context.Context) bool

	// PromptAndVerify requests and checks one credential. The returned
	// Outcome drives the C2 transition (Success/Failure/Error are all
	// terminal for this attempt — only Success avoids AttemptFailed).
	PromptAndVerify(ctx context.Context, cfg *config.Config) (Outcome, error)
}
