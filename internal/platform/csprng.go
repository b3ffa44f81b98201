package platform

import (
	"crypto/rand"
	"fmt"

	"github.com/vaultgate/gate/internal/diag"
)

// Random fills buf with len(buf) bytes from a cryptographically secure
// source. crypto/rand is used directly — it is itself the canonical Go
// CSPRNG primitive, not a gap to be filled by a third-party library (see
// DESIGN.md's standard-library justification). It fails only on
// catastrophic OS refusal, which is PlatformFatal: the wipe engine
// cannot form a Random pass without it.
func Random(buf []byte) error {
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("csprng refused: %v: %w", err, diag.ErrPlatformFatal)
	}
	return nil
}

// RandomBytes is a convenience wrapper returning a freshly allocated
// buffer, used for one-shot needs like a scramble-step volume key.
func RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := Random(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
