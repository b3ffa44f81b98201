package authcred

import (
	"context"
	"testing"

	"github.com/vaultgate/gate/internal/config"
	"github.com/vaultgate/gate/internal/ui"
)

// scriptedPasswordScreen returns a fixed credential/ok/err triple from
// ReadPassword, for scripting PasswordMethod's cancellation path.
type scriptedPasswordScreen struct {
	nullTestScreen
	credential []byte
	ok         bool
	err        error
}

func (s scriptedPasswordScreen) ReadPassword(context.Context) ([]byte, bool, error) {
	return s.credential, s.ok, s.err
}

func passwordConfig(reference string) *config.Config {
	return &config.Config{
		AuthMethods:       []config.AuthMethod{config.MethodPassword},
		PasswordReference: reference,
	}
}

// TestPasswordMethodAvailableAlways covers §4.1's "no hardware
// dependency" contract: PASSWORD is always available once configured.
func TestPasswordMethodAvailableAlways(t *testing.T) {
	m := NewPasswordMethod(nullTestScreen{})
	if !m.Available(context.Background()) {
		t.Error("PasswordMethod reported unavailable")
	}
}

// TestPasswordMethodCancelIsError covers §4.2's cancellation path:
// cancelling the prompt must not be indistinguishable from Success and
// must still resolve to a completed (non-Success) outcome that consumes
// an attempt.
func TestPasswordMethodCancelIsError(t *testing.T) {
	screen := scriptedPasswordScreen{ok: false}
	m := NewPasswordMethod(screen)

	outcome, err := m.PromptAndVerify(context.Background(), passwordConfig("$6$salt$hash$"))
	if outcome == Success {
		t.Fatal("cancelled prompt must not report Success")
	}
	if err == nil {
		t.Error("cancelled prompt should report a non-nil error")
	}
}

// TestPasswordMethodVerifiesCredential covers the common path: a
// correctly entered credential is checked against cfg.PasswordReference.
func TestPasswordMethodVerifiesCredential(t *testing.T) {
	credential := []byte("hunter2")
	hash := sha512Crypt(credential, "saltsalt", sha512CryptRoundsDefault)
	reference := "$6$saltsalt$" + hash + "$"

	screen := scriptedPasswordScreen{credential: append([]byte(nil), credential...), ok: true}
	m := NewPasswordMethod(screen)

	outcome, err := m.PromptAndVerify(context.Background(), passwordConfig(reference))
	if err != nil {
		t.Fatalf("PromptAndVerify: unexpected error %v", err)
	}
	if outcome != Success {
		t.Errorf("PromptAndVerify with correct credential = %v, want Success", outcome)
	}
}

var _ ui.Screen = scriptedPasswordScreen{}
