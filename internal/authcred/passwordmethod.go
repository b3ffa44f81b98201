package authcred

import (
	"context"
	"fmt"

	"github.com/vaultgate/gate/internal/config"
	"github.com/vaultgate/gate/internal/platform"
	"github.com/vaultgate/gate/internal/ui"
)

// PasswordMethod adapts VerifyPassword to the Method capability. Unlike
// fingerprint and voice it has no hardware dependency, so Available
// always reports true when a password reference is configured.
type PasswordMethod struct {
	Screen ui.Screen
}

func NewPasswordMethod(screen ui.Screen) *PasswordMethod {
	return &PasswordMethod{Screen: screen}
}

func (m *PasswordMethod) Name() config.AuthMethod { return config.MethodPassword }

func (m *PasswordMethod) Available(ctx context.Context) bool {
	return true
}

func (m *PasswordMethod) PromptAndVerify(ctx context.Context, cfg *config.Config) (Outcome, error) {
	credential, ok, err := m.Screen.ReadPassword(ctx)
	if err != nil {
		return Error, err
	}
	if !ok {
		return Error, fmt.Errorf("password: prompt cancelled")
	}
	defer platform.SecureZero(credential)

	return VerifyPassword(credential, cfg.PasswordReference)
}
