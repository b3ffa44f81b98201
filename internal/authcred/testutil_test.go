package authcred

import (
	"context"

	"github.com/vaultgate/gate/internal/ui"
)

// nullTestScreen is a no-op ui.Screen stand-in for tests that exercise
// a Method's PromptAndVerify without caring what gets displayed.
type nullTestScreen struct{}

func (nullTestScreen) ReadPassword(context.Context) ([]byte, bool, error) { return nil, false, nil }
func (nullTestScreen) ShowRemainingAttempts(int)                          {}
func (nullTestScreen) ShowGranted()                                       {}
func (nullTestScreen) ShowCountdown(int)                                 {}
func (nullTestScreen) ShowProgress(ui.Progress)                          {}
func (nullTestScreen) ShowWarning(string)                                {}
func (nullTestScreen) ShowStatus(string)                                 {}
