// Package gate implements C2, the bounded-attempt authentication state
// machine: method-selection policy, counter semantics, cancellation and
// the hand-off to the dead-man's sequencer on exhaustion.
package gate

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vaultgate/gate/internal/authcred"
	"github.com/vaultgate/gate/internal/config"
	"github.com/vaultgate/gate/internal/ui"
)

// State names the gate's current position in the §4.2 state machine.
type State int

const (
	Ready State = iota
	Prompting
	Verifying
	AttemptFailed
	Granted
	Exhausted
)

func (s State) String() string {
	switch s {
	case Ready:
		return "Ready"
	case Prompting:
		return "Prompting"
	case Verifying:
		return "Verifying"
	case AttemptFailed:
		return "AttemptFailed"
	case Granted:
		return "Granted"
	case Exhausted:
		return "Exhausted"
	default:
		return "Unknown"
	}
}

// Gate drives the state machine over a fixed, priority-ordered set of
// methods (§4.2.1: PASSWORD, then FINGERPRINT, then VOICE).
type Gate struct {
	Config  *config.Config
	Methods []authcred.Method
	Screen  ui.Screen

	session *logrus.Entry
	state   State
	current int
}

// New builds a Gate. methods should be supplied in the fixed priority
// order PASSWORD, FINGERPRINT, VOICE; a method whose corresponding
// config.AuthMethod isn't in cfg.AuthMethods is simply never selected
// (HasMethod gates selection, not construction).
func New(cfg *config.Config, methods []authcred.Method, screen ui.Screen) *Gate {
	sessionID := uuid.New().String()
	return &Gate{
		Config:  cfg,
		Methods: methods,
		Screen:  screen,
		session: logrus.WithField("session_id", sessionID),
		state:   Ready,
	}
}

// CurrentAttempts returns the in-memory attempt counter (I1, never
// persisted — §4.2's counter semantics).
func (g *Gate) CurrentAttempts() int {
	return g.current
}

// Run drives the state machine to a terminal state: Granted or
// Exhausted. It never calls C3 itself — the caller inspects the
// returned state and invokes the dead-man's sequencer on Exhausted,
// keeping C2 and C3 decoupled per §2.
func (g *Gate) Run(ctx context.Context) State {
	g.state = Ready
	g.current = 0

	for {
		switch g.state {
		case Ready:
			g.session.Debug("gate: Ready")
			method := g.selectMethod(ctx)
			if method == nil {
				// No enabled method is currently available. This isn't a
				// completed attempt (§4.2.1: "skipped without consuming an
				// attempt"), so the gate would spin forever; treat it as a
				// backend error attempt instead of looping.
				g.session.Error("gate: no enabled method is currently available")
				g.recordAttempt()
				g.state = AttemptFailed
				continue
			}
			g.state = Prompting
			g.promptAndVerify(ctx, method)

		case AttemptFailed:
			if g.current >= g.Config.MaxAttempts {
				g.session.WithField("attempts", g.current).Warn("gate: attempts exhausted")
				g.state = Exhausted
				return Exhausted
			}
			g.Screen.ShowRemainingAttempts(g.Config.MaxAttempts - g.current)
			g.state = Ready

		case Granted:
			g.session.Debug("gate: Granted")
			g.Screen.ShowGranted()
			return Granted

		case Exhausted:
			return Exhausted

		default:
			// Prompting/Verifying are handled synchronously inside
			// promptAndVerify and never observed here.
			g.session.Errorf("gate: unexpected state %s", g.state)
			return Exhausted
		}
	}
}

// selectMethod returns the first enabled method whose availability
// probe succeeds, in fixed priority order, or nil if none are
// available right now.
func (g *Gate) selectMethod(ctx context.Context) authcred.Method {
	for _, m := range g.Methods {
		if !g.Config.HasMethod(m.Name()) {
			continue
		}
		if m.Available(ctx) {
			return m
		}
		g.session.WithField("method", m.Name()).Debug("gate: method unavailable, skipping")
	}
	return nil
}

// promptAndVerify runs one full Prompting->Verifying->{Granted,AttemptFailed}
// cycle for method, then sets g.state and records the attempt. Only a
// completed verification increments the counter (§4.2.1) — this
// function is only reached once selectMethod has already confirmed
// availability, so every call here is a completed attempt.
func (g *Gate) promptAndVerify(ctx context.Context, method authcred.Method) {
	g.state = Verifying
	g.session.WithField("method", method.Name()).Debug("gate: Verifying")

	outcome, err := method.PromptAndVerify(ctx, g.Config)
	if err != nil {
		g.session.WithError(err).WithField("method", method.Name()).Debug("gate: attempt error")
	}

	g.recordAttempt()

	if outcome == authcred.Success {
		g.state = Granted
		return
	}
	g.state = AttemptFailed
}

func (g *Gate) recordAttempt() {
	g.current++
	if g.current > g.Config.MaxAttempts {
		// Never exceed max_attempts (I1); a caller bug that invokes
		// promptAndVerify again after exhaustion must not corrupt the
		// invariant the sequencer relies on.
		g.current = g.Config.MaxAttempts
	}
}

// ErrNoMethodsEnabled names the condition of a Gate with zero usable
// methods. Nothing in this package returns it: Run counts a Ready state
// with no available method as a failed attempt, so it reaches Exhausted
// rather than looping in Ready.
var ErrNoMethodsEnabled = fmt.Errorf("gate: no methods enabled")
