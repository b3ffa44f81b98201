package authcred

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/sirupsen/logrus"

	"github.com/vaultgate/gate/internal/config"
	"github.com/vaultgate/gate/internal/platform"
	"github.com/vaultgate/gate/internal/ui"
)

// voiceSimilarityThreshold is the acceptance bound from §4.1: a spoken
// utterance is accepted iff its case-folded similarity to the enrolled
// passphrase is at least this fraction.
const voiceSimilarityThreshold = 0.60

// voiceBackendTimeout bounds how long the external speech-to-text
// process is allowed to run before it's killed and the attempt fails.
const voiceBackendTimeout = 15 * time.Second

// SpeechToText is the external transcription backend's contract: given
// an audio capture command, it returns recognized text. VaultGate ships
// ExecSpeechToText, which shells out to an external STT binary; tests
// substitute a stub.
type SpeechToText interface {
	Transcribe(ctx context.Context) (string, error)
}

// ExecSpeechToText spawns an external command per attempt and reads its
// stdout as the transcription. The command runs under
// exec.CommandContext, so when voiceBackendTimeout expires the os/exec
// package kills it with os.Process.Kill; Transcribe also signals it
// through the adapted pidfd helper (SIGTERM, or SIGKILL if that fails)
// and then waits for it to exit.
type ExecSpeechToText struct {
	// Command is the STT binary and arguments, e.g. []string{"vaultgate-stt"}.
	Command []string
}

func (s ExecSpeechToText) Transcribe(ctx context.Context) (string, error) {
	if len(s.Command) == 0 {
		return "", fmt.Errorf("voice: no speech-to-text command configured")
	}

	runCtx, cancel := context.WithTimeout(ctx, voiceBackendTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, s.Command[0], s.Command[1:]...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("voice: starting speech-to-text backend: %w", err)
	}

	pid := cmd.Process.Pid
	mon := platform.NewPidMonitor(runCtx, pid)
	defer mon.Stop()

	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	select {
	case err := <-waitErr:
		if err != nil {
			return "", fmt.Errorf("voice: speech-to-text backend exited with error: %w", err)
		}
		return strings.TrimSpace(stdout.String()), nil
	case <-runCtx.Done():
		if err := platform.KillBackend(pid); err != nil {
			_ = platform.ForceKillBackend(pid)
		}
		<-waitErr
		return "", fmt.Errorf("voice: speech-to-text backend timed out after %s", voiceBackendTimeout)
	}
}

// VoiceMethod scores a transcribed utterance against the configured
// passphrase.
type VoiceMethod struct {
	Backend SpeechToText
	Screen  ui.Screen
}

func NewVoiceMethod(backend SpeechToText, screen ui.Screen) *VoiceMethod {
	return &VoiceMethod{Backend: backend, Screen: screen}
}

func (m *VoiceMethod) Name() config.AuthMethod { return config.MethodVoice }

// Available reports the voice method as present whenever it's
// configured with a non-nil backend; unlike fingerprint, VaultGate has
// no sensor-presence probe for voice hardware, so availability tracks
// configuration rather than a hardware check.
func (m *VoiceMethod) Available(ctx context.Context) bool {
	return m.Backend != nil
}

func (m *VoiceMethod) PromptAndVerify(ctx context.Context, cfg *config.Config) (Outcome, error) {
	if cfg.VoicePassphrase == "" {
		return Error, fmt.Errorf("voice: no passphrase configured")
	}

	m.Screen.ShowStatus("speak your passphrase")

	heard, err := m.Backend.Transcribe(ctx)
	if err != nil {
		logrus.WithError(err).Debug("voice: transcription failed")
		return Error, err
	}

	score := similarity(heard, cfg.VoicePassphrase)
	logrus.WithField("similarity", score).Debug("voice: scored utterance")

	if score >= voiceSimilarityThreshold {
		return Success, nil
	}
	return Failure, nil
}

// similarity returns a 0..1 score for how close got is to want, derived
// from Levenshtein edit distance normalized by the longer string's
// length, case-folded per §4.1.
func similarity(got, want string) float64 {
	got = strings.ToLower(strings.TrimSpace(got))
	want = strings.ToLower(strings.TrimSpace(want))

	if got == "" && want == "" {
		return 1
	}

	dist := levenshtein.ComputeDistance(got, want)
	maxLen := len(got)
	if len(want) > maxLen {
		maxLen = len(want)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(dist)/float64(maxLen)
}
