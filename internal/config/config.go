// Package config holds the persisted configuration record VaultGate is
// launched with, its validation rules and the transient per-session
// state layered on top of it at runtime.
package config

import (
	"fmt"

	"github.com/vaultgate/gate/internal/diag"
)

// AuthMethod names one of the three supported credential checks.
type AuthMethod string

const (
	MethodPassword    AuthMethod = "PASSWORD"
	MethodFingerprint AuthMethod = "FINGERPRINT"
	MethodVoice       AuthMethod = "VOICE"
)

// Config is the immutable-across-a-session configuration record (§3).
// Load fills it, ApplyKernelCmdline may then override fields, and every
// field is read-only after that; the only mutable session state is
// carried separately in Session.
type Config struct {
	AuthMethods       []AuthMethod `yaml:"auth_methods"`
	MaxAttempts       int          `yaml:"max_attempts"`
	PasswordReference string       `yaml:"password_hash"`
	VoicePassphrase   string       `yaml:"voice_passphrase"`
	TargetDevice      string       `yaml:"target_device"`
	MountPoint        string       `yaml:"mount_point"`
	WipeAlgorithm     Algorithm    `yaml:"wipe_algorithm"`
	EncryptBeforeWipe bool         `yaml:"encrypt_before_wipe"`
	VerifyPasses      bool         `yaml:"verify_passes"`
}

// Session is the transient, never-persisted state layered on top of a
// loaded Config for the duration of one gate run.
type Session struct {
	CurrentAttempts int
	SetupMode       bool
	InitramfsMode   bool
}

// HasMethod reports whether m is among the configured auth methods.
func (c *Config) HasMethod(m AuthMethod) bool {
	for _, am := range c.AuthMethods {
		if am == m {
			return true
		}
	}
	return false
}

// Validate enforces the §3 constraints. It never mutates c.
func (c *Config) Validate() error {
	if len(c.AuthMethods) == 0 {
		return fmt.Errorf("no auth methods configured: %w", diag.ErrConfigInvalid)
	}
	for _, m := range c.AuthMethods {
		switch m {
		case MethodPassword, MethodFingerprint, MethodVoice:
		default:
			return fmt.Errorf("unknown auth method %q: %w", m, diag.ErrConfigInvalid)
		}
	}
	if c.MaxAttempts < 1 || c.MaxAttempts > 99 {
		return fmt.Errorf("max_attempts %d out of range [1,99]: %w", c.MaxAttempts, diag.ErrConfigInvalid)
	}
	if c.HasMethod(MethodPassword) && c.PasswordReference == "" {
		return fmt.Errorf("password method enabled with empty reference: %w", diag.ErrConfigInvalid)
	}
	if !c.HasMethod(MethodPassword) && c.PasswordReference != "" {
		return fmt.Errorf("password reference set without password method: %w", diag.ErrConfigInvalid)
	}
	if c.HasMethod(MethodVoice) && c.VoicePassphrase == "" {
		return fmt.Errorf("voice method enabled with empty passphrase: %w", diag.ErrConfigInvalid)
	}
	if !c.HasMethod(MethodVoice) && c.VoicePassphrase != "" {
		return fmt.Errorf("voice passphrase set without voice method: %w", diag.ErrConfigInvalid)
	}
	if c.TargetDevice == "" {
		return fmt.Errorf("target_device is empty: %w", diag.ErrConfigInvalid)
	}
	if !c.WipeAlgorithm.valid() {
		return fmt.Errorf("unknown wipe_algorithm %q: %w", c.WipeAlgorithm, diag.ErrConfigInvalid)
	}
	return nil
}
