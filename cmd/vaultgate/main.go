// Command vaultgate is the pre-boot authentication gate with a
// dead-man's switch: it prompts for a configured credential within a
// bounded number of attempts and, on exhaustion, irrecoverably destroys
// the target device.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/vaultgate/gate/internal/authcred"
	"github.com/vaultgate/gate/internal/config"
	"github.com/vaultgate/gate/internal/deadman"
	"github.com/vaultgate/gate/internal/diag"
	"github.com/vaultgate/gate/internal/gate"
	"github.com/vaultgate/gate/internal/platform"
	"github.com/vaultgate/gate/internal/ui"
)

const defaultConfigPath = "/etc/vaultgate/config.yaml"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		setup      bool
		configPath string
		initramfs  bool
		help       bool
	)

	flag.BoolVar(&setup, "setup", false, "run first-run setup instead of the gate")
	flag.StringVar(&configPath, "config", defaultConfigPath, "path to the configuration file")
	flag.BoolVar(&initramfs, "initramfs", false, "pre-boot gate mode: exit 0 on success instead of continuing")
	flag.BoolVar(&help, "help", false, "print usage and exit")
	flag.Parse()

	if help {
		flag.Usage()
		return 0
	}

	logrus.SetFormatter(&platform.RedactingFormatter{Inner: &logrus.TextFormatter{}})

	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.WithError(err).Error("vaultgate: failed to load configuration")
		return 1
	}

	sess := &config.Session{InitramfsMode: initramfs}
	if err := config.ApplyKernelCmdline(cfg, sess); err != nil {
		logrus.WithError(err).Warn("vaultgate: failed to apply kernel command-line overrides")
	}
	if sess.SetupMode {
		setup = true
	}

	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Error("vaultgate: configuration invalid after overrides")
		return 1
	}

	if setup {
		return runSetup(cfg, configPath)
	}

	return runGate(cfg, sess)
}

// runSetup is a thin placeholder for the external setup wizard (out of
// scope per §1): it only re-persists the loaded configuration and
// reports success, standing in for the UI-driven wizard a real
// deployment wires in here.
func runSetup(cfg *config.Config, configPath string) int {
	if err := config.Save(cfg, configPath); err != nil {
		logrus.WithError(err).Error("vaultgate: setup failed to save configuration")
		return 1
	}
	fmt.Println("vaultgate: configuration saved")
	return 0
}

func runGate(cfg *config.Config, sess *config.Session) int {
	const lockFile = "/run/vaultgate.lock"
	if err := platform.AcquireSessionLock(lockFile); err != nil {
		logrus.WithError(err).Error("vaultgate: failed to acquire session lock")
		return 1
	}
	defer platform.ReleaseSessionLock(lockFile)

	platform.LockMemory()

	screen := ui.NewStdioTextScreen()
	methods := buildMethods(screen)

	g := gate.New(cfg, methods, screen)

	ctx := context.Background()
	logrus.WithField("initramfs", sess.InitramfsMode).Debug("vaultgate: starting gate")
	state := g.Run(ctx)

	switch state {
	case gate.Granted:
		// §6: Granted exits 0 whether or not --initramfs was given; the
		// distinction only matters to the external launcher deciding
		// whether to continue boot or proceed to whatever comes next.
		return 0

	case gate.Exhausted:
		if ok, err := platform.HasSysRawio(); err == nil && !ok {
			logrus.Warn("vaultgate: process lacks CAP_SYS_RAWIO; destructive overwrite may fail")
		}
		if rotational, err := platform.IsRotational(cfg.TargetDevice); err == nil && !rotational {
			screen.ShowWarning("target device appears to be solid-state; wear-leveling may leave residual data despite this wipe")
		}

		sink := diag.NewMemorySink()
		seq := deadman.New(cfg, screen, sink, nil)
		seq.Run()
		// deadman.Run never returns on a real platform (stage 7 blocks
		// forever after invoking shutdown); this line only executes if a
		// test substituted Shutdown.
		return 1

	default:
		logrus.Errorf("vaultgate: gate returned unexpected state %v", state)
		return 1
	}
}

// buildMethods constructs the fixed PASSWORD, FINGERPRINT, VOICE
// priority order (§4.2.1). VaultGate ships no real fingerprint sensor
// or voice backend, so those variants are always-unavailable stand-ins
// (§9: compile-time absence becomes construction-time absence).
func buildMethods(screen ui.Screen) []authcred.Method {
	return []authcred.Method{
		authcred.NewPasswordMethod(screen),
		authcred.NewFingerprintMethod(authcred.NullFingerprintBackend{}, screen),
		authcred.NewVoiceMethod(nil, screen),
	}
}
