package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"

	"github.com/vaultgate/gate/internal/diag"
)

// AuthMethods, MaxAttempts, PasswordReference etc. in config.go expose the
// wire names expected by §6 via yaml struct tags.

// FS is the filesystem seam the store reads/writes through. Tests swap
// in an afero.MemMapFs; production uses afero.NewOsFs().
var FS afero.Fs = afero.NewOsFs()

// Load reads and parses the configuration record at path. A missing or
// unreadable file is reported as ErrConfigMissing; a file that exists but
// fails to parse is ErrConfigInvalid. Load does not validate the record.
func Load(path string) (*Config, error) {
	data, err := afero.ReadFile(FS, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file %s not found: %w", path, diag.ErrConfigMissing)
		}
		return nil, fmt.Errorf("reading config %s: %w", path, diag.ErrConfigMissing)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %v: %w", path, err, diag.ErrConfigInvalid)
	}

	// Field-level Validate() is deliberately NOT called here: §6 says
	// kernel-cmdline overrides "apply after file load, before validation",
	// which means a file missing e.g. target_device (to be supplied only
	// by vault_device=) must still load successfully. The caller applies
	// ApplyKernelCmdline and validates exactly once afterward.
	logrus.WithField("path", path).Debug("config: loaded")
	return &c, nil
}

// Save serializes c as YAML and writes it to path atomically — a crash
// mid-write (e.g. during --setup) leaves either the old file or the new
// one, never a half-written one, via write-temp-then-rename. When FS is
// not the OS filesystem (tests), the file is written through FS directly.
func Save(c *Config, path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %v: %w", err, diag.ErrConfigInvalid)
	}

	if _, onDisk := FS.(*afero.OsFs); onDisk {
		if err := atomic.WriteFile(path, bytes.NewReader(out)); err != nil {
			return fmt.Errorf("writing config %s: %w", path, err)
		}
	} else if err := afero.WriteFile(FS, path, out, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}

	logrus.WithField("path", path).Debug("config: saved")
	return nil
}
