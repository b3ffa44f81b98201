package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// CmdlinePath is the default source of kernel boot arguments, overridable
// in tests the same way the teacher's utils.GetEnvVarInfo callers swap
// out the process environment.
var CmdlinePath = "/proc/cmdline"

// ApplyKernelCmdline parses the host kernel's boot arguments (when the
// file is present — e.g. absent entirely on non-Linux dev builds, which
// is not an error) and layers vault_* overrides onto c, applied after
// file load and before validation per §6.
func ApplyKernelCmdline(c *Config, sess *Session) error {
	raw, err := os.ReadFile(CmdlinePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", CmdlinePath, err)
	}
	return applyCmdline(string(raw), c, sess)
}

// applyCmdline is the pure parsing core, split out so tests don't need a
// real /proc/cmdline. Tokens are whitespace-separated, same as the
// kernel's own argv_split. A token that isn't one of the vault_* names is
// skipped silently; a vault_* token with a malformed or out-of-range value
// is skipped with a warning rather than aborting the whole boot.
func applyCmdline(raw string, c *Config, sess *Session) error {
	for _, tok := range strings.Fields(raw) {
		name, value, _ := splitToken(tok)
		switch name {
		case "vault_setup":
			sess.SetupMode = true
		case "vault_device":
			if value == "" {
				logrus.Warnf("kernel cmdline: vault_device given with no path, ignoring")
				continue
			}
			c.TargetDevice = value
		case "vault_threshold":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 || n > 99 {
				logrus.Warnf("kernel cmdline: vault_threshold=%q out of range [1,99], ignoring", value)
				continue
			}
			c.MaxAttempts = n
		case "vault_wipe":
			alg, ok := ParseAlgorithm(value)
			if !ok {
				logrus.Warnf("kernel cmdline: vault_wipe=%q unrecognized, ignoring", value)
				continue
			}
			c.WipeAlgorithm = alg
		}
	}
	return nil
}

// splitToken splits a "name=value" kernel cmdline token. Bare tokens
// (no '=') return an empty value, matching vault_setup's boolean-flag
// usage (§6: "vault_setup, vault_device=PATH, ...").
func splitToken(tok string) (name, value string, hasValue bool) {
	if i := strings.IndexByte(tok, '='); i >= 0 {
		return tok[:i], tok[i+1:], true
	}
	return tok, "", false
}
