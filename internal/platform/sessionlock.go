package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// AcquireSessionLock writes the running process's pid to lockFile,
// refusing if another vaultgate process already holds it. §4.1 requires
// only one gate session run at a time (a second instance racing the
// first's attempt counter would corrupt the bounded-retry guarantee).
// If the file exists but names a pid that isn't actually running a
// vaultgate binary anymore (a stale lock left by a crash or a hard
// power cycle), it's reclaimed.
func AcquireSessionLock(lockFile string) error {
	pid, err := readPidFile(lockFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading session lock: %w", err)
	}

	if err == nil && isVaultgateRunning(pid) {
		return fmt.Errorf("another vaultgate session is already running as pid %d", pid)
	}
	if err == nil {
		// The stale file is read-only (0o400); remove it before rewriting.
		if err := os.Remove(lockFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing stale session lock %s: %w", lockFile, err)
		}
	}

	pidStr := fmt.Sprintf("%d\n", os.Getpid())
	if err := os.WriteFile(lockFile, []byte(pidStr), 0o400); err != nil {
		return fmt.Errorf("writing session lock %s: %w", lockFile, err)
	}
	return nil
}

// ReleaseSessionLock removes the lock file. Called on clean exit from
// C2; C3's destruction sequencer never reaches it, which is fine since
// nothing reads it after the device is destroyed.
func ReleaseSessionLock(lockFile string) error {
	return os.RemoveAll(lockFile)
}

func readPidFile(path string) (int, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(bs)))
}

func isVaultgateRunning(pid int) bool {
	target, err := os.Readlink(fmt.Sprintf("/proc/%d/exe", pid))
	if err != nil {
		return false
	}

	base := filepath.Base(target)
	if base != "vaultgate" {
		logrus.Infof("platform: pid %d is not a vaultgate process", pid)
		return false
	}
	return true
}
