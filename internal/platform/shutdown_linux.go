package platform

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Shutdown initiates power-off and does not return on success (§4.5).
// Per §9's design note, the defensive infinite sleep after the syscall
// covers the case where unix.Reboot itself returns instead of the
// kernel actually powering the machine off.
func Shutdown() {
	logrus.Warn("platform: powering off")
	unix.Sync()
	err := unix.Reboot(unix.LINUX_REBOOT_CMD_POWER_OFF)
	logrus.Errorf("platform: power-off syscall returned unexpectedly: %v", err)
	blockForever()
}
