//go:build !linux

package platform

import "github.com/sirupsen/logrus"

// LockMemory has no implementation outside Linux in this repo; it logs
// once and otherwise behaves as the best-effort no-op §4.5 allows.
func LockMemory() {
	logrus.Debug("platform: memory pinning not implemented on this platform")
}
