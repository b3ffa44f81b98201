//go:build !linux

package platform

import "github.com/sirupsen/logrus"

// Shutdown has no power-off primitive outside Linux in this repo. It
// still must never return control to the caller (§4.3 stage 7: "the
// sequencer must never return control to C2 or to main"), so it blocks
// forever after logging.
func Shutdown() {
	logrus.Warn("platform: power-off is not implemented on this platform; halting")
	blockForever()
}
