package platform

import "time"

// blockForever is the defensive infinite sleep of §9's design note:
// "the shutdown call uses the platform's does-not-return type where
// available, with a defensive infinite sleep after it." Go has no
// does-not-return type, so this is the whole of that guarantee.
func blockForever() {
	for {
		time.Sleep(time.Hour)
	}
}
