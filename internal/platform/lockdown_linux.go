package platform

import (
	"os"
	"os/signal"
	"syscall"
)

// terminationSignals are every asynchronous interrupt/stop/hangup
// signal §4.3 stage 1 requires masked before the sequencer proceeds.
var terminationSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	syscall.SIGHUP,
	syscall.SIGTSTP,
}

// Lockdown masks every asynchronous termination/stop signal the host
// exposes. From this point the only exits are power loss and the
// sequencer's own shutdown call; signal.Ignore drops these signals
// entirely rather than queuing them for later delivery.
func Lockdown() error {
	signal.Ignore(terminationSignals...)
	return nil
}
