//go:build unix

package launch

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// signalName returns the conventional name of sig, such as "SIGTERM".
func signalName(sig syscall.Signal) string {
	if name := unix.SignalName(sig); name != "" {
		return name
	}

	return sig.String()
}
