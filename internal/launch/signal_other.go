//go:build !unix

package launch

import "syscall"

func signalName(sig syscall.Signal) string {
	return sig.String()
}
