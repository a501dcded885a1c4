//go:build windows

package mtcore

import (
	"errors"
	"syscall"
)

// newCloexecPipe uses syscall.Pipe; Windows has no fork+exec fd-inheritance
// race to guard against (os/exec explicitly marks handles inheritable only
// when assigned to a Cmd's Stdin/Stdout/Stderr/ExtraFiles), so there is no
// CloexecGate equivalent needed here - mirroring the teacher's
// fd_windows.go treatment of platform primitives that simply don't apply.
func newCloexecPipe() (r, w int, err error) {
	var fds [2]syscall.Handle
	if err := syscall.Pipe(fds[:]); err != nil {
		return -1, -1, err
	}
	return int(fds[0]), int(fds[1]), nil
}

func newCloexecSocket(domain, typ, protocol int) (int, error) {
	return -1, errors.New("mtcore: Socket is not supported on windows")
}
