//go:build !linux && !windows

package mtcore

import "golang.org/x/sys/unix"

// newCloexecPipe creates a plain pipe and sets close-on-exec on both ends
// under the process-wide CloexecGate, matching cloexec_pipe's non-Linux
// branch: the window between pipe() returning and fcntl(F_SETFD) landing is
// exactly what the gate serializes against a concurrent Spawn.
func newCloexecPipe() (r, w int, err error) {
	var fds [2]int
	err = WithCloexecGateHeld(func() error {
		if e := unix.Pipe(fds[:]); e != nil {
			return e
		}
		if e := unix.SetNonblock(fds[0], false); e != nil {
			unix.Close(fds[0])
			unix.Close(fds[1])
			return e
		}
		if e := setCloexec(fds[0]); e != nil {
			unix.Close(fds[0])
			unix.Close(fds[1])
			return e
		}
		if e := setCloexec(fds[1]); e != nil {
			unix.Close(fds[0])
			unix.Close(fds[1])
			return e
		}
		return nil
	})
	if err != nil {
		return -1, -1, err
	}
	return fds[0], fds[1], nil
}

// newCloexecSocket creates a socket then sets close-on-exec under the gate,
// matching cloexec_socket's non-Linux branch.
func newCloexecSocket(domain, typ, protocol int) (int, error) {
	var fd int
	err := WithCloexecGateHeld(func() error {
		var e error
		fd, e = unix.Socket(domain, typ, protocol)
		if e != nil {
			return e
		}
		if e := setCloexec(fd); e != nil {
			unix.Close(fd)
			return e
		}
		return nil
	})
	if err != nil {
		return -1, err
	}
	return fd, nil
}

func setCloexec(fd int) error {
	_, err := unix.FcntlInt(uintptr(fd), unix.F_SETFD, unix.FD_CLOEXEC)
	return err
}
