//go:build linux

package mtcore

import "golang.org/x/sys/unix"

// newCloexecPipe uses pipe2(O_CLOEXEC), atomic on Linux - no CloexecGate
// needed, mirroring cloexec_pipe's "#ifdef __linux__" branch.
func newCloexecPipe() (r, w int, err error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC); err != nil {
		return -1, -1, err
	}
	return fds[0], fds[1], nil
}

// newCloexecSocket passes SOCK_CLOEXEC to socket(2), atomic on Linux,
// mirroring cloexec_socket's "#ifdef __linux__" branch.
func newCloexecSocket(domain, typ, protocol int) (int, error) {
	return unix.Socket(domain, typ|unix.SOCK_CLOEXEC, protocol)
}
