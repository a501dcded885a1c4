//go:build !linux && !windows

package mtcore

import "golang.org/x/sys/unix"

// pipeWakeup implements WakeupHandle with a self-pipe: Arm writes a single
// byte (ignoring EAGAIN, meaning a byte is already pending), Drain reads
// until empty. Grounded on the teacher's wakeup_darwin.go createWakeFd and
// h2o's init_async self-pipe fallback.
type pipeWakeup struct {
	readFD, writeFD int
}

func newDefaultWakeup() (WakeupHandle, error) {
	// pipe2 is not available on every platform this file builds for
	// (Darwin lacks it), so create the pipe close-on-exec under the gate
	// and set non-blocking mode afterwards.
	r, w, err := newCloexecPipe()
	if err != nil {
		return nil, err
	}
	for _, fd := range [...]int{r, w} {
		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(r)
			unix.Close(w)
			return nil, err
		}
	}
	return &pipeWakeup{readFD: r, writeFD: w}, nil
}

func (w *pipeWakeup) Arm() error {
	var b [1]byte
	_, err := unix.Write(w.writeFD, b[:])
	if err == unix.EAGAIN {
		return nil
	}
	return err
}

func (w *pipeWakeup) Drain() error {
	var buf [64]byte
	for {
		_, err := unix.Read(w.readFD, buf[:])
		if err != nil {
			if err == unix.EAGAIN {
				return nil
			}
			return err
		}
	}
}

func (w *pipeWakeup) FD() int {
	return w.readFD
}

func (w *pipeWakeup) Close() error {
	err1 := unix.Close(w.readFD)
	err2 := unix.Close(w.writeFD)
	if err1 != nil {
		return err1
	}
	return err2
}
