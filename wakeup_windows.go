//go:build windows

package mtcore

// windowsWakeup is a stub WakeupHandle: Windows event-loop integrations are
// expected to wake via PostQueuedCompletionStatus on their own IOCP handle
// rather than polling an FD, matching the teacher's wakeup_windows.go
// submitGenericWakeup design. FD returns -1 so a generic poller skips
// registering it.
type windowsWakeup struct {
	armed bool
}

func newDefaultWakeup() (WakeupHandle, error) {
	return &windowsWakeup{}, nil
}

func (w *windowsWakeup) Arm() error {
	w.armed = true
	return nil
}

func (w *windowsWakeup) Drain() error {
	w.armed = false
	return nil
}

func (w *windowsWakeup) FD() int {
	return -1
}

func (w *windowsWakeup) Close() error {
	return nil
}
