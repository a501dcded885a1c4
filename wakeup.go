package mtcore

// WakeupHandle is the edge-coalescing wake primitive a Queue signals through
// when it transitions from empty to non-empty, and that the owning event
// loop polls for readability on. Any number of Arm calls between two Drain
// calls coalesce into a single readiness edge, mirroring h2o's
// init_async/async_send semantics and the teacher's eventfd/self-pipe split
// across wakeup_linux.go/wakeup_darwin.go/wakeup_windows.go.
type WakeupHandle interface {
	// Arm signals the handle, causing FD (if non-negative) to become
	// readable. Calling Arm again before Drain is a no-op from the
	// poller's point of view (the edge is already pending).
	Arm() error

	// Drain consumes the pending signal, if any, so the handle returns to
	// quiescent. Called by Queue.Dispatch before it detaches any messages.
	Drain() error

	// FD returns the file descriptor the owning event loop should poll
	// for readability, or -1 if this handle has no pollable FD (e.g. the
	// Windows IOCP stub, where wakeup rides the completion port instead).
	FD() int

	// Close releases the handle's resources.
	Close() error
}

// newPlatformWakeup constructs the default WakeupHandle for the running
// platform: eventfd on Linux, falling back to a self-pipe everywhere else
// that newDefaultWakeup's build-tagged implementation provides one.
func newPlatformWakeup() WakeupHandle {
	w, err := newDefaultWakeup()
	if err != nil {
		// Matches the teacher's treatment of wake-primitive creation
		// failure: this is cold-start infrastructure, not a runtime
		// condition a caller can recover from.
		panic("mtcore: failed to create wakeup handle: " + err.Error())
	}
	return w
}
