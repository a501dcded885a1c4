package mtcore

import "sync"

// cloexecGate is the process-wide mutex serializing the window between a
// descriptor-creating syscall returning and its close-on-exec flag being
// set, so a concurrent spawn cannot inherit it. It is a single package-level
// var rather than a per-instance field: its usefulness depends on being
// shared by every goroutine in the process that either creates fds the
// non-atomic way or spawns a child (see Spawn, RunCommand).
var cloexecGate sync.Mutex

// WithCloexecGateHeld runs fn with the process-wide close-on-exec gate
// held. Callers must not block on I/O inside fn beyond the brief
// descriptor-creation syscall the gate exists to protect, and must not
// acquire any other lock in this package while holding it (it is a strict
// leaf in the lock order).
func WithCloexecGateHeld(fn func() error) error {
	cloexecGate.Lock()
	defer cloexecGate.Unlock()
	return fn()
}
