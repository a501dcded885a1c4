// Package mtcore provides the cross-thread coordination primitives a
// single-process, multi-threaded (here: multi-goroutine) HTTP server's
// common library needs underneath its event loop: close-on-exec-safe
// descriptor creation, a dynamic-capacity counting semaphore, a
// cross-thread message queue with edge-coalescing wakeup, an asynchronous
// DNS resolution pool, and safe child-process spawning with
// server-starter-style fd inheritance.
//
// None of these types run an event loop of their own - every blocking or
// wakeup-driven operation is meant to be driven by a caller's own poller via
// the FD exposed by WakeupHandle, or by consuming a goroutine the way
// HostInfoResolver's pool does.
package mtcore
