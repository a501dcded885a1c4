package mtcore

import "runtime"

// resolverOptions holds configuration accumulated by ResolverOption values,
// mirroring the teacher's loopOptions/loopOptionImpl split: a private
// config struct, a public closure-backed interface, and a resolve function
// applying defaults before the option list.
type resolverOptions struct {
	maxThreads int
}

// ResolverOption configures a HostInfoResolver at construction time.
type ResolverOption interface {
	applyResolver(*resolverOptions)
}

type resolverOptionFunc func(*resolverOptions)

func (f resolverOptionFunc) applyResolver(o *resolverOptions) { f(o) }

// WithMaxThreads caps the number of goroutines HostInfoResolver will grow
// its lookup pool to. n <= 0 is treated as 1.
func WithMaxThreads(n int) ResolverOption {
	return resolverOptionFunc(func(o *resolverOptions) {
		if n <= 0 {
			n = 1
		}
		o.maxThreads = n
	})
}

// WithMaxThreadsFromCPU sizes the lookup pool from the container-corrected
// GOMAXPROCS (see numcpu.go) instead of the spec.md default of 1.
func WithMaxThreadsFromCPU() ResolverOption {
	return resolverOptionFunc(func(o *resolverOptions) {
		o.maxThreads = NumCPU()
	})
}

func resolveResolverOptions(opts []ResolverOption) *resolverOptions {
	cfg := &resolverOptions{maxThreads: 1}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyResolver(cfg)
	}
	return cfg
}

// queueOptions holds configuration accumulated by QueueOption values.
type queueOptions struct {
	wakeup WakeupHandle
}

// QueueOption configures a Queue at construction time.
type QueueOption interface {
	applyQueue(*queueOptions)
}

type queueOptionFunc func(*queueOptions)

func (f queueOptionFunc) applyQueue(o *queueOptions) { f(o) }

// WithWakeup overrides the default platform WakeupHandle (see wakeup_*.go),
// primarily for tests that want to observe or stub wakeup signaling.
func WithWakeup(w WakeupHandle) QueueOption {
	return queueOptionFunc(func(o *queueOptions) {
		o.wakeup = w
	})
}

func resolveQueueOptions(opts []QueueOption) *queueOptions {
	cfg := &queueOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyQueue(cfg)
	}
	if cfg.wakeup == nil {
		cfg.wakeup = newPlatformWakeup()
	}
	return cfg
}

// spawnOptions holds configuration accumulated by SpawnOption values.
type spawnOptions struct {
	extraEnv []string
}

// SpawnOption holds per-spawn configuration, collected by
// resolveSpawnOptions. Spawn and RunCommand take no SpawnOption parameter,
// so these values do not reach any child process.
type SpawnOption interface {
	applySpawn(*spawnOptions)
}

type spawnOptionFunc func(*spawnOptions)

func (f spawnOptionFunc) applySpawn(o *spawnOptions) { f(o) }

// WithEnv appends extra environment variables (KEY=VALUE) to a SpawnOption
// configuration. Spawn and RunCommand do not accept SpawnOption values; the
// child environment they build is the inherited one plus H2O_ROOT when it
// is absent.
func WithEnv(extra []string) SpawnOption {
	return spawnOptionFunc(func(o *spawnOptions) {
		o.extraEnv = append(o.extraEnv, extra...)
	})
}

func resolveSpawnOptions(opts []SpawnOption) *spawnOptions {
	cfg := &spawnOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applySpawn(cfg)
	}
	return cfg
}

// defaultGOMAXPROCS is read on every NumCPU call; kept as a var
// (rather than inlined) so tests can exercise the invalid-value branch.
var defaultGOMAXPROCS = func() int { return runtime.GOMAXPROCS(0) }
