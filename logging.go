// Package mtcore's logging is deliberately a thin package-level seam: every
// other file in this package logs through L(), never by constructing its own
// writer. This matches the teacher's logging.go design (a package-level
// logger variable with a safe no-op default, swappable via a Set* function),
// but wires a real structured-logging stack instead of a hand-rolled Logger
// interface: github.com/joeycumines/logiface as the generic front end,
// backed by github.com/joeycumines/stumpy (a JSON event implementation) -
// both already present in the teacher's own dependency graph.
package mtcore

import (
	"sync"
	"sync/atomic"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Event and Logger alias the concrete logiface instantiation this package
// logs through, so callers never need to spell out the stumpy.Event type
// parameter.
type (
	Event  = stumpy.Event
	Logger = logiface.Logger[*Event]
)

var (
	defaultLogger = logiface.New[*Event](stumpy.L.WithStumpy())

	currentLogger atomic.Pointer[Logger]
	loggerMu      sync.Mutex
)

func init() {
	currentLogger.Store(newNoopLogger())
}

// newNoopLogger returns a logiface.Logger configured at LevelDisabled, so it
// never allocates an event or calls the writer - the same "silent by
// default" behaviour as the teacher's NewNoOpLogger.
func newNoopLogger() *Logger {
	return logiface.New[*Event](
		logiface.WithLevel[*Event](logiface.LevelDisabled),
		stumpy.L.WithStumpy(),
	)
}

// SetLogger installs l as the package-wide logger used by Queue, Spawn,
// RunCommand and the spawn-rate tracker. Passing nil restores the no-op
// default. Safe to call concurrently with logging calls in flight.
func SetLogger(l *Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		l = newNoopLogger()
	}
	currentLogger.Store(l)
}

// L returns the package-wide logger.
func L() *Logger {
	return currentLogger.Load()
}

// DefaultLogger returns a Logger writing JSON to stderr via stumpy, at the
// Informational level and above - a ready-made non-no-op option for
// SetLogger, equivalent to the teacher's NewDefaultLogger(LevelInfo).
func DefaultLogger() *Logger {
	return defaultLogger
}
