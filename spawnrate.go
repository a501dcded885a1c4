package mtcore

import (
	"path/filepath"
	"time"

	"github.com/joeycumines/go-catrate"
)

// spawnRateLimiter tracks Spawn attempts per command basename over 1s/10s
// sliding windows, purely for observability: it never blocks or rejects a
// spawn, matching spec.md's unconditional spawn contract. Every attempt the
// limiter does not allow (a command over the configured thresholds) logs a
// warning line flagging a possible restart storm. Grounded on catrate's category/window
// design (catrate/limiter.go's NewLimiter/Allow).
var spawnRateLimiter = newSpawnRateTracker(map[time.Duration]int{
	1 * time.Second:  5,
	10 * time.Second: 20,
})

type spawnRateTracker struct {
	limiter *catrate.Limiter
}

func newSpawnRateTracker(rates map[time.Duration]int) *spawnRateTracker {
	return &spawnRateTracker{limiter: catrate.NewLimiter(rates)}
}

// recordAttempt is called by Spawn for every attempt, keyed on cmd's
// basename so e.g. "/usr/bin/worker" and "worker" share a bucket.
func (t *spawnRateTracker) recordAttempt(cmd string) {
	category := filepath.Base(cmd)
	if _, ok := t.limiter.Allow(category); !ok {
		L().Warning().Str(`cmd`, category).Log(`possible restart storm: spawn rate exceeded`)
	}
}
