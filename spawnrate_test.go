package mtcore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpawnRateTracker_RecordAttemptDoesNotPanicUnderThreshold(t *testing.T) {
	tr := newSpawnRateTracker(map[time.Duration]int{time.Second: 5})
	assert.NotPanics(t, func() {
		tr.recordAttempt("/usr/bin/worker")
	})
}

func TestSpawnRateTracker_RecordAttemptDoesNotPanicOverThreshold(t *testing.T) {
	tr := newSpawnRateTracker(map[time.Duration]int{time.Minute: 2})
	assert.NotPanics(t, func() {
		for i := 0; i < 5; i++ {
			tr.recordAttempt("worker")
		}
	})
}

func TestSpawnRateTracker_RecordAttemptDoesNotPanicForPathVariants(t *testing.T) {
	tr := newSpawnRateTracker(map[time.Duration]int{time.Minute: 100})
	assert.NotPanics(t, func() {
		tr.recordAttempt("/usr/bin/worker")
		tr.recordAttempt("/opt/local/worker")
		tr.recordAttempt("worker")
	})
}
