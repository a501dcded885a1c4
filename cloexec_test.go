package mtcore

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCloexecGateHeld_SerializesCallers(t *testing.T) {
	var mu sync.Mutex
	inside := 0
	maxConcurrent := 0

	var wg sync.WaitGroup
	const n = 20
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = WithCloexecGateHeld(func() error {
				mu.Lock()
				inside++
				if inside > maxConcurrent {
					maxConcurrent = inside
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxConcurrent, "cloexec gate must serialize all callers")
}

func TestWithCloexecGateHeld_PropagatesError(t *testing.T) {
	sentinel := errors.New("boom")
	err := WithCloexecGateHeld(func() error { return sentinel })
	require.ErrorIs(t, err, sentinel)
}
