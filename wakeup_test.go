package mtcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWakeup (defined in queue_test.go) already exercises the WakeupHandle
// contract generically through Queue's tests. This file exercises the
// concrete platform handle returned by newPlatformWakeup.

func TestPlatformWakeup_ArmDrainCoalesces(t *testing.T) {
	w, err := newDefaultWakeup()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Arm())
	require.NoError(t, w.Arm()) // second Arm before Drain must coalesce, not error
	require.NoError(t, w.Drain())
	require.NoError(t, w.Drain()) // draining an already-quiescent handle is a no-op
}

func TestPlatformWakeup_FDValid(t *testing.T) {
	w, err := newDefaultWakeup()
	require.NoError(t, err)
	defer w.Close()

	assert.GreaterOrEqual(t, w.FD(), 0)
}

func TestNewPlatformWakeup_ReturnsUsableHandle(t *testing.T) {
	w := newPlatformWakeup()
	defer w.Close()

	require.NoError(t, w.Arm())
	require.NoError(t, w.Drain())
}
