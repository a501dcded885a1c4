package mtcore

import (
	"context"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIPv4_Valid(t *testing.T) {
	cases := map[string]string{
		"127.0.0.1":     "127.0.0.1",
		"0.0.0.0":       "0.0.0.0",
		"255.255.255.255": "255.255.255.255",
		"010.1.1.1":     "10.1.1.1",
		"1.2.3.4":       "1.2.3.4",
	}
	for in, want := range cases {
		addr, err := ParseIPv4(in)
		require.NoError(t, err, in)
		assert.Equal(t, netip.MustParseAddr(want), addr, in)
	}
}

func TestParseIPv4_Invalid(t *testing.T) {
	cases := []string{
		"",
		"1.2.3",
		"1.2.3.4.5",
		"1.2.3.256",
		"1.2.3.",
		".1.2.3",
		"1..2.3",
		"1.2.3.1234",
		"1.2.3.4 ",
		" 1.2.3.4",
		"1.2.3.-1",
		"a.b.c.d",
	}
	for _, in := range cases {
		_, err := ParseIPv4(in)
		assert.ErrorIs(t, err, ErrInvalidIPv4, in)
	}
}

func TestHostInfoResolver_GetaddrDeliversResult(t *testing.T) {
	r := NewHostInfoResolver(WithMaxThreads(1))
	r.lookupIP = func(ctx context.Context, network, host string) ([]netip.Addr, error) {
		return []netip.Addr{netip.MustParseAddr("93.184.216.34")}, nil
	}

	q := NewQueue(WithWakeup(newFakeWakeup()))
	defer q.Close()

	var recv Receiver
	q.Register(&recv, HostInfoReceiverFunc)
	defer q.Unregister(&recv)

	done := make(chan struct{})
	var gotAddrs []netip.Addr
	var gotErr error
	r.Getaddr(&recv, "example.com", "", HostHints{}, func(req *LookupRequest, err error, addrs []netip.Addr) {
		gotErr = err
		gotAddrs = addrs
		close(done)
	})

	require.Eventually(t, func() bool {
		q.Dispatch()
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, 2*time.Second, time.Millisecond)

	require.NoError(t, gotErr)
	assert.Equal(t, []netip.Addr{netip.MustParseAddr("93.184.216.34")}, gotAddrs)
}

func TestHostInfoResolver_CancelBeforePickupDropsSilently(t *testing.T) {
	r := NewHostInfoResolver()
	// Force the pool to never grow, so Getaddr's request is guaranteed to
	// stay on the pending list (no worker will ever dequeue it), making
	// Cancel's "still pending" branch deterministic rather than a race.
	r.maxWorkers = 0

	q := NewQueue(WithWakeup(newFakeWakeup()))
	defer q.Close()

	var recv Receiver
	q.Register(&recv, HostInfoReceiverFunc)
	defer q.Unregister(&recv)

	called := false
	req := r.Getaddr(&recv, "example.com", "", HostHints{}, func(req *LookupRequest, err error, addrs []netip.Addr) {
		called = true
	})

	require.True(t, req.pending.isLinked())
	req.Cancel()
	assert.False(t, req.pending.isLinked())

	q.Dispatch()
	assert.False(t, called, "a cancelled-while-pending request must never invoke its callback")
}

func TestHostInfoResolver_CancelAfterPickupNullsCallback(t *testing.T) {
	r := NewHostInfoResolver(WithMaxThreads(1))
	release := make(chan struct{})
	started := make(chan struct{})
	r.lookupIP = func(ctx context.Context, network, host string) ([]netip.Addr, error) {
		close(started)
		<-release
		return nil, nil
	}

	q := NewQueue(WithWakeup(newFakeWakeup()))
	defer q.Close()

	var recv Receiver
	q.Register(&recv, HostInfoReceiverFunc)
	defer q.Unregister(&recv)

	called := false
	req := r.Getaddr(&recv, "example.com", "", HostHints{}, func(req *LookupRequest, err error, addrs []netip.Addr) {
		called = true
	})

	<-started // worker has dequeued req and is now blocked inside lookupIP
	req.Cancel()
	close(release)

	// The worker goes idle again only after it has sent the result, so once
	// it is idle the following Dispatch is guaranteed to deliver it.
	require.Eventually(t, func() bool {
		r.mu.Lock()
		idle := r.numIdle == 1
		r.mu.Unlock()
		q.Dispatch()
		return idle
	}, time.Second, time.Millisecond)

	assert.False(t, called, "Cancel after pickup must null the callback before delivery")
}

func TestHostInfoResolver_WithMaxThreadsSetsWorkerCap(t *testing.T) {
	r := NewHostInfoResolver(WithMaxThreads(2))
	assert.Equal(t, 2, r.maxWorkers)
}
