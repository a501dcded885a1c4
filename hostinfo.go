package mtcore

import (
	"context"
	"net"
	"net/netip"
	"sync"
	"unsafe"
)

// HostHints narrows a lookup the way addrinfo hints narrow getaddrinfo(3):
// spec.md's family/socktype/protocol/flags fields, reduced to what
// net.Resolver can actually honor (it has no socktype/protocol knobs of its
// own - those stay as plain metadata threaded through to LookupCallback).
type HostHints struct {
	Family   int
	SockType int
	Protocol int
	Flags    int
}

// LookupCallback receives the outcome of a Getaddr request. err is nil on
// success; addrs is nil on failure. Exactly one of the two is set,
// mirroring h2o_hostinfo_getaddr_cb's (errstr, addrinfo*) pair.
type LookupCallback func(req *LookupRequest, err error, addrs []netip.Addr)

// LookupRequest is the handle returned by HostInfoResolver.Getaddr, the Go
// analogue of h2o_hostinfo_getaddr_req_t. Cancel is the only operation a
// caller performs on it directly; delivery happens through the Receiver
// passed to Getaddr.
type LookupRequest struct {
	message Message

	resolver *HostInfoResolver
	receiver *Receiver
	cb       LookupCallback

	name, service string
	hints         HostHints

	pending link // linked into resolver.pending while queued, unlinked once picked up by a worker

	err   error
	addrs []netip.Addr
}

// HostInfoResolver is an asynchronous DNS resolution pool: spec.md §4.F's
// lazy-growth thread pool, translated to a lazy-growth goroutine pool
// (REDESIGN FLAGS: goroutines are the idiomatic Go analogue of h2o's
// pthread_create-per-worker design - both park on a blocking call, Go's
// netpoller-aware scheduler just does the OS-thread multiplexing for us).
// Grounded on hostinfo.c's static `queue` struct and its pending list / idle
// counter / cond-wait loop.
type HostInfoResolver struct {
	mu          sync.Mutex
	cond        *sync.Cond
	pending     link
	numWorkers  int
	numIdle     int
	maxWorkers  int
	lookupIP    func(ctx context.Context, network, host string) ([]netip.Addr, error)
}

// NewHostInfoResolver creates a resolver pool. By default at most one
// goroutine performs lookups at a time (spec.md §4.F's h2o_hostinfo_max_threads
// default of 1); see WithMaxThreads and WithMaxThreadsFromCPU.
func NewHostInfoResolver(opts ...ResolverOption) *HostInfoResolver {
	cfg := resolveResolverOptions(opts)
	r := &HostInfoResolver{
		maxWorkers: cfg.maxThreads,
		lookupIP:   net.DefaultResolver.LookupNetIP,
	}
	r.cond = sync.NewCond(&r.mu)
	r.pending.initAnchor()
	return r
}

// Getaddr queues an asynchronous lookup of name and returns immediately
// with a *LookupRequest; the result is delivered by cb, invoked from
// Queue.Dispatch on the goroutine that calls Dispatch, once receiver's
// owning Queue next dispatches. Only name is resolved: service is stored
// on the request but not looked up, and the delivered addresses carry no
// port. Grounded on h2o_hostinfo_getaddr / h2o__hostinfo_getaddr_dispatch.
func (r *HostInfoResolver) Getaddr(receiver *Receiver, name, service string, hints HostHints, cb LookupCallback) *LookupRequest {
	req := &LookupRequest{
		resolver: r,
		receiver: receiver,
		cb:       cb,
		name:     name,
		service:  service,
		hints:    hints,
	}
	r.dispatch(req)
	return req
}

// dispatch enqueues req and grows the worker pool by one if every existing
// worker is busy and the pool hasn't hit maxWorkers, mirroring
// h2o__hostinfo_getaddr_dispatch's create_lookup_thread call.
func (r *HostInfoResolver) dispatch(req *LookupRequest) {
	r.mu.Lock()
	r.pending.insert(&req.pending)
	if r.numIdle == 0 && r.numWorkers < r.maxWorkers {
		r.numWorkers++
		r.numIdle++
		go r.workerMain()
	}
	r.mu.Unlock()
	r.cond.Signal()
}

// workerMain is the lazily-spawned pool worker: it drains the pending list,
// performing one blocking lookup at a time, then blocks on cond until woken
// by the next dispatch. It never exits - matching lookup_thread_main's
// infinite loop, workers live for the resolver's lifetime.
func (r *HostInfoResolver) workerMain() {
	r.mu.Lock()
	for {
		r.numIdle--
		for !r.pending.isEmpty() {
			req := fromLinkOffset[LookupRequest](r.pending.next, unsafe.Offsetof(LookupRequest{}.pending))
			req.pending.unlink()
			r.mu.Unlock()

			req.lookupAndRespond(r.lookupIP)

			r.mu.Lock()
		}
		r.numIdle++
		r.cond.Wait()
	}
}

func (req *LookupRequest) lookupAndRespond(lookupIP func(ctx context.Context, network, host string) ([]netip.Addr, error)) {
	network := "ip"
	switch req.hints.Family {
	case 4:
		network = "ip4"
	case 6:
		network = "ip6"
	}
	addrs, err := lookupIP(context.Background(), network, req.name)
	req.err = err
	req.addrs = addrs
	_ = req.receiver.Send(&req.message)
}

// Cancel aborts req. If the lookup hasn't yet been picked up by a worker,
// it is removed from the pending list and the request is simply dropped -
// no callback fires. If a worker already dequeued it, Cancel can't stop the
// in-flight blocking lookup (net.Resolver gives no mid-flight abort short of
// a context, which would also cancel unrelated concurrent lookups sharing
// the same worker - so instead the callback is nulled out), but the result,
// once it arrives, is silently discarded in Dispatch-driven delivery.
// O(1), race-free, never blocks: grounded on h2o_hostinfo_getaddr_cancel's
// "unlink if still pending, else null the callback" trick.
func (req *LookupRequest) Cancel() {
	req.resolver.mu.Lock()
	defer req.resolver.mu.Unlock()
	if req.pending.isLinked() {
		req.pending.unlink()
		return
	}
	req.cb = nil
}

// ParseIPv4 parses host as a dotted-quad IPv4 address with the exact
// grammar h2o_hostinfo_aton accepts: exactly four decimal octets of 1-3
// digits each (leading zeros permitted, e.g. "010" == 10), separated by
// single dots, with nothing before the first octet or after the last.
// net.ParseIP/netip.ParseAddr are both more permissive (they also accept
// IPv6, embedded zones, and - in net.ParseIP's case - octal-looking forms
// differently), so this is a deliberately narrower, hand-written parser
// rather than a stdlib call wearing a new name.
func ParseIPv4(host string) (netip.Addr, error) {
	var octets [4]byte
	pos := 0
	for octet := 0; octet < 4; octet++ {
		start := pos
		for pos < len(host) && host[pos] >= '0' && host[pos] <= '9' {
			pos++
		}
		n := pos - start
		if n < 1 || n > 3 {
			return netip.Addr{}, ErrInvalidIPv4
		}
		v := 0
		for _, c := range host[start:pos] {
			v = v*10 + int(c-'0')
		}
		if v > 255 {
			return netip.Addr{}, ErrInvalidIPv4
		}
		octets[octet] = byte(v)
		if octet == 3 {
			break
		}
		if pos >= len(host) || host[pos] != '.' {
			return netip.Addr{}, ErrInvalidIPv4
		}
		pos++
	}
	if pos != len(host) {
		return netip.Addr{}, ErrInvalidIPv4
	}
	return netip.AddrFrom4(octets), nil
}

// HostInfoReceiverFunc is the ReceiverFunc to install via Queue.Register for
// any Receiver that HostInfoResolver.Getaddr is called against. It recovers
// each LookupRequest from its message, invokes the still-set callback (if
// Cancel hasn't nulled it), and lets already-cancelled requests drop
// silently - grounded on h2o_hostinfo_getaddr_receiver.
func HostInfoReceiverFunc(r *Receiver, messages []*Message) {
	for _, m := range messages {
		req := fromLink[LookupRequest](&m.link)
		if req.cb != nil {
			cb := req.cb
			req.cb = nil
			cb(req, req.err, req.addrs)
		}
	}
}
