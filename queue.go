package mtcore

import "sync"

// Message is the payload unit carried between threads via a Receiver's
// inbox. Embed message as the first field of a domain-specific struct and
// pass a pointer to Receiver.Send, mirroring h2o_multithread_message_t's
// H2O_STRUCT_FROM_MEMBER usage.
type Message struct {
	link link
}

// ReceiverFunc is invoked by Queue.Dispatch with every message queued for a
// Receiver since its last dispatch, in FIFO order. messages is only valid
// for the duration of the call.
type ReceiverFunc func(r *Receiver, messages []*Message)

// Receiver is a per-consumer inbox registered against exactly one Queue.
// Messages sent to it accumulate under the queue's mutex until the next
// Dispatch, at which point they are handed to cb as a batch. link must stay
// the first field: Dispatch recovers a *Receiver from the active list's
// *link via fromLink.
type Receiver struct {
	link     link
	queue    *Queue
	messages link
	cb       ReceiverFunc
}

// Queue is the cross-thread message-passing primitive any number of
// Receivers register against. Exactly one goroutine - normally the owner of
// the event loop driving WakeupHandle's FD - calls Dispatch; any number of
// other goroutines call Receiver.Send concurrently.
//
// Grounded on h2o's h2o_multithread_queue_t/multithread.c: an active list
// (receivers with pending messages) as an intrusive h2o_linklist_t anchor,
// protected by one mutex, plus an edge-coalescing wakeup so Dispatch is only
// scheduled once per empty-to-nonempty transition. There is no inactive
// list: a registered receiver with an empty inbox is not linked into any
// list (see Register).
type Queue struct {
	mu     sync.Mutex
	active link
	closed bool
	wakeup WakeupHandle
}

// NewQueue creates a Queue. If opts includes WithWakeup, that WakeupHandle
// is used in place of the platform default (eventfd on Linux, a self-pipe
// elsewhere, a no-op stub on Windows).
func NewQueue(opts ...QueueOption) *Queue {
	cfg := resolveQueueOptions(opts)
	q := &Queue{wakeup: cfg.wakeup}
	q.active.initAnchor()
	return q
}

// Wakeup returns the WakeupHandle backing this queue, so the owning event
// loop can register its FD for readability.
func (q *Queue) Wakeup() WakeupHandle {
	return q.wakeup
}

// Close releases the queue's wakeup handle. It panics if any Receiver still
// has undelivered messages (the active list is non-empty), the part of
// h2o_multithread_destroy_queue's assertion this port can check. Receivers
// that are registered with an empty inbox are not tracked by the queue, so
// Close does not detect them.
func (q *Queue) Close() error {
	q.mu.Lock()
	empty := q.active.isEmpty()
	q.closed = true
	q.mu.Unlock()
	if !empty {
		panic("mtcore: Queue.Close called with receivers still active")
	}
	return q.wakeup.Close()
}

// Register attaches receiver to the queue so Receiver.Send(receiver, ...)
// may be used. cb is invoked by Dispatch whenever messages are pending.
func (q *Queue) Register(r *Receiver, cb ReceiverFunc) {
	r.queue = q
	r.cb = cb
	r.messages.initAnchor()
	r.link.prev = nil
	r.link.next = nil
	// Registered receivers with no pending messages are not tracked in
	// any list until their first Send - the active list only ever holds
	// receivers with pending messages, unlike h2o's inactive list which
	// is purely informational bookkeeping for the destroy-time assert.
}

// Unregister detaches receiver from the queue. It returns
// ErrReceiverInboxNotEmpty if messages remain undelivered, and
// ErrReceiverWrongQueue if receiver was never registered with q.
func (q *Queue) Unregister(r *Receiver) error {
	if r.queue != q {
		return ErrReceiverWrongQueue
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if !r.messages.isEmpty() {
		return ErrReceiverInboxNotEmpty
	}
	r.link.unlink()
	r.queue = nil
	return nil
}

// Send enqueues m on r's inbox and arms the queue's wakeup if this is the
// transition from empty to non-empty. m == nil requests a pure wakeup of the
// event loop without touching r's inbox or the active list - useful when a
// caller only needs Dispatch's goroutine to wake up and re-check some other
// condition - exactly as h2o_multithread_send_message treats a NULL message.
func (r *Receiver) Send(m *Message) error {
	q := r.queue
	if q == nil {
		return ErrReceiverWrongQueue
	}
	q.mu.Lock()
	doSend := false
	if m != nil {
		if r.messages.isEmpty() {
			r.link.unlink()
			q.active.insert(&r.link)
			doSend = true
		}
		r.messages.insert(&m.link)
	} else if r.messages.isEmpty() {
		doSend = true
	}
	q.mu.Unlock()
	if doSend {
		return q.wakeup.Arm()
	}
	return nil
}

// Dispatch drains the queue's wakeup and invokes every active receiver's
// callback once with its pending messages, moving each receiver out of the
// active list before calling out to user code so callbacks may re-enter
// Send without deadlocking, mirroring multithread.c's queue_cb.
func (q *Queue) Dispatch() {
	if err := q.wakeup.Drain(); err != nil {
		L().Err().Err(err).Log(`queue wakeup drain failed`)
	}
	for {
		q.mu.Lock()
		if q.active.isEmpty() {
			q.mu.Unlock()
			return
		}
		r := fromLink[Receiver](q.active.next)
		var messages link
		messages.initAnchor()
		spliceAllInto(&messages, &r.messages)
		r.link.unlink()
		q.mu.Unlock()

		batch := drainMessages(&messages)
		r.cb(r, batch)
	}
}

func drainMessages(anchor *link) []*Message {
	var out []*Message
	for n := anchor.next; n != anchor; {
		next := n.next
		out = append(out, fromLink[Message](n))
		n.prev, n.next = nil, nil
		n = next
	}
	return out
}
