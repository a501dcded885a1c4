package mtcore

import "unsafe"

// link is an intrusive doubly-linked list node, embedded by value inside
// every linkable record. An anchor node (created via initAnchor) has
// prev/next pointing to itself; a non-anchor node is linked iff next != nil.
//
// This mirrors h2o's h2o_linklist_t: a record can be removed in O(1) without
// knowing the list head, which is required by the cancel and send paths
// under lock (see queue.go and hostinfo.go).
type link struct {
	prev, next *link
}

// initAnchor turns l into an anchor node: an empty list of its own.
func (l *link) initAnchor() {
	l.prev = l
	l.next = l
}

// isLinked reports whether l is currently part of some list (anchor or not).
func (l *link) isLinked() bool {
	return l.next != nil
}

// isEmpty reports whether the anchor l has no elements.
func (l *link) isEmpty() bool {
	return l.next == l
}

// insert splices n in immediately before l (l must be an anchor or a
// currently-linked node; n must not already be linked), mirroring
// h2o_linklist_insert(pos, node)'s "insert node before pos" semantics.
// Calling anchor.insert(n) repeatedly therefore appends at the tail of the
// anchor's list - the FIFO order Receiver.Send's inbox and
// HostInfoResolver's pending list both depend on.
func (l *link) insert(n *link) {
	n.next = l
	n.prev = l.prev
	l.prev.next = n
	l.prev = n
}

// unlink removes l from whatever list it is part of. Safe to call on an
// already-unlinked node other than an anchor.
func (l *link) unlink() {
	if l.next == nil {
		return
	}
	l.prev.next = l.next
	l.next.prev = l.prev
	l.prev = nil
	l.next = nil
}

// spliceAllInto moves every element currently in the anchor src into the
// anchor dst, leaving src empty. dst must itself be an empty anchor; this is
// the "detach all messages into a local list" operation used by
// Queue.Dispatch.
func spliceAllInto(dst, src *link) {
	if src.isEmpty() {
		return
	}
	first, last := src.next, src.prev
	dst.next = first
	first.prev = dst
	dst.prev = last
	last.next = dst
	src.initAnchor()
}

// fromLink recovers a pointer to the record embedding l, the allocation-free
// analogue of h2o's H2O_STRUCT_FROM_MEMBER macro. The caller is responsible
// for l being the first field of a T value - every linkable type in this
// package satisfies that by convention (see Message, Receiver, and
// LookupRequest's leading message field).
func fromLink[T any](l *link) *T {
	return (*T)(unsafe.Pointer(l))
}

// fromLinkOffset is fromLink generalized to a link field that isn't first:
// callers pass unsafe.Offsetof(T{}.field) so the record's base address can
// be recovered from the link's address. Used where a single record type
// embeds two link fields at different offsets (see LookupRequest's message
// and pending fields).
func fromLinkOffset[T any](l *link, offset uintptr) *T {
	return (*T)(unsafe.Pointer(uintptr(unsafe.Pointer(l)) - offset))
}
