package mtcore

import "errors"

// Sentinel errors for the invariant-violation and malformed-input cases
// spec.md classifies as assertions or sentinel returns (§7).
var (
	// ErrReceiverInboxNotEmpty is returned by Queue.Unregister if the
	// receiver's inbox is non-empty; the caller must drain it first.
	ErrReceiverInboxNotEmpty = errors.New("mtcore: receiver inbox not empty")

	// ErrReceiverWrongQueue is returned when a Receiver is used against a
	// Queue other than the one it was registered with.
	ErrReceiverWrongQueue = errors.New("mtcore: receiver belongs to a different queue")

	// ErrQueueNotEmpty describes a Queue destroyed with receivers still
	// registered. Queue.Close does not return it: Close panics when a
	// receiver still has undelivered messages.
	ErrQueueNotEmpty = errors.New("mtcore: queue destroyed with registered receivers")

	// ErrMalformedServerStarterPort is returned when $SERVER_STARTER_PORT is
	// set but cannot be parsed (empty, missing '=', or a non-numeric fd).
	ErrMalformedServerStarterPort = errors.New("mtcore: malformed SERVER_STARTER_PORT")

	// ErrInvalidIPv4 is returned by ParseIPv4 for any input that isn't
	// exactly four 1-3 digit decimal octets separated by dots.
	ErrInvalidIPv4 = errors.New("mtcore: invalid IPv4 dotted-quad")
)
