// Package reactor is the non-blocking HTTP server core: a
// single-threaded event loop over an OS poller, a per-connection state
// machine with optional TLS, a fixed worker pool for handler execution,
// and rate limiting at dispatch.
package reactor

// Interest is the readiness set a connection is registered for.
type Interest uint8

const (
	// InterestRead wakes the loop when the fd is readable.
	InterestRead Interest = 1 << iota
	// InterestWrite wakes the loop when the fd is writable.
	InterestWrite
)

// Event is one readiness notification from the poller.
type Event struct {
	FD       int
	Readable bool
	Writable bool
	Err      bool
	Hangup   bool
}

// Poller multiplexes fd readiness. Readiness is level-oblivious: the
// loop simply retries the syscall until it would block, so spurious
// wakeups are harmless.
type Poller interface {
	Register(fd int, interest Interest) error
	Modify(fd int, interest Interest) error
	Deregister(fd int) error
	// Poll fills events and returns the count, blocking up to timeoutMS.
	Poll(events []Event, timeoutMS int) (int, error)
	Close() error
}
