package reactor

import "time"

type connState uint8

const (
	stateHandshaking connState = iota
	stateReadingRequest
	stateProcessing
	stateWritingResponse
	stateDone
)

func (s connState) String() string {
	switch s {
	case stateHandshaking:
		return "handshaking"
	case stateReadingRequest:
		return "reading"
	case stateProcessing:
		return "processing"
	case stateWritingResponse:
		return "writing"
	case stateDone:
		return "done"
	}
	return "unknown"
}

// conn is one client connection. All fields are owned by the reactor
// thread; workers only ever see the fd number.
type conn struct {
	fd      int
	ip      string
	state   connState
	session Session // nil in plaintext mode

	readBuf  []byte
	writeBuf []byte
	writeOff int
	// tlsPending is ciphertext that hit a short write during the
	// handshake and waits for the next writable edge.
	tlsPending []byte

	keepAlive bool
	// stateSince marks the last state transition, for the timeout sweep.
	stateSince time.Time
}

func (c *conn) enter(s connState, now time.Time) {
	c.state = s
	c.stateSince = now
}
