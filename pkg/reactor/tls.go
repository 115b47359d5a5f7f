package reactor

import (
	"crypto/tls"
	"errors"
	"io"
	"net"
	"sync"
	"time"
)

// ErrWouldBlock is returned by Session.Read when no plaintext is
// buffered yet.
var ErrWouldBlock = errors.New("operation would block")

// HandshakeResult reports handshake progress.
type HandshakeResult int

const (
	// HandshakeWantRead means the session needs more inbound bytes.
	HandshakeWantRead HandshakeResult = iota
	// HandshakeWantWrite means the session has bytes to flush first.
	HandshakeWantWrite
	// HandshakeComplete means the session is ready for plaintext I/O.
	HandshakeComplete
)

// Session is one TLS connection driven by the reactor. The reactor
// feeds raw socket bytes in, drains ciphertext out, and exchanges
// plaintext once the handshake completes. Any returned error (other
// than ErrWouldBlock) moves the connection to Done.
type Session interface {
	// FeedInbound hands bytes read from the socket to the session.
	FeedInbound(p []byte)
	// TakeOutbound removes and returns ciphertext to write to the
	// socket. Returns nil when nothing is pending.
	TakeOutbound() []byte
	Handshake() (HandshakeResult, error)
	// Read copies decrypted bytes into p, or returns ErrWouldBlock.
	Read(p []byte) (int, error)
	// Write encrypts p; ciphertext becomes available via TakeOutbound.
	Write(p []byte) (int, error)
	// Shutdown queues a close_notify alert.
	Shutdown()
	// Free releases the session's resources.
	Free()
}

// SessionFactory allocates sessions; the reactor holds one per server.
type SessionFactory interface {
	NewSession() Session
}

// TLSContext adapts crypto/tls to the Session interface. crypto/tls is
// blocking, so each session runs its handshake and record layer on a
// dedicated goroutine over an in-memory pipe; the reactor thread only
// touches the pipe's buffers.
type TLSContext struct {
	config *tls.Config
}

// NewTLSContext loads a certificate pair and returns a session factory.
func NewTLSContext(certFile, keyFile string) (*TLSContext, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, err
	}
	return &TLSContext{config: &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}}, nil
}

// NewTLSContextFromConfig wraps an existing tls.Config.
func NewTLSContextFromConfig(cfg *tls.Config) *TLSContext {
	return &TLSContext{config: cfg}
}

// NewSession allocates a session and starts its driver goroutine.
func (c *TLSContext) NewSession() Session {
	pipe := newMemPipe()
	s := &tlsSession{
		pipe: pipe,
		conn: tls.Server(pipe, c.config),
	}
	go s.run()
	return s
}

type tlsSession struct {
	pipe *memPipe
	conn *tls.Conn

	mu        sync.Mutex
	plaintext []byte
	hsDone    bool
	err       error
}

// run drives the blocking handshake and read loop. It exits when the
// pipe closes or the peer shuts down.
func (s *tlsSession) run() {
	if err := s.conn.Handshake(); err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return
	}
	s.mu.Lock()
	s.hsDone = true
	s.mu.Unlock()

	buf := make([]byte, 16384)
	for {
		n, err := s.conn.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.plaintext = append(s.plaintext, buf[:n]...)
			s.mu.Unlock()
		}
		if err != nil {
			s.mu.Lock()
			if s.err == nil {
				s.err = err
			}
			s.mu.Unlock()
			return
		}
	}
}

func (s *tlsSession) FeedInbound(p []byte) {
	s.pipe.feed(p)
}

func (s *tlsSession) TakeOutbound() []byte {
	return s.pipe.takeOut()
}

func (s *tlsSession) Handshake() (HandshakeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	if s.hsDone {
		return HandshakeComplete, nil
	}
	if s.pipe.pendingOut() {
		return HandshakeWantWrite, nil
	}
	return HandshakeWantRead, nil
}

func (s *tlsSession) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.plaintext) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, ErrWouldBlock
	}
	n := copy(p, s.plaintext)
	s.plaintext = s.plaintext[n:]
	return n, nil
}

func (s *tlsSession) Write(p []byte) (int, error) {
	s.mu.Lock()
	ready := s.hsDone && s.err == nil
	err := s.err
	s.mu.Unlock()
	if !ready {
		if err == nil {
			err = ErrWouldBlock
		}
		return 0, err
	}
	return s.conn.Write(p)
}

func (s *tlsSession) Shutdown() {
	_ = s.conn.CloseWrite()
}

func (s *tlsSession) Free() {
	s.pipe.close()
}

// memPipe is the net.Conn the tls.Conn runs over: reads block on an
// inbound buffer the reactor fills, writes land in an outbound buffer
// the reactor drains.
type memPipe struct {
	mu     sync.Mutex
	cond   *sync.Cond
	in     []byte
	out    []byte
	closed bool
}

func newMemPipe() *memPipe {
	p := &memPipe{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

func (p *memPipe) feed(b []byte) {
	p.mu.Lock()
	p.in = append(p.in, b...)
	p.mu.Unlock()
	p.cond.Signal()
}

func (p *memPipe) takeOut() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.out) == 0 {
		return nil
	}
	out := p.out
	p.out = nil
	return out
}

func (p *memPipe) pendingOut() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.out) > 0
}

func (p *memPipe) close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
}

func (p *memPipe) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.in) == 0 && !p.closed {
		p.cond.Wait()
	}
	if len(p.in) == 0 {
		return 0, io.EOF
	}
	n := copy(b, p.in)
	p.in = p.in[n:]
	return n, nil
}

func (p *memPipe) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, io.ErrClosedPipe
	}
	p.out = append(p.out, b...)
	return len(b), nil
}

func (p *memPipe) Close() error {
	p.close()
	return nil
}

func (p *memPipe) LocalAddr() net.Addr  { return memAddr{} }
func (p *memPipe) RemoteAddr() net.Addr { return memAddr{} }

func (p *memPipe) SetDeadline(time.Time) error      { return nil }
func (p *memPipe) SetReadDeadline(time.Time) error  { return nil }
func (p *memPipe) SetWriteDeadline(time.Time) error { return nil }

type memAddr struct{}

func (memAddr) Network() string { return "mem" }
func (memAddr) String() string  { return "mem" }
