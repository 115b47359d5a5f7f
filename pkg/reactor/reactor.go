package reactor

import (
	"errors"
	"log/slog"
	"net"
	"os"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	verrors "github.com/volki-dev/volki/internal/errors"
	"github.com/volki-dev/volki/pkg/http"
	"github.com/volki-dev/volki/pkg/router"
)

const (
	// pollTimeoutMS bounds each poller wait so queues and sweeps stay
	// responsive even on an idle server.
	pollTimeoutMS = 10
	// sweepInterval is how often timeouts and stale rate buckets are
	// collected.
	sweepInterval = 500 * time.Millisecond
	// readChunk is the per-read scratch size.
	readChunk = 8192
)

// StaticResolver short-circuits GET requests with a static file
// response, or returns nil to fall through to routing.
type StaticResolver func(path string) *http.Response

// Config configures a Reactor.
type Config struct {
	Host string
	Port int

	Security SecurityConfig

	// Workers is the handler pool size. Zero means runtime.NumCPU(),
	// overridable with VOLKI_WORKERS.
	Workers int
	// QueueCapacity bounds the job queue; a full queue answers 503.
	QueueCapacity int

	// TLS enables HTTPS when set.
	TLS SessionFactory

	// Static serves files for unrouted GETs.
	Static StaticResolver

	Logger  *slog.Logger
	Metrics *Metrics
}

// Reactor is the single-threaded event loop. Everything except the
// worker pool runs on the goroutine that called Listen.
type Reactor struct {
	cfg     Config
	router  *router.Router
	poller  Poller
	pool    *workerPool
	limiter *RateLimiter
	log     *slog.Logger
	metrics *Metrics

	listener int
	port     int

	conns map[int]*conn
	perIP map[string]int

	ready   chan struct{}
	closing atomic.Bool
	tmp     [readChunk]byte
}

// New builds a reactor over an immutable router.
func New(rt *router.Router, cfg Config) *Reactor {
	if cfg.Security == (SecurityConfig{}) {
		cfg.Security = DefaultSecurityConfig()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
		if env := os.Getenv("VOLKI_WORKERS"); env != "" {
			if n, err := strconv.Atoi(env); err == nil && n > 0 {
				cfg.Workers = n
			}
		}
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = 256
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Reactor{
		cfg:     cfg,
		router:  rt,
		limiter: NewRateLimiter(),
		log:     cfg.Logger,
		metrics: cfg.Metrics,
		conns:   make(map[int]*conn),
		perIP:   make(map[string]int),
		ready:   make(chan struct{}),
	}
}

// Ready is closed once the listener is bound and the loop is about to
// run; Port is valid from then on.
func (r *Reactor) Ready() <-chan struct{} { return r.ready }

// Port returns the bound port, valid after Listen has set up the
// socket. Useful with Port 0 in tests.
func (r *Reactor) Port() int { return r.port }

// Shutdown asks the loop to stop after the current iteration.
func (r *Reactor) Shutdown() { r.closing.Store(true) }

// Listen binds the socket and runs the event loop until Shutdown.
func (r *Reactor) Listen() error {
	lfd, port, err := listenSocket(r.cfg.Host, r.cfg.Port)
	if err != nil {
		return err
	}
	r.listener = lfd
	r.port = port

	r.poller, err = NewPoller()
	if err != nil {
		unix.Close(lfd)
		return err
	}
	if err := r.poller.Register(lfd, InterestRead); err != nil {
		r.poller.Close()
		unix.Close(lfd)
		return err
	}

	r.pool = newWorkerPool(r.cfg.Workers, r.cfg.QueueCapacity, r.log, r.metrics)

	r.log.Info("listening",
		"host", r.cfg.Host,
		"port", r.port,
		"tls", r.cfg.TLS != nil,
		"workers", r.cfg.Workers,
	)

	close(r.ready)
	r.loop()
	r.shutdownAll()
	return nil
}

func (r *Reactor) loop() {
	events := make([]Event, 256)
	lastSweep := time.Now()

	for !r.closing.Load() {
		n, err := r.poller.Poll(events, pollTimeoutMS)
		if err != nil {
			r.log.Error("poll failed", "error", err)
			continue
		}

		for i := 0; i < n; i++ {
			ev := events[i]
			if ev.FD == r.listener {
				r.acceptLoop()
				continue
			}
			r.handleEvent(ev)
		}

		r.pool.drain(r.attachResult)

		if r.cfg.TLS != nil {
			r.pumpSessions()
		}

		if now := time.Now(); now.Sub(lastSweep) >= sweepInterval {
			r.sweep(now)
			r.limiter.Sweep(now)
			lastSweep = now
		}
	}
}

func (r *Reactor) acceptLoop() {
	for {
		nfd, sa, err := unix.Accept(r.listener)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				return
			}
			if err == unix.EINTR {
				continue
			}
			r.log.Error("accept failed", "error", err)
			return
		}

		if len(r.conns) >= r.cfg.Security.MaxConnections {
			unix.Close(nfd)
			continue
		}
		ip := sockaddrIP(sa)
		if r.perIP[ip] >= r.cfg.Security.MaxConnectionsPerIP {
			unix.Close(nfd)
			continue
		}

		if err := unix.SetNonblock(nfd, true); err != nil {
			unix.Close(nfd)
			continue
		}
		unix.SetsockoptInt(nfd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)

		now := time.Now()
		c := &conn{fd: nfd, ip: ip, stateSince: now}

		var interest Interest
		if r.cfg.TLS != nil {
			c.session = r.cfg.TLS.NewSession()
			c.state = stateHandshaking
			// Handshake flights go both ways; watch both edges until
			// the session settles.
			interest = InterestRead | InterestWrite
		} else {
			c.state = stateReadingRequest
			interest = InterestRead
		}

		if err := r.poller.Register(nfd, interest); err != nil {
			if c.session != nil {
				c.session.Free()
			}
			unix.Close(nfd)
			continue
		}

		r.conns[nfd] = c
		r.perIP[ip]++
		r.metrics.connOpened()
	}
}

func (r *Reactor) handleEvent(ev Event) {
	c, ok := r.conns[ev.FD]
	if !ok {
		return
	}
	if ev.Err {
		r.closeConn(c)
		return
	}

	switch c.state {
	case stateHandshaking:
		r.driveHandshake(c, ev)
	case stateReadingRequest:
		if ev.Readable || ev.Hangup {
			r.handleRead(c)
		}
	case stateProcessing:
		// The worker owns the request; leave the connection alone.
	case stateWritingResponse:
		if ev.Writable {
			r.flushWrite(c)
		} else if ev.Hangup {
			r.closeConn(c)
		}
	case stateDone:
	}
}

// driveHandshake feeds the session, flushes its outbound flights, and
// transitions to reading once the handshake settles.
func (r *Reactor) driveHandshake(c *conn, ev Event) {
	if ev.Readable || ev.Hangup {
		if _, closed := r.readSocket(c); closed {
			return
		}
	}
	if !r.flushSessionOut(c) {
		return
	}

	state, err := c.session.Handshake()
	if err != nil {
		r.metrics.handshakeFailed()
		r.log.Debug("handshake failed", "ip", c.ip, "error", err)
		r.closeConn(c)
		return
	}
	if !r.flushSessionOut(c) {
		return
	}

	if state == HandshakeComplete {
		c.enter(stateReadingRequest, time.Now())
		r.poller.Modify(c.fd, InterestRead)
		// The final flight may already carry application data.
		if alive := r.pullPlaintext(c); alive {
			r.tryParse(c)
		}
	}
}

// readSocket drains the fd into the connection (or its TLS session).
// Reports whether the connection was closed.
func (r *Reactor) readSocket(c *conn) (gotData, closed bool) {
	for {
		n, err := unix.Read(c.fd, r.tmp[:])
		if n > 0 {
			if c.session != nil {
				c.session.FeedInbound(r.tmp[:n])
			} else {
				c.readBuf = append(c.readBuf, r.tmp[:n]...)
			}
			gotData = true
			continue
		}
		if n == 0 && err == nil {
			r.closeConn(c)
			return gotData, true
		}
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return gotData, false
		}
		if err == unix.EINTR {
			continue
		}
		r.closeConn(c)
		return gotData, true
	}
}

// pullPlaintext moves decrypted bytes from the session into the read
// buffer. Reports whether the connection is still alive.
func (r *Reactor) pullPlaintext(c *conn) bool {
	for {
		n, err := c.session.Read(r.tmp[:])
		if n > 0 {
			c.readBuf = append(c.readBuf, r.tmp[:n]...)
		}
		if err != nil {
			if errors.Is(err, ErrWouldBlock) {
				return true
			}
			r.closeConn(c)
			return false
		}
	}
}

// flushSessionOut writes pending ciphertext to the socket. A short
// write parks the remainder on the connection; the next writable edge
// retries. Reports whether the connection is still alive.
func (r *Reactor) flushSessionOut(c *conn) bool {
	if out := c.session.TakeOutbound(); len(out) > 0 {
		c.tlsPending = append(c.tlsPending, out...)
	}
	for len(c.tlsPending) > 0 {
		n, err := unix.Write(c.fd, c.tlsPending)
		if n > 0 {
			c.tlsPending = c.tlsPending[n:]
			continue
		}
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return true
		}
		if err == unix.EINTR {
			continue
		}
		r.closeConn(c)
		return false
	}
	c.tlsPending = nil
	return true
}

func (r *Reactor) handleRead(c *conn) {
	if _, closed := r.readSocket(c); closed {
		return
	}
	if c.session != nil {
		if alive := r.pullPlaintext(c); !alive {
			return
		}
	}

	sec := r.cfg.Security
	if len(c.readBuf) > sec.MaxHeaderSize+sec.MaxBodySize {
		r.synthesize(c, http.StatusPayloadTooLarge)
		return
	}
	r.tryParse(c)
}

func (r *Reactor) tryParse(c *conn) {
	res := http.ParseRequest(c.readBuf, r.cfg.Security.SizeLimits())
	switch res.Status {
	case http.ParseIncomplete:
		return
	case http.ParseError:
		status := http.StatusBadRequest
		switch res.Err {
		case http.ErrURITooLong:
			status = http.StatusURITooLong
		case http.ErrHeadersTooLarge, http.ErrBodyTooLarge:
			status = http.StatusPayloadTooLarge
		}
		perr := verrors.New("E501").WithDetail(res.Err)
		r.log.Debug(perr.Message, "code", perr.Code, "ip", c.ip, "error", res.Err)
		r.synthesize(c, status)
	case http.ParseComplete:
		c.readBuf = append(c.readBuf[:0], c.readBuf[res.Consumed:]...)
		r.dispatch(c, res.Request)
	}
}

// dispatch applies rate limits, resolves the route, short-circuits
// static files, and hands the request to the worker pool.
func (r *Reactor) dispatch(c *conn, req *http.Request) {
	now := time.Now()
	sec := r.cfg.Security

	if g := sec.GlobalRateLimit; g != nil {
		if !r.limiter.Allow(globalKey(c.ip), g.Requests, g.Window, now) {
			r.metrics.rateLimitRejected()
			r.synthesize(c, http.StatusTooManyRequests)
			return
		}
	}

	match := r.router.Resolve(req.RoutePath, req.Method)

	if rl := match.RateLimit; rl != nil {
		if !r.limiter.Allow(routeKey(c.ip, req.RoutePath), rl.Requests, rl.Window, now) {
			r.metrics.rateLimitRejected()
			r.synthesize(c, http.StatusTooManyRequests)
			return
		}
	}

	keepAlive := req.Headers.KeepAlive()

	if match.IsNotFound && req.Method == http.MethodGet && r.cfg.Static != nil {
		if resp := r.cfg.Static(req.RoutePath); resp != nil {
			if keepAlive {
				resp.Headers.Set("Connection", "keep-alive")
			} else {
				resp.Headers.Set("Connection", "close")
			}
			r.startWrite(c, resp.Serialize(), keepAlive)
			return
		}
	}

	req.Params = match.Params

	j := job{
		fd:         c.fd,
		req:        req,
		handler:    match.Handler,
		metadata:   match.Metadata,
		isNotFound: match.IsNotFound,
		keepAlive:  keepAlive,
		start:      now,
	}
	if !r.pool.submit(j) {
		r.metrics.jobDropped()
		r.synthesize(c, http.StatusServiceUnavailable)
		return
	}

	c.enter(stateProcessing, now)
	// Mute readiness while the worker owns the request; level-triggered
	// polling would spin otherwise.
	r.poller.Modify(c.fd, 0)
}

// attachResult binds a worker's response to its connection, if the
// connection survived.
func (r *Reactor) attachResult(res result) {
	c, ok := r.conns[res.fd]
	if !ok || c.state != stateProcessing {
		return
	}
	r.startWrite(c, res.bytes, res.keepAlive)
}

// synthesize writes an error response and drops keep-alive.
func (r *Reactor) synthesize(c *conn, status http.StatusCode) {
	resp := http.NewResponse(status).
		Text(status.String()).
		Header("Connection", "close")
	r.startWrite(c, resp.Serialize(), false)
}

func (r *Reactor) startWrite(c *conn, payload []byte, keepAlive bool) {
	c.keepAlive = keepAlive
	c.writeOff = 0

	if c.session != nil {
		if _, err := c.session.Write(payload); err != nil {
			r.closeConn(c)
			return
		}
		if !keepAlive {
			c.session.Shutdown()
		}
		c.writeBuf = c.session.TakeOutbound()
	} else {
		c.writeBuf = payload
	}

	c.enter(stateWritingResponse, time.Now())
	r.poller.Modify(c.fd, InterestWrite)
	r.flushWrite(c)
}

// flushWrite writes as much as the socket accepts; on a short write the
// offset advances and the next writable edge retries.
func (r *Reactor) flushWrite(c *conn) {
	for c.writeOff < len(c.writeBuf) {
		n, err := unix.Write(c.fd, c.writeBuf[c.writeOff:])
		if n > 0 {
			c.writeOff += n
			continue
		}
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return
		}
		if err == unix.EINTR {
			continue
		}
		r.closeConn(c)
		return
	}

	// TLS may stage trailing records (close_notify).
	if c.session != nil {
		if more := c.session.TakeOutbound(); len(more) > 0 {
			c.writeBuf = more
			c.writeOff = 0
			r.flushWrite(c)
			return
		}
	}

	if !c.keepAlive {
		r.closeConn(c)
		return
	}

	c.writeBuf = nil
	c.writeOff = 0
	c.enter(stateReadingRequest, time.Now())
	r.poller.Modify(c.fd, InterestRead)
	// A pipelined request may already be buffered.
	if len(c.readBuf) > 0 {
		r.tryParse(c)
	}
}

// pumpSessions advances TLS connections whose driver goroutine produced
// plaintext or handshake progress between socket events.
func (r *Reactor) pumpSessions() {
	var ready []*conn
	for _, c := range r.conns {
		if c.session != nil && (c.state == stateReadingRequest || c.state == stateHandshaking) {
			ready = append(ready, c)
		}
	}
	for _, c := range ready {
		if c.state == stateHandshaking {
			r.driveHandshake(c, Event{})
			continue
		}
		if alive := r.pullPlaintext(c); alive && len(c.readBuf) > 0 {
			r.tryParse(c)
		}
	}
}

// sweep enforces the per-state timeouts.
func (r *Reactor) sweep(now time.Time) {
	sec := r.cfg.Security
	var expired []*conn
	for _, c := range r.conns {
		elapsed := now.Sub(c.stateSince)
		switch c.state {
		case stateHandshaking:
			if elapsed > sec.HandshakeTimeout {
				expired = append(expired, c)
			}
		case stateReadingRequest:
			if len(c.readBuf) == 0 {
				if elapsed > sec.KeepAliveTimeout {
					expired = append(expired, c)
				}
			} else if elapsed > sec.ReadTimeout {
				expired = append(expired, c)
			}
		case stateWritingResponse:
			if elapsed > sec.WriteTimeout {
				expired = append(expired, c)
			}
		case stateDone:
			expired = append(expired, c)
		}
	}
	for _, c := range expired {
		r.closeConn(c)
	}
}

func (r *Reactor) closeConn(c *conn) {
	if _, ok := r.conns[c.fd]; !ok {
		return
	}
	delete(r.conns, c.fd)
	if n := r.perIP[c.ip] - 1; n > 0 {
		r.perIP[c.ip] = n
	} else {
		delete(r.perIP, c.ip)
	}

	r.poller.Deregister(c.fd)
	unix.Close(c.fd)
	if c.session != nil {
		c.session.Free()
	}
	c.state = stateDone
	r.metrics.connClosed()
}

func (r *Reactor) shutdownAll() {
	for _, c := range r.conns {
		r.closeConn(c)
	}
	r.pool.close()
	r.poller.Close()
	unix.Close(r.listener)
	r.log.Info("server stopped")
}

// listenSocket binds a non-blocking listener and returns (fd, port).
func listenSocket(host string, port int) (int, int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return 0, 0, err
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return 0, 0, err
	}
	unix.CloseOnExec(fd)
	unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)

	addr := unix.SockaddrInet4{Port: port}
	if ip := net.ParseIP(host); ip != nil {
		if v4 := ip.To4(); v4 != nil {
			copy(addr.Addr[:], v4)
		}
	}
	if err := unix.Bind(fd, &addr); err != nil {
		unix.Close(fd)
		return 0, 0, err
	}
	if err := unix.Listen(fd, 1024); err != nil {
		unix.Close(fd)
		return 0, 0, err
	}

	bound, err := unix.Getsockname(fd)
	if err != nil {
		unix.Close(fd)
		return 0, 0, err
	}
	if sa, ok := bound.(*unix.SockaddrInet4); ok {
		port = sa.Port
	}
	return fd, port, nil
}

func sockaddrIP(sa unix.Sockaddr) string {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return net.IP(a.Addr[:]).String()
	case *unix.SockaddrInet6:
		return net.IP(a.Addr[:]).String()
	}
	return "unknown"
}
