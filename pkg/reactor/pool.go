package reactor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	verrors "github.com/volki-dev/volki/internal/errors"
	"github.com/volki-dev/volki/pkg/html"
	"github.com/volki-dev/volki/pkg/http"
	"github.com/volki-dev/volki/pkg/router"
)

const tracerName = "volki"

// job is one parsed request handed to the pool. The reactor does not
// touch the connection again until the matching result comes back.
type job struct {
	fd         int
	req        *http.Request
	handler    router.MatchedHandler
	metadata   router.MetadataFunc
	isNotFound bool
	keepAlive  bool
	start      time.Time
}

// result is a serialized response ready to attach to a connection. The
// reactor discards it if the connection is already gone.
type result struct {
	fd        int
	bytes     []byte
	keepAlive bool
}

// workerPool runs handlers on a fixed set of goroutines. Jobs flow in
// through a bounded queue; serialized responses flow back through the
// result queue, drained by the reactor every loop iteration.
type workerPool struct {
	jobs    chan job
	results chan result
	tracer  trace.Tracer
	log     *slog.Logger
	metrics *Metrics
	wg      sync.WaitGroup
}

func newWorkerPool(workers, queueCap int, log *slog.Logger, metrics *Metrics) *workerPool {
	p := &workerPool{
		jobs:    make(chan job, queueCap),
		results: make(chan result, queueCap+workers),
		tracer:  otel.Tracer(tracerName),
		log:     log,
		metrics: metrics,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

// submit enqueues without blocking. A full queue returns false; the
// reactor answers 503.
func (p *workerPool) submit(j job) bool {
	select {
	case p.jobs <- j:
		return true
	default:
		return false
	}
}

// drain hands every pending result to fn without blocking.
func (p *workerPool) drain(fn func(result)) {
	for {
		select {
		case res := <-p.results:
			fn(res)
		default:
			return
		}
	}
}

func (p *workerPool) close() {
	close(p.jobs)
	p.wg.Wait()
}

func (p *workerPool) run() {
	defer p.wg.Done()
	for j := range p.jobs {
		p.results <- p.execute(j)
	}
}

// execute runs the handler, injects metadata into HTML pages, and
// serializes the response. Panics surface as a 500 with the connection
// closed.
func (p *workerPool) execute(j job) (res result) {
	path := j.req.RoutePath

	_, span := p.tracer.Start(context.Background(), "volki "+path,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.method", j.req.Method.String()),
			attribute.String("http.route", path),
		),
	)
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			span.RecordError(fmt.Errorf("panic: %v", r))
			span.SetStatus(codes.Error, fmt.Sprint(r))
			perr := verrors.New("E502")
			p.log.Error(perr.Message, "code", perr.Code, "path", path, "panic", r)
			resp := http.InternalErrorResponse().Header("Connection", "close")
			res = result{fd: j.fd, bytes: resp.Serialize(), keepAlive: false}
		}
	}()

	resp := p.buildResponse(j)

	keepAlive := j.keepAlive
	if resp.Status >= 500 {
		keepAlive = false
	}
	if keepAlive {
		resp.Headers.Set("Connection", "keep-alive")
	} else {
		resp.Headers.Set("Connection", "close")
	}

	duration := time.Since(j.start)
	span.SetAttributes(attribute.Int("http.status_code", int(resp.Status.Code())))
	span.SetStatus(codes.Ok, "")
	p.metrics.observeRequest(path, resp.Status.Code(), duration.Seconds())
	p.log.Info("request",
		"method", j.req.Method.String(),
		"path", path,
		"status", resp.Status.Code(),
		"duration", duration,
	)

	return result{fd: j.fd, bytes: resp.Serialize(), keepAlive: keepAlive}
}

func (p *workerPool) buildResponse(j job) *http.Response {
	if j.handler.IsPage() {
		doc := j.handler.Page(j.req)
		status := http.StatusOK
		if j.isNotFound {
			status = http.StatusNotFound
		}
		resp := http.NewResponse(status).HTML(doc.Render())
		if j.metadata != nil {
			resp.Body = html.InjectMetadata(resp.Body, j.metadata(j.req))
		}
		return resp
	}

	resp := j.handler.Handler(j.req)
	if j.metadata != nil {
		if ct, ok := resp.Headers.Get("content-type"); ok && html.IsHTMLContentType(ct) {
			resp.Body = html.InjectMetadata(resp.Body, j.metadata(j.req))
		}
	}
	return resp
}
