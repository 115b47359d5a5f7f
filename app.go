package volki

import (
	"log/slog"

	"github.com/volki-dev/volki/internal/config"
	"github.com/volki-dev/volki/internal/errors"
	"github.com/volki-dev/volki/pkg/reactor"
	"github.com/volki-dev/volki/pkg/router"
)

// App wires routes, configuration, and the reactor together. Builder
// methods return the App for chaining; Listen runs the event loop on
// the calling goroutine.
type App struct {
	cfg     config.Config
	router  *router.Router
	logger  *slog.Logger
	metrics *reactor.Metrics
	static  reactor.StaticResolver

	reactor *reactor.Reactor
	err     error
}

// New returns an App with built-in defaults.
func New() *App {
	return &App{
		cfg:    config.Default(),
		router: router.New(),
	}
}

// NewFromConfig returns an App configured from dir/volki.toml. A decode
// error is deferred to Listen so registration chains stay uncluttered.
func NewFromConfig(dir string) *App {
	app := New()
	app.cfg, app.err = config.LoadDir(dir)
	return app
}

// Host sets the bind address.
func (a *App) Host(host string) *App {
	a.cfg.Server.Host = host
	return a
}

// Port sets the listen port. Zero picks a free port.
func (a *App) Port(port int) *App {
	a.cfg.Server.Port = port
	return a
}

// PublicDir sets the static file directory served for unrouted GETs.
func (a *App) PublicDir(dir string) *App {
	a.cfg.Server.PublicDir = dir
	return a
}

// Workers sets the handler pool size. Zero means one per CPU.
func (a *App) Workers(n int) *App {
	a.cfg.Server.Workers = n
	return a
}

// TLS enables HTTPS with the given certificate pair.
func (a *App) TLS(certFile, keyFile string) *App {
	a.cfg.Server.TLSCert = certFile
	a.cfg.Server.TLSKey = keyFile
	return a
}

// Logger sets the structured logger. Defaults to slog.Default.
func (a *App) Logger(l *slog.Logger) *App {
	a.logger = l
	return a
}

// Metrics attaches Prometheus instruments to the reactor.
func (a *App) Metrics(m *reactor.Metrics) *App {
	a.metrics = m
	return a
}

// Static overrides the file resolver; PublicDir is ignored when set.
func (a *App) Static(resolver reactor.StaticResolver) *App {
	a.static = resolver
	return a
}

// Page registers a GET page rendering an HTML document.
func (a *App) Page(path string, h PageHandler) *App {
	a.router.InsertPage(path, h)
	return a
}

// PageWithMetadata registers a page plus a per-request metadata
// function injected into its head.
func (a *App) PageWithMetadata(path string, h PageHandler, meta MetadataFunc) *App {
	a.router.InsertPageWithMetadata(path, h, meta)
	return a
}

// Api registers a handler for all methods at path.
func (a *App) Api(path string, h Handler) *App {
	a.router.Insert(path, h, true)
	return a
}

// ApiWithRateLimit registers a handler with a per-route rate limit.
func (a *App) ApiWithRateLimit(path string, h Handler, rl RateLimit) *App {
	a.router.InsertWithRateLimit(path, h, true, router.RateLimit{
		Requests: rl.Requests,
		Window:   rl.Window,
	})
	return a
}

// Route registers a per-method file route bundle.
func (a *App) Route(path string, fr *FileRoute) *App {
	a.router.InsertFileRoute(path, fr, true)
	return a
}

// NotFoundPage sets the page rendered with a 404 status when no route
// matches.
func (a *App) NotFoundPage(h PageHandler) *App {
	a.router.SetNotFound(h)
	return a
}

// Router exposes the route table, for generated registration code.
func (a *App) Router() *router.Router { return a.router }

// Listen binds the socket and runs the event loop until Shutdown.
func (a *App) Listen() error {
	if a.err != nil {
		return a.err
	}

	static := a.static
	if static == nil && a.cfg.Server.PublicDir != "" {
		static = StaticResolver(a.cfg.Server.PublicDir)
	}

	var tls reactor.SessionFactory
	cert, key := a.cfg.Server.TLSCert, a.cfg.Server.TLSKey
	if cert != "" || key != "" {
		if cert == "" || key == "" {
			return errors.New("E402")
		}
		ctx, err := reactor.NewTLSContext(cert, key)
		if err != nil {
			return errors.New("E402").Wrap(err)
		}
		tls = ctx
	}

	a.reactor = reactor.New(a.router, reactor.Config{
		Host:          a.cfg.Server.Host,
		Port:          a.cfg.Server.Port,
		Security:      a.cfg.ReactorSecurity(),
		Workers:       a.cfg.Server.Workers,
		QueueCapacity: a.cfg.Server.QueueCapacity,
		TLS:           tls,
		Static:        static,
		Logger:        a.logger,
		Metrics:       a.metrics,
	})
	return a.reactor.Listen()
}

// Shutdown stops a running Listen.
func (a *App) Shutdown() {
	if a.reactor != nil {
		a.reactor.Shutdown()
	}
}
