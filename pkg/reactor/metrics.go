package reactor

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the reactor's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "volki").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the reactor's Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "volki",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the reactor's Prometheus instruments.
type Metrics struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	openConnections   prometheus.Gauge
	rateLimited       prometheus.Counter
	handshakeFailures prometheus.Counter
	queueDropped      prometheus.Counter
}

// NewMetrics registers the reactor metrics:
//   - volki_requests_total: counter of responses by status
//   - volki_request_duration_seconds: histogram by route path
//   - volki_open_connections: gauge of live connections
//   - volki_rate_limited_total: counter of 429 rejections
//   - volki_handshake_failures_total: counter of failed TLS handshakes
//   - volki_queue_dropped_total: counter of 503s from a full job queue
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_total",
			Help:        "Total number of HTTP responses written",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "Handler execution duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"path"}),

		openConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "open_connections",
			Help:        "Number of live connections",
			ConstLabels: config.ConstLabels,
		}),

		rateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "rate_limited_total",
			Help:        "Total requests rejected with 429",
			ConstLabels: config.ConstLabels,
		}),

		handshakeFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "handshake_failures_total",
			Help:        "Total failed TLS handshakes",
			ConstLabels: config.ConstLabels,
		}),

		queueDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "queue_dropped_total",
			Help:        "Total jobs dropped because the worker queue was full",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) observeRequest(path string, status uint16, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(strconv.Itoa(int(status))).Inc()
	m.requestDuration.WithLabelValues(path).Observe(seconds)
}

func (m *Metrics) connOpened() {
	if m != nil {
		m.openConnections.Inc()
	}
}

func (m *Metrics) connClosed() {
	if m != nil {
		m.openConnections.Dec()
	}
}

func (m *Metrics) rateLimitRejected() {
	if m != nil {
		m.rateLimited.Inc()
	}
}

func (m *Metrics) handshakeFailed() {
	if m != nil {
		m.handshakeFailures.Inc()
	}
}

func (m *Metrics) jobDropped() {
	if m != nil {
		m.queueDropped.Inc()
	}
}
