package reactor

import (
	"time"

	"github.com/volki-dev/volki/pkg/http"
)

// RateLimitSpec caps requests per window for one rate-limit key.
type RateLimitSpec struct {
	Requests int
	Window   time.Duration
}

// SecurityConfig carries the request size caps, connection limits, and
// timeouts enforced by the reactor.
type SecurityConfig struct {
	MaxHeaderSize int
	MaxBodySize   int
	MaxURILength  int

	MaxConnections      int
	MaxConnectionsPerIP int

	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	KeepAliveTimeout time.Duration
	HandshakeTimeout time.Duration

	// GlobalRateLimit applies per client IP across all routes. Nil
	// disables the global limit; per-route limits still apply.
	GlobalRateLimit *RateLimitSpec
}

// DefaultSecurityConfig returns the server defaults: 8KB headers, 10MB
// bodies, 8KB URIs, 1024 connections (64 per IP), 30s read/write, 60s
// keep-alive idle, 10s TLS handshake.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		MaxHeaderSize:       8 * 1024,
		MaxBodySize:         10 * 1024 * 1024,
		MaxURILength:        8192,
		MaxConnections:      1024,
		MaxConnectionsPerIP: 64,
		ReadTimeout:         30 * time.Second,
		WriteTimeout:        30 * time.Second,
		KeepAliveTimeout:    60 * time.Second,
		HandshakeTimeout:    10 * time.Second,
	}
}

// SizeLimits converts the config's caps into the parser's shape.
func (c SecurityConfig) SizeLimits() http.SizeLimits {
	return http.SizeLimits{
		MaxHeaderSize: c.MaxHeaderSize,
		MaxBodySize:   c.MaxBodySize,
		MaxURILength:  c.MaxURILength,
	}
}
