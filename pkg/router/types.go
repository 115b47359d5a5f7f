// Package router is a prefix trie over path segments with dynamic and
// catch-all slots. It holds page handlers, per-method API bundles,
// metadata functions, and per-route rate-limit parameters; the reactor
// resolves every request through it before dispatching to the worker pool.
package router

import (
	"time"

	"github.com/volki-dev/volki/pkg/html"
	"github.com/volki-dev/volki/pkg/http"
)

// Handler serves an API request.
type Handler func(*http.Request) *http.Response

// PageHandler renders a full HTML document for a GET page.
type PageHandler func(*http.Request) *html.Document

// MetadataFunc produces per-request page metadata, injected into HTML
// responses by the worker pool.
type MetadataFunc func(*http.Request) html.Metadata

// RateLimit caps requests per window on a single route.
type RateLimit struct {
	Requests int
	Window   time.Duration
}

// MatchedHandler is the resolved binding for a matched route: exactly one
// of the fields is set.
type MatchedHandler struct {
	Handler Handler
	Page    PageHandler
}

// IsPage reports whether the match resolved to a page handler.
func (m MatchedHandler) IsPage() bool { return m.Page != nil }

// Match is the result of resolving a path and method.
type Match struct {
	Handler    MatchedHandler
	Params     map[string]string
	IsAPI      bool
	Metadata   MetadataFunc
	IsNotFound bool
	RateLimit  *RateLimit
}
