// Package volki is the public surface of the Volki application server:
// an event-loop HTTP server with a trie router, utility-CSS and RSX
// compilers, and static file serving.
//
// A minimal application:
//
//	app := volki.New().
//		Host("0.0.0.0").
//		Port(8080).
//		PublicDir("public").
//		Page("/", home).
//		Api("/api/health", health)
//	if err := app.Listen(); err != nil {
//		log.Fatal(err)
//	}
package volki

import (
	"time"

	"github.com/volki-dev/volki/pkg/html"
	"github.com/volki-dev/volki/pkg/http"
	"github.com/volki-dev/volki/pkg/router"
)

// Request is a parsed HTTP request.
type Request = http.Request

// Response is an HTTP response under construction.
type Response = http.Response

// Document is a server-rendered HTML document.
type Document = html.Document

// Metadata describes head tags injected into a page response.
type Metadata = html.Metadata

// Handler serves an API request.
type Handler = router.Handler

// PageHandler renders a page document for a GET.
type PageHandler = router.PageHandler

// MetadataFunc produces per-request page metadata.
type MetadataFunc = router.MetadataFunc

// FileRoute bundles per-method handlers for one path.
type FileRoute = router.FileRoute

// NewFileRoute returns an empty per-method bundle.
func NewFileRoute() *FileRoute { return router.NewFileRoute() }

// NewDocument starts an empty HTML document.
func NewDocument() *Document { return html.NewDocument() }

// OK starts a 200 response.
func OK() *Response { return http.OK() }

// NewResponse starts a response with the given status.
func NewResponse(status http.StatusCode) *Response { return http.NewResponse(status) }

// RateLimit caps requests per window on one route.
type RateLimit struct {
	Requests int
	Window   time.Duration
}
