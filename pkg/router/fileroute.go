package router

import "github.com/volki-dev/volki/pkg/http"

// FileRoute bundles typed HTTP method handlers for one path, mirroring
// the route-file convention: declare get/post/put/patch/delete/head and
// they are dispatched by method. Undeclared methods resolve to a 405
// handler; HEAD falls back to GET.
type FileRoute struct {
	get      Handler
	post     Handler
	put      Handler
	patch    Handler
	delete   Handler
	head     Handler
	metadata MetadataFunc
}

// NewFileRoute returns an empty per-method bundle.
func NewFileRoute() *FileRoute {
	return &FileRoute{}
}

func (f *FileRoute) Get(h Handler) *FileRoute    { f.get = h; return f }
func (f *FileRoute) Post(h Handler) *FileRoute   { f.post = h; return f }
func (f *FileRoute) Put(h Handler) *FileRoute    { f.put = h; return f }
func (f *FileRoute) Patch(h Handler) *FileRoute  { f.patch = h; return f }
func (f *FileRoute) Delete(h Handler) *FileRoute { f.delete = h; return f }
func (f *FileRoute) Head(h Handler) *FileRoute   { f.head = h; return f }

// Metadata attaches a metadata function to the bundle.
func (f *FileRoute) Metadata(m MetadataFunc) *FileRoute {
	f.metadata = m
	return f
}

// Resolve returns the handler for the method, or the 405 handler.
func (f *FileRoute) Resolve(method http.Method) Handler {
	var h Handler
	switch method {
	case http.MethodGet:
		h = f.get
	case http.MethodPost:
		h = f.post
	case http.MethodPut:
		h = f.put
	case http.MethodPatch:
		h = f.patch
	case http.MethodDelete:
		h = f.delete
	case http.MethodHead:
		h = f.head
		if h == nil {
			h = f.get
		}
	}
	if h == nil {
		return MethodNotAllowed
	}
	return h
}

// HasAny reports whether at least one method handler is defined.
func (f *FileRoute) HasAny() bool {
	return f.get != nil || f.post != nil || f.put != nil ||
		f.patch != nil || f.delete != nil || f.head != nil
}

// MethodNotAllowed is the shared 405 handler.
func MethodNotAllowed(_ *http.Request) *http.Response {
	return http.NewResponse(http.StatusMethodNotAllowed).Text("405 Method Not Allowed")
}
