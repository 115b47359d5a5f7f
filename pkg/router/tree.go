package router

import (
	"strings"

	"github.com/volki-dev/volki/pkg/http"
)

// binding is the terminal payload of a trie node: exactly one field set.
type binding struct {
	handler   Handler
	page      PageHandler
	fileRoute *FileRoute
}

func (b *binding) resolve(method http.Method) MatchedHandler {
	switch {
	case b.handler != nil:
		return MatchedHandler{Handler: b.handler}
	case b.page != nil:
		return MatchedHandler{Page: b.page}
	case b.fileRoute != nil:
		return MatchedHandler{Handler: b.fileRoute.Resolve(method)}
	}
	return MatchedHandler{}
}

type node struct {
	binding   *binding
	metadata  MetadataFunc
	isAPI     bool
	rateLimit *RateLimit

	staticChildren map[string]*node
	dynamicName    string
	dynamicChild   *node
	catchAll       *catchAllEntry
}

// catchAll terminates matching: it consumes every remaining segment, so
// it needs no subtree.
type catchAllEntry struct {
	name     string
	binding  *binding
	isAPI    bool
	metadata MetadataFunc
}

func newNode() *node {
	return &node{staticChildren: map[string]*node{}}
}

func (n *node) insert(segments []segment, b *binding, isAPI bool, meta MetadataFunc, rl *RateLimit) {
	if len(segments) == 0 {
		n.binding = b
		n.metadata = meta
		n.isAPI = isAPI
		n.rateLimit = rl
		return
	}
	seg := segments[0]
	switch seg.kind {
	case segStatic:
		child, ok := n.staticChildren[seg.name]
		if !ok {
			child = newNode()
			n.staticChildren[seg.name] = child
		}
		child.insert(segments[1:], b, isAPI, meta, rl)
	case segDynamic:
		if n.dynamicChild == nil {
			n.dynamicName = seg.name
			n.dynamicChild = newNode()
		}
		n.dynamicChild.insert(segments[1:], b, isAPI, meta, rl)
	case segCatchAll:
		n.catchAll = &catchAllEntry{name: seg.name, binding: b, isAPI: isAPI, metadata: meta}
	}
}

// match walks the trie: static child first, then the dynamic child with
// backtracking, then the catch-all.
func (n *node) match(segments []string, params map[string]string, method http.Method) *Match {
	if len(segments) == 0 {
		if n.binding == nil {
			return nil
		}
		return &Match{
			Handler:   n.binding.resolve(method),
			Params:    copyParams(params),
			IsAPI:     n.isAPI,
			Metadata:  n.metadata,
			RateLimit: n.rateLimit,
		}
	}

	seg := segments[0]

	if child, ok := n.staticChildren[seg]; ok {
		if m := child.match(segments[1:], params, method); m != nil {
			return m
		}
	}

	if n.dynamicChild != nil {
		params[n.dynamicName] = seg
		if m := n.dynamicChild.match(segments[1:], params, method); m != nil {
			return m
		}
		delete(params, n.dynamicName)
	}

	if n.catchAll != nil {
		params[n.catchAll.name] = strings.Join(segments, "/")
		return &Match{
			Handler:  n.catchAll.binding.resolve(method),
			Params:   copyParams(params),
			IsAPI:    n.catchAll.isAPI,
			Metadata: n.catchAll.metadata,
		}
	}

	return nil
}

func copyParams(params map[string]string) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}

// Router is the route table shared immutably with workers after start.
type Router struct {
	root     *node
	notFound PageHandler
}

// New returns an empty router.
func New() *Router {
	return &Router{root: newNode()}
}

// Insert registers a plain handler at pattern.
func (r *Router) Insert(pattern string, h Handler, isAPI bool) {
	r.root.insert(parsePattern(pattern), &binding{handler: h}, isAPI, nil, nil)
}

// InsertWithRateLimit registers a handler with a per-route rate limit.
func (r *Router) InsertWithRateLimit(pattern string, h Handler, isAPI bool, rl RateLimit) {
	r.root.insert(parsePattern(pattern), &binding{handler: h}, isAPI, nil, &rl)
}

// InsertPage registers a page handler at pattern.
func (r *Router) InsertPage(pattern string, h PageHandler) {
	r.root.insert(parsePattern(pattern), &binding{page: h}, false, nil, nil)
}

// InsertPageWithMetadata registers a page handler plus metadata function.
func (r *Router) InsertPageWithMetadata(pattern string, h PageHandler, meta MetadataFunc) {
	r.root.insert(parsePattern(pattern), &binding{page: h}, false, meta, nil)
}

// InsertFileRoute registers a per-method bundle at pattern.
func (r *Router) InsertFileRoute(pattern string, fr *FileRoute, isAPI bool) {
	r.root.insert(parsePattern(pattern), &binding{fileRoute: fr}, isAPI, fr.metadata, nil)
}

// SetNotFound registers the custom 404 page rendered when no route
// matches.
func (r *Router) SetNotFound(h PageHandler) {
	r.notFound = h
}

// Resolve matches path and method. When nothing matches, the result is
// the registered not-found page (or the built-in plain 404) with
// IsNotFound set.
func (r *Router) Resolve(path string, method http.Method) *Match {
	if m := r.root.match(splitPath(path), map[string]string{}, method); m != nil {
		return m
	}
	if r.notFound != nil {
		return &Match{
			Handler:    MatchedHandler{Page: r.notFound},
			Params:     map[string]string{},
			IsNotFound: true,
		}
	}
	return &Match{
		Handler:    MatchedHandler{Handler: defaultNotFound},
		Params:     map[string]string{},
		IsNotFound: true,
	}
}

func defaultNotFound(_ *http.Request) *http.Response {
	return http.NotFoundResponse()
}
