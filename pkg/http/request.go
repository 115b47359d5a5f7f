package http

import "strings"

// Request is a fully parsed HTTP/1.1 request.
type Request struct {
	Method      Method
	Path        string
	RoutePath   string
	QueryString string
	Headers     *Headers
	Body        []byte

	// Params holds path parameters filled in by the router.
	Params map[string]string
}

// NewRequest builds a Request, splitting the raw path into route path and
// query string.
func NewRequest(method Method, path string, headers *Headers, body []byte) *Request {
	routePath, query := splitPathQuery(path)
	return &Request{
		Method:      method,
		Path:        path,
		RoutePath:   routePath,
		QueryString: query,
		Headers:     headers,
		Body:        body,
		Params:      map[string]string{},
	}
}

// Param returns a path parameter captured by the router.
func (r *Request) Param(name string) (string, bool) {
	v, ok := r.Params[name]
	return v, ok
}

// QueryParam is one key=value pair from the query string.
type QueryParam struct {
	Key   string
	Value string
}

// QueryParams splits the query string on '&' and '='. Keys without '='
// get an empty value.
func (r *Request) QueryParams() []QueryParam {
	if r.QueryString == "" {
		return nil
	}
	var out []QueryParam
	for _, pair := range strings.Split(r.QueryString, "&") {
		if pair == "" {
			continue
		}
		if eq := strings.IndexByte(pair, '='); eq >= 0 {
			out = append(out, QueryParam{Key: pair[:eq], Value: pair[eq+1:]})
		} else {
			out = append(out, QueryParam{Key: pair})
		}
	}
	return out
}

// ContentType returns the Content-Type header, if set.
func (r *Request) ContentType() (string, bool) {
	return r.Headers.Get("content-type")
}

func splitPathQuery(path string) (string, string) {
	if pos := strings.IndexByte(path, '?'); pos >= 0 {
		return path[:pos], path[pos+1:]
	}
	return path, ""
}
