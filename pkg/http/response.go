package http

import "strconv"

// Response is an HTTP response under construction.
type Response struct {
	Status  StatusCode
	Headers *Headers
	Body    []byte
}

// NewResponse starts a response with the given status.
func NewResponse(status StatusCode) *Response {
	return &Response{Status: status, Headers: NewHeaders()}
}

// OK starts a 200 response.
func OK() *Response {
	return NewResponse(StatusOK)
}

// NotFoundResponse is the canonical plain-text 404.
func NotFoundResponse() *Response {
	return NewResponse(StatusNotFound).Text("404 Not Found")
}

// InternalErrorResponse is the canonical plain-text 500.
func InternalErrorResponse() *Response {
	return NewResponse(StatusInternalServerError).Text("500 Internal Server Error")
}

// Header sets a header and returns the response for chaining.
func (r *Response) Header(name, value string) *Response {
	r.Headers.Set(name, value)
	return r
}

// HTML sets an HTML body.
func (r *Response) HTML(html string) *Response {
	r.Headers.Set("Content-Type", "text/html; charset=utf-8")
	r.Body = []byte(html)
	return r
}

// JSON sets a JSON body from pre-encoded text.
func (r *Response) JSON(json string) *Response {
	r.Headers.Set("Content-Type", "application/json")
	r.Body = []byte(json)
	return r
}

// Text sets a plain-text body.
func (r *Response) Text(text string) *Response {
	r.Headers.Set("Content-Type", "text/plain; charset=utf-8")
	r.Body = []byte(text)
	return r
}

// Bytes sets a raw body without touching Content-Type.
func (r *Response) Bytes(b []byte) *Response {
	r.Body = append([]byte(nil), b...)
	return r
}

// Redirect turns the response into a 302 to location.
func (r *Response) Redirect(location string) *Response {
	r.Status = StatusFound
	r.Headers.Set("Location", location)
	return r
}

// Serialize renders the full HTTP/1.1 response. Content-Length is set
// automatically unless already present.
func (r *Response) Serialize() []byte {
	buf := make([]byte, 0, 256+len(r.Body))

	buf = append(buf, "HTTP/1.1 "...)
	buf = strconv.AppendUint(buf, uint64(r.Status.Code()), 10)
	buf = append(buf, ' ')
	buf = append(buf, r.Status.ReasonPhrase()...)
	buf = append(buf, "\r\n"...)

	_, hasLen := r.Headers.Get("content-length")
	buf = r.Headers.WriteTo(buf)
	if !hasLen {
		buf = append(buf, "Content-Length: "...)
		buf = strconv.AppendInt(buf, int64(len(r.Body)), 10)
		buf = append(buf, "\r\n"...)
	}

	buf = append(buf, "\r\n"...)
	buf = append(buf, r.Body...)
	return buf
}
