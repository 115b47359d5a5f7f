package volki

import "github.com/volki-dev/volki/pkg/http"

// Health answers {"status":"ok"}; register it wherever the deployment
// probes.
func Health(*Request) *Response {
	return http.OK().JSON(`{"status":"ok"}`)
}

// RedirectHandler answers every request with a 302 to location.
func RedirectHandler(location string) Handler {
	return func(*Request) *Response {
		return http.OK().Redirect(location)
	}
}

// ServeBytes serves a fixed payload with the given content type.
func ServeBytes(contentType string, data []byte) Handler {
	return func(*Request) *Response {
		return http.OK().
			Header("Content-Type", contentType).
			Bytes(data)
	}
}
