package http

import (
	"strconv"
	"strings"
)

// Headers is an order-preserving, case-insensitive header map.
type Headers struct {
	entries []headerEntry
}

type headerEntry struct {
	name  string
	value string
}

// NewHeaders returns an empty header map.
func NewHeaders() *Headers {
	return &Headers{}
}

// Get returns the first value for name, matched case-insensitively.
func (h *Headers) Get(name string) (string, bool) {
	for _, e := range h.entries {
		if strings.EqualFold(e.name, name) {
			return e.value, true
		}
	}
	return "", false
}

// Set replaces the value of an existing header or appends a new one.
func (h *Headers) Set(name, value string) {
	for i := range h.entries {
		if strings.EqualFold(h.entries[i].name, name) {
			h.entries[i].value = value
			return
		}
	}
	h.entries = append(h.entries, headerEntry{name: name, value: value})
}

// Append adds a header without replacing existing entries.
func (h *Headers) Append(name, value string) {
	h.entries = append(h.entries, headerEntry{name: name, value: value})
}

// Len returns the number of header entries.
func (h *Headers) Len() int { return len(h.entries) }

// Each calls fn for every header in insertion order.
func (h *Headers) Each(fn func(name, value string)) {
	for _, e := range h.entries {
		fn(e.name, e.value)
	}
}

// ContentLength parses the Content-Length header, if present and numeric.
func (h *Headers) ContentLength() (int, bool) {
	v, ok := h.Get("content-length")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// KeepAlive reports whether the connection should stay open after the
// response. Absent Connection headers default to keep-alive (HTTP/1.1).
func (h *Headers) KeepAlive() bool {
	v, ok := h.Get("connection")
	if !ok {
		return true
	}
	return !strings.EqualFold(v, "close")
}

// WriteTo serializes all headers as CRLF-terminated lines into buf.
func (h *Headers) WriteTo(buf []byte) []byte {
	for _, e := range h.entries {
		buf = append(buf, e.name...)
		buf = append(buf, ": "...)
		buf = append(buf, e.value...)
		buf = append(buf, "\r\n"...)
	}
	return buf
}
