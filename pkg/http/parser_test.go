package http

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseSimpleGet(t *testing.T) {
	raw := []byte("GET /hello HTTP/1.1\r\nHost: localhost\r\n\r\n")
	res := ParseRequest(raw, DefaultSizeLimits())
	if res.Status != ParseComplete {
		t.Fatalf("status = %v, want complete", res.Status)
	}
	if res.Request.Method != MethodGet {
		t.Errorf("method = %v", res.Request.Method)
	}
	if res.Request.RoutePath != "/hello" {
		t.Errorf("route path = %q", res.Request.RoutePath)
	}
	if res.Consumed != len(raw) {
		t.Errorf("consumed = %d, want %d", res.Consumed, len(raw))
	}
	if host, _ := res.Request.Headers.Get("host"); host != "localhost" {
		t.Errorf("host = %q", host)
	}
}

func TestParseWithBody(t *testing.T) {
	raw := []byte("POST /data HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello")
	res := ParseRequest(raw, DefaultSizeLimits())
	if res.Status != ParseComplete {
		t.Fatalf("status = %v, want complete", res.Status)
	}
	if res.Request.Method != MethodPost {
		t.Errorf("method = %v", res.Request.Method)
	}
	if !bytes.Equal(res.Request.Body, []byte("hello")) {
		t.Errorf("body = %q", res.Request.Body)
	}
	if res.Consumed != len(raw) {
		t.Errorf("consumed = %d", res.Consumed)
	}
}

func TestParseIncompleteHeaders(t *testing.T) {
	raw := []byte("GET /hello HTTP/1.1\r\nHost: local")
	res := ParseRequest(raw, DefaultSizeLimits())
	if res.Status != ParseIncomplete {
		t.Fatalf("status = %v, want incomplete", res.Status)
	}
}

func TestParseIncompleteBody(t *testing.T) {
	raw := []byte("POST /data HTTP/1.1\r\nContent-Length: 10\r\n\r\nhel")
	res := ParseRequest(raw, DefaultSizeLimits())
	if res.Status != ParseIncomplete {
		t.Fatalf("status = %v, want incomplete", res.Status)
	}
}

func TestParseQueryString(t *testing.T) {
	raw := []byte("GET /search?q=go&page=1 HTTP/1.1\r\nHost: localhost\r\n\r\n")
	res := ParseRequest(raw, DefaultSizeLimits())
	if res.Status != ParseComplete {
		t.Fatalf("status = %v, want complete", res.Status)
	}
	req := res.Request
	if req.RoutePath != "/search" {
		t.Errorf("route path = %q", req.RoutePath)
	}
	if req.QueryString != "q=go&page=1" {
		t.Errorf("query = %q", req.QueryString)
	}
	params := req.QueryParams()
	if len(params) != 2 || params[0].Key != "q" || params[0].Value != "go" {
		t.Errorf("params = %+v", params)
	}
}

func TestParseMalformed(t *testing.T) {
	res := ParseRequest([]byte("INVALID\r\n\r\n"), DefaultSizeLimits())
	if res.Status != ParseError {
		t.Fatalf("status = %v, want error", res.Status)
	}
	if res.Err != ErrMalformed {
		t.Errorf("err = %q", res.Err)
	}
}

func TestParseURITooLong(t *testing.T) {
	limits := DefaultSizeLimits()
	limits.MaxURILength = 10
	raw := []byte("GET /this-is-a-very-long-uri-path HTTP/1.1\r\nHost: x\r\n\r\n")
	res := ParseRequest(raw, limits)
	if res.Status != ParseError || res.Err != ErrURITooLong {
		t.Fatalf("result = %+v, want URI too long", res)
	}
}

func TestParseHeadersTooLarge(t *testing.T) {
	limits := DefaultSizeLimits()
	limits.MaxHeaderSize = 16
	raw := []byte("GET / HTTP/1.1\r\nX-Padding: " + strings.Repeat("a", 64) + "\r\n\r\n")
	res := ParseRequest(raw, limits)
	if res.Status != ParseError || res.Err != ErrHeadersTooLarge {
		t.Fatalf("result = %+v, want headers too large", res)
	}
}

func TestParseBodyTooLarge(t *testing.T) {
	limits := DefaultSizeLimits()
	limits.MaxBodySize = 4
	raw := []byte("POST / HTTP/1.1\r\nContent-Length: 50\r\n\r\n")
	res := ParseRequest(raw, limits)
	if res.Status != ParseError || res.Err != ErrBodyTooLarge {
		t.Fatalf("result = %+v, want body too large", res)
	}
}

func TestHeadersCaseInsensitive(t *testing.T) {
	h := NewHeaders()
	h.Set("Content-Type", "text/html")
	if v, _ := h.Get("content-type"); v != "text/html" {
		t.Errorf("get = %q", v)
	}
	if v, _ := h.Get("CONTENT-TYPE"); v != "text/html" {
		t.Errorf("get = %q", v)
	}
	h.Set("content-TYPE", "application/json")
	if v, _ := h.Get("Content-Type"); v != "application/json" {
		t.Errorf("set should overwrite, got %q", v)
	}
	if h.Len() != 1 {
		t.Errorf("len = %d", h.Len())
	}
}

func TestKeepAliveDefault(t *testing.T) {
	h := NewHeaders()
	if !h.KeepAlive() {
		t.Error("absent Connection header should keep alive")
	}
	h.Set("Connection", "close")
	if h.KeepAlive() {
		t.Error("Connection: close should not keep alive")
	}
	h.Set("Connection", "Keep-Alive")
	if !h.KeepAlive() {
		t.Error("Connection: Keep-Alive should keep alive")
	}
}

func TestResponseSerialize(t *testing.T) {
	resp := OK().Text("hello")
	s := string(resp.Serialize())
	if !strings.HasPrefix(s, "HTTP/1.1 200 OK\r\n") {
		t.Errorf("serialized = %q", s)
	}
	if !strings.Contains(s, "Content-Type: text/plain") {
		t.Errorf("missing content type: %q", s)
	}
	if !strings.Contains(s, "Content-Length: 5") {
		t.Errorf("missing content length: %q", s)
	}
	if !strings.HasSuffix(s, "hello") {
		t.Errorf("missing body: %q", s)
	}
}

func TestResponseExplicitContentLength(t *testing.T) {
	resp := OK().Header("Content-Length", "0")
	s := string(resp.Serialize())
	if strings.Count(s, "Content-Length") != 1 {
		t.Errorf("duplicate Content-Length: %q", s)
	}
}

func TestResponseRedirect(t *testing.T) {
	resp := OK().Redirect("/login")
	if resp.Status != StatusFound {
		t.Errorf("status = %v", resp.Status)
	}
	if loc, _ := resp.Headers.Get("Location"); loc != "/login" {
		t.Errorf("location = %q", loc)
	}
}

func TestStatusReasonPhrases(t *testing.T) {
	cases := map[StatusCode]string{
		StatusOK:                  "OK",
		StatusNotFound:            "Not Found",
		StatusTooManyRequests:     "Too Many Requests",
		StatusPayloadTooLarge:     "Payload Too Large",
		StatusURITooLong:          "URI Too Long",
		StatusInternalServerError: "Internal Server Error",
	}
	for code, want := range cases {
		if got := code.ReasonPhrase(); got != want {
			t.Errorf("%d reason = %q, want %q", code, got, want)
		}
	}
	if StatusCode(999).ReasonPhrase() != "Unknown" {
		t.Error("unregistered status should be Unknown")
	}
}

func TestMethodRoundTrip(t *testing.T) {
	for _, name := range []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"} {
		m, ok := ParseMethod([]byte(name))
		if !ok {
			t.Fatalf("ParseMethod(%q) failed", name)
		}
		if m.String() != name {
			t.Errorf("round trip %q -> %q", name, m.String())
		}
	}
	if _, ok := ParseMethod([]byte("BREW")); ok {
		t.Error("BREW should not parse")
	}
}
