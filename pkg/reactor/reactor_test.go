package reactor

import (
	"bufio"
	"fmt"
	"io"
	"net"
	stdhttp "net/http"
	"strings"
	"testing"
	"time"

	"github.com/volki-dev/volki/pkg/http"
	"github.com/volki-dev/volki/pkg/router"
)

// startReactor runs a reactor on a random port and tears it down with
// the test.
func startReactor(t *testing.T, rt *router.Router, mutate func(*Config)) *Reactor {
	t.Helper()

	cfg := Config{
		Host:   "127.0.0.1",
		Port:   0,
		Logger: discardLogger(),
	}
	if mutate != nil {
		mutate(&cfg)
	}

	r := New(rt, cfg)
	done := make(chan error, 1)
	go func() { done <- r.Listen() }()

	select {
	case <-r.Ready():
	case err := <-done:
		t.Fatalf("Listen: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("reactor never became ready")
	}

	t.Cleanup(func() {
		r.Shutdown()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("reactor did not shut down")
		}
	})
	return r
}

// doRequest opens a fresh connection, sends one raw request, and parses
// the response.
func doRequest(t *testing.T, port int, raw string) (int, string) {
	t.Helper()

	conn, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	if _, err := conn.Write([]byte(raw)); err != nil {
		t.Fatalf("write: %v", err)
	}
	resp, err := stdhttp.ReadResponse(bufio.NewReader(conn), nil)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestServeBasicGET(t *testing.T) {
	rt := router.New()
	rt.Insert("/hello", func(*http.Request) *http.Response {
		return http.OK().Text("world")
	}, true)
	r := startReactor(t, rt, nil)

	status, body := doRequest(t, r.Port(),
		"GET /hello HTTP/1.1\r\nHost: t\r\nConnection: close\r\n\r\n")
	if status != 200 {
		t.Fatalf("status = %d, want 200", status)
	}
	if body != "world" {
		t.Fatalf("body = %q, want %q", body, "world")
	}
}

func TestServeDefaultNotFound(t *testing.T) {
	r := startReactor(t, router.New(), nil)

	status, body := doRequest(t, r.Port(),
		"GET /nope HTTP/1.1\r\nHost: t\r\nConnection: close\r\n\r\n")
	if status != 404 {
		t.Fatalf("status = %d, want 404", status)
	}
	if body != "404 Not Found" {
		t.Fatalf("body = %q", body)
	}
}

func TestServePathParams(t *testing.T) {
	rt := router.New()
	rt.Insert("/users/:id", func(req *http.Request) *http.Response {
		id, _ := req.Param("id")
		return http.OK().Text("user " + id)
	}, true)
	r := startReactor(t, rt, nil)

	status, body := doRequest(t, r.Port(),
		"GET /users/42 HTTP/1.1\r\nHost: t\r\nConnection: close\r\n\r\n")
	if status != 200 {
		t.Fatalf("status = %d, want 200", status)
	}
	if body != "user 42" {
		t.Fatalf("body = %q, want %q", body, "user 42")
	}
}

func TestKeepAliveServesSequentialRequests(t *testing.T) {
	rt := router.New()
	rt.Insert("/ping", func(*http.Request) *http.Response {
		return http.OK().Text("pong")
	}, true)
	r := startReactor(t, rt, nil)

	conn, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", r.Port()))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))
	br := bufio.NewReader(conn)

	for i := 0; i < 2; i++ {
		if _, err := conn.Write([]byte("GET /ping HTTP/1.1\r\nHost: t\r\n\r\n")); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
		resp, err := stdhttp.ReadResponse(br, nil)
		if err != nil {
			t.Fatalf("response %d: %v", i, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != 200 || string(body) != "pong" {
			t.Fatalf("response %d: status %d body %q", i, resp.StatusCode, body)
		}
		if got := resp.Header.Get("Connection"); !strings.EqualFold(got, "keep-alive") {
			t.Fatalf("response %d: Connection = %q", i, got)
		}
	}
}

func TestOversizedBodyRejected(t *testing.T) {
	r := startReactor(t, router.New(), func(cfg *Config) {
		sec := DefaultSecurityConfig()
		sec.MaxBodySize = 16
		cfg.Security = sec
	})

	body := strings.Repeat("x", 64)
	raw := fmt.Sprintf(
		"POST /upload HTTP/1.1\r\nHost: t\r\nContent-Length: %d\r\n\r\n%s",
		len(body), body)
	status, _ := doRequest(t, r.Port(), raw)
	if status != 413 {
		t.Fatalf("status = %d, want 413", status)
	}
}

func TestPerRouteRateLimit(t *testing.T) {
	rt := router.New()
	rt.InsertWithRateLimit("/limited", func(*http.Request) *http.Response {
		return http.OK().Text("ok")
	}, true, router.RateLimit{Requests: 2, Window: time.Minute})
	r := startReactor(t, rt, nil)

	raw := "GET /limited HTTP/1.1\r\nHost: t\r\nConnection: close\r\n\r\n"
	for i := 0; i < 2; i++ {
		if status, _ := doRequest(t, r.Port(), raw); status != 200 {
			t.Fatalf("request %d: status %d, want 200", i, status)
		}
	}
	if status, _ := doRequest(t, r.Port(), raw); status != 429 {
		t.Fatalf("third request: status %d, want 429", status)
	}

	// Other routes are unaffected by the exhausted bucket.
	other := "GET /nope HTTP/1.1\r\nHost: t\r\nConnection: close\r\n\r\n"
	if status, _ := doRequest(t, r.Port(), other); status != 404 {
		t.Fatal("unrelated route was rate limited")
	}
}

func TestGlobalRateLimit(t *testing.T) {
	rt := router.New()
	rt.Insert("/a", func(*http.Request) *http.Response {
		return http.OK().Text("a")
	}, true)
	r := startReactor(t, rt, func(cfg *Config) {
		sec := DefaultSecurityConfig()
		sec.GlobalRateLimit = &RateLimitSpec{Requests: 1, Window: time.Minute}
		cfg.Security = sec
	})

	raw := "GET /a HTTP/1.1\r\nHost: t\r\nConnection: close\r\n\r\n"
	if status, _ := doRequest(t, r.Port(), raw); status != 200 {
		t.Fatal("first request rejected")
	}
	if status, _ := doRequest(t, r.Port(), raw); status != 429 {
		t.Fatal("second request not rejected by the global limit")
	}
}

func TestStaticResolverShortCircuit(t *testing.T) {
	r := startReactor(t, router.New(), func(cfg *Config) {
		cfg.Static = func(path string) *http.Response {
			if path != "/app.css" {
				return nil
			}
			return http.NewResponse(http.StatusOK).
				Header("Content-Type", "text/css").
				Bytes([]byte("body{margin:0}"))
		}
	})

	status, body := doRequest(t, r.Port(),
		"GET /app.css HTTP/1.1\r\nHost: t\r\nConnection: close\r\n\r\n")
	if status != 200 {
		t.Fatalf("status = %d, want 200", status)
	}
	if body != "body{margin:0}" {
		t.Fatalf("body = %q", body)
	}

	// A miss falls through to routing.
	status, _ = doRequest(t, r.Port(),
		"GET /other.css HTTP/1.1\r\nHost: t\r\nConnection: close\r\n\r\n")
	if status != 404 {
		t.Fatalf("miss status = %d, want 404", status)
	}
}

func TestMalformedRequestGets400(t *testing.T) {
	r := startReactor(t, router.New(), nil)

	status, _ := doRequest(t, r.Port(), "NONSENSE\r\n\r\n")
	if status != 400 {
		t.Fatalf("status = %d, want 400", status)
	}
}
