package reactor

import (
	"testing"
	"time"
)

func TestRateLimiterAllowWithinLimit(t *testing.T) {
	l := NewRateLimiter()
	now := time.Now()

	if !l.Allow(1, 2, time.Second, now) {
		t.Fatal("first request rejected")
	}
	if !l.Allow(1, 2, time.Second, now.Add(10*time.Millisecond)) {
		t.Fatal("second request rejected")
	}
	if l.Allow(1, 2, time.Second, now.Add(20*time.Millisecond)) {
		t.Fatal("third request admitted over limit")
	}
}

func TestRateLimiterWindowSlides(t *testing.T) {
	l := NewRateLimiter()
	now := time.Now()

	if !l.Allow(7, 1, 100*time.Millisecond, now) {
		t.Fatal("first request rejected")
	}
	if l.Allow(7, 1, 100*time.Millisecond, now.Add(50*time.Millisecond)) {
		t.Fatal("request inside window admitted")
	}
	if !l.Allow(7, 1, 100*time.Millisecond, now.Add(150*time.Millisecond)) {
		t.Fatal("request after window expiry rejected")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	l := NewRateLimiter()
	now := time.Now()

	if !l.Allow(1, 1, time.Second, now) {
		t.Fatal("key 1 rejected")
	}
	if !l.Allow(2, 1, time.Second, now) {
		t.Fatal("key 2 rejected")
	}
	if l.Allow(1, 1, time.Second, now) {
		t.Fatal("key 1 admitted over limit")
	}
}

func TestRateLimiterSweepDropsStaleBuckets(t *testing.T) {
	l := NewRateLimiter()
	now := time.Now()

	l.Allow(1, 10, time.Minute, now)
	l.Allow(2, 10, time.Minute, now.Add(4*time.Minute))
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}

	l.Sweep(now.Add(6 * time.Minute))
	if l.Len() != 1 {
		t.Fatalf("after sweep Len() = %d, want 1", l.Len())
	}
	// The surviving bucket still enforces its window.
	if !l.Allow(2, 10, time.Minute, now.Add(6*time.Minute)) {
		t.Fatal("surviving bucket rejected a request")
	}
}

func TestRouteKeyComposition(t *testing.T) {
	ip := "192.168.1.10"
	key := routeKey(ip, "/api/users")

	if uint32(key) != ipLow32(ip) {
		t.Fatalf("low 32 bits = %#x, want %#x", uint32(key), ipLow32(ip))
	}
	if uint32(key>>32) != fnv1a("/api/users") {
		t.Fatalf("high 32 bits = %#x, want %#x", uint32(key>>32), fnv1a("/api/users"))
	}

	if routeKey(ip, "/api/users") == routeKey(ip, "/api/posts") {
		t.Fatal("different paths produced the same key")
	}
	if routeKey("10.0.0.1", "/api/users") == routeKey("10.0.0.2", "/api/users") {
		t.Fatal("different clients produced the same key")
	}
}

func TestIPLow32(t *testing.T) {
	if got := ipLow32("127.0.0.1"); got != 0x7f000001 {
		t.Fatalf("ipLow32(127.0.0.1) = %#x, want 0x7f000001", got)
	}
	if got := ipLow32("192.168.1.1"); got != 0xc0a80101 {
		t.Fatalf("ipLow32(192.168.1.1) = %#x, want 0xc0a80101", got)
	}
	// Non-IPv4 addresses hash instead of packing.
	if ipLow32("::1") != fnv1a("::1") {
		t.Fatal("IPv6 address did not fall back to the hash")
	}
}

func TestGlobalAndRouteKeysDiffer(t *testing.T) {
	ip := "10.1.2.3"
	if globalKey(ip) == routeKey(ip, "/") {
		t.Fatal("global and route keys collided")
	}
}
