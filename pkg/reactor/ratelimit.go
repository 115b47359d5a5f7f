package reactor

import (
	"net"
	"time"
)

// fnv1a hashes a string with 32-bit FNV-1a.
func fnv1a(s string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

// ipLow32 packs an IPv4 address into its 32-bit value. Other address
// forms fall back to a hash of the textual address.
func ipLow32(ip string) uint32 {
	if parsed := net.ParseIP(ip); parsed != nil {
		if v4 := parsed.To4(); v4 != nil {
			return uint32(v4[0])<<24 | uint32(v4[1])<<16 | uint32(v4[2])<<8 | uint32(v4[3])
		}
	}
	return fnv1a(ip)
}

// globalKey identifies a client for the global rate limit.
func globalKey(ip string) uint64 {
	return uint64(ipLow32(ip))
}

// routeKey combines client and route: IP in the low 32 bits, path hash
// in the high 32.
func routeKey(ip, path string) uint64 {
	return uint64(ipLow32(ip)) | uint64(fnv1a(path))<<32
}

// staleAfter is how long an untouched bucket survives before the sweep
// discards it.
const staleAfter = 5 * time.Minute

// RateLimiter tracks request timestamps per key in sliding windows. It
// is owned by the reactor thread and needs no locking.
type RateLimiter struct {
	buckets map[uint64][]time.Time
}

// NewRateLimiter returns an empty limiter.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{buckets: make(map[uint64][]time.Time)}
}

// Allow pops entries older than window off the front of the key's
// deque, rejects if the remaining count has reached limit, and records
// the request otherwise.
func (l *RateLimiter) Allow(key uint64, limit int, window time.Duration, now time.Time) bool {
	deque := l.buckets[key]
	cutoff := now.Add(-window)
	start := 0
	for start < len(deque) && deque[start].Before(cutoff) {
		start++
	}
	if start > 0 {
		deque = deque[start:]
	}
	if len(deque) >= limit {
		l.buckets[key] = deque
		return false
	}
	l.buckets[key] = append(deque, now)
	return true
}

// Sweep discards buckets whose newest entry is stale. Called from the
// reactor's periodic sweep.
func (l *RateLimiter) Sweep(now time.Time) {
	cutoff := now.Add(-staleAfter)
	for key, deque := range l.buckets {
		if len(deque) == 0 || deque[len(deque)-1].Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Len reports the number of live buckets.
func (l *RateLimiter) Len() int { return len(l.buckets) }
