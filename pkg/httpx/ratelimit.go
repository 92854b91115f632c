package httpx

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cipware/securepay/pkg/slogx"
	"golang.org/x/time/rate"
)

// KeyExtractor derives the identity requests are grouped under for rate
// limiting (client IP, account ID, ...).
type KeyExtractor func(*http.Request) string

// IPKeyExtractor extracts the client IP address from the request.
// It handles X-Forwarded-For and X-Real-IP headers for proxied requests.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// AccountKeyExtractor groups by authenticated account, falling back to IP for
// anonymous requests.
func AccountKeyExtractor(r *http.Request) string {
	if id := AccountIDFromCtx(r.Context()); id != "" {
		return id
	}
	return IPKeyExtractor(r)
}

// SlidingWindowLimiter admits at most Limit requests per key within a rolling
// Window. It keeps the actual request timestamps per key, so the window edge
// is exact: the Nth+1 attempt inside the window is rejected no matter how the
// requests are spaced, and a rejected attempt is not itself counted.
//
// State is in-memory and process-wide; construct one per profile at startup
// and inject it into the router (a restart resets all counters). Expired
// timestamps are pruned on the touched key during normal traffic and swept
// across all keys opportunistically to bound memory under churny client IPs.
type SlidingWindowLimiter struct {
	limit  int
	window time.Duration

	mu        sync.Mutex
	seen      map[string][]time.Time
	lastSweep time.Time

	// now is the clock; tests swap it out.
	now func() time.Time
}

// NewSlidingWindowLimiter builds a limiter admitting limit requests per window.
func NewSlidingWindowLimiter(limit int, window time.Duration) *SlidingWindowLimiter {
	return NewSlidingWindowLimiterAt(limit, window, time.Now)
}

// NewSlidingWindowLimiterAt is NewSlidingWindowLimiter with an explicit
// clock, for tests that need to move time past the window edge.
func NewSlidingWindowLimiterAt(limit int, window time.Duration, now func() time.Time) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		limit:  limit,
		window: window,
		seen:   make(map[string][]time.Time),
		now:    now,
	}
}

// Allow records an attempt for key and reports whether it is admitted. The
// prune-check-append sequence runs under one lock so two concurrent requests
// can't both read a stale count and slip over the limit.
func (l *SlidingWindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.seen[key][:0:0]
	for _, ts := range l.seen[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.limit {
		l.seen[key] = recent
		l.maybeSweepLocked(now, cutoff)
		return false
	}

	l.seen[key] = append(recent, now)
	l.maybeSweepLocked(now, cutoff)
	return true
}

// maybeSweepLocked drops keys whose every timestamp has aged out. Runs at
// most once per window so steady traffic from many IPs can't grow the map
// without bound. Caller holds the lock.
func (l *SlidingWindowLimiter) maybeSweepLocked(now time.Time, cutoff time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now

	for key, stamps := range l.seen {
		live := false
		for _, ts := range stamps {
			if ts.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.seen, key)
		}
	}
}

// RetryAfter reports how long until the oldest counted attempt for key falls
// out of the window. Zero when the key is under the limit.
func (l *SlidingWindowLimiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	stamps := l.seen[key]
	if len(stamps) < l.limit {
		return 0
	}
	wait := stamps[0].Add(l.window).Sub(l.now())
	if wait < 0 {
		return 0
	}
	return wait
}

// RateLimit rejects requests over the limiter's budget with 429. Requests
// with no extractable key are admitted but logged.
func RateLimit(l *SlidingWindowLimiter, keyFn KeyExtractor) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			key := keyFn(r)
			if key == "" {
				log.Warn("rate limit: unable to extract key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			if !l.Allow(key) {
				retry := int(l.RetryAfter(key).Seconds())
				if retry < 1 {
					retry = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
				w.Header().Set("X-RateLimit-Window", l.window.String())

				log.Warn("rate limit exceeded", "key", key, "endpoint", r.URL.Path)
				WriteError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bucketLimiter manages token-bucket limiters per key for the coarse global
// profile, where exact window edges don't matter and the cheaper bucket wins.
type bucketLimiter struct {
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
}

func (bl *bucketLimiter) getLimiter(key string) *rate.Limiter {
	if limiter, ok := bl.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(bl.rate, bl.burst)
	actual, _ := bl.limiters.LoadOrStore(key, limiter)

	bl.maybeCleanup()

	return actual.(*rate.Limiter)
}

// maybeCleanup removes limiters whose buckets have refilled; a full bucket
// means the key has been idle for at least a window.
func (bl *bucketLimiter) maybeCleanup() {
	bl.mu.Lock()
	defer bl.mu.Unlock()

	if time.Since(bl.lastCleanup) < 5*time.Minute {
		return
	}
	bl.lastCleanup = time.Now()

	bl.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(bl.burst) {
			bl.limiters.Delete(key)
		}
		return true
	})
}

// RateLimitByIPBucket is the coarse per-IP limiter used on public read
// endpoints: requestsPerWindow spread across window as a token bucket with a
// full-window burst.
func RateLimitByIPBucket(requestsPerWindow int, window time.Duration) Middleware {
	bl := &bucketLimiter{
		rate:        rate.Limit(float64(requestsPerWindow) / window.Seconds()),
		burst:       requestsPerWindow,
		lastCleanup: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !bl.getLimiter(IPKeyExtractor(r)).Allow() {
				WriteError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
