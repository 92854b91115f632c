package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cipware/securepay/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestIPKeyExtractor(t *testing.T) {
	t.Run("extracts from RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"

		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")

		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("uses X-Real-IP if X-Forwarded-For absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Real-IP", "203.0.113.2")

		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})
}

func TestSlidingWindowLimiter(t *testing.T) {
	t.Parallel()

	t.Run("admits up to the limit then rejects", func(t *testing.T) {
		l := httpx.NewSlidingWindowLimiter(5, 15*time.Minute)

		for i := range 5 {
			require.True(t, l.Allow("1.2.3.4"), "request %d should be admitted", i+1)
		}
		require.False(t, l.Allow("1.2.3.4"), "6th request inside the window must be rejected")
	})

	t.Run("rejected attempts are not counted", func(t *testing.T) {
		l := httpx.NewSlidingWindowLimiter(2, time.Minute)

		require.True(t, l.Allow("k"))
		require.True(t, l.Allow("k"))
		for range 10 {
			require.False(t, l.Allow("k"))
		}
		// Still only two counted attempts; once they age out the key is clean.
		require.Equal(t, time.Duration(0), l.RetryAfter("other"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		l := httpx.NewSlidingWindowLimiter(1, time.Minute)

		require.True(t, l.Allow("a"))
		require.False(t, l.Allow("a"))
		require.True(t, l.Allow("b"))
	})
}

func TestSlidingWindowLimiterWindowElapses(t *testing.T) {
	t.Parallel()

	now := time.Now()
	l := httpx.NewSlidingWindowLimiterAt(5, 15*time.Minute, func() time.Time { return now })

	for range 5 {
		require.True(t, l.Allow("1.2.3.4"))
	}
	require.False(t, l.Allow("1.2.3.4"))

	// Advance past the window; the key's history has aged out.
	now = now.Add(15*time.Minute + time.Second)
	require.True(t, l.Allow("1.2.3.4"))
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	limited := httpx.Chain(ok, httpx.RateLimit(httpx.NewSlidingWindowLimiter(5, 15*time.Minute), httpx.IPKeyExtractor))

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.9:40000"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec
	}

	for i := range 5 {
		require.Equal(t, http.StatusOK, do().Code, "request %d", i+1)
	}

	rec := do()
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimitByIPBucket(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	limited := httpx.Chain(ok, httpx.RateLimitByIPBucket(3, time.Minute))

	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.1.1.1:1000"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.1.1:1000"
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}
