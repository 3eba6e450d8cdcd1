package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/models"
)

func newTestLimiter(t *testing.T, limit int) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRateLimiter(client, config.RateLimit{Requests: limit, Window: time.Hour}), mr
}

func limitedRequest(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tours", nil)
	req.RemoteAddr = ip + ":51234"
	return injectNopLogger(req)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, mr := newTestLimiter(t, 2)
	ctx := context.Background()

	first, err := rl.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)
	assert.Equal(t, time.Hour, first.ResetIn)
	assert.Equal(t, time.Hour, mr.TTL(rateLimitKeyPrefix+":10.0.0.1"))

	mr.FastForward(10 * time.Minute)

	second, err := rl.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)
	assert.Equal(t, 50*time.Minute, mr.TTL(rateLimitKeyPrefix+":10.0.0.1"), "later requests do not extend the window")

	third, err := rl.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, third.Allowed)
	assert.Equal(t, 0, third.Remaining)

	other, err := rl.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed, "windows are per client")
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	rl, mr := newTestLimiter(t, 1)
	ctx := context.Background()

	_, err := rl.Allow(ctx, "ip")
	require.NoError(t, err)
	blocked, err := rl.Allow(ctx, "ip")
	require.NoError(t, err)
	require.False(t, blocked.Allowed)

	mr.FastForward(time.Hour)

	again, err := rl.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, again.Allowed)
}

func TestRateLimiter_Reset(t *testing.T) {
	rl, mr := newTestLimiter(t, 1)
	ctx := context.Background()

	_, err := rl.Allow(ctx, "ip")
	require.NoError(t, err)
	require.NoError(t, rl.Reset(ctx, "ip"))

	assert.False(t, mr.Exists(rateLimitKeyPrefix+":ip"))
}

func TestWithRateLimit_HeadersAnd429(t *testing.T) {
	h, _ := newTestHandler(t)
	h.limiter, _ = newTestLimiter(t, 2)
	mw := h.withRateLimit(okHandler())

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		mw.ServeHTTP(rr, limitedRequest("192.0.2.10"))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "2", rr.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(1-i), rr.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, strconv.FormatInt(testNow.Add(time.Hour).Unix(), 10), rr.Header().Get("X-RateLimit-Reset"))
	}

	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, limitedRequest("192.0.2.10"))

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "3600", rr.Header().Get("Retry-After"))
	resp := decodeResponse(t, rr)
	assert.Equal(t, models.StatusFail, resp.Status)
	assert.Equal(t, ErrTooManyRequests.Error(), resp.Message)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.RateLimitedTotal))
}

func TestWithRateLimit_ForwardedClientIP(t *testing.T) {
	h, _ := newTestHandler(t)
	h.limiter, _ = newTestLimiter(t, 1)
	mw := h.withRateLimit(okHandler())

	first := limitedRequest("10.0.0.1")
	first.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, first)
	require.Equal(t, http.StatusOK, rr.Code)

	// same proxy, different client
	second := limitedRequest("10.0.0.1")
	second.Header.Set("X-Forwarded-For", "203.0.113.8")
	rr = httptest.NewRecorder()
	mw.ServeHTTP(rr, second)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestWithRateLimit_FailsOpen(t *testing.T) {
	h, _ := newTestHandler(t)
	limiter, mr := newTestLimiter(t, 1)
	h.limiter = limiter
	mr.Close()

	rr := httptest.NewRecorder()
	h.withRateLimit(okHandler()).ServeHTTP(rr, limitedRequest("192.0.2.10"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.RateLimiterErrorsTotal))
}

func TestWithRateLimit_DisabledWithoutLimiter(t *testing.T) {
	h, _ := newTestHandler(t)
	next := okHandler()

	rr := httptest.NewRecorder()
	h.withRateLimit(next).ServeHTTP(rr, limitedRequest("192.0.2.10"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
}
