// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/utils"
)

const rateLimitKeyPrefix = "ratelimit:ip"

// RateLimiter is a fixed-window request counter shared by every instance
// through Redis.
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// RateLimitResult describes the state of a client's window after a request
// was counted.
type RateLimitResult struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

func NewRateLimiter(client *redis.Client, cfg config.RateLimit) *RateLimiter {
	return &RateLimiter{
		redis:  client,
		limit:  cfg.Requests,
		window: cfg.Window,
		prefix: rateLimitKeyPrefix,
	}
}

// Allow counts one request for key. The window starts with the first request
// and is not extended by later ones.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	redisKey := fmt.Sprintf("%s:%s", rl.prefix, key)

	pipe := rl.redis.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	ttl := pipe.TTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return RateLimitResult{}, fmt.Errorf("redis error: %w", err)
	}

	resetIn := ttl.Val()
	if resetIn < 0 {
		if err := rl.redis.Expire(ctx, redisKey, rl.window).Err(); err != nil {
			return RateLimitResult{}, fmt.Errorf("redis error: %w", err)
		}
		resetIn = rl.window
	}

	count := int(incr.Val())
	return RateLimitResult{
		Allowed:   count <= rl.limit,
		Limit:     rl.limit,
		Remaining: max(rl.limit-count, 0),
		ResetIn:   resetIn,
	}, nil
}

// Reset clears the window of key.
func (rl *RateLimiter) Reset(ctx context.Context, key string) error {
	return rl.redis.Del(ctx, fmt.Sprintf("%s:%s", rl.prefix, key)).Err()
}

// withRateLimit limits requests per client IP. Redis failures let the request
// through.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := h.limiter.Allow(r.Context(), utils.ClientIP(r))
		if err != nil {
			logger.FromRequest(r).Warn().Err(err).Msg("rate limiter unavailable, request let through")
			h.metrics.RateLimiterErrorsTotal.Inc()
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(h.now().Add(res.ResetIn).Unix(), 10))

		if !res.Allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(res.ResetIn.Seconds())))
			h.metrics.RateLimitedTotal.Inc()
			h.writeError(w, r, ErrTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
