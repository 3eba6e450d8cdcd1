// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package observability holds the Prometheus metrics of go-tours.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth outcomes recorded by [Metrics.RecordAuth].
const (
	AuthOutcomeAuthorized         = "authorized"
	AuthOutcomeNoToken            = "no_token"
	AuthOutcomeInvalidToken       = "invalid_token"
	AuthOutcomeTokenExpired       = "token_expired"
	AuthOutcomeUserGone           = "user_gone"
	AuthOutcomeCredentialsRotated = "credentials_rotated"
	AuthOutcomeForbidden          = "forbidden"
	AuthOutcomeError              = "error"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// AuthOutcomesTotal counts the results of the authentication gates.
	AuthOutcomesTotal *prometheus.CounterVec

	RateLimitedTotal prometheus.Counter
	// RateLimiterErrorsTotal counts requests let through because the limiter
	// backend failed.
	RateLimiterErrorsTotal prometheus.Counter

	ResetTokensSweptTotal prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates and registers all metrics on registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tours_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tours_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		AuthOutcomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tours_auth_outcomes_total",
				Help: "Authentication and authorization results by gate",
			},
			[]string{"gate", "outcome"},
		),
		RateLimitedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tours_rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		}),
		RateLimiterErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tours_rate_limiter_errors_total",
			Help: "Rate limiter backend failures",
		}),
		ResetTokensSweptTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tours_reset_tokens_swept_total",
			Help: "Expired password reset tokens cleared by the sweeper",
		}),
		registry: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AuthOutcomesTotal,
		m.RateLimitedTotal,
		m.RateLimiterErrorsTotal,
		m.ResetTokensSweptTotal,
	)

	return m
}

// RecordHTTPRequest records one served request. route is the chi route
// pattern, never the raw path.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAuth records the outcome of an authentication gate such as
// "protect" or "restrictTo".
func (m *Metrics) RecordAuth(gate, outcome string) {
	m.AuthOutcomesTotal.WithLabelValues(gate, outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
