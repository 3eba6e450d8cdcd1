package handler

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/observability"
	"github.com/MKhiriev/go-tours/internal/service"
)

func newTestMetrics() *observability.Metrics {
	return observability.NewMetrics(prometheus.NewRegistry())
}

func TestNewHandlers_HTTPAddress(t *testing.T) {
	cfg := &config.StructuredConfig{
		Server: config.Server{HTTPAddress: ":8080"},
	}

	h, err := NewHandlers(&service.Services{}, newTestMetrics(), nil, cfg, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP)
}

func TestNewHandlers_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.StructuredConfig{
		Server: config.Server{
			HTTPAddress: ":8080",
			RateLimit:   config.RateLimit{Requests: 100, Window: time.Hour},
		},
	}

	h, err := NewHandlers(&service.Services{}, newTestMetrics(), client, cfg, logger.Nop())

	require.NoError(t, err)
	assert.NotNil(t, h.HTTP)
}

// TestNewHandlers_NoAddress verifies that an empty HTTP address is a fatal
// misconfiguration.
func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, newTestMetrics(), nil, &config.StructuredConfig{}, logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}
