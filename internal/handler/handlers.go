package handler

import (
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/handler/http"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/observability"
	"github.com/MKhiriev/go-tours/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the transport handlers. A nil redisClient disables
// rate limiting.
func NewHandlers(
	services *service.Services,
	metrics *observability.Metrics,
	redisClient *redis.Client,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	var limiter *http.RateLimiter
	if redisClient != nil && cfg.Server.RateLimit.Requests > 0 {
		limiter = http.NewRateLimiter(redisClient, cfg.Server.RateLimit)
	}

	httpHandler, err := http.NewHandler(services, metrics, limiter, cfg.App, cfg.Server, logger)
	if err != nil {
		return nil, fmt.Errorf("creating http handler: %w", err)
	}

	return &Handlers{HTTP: httpHandler}, nil
}
