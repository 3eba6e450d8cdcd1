package http

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/observability"
	"github.com/MKhiriev/go-tours/internal/service"
)

type Handler struct {
	services *service.Services
	metrics  *observability.Metrics
	limiter  *RateLimiter
	views    *views

	app            config.App
	requestTimeout time.Duration

	// now is the clock used for cookie expiry.
	now func() time.Time

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. A nil limiter disables rate limiting.
func NewHandler(
	services *service.Services,
	metrics *observability.Metrics,
	limiter *RateLimiter,
	app config.App,
	server config.Server,
	logger *logger.Logger,
) (*Handler, error) {
	v, err := loadViews()
	if err != nil {
		return nil, fmt.Errorf("loading view templates failed: %w", err)
	}

	logger.Info().Bool("rate_limit", limiter != nil).Msg("http handler created")
	return &Handler{
		services:       services,
		metrics:        metrics,
		limiter:        limiter,
		views:          v,
		app:            app,
		requestTimeout: server.RequestTimeout,
		now:            time.Now,
		logger:         logger,
	}, nil
}
