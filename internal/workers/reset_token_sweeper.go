// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/observability"
	"github.com/MKhiriev/go-tours/internal/store"
)

const defaultSweepInterval = 5 * time.Minute

// ResetTokenSweeper periodically clears password reset tokens whose expiry
// has passed. Abandoned reset requests would otherwise keep a hash and an
// expiry on the user row forever.
type ResetTokenSweeper struct {
	users    store.UserRepository
	interval time.Duration
	metrics  *observability.Metrics
	now      func() time.Time
	logger   *logger.Logger
}

// NewResetTokenSweeper creates the sweeper. A zero or negative interval
// defaults to 5 minutes.
func NewResetTokenSweeper(users store.UserRepository, interval time.Duration, metrics *observability.Metrics, logger *logger.Logger) *ResetTokenSweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	return &ResetTokenSweeper{
		users:    users,
		interval: interval,
		metrics:  metrics,
		now:      time.Now,
		logger:   logger,
	}
}

// Run sweeps every interval until ctx is cancelled.
func (s *ResetTokenSweeper) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("reset token sweeper started")

	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("reset token sweeper stopped")
			return
		case <-t.C:
			s.sweep(ctx)
		}
	}
}

func (s *ResetTokenSweeper) sweep(ctx context.Context) {
	cleared, err := s.users.ClearExpiredResetTokens(ctx, s.now())
	if err != nil {
		s.logger.Err(err).Msg("clearing expired reset tokens failed")
		return
	}

	if cleared > 0 {
		s.metrics.ResetTokensSweptTotal.Add(float64(cleared))
		s.logger.Debug().Int64("cleared", cleared).Msg("expired reset tokens cleared")
	}
}
