// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// bcrypt accepts costs in [4, 31].
const (
	minPasswordHashCost = 4
	maxPasswordHashCost = 31

	minTokenSignKeyLength = 32
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	switch cfg.App.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidAppConfigs, cfg.App.Env)
	}

	if len(cfg.App.TokenSignKey) < minTokenSignKeyLength {
		return fmt.Errorf("%w: token sign key must be at least %d characters", ErrInvalidAppConfigs, minTokenSignKeyLength)
	}

	if cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 || cfg.App.CookieDuration <= 0 {
		return fmt.Errorf("%w: token issuer and durations are required", ErrInvalidAppConfigs)
	}

	if cfg.App.PasswordHashCost < minPasswordHashCost || cfg.App.PasswordHashCost > maxPasswordHashCost {
		return fmt.Errorf("%w: password hash cost %d out of range", ErrInvalidAppConfigs, cfg.App.PasswordHashCost)
	}

	if cfg.App.ResetTokenDuration <= 0 {
		return fmt.Errorf("%w: reset token duration is required", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Server.RateLimit.Requests <= 0 || cfg.Server.RateLimit.Window <= 0 {
		return fmt.Errorf("%w: rate limit must be positive", ErrInvalidServerConfigs)
	}

	if cfg.Adapter.Mail.URL != "" && cfg.Adapter.Mail.From == "" {
		return fmt.Errorf("%w: mail sender is required", ErrInvalidAdapterConfigs)
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.ResetTokenSweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
