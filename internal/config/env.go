// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from environ, keyed by the `env` and `envPrefix` tags of
// [StructuredConfig]. A nil environ reads the process environment.
//
// APP_ENV is matched case-insensitively, so "Production" selects
// [EnvProduction].
func parseEnv(cfg *StructuredConfig, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	cfg.App.Env = strings.ToLower(strings.TrimSpace(cfg.App.Env))
	return nil
}
