package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg, nil); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flags, err := ParseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath != "" {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}

// defaultConfig returns the values used when no source overrides them.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Env:                EnvDevelopment,
			TokenIssuer:        "go-tours",
			TokenDuration:      90 * 24 * time.Hour,
			CookieDuration:     90 * 24 * time.Hour,
			PasswordHashCost:   12,
			ResetTokenDuration: 10 * time.Minute,
		},
		Server: Server{
			HTTPAddress:    "localhost:3000",
			RequestTimeout: 30 * time.Second,
			RateLimit: RateLimit{
				Requests: 100,
				Window:   time.Hour,
			},
		},
		Adapter: Adapter{
			RequestTimeout: 10 * time.Second,
			Payment: Payment{
				Currency: "usd",
			},
		},
		Workers: Workers{
			ResetTokenSweepInterval: 5 * time.Minute,
		},
	}
}
