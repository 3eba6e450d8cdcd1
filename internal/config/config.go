// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Application environments recognised by [App.Env].
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// StructuredConfig is the top-level configuration container for the
// go-tours application. It aggregates all sub-configurations and is
// populated by merging defaults, environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the environment, token
	// parameters and password hashing cost.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database and Redis.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, timeout and rate limit settings for the
	// HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds configuration for outbound integrations (mail, payment).
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security and
// token lifecycle. The values are loaded once at startup and never mutated.
type App struct {
	// Env is either "development" or "production". It controls error
	// verbosity, log level and the Secure flag of the session cookie.
	// Env: APP_ENV
	Env string `env:"ENV"`

	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "2160h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// CookieDuration is the lifetime of the "jwt" session cookie.
	// Env: APP_COOKIE_DURATION
	CookieDuration time.Duration `env:"COOKIE_DURATION"`

	// PasswordHashCost is the bcrypt work factor.
	// Env: APP_PASSWORD_HASH_COST
	PasswordHashCost int `env:"PASSWORD_HASH_COST"`

	// ResetTokenDuration is how long a password reset link stays valid.
	// Env: APP_RESET_TOKEN_DURATION
	ResetTokenDuration time.Duration `env:"RESET_TOKEN_DURATION"`

	// Version overrides the build version reported by /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// IsProduction reports whether the application runs in production mode.
func (a App) IsProduction() bool {
	return a.Env == EnvProduction
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Redis holds the connection settings of the rate limiter backend.
	Redis Redis `envPrefix:"REDIS_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL Data Source Name.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Redis holds connection settings for Redis. An empty Address disables
// rate limiting.
type Redis struct {
	Address  string `env:"ADDRESS"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RateLimit bounds the number of /api requests per client.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
}

// RateLimit configures the fixed-window /api rate limiter.
type RateLimit struct {
	// Requests is the number of requests allowed per Window.
	// Env: SERVER_RATE_LIMIT_REQUESTS
	Requests int `env:"REQUESTS"`

	// Window is the length of the rate limit window.
	// Env: SERVER_RATE_LIMIT_WINDOW
	Window time.Duration `env:"WINDOW"`
}

// Adapter holds configuration for outbound integrations.
type Adapter struct {
	// RequestTimeout bounds every outbound HTTP call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	Mail    Mail    `envPrefix:"MAIL_"`
	Payment Payment `envPrefix:"PAYMENT_"`
}

// Mail configures the transactional email HTTP API.
type Mail struct {
	// URL is the base URL of the mail API.
	// Env: ADAPTER_MAIL_URL
	URL string `env:"URL"`

	// APIKey authenticates against the mail API.
	// Env: ADAPTER_MAIL_API_KEY
	APIKey string `env:"API_KEY"`

	// From is the sender address, e.g. "Tours <hello@example.com>".
	// Env: ADAPTER_MAIL_FROM
	From string `env:"FROM"`
}

// Payment configures the hosted checkout API.
type Payment struct {
	// URL is the base URL of the payment API.
	// Env: ADAPTER_PAYMENT_URL
	URL string `env:"URL"`

	// SecretKey authenticates against the payment API.
	// Env: ADAPTER_PAYMENT_SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`

	// Currency is the ISO currency code used for line items.
	// Env: ADAPTER_PAYMENT_CURRENCY
	Currency string `env:"CURRENCY"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// ResetTokenSweepInterval is how often expired password reset tokens are
	// cleared.
	// Env: WORKERS_RESET_TOKEN_SWEEP_INTERVAL
	ResetTokenSweepInterval time.Duration `env:"RESET_TOKEN_SWEEP_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
