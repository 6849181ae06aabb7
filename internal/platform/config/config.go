// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and handed to components through
their constructors.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Premium Policy

// Supported values of PREMIUM_ACCESS_POLICY.
const (
	// PolicyPublicOnly gates premium chapters for everyone, signed in or not.
	PolicyPublicOnly = "public_only"

	// PolicyAuthenticated opens premium chapters to any signed-in reader.
	PolicyAuthenticated = "authenticated"
)

// # Configuration Schema

// Database is the subset of settings needed by tools that only touch
// PostgreSQL, such as the operator CLI's migrate and audit commands.
type Database struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
}

// Config holds all runtime configuration for the Inkwell API server.
type Config struct {
	Database

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// Access tokens are issued by the identity provider; the API only verifies them.
	// The private key is optional and only used by the operator CLI.
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required,notEmpty"`
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`

	// Content gating
	PremiumAccessPolicy string `env:"PREMIUM_ACCESS_POLICY" envDefault:"public_only"`

	// AuthorEmails is an allowlist of accounts allowed to publish regardless of role.
	AuthorEmails []string `env:"AUTHOR_EMAILS" envSeparator:","`

	// RenderCacheTTL is how long rendered chapter HTML stays in Redis.
	RenderCacheTTL time.Duration `env:"RENDER_CACHE_TTL" envDefault:"1h"`

	// Cross-Origin Resource Sharing
	CORSOriginSuffix string   `env:"CORS_ORIGIN_SUFFIX" envDefault:"inkwell.app"`
	ExtraOrigins     []string `env:"EXTRA_ORIGINS" envSeparator:","`

	// TrustProxyHeaders takes the client IP from X-Real-IP / X-Forwarded-For.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabase parses only the [Database] settings, so REDIS_URL and the JWT
// keys are not required.
func LoadDatabase() (*Database, error) {
	cfg := &Database{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// validate rejects values that parse but make no sense.
func (c *Config) validate() error {
	switch c.PremiumAccessPolicy {
	case PolicyPublicOnly, PolicyAuthenticated:
	default:
		return fmt.Errorf("config: unsupported PREMIUM_ACCESS_POLICY %q", c.PremiumAccessPolicy)
	}

	if c.RenderCacheTTL < 0 {
		return fmt.Errorf("config: RENDER_CACHE_TTL must not be negative")
	}

	for index, email := range c.AuthorEmails {
		c.AuthorEmails[index] = strings.ToLower(strings.TrimSpace(email))
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
