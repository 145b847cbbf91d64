// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Welmap server.
//
// Values are layered: built-in defaults, then an optional YAML file
// (CONFIG_PATH, default config.yaml), then WELMAP_* environment variables.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Logging   LoggingConfig   `koanf:"logging"`
	Sync      SyncConfig      `koanf:"sync"`
	Providers ProvidersConfig `koanf:"providers"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the DuckDB database file. ":memory:" runs in-memory.
	Path string `koanf:"path"`

	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	QueryTimeout    time.Duration `koanf:"query_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SyncConfig controls the welfare data ingestion scheduler.
type SyncConfig struct {
	Enabled bool `koanf:"enabled"`

	// Interval between scheduled full syncs. The public welfare catalogs
	// change on roughly a monthly cadence.
	Interval time.Duration `koanf:"interval"`

	// PageSize is the number of records requested per provider page.
	PageSize int `koanf:"page_size"`

	// RequestTimeout bounds a single provider HTTP request.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// RequestsPerSecond paces outbound provider calls.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
}

// ProviderConfig holds settings for a single external welfare data source.
type ProviderConfig struct {
	URL     string `koanf:"url"`
	Enabled bool   `koanf:"enabled"`
}

// ProvidersConfig holds the three external welfare data sources.
// ServiceKey is shared across them: all three run on the same
// data.go.kr application key.
type ProvidersConfig struct {
	ServiceKey      string         `koanf:"service_key"`
	CentralMinistry ProviderConfig `koanf:"central_ministry"`
	LocalGov        ProviderConfig `koanf:"local_gov"`
	PrivateOrg      ProviderConfig `koanf:"private_org"`
}

// APIConfig holds HTTP API behavior settings.
type APIConfig struct {
	// RateLimit is the per-client request limit per RateLimitWindow.
	// 0 disables rate limiting.
	RateLimit       int           `koanf:"rate_limit"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// CORSOrigins lists allowed CORS origins. "*" allows all.
	CORSOrigins []string `koanf:"cors_origins"`

	// RequestTimeout bounds handler execution.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// EnableSwagger mounts /swagger/ UI.
	EnableSwagger bool `koanf:"enable_swagger"`
}

// SecurityConfig holds authentication settings for admin endpoints.
type SecurityConfig struct {
	// JWTSecret signs and verifies admin tokens. Empty disables the
	// admin endpoints that require it.
	JWTSecret string `koanf:"jwt_secret"`

	// TokenExpiry bounds issued token lifetime.
	TokenExpiry time.Duration `koanf:"token_expiry"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	// TopN is the maximum number of recommendations returned per survey.
	TopN int `koanf:"top_n"`
}

// Validate checks configuration invariants that would otherwise surface
// as confusing runtime failures.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Sync.PageSize < 1 || c.Sync.PageSize > 1000 {
		return fmt.Errorf("sync.page_size must be 1-1000, got %d", c.Sync.PageSize)
	}
	if c.Sync.Interval < time.Minute {
		return fmt.Errorf("sync.interval must be at least 1m, got %s", c.Sync.Interval)
	}
	if c.Recommend.TopN < 1 {
		return fmt.Errorf("recommend.top_n must be positive, got %d", c.Recommend.TopN)
	}
	if c.Sync.Enabled && c.Providers.ServiceKey == "" {
		return fmt.Errorf("providers.service_key is required when sync is enabled (set WELMAP_PROVIDERS_SERVICE_KEY or PUBLIC_DATA_API_KEY)")
	}
	return nil
}
