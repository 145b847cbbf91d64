// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces all Welmap environment variables, e.g.
// WELMAP_SERVER_PORT=8080 maps to server.port.
const envPrefix = "WELMAP_"

// defaultConfig returns the built-in defaults. Every field the server
// reads has a sane default so a bare binary can start against an
// in-memory database.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:            "welmap.db",
			MaxOpenConns:    8,
			MaxIdleConns:    4,
			ConnMaxLifetime: time.Hour,
			QueryTimeout:    30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Sync: SyncConfig{
			Enabled:           false,
			Interval:          30 * 24 * time.Hour,
			PageSize:          500,
			RequestTimeout:    30 * time.Second,
			RequestsPerSecond: 5,
		},
		Providers: ProvidersConfig{
			CentralMinistry: ProviderConfig{
				URL:     "https://apis.data.go.kr/B554287/NationalWelfareInformationsV001/NationalWelfarelistV001",
				Enabled: true,
			},
			LocalGov: ProviderConfig{
				URL:     "https://apis.data.go.kr/B554287/LocalGovernmentWelfareInformations/LcgvWelfarelist",
				Enabled: true,
			},
			PrivateOrg: ProviderConfig{
				URL:     "https://api.odcloud.kr/api/15116392/v1/uddi:e42c15c4-d478-4210-922f-fb32233dc8f6",
				Enabled: true,
			},
		},
		API: APIConfig{
			RateLimit:       120,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
			RequestTimeout:  10 * time.Second,
			EnableSwagger:   true,
		},
		Security: SecurityConfig{
			TokenExpiry: 24 * time.Hour,
		},
		Recommend: RecommendConfig{
			TopN: 10,
		},
	}
}

// Load builds the runtime configuration: defaults, then the YAML file at
// CONFIG_PATH (default config.yaml; a missing default file is not an
// error), then WELMAP_* environment variables.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = "config.yaml"
	}
	return load(path, explicit)
}

func load(path string, mustExist bool) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if mustExist || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// PUBLIC_DATA_API_KEY is the conventional name for the data.go.kr
	// application key and is honored as a fallback.
	if cfg.Providers.ServiceKey == "" {
		cfg.Providers.ServiceKey = os.Getenv("PUBLIC_DATA_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// envToKey maps WELMAP_SERVER_PORT to server.port. Known section
// prefixes are mapped explicitly because leaf keys themselves contain
// underscores (sync.page_size, providers.central_ministry.url).
func envToKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)

	sections := [][2]string{
		{"providers_central_ministry_", "providers.central_ministry."},
		{"providers_local_gov_", "providers.local_gov."},
		{"providers_private_org_", "providers.private_org."},
		{"providers_", "providers."},
		{"server_", "server."},
		{"database_", "database."},
		{"logging_", "logging."},
		{"sync_", "sync."},
		{"api_", "api."},
		{"security_", "security."},
		{"recommend_", "recommend."},
	}
	for _, sec := range sections {
		if strings.HasPrefix(s, sec[0]) {
			return sec[1] + strings.TrimPrefix(s, sec[0])
		}
	}
	return s
}
