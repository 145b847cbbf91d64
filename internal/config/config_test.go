// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database.path",
		},
		{
			name:    "page size zero",
			mutate:  func(c *Config) { c.Sync.PageSize = 0 },
			wantErr: "sync.page_size",
		},
		{
			name:    "page size too large",
			mutate:  func(c *Config) { c.Sync.PageSize = 5000 },
			wantErr: "sync.page_size",
		},
		{
			name:    "interval too short",
			mutate:  func(c *Config) { c.Sync.Interval = time.Second },
			wantErr: "sync.interval",
		},
		{
			name:    "top n zero",
			mutate:  func(c *Config) { c.Recommend.TopN = 0 },
			wantErr: "recommend.top_n",
		},
		{
			name: "sync enabled without key",
			mutate: func(c *Config) {
				c.Sync.Enabled = true
				c.Providers.ServiceKey = ""
			},
			wantErr: "service_key",
		},
		{
			name: "sync enabled with key",
			mutate: func(c *Config) {
				c.Sync.Enabled = true
				c.Providers.ServiceKey = "test-key"
			},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 9090}
	if got := c.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q, want 127.0.0.1:9090", got)
	}
}
