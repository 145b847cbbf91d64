// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

// Package main is the entry point for the Welmap server.
//
// Welmap matches family caregivers with Korean welfare programs. The
// server keeps a local catalog of welfare services synced from three
// public data portals, scores programs against caregiving surveys, and
// serves the results over a REST API.
//
// Startup order:
//
//  1. Configuration: koanf v2 layering of defaults, config.yaml, and
//     WELMAP_* environment variables
//  2. Logging: zerolog, JSON or console format
//  3. Database: DuckDB catalog and survey storage
//  4. Recommendation engine
//  5. Catalog sync manager for the three upstream providers
//  6. HTTP server under a suture supervision tree
//
// Graceful shutdown on SIGINT and SIGTERM: the supervisor cancels every
// service, the HTTP server drains in-flight requests, and the database
// closes last.
//
// The "token" subcommand mints an operator JWT for the manual sync
// endpoint:
//
//	WELMAP_SECURITY_JWT_SECRET=... ./welmap token
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/welmap/welmap/internal/api"
	"github.com/welmap/welmap/internal/config"
	"github.com/welmap/welmap/internal/database"
	"github.com/welmap/welmap/internal/logging"
	"github.com/welmap/welmap/internal/recommend"
	"github.com/welmap/welmap/internal/supervisor"
	"github.com/welmap/welmap/internal/welfaresync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := printAdminToken(cfg); err != nil {
			logging.Fatal().Err(err).Msg("Failed to issue token")
		}
		return
	}

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Bool("sync_enabled", cfg.Sync.Enabled).
		Int("top_n", cfg.Recommend.TopN).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	engine := recommend.NewEngine(db, db, cfg.Recommend.TopN)

	syncManager := welfaresync.NewManager(db, welfaresync.NewProviders(cfg), &cfg.Sync)

	router := api.NewRouter(db, engine, syncManager, cfg)
	server := api.NewServer(router.Handler(), &cfg.Server)

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if cfg.Sync.Enabled {
		tree.AddIngestService(welfaresync.NewService(syncManager))
		logging.Info().
			Dur("interval", cfg.Sync.Interval).
			Msg("Catalog sync service added to supervisor tree")
	}
	tree.AddAPIService(server)
	logging.Info().Str("addr", cfg.Server.Addr()).Msg("HTTP server service added")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// printAdminToken mints an operator token for the sync endpoint and
// writes it to stdout.
func printAdminToken(cfg *config.Config) error {
	token, err := api.IssueAdminToken(cfg.Security.JWTSecret, cfg.Security.TokenExpiry)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
