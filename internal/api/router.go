// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/welmap/welmap/internal/config"
	"github.com/welmap/welmap/internal/models"
	"github.com/welmap/welmap/internal/welfaresync"
)

// Store is the persistence surface the handlers need. Implemented by
// *database.DB.
type Store interface {
	Ping(ctx context.Context) error
	CountWelfareRecords(ctx context.Context) (int, error)

	InsertSurvey(ctx context.Context, survey *models.Survey) error
	GetSurvey(ctx context.Context, id string) (*models.Survey, error)
	ListSurveysByUser(ctx context.Context, userID string) ([]models.Survey, error)

	GetWelfareRecord(ctx context.Context, serviceID string) (*models.WelfareRecord, error)
	SearchWelfareRecords(ctx context.Context, opts models.SearchWelfareOptions) (*models.SearchWelfareResult, error)
	GetFilterOptions(ctx context.Context) (*models.FilterOptions, error)
}

// Recommender computes welfare matches. Implemented by *recommend.Engine.
type Recommender interface {
	Recommend(ctx context.Context, surveyID string) ([]models.RecommendationResult, error)
	RecommendForSurvey(ctx context.Context, survey *models.Survey) ([]models.RecommendationResult, error)
}

// Syncer triggers catalog ingestion. Implemented by *welfaresync.Manager.
type Syncer interface {
	SyncAll(ctx context.Context) (*welfaresync.SyncStats, error)
	LastSyncTime() time.Time
}

// Router wires handlers to their dependencies and builds the HTTP mux.
type Router struct {
	store       Store
	recommender Recommender
	syncer      Syncer
	cfg         *config.Config
	startedAt   time.Time
}

// NewRouter creates the API router.
func NewRouter(store Store, recommender Recommender, syncer Syncer, cfg *config.Config) *Router {
	return &Router{
		store:       store,
		recommender: recommender,
		syncer:      syncer,
		cfg:         cfg,
		startedAt:   time.Now(),
	}
}

// Handler builds the chi mux with the full middleware stack and routes.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsMiddleware(&rt.cfg.API))

	r.Handle("/metrics", promhttp.Handler())

	if rt.cfg.API.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(securityHeaders)
		r.Use(instrument)
		r.Use(rateLimit(&rt.cfg.API))

		// A full sync paginates three upstream services and can run for
		// minutes; it gets its own generous timeout.
		r.With(requireAdmin(rt.cfg.Security.JWTSecret), chimiddleware.Timeout(30*time.Minute)).
			Get("/welfare/sync", rt.handleTriggerSync)

		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(rt.requestTimeout()))

			r.Get("/health", rt.handleHealth)

			r.Route("/recommendations", func(r chi.Router) {
				r.Post("/survey", rt.handleSubmitSurvey)
				r.Get("/survey/{surveyID}", rt.handleGetRecommendations)
				r.Get("/user/{userID}/history", rt.handleSurveyHistory)
			})

			r.Route("/welfare", func(r chi.Router) {
				r.Get("/filters/options", rt.handleFilterOptions)
				r.Get("/", rt.handleSearchWelfare)
				r.Get("/{serviceID}", rt.handleGetWelfare)
			})
		})
	})

	return r
}

func (rt *Router) requestTimeout() time.Duration {
	if rt.cfg.API.RequestTimeout > 0 {
		return rt.cfg.API.RequestTimeout
	}
	return 10 * time.Second
}
