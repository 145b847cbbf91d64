// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package api

import (
	"net/http"
	"time"
)

// healthStatus is the health endpoint payload.
type healthStatus struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
	Database      string `json:"database"`
	CatalogSize   int    `json:"catalogSize"`
	LastSync      string `json:"lastSync,omitempty"`
}

// handleHealth reports process and database health plus catalog freshness.
//
//	@Summary	Health check
//	@Tags		ops
//	@Produce	json
//	@Success	200	{object}	models.APIResponse
//	@Failure	503	{object}	models.APIResponse
//	@Router		/api/v1/health [get]
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	ctx := r.Context()

	health := healthStatus{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(rt.startedAt).Seconds()),
		Database:      "ok",
	}

	if err := rt.store.Ping(ctx); err != nil {
		health.Status = "degraded"
		health.Database = "unreachable"
		respondSuccess(w, http.StatusServiceUnavailable, health, started)
		return
	}

	if count, err := rt.store.CountWelfareRecords(ctx); err == nil {
		health.CatalogSize = count
	}
	if rt.syncer != nil {
		if last := rt.syncer.LastSyncTime(); !last.IsZero() {
			health.LastSync = last.Format(time.RFC3339)
		}
	}

	respondSuccess(w, http.StatusOK, health, started)
}
