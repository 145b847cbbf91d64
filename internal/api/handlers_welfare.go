// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/welmap/welmap/internal/database"
	"github.com/welmap/welmap/internal/models"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// handleSearchWelfare browses the welfare catalog with filtering,
// pagination, and sorting.
//
//	@Summary	Browse the welfare catalog
//	@Tags		welfare
//	@Produce	json
//	@Param		keyword			query		string	false	"Name/description keyword"
//	@Param		page			query		int		false	"Page number (1-based)"
//	@Param		limit			query		int		false	"Page size (max 100)"
//	@Param		sourceType		query		string	false	"Provenance filter"
//	@Param		serviceCategory	query		string	false	"Service category tag"
//	@Param		targetAudience	query		string	false	"Target audience tag"
//	@Param		lifeCycle		query		string	false	"Life cycle tag"
//	@Param		provider		query		string	false	"Administering organization"
//	@Param		sort			query		string	false	"latest | name | provider"
//	@Success	200				{object}	models.APIResponse
//	@Router		/api/v1/welfare [get]
func (rt *Router) handleSearchWelfare(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	q := r.URL.Query()

	sort := q.Get("sort")
	switch sort {
	case "latest", "name", "provider":
	default:
		sort = "latest"
	}

	opts := models.SearchWelfareOptions{
		Keyword:         q.Get("keyword"),
		Page:            queryInt(r, "page", 1, 1, 1<<30),
		Limit:           queryInt(r, "limit", defaultPageLimit, 1, maxPageLimit),
		SourceType:      q.Get("sourceType"),
		ServiceCategory: q.Get("serviceCategory"),
		TargetAudience:  q.Get("targetAudience"),
		LifeCycle:       q.Get("lifeCycle"),
		Provider:        q.Get("provider"),
		Sort:            sort,
	}

	result, err := rt.store.SearchWelfareRecords(r.Context(), opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabaseError,
			"failed to search welfare records", err)
		return
	}

	respondSuccess(w, http.StatusOK, result, started)
}

// handleGetWelfare returns one catalog record by service ID.
//
//	@Summary	Get one welfare program
//	@Tags		welfare
//	@Produce	json
//	@Param		serviceID	path		string	true	"Service ID"
//	@Success	200			{object}	models.APIResponse
//	@Failure	404			{object}	models.APIResponse
//	@Router		/api/v1/welfare/{serviceID} [get]
func (rt *Router) handleGetWelfare(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	serviceID := chi.URLParam(r, "serviceID")

	record, err := rt.store.GetWelfareRecord(r.Context(), serviceID)
	if err != nil {
		if database.IsNotFound(err) {
			respondError(w, http.StatusNotFound, codeNotFound,
				"welfare record not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeDatabaseError,
			"failed to load welfare record", err)
		return
	}

	respondSuccess(w, http.StatusOK, record, started)
}

// handleFilterOptions returns the distinct filterable values in the
// catalog for populating browse dropdowns.
//
//	@Summary	List catalog filter options
//	@Tags		welfare
//	@Produce	json
//	@Success	200	{object}	models.APIResponse
//	@Router		/api/v1/welfare/filters/options [get]
func (rt *Router) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	options, err := rt.store.GetFilterOptions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabaseError,
			"failed to aggregate filter options", err)
		return
	}

	respondSuccess(w, http.StatusOK, options, started)
}

// handleTriggerSync runs a full catalog sync across all providers and
// returns the per-provider results. Admin only.
//
//	@Summary	Trigger a full catalog sync
//	@Tags		welfare
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	models.APIResponse
//	@Router		/api/v1/welfare/sync [get]
func (rt *Router) handleTriggerSync(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	stats, err := rt.syncer.SyncAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeSyncError,
			"sync could not run", err)
		return
	}

	status := http.StatusOK
	if !stats.Succeeded() {
		// Partial success still returns the stats; the caller inspects
		// per-provider errors.
		status = http.StatusMultiStatus
	}
	respondSuccess(w, status, stats, started)
}
