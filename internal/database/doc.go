// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

// Package database implements DuckDB persistence for the welfare catalog
// and the survey store. Tag lists are stored as JSON-serialized VARCHAR
// columns; upserts are keyed on the provider-stable service_id so repeated
// ingestion runs are idempotent.
package database
