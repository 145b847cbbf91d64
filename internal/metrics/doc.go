// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

// Package metrics defines the Prometheus collectors for the HTTP API,
// the DuckDB layer, the welfare data ingestion pipeline, and the
// recommendation engine. Collectors auto-register via promauto and are
// exposed on /metrics.
package metrics
