// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

// Package models defines the shared domain types for Welmap.
//
// Core types:
//   - Survey: one user's caregiving self-report with closed Korean enum sets
//   - WelfareRecord: one normalized welfare-program catalog entry
//   - RecommendationResult: ephemeral (record, score, matched criteria) triple
//   - APIResponse / APIError / Metadata: HTTP response envelope
//
// The package has no dependencies on other internal packages so that the
// storage, ingestion, matching, and API layers can all share it freely.
package models
