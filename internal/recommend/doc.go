// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

// Package recommend implements the rule-based welfare matching engine.
//
// Given a caregiving survey, the engine scores every catalog record along
// six weighted criteria (keyword relevance, age fit, care-context fit,
// income fit, needed-service fit, special circumstances), filters out
// inapplicable and zero-scoring programs, and returns the top matches in
// descending score order. Scoring is pure and deterministic: the same
// survey against the same catalog always produces the same ranking.
//
// Survey and catalog access go through the SurveyStore and CatalogStore
// interfaces, implemented by the database layer.
package recommend
