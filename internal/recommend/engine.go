// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/welmap/welmap/internal/logging"
	"github.com/welmap/welmap/internal/metrics"
	"github.com/welmap/welmap/internal/models"
)

// Engine computes welfare recommendations for surveys.
// It is stateless apart from its store handles and safe for concurrent use.
type Engine struct {
	surveys SurveyStore
	catalog CatalogStore
	topN    int
	logger  zerolog.Logger
}

// NewEngine creates an engine returning at most topN results per survey.
func NewEngine(surveys SurveyStore, catalog CatalogStore, topN int) *Engine {
	if topN < 1 {
		topN = 10
	}
	return &Engine{
		surveys: surveys,
		catalog: catalog,
		topN:    topN,
		logger:  logging.With().Str("component", "recommend").Logger(),
	}
}

// Recommend loads the survey and matches it against the full catalog. The
// survey store's not-found error passes through unwrapped so callers can
// translate it to their own error surface.
func (e *Engine) Recommend(ctx context.Context, surveyID string) ([]models.RecommendationResult, error) {
	survey, err := e.surveys.GetSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return e.RecommendForSurvey(ctx, survey)
}

// RecommendForSurvey matches an already-loaded survey against the catalog.
// Used directly on survey submission to avoid a redundant read.
func (e *Engine) RecommendForSurvey(ctx context.Context, survey *models.Survey) ([]models.RecommendationResult, error) {
	start := time.Now()

	records, err := e.catalog.ListAllWelfareRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading welfare catalog: %w", err)
	}

	results := Rank(survey, records, e.topN)

	metrics.RecordRecommendation(time.Since(start), len(results))
	e.logger.Debug().
		Str("survey_id", survey.ID).
		Int("catalog_size", len(records)).
		Int("results", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("recommendation computed")

	return results, nil
}

// Rank scores every record against the survey, drops zero scores, and
// returns the top n in descending score order. The sort is stable over the
// input order, so equal-scoring records keep their catalog order and the
// ranking is deterministic.
func Rank(survey *models.Survey, records []models.WelfareRecord, n int) []models.RecommendationResult {
	results := make([]models.RecommendationResult, 0, len(records))
	for i := range records {
		breakdown := scoreRecord(survey, &records[i])
		if breakdown.total <= 0 {
			continue
		}
		results = append(results, models.RecommendationResult{
			Welfare:         records[i],
			Score:           breakdown.total,
			MatchedCriteria: breakdown.criteria,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > n {
		results = results[:n]
	}
	return results
}

// Score computes the match score and matched criteria for a single record.
func Score(survey *models.Survey, record *models.WelfareRecord) (int, []string) {
	breakdown := scoreRecord(survey, record)
	return breakdown.total, breakdown.criteria
}
