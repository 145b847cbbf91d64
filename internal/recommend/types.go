// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package recommend

import (
	"context"

	"github.com/welmap/welmap/internal/models"
)

// SurveyStore provides survey lookup. Implemented by the database layer.
type SurveyStore interface {
	GetSurvey(ctx context.Context, id string) (*models.Survey, error)
}

// CatalogStore provides the welfare catalog. Implemented by the database
// layer.
type CatalogStore interface {
	ListAllWelfareRecords(ctx context.Context) ([]models.WelfareRecord, error)
}

// scoreBreakdown is the result of scoring one record against one survey.
type scoreBreakdown struct {
	total    int
	criteria []string
}
