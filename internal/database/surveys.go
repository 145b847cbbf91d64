// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/welmap/welmap/internal/metrics"
	"github.com/welmap/welmap/internal/models"
)

const surveyColumns = `id, user_id, location, age_group, employment_status, income_level,
	care_target, care_period, daily_care_time, needed_services,
	has_disability, is_multicultural_family, is_single_parent_family, created_at`

// InsertSurvey stores a new survey, assigning its ID and creation time.
// The survey argument is updated in place with the assigned values.
func (db *DB) InsertSurvey(ctx context.Context, survey *models.Survey) error {
	ctx, cancel := db.queryCtx(ctx)
	defer cancel()

	survey.ID = uuid.New().String()
	survey.CreatedAt = time.Now().UTC()

	services, err := marshalTags(survey.NeededServices)
	if err != nil {
		return err
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx, `INSERT INTO surveys (`+surveyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		survey.ID, survey.UserID, survey.Location, survey.AgeGroup,
		survey.EmploymentStatus, survey.IncomeLevel, survey.CareTarget,
		survey.CarePeriod, survey.DailyCareTime, services,
		survey.HasDisability, survey.IsMulticulturalFamily,
		survey.IsSingleParentFamily, survey.CreatedAt)
	metrics.RecordDBQuery("insert", "surveys", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("inserting survey: %w", err)
	}

	metrics.SurveysSubmitted.Inc()
	return nil
}

// GetSurvey returns the survey with the given ID.
// Returns ErrNotFound when absent.
func (db *DB) GetSurvey(ctx context.Context, id string) (*models.Survey, error) {
	ctx, cancel := db.queryCtx(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+surveyColumns+` FROM surveys WHERE id = ?`, id)

	survey, err := scanSurvey(row)
	metrics.RecordDBQuery("select", "surveys", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("survey %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("querying survey %s: %w", id, err)
	}
	return survey, nil
}

// ListSurveysByUser returns all surveys submitted by a user, newest first.
func (db *DB) ListSurveysByUser(ctx context.Context, userID string) ([]models.Survey, error) {
	ctx, cancel := db.queryCtx(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+surveyColumns+` FROM surveys WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
	metrics.RecordDBQuery("select", "surveys", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("listing surveys for user %s: %w", userID, err)
	}
	defer closeQuietly(rows)

	surveys := make([]models.Survey, 0, 8)
	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning survey: %w", err)
		}
		surveys = append(surveys, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating surveys: %w", err)
	}
	return surveys, nil
}

func scanSurvey(row rowScanner) (*models.Survey, error) {
	var s models.Survey
	var services string

	err := row.Scan(&s.ID, &s.UserID, &s.Location, &s.AgeGroup, &s.EmploymentStatus,
		&s.IncomeLevel, &s.CareTarget, &s.CarePeriod, &s.DailyCareTime, &services,
		&s.HasDisability, &s.IsMulticulturalFamily, &s.IsSingleParentFamily, &s.CreatedAt)
	if err != nil {
		return nil, err
	}

	if s.NeededServices, err = unmarshalTags(services); err != nil {
		return nil, err
	}
	return &s, nil
}
