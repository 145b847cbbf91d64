// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package database

import (
	"context"
	"fmt"
)

// Tag columns (target_audience, life_cycle, service_category,
// needed_services) hold JSON arrays serialized as VARCHAR. The vocabularies
// stored there are fixed Korean labels, so substring matching on the
// serialized form is stable.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS welfare_records (
		service_id       VARCHAR PRIMARY KEY,
		source_type      VARCHAR NOT NULL,
		service_name     VARCHAR NOT NULL,
		description      VARCHAR NOT NULL DEFAULT '',
		provider         VARCHAR NOT NULL DEFAULT '',
		target_audience  VARCHAR NOT NULL DEFAULT '[]',
		life_cycle       VARCHAR NOT NULL DEFAULT '[]',
		service_category VARCHAR NOT NULL DEFAULT '[]',
		contact          VARCHAR NOT NULL DEFAULT '',
		service_url      VARCHAR NOT NULL DEFAULT '',
		last_updated     TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS surveys (
		id                      VARCHAR PRIMARY KEY,
		user_id                 VARCHAR NOT NULL,
		location                VARCHAR NOT NULL,
		age_group               VARCHAR NOT NULL,
		employment_status       VARCHAR NOT NULL,
		income_level            VARCHAR NOT NULL,
		care_target             VARCHAR NOT NULL,
		care_period             VARCHAR NOT NULL,
		daily_care_time         VARCHAR NOT NULL,
		needed_services         VARCHAR NOT NULL,
		has_disability          BOOLEAN NOT NULL DEFAULT FALSE,
		is_multicultural_family BOOLEAN NOT NULL DEFAULT FALSE,
		is_single_parent_family BOOLEAN NOT NULL DEFAULT FALSE,
		created_at              TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_welfare_source_type ON welfare_records (source_type)`,
	`CREATE INDEX IF NOT EXISTS idx_welfare_last_updated ON welfare_records (last_updated)`,
	`CREATE INDEX IF NOT EXISTS idx_surveys_user ON surveys (user_id)`,
}

func (db *DB) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}
