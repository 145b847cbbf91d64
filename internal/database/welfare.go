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
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/welmap/welmap/internal/metrics"
	"github.com/welmap/welmap/internal/models"
)

const welfareColumns = `service_id, source_type, service_name, description, provider,
	target_audience, life_cycle, service_category, contact, service_url, last_updated`

// BulkUpsertWelfareRecords writes records into the catalog in one
// transaction. Existing rows with the same service_id are replaced, so
// re-running ingestion against unchanged upstream data is a no-op in effect.
// Returns the number of records written.
func (db *DB) BulkUpsertWelfareRecords(ctx context.Context, records []models.WelfareRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	ctx, cancel := db.queryCtx(ctx)
	defer cancel()

	start := time.Now()
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO welfare_records (`+welfareColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing upsert: %w", err)
	}
	defer closeQuietly(stmt)

	written := 0
	for i := range records {
		r := &records[i]
		if r.ServiceID == "" {
			return written, fmt.Errorf("record %d has empty service id", i)
		}

		audience, err := marshalTags(r.TargetAudience)
		if err != nil {
			return written, err
		}
		lifeCycle, err := marshalTags(r.LifeCycle)
		if err != nil {
			return written, err
		}
		category, err := marshalTags(r.ServiceCategory)
		if err != nil {
			return written, err
		}

		lastUpdated := r.LastUpdated
		if lastUpdated.IsZero() {
			lastUpdated = time.Now().UTC()
		}

		if _, err := stmt.ExecContext(ctx,
			r.ServiceID, string(r.SourceType), r.ServiceName, r.Description, r.Provider,
			audience, lifeCycle, category, r.Contact, r.ServiceURL, lastUpdated,
		); err != nil {
			metrics.RecordDBQuery("upsert", "welfare_records", time.Since(start), err)
			return written, fmt.Errorf("upserting record %s: %w", r.ServiceID, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		metrics.RecordDBQuery("upsert", "welfare_records", time.Since(start), err)
		return 0, fmt.Errorf("committing upsert: %w", err)
	}

	metrics.RecordDBQuery("upsert", "welfare_records", time.Since(start), nil)
	return written, nil
}

// GetWelfareRecord returns the catalog record with the given service ID.
// Returns ErrNotFound when absent.
func (db *DB) GetWelfareRecord(ctx context.Context, serviceID string) (*models.WelfareRecord, error) {
	ctx, cancel := db.queryCtx(ctx)
	defer cancel()

	start := time.Now()
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+welfareColumns+` FROM welfare_records WHERE service_id = ?`, serviceID)

	record, err := scanWelfareRecord(row)
	metrics.RecordDBQuery("select", "welfare_records", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("welfare record %s: %w", serviceID, ErrNotFound)
		}
		return nil, fmt.Errorf("querying welfare record %s: %w", serviceID, err)
	}
	return record, nil
}

// ListAllWelfareRecords streams the full catalog, ordered by service ID so
// repeated scoring runs see records in a stable order.
func (db *DB) ListAllWelfareRecords(ctx context.Context) ([]models.WelfareRecord, error) {
	ctx, cancel := db.queryCtx(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+welfareColumns+` FROM welfare_records ORDER BY service_id`)
	metrics.RecordDBQuery("select", "welfare_records", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("listing welfare records: %w", err)
	}
	defer closeQuietly(rows)

	return collectWelfareRecords(rows)
}

// SearchWelfareRecords runs a paginated catalog browse query.
func (db *DB) SearchWelfareRecords(ctx context.Context, opts models.SearchWelfareOptions) (*models.SearchWelfareResult, error) {
	ctx, cancel := db.queryCtx(ctx)
	defer cancel()

	where, args := buildWelfareFilter(opts)

	start := time.Now()
	var total int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM welfare_records`+where, args...).Scan(&total)
	if err != nil {
		metrics.RecordDBQuery("select", "welfare_records", time.Since(start), err)
		return nil, fmt.Errorf("counting welfare records: %w", err)
	}

	orderBy := welfareOrderClause(opts.Sort)
	offset := (opts.Page - 1) * opts.Limit

	query := `SELECT ` + welfareColumns + ` FROM welfare_records` + where + orderBy + ` LIMIT ? OFFSET ?`
	rows, err := db.conn.QueryContext(ctx, query, append(args, opts.Limit, offset)...)
	metrics.RecordDBQuery("select", "welfare_records", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("searching welfare records: %w", err)
	}
	defer closeQuietly(rows)

	welfares, err := collectWelfareRecords(rows)
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + opts.Limit - 1) / opts.Limit
	}

	return &models.SearchWelfareResult{
		Welfares:    welfares,
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: opts.Page,
		HasNextPage: opts.Page < totalPages,
		HasPrevPage: opts.Page > 1 && total > 0,
	}, nil
}

// GetFilterOptions aggregates the distinct filterable values in the catalog
// with per-value record counts.
func (db *DB) GetFilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	ctx, cancel := db.queryCtx(ctx)
	defer cancel()

	opts := &models.FilterOptions{
		SourceTypes: []string{
			string(models.SourceCentralMinistry),
			string(models.SourceLocalGov),
			string(models.SourcePrivateOrg),
		},
	}

	var err error
	if opts.ServiceCategories, err = db.tagCounts(ctx, "service_category"); err != nil {
		return nil, err
	}
	if opts.TargetAudiences, err = db.tagCounts(ctx, "target_audience"); err != nil {
		return nil, err
	}
	if opts.LifeCycles, err = db.tagCounts(ctx, "life_cycle"); err != nil {
		return nil, err
	}
	if opts.Providers, err = db.providerCounts(ctx); err != nil {
		return nil, err
	}
	return opts, nil
}

// tagCounts unnests one JSON-array tag column into (value, count) pairs
// ordered by descending frequency.
func (db *DB) tagCounts(ctx context.Context, column string) ([]models.TagCount, error) {
	// column is one of three compile-time constants, never user input.
	query := fmt.Sprintf(`SELECT tag, COUNT(*) AS cnt
		FROM (SELECT unnest(json_extract_string(%s, '$[*]')) AS tag FROM welfare_records)
		WHERE tag IS NOT NULL AND tag <> ''
		GROUP BY tag
		ORDER BY cnt DESC, tag`, column)

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query)
	metrics.RecordDBQuery("select", "welfare_records", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("aggregating %s tags: %w", column, err)
	}
	defer closeQuietly(rows)

	return collectTagCounts(rows)
}

func (db *DB) providerCounts(ctx context.Context) ([]models.TagCount, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `SELECT provider, COUNT(*) AS cnt
		FROM welfare_records
		WHERE provider <> ''
		GROUP BY provider
		ORDER BY cnt DESC, provider`)
	metrics.RecordDBQuery("select", "welfare_records", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("aggregating providers: %w", err)
	}
	defer closeQuietly(rows)

	return collectTagCounts(rows)
}

// CountWelfareRecords returns the total catalog size.
func (db *DB) CountWelfareRecords(ctx context.Context) (int, error) {
	ctx, cancel := db.queryCtx(ctx)
	defer cancel()

	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM welfare_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting welfare records: %w", err)
	}
	return count, nil
}

func buildWelfareFilter(opts models.SearchWelfareOptions) (string, []any) {
	var clauses []string
	var args []any

	if opts.Keyword != "" {
		clauses = append(clauses, `(service_name ILIKE ? OR description ILIKE ? OR provider ILIKE ?)`)
		pattern := "%" + opts.Keyword + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if opts.SourceType != "" {
		clauses = append(clauses, `source_type = ?`)
		args = append(args, opts.SourceType)
	}
	if opts.Provider != "" {
		clauses = append(clauses, `provider ILIKE ?`)
		args = append(args, "%"+opts.Provider+"%")
	}
	// Tag columns hold JSON arrays of quoted strings; containment reduces
	// to a substring match on the quoted element.
	for _, tag := range []struct {
		column string
		value  string
	}{
		{"service_category", opts.ServiceCategory},
		{"target_audience", opts.TargetAudience},
		{"life_cycle", opts.LifeCycle},
	} {
		if tag.value == "" {
			continue
		}
		clauses = append(clauses, tag.column+` LIKE ?`)
		quoted, _ := json.Marshal(tag.value)
		args = append(args, "%"+string(quoted)+"%")
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func welfareOrderClause(sort string) string {
	switch sort {
	case "name":
		return ` ORDER BY service_name, service_id`
	case "provider":
		return ` ORDER BY provider, service_name, service_id`
	default: // latest
		return ` ORDER BY last_updated DESC, service_id`
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWelfareRecord(row rowScanner) (*models.WelfareRecord, error) {
	var r models.WelfareRecord
	var sourceType, audience, lifeCycle, category string

	err := row.Scan(&r.ServiceID, &sourceType, &r.ServiceName, &r.Description, &r.Provider,
		&audience, &lifeCycle, &category, &r.Contact, &r.ServiceURL, &r.LastUpdated)
	if err != nil {
		return nil, err
	}

	r.SourceType = models.SourceType(sourceType)
	if r.TargetAudience, err = unmarshalTags(audience); err != nil {
		return nil, err
	}
	if r.LifeCycle, err = unmarshalTags(lifeCycle); err != nil {
		return nil, err
	}
	if r.ServiceCategory, err = unmarshalTags(category); err != nil {
		return nil, err
	}
	return &r, nil
}

func collectWelfareRecords(rows *sql.Rows) ([]models.WelfareRecord, error) {
	records := make([]models.WelfareRecord, 0, 64)
	for rows.Next() {
		r, err := scanWelfareRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning welfare record: %w", err)
		}
		records = append(records, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating welfare records: %w", err)
	}
	return records, nil
}

func collectTagCounts(rows *sql.Rows) ([]models.TagCount, error) {
	counts := make([]models.TagCount, 0, 16)
	for rows.Next() {
		var tc models.TagCount
		if err := rows.Scan(&tc.Name, &tc.Count); err != nil {
			return nil, fmt.Errorf("scanning tag count: %w", err)
		}
		counts = append(counts, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tag counts: %w", err)
	}
	return counts, nil
}

func marshalTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("marshaling tags: %w", err)
	}
	return string(b), nil
}

func unmarshalTags(raw string) ([]string, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("unmarshaling tags %q: %w", raw, err)
	}
	return tags, nil
}
