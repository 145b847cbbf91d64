// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package welfaresync

import (
	"context"
	"strings"
	"time"

	"github.com/welmap/welmap/internal/models"
)

// Provider fetches one external welfare data source page by page.
type Provider interface {
	// Name is the short machine name used in logs and metrics
	// (central_ministry, local_gov, private_org).
	Name() string

	// SourceType is the catalog provenance label for records from this
	// provider.
	SourceType() models.SourceType

	// FetchPage returns one page of normalized records plus the
	// provider-reported total record count. Pages are 1-based.
	FetchPage(ctx context.Context, page, pageSize int) (*Page, error)
}

// Page is one page of a provider's catalog.
type Page struct {
	Records []models.WelfareRecord
	// Total is the provider-reported total number of records across all
	// pages. The first page's value is the pagination stop target.
	Total int
}

// splitTags splits a comma-separated upstream tag field into trimmed,
// non-empty tags.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// parseUpstreamDate parses the date formats the government services emit
// (compact and dashed day stamps, with or without time). Returns the zero
// time when the value is empty or unparseable; the store stamps those
// records at upsert so repeated syncs of the same payload stay identical.
func parseUpstreamDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{
		"20060102",
		"2006-01-02",
		"2006-01-02 15:04:05",
		time.RFC3339,
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
