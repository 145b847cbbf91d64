// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package models

import (
	"time"
)

// SourceType identifies the origin of a welfare record.
//
// The catalog is aggregated from three kinds of upstream providers, each with
// its own wire format and field naming. The values are the Korean display
// names used by the original government datasets, so they double as the
// user-facing provenance label.
type SourceType string

const (
	// SourceCentralMinistry is the national ministry welfare list (XML feed).
	SourceCentralMinistry SourceType = "중앙부처"

	// SourceLocalGov is the local-government welfare list (JSON envelope feed).
	SourceLocalGov SourceType = "지자체"

	// SourcePrivateOrg is the private-organization support list (odcloud JSON feed).
	SourcePrivateOrg SourceType = "민간기관"
)

// Valid reports whether the source type is one of the known providers.
func (s SourceType) Valid() bool {
	switch s {
	case SourceCentralMinistry, SourceLocalGov, SourcePrivateOrg:
		return true
	}
	return false
}

// WelfareRecord is one normalized welfare-program entry in the catalog.
//
// Records are created and overwritten exclusively by the ingestion pipeline
// and are read-only everywhere else. ServiceID is the natural key: it is
// either assigned by the upstream provider or derived deterministically from
// the record's distinguishing text, so re-ingesting the same logical record
// always lands on the same row (idempotent upsert).
type WelfareRecord struct {
	// SourceType is the provider category this record was ingested from.
	SourceType SourceType `json:"sourceType"`

	// ServiceID uniquely identifies the program across all providers.
	ServiceID string `json:"serviceId"`

	// ServiceName is the program's display name.
	ServiceName string `json:"serviceName"`

	// Description is the program summary text.
	Description string `json:"description"`

	// Provider is the administering organization (free text).
	Provider string `json:"provider"`

	// TargetAudience lists free-text eligibility tags
	// (e.g. 저소득층, 장애인, 한부모가족). May be empty.
	TargetAudience []string `json:"targetAudience"`

	// LifeCycle lists applicant life-stage tags
	// (영유아, 아동, 청소년, 청년, 중장년, 노년). May be empty.
	LifeCycle []string `json:"lifeCycle"`

	// ServiceCategory lists service-classification tags
	// (e.g. 생활지원, 주거, 교육, 상담). May be empty.
	ServiceCategory []string `json:"serviceCategory"`

	// Contact is the inquiry phone number or address.
	Contact string `json:"contact"`

	// ServiceURL links to the application or detail page.
	ServiceURL string `json:"serviceURL"`

	// LastUpdated is the upstream record timestamp when provided,
	// otherwise the ingestion time.
	LastUpdated time.Time `json:"lastUpdated"`
}

// SearchWelfareOptions holds catalog browse parameters after boundary
// normalization (page and limit already clamped to valid ranges).
type SearchWelfareOptions struct {
	Keyword         string
	Page            int
	Limit           int
	SourceType      string
	ServiceCategory string
	TargetAudience  string
	LifeCycle       string
	Provider        string
	Sort            string // latest | name | provider
}

// SearchWelfareResult is one page of the catalog browse response.
type SearchWelfareResult struct {
	Welfares    []WelfareRecord `json:"welfares"`
	TotalCount  int             `json:"totalCount"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
	HasNextPage bool            `json:"hasNextPage"`
	HasPrevPage bool            `json:"hasPrevPage"`
}

// TagCount pairs a tag value with the number of catalog records carrying it.
// Used by the filter-options endpoint to populate dropdowns.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FilterOptions aggregates the distinct filterable values in the catalog.
type FilterOptions struct {
	SourceTypes       []string   `json:"sourceTypes"`
	ServiceCategories []TagCount `json:"serviceCategories"`
	TargetAudiences   []TagCount `json:"targetAudiences"`
	LifeCycles        []TagCount `json:"lifeCycles"`
	Providers         []TagCount `json:"providers"`
}
