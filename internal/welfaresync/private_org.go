// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package welfaresync

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/welmap/welmap/internal/models"
)

// PrivateOrgProvider reads the private-organization support catalog from
// odcloud, a flat JSON dataset with Korean column names. The dataset
// carries no natural record ID, so one is derived deterministically from
// the record's distinguishing text (see syntheticID): the same logical
// record always maps to the same ID across sync runs, keeping the upsert
// idempotent.
type PrivateOrgProvider struct {
	baseURL    string
	serviceKey string
	client     *apiClient
}

// NewPrivateOrgProvider creates the private-organization adapter.
func NewPrivateOrgProvider(baseURL, serviceKey string, client *apiClient) *PrivateOrgProvider {
	return &PrivateOrgProvider{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		client:     client,
	}
}

// Name implements Provider.
func (p *PrivateOrgProvider) Name() string { return "private_org" }

// SourceType implements Provider.
func (p *PrivateOrgProvider) SourceType() models.SourceType { return models.SourcePrivateOrg }

type privateOrgEnvelope struct {
	CurrentCount int              `json:"currentCount"`
	MatchCount   int              `json:"matchCount"`
	Page         int              `json:"page"`
	PerPage      int              `json:"perPage"`
	TotalCount   int              `json:"totalCount"`
	Data         []privateOrgRow  `json:"data"`
}

// privateOrgRow mirrors the odcloud dataset's Korean column names.
type privateOrgRow struct {
	Name        string `json:"사업명"`
	Description string `json:"지원내용"`
	Org         string `json:"기관명"`
	Target      string `json:"지원대상"`
	Category    string `json:"서비스분류"`
	Contact     string `json:"연락처"`
	URL         string `json:"홈페이지"`
	UpdatedAt   string `json:"기준일자"`
}

// FetchPage implements Provider.
func (p *PrivateOrgProvider) FetchPage(ctx context.Context, page, pageSize int) (*Page, error) {
	params := url.Values{}
	params.Set("serviceKey", p.serviceKey)
	params.Set("page", strconv.Itoa(page))
	params.Set("perPage", strconv.Itoa(pageSize))

	body, err := p.client.get(ctx, p.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var envelope privateOrgEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding private org response: %w", err)
	}

	records := make([]models.WelfareRecord, 0, len(envelope.Data))
	for _, row := range envelope.Data {
		if row.Name == "" {
			continue
		}
		records = append(records, p.normalize(row))
	}
	return &Page{Records: records, Total: envelope.TotalCount}, nil
}

func (p *PrivateOrgProvider) normalize(row privateOrgRow) models.WelfareRecord {
	name := strings.TrimSpace(row.Name)
	org := strings.TrimSpace(row.Org)

	return models.WelfareRecord{
		SourceType:      models.SourcePrivateOrg,
		ServiceID:       syntheticID(models.SourcePrivateOrg, name, org),
		ServiceName:     name,
		Description:     strings.TrimSpace(row.Description),
		Provider:        org,
		TargetAudience:  splitTags(row.Target),
		ServiceCategory: splitTags(row.Category),
		Contact:         strings.TrimSpace(row.Contact),
		ServiceURL:      strings.TrimSpace(row.URL),
		LastUpdated:     parseUpstreamDate(row.UpdatedAt),
	}
}

// syntheticID derives a stable record ID for sources without one. The ID
// is a pure function of the source type and the record's distinguishing
// text; it must never mix in time or randomness, or re-ingestion would
// duplicate every record.
func syntheticID(source models.SourceType, name, org string) string {
	sum := sha1.Sum([]byte(string(source) + "|" + name + "|" + org)) //nolint:gosec // fingerprint, not cryptography
	return "GEN-" + hex.EncodeToString(sum[:8])
}
