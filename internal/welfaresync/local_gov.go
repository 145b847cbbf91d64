// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package welfaresync

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/welmap/welmap/internal/models"
)

// LocalGovProvider reads the local-government welfare list
// (LcgvWelfarelist), a JSON service sharing the central ministry's field
// vocabulary but wrapped in a count-plus-list envelope. The administering
// province and district are joined into the provider label.
type LocalGovProvider struct {
	baseURL    string
	serviceKey string
	client     *apiClient
}

// NewLocalGovProvider creates the local-government adapter.
func NewLocalGovProvider(baseURL, serviceKey string, client *apiClient) *LocalGovProvider {
	return &LocalGovProvider{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		client:     client,
	}
}

// Name implements Provider.
func (p *LocalGovProvider) Name() string { return "local_gov" }

// SourceType implements Provider.
func (p *LocalGovProvider) SourceType() models.SourceType { return models.SourceLocalGov }

type localGovEnvelope struct {
	TotalCount    int             `json:"totalCount"`
	PageNo        int             `json:"pageNo"`
	ResultCode    string          `json:"resultCode"`
	ResultMessage string          `json:"resultMessage"`
	Services      []localGovEntry `json:"servList"`
}

type localGovEntry struct {
	ServID            string `json:"servId"`
	ServNm            string `json:"servNm"`
	ServDgst          string `json:"servDgst"`
	CtpvNm            string `json:"ctpvNm"`
	SggNm             string `json:"sggNm"`
	BizChrDeptNm      string `json:"bizChrDeptNm"`
	RprsCtadr         string `json:"rprsCtadr"`
	ServDtlLink       string `json:"servDtlLink"`
	LifeNmArray       string `json:"lifeNmArray"`
	TrgterIndvdlNmArray string `json:"trgterIndvdlNmArray"`
	IntrsThemaNmArray string `json:"intrsThemaNmArray"`
	LastModYmd        string `json:"lastModYmd"`
}

// FetchPage implements Provider.
func (p *LocalGovProvider) FetchPage(ctx context.Context, page, pageSize int) (*Page, error) {
	params := url.Values{}
	params.Set("serviceKey", p.serviceKey)
	params.Set("pageNo", strconv.Itoa(page))
	params.Set("numOfRows", strconv.Itoa(pageSize))

	body, err := p.client.get(ctx, p.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var envelope localGovEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding local gov response: %w", err)
	}
	if envelope.ResultCode != "" && envelope.ResultCode != "0" {
		return nil, fmt.Errorf("local gov error %s: %s",
			envelope.ResultCode, envelope.ResultMessage)
	}

	records := make([]models.WelfareRecord, 0, len(envelope.Services))
	for _, entry := range envelope.Services {
		if entry.ServID == "" || entry.ServNm == "" {
			continue
		}
		records = append(records, p.normalize(entry))
	}
	return &Page{Records: records, Total: envelope.TotalCount}, nil
}

func (p *LocalGovProvider) normalize(entry localGovEntry) models.WelfareRecord {
	provider := strings.TrimSpace(strings.TrimSpace(entry.CtpvNm) + " " + strings.TrimSpace(entry.SggNm))
	if provider == "" {
		provider = strings.TrimSpace(entry.BizChrDeptNm)
	}

	return models.WelfareRecord{
		SourceType:      models.SourceLocalGov,
		ServiceID:       entry.ServID,
		ServiceName:     strings.TrimSpace(entry.ServNm),
		Description:     strings.TrimSpace(entry.ServDgst),
		Provider:        provider,
		TargetAudience:  splitTags(entry.TrgterIndvdlNmArray),
		LifeCycle:       splitTags(entry.LifeNmArray),
		ServiceCategory: splitTags(entry.IntrsThemaNmArray),
		Contact:         strings.TrimSpace(entry.RprsCtadr),
		ServiceURL:      strings.TrimSpace(entry.ServDtlLink),
		LastUpdated:     parseUpstreamDate(entry.LastModYmd),
	}
}
