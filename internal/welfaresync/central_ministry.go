// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package welfaresync

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/welmap/welmap/internal/models"
)

// CentralMinistryProvider reads the national ministry welfare list
// (NationalWelfarelistV001), an XML service. A resultCode of "0" marks a
// successful response; anything else is an upstream error carried in
// resultMessage.
type CentralMinistryProvider struct {
	baseURL    string
	serviceKey string
	client     *apiClient
}

// NewCentralMinistryProvider creates the central ministry adapter.
func NewCentralMinistryProvider(baseURL, serviceKey string, client *apiClient) *CentralMinistryProvider {
	return &CentralMinistryProvider{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		client:     client,
	}
}

// Name implements Provider.
func (p *CentralMinistryProvider) Name() string { return "central_ministry" }

// SourceType implements Provider.
func (p *CentralMinistryProvider) SourceType() models.SourceType {
	return models.SourceCentralMinistry
}

// wantedList is the XML response envelope of the central ministry service.
type wantedList struct {
	XMLName       xml.Name       `xml:"wantedList"`
	TotalCount    int            `xml:"totalCount"`
	PageNo        int            `xml:"pageNo"`
	ResultCode    string         `xml:"resultCode"`
	ResultMessage string         `xml:"resultMessage"`
	Services      []centralEntry `xml:"servList"`
}

type centralEntry struct {
	ServID            string `xml:"servId"`
	ServNm            string `xml:"servNm"`
	ServDgst          string `xml:"servDgst"`
	JurMnofNm         string `xml:"jurMnofNm"`
	JurOrgNm          string `xml:"jurOrgNm"`
	RprsCtadr         string `xml:"rprsCtadr"`
	ServDtlLink       string `xml:"servDtlLink"`
	LifeArray         string `xml:"lifeArray"`
	TrgterIndvdlArray string `xml:"trgterIndvdlArray"`
	IntrsThemaArray   string `xml:"intrsThemaArray"`
	SvcfrstRegTs      string `xml:"svcfrstRegTs"`
}

// FetchPage implements Provider.
func (p *CentralMinistryProvider) FetchPage(ctx context.Context, page, pageSize int) (*Page, error) {
	params := url.Values{}
	params.Set("serviceKey", p.serviceKey)
	params.Set("callTp", "L")
	params.Set("srchKeyCode", "003")
	params.Set("pageNo", strconv.Itoa(page))
	params.Set("numOfRows", strconv.Itoa(pageSize))

	body, err := p.client.get(ctx, p.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var envelope wantedList
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding central ministry response: %w", err)
	}
	if envelope.ResultCode != "" && envelope.ResultCode != "0" {
		return nil, fmt.Errorf("central ministry error %s: %s",
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

func (p *CentralMinistryProvider) normalize(entry centralEntry) models.WelfareRecord {
	provider := strings.TrimSpace(strings.TrimSpace(entry.JurMnofNm) + " " + strings.TrimSpace(entry.JurOrgNm))

	return models.WelfareRecord{
		SourceType:      models.SourceCentralMinistry,
		ServiceID:       entry.ServID,
		ServiceName:     strings.TrimSpace(entry.ServNm),
		Description:     strings.TrimSpace(entry.ServDgst),
		Provider:        provider,
		TargetAudience:  splitTags(entry.TrgterIndvdlArray),
		LifeCycle:       splitTags(entry.LifeArray),
		ServiceCategory: splitTags(entry.IntrsThemaArray),
		Contact:         strings.TrimSpace(entry.RprsCtadr),
		ServiceURL:      strings.TrimSpace(entry.ServDtlLink),
		LastUpdated:     parseUpstreamDate(entry.SvcfrstRegTs),
	}
}
