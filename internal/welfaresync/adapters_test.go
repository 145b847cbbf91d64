// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package welfaresync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/welmap/welmap/internal/models"
)

func testClient(name string) *apiClient {
	return newAPIClient(name, 5*time.Second, 1000)
}

func TestCentralMinistryFetchPage(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"serviceKey":  q.Get("serviceKey"),
			"callTp":      q.Get("callTp"),
			"srchKeyCode": q.Get("srchKeyCode"),
			"pageNo":      q.Get("pageNo"),
			"numOfRows":   q.Get("numOfRows"),
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<wantedList>
  <totalCount>2</totalCount>
  <pageNo>1</pageNo>
  <resultCode>0</resultCode>
  <resultMessage>SUCCESS</resultMessage>
  <servList>
    <servId>WLF00001</servId>
    <servNm>가족돌봄청년 지원</servNm>
    <servDgst>가족을 돌보는 청년 대상 통합 지원</servDgst>
    <jurMnofNm>보건복지부</jurMnofNm>
    <jurOrgNm>복지정책과</jurOrgNm>
    <rprsCtadr>129</rprsCtadr>
    <servDtlLink>https://www.bokjiro.go.kr/WLF00001</servDtlLink>
    <lifeArray>청년</lifeArray>
    <trgterIndvdlArray>저소득층,한부모·조손</trgterIndvdlArray>
    <intrsThemaArray>생활지원, 상담</intrsThemaArray>
    <svcfrstRegTs>20250301</svcfrstRegTs>
  </servList>
  <servList>
    <servId>WLF00002</servId>
    <servNm>긴급복지 생계지원</servNm>
    <servDgst>위기가구 생계비 지원</servDgst>
    <jurMnofNm>보건복지부</jurMnofNm>
    <jurOrgNm></jurOrgNm>
    <intrsThemaArray>생계</intrsThemaArray>
  </servList>
</wantedList>`))
	}))
	defer server.Close()

	provider := NewCentralMinistryProvider(server.URL, "test-key", testClient("cm-test"))
	page, err := provider.FetchPage(context.Background(), 1, 500)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotQuery["serviceKey"] != "test-key" || gotQuery["callTp"] != "L" ||
		gotQuery["srchKeyCode"] != "003" || gotQuery["pageNo"] != "1" || gotQuery["numOfRows"] != "500" {
		t.Errorf("query params = %v", gotQuery)
	}
	if page.Total != 2 || len(page.Records) != 2 {
		t.Fatalf("total = %d, records = %d", page.Total, len(page.Records))
	}

	first := page.Records[0]
	if first.ServiceID != "WLF00001" || first.SourceType != models.SourceCentralMinistry {
		t.Errorf("identity wrong: %+v", first)
	}
	if first.Provider != "보건복지부 복지정책과" {
		t.Errorf("provider = %q, want joined ministry and org", first.Provider)
	}
	if len(first.ServiceCategory) != 2 || first.ServiceCategory[1] != "상담" {
		t.Errorf("categories not comma-split and trimmed: %v", first.ServiceCategory)
	}
	if first.LastUpdated.Format("2006-01-02") != "2025-03-01" {
		t.Errorf("last updated = %v", first.LastUpdated)
	}

	second := page.Records[1]
	if second.Provider != "보건복지부" {
		t.Errorf("empty org should not leave trailing space: %q", second.Provider)
	}
}

func TestCentralMinistryUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<wantedList><resultCode>30</resultCode><resultMessage>SERVICE KEY IS NOT REGISTERED</resultMessage></wantedList>`))
	}))
	defer server.Close()

	provider := NewCentralMinistryProvider(server.URL, "bad-key", testClient("cm-err"))
	_, err := provider.FetchPage(context.Background(), 1, 500)
	if err == nil {
		t.Fatal("expected upstream error")
	}
}

func TestLocalGovFetchPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"totalCount": 1,
			"pageNo": 1,
			"resultCode": "0",
			"servList": [{
				"servId": "LCG00001",
				"servNm": "서울형 돌봄 SOS",
				"servDgst": "갑작스러운 돌봄 공백 지원",
				"ctpvNm": "서울특별시",
				"sggNm": "강남구",
				"rprsCtadr": "02-120",
				"servDtlLink": "https://wis.seoul.go.kr",
				"lifeNmArray": "중장년,노년",
				"intrsThemaNmArray": "보호·돌봄",
				"lastModYmd": "2025-06-15"
			}]
		}`))
	}))
	defer server.Close()

	provider := NewLocalGovProvider(server.URL, "test-key", testClient("lg-test"))
	page, err := provider.FetchPage(context.Background(), 1, 500)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if page.Total != 1 || len(page.Records) != 1 {
		t.Fatalf("total = %d, records = %d", page.Total, len(page.Records))
	}

	rec := page.Records[0]
	if rec.SourceType != models.SourceLocalGov {
		t.Errorf("source type = %q", rec.SourceType)
	}
	if rec.Provider != "서울특별시 강남구" {
		t.Errorf("provider = %q", rec.Provider)
	}
	if len(rec.LifeCycle) != 2 || rec.LifeCycle[1] != "노년" {
		t.Errorf("life cycle = %v", rec.LifeCycle)
	}
}

func TestPrivateOrgFetchPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("perPage") != "500" {
			t.Errorf("perPage = %q", r.URL.Query().Get("perPage"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"currentCount": 1,
			"page": 1,
			"perPage": 500,
			"totalCount": 1,
			"data": [{
				"사업명": "청년 마음건강 바우처",
				"지원내용": "심리상담 비용 지원",
				"기관명": "사랑의열매",
				"지원대상": "청년",
				"서비스분류": "상담",
				"연락처": "1588-1234",
				"홈페이지": "https://example.org"
			}]
		}`))
	}))
	defer server.Close()

	provider := NewPrivateOrgProvider(server.URL, "test-key", testClient("po-test"))
	page, err := provider.FetchPage(context.Background(), 1, 500)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(page.Records) != 1 {
		t.Fatalf("records = %d", len(page.Records))
	}

	rec := page.Records[0]
	if rec.SourceType != models.SourcePrivateOrg {
		t.Errorf("source type = %q", rec.SourceType)
	}
	if rec.ServiceID == "" || rec.ServiceID[:4] != "GEN-" {
		t.Errorf("service id = %q, want GEN- prefix", rec.ServiceID)
	}
	if rec.Provider != "사랑의열매" || rec.ServiceName != "청년 마음건강 바우처" {
		t.Errorf("record fields wrong: %+v", rec)
	}
}

func TestSyntheticIDDeterministic(t *testing.T) {
	a := syntheticID(models.SourcePrivateOrg, "사업A", "기관A")
	b := syntheticID(models.SourcePrivateOrg, "사업A", "기관A")
	if a != b {
		t.Errorf("same inputs produced different IDs: %s vs %s", a, b)
	}

	c := syntheticID(models.SourcePrivateOrg, "사업B", "기관A")
	if a == c {
		t.Errorf("different names collided: %s", a)
	}
	d := syntheticID(models.SourceLocalGov, "사업A", "기관A")
	if a == d {
		t.Errorf("different source types collided: %s", a)
	}
}

func TestClientRejectsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testClient("err-test")
	if _, err := client.get(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestParseUpstreamDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"20250301", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-03-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-03-01 09:30:00", time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)},
		{" 2025-03-01 ", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"", time.Time{}},
		{"상시", time.Time{}},
	}
	for _, tt := range tests {
		if got := parseUpstreamDate(tt.in); !got.Equal(tt.want) {
			t.Errorf("parseUpstreamDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// Re-parsing the same unparseable value must yield the same timestamp so
// repeated syncs do not rewrite unchanged records.
func TestParseUpstreamDateDeterministic(t *testing.T) {
	first := parseUpstreamDate("미정")
	second := parseUpstreamDate("미정")
	if !first.Equal(second) {
		t.Errorf("unparseable date not stable: %v vs %v", first, second)
	}
	if !first.IsZero() {
		t.Errorf("unparseable date = %v, want zero time", first)
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"생활지원", []string{"생활지원"}},
		{"생활지원, 상담 ,주거", []string{"생활지원", "상담", "주거"}},
		{", ,", nil},
	}
	for _, tt := range tests {
		got := splitTags(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitTags(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitTags(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
