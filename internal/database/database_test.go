// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package database

import (
	"context"
	"testing"
	"time"

	"github.com/welmap/welmap/internal/config"
	"github.com/welmap/welmap/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(&config.DatabaseConfig{
		Path:         ":memory:",
		QueryTimeout: 30 * time.Second,
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testRecord(id, name, desc string) models.WelfareRecord {
	return models.WelfareRecord{
		SourceType:      models.SourceCentralMinistry,
		ServiceID:       id,
		ServiceName:     name,
		Description:     desc,
		Provider:        "보건복지부",
		TargetAudience:  []string{"저소득층"},
		LifeCycle:       []string{"청년"},
		ServiceCategory: []string{"생활지원"},
		Contact:         "129",
		ServiceURL:      "https://www.bokjiro.go.kr",
		LastUpdated:     time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestPing(t *testing.T) {
	db := testDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestBulkUpsertAndGet(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	records := []models.WelfareRecord{
		testRecord("WLF001", "가족돌봄청년 지원", "가족을 돌보는 청년 대상 지원"),
		testRecord("WLF002", "긴급복지 생계지원", "위기가구 생계비 지원"),
	}

	n, err := db.BulkUpsertWelfareRecords(ctx, records)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if n != 2 {
		t.Errorf("upsert count = %d, want 2", n)
	}

	got, err := db.GetWelfareRecord(ctx, "WLF001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ServiceName != "가족돌봄청년 지원" {
		t.Errorf("service name = %q", got.ServiceName)
	}
	if len(got.TargetAudience) != 1 || got.TargetAudience[0] != "저소득층" {
		t.Errorf("target audience = %v", got.TargetAudience)
	}
	if got.SourceType != models.SourceCentralMinistry {
		t.Errorf("source type = %q", got.SourceType)
	}
}

func TestBulkUpsertIsIdempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	records := []models.WelfareRecord{testRecord("WLF001", "원래 이름", "설명")}
	if _, err := db.BulkUpsertWelfareRecords(ctx, records); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	records[0].ServiceName = "바뀐 이름"
	if _, err := db.BulkUpsertWelfareRecords(ctx, records); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	count, err := db.CountWelfareRecords(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 (replace, not duplicate)", count)
	}

	got, err := db.GetWelfareRecord(ctx, "WLF001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ServiceName != "바뀐 이름" {
		t.Errorf("service name = %q, want updated value", got.ServiceName)
	}
}

func TestBulkUpsertRejectsEmptyServiceID(t *testing.T) {
	db := testDB(t)
	rec := testRecord("", "이름", "설명")
	if _, err := db.BulkUpsertWelfareRecords(context.Background(), []models.WelfareRecord{rec}); err == nil {
		t.Fatal("expected error for empty service id")
	}
}

func TestGetWelfareRecordNotFound(t *testing.T) {
	db := testDB(t)
	_, err := db.GetWelfareRecord(context.Background(), "NOPE")
	if !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchWelfareRecords(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	a := testRecord("WLF001", "가족돌봄청년 지원사업", "영케어러 대상")
	a.LastUpdated = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	b := testRecord("WLF002", "노인 돌봄 서비스", "어르신 돌봄")
	b.SourceType = models.SourceLocalGov
	b.Provider = "서울특별시"
	b.ServiceCategory = []string{"보호·돌봄"}
	b.LastUpdated = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	c := testRecord("WLF003", "청년 주거비 지원", "월세 지원")
	c.ServiceCategory = []string{"주거"}
	c.LastUpdated = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := db.BulkUpsertWelfareRecords(ctx, []models.WelfareRecord{a, b, c}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	t.Run("keyword", func(t *testing.T) {
		res, err := db.SearchWelfareRecords(ctx, models.SearchWelfareOptions{
			Keyword: "청년", Page: 1, Limit: 20,
		})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if res.TotalCount != 2 {
			t.Errorf("total = %d, want 2", res.TotalCount)
		}
	})

	t.Run("keyword matches provider", func(t *testing.T) {
		res, err := db.SearchWelfareRecords(ctx, models.SearchWelfareOptions{
			Keyword: "서울", Page: 1, Limit: 20,
		})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if res.TotalCount != 1 || res.Welfares[0].ServiceID != "WLF002" {
			t.Errorf("provider keyword match failed: %+v", res)
		}
	})

	t.Run("provider filter is partial", func(t *testing.T) {
		res, err := db.SearchWelfareRecords(ctx, models.SearchWelfareOptions{
			Provider: "서울", Page: 1, Limit: 20,
		})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if res.TotalCount != 1 || res.Welfares[0].ServiceID != "WLF002" {
			t.Errorf("partial provider match failed: %+v", res)
		}
	})

	t.Run("source type filter", func(t *testing.T) {
		res, err := db.SearchWelfareRecords(ctx, models.SearchWelfareOptions{
			SourceType: string(models.SourceLocalGov), Page: 1, Limit: 20,
		})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if res.TotalCount != 1 || res.Welfares[0].ServiceID != "WLF002" {
			t.Errorf("unexpected result: %+v", res)
		}
	})

	t.Run("category filter", func(t *testing.T) {
		res, err := db.SearchWelfareRecords(ctx, models.SearchWelfareOptions{
			ServiceCategory: "주거", Page: 1, Limit: 20,
		})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if res.TotalCount != 1 || res.Welfares[0].ServiceID != "WLF003" {
			t.Errorf("unexpected result: %+v", res)
		}
	})

	t.Run("latest sort", func(t *testing.T) {
		res, err := db.SearchWelfareRecords(ctx, models.SearchWelfareOptions{
			Page: 1, Limit: 20, Sort: "latest",
		})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(res.Welfares) != 3 || res.Welfares[0].ServiceID != "WLF001" {
			t.Errorf("latest-first order violated: %+v", res.Welfares)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		res, err := db.SearchWelfareRecords(ctx, models.SearchWelfareOptions{
			Page: 2, Limit: 2, Sort: "name",
		})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(res.Welfares) != 1 {
			t.Errorf("page 2 size = %d, want 1", len(res.Welfares))
		}
		if res.TotalPages != 2 || res.HasNextPage || !res.HasPrevPage {
			t.Errorf("pagination metadata wrong: %+v", res)
		}
	})

	t.Run("empty result", func(t *testing.T) {
		res, err := db.SearchWelfareRecords(ctx, models.SearchWelfareOptions{
			Keyword: "없는검색어", Page: 1, Limit: 20,
		})
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if res.TotalCount != 0 || res.TotalPages != 0 || res.HasPrevPage {
			t.Errorf("empty result metadata wrong: %+v", res)
		}
	})
}

func TestGetFilterOptions(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	a := testRecord("WLF001", "a", "")
	a.ServiceCategory = []string{"생활지원", "주거"}
	b := testRecord("WLF002", "b", "")
	b.ServiceCategory = []string{"생활지원"}
	if _, err := db.BulkUpsertWelfareRecords(ctx, []models.WelfareRecord{a, b}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	opts, err := db.GetFilterOptions(ctx)
	if err != nil {
		t.Fatalf("filter options: %v", err)
	}
	if len(opts.SourceTypes) != 3 {
		t.Errorf("source types = %v", opts.SourceTypes)
	}
	if len(opts.ServiceCategories) != 2 {
		t.Fatalf("service categories = %v", opts.ServiceCategories)
	}
	if opts.ServiceCategories[0].Name != "생활지원" || opts.ServiceCategories[0].Count != 2 {
		t.Errorf("most frequent category wrong: %+v", opts.ServiceCategories[0])
	}
}

func TestSurveyRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	survey := &models.Survey{
		UserID:           "user-1",
		Location:         "서울",
		AgeGroup:         "20~29세",
		EmploymentStatus: "학생",
		IncomeLevel:      "차상위계층",
		CareTarget:       "부모님",
		CarePeriod:       "3년 이상",
		DailyCareTime:    "9시간 이상",
		NeededServices:   []string{"생활비 지원", "상담서비스"},
		HasDisability:    false,
	}

	if err := db.InsertSurvey(ctx, survey); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if survey.ID == "" {
		t.Fatal("insert did not assign survey ID")
	}
	if survey.CreatedAt.IsZero() {
		t.Fatal("insert did not assign creation time")
	}

	got, err := db.GetSurvey(ctx, survey.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != "user-1" || got.IncomeLevel != "차상위계층" {
		t.Errorf("survey fields lost: %+v", got)
	}
	if len(got.NeededServices) != 2 || got.NeededServices[0] != "생활비 지원" {
		t.Errorf("needed services = %v", got.NeededServices)
	}
}

func TestGetSurveyNotFound(t *testing.T) {
	db := testDB(t)
	_, err := db.GetSurvey(context.Background(), "missing-id")
	if !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSurveysByUserNewestFirst(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s := &models.Survey{
			UserID:           "user-1",
			Location:         "서울",
			AgeGroup:         "20~29세",
			EmploymentStatus: "학생",
			IncomeLevel:      "차상위계층",
			CareTarget:       "부모님",
			CarePeriod:       "1~3년",
			DailyCareTime:    "3-5시간",
			NeededServices:   []string{"상담서비스"},
		}
		if err := db.InsertSurvey(ctx, s); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
		time.Sleep(2 * time.Millisecond)
	}
	other := &models.Survey{
		UserID:           "user-2",
		Location:         "부산",
		AgeGroup:         "30~39세",
		EmploymentStatus: "무직",
		IncomeLevel:      "기초생활수급자",
		CareTarget:       "조부모",
		CarePeriod:       "6개월 미만",
		DailyCareTime:    "1-2시간",
		NeededServices:   []string{"돌봄서비스"},
	}
	if err := db.InsertSurvey(ctx, other); err != nil {
		t.Fatalf("insert other: %v", err)
	}

	surveys, err := db.ListSurveysByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(surveys) != 3 {
		t.Fatalf("len = %d, want 3", len(surveys))
	}
	for i := 1; i < len(surveys); i++ {
		if surveys[i].CreatedAt.After(surveys[i-1].CreatedAt) {
			t.Errorf("surveys not newest-first at index %d", i)
		}
	}
}
