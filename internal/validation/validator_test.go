// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package validation

import (
	"strings"
	"testing"

	"github.com/welmap/welmap/internal/models"
)

func validSurvey() *models.Survey {
	return &models.Survey{
		UserID:           "user-1",
		Location:         "서울",
		AgeGroup:         "20~29세",
		EmploymentStatus: "학생",
		IncomeLevel:      "기초생활수급자",
		CareTarget:       "부모님",
		CarePeriod:       "1~3년",
		DailyCareTime:    "3-5시간",
		NeededServices:   []string{"생활비 지원", "상담서비스"},
	}
}

func TestValidateStructAcceptsValidSurvey(t *testing.T) {
	if err := ValidateStruct(validSurvey()); err != nil {
		t.Fatalf("valid survey rejected: %v", err)
	}
}

func TestValidateStructRejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*models.Survey)
		wantPart string
	}{
		{
			name:     "missing user id",
			mutate:   func(s *models.Survey) { s.UserID = "" },
			wantPart: "UserID is required",
		},
		{
			name:     "unknown region",
			mutate:   func(s *models.Survey) { s.Location = "평양" },
			wantPart: "Location must be one of",
		},
		{
			name:     "unknown age group",
			mutate:   func(s *models.Survey) { s.AgeGroup = "20대" },
			wantPart: "AgeGroup must be one of",
		},
		{
			name:     "income level free text",
			mutate:   func(s *models.Survey) { s.IncomeLevel = "중위소득 50%" },
			wantPart: "IncomeLevel must be one of",
		},
		{
			name:     "empty needed services",
			mutate:   func(s *models.Survey) { s.NeededServices = []string{} },
			wantPart: "NeededServices",
		},
		{
			name:     "unknown needed service element",
			mutate:   func(s *models.Survey) { s.NeededServices = []string{"생활비 지원", "로또"} },
			wantPart: "must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSurvey()
			tt.mutate(s)
			err := ValidateStruct(s)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantPart) {
				t.Errorf("error %q does not contain %q", err, tt.wantPart)
			}
		})
	}
}

func TestEnumTagsCoverAllVocabularies(t *testing.T) {
	wantSizes := map[string]int{
		"region":            14,
		"age_group":         6,
		"employment_status": 7,
		"income_level":      5,
		"care_target":       6,
		"care_period":       4,
		"daily_care_time":   4,
		"needed_service":    8,
	}
	for tag, want := range wantSizes {
		values, ok := enumTags[tag]
		if !ok {
			t.Errorf("tag %q not registered", tag)
			continue
		}
		if len(values) != want {
			t.Errorf("tag %q has %d values, want %d", tag, len(values), want)
		}
	}
}
