// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package models

import (
	"time"
)

// Survey enum value sets.
//
// The survey form presents closed Korean value sets for every question; the
// API rejects anything outside these sets at deserialization time so the
// matching engine never sees an unrecognized value. The sets are fixed by the
// upstream questionnaire and must stay in sync with the frontend.
var (
	// ValidRegions are the 14 residence regions.
	ValidRegions = []string{
		"서울", "경기", "인천", "부산", "대구", "광주", "대전",
		"울산", "세종", "강원도", "충청도", "전라도", "경상도", "제주도",
	}

	// ValidAgeGroups are the 6 age bands.
	ValidAgeGroups = []string{
		"19세 미만", "20~29세", "30~39세", "40~49세", "50~64세", "65세 이상",
	}

	// ValidEmploymentStatuses are the 7 study/work situations.
	ValidEmploymentStatuses = []string{
		"학생", "휴학중", "취업준비중", "정규직", "비정규직", "프리랜서", "무직",
	}

	// ValidIncomeLevels are the 5 household income tiers, ordered from the
	// lowest (basic livelihood recipient) to the highest.
	ValidIncomeLevels = []string{
		"기초생활수급자", "차상위계층", "중위소득 50% 이하",
		"중위소득 100% 이하", "중위소득 100% 초과",
	}

	// ValidCareTargets are the 6 cared-for family relations.
	ValidCareTargets = []string{
		"부모님", "조부모", "배우자", "자녀", "형제자매", "기타",
	}

	// ValidCarePeriods are the 4 caregiving-duration bands.
	ValidCarePeriods = []string{
		"6개월 미만", "6개월~1년", "1~3년", "3년 이상",
	}

	// ValidDailyCareTimes are the 4 daily caregiving-hour bands.
	ValidDailyCareTimes = []string{
		"1-2시간", "3-5시간", "6-8시간", "9시간 이상",
	}

	// ValidNeededServices are the 8 selectable support-service categories.
	ValidNeededServices = []string{
		"생활비 지원", "의료비 지원", "교육비 지원", "주거비 지원",
		"돌봄서비스", "상담서비스", "취업지원", "문화활동",
	}
)

// Survey highest-intensity band values, referenced by the care-context
// sub-score (long-duration, high-hour caregiving earns a bonus).
const (
	CarePeriodMax    = "3년 이상"
	DailyCareTimeMax = "9시간 이상"
	AgeGroup65Plus   = "65세 이상"
	CareTargetChild  = "자녀"
)

// Survey is one user's structured caregiving self-report.
//
// Surveys are immutable once created: a user changing circumstances submits a
// new survey, and the history is retained so past recommendations can be
// recomputed. Validation tags are the custom enum validators registered in
// internal/validation (the Korean values contain spaces, so the standard
// oneof tag cannot express them).
type Survey struct {
	// ID is the server-assigned survey identifier (UUID).
	ID string `json:"id"`

	// UserID identifies the submitting user.
	UserID string `json:"userId" validate:"required"`

	// Location is the residence region.
	Location string `json:"location" validate:"required,region"`

	// AgeGroup is the respondent's age band.
	AgeGroup string `json:"ageGroup" validate:"required,age_group"`

	// EmploymentStatus is the current study/work situation.
	EmploymentStatus string `json:"employmentStatus" validate:"required,employment_status"`

	// IncomeLevel is the household income tier.
	IncomeLevel string `json:"incomeLevel" validate:"required,income_level"`

	// CareTarget is the family member being cared for.
	CareTarget string `json:"careTarget" validate:"required,care_target"`

	// CarePeriod is how long the caregiving has lasted.
	CarePeriod string `json:"carePeriod" validate:"required,care_period"`

	// DailyCareTime is the average daily caregiving hours.
	DailyCareTime string `json:"dailyCareTime" validate:"required,daily_care_time"`

	// NeededServices are the support categories the respondent selected
	// (at least one; multiple selection allowed).
	NeededServices []string `json:"neededServices" validate:"required,min=1,dive,needed_service"`

	// HasDisability reports whether the respondent themselves has a disability.
	HasDisability bool `json:"hasDisability"`

	// IsMulticulturalFamily reports multicultural-family status.
	IsMulticulturalFamily bool `json:"isMulticulturalFamily"`

	// IsSingleParentFamily reports single-parent-family status.
	IsSingleParentFamily bool `json:"isSingleParentFamily"`

	// CreatedAt is the submission timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// IsLowIncome reports whether the survey's income tier qualifies as
// low-income for income-restricted programs (the bottom three tiers).
func (s *Survey) IsLowIncome() bool {
	switch s.IncomeLevel {
	case "기초생활수급자", "차상위계층", "중위소득 50% 이하":
		return true
	}
	return false
}

// CaresForCloseFamily reports whether the care target is a close-family
// relation (everything except 기타). Disability-targeted programs stay
// applicable for close-family caregivers even when the respondent has no
// disability themselves.
func (s *Survey) CaresForCloseFamily() bool {
	switch s.CareTarget {
	case "부모님", "조부모", "배우자", "자녀", "형제자매":
		return true
	}
	return false
}

// RecommendationResult pairs a catalog record with its computed match score
// and the human-readable reasons it matched. Results are computed per request
// and never persisted.
type RecommendationResult struct {
	Welfare         WelfareRecord `json:"welfare"`
	Score           int           `json:"score"`
	MatchedCriteria []string      `json:"matchedCriteria"`
}
