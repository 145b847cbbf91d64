// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package recommend

import (
	"strings"

	"github.com/welmap/welmap/internal/models"
)

// isApplicable reports whether a program can apply to the respondent at
// all, before any scoring. The checks run against the lowercased
// name-plus-description text.
//
// Core caregiver programs pass unconditionally. Programs aimed at young
// children or seniors are decided entirely by the care situation: the
// age rule that admits them also settles them, so the later checks never
// reject a child program for a 자녀 caregiver. Disability programs pass
// for respondents with a disability or a close-family care target, and a
// short exclusion list drops populations the survey cannot represent
// (industrial-accident victims, conscripted police, fishing crew members
// and similar).
func isApplicable(survey *models.Survey, fullText string) bool {
	if containsAny(fullText, coreTargetKeywords) {
		return true
	}

	if containsAny(fullText, childKeywords) {
		return survey.CareTarget == models.CareTargetChild
	}

	if containsAny(fullText, elderKeywords) {
		return survey.AgeGroup == models.AgeGroup65Plus ||
			survey.CareTarget == "부모님" ||
			survey.CareTarget == "조부모"
	}

	if strings.Contains(fullText, "장애") && !survey.HasDisability && !survey.CaresForCloseFamily() {
		return false
	}

	if containsAny(fullText, applicabilityExcludeKeywords) {
		return false
	}

	return true
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
