// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package recommend

import (
	"strings"

	"github.com/welmap/welmap/internal/models"
)

// Criterion labels surfaced in RecommendationResult.MatchedCriteria.
// These are user-facing strings rendered by the frontend as match reasons.
const (
	criterionKeyword = "핵심 대상 일치"
	criterionAge     = "연령대 적합"
	criterionCare    = "돌봄 상황 적합"
	criterionIncome  = "소득 기준 적합"
	criterionService = "필요 서비스 일치"
	criterionSpecial = "특수 상황 적합"
)

// Sub-score caps.
const (
	maxKeywordScore = 30
	maxAgeScore     = 15
	maxCareScore    = 20
	maxIncomeScore  = 15
	maxServiceScore = 20
)

// scoreRecord computes the full breakdown for one record against one survey.
//
// The needed-service criterion is a hard gate: a program whose categories
// satisfy none of the respondent's selected needs scores zero overall no
// matter how well the other criteria match. Inapplicable programs
// (see isApplicable) also score zero.
func scoreRecord(survey *models.Survey, record *models.WelfareRecord) scoreBreakdown {
	fullText := strings.ToLower(record.ServiceName) + " " + strings.ToLower(record.Description)

	if !isApplicable(survey, fullText) {
		return scoreBreakdown{}
	}

	serviceScore := neededServiceScore(survey, record)
	if serviceScore == 0 {
		return scoreBreakdown{}
	}

	var criteria []string
	total := 0

	add := func(score int, label string) {
		if score > 0 {
			total += score
			criteria = append(criteria, label)
		}
	}

	add(keywordScore(fullText), criterionKeyword)
	add(ageScore(survey, record), criterionAge)
	add(careScore(survey, record), criterionCare)
	add(incomeScore(survey, record), criterionIncome)
	add(serviceScore, criterionService)
	add(specialScore(survey, record.TargetAudience), criterionSpecial)

	return scoreBreakdown{total: total, criteria: criteria}
}

// keywordScore rates how directly the program text targets family
// caregivers. Core caregiver terms take the cap outright and the
// youth-plus-care combination comes second; the general combinations
// accumulate. The exclusion list runs last and only zeroes the
// accumulated path, never the direct hits.
func keywordScore(fullText string) int {
	if containsAny(fullText, coreTargetKeywords) {
		return maxKeywordScore
	}

	if strings.Contains(fullText, "청년") && strings.Contains(fullText, "돌봄") {
		return 25
	}

	score := 0
	if strings.Contains(fullText, "돌봄") && containsAny(fullText, careComboKeywords) {
		score += 20
	}
	if (strings.Contains(fullText, "위기가정") || strings.Contains(fullText, "위기극복")) &&
		containsAny(fullText, crisisSupportKeywords) {
		score += 15
	}

	if containsAny(fullText, scoringExcludeKeywords) {
		return 0
	}
	return score
}

// ageScore rates the life-stage fit. Records without life-cycle tags fall
// back to a text heuristic: youth/caregiver programs score for the two
// young-adult bands, everything else takes a neutral default.
func ageScore(survey *models.Survey, record *models.WelfareRecord) int {
	if len(record.LifeCycle) == 0 {
		name := record.ServiceName
		if strings.Contains(name, "청년") || strings.Contains(name, "케어러") {
			if survey.AgeGroup == "20~29세" || survey.AgeGroup == "30~39세" {
				return maxAgeScore
			}
			return 0
		}
		return 10
	}

	for _, stage := range ageGroupLifeCycles[survey.AgeGroup] {
		for _, tag := range record.LifeCycle {
			if tag == stage {
				return maxAgeScore
			}
		}
	}
	return 0
}

// careScore rates the caregiving-context fit: programs named after care,
// caregiver-oriented audience tags, and an intensity bonus for
// long-duration or high-hour caregiving. Only the program name counts
// for the direct bonus; a care mention in the description is not a care
// program.
func careScore(survey *models.Survey, record *models.WelfareRecord) int {
	score := 0

	name := strings.ToLower(record.ServiceName)
	if strings.Contains(name, "돌봄") || strings.Contains(name, "케어") {
		score += 15
	}

	for _, audience := range record.TargetAudience {
		if containsAny(audience, audienceCareKeywords) {
			score += 10
			break
		}
	}

	if survey.DailyCareTime == models.DailyCareTimeMax || survey.CarePeriod == models.CarePeriodMax {
		score += 5
	}

	if score > maxCareScore {
		return maxCareScore
	}
	return score
}

// incomeScore rates the income-restriction fit. Programs without audience
// tags are presumed open and take a neutral score, as do programs whose
// tags say nothing about income. Low-income programs score full for
// low-income respondents and zero for everyone else.
func incomeScore(survey *models.Survey, record *models.WelfareRecord) int {
	const neutral = 12

	if len(record.TargetAudience) == 0 {
		return neutral
	}

	audienceHasLowIncome := false
	for _, audience := range record.TargetAudience {
		if strings.Contains(audience, "저소득") {
			audienceHasLowIncome = true
			break
		}
	}

	switch {
	case audienceHasLowIncome && survey.IsLowIncome():
		return maxIncomeScore
	case audienceHasLowIncome:
		return 0
	default:
		return neutral
	}
}

// neededServiceScore rates how well the program's service categories cover
// the respondent's selected needs. Each need scores an exact category
// match at 7 and a partial (substring-overlap) match at 4, capped at 20.
// A zero here gates the whole record.
func neededServiceScore(survey *models.Survey, record *models.WelfareRecord) int {
	if len(record.ServiceCategory) == 0 {
		return 0
	}

	score := 0
	for _, needed := range survey.NeededServices {
		wanted := neededServiceCategories[needed]
		if len(wanted) == 0 {
			continue
		}

		switch {
		case hasExactCategory(record.ServiceCategory, wanted):
			score += 7
		case hasPartialCategory(record.ServiceCategory, wanted):
			score += 4
		}
	}

	if score > maxServiceScore {
		return maxServiceScore
	}
	return score
}

func hasExactCategory(categories, wanted []string) bool {
	for _, c := range categories {
		for _, w := range wanted {
			if c == w {
				return true
			}
		}
	}
	return false
}

func hasPartialCategory(categories, wanted []string) bool {
	for _, c := range categories {
		for _, w := range wanted {
			if strings.Contains(c, w) || strings.Contains(w, c) {
				return true
			}
		}
	}
	return false
}

// specialScore adds a flat bonus per special circumstance the program's
// audience tags address: disability, multicultural family, single-parent
// (or grandparent-headed) family. Untagged programs score zero.
func specialScore(survey *models.Survey, targetAudience []string) int {
	score := 0
	if survey.HasDisability && audienceContains(targetAudience, "장애") {
		score += 5
	}
	if survey.IsMulticulturalFamily && audienceContains(targetAudience, "다문화") {
		score += 5
	}
	if survey.IsSingleParentFamily &&
		(audienceContains(targetAudience, "한부모") || audienceContains(targetAudience, "조손")) {
		score += 5
	}
	return score
}

func audienceContains(targetAudience []string, keyword string) bool {
	for _, tag := range targetAudience {
		if strings.Contains(tag, keyword) {
			return true
		}
	}
	return false
}
