// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package recommend

// Keyword vocabularies driving the matching rules. All matching runs against
// the lowercased concatenation of a record's name and description, so the
// tables stay lowercase-safe (Korean text is unaffected by case folding, but
// programs occasionally embed Latin acronyms).

// coreTargetKeywords mark programs aimed directly at young family
// caregivers. A program naming these is applicable to every respondent and
// takes the maximum keyword score outright.
var coreTargetKeywords = []string{"가족돌봄청년", "영케어러", "케어러", "돌봄청년"}

// childKeywords mark programs for young children; they only apply when the
// respondent cares for their own child.
var childKeywords = []string{"영유아", "유아", "어린이", "아동", "미취학", "초등"}

// elderKeywords mark programs for seniors; they apply when the respondent is
// 65+ themselves or cares for a parent or grandparent.
var elderKeywords = []string{"노인", "어르신", "65세 이상", "만 65세", "기초연금"}

// applicabilityExcludeKeywords mark programs whose target population cannot
// overlap with family caregivers responding to this survey.
var applicabilityExcludeKeywords = []string{"산재", "의무경찰", "어선원", "농업인", "성폭력", "가정폭력"}

// careComboKeywords pair with 돌봄 for the general caregiving keyword bonus.
var careComboKeywords = []string{"중장년", "가족", "일상", "맞춤", "통합"}

// crisisSupportKeywords pair with 위기가정/위기극복 for the crisis-household
// keyword bonus.
var crisisSupportKeywords = []string{"생계", "주거", "의료", "생활비"}

// scoringExcludeKeywords zero out the keyword score for programs that match
// incidentally (funeral aid, overseas nationals, fraud relief and similar).
var scoringExcludeKeywords = []string{"장제", "장례", "재외국민", "해외", "사망", "보이스피싱", "전기통신"}

// audienceCareKeywords in a record's target-audience tags signal a
// caregiving-oriented program.
var audienceCareKeywords = []string{"청년", "가족돌봄", "돌봄"}

// ageGroupLifeCycles maps each survey age band to the catalog life-cycle
// tags it may claim. Adjacent stages are included where the band straddles
// a boundary.
var ageGroupLifeCycles = map[string][]string{
	"19세 미만": {"아동", "청소년"},
	"20~29세": {"청년", "청소년"},
	"30~39세": {"청년", "중장년"},
	"40~49세": {"중장년"},
	"50~64세": {"중장년", "노년"},
	"65세 이상": {"노년"},
}

// neededServiceCategories maps each survey service selection to the catalog
// service-category tags that satisfy it.
var neededServiceCategories = map[string][]string{
	"생활비 지원": {"생활지원", "복지", "생활비", "생계"},
	"의료비 지원": {"신체건강", "정신건강", "건강", "의료"},
	"교육비 지원": {"교육", "교육비"},
	"주거비 지원": {"주거", "주거비"},
	"돌봄서비스":  {"보호·돌봄", "돌봄", "돌봄서비스", "돌봄·보호"},
	"상담서비스":  {"상담", "심리상담", "정신건강"},
	"취업지원":   {"일자리", "취업", "고용"},
	"문화활동":   {"문화·여가", "문화", "여가"},
}
