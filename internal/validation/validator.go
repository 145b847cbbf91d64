// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package validation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/welmap/welmap/internal/models"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// enumTags maps custom validation tag names to their allowed values.
// The survey vocabulary is fixed Korean labels; validator's oneof tag
// cannot express values containing spaces, so each set registers as its
// own tag.
var enumTags = map[string][]string{
	"region":            models.ValidRegions,
	"age_group":         models.ValidAgeGroups,
	"employment_status": models.ValidEmploymentStatuses,
	"income_level":      models.ValidIncomeLevels,
	"care_target":       models.ValidCareTargets,
	"care_period":       models.ValidCarePeriods,
	"daily_care_time":   models.ValidDailyCareTimes,
	"needed_service":    models.ValidNeededServices,
}

// Validator returns the shared validator instance with all custom
// survey vocabulary tags registered.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		for tag, values := range enumTags {
			registerEnum(validate, tag, values)
		}
	})
	return validate
}

func registerEnum(v *validator.Validate, tag string, values []string) {
	// Register never fails for non-empty tags with a non-nil func.
	_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, allowed := range values {
			if s == allowed {
				return true
			}
		}
		return false
	})
}

// ValidateStruct validates a struct and returns a human-readable error
// describing the first problems found, or nil.
func ValidateStruct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	ok := false
	if verrs, ok = err.(validator.ValidationErrors); !ok {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()

	if values, isEnum := enumTags[tag]; isEnum {
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(values, ", "))
	}

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s elements", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s elements", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
