// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

// Package validation wraps go-playground/validator with the fixed survey
// vocabulary registered as custom tags.
package validation
