// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

// Package config loads and validates layered server configuration:
// built-in defaults, an optional YAML file, then WELMAP_* environment
// variables.
package config
