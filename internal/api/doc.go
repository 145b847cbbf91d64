// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

// Package api implements the HTTP surface: survey submission and
// recommendation retrieval, welfare catalog browsing, the manual sync
// trigger, and operational endpoints (health, metrics, swagger).
//
// Routing is chi with the ecosystem middleware stack (cors, httprate).
// Every response uses the models.APIResponse envelope.
package api
