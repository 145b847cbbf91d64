// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

// Package main provides the Welmap HTTP server
//
// @title Welmap API
// @version 1.0
// @description Welfare benefits recommendation platform for Korean family caregivers.
// @description
// @description ## Catalog
// @description
// @description The welfare catalog aggregates three public data sources: the central
// @description ministry welfare list, the local government welfare list, and a private
// @description organization dataset served through odcloud. The catalog is synced
// @description monthly and can be refreshed on demand via the admin sync endpoint.
// @description
// @description ## Recommendations
// @description
// @description POST a caregiving survey to receive scored welfare program matches.
// @description Scoring is deterministic: the same survey against the same catalog
// @description always produces the same ranking.
// @description
// @description ## Authentication
// @description
// @description Browse and recommendation endpoints are public. The manual sync
// @description endpoint requires a Bearer token with the admin role, minted by the
// @description server's token subcommand.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message"
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-08-01T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/welmap/welmap
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Operator JWT. Format: "Bearer {token}"
package main
