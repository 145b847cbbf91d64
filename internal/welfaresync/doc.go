// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

// Package welfaresync ingests the welfare catalog from three external
// government data services: the central ministry welfare list (XML), the
// local-government welfare list (JSON), and the private-organization
// support list (odcloud JSON).
//
// Each provider is an adapter normalizing its wire format into
// models.WelfareRecord. The Manager paginates through every enabled
// provider, accumulates the normalized records, and bulk-upserts them
// keyed on the provider-stable service ID, so a full sync is idempotent.
// Providers fail independently: one provider's outage never blocks the
// others. Outbound calls run through a circuit breaker and a rate
// limiter.
package welfaresync
