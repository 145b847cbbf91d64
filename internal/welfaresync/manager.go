// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package welfaresync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/welmap/welmap/internal/config"
	"github.com/welmap/welmap/internal/logging"
	"github.com/welmap/welmap/internal/metrics"
	"github.com/welmap/welmap/internal/models"
)

// CatalogWriter persists normalized records. Implemented by the database
// layer.
type CatalogWriter interface {
	BulkUpsertWelfareRecords(ctx context.Context, records []models.WelfareRecord) (int, error)
}

// ProviderResult is the outcome of syncing one provider.
type ProviderResult struct {
	Provider   string            `json:"provider"`
	SourceType models.SourceType `json:"sourceType"`
	Fetched    int               `json:"fetched"`
	Upserted   int               `json:"upserted"`
	Duration   time.Duration     `json:"-"`
	DurationMS int64             `json:"durationMs"`
	Error      string            `json:"error,omitempty"`
}

// SyncStats summarizes one full sync run across all providers.
type SyncStats struct {
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
	Results    []ProviderResult `json:"results"`
}

// Succeeded reports whether every provider completed without error.
func (s *SyncStats) Succeeded() bool {
	for _, r := range s.Results {
		if r.Error != "" {
			return false
		}
	}
	return true
}

// Manager runs full catalog syncs, on a schedule and on demand.
// Safe for concurrent use; at most one sync runs at a time.
type Manager struct {
	store     CatalogWriter
	providers []Provider
	cfg       *config.SyncConfig
	logger    zerolog.Logger

	// mu guards lastSync and lastStats.
	mu        sync.RWMutex
	lastSync  time.Time
	lastStats *SyncStats

	// syncMu serializes sync runs.
	syncMu sync.Mutex

	stopOnce sync.Once
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewManager creates a sync manager over the given providers.
func NewManager(store CatalogWriter, providers []Provider, cfg *config.SyncConfig) *Manager {
	return &Manager{
		store:     store,
		providers: providers,
		cfg:       cfg,
		logger:    logging.With().Str("component", "welfaresync").Logger(),
		stopChan:  make(chan struct{}),
	}
}

// NewProviders builds the enabled provider adapters from configuration.
func NewProviders(cfg *config.Config) []Provider {
	var providers []Provider
	timeout := cfg.Sync.RequestTimeout
	rps := cfg.Sync.RequestsPerSecond
	key := cfg.Providers.ServiceKey

	if cfg.Providers.CentralMinistry.Enabled {
		client := newAPIClient("central_ministry", timeout, rps)
		providers = append(providers, NewCentralMinistryProvider(cfg.Providers.CentralMinistry.URL, key, client))
	}
	if cfg.Providers.LocalGov.Enabled {
		client := newAPIClient("local_gov", timeout, rps)
		providers = append(providers, NewLocalGovProvider(cfg.Providers.LocalGov.URL, key, client))
	}
	if cfg.Providers.PrivateOrg.Enabled {
		client := newAPIClient("private_org", timeout, rps)
		providers = append(providers, NewPrivateOrgProvider(cfg.Providers.PrivateOrg.URL, key, client))
	}
	return providers
}

// Start launches the periodic sync loop. The first sync runs shortly after
// startup; later runs follow the configured interval (the public catalogs
// refresh roughly monthly). No-op when scheduling is disabled.
func (m *Manager) Start() {
	if !m.cfg.Enabled {
		m.logger.Info().Msg("scheduled sync disabled")
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		// Let the HTTP server come up before the first full run.
		initialDelay := time.NewTimer(10 * time.Second)
		defer initialDelay.Stop()
		select {
		case <-initialDelay.C:
			m.runScheduled()
		case <-m.stopChan:
			return
		}

		ticker := time.NewTicker(m.cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.runScheduled()
			case <-m.stopChan:
				return
			}
		}
	}()

	m.logger.Info().Dur("interval", m.cfg.Interval).Msg("scheduled sync started")
}

// Stop terminates the sync loop and waits for any in-flight run.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
	m.wg.Wait()
}

func (m *Manager) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()
	if _, err := m.SyncAll(ctx); err != nil {
		m.logger.Error().Err(err).Msg("scheduled sync failed")
	}
}

// SyncAll runs a full sync across every provider. Providers are isolated:
// a failing provider is recorded in its result and the rest still run.
// Returns an error only when no sync could be attempted at all.
func (m *Manager) SyncAll(ctx context.Context) (*SyncStats, error) {
	m.syncMu.Lock()
	defer m.syncMu.Unlock()

	if len(m.providers) == 0 {
		return nil, fmt.Errorf("no providers configured")
	}

	stats := &SyncStats{StartedAt: time.Now().UTC()}
	for _, provider := range m.providers {
		result := m.syncProvider(ctx, provider)
		stats.Results = append(stats.Results, result)

		if result.Error != "" {
			m.logger.Error().
				Str("provider", result.Provider).
				Str("error", result.Error).
				Int("fetched", result.Fetched).
				Msg("provider sync failed")
			continue
		}
		m.logger.Info().
			Str("provider", result.Provider).
			Int("fetched", result.Fetched).
			Int("upserted", result.Upserted).
			Dur("elapsed", result.Duration).
			Msg("provider sync complete")
	}
	stats.FinishedAt = time.Now().UTC()

	m.mu.Lock()
	m.lastSync = stats.FinishedAt
	m.lastStats = stats
	m.mu.Unlock()

	return stats, nil
}

// syncProvider paginates through one provider and bulk-upserts its
// records. The first page's reported total is the stop target; an empty
// page stops pagination defensively even when the total says otherwise.
func (m *Manager) syncProvider(ctx context.Context, provider Provider) ProviderResult {
	start := time.Now()
	result := ProviderResult{
		Provider:   provider.Name(),
		SourceType: provider.SourceType(),
	}

	fail := func(err error) ProviderResult {
		result.Duration = time.Since(start)
		result.DurationMS = result.Duration.Milliseconds()
		result.Error = err.Error()
		metrics.RecordProviderSync(provider.Name(), result.Duration, result.Fetched, result.Upserted, err)
		return result
	}

	pageSize := m.cfg.PageSize
	var records []models.WelfareRecord
	total := 0

	for page := 1; ; page++ {
		fetched, err := provider.FetchPage(ctx, page, pageSize)
		if err != nil {
			return fail(fmt.Errorf("page %d: %w", page, err))
		}

		if page == 1 {
			total = fetched.Total
			if total == 0 {
				break
			}
		}
		if len(fetched.Records) == 0 {
			// Upstream totals are occasionally stale; never loop on
			// empty pages.
			break
		}

		records = append(records, fetched.Records...)
		result.Fetched = len(records)
		if len(records) >= total {
			break
		}
	}

	if len(records) > 0 {
		upserted, err := m.store.BulkUpsertWelfareRecords(ctx, records)
		result.Upserted = upserted
		if err != nil {
			return fail(fmt.Errorf("storing records: %w", err))
		}
	}

	result.Duration = time.Since(start)
	result.DurationMS = result.Duration.Milliseconds()
	metrics.RecordProviderSync(provider.Name(), result.Duration, result.Fetched, result.Upserted, nil)
	return result
}

// LastSyncTime returns when the last sync finished (zero before any run).
func (m *Manager) LastSyncTime() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastSync
}

// LastStats returns the most recent sync summary, or nil before any run.
func (m *Manager) LastStats() *SyncStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastStats
}
