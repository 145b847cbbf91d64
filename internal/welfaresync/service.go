// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package welfaresync

import (
	"context"
)

// Service adapts Manager to the suture supervision tree: the manager's
// scheduler runs for the lifetime of the supervisor context and shuts
// down cleanly when the tree stops.
type Service struct {
	manager *Manager
}

// NewService wraps a manager for supervision.
func NewService(manager *Manager) *Service {
	return &Service{manager: manager}
}

// Serve implements suture.Service.
func (s *Service) Serve(ctx context.Context) error {
	s.manager.Start()
	<-ctx.Done()
	s.manager.Stop()
	return ctx.Err()
}

// String implements fmt.Stringer for supervisor logs.
func (s *Service) String() string {
	return "welfaresync"
}
