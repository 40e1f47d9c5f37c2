// Package subscription exposes the membership plan listing.
package subscription

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/clapperhq/clapper/api"
)

// API is the slice of the gateway the plan store needs.
type API interface {
	GetPlans(ctx context.Context) ([]api.Plan, error)
}

// Store caches the plan list after the first successful fetch.
type Store struct {
	api    API
	logger zerolog.Logger

	mu      sync.Mutex
	plans   []api.Plan
	loading bool
	lastErr error
}

// NewStore creates a plan store.
func NewStore(apiClient API, logger zerolog.Logger) *Store {
	return &Store{api: apiClient, logger: logger}
}

// Load fetches the plans. Once loaded, further calls are no-ops.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if len(s.plans) > 0 {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()

	plans, err := s.api.GetPlans(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		s.logger.Warn().Err(err).Msg("Failed to load subscription plans")
		return err
	}
	s.plans = plans
	return nil
}

// Plans returns the loaded plan list.
func (s *Store) Plans() []api.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Plan, len(s.plans))
	copy(out, s.plans)
	return out
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the most recent load error, if any.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
