// Package memory provides in-memory implementations of driven port
// interfaces, for tests and for running without persistence.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
)

// Ensure GraphStore implements the interface.
var _ driven.GraphStore = (*GraphStore)(nil)

// GraphStore keeps the latest snapshot in memory. Snapshots round-trip
// through JSON so stored state is isolated from the caller's graph,
// matching the durable backends.
type GraphStore struct {
	mu   sync.Mutex
	data []byte
}

// NewGraphStore creates an empty in-memory graph store.
func NewGraphStore() *GraphStore {
	return &GraphStore{}
}

// SaveSnapshot stores the snapshot, replacing any previous one.
func (s *GraphStore) SaveSnapshot(_ context.Context, snap *domain.GraphSnapshot) error {
	if snap == nil {
		return domain.ErrInvalidInput
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

// LoadSnapshot returns the stored snapshot, or domain.ErrNotFound when
// nothing has been saved.
func (s *GraphStore) LoadSnapshot(_ context.Context) (*domain.GraphSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, domain.ErrNotFound
	}

	var snap domain.GraphSnapshot
	if err := json.Unmarshal(s.data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Reset deletes the stored snapshot.
func (s *GraphStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}

// Close is a no-op; there are no resources to release.
func (s *GraphStore) Close() error {
	return nil
}
