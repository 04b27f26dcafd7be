package driven

import (
	"context"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
)

// GraphStore persists knowledge graph snapshots across process restarts.
// Backed by SQLite for durable storage; an in-memory implementation
// exists for tests.
//
// Save and Load must be idempotent: loading immediately after saving
// reproduces an observably identical graph.
type GraphStore interface {
	// SaveSnapshot stores the snapshot, replacing any previous one.
	SaveSnapshot(ctx context.Context, snap *domain.GraphSnapshot) error

	// LoadSnapshot retrieves the stored snapshot.
	// Returns domain.ErrNotFound when nothing has been saved.
	LoadSnapshot(ctx context.Context) (*domain.GraphSnapshot, error)

	// Reset deletes the persisted snapshot.
	Reset(ctx context.Context) error

	// Close releases resources.
	Close() error
}
