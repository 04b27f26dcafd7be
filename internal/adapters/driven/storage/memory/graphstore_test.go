package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
)

func sampleSnapshot() *domain.GraphSnapshot {
	return &domain.GraphSnapshot{
		Documents: []domain.Document{{ID: "doc-1", Name: "a.txt", Status: domain.StatusReady}},
		Chunks:    []domain.Chunk{{ID: "c1", DocumentID: "doc-1", Content: "content"}},
		Topics:    []domain.TopicDocuments{{Topic: "history", DocumentIDs: []string{"doc-1"}}},
	}
}

func TestGraphStore_LoadEmpty(t *testing.T) {
	store := NewGraphStore()

	_, err := store.LoadSnapshot(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGraphStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewGraphStore()
	ctx := context.Background()
	snap := sampleSnapshot()

	require.NoError(t, store.SaveSnapshot(ctx, snap))

	loaded, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestGraphStore_SaveReplacesPrevious(t *testing.T) {
	store := NewGraphStore()
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, sampleSnapshot()))
	require.NoError(t, store.SaveSnapshot(ctx, &domain.GraphSnapshot{
		Documents: []domain.Document{{ID: "doc-2", Name: "b.txt"}},
	}))

	loaded, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Documents, 1)
	assert.Equal(t, "doc-2", loaded.Documents[0].ID)
}

func TestGraphStore_SaveNil(t *testing.T) {
	store := NewGraphStore()

	assert.ErrorIs(t, store.SaveSnapshot(context.Background(), nil), domain.ErrInvalidInput)
}

func TestGraphStore_Reset(t *testing.T) {
	store := NewGraphStore()
	ctx := context.Background()
	require.NoError(t, store.SaveSnapshot(ctx, sampleSnapshot()))

	require.NoError(t, store.Reset(ctx))

	_, err := store.LoadSnapshot(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGraphStore_ImplementsPortIncludingClose(t *testing.T) {
	var store driven.GraphStore = NewGraphStore()

	require.NoError(t, store.SaveSnapshot(context.Background(), sampleSnapshot()))
	assert.NoError(t, store.Close())

	// Close releases nothing; stored state stays readable.
	loaded, err := store.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "doc-1", loaded.Documents[0].ID)
}

func TestGraphStore_StoredStateIsIsolated(t *testing.T) {
	store := NewGraphStore()
	ctx := context.Background()
	snap := sampleSnapshot()
	require.NoError(t, store.SaveSnapshot(ctx, snap))

	// Mutating the saved snapshot must not affect the stored copy.
	snap.Documents[0].Name = "mutated.txt"

	loaded, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a.txt", loaded.Documents[0].Name)
}
