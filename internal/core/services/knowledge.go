package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driving"
	"github.com/scholia-labs/scholia-cli/internal/knowledge"
	"github.com/scholia-labs/scholia-cli/internal/logger"
)

// Ensure KnowledgeService implements the interface.
var _ driving.KnowledgeService = (*KnowledgeService)(nil)

// KnowledgeService exposes graph reads to the driving adapters and
// owns rehydration from the store at startup.
type KnowledgeService struct {
	graph *knowledge.Graph
	store driven.GraphStore
}

// NewKnowledgeService creates a knowledge service. store may be nil.
func NewKnowledgeService(graph *knowledge.Graph, store driven.GraphStore) *KnowledgeService {
	return &KnowledgeService{graph: graph, store: store}
}

// Load rehydrates the graph from the persisted snapshot. A missing
// snapshot means a fresh start, not an error.
func (s *KnowledgeService) Load(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	snap, err := s.store.LoadSnapshot(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Debug("knowledge: no snapshot, starting fresh")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	if err := s.graph.Restore(snap); err != nil {
		return fmt.Errorf("restoring graph: %w", err)
	}
	logger.Info("knowledge: restored %d documents", len(snap.Documents))
	return nil
}

// Search performs lexical search across indexed chunks.
func (s *KnowledgeService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	return s.graph.Search(query, opts), nil
}

// Document retrieves a document by id.
func (s *KnowledgeService) Document(_ context.Context, id string) (*domain.Document, error) {
	return s.graph.Document(id)
}

// Documents lists all documents in insertion order.
func (s *KnowledgeService) Documents(_ context.Context) ([]domain.Document, error) {
	return s.graph.Documents(), nil
}

// RelatedDocuments returns documents sharing at least one topic with
// the given document.
func (s *KnowledgeService) RelatedDocuments(_ context.Context, documentID string) ([]domain.Document, error) {
	if _, err := s.graph.Document(documentID); err != nil {
		return nil, err
	}
	return s.graph.RelatedDocuments(documentID), nil
}

// DocumentsByTopic returns the documents tagged with a topic.
func (s *KnowledgeService) DocumentsByTopic(_ context.Context, topic string) ([]domain.Document, error) {
	return s.graph.DocumentsByTopic(topic), nil
}

// Entity looks up a merged entity by name.
func (s *KnowledgeService) Entity(_ context.Context, name string) (*domain.Entity, error) {
	return s.graph.Entity(name)
}

// Timeline returns the global timeline, ascending by parsed year.
func (s *KnowledgeService) Timeline(_ context.Context) ([]domain.TimelineEvent, error) {
	return s.graph.Timeline(), nil
}

// Concept looks up a concept dictionary entry by name.
func (s *KnowledgeService) Concept(_ context.Context, name string) (*domain.RelatedConcept, error) {
	return s.graph.Concept(name)
}

// Topics lists all known topics with their document counts.
func (s *KnowledgeService) Topics(_ context.Context) (map[string]int, error) {
	return s.graph.Topics(), nil
}

// Clear resets the graph and deletes persisted state.
func (s *KnowledgeService) Clear(ctx context.Context) error {
	s.graph.Clear()
	if s.store == nil {
		return nil
	}
	return s.store.Reset(ctx)
}
