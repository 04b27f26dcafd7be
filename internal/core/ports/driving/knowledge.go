package driving

import (
	"context"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
)

// KnowledgeService exposes read access to the knowledge graph.
type KnowledgeService interface {
	// Search performs lexical search across all indexed chunks and
	// returns documents ranked by relevance.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// Document retrieves a document by id.
	Document(ctx context.Context, id string) (*domain.Document, error)

	// Documents lists all documents in insertion order.
	Documents(ctx context.Context) ([]domain.Document, error)

	// RelatedDocuments returns documents sharing at least one topic.
	RelatedDocuments(ctx context.Context, documentID string) ([]domain.Document, error)

	// DocumentsByTopic returns the documents tagged with a topic.
	DocumentsByTopic(ctx context.Context, topic string) ([]domain.Document, error)

	// Entity looks up a merged entity by name.
	Entity(ctx context.Context, name string) (*domain.Entity, error)

	// Timeline returns the global timeline, ascending by parsed year.
	Timeline(ctx context.Context) ([]domain.TimelineEvent, error)

	// Concept looks up a concept dictionary entry by name.
	Concept(ctx context.Context, name string) (*domain.RelatedConcept, error)

	// Topics lists all known topics with their document counts.
	Topics(ctx context.Context) (map[string]int, error)

	// Clear resets the graph and deletes persisted state.
	Clear(ctx context.Context) error
}
