package driving

import (
	"context"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
)

// IngestService drives documents through extraction, chunking, analysis
// and into the knowledge graph.
type IngestService interface {
	// Ingest processes a raw file end to end and commits it to the
	// knowledge graph. Extraction failures set the document status to
	// error; completion-service failures degrade to heuristic analysis
	// and still succeed.
	Ingest(ctx context.Context, name string, content []byte, opts domain.UnderstandOptions) (*domain.Document, error)

	// IngestText ingests already-extracted plain text, bypassing the
	// extractor registry.
	IngestText(ctx context.Context, name, text string, opts domain.UnderstandOptions) (*domain.Document, error)

	// Remove deletes a document and all derived state from the graph.
	Remove(ctx context.Context, documentID string) error

	// Status returns the current lifecycle state of a document.
	Status(ctx context.Context, documentID string) (domain.DocumentStatus, error)
}
