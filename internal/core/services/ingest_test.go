package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholia-labs/scholia-cli/internal/adapters/driven/extract"
	"github.com/scholia-labs/scholia-cli/internal/adapters/driven/storage/memory"
	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/knowledge"
	"github.com/scholia-labs/scholia-cli/internal/understanding"
)

// --- Test helpers ---

const ingestSample = `Thermodynamics is the study of heat and energy transfer between systems.
Entropy is defined as the measure of disorder in a physical system.

Heat causes expansion in most solid materials. The field advanced in 1824
when Sadi Carnot published his analysis of engine efficiency.`

type ingestFixture struct {
	graph  *knowledge.Graph
	store  *memory.GraphStore
	ingest *IngestService
}

func setupIngest(t *testing.T) *ingestFixture {
	t.Helper()
	graph := knowledge.NewGraph()
	store := memory.NewGraphStore()
	pipeline := understanding.New(nil)
	return &ingestFixture{
		graph:  graph,
		store:  store,
		ingest: NewIngestService(graph, store, extract.Default(), pipeline),
	}
}

// storedDocumentCount loads the persisted snapshot and counts documents.
func storedDocumentCount(t *testing.T, store *memory.GraphStore) int {
	t.Helper()
	snap, err := store.LoadSnapshot(context.Background())
	if err != nil {
		require.ErrorIs(t, err, domain.ErrNotFound)
		return 0
	}
	return len(snap.Documents)
}

// --- Tests ---

func TestIngestService_Ingest_Success(t *testing.T) {
	f := setupIngest(t)
	ctx := context.Background()

	doc, err := f.ingest.Ingest(ctx, "/tmp/thermo.txt", []byte(ingestSample), domain.UnderstandOptions{})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, doc.Status)
	assert.Equal(t, "thermo.txt", doc.Name)
	assert.Equal(t, "plaintext", doc.ExtractionMethod)
	assert.Equal(t, domain.MethodHeuristic, doc.GeneratedBy)
	assert.NotEmpty(t, doc.Summary)
	assert.NotEmpty(t, doc.Topics)
	assert.NotEmpty(t, doc.KeyPoints)
	assert.False(t, doc.UploadedAt.IsZero())
	assert.False(t, doc.ExtractedAt.IsZero())

	// Committed to the graph and persisted to the store.
	stored, err := f.graph.Document(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, stored.Status)
	assert.NotEmpty(t, f.graph.Chunks(doc.ID))
	assert.Equal(t, 1, storedDocumentCount(t, f.store))
}

func TestIngestService_Ingest_MarkdownExtraction(t *testing.T) {
	f := setupIngest(t)
	content := []byte("# Thermodynamics\n\nHeat flows from warmer bodies to cooler bodies over time.")

	doc, err := f.ingest.Ingest(context.Background(), "notes.md", content, domain.UnderstandOptions{})

	require.NoError(t, err)
	assert.Equal(t, "markdown", doc.ExtractionMethod)
	assert.NotContains(t, doc.Content, "#")
}

func TestIngestService_Ingest_UnsupportedFormat(t *testing.T) {
	f := setupIngest(t)

	doc, err := f.ingest.Ingest(context.Background(), "image.png", []byte{0x89, 0x50}, domain.UnderstandOptions{})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	require.NotNil(t, doc)
	assert.Equal(t, domain.StatusError, doc.Status)
	assert.Contains(t, doc.ErrorMessage, "unsupported")

	// The failed document stays observable in the graph and the store.
	stored, gerr := f.graph.Document(doc.ID)
	require.NoError(t, gerr)
	assert.Equal(t, domain.StatusError, stored.Status)
	assert.Empty(t, f.graph.Chunks(doc.ID))
	assert.Equal(t, 1, storedDocumentCount(t, f.store))
}

func TestIngestService_Ingest_FileTooLarge(t *testing.T) {
	f := setupIngest(t)

	doc, err := f.ingest.Ingest(context.Background(), "big.txt",
		make([]byte, DefaultMaxFileSize+1), domain.UnderstandOptions{})

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	require.NotNil(t, doc)
	assert.Equal(t, domain.StatusError, doc.Status)
}

func TestIngestService_Ingest_InvalidUTF8(t *testing.T) {
	f := setupIngest(t)

	doc, err := f.ingest.Ingest(context.Background(), "bad.txt",
		[]byte{0xff, 0xfe, 0xfd}, domain.UnderstandOptions{})

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Equal(t, domain.StatusError, doc.Status)
}

func TestIngestService_IngestText_Success(t *testing.T) {
	f := setupIngest(t)

	doc, err := f.ingest.IngestText(context.Background(), "pasted notes", ingestSample, domain.UnderstandOptions{})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, doc.Status)
	assert.Equal(t, "inline", doc.ExtractionMethod)
	assert.Equal(t, "pasted notes", doc.Name)
}

func TestIngestService_IngestText_Empty(t *testing.T) {
	f := setupIngest(t)

	doc, err := f.ingest.IngestText(context.Background(), "empty", "   \n ", domain.UnderstandOptions{})

	assert.ErrorIs(t, err, domain.ErrNoTextContent)
	assert.Equal(t, domain.StatusError, doc.Status)
}

func TestIngestService_Ingest_CancelledContext(t *testing.T) {
	f := setupIngest(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.ingest.Ingest(ctx, "thermo.txt", []byte(ingestSample), domain.UnderstandOptions{})

	assert.ErrorIs(t, err, context.Canceled)
	// A cancelled ingestion leaves no trace in the graph.
	assert.Empty(t, f.graph.Documents())
}

func TestIngestService_Remove(t *testing.T) {
	f := setupIngest(t)
	ctx := context.Background()
	doc, err := f.ingest.Ingest(ctx, "thermo.txt", []byte(ingestSample), domain.UnderstandOptions{})
	require.NoError(t, err)

	require.NoError(t, f.ingest.Remove(ctx, doc.ID))

	_, err = f.graph.Document(doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, storedDocumentCount(t, f.store))
}

func TestIngestService_Remove_NotFound(t *testing.T) {
	f := setupIngest(t)

	err := f.ingest.Remove(context.Background(), "ghost")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIngestService_Status(t *testing.T) {
	f := setupIngest(t)
	ctx := context.Background()
	doc, err := f.ingest.Ingest(ctx, "thermo.txt", []byte(ingestSample), domain.UnderstandOptions{})
	require.NoError(t, err)

	status, err := f.ingest.Status(ctx, doc.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, status)

	_, err = f.ingest.Status(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIngestService_NilStore(t *testing.T) {
	graph := knowledge.NewGraph()
	svc := NewIngestService(graph, nil, extract.Default(), understanding.New(nil))

	doc, err := svc.Ingest(context.Background(), "thermo.txt", []byte(ingestSample), domain.UnderstandOptions{})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, doc.Status)
}
