package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scholia-labs/scholia-cli/internal/chunker"
	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driving"
	"github.com/scholia-labs/scholia-cli/internal/heuristics"
	"github.com/scholia-labs/scholia-cli/internal/knowledge"
	"github.com/scholia-labs/scholia-cli/internal/logger"
	"github.com/scholia-labs/scholia-cli/internal/understanding"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultMaxFileSize rejects raw files above this size.
const DefaultMaxFileSize = 20 << 20 // 20 MiB

// IngestService runs the full ingestion flow: extract, chunk, analyse,
// commit, persist. Independent documents may be ingested concurrently;
// the graph serializes commits and the snapshot save is serialized here.
type IngestService struct {
	graph      *knowledge.Graph
	store      driven.GraphStore
	extractors driven.ExtractorRegistry
	pipeline   *understanding.Pipeline
	chunk      *chunker.Chunker

	maxFileSize int64

	// saveMu serializes snapshot persistence after commits.
	saveMu sync.Mutex

	// cancelMu guards in-flight ingestion cancel functions by doc id.
	cancelMu sync.Mutex
	cancels  map[string]context.CancelFunc
}

// NewIngestService creates an ingest service. store may be nil (no
// persistence); the pipeline handles a nil completion service itself.
func NewIngestService(
	graph *knowledge.Graph,
	store driven.GraphStore,
	extractors driven.ExtractorRegistry,
	pipeline *understanding.Pipeline,
) *IngestService {
	return &IngestService{
		graph:       graph,
		store:       store,
		extractors:  extractors,
		pipeline:    pipeline,
		chunk:       chunker.New(),
		maxFileSize: DefaultMaxFileSize,
		cancels:     make(map[string]context.CancelFunc),
	}
}

// Ingest processes a raw file end to end. Extraction failures commit a
// document in the error state and return the matching sentinel;
// completion failures degrade silently to heuristic analysis.
func (s *IngestService) Ingest(ctx context.Context, name string, content []byte, opts domain.UnderstandOptions) (*domain.Document, error) {
	doc := domain.Document{
		ID:         uuid.New().String(),
		Name:       filepath.Base(name),
		Size:       int64(len(content)),
		Status:     domain.StatusUploading,
		UploadedAt: time.Now(),
	}

	if doc.Size > s.maxFileSize {
		return s.failDocument(ctx, doc, domain.ErrFileTooLarge)
	}

	extractor, err := s.extractors.ForFile(name)
	if err != nil {
		return s.failDocument(ctx, doc, err)
	}

	res, err := extractor.Extract(ctx, name, content)
	if err != nil {
		return s.failDocument(ctx, doc, err)
	}
	if strings.TrimSpace(res.Text) == "" {
		return s.failDocument(ctx, doc, domain.ErrNoTextContent)
	}

	doc.Content = res.Text
	doc.ExtractionMethod = res.Method
	doc.ExtractedAt = time.Now()
	doc.Status = domain.StatusProcessing

	return s.analyse(ctx, doc, opts)
}

// IngestText ingests already-extracted plain text.
func (s *IngestService) IngestText(ctx context.Context, name, text string, opts domain.UnderstandOptions) (*domain.Document, error) {
	doc := domain.Document{
		ID:               uuid.New().String(),
		Name:             name,
		Content:          text,
		Size:             int64(len(text)),
		Status:           domain.StatusProcessing,
		ExtractionMethod: "inline",
		UploadedAt:       time.Now(),
		ExtractedAt:      time.Now(),
	}

	if strings.TrimSpace(text) == "" {
		return s.failDocument(ctx, doc, domain.ErrNoTextContent)
	}

	return s.analyse(ctx, doc, opts)
}

// analyse chunks, runs the understanding pipeline and commits. A
// cancelled context aborts before the commit, leaving no visible
// side effects for the document.
func (s *IngestService) analyse(ctx context.Context, doc domain.Document, opts domain.UnderstandOptions) (*domain.Document, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.cancelMu.Lock()
	s.cancels[doc.ID] = cancel
	s.cancelMu.Unlock()
	defer func() {
		s.cancelMu.Lock()
		delete(s.cancels, doc.ID)
		s.cancelMu.Unlock()
	}()

	chunks := s.chunk.Chunk(doc.ID, doc.Content)
	for i := range chunks {
		chunks[i].Metadata = heuristics.Extract(chunks[i].Content)
	}
	logger.Debug("ingest: %s chunked into %d chunks", doc.Name, len(chunks))

	u, err := s.pipeline.Understand(ctx, doc.Content, doc.Name, chunks, opts)
	if err != nil {
		// Only raw-document problems reach here; collaborator
		// failures were already absorbed per pass.
		return s.failDocument(ctx, doc, err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	doc.Summary = u.Summary
	doc.Topics = gatherTopics(doc.Content, chunks, u)
	doc.KeyPoints = keyPoints(doc.Content, u)
	doc.Entities = documentEntities(chunks)
	doc.Concepts = u.Concepts
	doc.GeneratedBy = u.Method("theme")
	doc.Status = domain.StatusReady

	if err := s.graph.AddDocument(doc, chunks, u.Relationships, u.Timeline); err != nil {
		return nil, fmt.Errorf("committing document: %w", err)
	}

	if err := s.persist(ctx); err != nil {
		return &doc, fmt.Errorf("persisting graph: %w", err)
	}

	logger.Info("ingest: %s ready (%s analysis)", doc.Name, doc.GeneratedBy)
	return &doc, nil
}

// failDocument commits a document in the error state so its status
// stays observable, then returns the cause. No chunks are created.
func (s *IngestService) failDocument(ctx context.Context, doc domain.Document, cause error) (*domain.Document, error) {
	doc.Status = domain.StatusError
	doc.ErrorMessage = cause.Error()
	doc.Content = ""

	if err := s.graph.AddDocument(doc, nil, nil, nil); err != nil {
		return nil, errors.Join(cause, err)
	}
	if err := s.persist(ctx); err != nil {
		logger.Warn("ingest: persisting errored document: %v", err)
	}

	logger.Warn("ingest: %s failed: %v", doc.Name, cause)
	return &doc, cause
}

// Remove cancels any in-flight analysis for the document and deletes it
// with all derived state.
func (s *IngestService) Remove(ctx context.Context, documentID string) error {
	s.cancelMu.Lock()
	if cancel, ok := s.cancels[documentID]; ok {
		cancel()
	}
	s.cancelMu.Unlock()

	if err := s.graph.RemoveDocument(documentID); err != nil {
		return err
	}
	return s.persist(ctx)
}

// Status returns the document's lifecycle state.
func (s *IngestService) Status(_ context.Context, documentID string) (domain.DocumentStatus, error) {
	doc, err := s.graph.Document(documentID)
	if err != nil {
		return "", err
	}
	return doc.Status, nil
}

// persist saves a snapshot of the graph, serialized across callers.
func (s *IngestService) persist(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.store.SaveSnapshot(ctx, s.graph.Snapshot())
}

// gatherTopics merges chunk-level topic candidates with primary concept
// names, guaranteeing a non-empty list via keyword fallback.
func gatherTopics(text string, chunks []domain.Chunk, u *domain.Understanding) []string {
	seen := make(map[string]struct{})
	var topics []string

	add := func(t string) {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		topics = append(topics, t)
	}

	for _, c := range chunks {
		for _, t := range c.Metadata.Topics {
			add(t)
		}
	}
	for _, c := range u.Concepts.Primary {
		add(c.Name)
	}
	if u.Structure.Domain != "" && u.Structure.Domain != "general" {
		add(u.Structure.Domain)
	}

	if len(topics) == 0 {
		kws := heuristics.Keywords(text)
		for i, kw := range kws {
			if i >= 3 {
				break
			}
			add(kw)
		}
	}

	return topics
}

// keyPoints picks the document's key points: insights when present,
// otherwise the top-ranked sentences.
func keyPoints(text string, u *domain.Understanding) []string {
	if len(u.Insights) > 0 {
		return u.Insights
	}
	return heuristics.TopSentences(text, 3)
}

// documentEntities aggregates typed entities across chunks.
func documentEntities(chunks []domain.Chunk) []domain.DocumentEntity {
	seen := make(map[string]struct{})
	var out []domain.DocumentEntity

	for _, c := range chunks {
		for _, cand := range heuristics.Entities(c.Content) {
			key := domain.NormalizeEntityName(cand.Name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, domain.DocumentEntity{Name: cand.Name, Type: cand.Type})
		}
	}

	return out
}
