package domain

import "time"

// DocumentStatus tracks the ingestion lifecycle of a document.
type DocumentStatus string

const (
	// StatusUploading means the raw file has been received but not extracted.
	StatusUploading DocumentStatus = "uploading"

	// StatusProcessing means extraction succeeded and analysis is running.
	StatusProcessing DocumentStatus = "processing"

	// StatusReady means the document is fully analysed and queryable.
	// Content is immutable once ready; regenerating requires re-ingestion.
	StatusReady DocumentStatus = "ready"

	// StatusError means extraction failed. Collaborator failures never
	// produce this status; they degrade to heuristic output instead.
	StatusError DocumentStatus = "error"
)

// GenerationMethod records how a piece of derived content was produced,
// so consumers can distinguish confidence levels.
type GenerationMethod string

// MethodHeuristic marks content produced by the deterministic fallback
// rather than the completion collaborator. Model-derived content carries
// the model name as its method.
const MethodHeuristic GenerationMethod = "heuristic"

// Document represents an ingested study document and its derived analysis.
// It is owned exclusively by the knowledge graph once ingested.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Name is the human-readable display name (usually the file name).
	Name string

	// Content is the full extracted plain text.
	Content string

	// Size is the raw file size in bytes.
	Size int64

	// Status is the current lifecycle state.
	Status DocumentStatus

	// Summary is the document-level summary from the understanding pipeline.
	Summary string

	// Topics are document-scoped topic labels, deduplicated.
	Topics []string

	// KeyPoints are the main takeaways, in pipeline order.
	KeyPoints []string

	// Entities are the entities detected in this document.
	Entities []DocumentEntity

	// Concepts is this document's concept map. Concept maps are not
	// merged across documents.
	Concepts ConceptMap

	// GeneratedBy records how Summary, Topics and KeyPoints were produced.
	GeneratedBy GenerationMethod

	// ExtractionMethod names the text extractor that produced Content.
	ExtractionMethod string

	// ErrorMessage holds the extraction failure reason when Status is error.
	ErrorMessage string

	// UploadedAt is when the raw file was received.
	UploadedAt time.Time

	// ExtractedAt is when text extraction completed.
	ExtractedAt time.Time
}

// DocumentEntity is an entity mention as recorded on the document itself.
// The cross-document merged record lives in Entity.
type DocumentEntity struct {
	// Name is the entity's display name.
	Name string

	// Type is the detected entity type.
	Type EntityType

	// Description is optional context from the detecting pass.
	Description string
}

// ChunkType classifies a chunk by its leading structure.
type ChunkType string

const (
	// ChunkParagraph is prose with no structural marker.
	ChunkParagraph ChunkType = "paragraph"

	// ChunkHeading starts with a heading marker.
	ChunkHeading ChunkType = "heading"

	// ChunkList starts with a bullet or numbered-list marker.
	ChunkList ChunkType = "list"

	// ChunkQuote starts with a quote marker.
	ChunkQuote ChunkType = "quote"

	// ChunkCode starts with a code fence or indented block.
	ChunkCode ChunkType = "code"
)

// Chunk represents a bounded, typed, positioned excerpt of a document.
// Chunks are the unit of indexing and context retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document. It must reference a live
	// document; chunks are deleted with their document.
	DocumentID string

	// Content is the chunk text, truncated at the chunker's maximum.
	Content string

	// StartIndex is the inclusive byte offset into the document content.
	StartIndex int

	// EndIndex is the exclusive byte offset into the document content.
	EndIndex int

	// Position is the ordinal position within the document.
	Position int

	// Type is the structural classification.
	Type ChunkType

	// Metadata holds heuristically extracted labels.
	Metadata ChunkMetadata
}

// ChunkMetadata holds the lightweight extraction attached to each chunk.
type ChunkMetadata struct {
	// Topics are candidate topic labels.
	Topics []string

	// Entities are candidate entity names.
	Entities []string

	// Concepts are candidate concept names.
	Concepts []string
}
