package driven

import "context"

// TextExtractor turns a raw uploaded file into plain text.
// Each extractor handles specific file extensions or MIME types; the
// byte-level parsing of rich formats (PDF, DOCX, OCR) lives behind this
// port and is not part of the core.
//
// Implementations must distinguish three failure modes through the
// domain sentinels: domain.ErrUnsupportedFormat when the file type is not
// handled, domain.ErrExtractionFailed when reading fails, and
// domain.ErrNoTextContent when the file parsed but yielded no text.
type TextExtractor interface {
	// SupportedExtensions returns the file extensions this extractor
	// handles, lowercase with leading dot (".txt", ".md").
	SupportedExtensions() []string

	// Priority returns the selection priority (higher = preferred)
	// when multiple extractors support an extension.
	Priority() int

	// Extract returns the plain text of the file.
	Extract(ctx context.Context, name string, content []byte) (*ExtractResult, error)
}

// ExtractResult contains extracted text plus extraction metadata.
type ExtractResult struct {
	// Text is the extracted plain text.
	Text string

	// Method names the extraction method for provenance labelling.
	Method string

	// Complete is false when the extractor knows it lost content
	// (e.g. unparsable sections were skipped).
	Complete bool
}

// ExtractorRegistry selects an extractor for a file.
type ExtractorRegistry interface {
	// Register adds an extractor to the registry.
	Register(e TextExtractor)

	// ForFile returns the highest-priority extractor for the file name.
	// Returns domain.ErrUnsupportedFormat when none matches.
	ForFile(name string) (TextExtractor, error)
}
