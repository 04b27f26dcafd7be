package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Extraction errors. These are fatal for the affected document:
	// its status becomes error and no chunking is attempted.

	// ErrUnsupportedFormat indicates no extractor handles the file type.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrExtractionFailed indicates the extractor could not read the file.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrNoTextContent indicates extraction succeeded but found no text.
	ErrNoTextContent = errors.New("document contains no text")

	// ErrFileTooLarge indicates the raw file exceeds the ingestion limit.
	ErrFileTooLarge = errors.New("file too large")

	// Collaborator errors. These are always recovered locally by the
	// per-pass heuristic fallback and never surface as document errors.

	// ErrCompletionUnavailable indicates no completion service is
	// configured. Analysis degrades to heuristics-only.
	ErrCompletionUnavailable = errors.New("completion service unavailable")

	// ErrMalformedResponse indicates the completion service returned
	// output that could not be parsed as structured text.
	ErrMalformedResponse = errors.New("malformed completion response")

	// ErrDocumentNotReady indicates an operation requires a document in
	// the ready state.
	ErrDocumentNotReady = errors.New("document is not ready")
)
