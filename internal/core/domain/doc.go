// Package domain defines the core business entities for Scholia.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested study document with its derived analysis
//   - Chunk: A bounded, typed, positioned excerpt used for indexing
//   - Entity: A named referent tracked and merged across documents
//   - Understanding: The output of the multi-pass analysis pipeline
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
