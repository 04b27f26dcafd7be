package domain

// SearchOptions configures a knowledge graph search.
type SearchOptions struct {
	// Limit is the maximum number of documents returned.
	Limit int
}

// SearchResult is one ranked document hit with its matching chunks.
type SearchResult struct {
	// Document is the matched document.
	Document Document

	// Chunks are the deduplicated chunks that matched the query.
	Chunks []Chunk

	// Score is matched-term count divided by the number of query terms.
	Score float64
}

// RelatedConcept is a concept dictionary entry in the derived index.
// Definitions are not merged across documents: the first definition wins
// and later documents only extend the source list.
type RelatedConcept struct {
	// Name is the concept name as first seen.
	Name string

	// Definition is the first definition recorded for the name.
	Definition string

	// RelatedConcepts lists related concept names.
	RelatedConcepts []string

	// DocumentSources lists documents that define or mention the concept.
	DocumentSources []string
}
