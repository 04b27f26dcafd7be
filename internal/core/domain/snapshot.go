package domain

// GraphSnapshot is the serialized form of the knowledge graph and its
// derived index. Map and set structures are flattened into arrays of
// key/value pairs so the snapshot is representable in storage backends
// without native map or set types.
type GraphSnapshot struct {
	// Documents holds every ingested document.
	Documents []Document `json:"documents"`

	// Chunks holds every chunk, each referencing a document above.
	Chunks []Chunk `json:"chunks"`

	// Entities holds the merged entity records.
	Entities []Entity `json:"entities"`

	// Topics flattens the topic -> document ids map.
	Topics []TopicDocuments `json:"topics"`

	// Timeline holds the global timeline, order-preserving.
	Timeline []TimelineEvent `json:"timeline"`

	// Terms flattens the inverted search index.
	Terms []TermChunks `json:"terms"`

	// Relations flattens the document relation graph.
	Relations []DocumentRelations `json:"relations"`

	// Concepts holds the derived concept dictionary.
	Concepts []RelatedConcept `json:"concepts"`
}

// TopicDocuments pairs a topic with the documents mentioning it.
type TopicDocuments struct {
	// Topic is the topic label.
	Topic string `json:"topic"`

	// DocumentIDs are the documents tagged with the topic.
	DocumentIDs []string `json:"documentIds"`
}

// TermChunks pairs an index term with the chunks containing it.
type TermChunks struct {
	// Term is a lowercase token of length > 2.
	Term string `json:"term"`

	// ChunkIDs are the chunks containing the term.
	ChunkIDs []string `json:"chunkIds"`
}

// DocumentRelations pairs a document with its topic-sharing neighbours.
type DocumentRelations struct {
	// DocumentID is the source document.
	DocumentID string `json:"documentId"`

	// RelatedIDs are documents sharing at least one topic.
	RelatedIDs []string `json:"relatedIds"`
}
