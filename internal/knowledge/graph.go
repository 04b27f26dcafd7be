// Package knowledge holds the process-wide knowledge graph built from
// ingested documents: documents, chunks, merged entities, topics and the
// global timeline, together with the derived lexical index. The graph is
// constructed once at process start and passed by reference to all
// components - there is no ambient global state.
package knowledge

import (
	"sort"
	"strings"
	"sync"

	"github.com/scholia-labs/scholia-cli/internal/chunker"
	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/heuristics"
	"github.com/scholia-labs/scholia-cli/internal/logger"
)

// mentionContextRadius bounds the context stored with entity mentions.
const mentionContextRadius = 60

// Graph is the aggregate store. AddDocument is the single mutation
// entry point and runs as a critical section; reads take a shared lock.
type Graph struct {
	mu sync.RWMutex

	documents map[string]*domain.Document
	docOrder  []string
	chunks    map[string]*domain.Chunk
	byDoc     map[string][]string
	entities  map[string]*domain.Entity
	topics    map[string]map[string]struct{}
	timeline  []domain.TimelineEvent

	index *Index
}

// NewGraph creates an empty knowledge graph.
func NewGraph() *Graph {
	return &Graph{
		documents: make(map[string]*domain.Document),
		chunks:    make(map[string]*domain.Chunk),
		byDoc:     make(map[string][]string),
		entities:  make(map[string]*domain.Entity),
		topics:    make(map[string]map[string]struct{}),
		index:     NewIndex(),
	}
}

// AddDocument commits a document with its chunks, relationships and
// timeline events. It stores the document, indexes every chunk's terms,
// merges entities into the global entity map, updates the topic map,
// appends timeline events and recomputes relation edges against every
// document sharing a topic. Adding the same document id again replaces
// the previous state without duplicating entity mentions.
func (g *Graph) AddDocument(
	doc domain.Document,
	chunks []domain.Chunk,
	rels []domain.Relationship,
	events []domain.TimelineEvent,
) error {
	if doc.ID == "" {
		return domain.ErrInvalidInput
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.documents[doc.ID]; exists {
		g.removeLocked(doc.ID)
	}

	// Documents handed over unchunked are chunked here with defaults,
	// metadata seeded by the heuristic extractor.
	if len(chunks) == 0 && doc.Status != domain.StatusError && strings.TrimSpace(doc.Content) != "" {
		chunks = chunker.New().Chunk(doc.ID, doc.Content)
		for i := range chunks {
			chunks[i].Metadata = heuristics.Extract(chunks[i].Content)
		}
	}

	stored := doc
	g.documents[doc.ID] = &stored
	g.docOrder = append(g.docOrder, doc.ID)

	for i := range chunks {
		c := chunks[i]
		if c.DocumentID != doc.ID {
			c.DocumentID = doc.ID
		}
		g.chunks[c.ID] = &c
		g.byDoc[doc.ID] = append(g.byDoc[doc.ID], c.ID)
		g.index.indexChunk(c)
		g.mergeChunkEntities(c)
	}

	g.linkRelationships(rels)

	for _, topic := range doc.Topics {
		key := strings.ToLower(strings.TrimSpace(topic))
		if key == "" {
			continue
		}
		set, ok := g.topics[key]
		if !ok {
			set = make(map[string]struct{})
			g.topics[key] = set
		}
		for other := range set {
			g.index.relate(doc.ID, other)
		}
		set[doc.ID] = struct{}{}
	}

	for _, e := range events {
		if e.DocumentID == "" {
			e.DocumentID = doc.ID
		}
		g.timeline = append(g.timeline, e)
	}
	sort.SliceStable(g.timeline, func(i, j int) bool {
		return g.timeline[i].Year() < g.timeline[j].Year()
	})

	g.index.addConcepts(doc.ID, doc.Concepts)

	logger.Debug("graph: committed document %s (%d chunks, %d entities total)",
		doc.ID, len(chunks), len(g.entities))
	return nil
}

// mergeChunkEntities detects entities in a chunk and merges them into
// the global map: same normalized name appends mentions (deduplicated
// by document and chunk), and never overwrites an existing type.
func (g *Graph) mergeChunkEntities(c domain.Chunk) {
	for _, cand := range heuristics.Entities(c.Content) {
		id := domain.EntityID(cand.Name)
		ent, ok := g.entities[id]
		if !ok {
			ent = &domain.Entity{
				ID:   id,
				Name: cand.Name,
				Type: cand.Type,
			}
			g.entities[id] = ent
		}

		dup := false
		for _, m := range ent.Mentions {
			if m.DocumentID == c.DocumentID && m.ChunkID == c.ID {
				dup = true
				break
			}
		}
		if !dup {
			ent.Mentions = append(ent.Mentions, domain.Mention{
				DocumentID: c.DocumentID,
				ChunkID:    c.ID,
				Context:    mentionContext(c.Content, cand.Name),
			})
		}
	}
}

// linkRelationships appends entity ids to both endpoints of each triple
// whose subject and object resolve to known entities.
func (g *Graph) linkRelationships(rels []domain.Relationship) {
	for _, r := range rels {
		sub, sok := g.entities[domain.EntityID(r.Subject)]
		obj, ook := g.entities[domain.EntityID(r.Object)]
		if !sok || !ook {
			continue
		}
		if !contains(sub.Relationships, obj.ID) {
			sub.Relationships = append(sub.Relationships, obj.ID)
		}
		if !contains(obj.Relationships, sub.ID) {
			obj.Relationships = append(obj.Relationships, sub.ID)
		}
	}
}

func mentionContext(text, name string) string {
	idx := strings.Index(strings.ToLower(text), strings.ToLower(name))
	if idx < 0 {
		idx = 0
	}
	lo := idx - mentionContextRadius
	if lo < 0 {
		lo = 0
	}
	hi := idx + len(name) + mentionContextRadius
	if hi > len(text) {
		hi = len(text)
	}
	return strings.Join(strings.Fields(text[lo:hi]), " ")
}

// Search tokenizes the query (lowercase, non-word characters stripped,
// tokens of length <= 2 dropped), looks each token up in the inverted
// index, accumulates per-document match counts across all matching
// chunks and ranks documents by score / numQueryTerms, descending.
// Ties break by document insertion order.
func (g *Graph) Search(query string, opts domain.SearchOptions) []domain.SearchResult {
	tokens := queryTokens(query)
	if len(tokens) == 0 {
		return []domain.SearchResult{}
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	chunkMatches := make(map[string]int)
	for _, tok := range tokens {
		for chunkID := range g.index.chunksForTerm(tok) {
			chunkMatches[chunkID]++
		}
	}

	docScores := make(map[string]int)
	docChunks := make(map[string]map[string]struct{})
	for chunkID, matches := range chunkMatches {
		c, ok := g.chunks[chunkID]
		if !ok {
			continue
		}
		docScores[c.DocumentID] += matches
		set, ok := docChunks[c.DocumentID]
		if !ok {
			set = make(map[string]struct{})
			docChunks[c.DocumentID] = set
		}
		set[chunkID] = struct{}{}
	}

	results := make([]domain.SearchResult, 0, len(docScores))
	for _, docID := range g.docOrder {
		score, ok := docScores[docID]
		if !ok {
			continue
		}
		doc := g.documents[docID]
		results = append(results, domain.SearchResult{
			Document: *doc,
			Chunks:   g.hydrateChunks(docChunks[docID]),
			Score:    float64(score) / float64(len(tokens)),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

// hydrateChunks resolves a chunk id set into chunks ordered by position.
func (g *Graph) hydrateChunks(ids map[string]struct{}) []domain.Chunk {
	out := make([]domain.Chunk, 0, len(ids))
	for id := range ids {
		if c, ok := g.chunks[id]; ok {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// queryTokens filters tokenized query terms to indexable length.
func queryTokens(query string) []string {
	var out []string
	for _, tok := range heuristics.Tokenize(query) {
		if len(tok) >= minTermLength {
			out = append(out, tok)
		}
	}
	return out
}

// Document returns a copy of the document, or ErrNotFound.
func (g *Graph) Document(id string) (*domain.Document, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	doc, ok := g.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *doc
	return &cp, nil
}

// Documents lists all documents in insertion order.
func (g *Graph) Documents() []domain.Document {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]domain.Document, 0, len(g.docOrder))
	for _, id := range g.docOrder {
		if doc, ok := g.documents[id]; ok {
			out = append(out, *doc)
		}
	}
	return out
}

// Chunks returns a document's chunks ordered by position.
func (g *Graph) Chunks(documentID string) []domain.Chunk {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := g.byDoc[documentID]
	out := make([]domain.Chunk, 0, len(ids))
	for _, id := range ids {
		if c, ok := g.chunks[id]; ok {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// ChunkCount returns the total number of chunks in the graph.
func (g *Graph) ChunkCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.chunks)
}

// RelatedDocuments returns documents sharing at least one topic with
// the given document.
func (g *Graph) RelatedDocuments(documentID string) []domain.Document {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []domain.Document
	for _, id := range g.index.related(documentID) {
		if doc, ok := g.documents[id]; ok {
			out = append(out, *doc)
		}
	}
	return out
}

// DocumentsByTopic returns the documents tagged with a topic,
// case-insensitive, in insertion order.
func (g *Graph) DocumentsByTopic(topic string) []domain.Document {
	g.mu.RLock()
	defer g.mu.RUnlock()
	set := g.topics[strings.ToLower(strings.TrimSpace(topic))]
	var out []domain.Document
	for _, id := range g.docOrder {
		if _, ok := set[id]; !ok {
			continue
		}
		if doc, ok := g.documents[id]; ok {
			out = append(out, *doc)
		}
	}
	return out
}

// Entity looks up a merged entity by display name.
func (g *Graph) Entity(name string) (*domain.Entity, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ent, ok := g.entities[domain.EntityID(name)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ent
	cp.Mentions = append([]domain.Mention(nil), ent.Mentions...)
	cp.Relationships = append([]string(nil), ent.Relationships...)
	return &cp, nil
}

// Timeline returns the global timeline, ascending by parsed year.
func (g *Graph) Timeline() []domain.TimelineEvent {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]domain.TimelineEvent(nil), g.timeline...)
}

// Concept looks up a concept dictionary entry by name.
func (g *Graph) Concept(name string) (*domain.RelatedConcept, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	entry := g.index.concept(name)
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	cp := *entry
	return &cp, nil
}

// Topics returns every topic with its document count.
func (g *Graph) Topics() map[string]int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[string]int, len(g.topics))
	for topic, set := range g.topics {
		out[topic] = len(set)
	}
	return out
}

// RemoveDocument deletes a document and all derived state: chunks,
// entity mentions (entities left with no mentions are dropped), topic
// entries, relation edges, timeline events and index terms.
func (g *Graph) RemoveDocument(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.documents[id]; !ok {
		return domain.ErrNotFound
	}
	g.removeLocked(id)
	return nil
}

func (g *Graph) removeLocked(id string) {
	chunkIDs := make(map[string]struct{}, len(g.byDoc[id]))
	for _, cid := range g.byDoc[id] {
		chunkIDs[cid] = struct{}{}
		delete(g.chunks, cid)
	}
	delete(g.byDoc, id)
	delete(g.documents, id)
	g.docOrder = remove(g.docOrder, id)

	for eid, ent := range g.entities {
		kept := ent.Mentions[:0]
		for _, m := range ent.Mentions {
			if m.DocumentID != id {
				kept = append(kept, m)
			}
		}
		ent.Mentions = kept
		if len(ent.Mentions) == 0 {
			delete(g.entities, eid)
		}
	}

	for topic, set := range g.topics {
		delete(set, id)
		if len(set) == 0 {
			delete(g.topics, topic)
		}
	}

	kept := g.timeline[:0]
	for _, e := range g.timeline {
		if e.DocumentID != id {
			kept = append(kept, e)
		}
	}
	g.timeline = kept

	g.index.removeDocument(id, chunkIDs)
}

// Clear resets all maps. Callers are responsible for also resetting
// persisted state.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.documents = make(map[string]*domain.Document)
	g.docOrder = nil
	g.chunks = make(map[string]*domain.Chunk)
	g.byDoc = make(map[string][]string)
	g.entities = make(map[string]*domain.Entity)
	g.topics = make(map[string]map[string]struct{})
	g.timeline = nil
	g.index = NewIndex()
}
