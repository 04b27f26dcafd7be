package knowledge

import (
	"sort"
	"strings"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/logger"
)

// Snapshot serializes the graph and derived index into the flattened
// array-of-pairs form used by storage backends. Encoding is an explicit
// codec paired with Restore: load(save()) reproduces an observably
// identical graph.
func (g *Graph) Snapshot() *domain.GraphSnapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	snap := &domain.GraphSnapshot{
		Documents: make([]domain.Document, 0, len(g.docOrder)),
		Chunks:    make([]domain.Chunk, 0, len(g.chunks)),
		Entities:  make([]domain.Entity, 0, len(g.entities)),
		Timeline:  append([]domain.TimelineEvent(nil), g.timeline...),
	}

	for _, id := range g.docOrder {
		if doc, ok := g.documents[id]; ok {
			snap.Documents = append(snap.Documents, *doc)
		}
	}
	for _, id := range g.docOrder {
		for _, cid := range g.byDoc[id] {
			if c, ok := g.chunks[cid]; ok {
				snap.Chunks = append(snap.Chunks, *c)
			}
		}
	}

	for _, id := range sortedKeys(g.entities) {
		snap.Entities = append(snap.Entities, *g.entities[id])
	}

	for _, topic := range sortedKeys(g.topics) {
		snap.Topics = append(snap.Topics, domain.TopicDocuments{
			Topic:       topic,
			DocumentIDs: sortedKeys(g.topics[topic]),
		})
	}

	for _, term := range sortedKeys(g.index.terms) {
		snap.Terms = append(snap.Terms, domain.TermChunks{
			Term:     term,
			ChunkIDs: sortedKeys(g.index.terms[term]),
		})
	}

	for _, id := range sortedKeys(g.index.relations) {
		snap.Relations = append(snap.Relations, domain.DocumentRelations{
			DocumentID: id,
			RelatedIDs: sortedKeys(g.index.relations[id]),
		})
	}

	for _, key := range sortedKeys(g.index.concepts) {
		snap.Concepts = append(snap.Concepts, *g.index.concepts[key])
	}

	return snap
}

// Restore replaces the graph contents with a decoded snapshot.
// Orphaned records - chunks referencing a missing document, entity
// mentions referencing missing documents or chunks - are dropped rather
// than failing the load. The derived index is rebuilt from the restored
// graph instead of trusting the stored copy.
func (g *Graph) Restore(snap *domain.GraphSnapshot) error {
	if snap == nil {
		return domain.ErrInvalidInput
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.documents = make(map[string]*domain.Document, len(snap.Documents))
	g.docOrder = g.docOrder[:0]
	g.chunks = make(map[string]*domain.Chunk, len(snap.Chunks))
	g.byDoc = make(map[string][]string)
	g.entities = make(map[string]*domain.Entity, len(snap.Entities))
	g.topics = make(map[string]map[string]struct{})
	g.timeline = nil

	for i := range snap.Documents {
		doc := snap.Documents[i]
		g.documents[doc.ID] = &doc
		g.docOrder = append(g.docOrder, doc.ID)
	}

	dropped := 0
	for i := range snap.Chunks {
		c := snap.Chunks[i]
		if _, ok := g.documents[c.DocumentID]; !ok {
			dropped++
			continue
		}
		g.chunks[c.ID] = &c
		g.byDoc[c.DocumentID] = append(g.byDoc[c.DocumentID], c.ID)
	}

	for i := range snap.Entities {
		ent := snap.Entities[i]
		kept := ent.Mentions[:0]
		for _, m := range ent.Mentions {
			if _, ok := g.documents[m.DocumentID]; !ok {
				dropped++
				continue
			}
			if _, ok := g.chunks[m.ChunkID]; !ok {
				dropped++
				continue
			}
			kept = append(kept, m)
		}
		ent.Mentions = kept
		if len(ent.Mentions) == 0 {
			continue
		}
		g.entities[ent.ID] = &ent
	}

	for _, td := range snap.Topics {
		set := make(map[string]struct{}, len(td.DocumentIDs))
		for _, id := range td.DocumentIDs {
			if _, ok := g.documents[id]; ok {
				set[id] = struct{}{}
			}
		}
		if len(set) > 0 {
			g.topics[strings.ToLower(td.Topic)] = set
		}
	}

	for _, e := range snap.Timeline {
		if _, ok := g.documents[e.DocumentID]; ok {
			g.timeline = append(g.timeline, e)
		}
	}

	g.rebuildIndexLocked()

	if dropped > 0 {
		logger.Warn("graph: dropped %d orphaned records during rehydration", dropped)
	}
	return nil
}

// RebuildIndex reconstructs the derived index from the graph alone,
// replaying the same indexing routine AddDocument uses.
func (g *Graph) RebuildIndex() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rebuildIndexLocked()
}

func (g *Graph) rebuildIndexLocked() {
	g.index = NewIndex()

	for _, id := range g.docOrder {
		for _, cid := range g.byDoc[id] {
			g.index.indexChunk(*g.chunks[cid])
		}
	}

	for _, set := range g.topics {
		ids := sortedKeys(set)
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				g.index.relate(ids[i], ids[j])
			}
		}
	}

	for _, id := range g.docOrder {
		if doc, ok := g.documents[id]; ok {
			g.index.addConcepts(id, doc.Concepts)
		}
	}
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
