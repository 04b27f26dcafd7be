package knowledge

import (
	"sort"
	"strings"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/heuristics"
)

// minTermLength filters index terms: only lowercase tokens longer than
// two characters are indexed.
const minTermLength = 3

// Index is the derived lexical index over the knowledge graph: an
// inverted term index, a document relation graph built from shared
// topics, and a concept dictionary. It is never the source of truth -
// it must always be reconstructible from the graph by Rebuild.
//
// Index is not safe for concurrent use on its own; the owning Graph
// serializes access.
type Index struct {
	// terms maps an index term to the set of chunk ids containing it.
	terms map[string]map[string]struct{}

	// relations maps a document id to the ids of documents sharing at
	// least one topic. Kept symmetric.
	relations map[string]map[string]struct{}

	// concepts maps a lowercase concept name to its dictionary entry.
	concepts map[string]*domain.RelatedConcept
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		terms:     make(map[string]map[string]struct{}),
		relations: make(map[string]map[string]struct{}),
		concepts:  make(map[string]*domain.RelatedConcept),
	}
}

// indexChunk adds a chunk's terms to the inverted index.
func (ix *Index) indexChunk(c domain.Chunk) {
	for _, tok := range heuristics.Tokenize(c.Content) {
		if len(tok) < minTermLength {
			continue
		}
		set, ok := ix.terms[tok]
		if !ok {
			set = make(map[string]struct{})
			ix.terms[tok] = set
		}
		set[c.ID] = struct{}{}
	}
}

// chunksForTerm returns the chunk ids containing a term.
func (ix *Index) chunksForTerm(term string) map[string]struct{} {
	return ix.terms[term]
}

// relate records a symmetric relation between two documents.
func (ix *Index) relate(a, b string) {
	if a == b {
		return
	}
	for _, pair := range [2][2]string{{a, b}, {b, a}} {
		set, ok := ix.relations[pair[0]]
		if !ok {
			set = make(map[string]struct{})
			ix.relations[pair[0]] = set
		}
		set[pair[1]] = struct{}{}
	}
}

// related returns the ids related to a document, sorted for stability.
func (ix *Index) related(documentID string) []string {
	set := ix.relations[documentID]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// addConcepts merges a document's concept map into the dictionary.
// The first definition recorded for a name wins; later documents only
// extend the source list.
func (ix *Index) addConcepts(documentID string, m domain.ConceptMap) {
	for _, c := range m.All() {
		key := strings.ToLower(c.Name)
		entry, ok := ix.concepts[key]
		if !ok {
			ix.concepts[key] = &domain.RelatedConcept{
				Name:            c.Name,
				Definition:      c.Definition,
				RelatedConcepts: append([]string(nil), c.RelatedConcepts...),
				DocumentSources: []string{documentID},
			}
			continue
		}
		if !contains(entry.DocumentSources, documentID) {
			entry.DocumentSources = append(entry.DocumentSources, documentID)
		}
	}
}

// concept returns the dictionary entry for a name, or nil.
func (ix *Index) concept(name string) *domain.RelatedConcept {
	return ix.concepts[strings.ToLower(name)]
}

// removeDocument drops every index record referencing the document.
func (ix *Index) removeDocument(documentID string, chunkIDs map[string]struct{}) {
	for term, set := range ix.terms {
		for id := range chunkIDs {
			delete(set, id)
		}
		if len(set) == 0 {
			delete(ix.terms, term)
		}
	}

	for id, set := range ix.relations {
		delete(set, documentID)
		if len(set) == 0 {
			delete(ix.relations, id)
		}
	}
	delete(ix.relations, documentID)

	for key, entry := range ix.concepts {
		entry.DocumentSources = remove(entry.DocumentSources, documentID)
		if len(entry.DocumentSources) == 0 {
			delete(ix.concepts, key)
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func remove(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
