package domain

import "strings"

// EntityType classifies a tracked entity.
type EntityType string

const (
	// EntityPerson is a detected person name.
	EntityPerson EntityType = "person"

	// EntityOrganization is an organisation (University, Institute, ...).
	EntityOrganization EntityType = "organization"

	// EntityLocation is a place.
	EntityLocation EntityType = "location"

	// EntityDate is a date or year reference.
	EntityDate EntityType = "date"

	// EntityConcept is an abstract concept.
	EntityConcept EntityType = "concept"

	// EntityTerm is a domain term.
	EntityTerm EntityType = "term"
)

// Entity is a named referent tracked across documents. Entities are merged
// solely by normalized-name equality, so distinct referents sharing a name
// across unrelated documents will conflate. This is a known precision
// limitation of the design, not a bug to fix silently.
type Entity struct {
	// ID is derived deterministically from the normalized name.
	ID string

	// Name is the display name as first seen.
	Name string

	// Type is the entity type. Merging never overwrites an existing type.
	Type EntityType

	// Mentions is the append-only list of places the entity appears,
	// deduplicated by (DocumentID, ChunkID).
	Mentions []Mention

	// Relationships lists related entity ids.
	Relationships []string
}

// Mention records a single appearance of an entity.
type Mention struct {
	// DocumentID is the document containing the mention.
	DocumentID string

	// ChunkID is the chunk containing the mention.
	ChunkID string

	// Context is a short excerpt around the mention.
	Context string
}

// EntityID derives the deterministic entity identifier from a name:
// lowercased with whitespace collapsed to single hyphens.
func EntityID(name string) string {
	return "entity-" + strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// NormalizeEntityName lowercases a name and collapses whitespace,
// producing the merge key used across documents.
func NormalizeEntityName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Predicate is a relationship predicate from the closed set the
// heuristic extractor recognises.
type Predicate string

const (
	// PredicateIsA marks a classification relationship.
	PredicateIsA Predicate = "is a"

	// PredicateCauses marks a causal relationship.
	PredicateCauses Predicate = "causes"

	// PredicateDependsOn marks a dependency relationship.
	PredicateDependsOn Predicate = "depends on"

	// PredicateIncludes marks a composition relationship.
	PredicateIncludes Predicate = "includes"
)

// Relationship is a document-scoped subject/predicate/object triple.
// Relationships are not merged across documents.
type Relationship struct {
	// Subject is the left-hand entity or phrase.
	Subject string

	// Predicate is drawn from the closed predicate set.
	Predicate Predicate

	// Object is the right-hand entity or phrase.
	Object string

	// Context is up to 50 characters of surrounding text for traceability.
	Context string
}
