package domain

// Importance ranks a concept within a document's concept map.
type Importance string

const (
	// ImportancePrimary marks a central concept.
	ImportancePrimary Importance = "primary"

	// ImportanceSecondary marks a supporting but significant concept.
	ImportanceSecondary Importance = "secondary"

	// ImportanceSupporting marks a peripheral concept.
	ImportanceSupporting Importance = "supporting"
)

// Concept is a single named concept with its explanation.
type Concept struct {
	// Name is unique within a single document's concept map.
	Name string

	// Definition explains the concept in the document's context.
	Definition string

	// Importance is the assigned tier.
	Importance Importance

	// RelatedConcepts lists names of related concepts.
	RelatedConcepts []string

	// Examples are illustrative examples, if any.
	Examples []string
}

// ConceptMap groups a document's concepts into three importance tiers.
// Concept maps are per-document; cross-document unification is an
// unresolved follow-up decision.
type ConceptMap struct {
	// Primary holds central concepts.
	Primary []Concept

	// Secondary holds significant supporting concepts.
	Secondary []Concept

	// Supporting holds peripheral concepts.
	Supporting []Concept
}

// All returns the concepts of every tier, primary first.
func (m ConceptMap) All() []Concept {
	out := make([]Concept, 0, len(m.Primary)+len(m.Secondary)+len(m.Supporting))
	out = append(out, m.Primary...)
	out = append(out, m.Secondary...)
	out = append(out, m.Supporting...)
	return out
}

// Add places a concept into the tier matching its importance.
// Unknown importance values fall into the supporting tier.
func (m *ConceptMap) Add(c Concept) {
	switch c.Importance {
	case ImportancePrimary:
		m.Primary = append(m.Primary, c)
	case ImportanceSecondary:
		m.Secondary = append(m.Secondary, c)
	default:
		c.Importance = ImportanceSupporting
		m.Supporting = append(m.Supporting, c)
	}
}

// Len returns the total number of concepts across all tiers.
func (m ConceptMap) Len() int {
	return len(m.Primary) + len(m.Secondary) + len(m.Supporting)
}
