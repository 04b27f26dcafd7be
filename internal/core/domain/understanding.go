package domain

// Depth controls how much analysis the understanding pipeline performs.
type Depth string

const (
	// DepthShallow caps concept analysis at 10 concepts.
	DepthShallow Depth = "shallow"

	// DepthNormal caps concept analysis at 15 concepts.
	DepthNormal Depth = "normal"

	// DepthDeep caps concept analysis at 20 concepts.
	DepthDeep Depth = "deep"
)

// UnderstandOptions configures an understanding pipeline run.
type UnderstandOptions struct {
	// Depth selects the concept cap. Defaults to normal.
	Depth Depth

	// FocusAreas biases prompts toward specific subjects, if set.
	FocusAreas []string
}

// Structure is the document classification from the structure pass.
type Structure struct {
	// DocumentType is e.g. "textbook chapter", "lecture notes".
	DocumentType string

	// Purpose is the document's apparent intent.
	Purpose string

	// ReadingLevel is e.g. "introductory", "intermediate", "advanced".
	ReadingLevel string

	// Domain is the subject area.
	Domain string
}

// DefaultStructure is the fallback classification used when the
// structure pass fails or returns unparsable output.
func DefaultStructure() Structure {
	return Structure{
		DocumentType: "unknown",
		Purpose:      "general",
		ReadingLevel: "intermediate",
		Domain:       "general",
	}
}

// Understanding is the full output of the multi-pass analysis pipeline.
// Every section carries its generation method in Methods so consumers can
// tell collaborator-derived content from heuristic fallback.
type Understanding struct {
	// Structure is the document classification.
	Structure Structure

	// Theme is a one-sentence statement of the document's theme.
	Theme string

	// Summary is a 3-5 sentence document summary.
	Summary string

	// Concepts is the tiered concept map.
	Concepts ConceptMap

	// Relationships are the extracted subject/predicate/object triples.
	Relationships []Relationship

	// Timeline holds dated events, sorted ascending by parsed year.
	Timeline []TimelineEvent

	// Insights are free-text observations, at most 7.
	Insights []string

	// Questions are study questions, at most 5.
	Questions []string

	// Conclusions synthesise insights and relationships, 3-5 entries.
	Conclusions []string

	// Methods records per-pass generation methods, keyed by pass name
	// ("structure", "theme", "concepts", "insights", "conclusions").
	Methods map[string]GenerationMethod
}

// Method returns the generation method recorded for a pass,
// defaulting to heuristic when the pass was never recorded.
func (u Understanding) Method(pass string) GenerationMethod {
	if m, ok := u.Methods[pass]; ok {
		return m
	}
	return MethodHeuristic
}
