package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
)

func TestEntities_Classification(t *testing.T) {
	text := "Marie Curie studied at the University of Paris before moving to Warsaw City in 1903."

	entities := Entities(text)

	byName := make(map[string]domain.EntityType)
	for _, e := range entities {
		byName[e.Name] = e.Type
	}

	assert.Equal(t, domain.EntityPerson, byName["Marie Curie"])
	assert.Equal(t, domain.EntityOrganization, byName["University of Paris"])
	assert.Equal(t, domain.EntityLocation, byName["Warsaw City"])
	assert.Equal(t, domain.EntityDate, byName["1903"])
}

func TestEntities_DeduplicatesByNormalizedName(t *testing.T) {
	text := "Marie Curie worked tirelessly. Marie Curie never stopped."

	entities := Entities(text)

	count := 0
	for _, e := range entities {
		if e.Name == "Marie Curie" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestEntities_LongCapitalizedSequenceIsConcept(t *testing.T) {
	entities := Entities("The General Theory Of Relativity changed physics.")

	require.NotEmpty(t, entities)
	found := false
	for _, e := range entities {
		if e.Type == domain.EntityConcept {
			found = true
		}
	}
	assert.True(t, found, "sequences longer than two words classify as concepts")
}

func TestTopics_IndicatorPhrases(t *testing.T) {
	topics := Topics("This chapter is about quantum mechanics and related ideas.")

	assert.Contains(t, topics, "quantum mechanics")
}

func TestTopics_OfPhrases(t *testing.T) {
	topics := Topics("We trace the history of science through the ages.")

	assert.Contains(t, topics, "history of science")
}

func TestTopics_SkipsStopwordHeads(t *testing.T) {
	// "the most of it" must not yield a topic headed by a stopword.
	topics := Topics("They made the most of it.")

	assert.NotContains(t, topics, "most of it")
}

func TestConcepts_DefinitionalPhrases(t *testing.T) {
	text := "Entropy is defined as a measure of disorder. Osmosis refers to the movement of water."

	concepts := Concepts(text)

	assert.Contains(t, concepts, "Entropy")
	assert.Contains(t, concepts, "Osmosis")
}

func TestRelationships_ClosedPredicateSet(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		predicate domain.Predicate
		object    string
	}{
		{"is a", "Dolphin is a mammal.", domain.PredicateIsA, "mammal"},
		{"causes", "Heat causes expansion.", domain.PredicateCauses, "expansion"},
		{"depends on", "Growth depends on sunlight.", domain.PredicateDependsOn, "sunlight"},
		{"includes", "Biology includes genetics.", domain.PredicateIncludes, "genetics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rels := Relationships(tt.text)

			require.NotEmpty(t, rels)
			assert.Equal(t, tt.predicate, rels[0].Predicate)
			assert.Equal(t, tt.object, rels[0].Object)
			assert.NotEmpty(t, rels[0].Context)
		})
	}
}

func TestRelationships_MatchAtEndOfText(t *testing.T) {
	// No trailing punctuation: the sentinel newline lets it match.
	rels := Relationships("Heat causes expansion")

	require.Len(t, rels, 1)
	assert.Equal(t, "expansion", rels[0].Object)
}

func TestDates_OrderAndOverlapHandling(t *testing.T) {
	text := "The war began in 1914. Fighting spread after July 28, 1914 across the continent."

	dates := Dates(text)

	require.Len(t, dates, 2)
	// In order of appearance; the year inside the month date is not
	// reported separately.
	assert.Equal(t, "1914", dates[0].Date)
	assert.Equal(t, "July 28, 1914", dates[1].Date)
	assert.Contains(t, dates[0].Context, "war began")
}

func TestDates_NumericFormats(t *testing.T) {
	dates := Dates("Submitted on 12/05/2021 for review.")

	require.Len(t, dates, 1)
	assert.Equal(t, "12/05/2021", dates[0].Date)
}

func TestExtract_CombinesCategories(t *testing.T) {
	text := "This essay is about radiation science. Marie Curie led the work. " +
		"Entropy is defined as a measure of disorder."

	meta := Extract(text)

	assert.Contains(t, meta.Topics, "radiation science")
	assert.Contains(t, meta.Entities, "Marie Curie")
	assert.Contains(t, meta.Concepts, "Entropy")
}

func TestKeywords(t *testing.T) {
	kws := Keywords("What is the role of chlorophyll in photosynthesis?")

	assert.Equal(t, []string{"role", "chlorophyll", "photosynthesis"}, kws)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"hello", "world", "42"}, Tokenize("Hello, World! 42"))
	assert.Empty(t, Tokenize("!!! ???"))
}

func TestIsStopword(t *testing.T) {
	assert.True(t, IsStopword("the"))
	assert.True(t, IsStopword("The"))
	assert.False(t, IsStopword("photosynthesis"))
}
