package heuristics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentences_SplitsOnTerminators(t *testing.T) {
	sentences := Sentences("First sentence. Second one! Third one?")

	assert.Equal(t, []string{"First sentence.", "Second one!", "Third one?"}, sentences)
}

func TestSentences_NoTerminator(t *testing.T) {
	sentences := Sentences("a fragment without punctuation")

	assert.Equal(t, []string{"a fragment without punctuation"}, sentences)
}

func TestSentences_Empty(t *testing.T) {
	assert.Nil(t, Sentences(""))
	assert.Nil(t, Sentences("   \n  "))
}

func TestTopSentences_RanksByTokenFrequency(t *testing.T) {
	text := "Photosynthesis converts light. Photosynthesis uses chlorophyll. Cats sleep."

	top := TopSentences(text, 1)

	require.Len(t, top, 1)
	assert.Contains(t, top[0], "Photosynthesis")
}

func TestTopSentences_PreservesDocumentOrder(t *testing.T) {
	text := "Energy flows downhill always. Unrelated filler here. Energy flows through systems."

	top := TopSentences(text, 2)

	require.Len(t, top, 2)
	// Both energy sentences outrank the filler and keep document order.
	assert.Equal(t, "Energy flows downhill always.", top[0])
	assert.Equal(t, "Energy flows through systems.", top[1])
}

func TestTopSentences_CapsAtAvailableSentences(t *testing.T) {
	top := TopSentences("Only one sentence here.", 5)

	assert.Len(t, top, 1)
}

func TestSummarize_Deterministic(t *testing.T) {
	text := strings.Repeat("Thermodynamics governs heat. ", 3) +
		"Entropy measures disorder. Something else entirely happened once."

	first := Summarize(text, 2)
	second := Summarize(text, 2)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestSummarize_EmptyText(t *testing.T) {
	assert.Empty(t, Summarize("", 3))
}
