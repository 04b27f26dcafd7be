package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
)

// fiveParagraphs builds five paragraphs, each comfortably above the
// default minimum chunk size.
func fiveParagraphs() (string, []string) {
	paras := []string{
		"The first paragraph talks about the origins of the subject at considerable length.",
		"The second paragraph develops the argument with supporting evidence and examples.",
		"The third paragraph introduces a counterpoint that complicates the earlier claims.",
		"The fourth paragraph weighs both positions against the available observations.",
		"The fifth paragraph closes with a synthesis of everything discussed so far.",
	}
	return strings.Join(paras, "\n\n"), paras
}

func TestChunk_EmptyText(t *testing.T) {
	c := New()

	assert.Nil(t, c.Chunk("doc-1", ""))
	assert.Nil(t, c.Chunk("doc-1", "   \n\n  \t  "))
}

func TestChunk_BelowMinimumSize(t *testing.T) {
	c := New()

	assert.Nil(t, c.Chunk("doc-1", "too short"))
}

func TestChunk_SingleParagraph(t *testing.T) {
	c := New()
	text := "A single paragraph that is clearly long enough to pass the minimum size check."

	chunks := c.Chunk("doc-1", text)

	require.Len(t, chunks, 1)
	assert.NotEmpty(t, chunks[0].ID)
	assert.Equal(t, "doc-1", chunks[0].DocumentID)
	assert.Equal(t, text, chunks[0].Content)
	assert.Equal(t, 0, chunks[0].StartIndex)
	assert.Equal(t, len(text), chunks[0].EndIndex)
	assert.Equal(t, 0, chunks[0].Position)
	assert.Equal(t, domain.ChunkParagraph, chunks[0].Type)
}

func TestChunk_GroupsParagraphsWithOverlap(t *testing.T) {
	c := New()
	text, paras := fiveParagraphs()

	chunks := c.Chunk("doc-1", text)

	// Group size 3 with overlap 1 over five paragraphs: [0..2] and [2..4].
	require.Len(t, chunks, 2)
	assert.Equal(t, 0, chunks[0].Position)
	assert.Equal(t, 1, chunks[1].Position)
	assert.Equal(t, 0, chunks[0].StartIndex)
	assert.Equal(t, len(text), chunks[1].EndIndex)

	// The middle paragraph appears in both chunks.
	assert.Contains(t, chunks[0].Content, paras[2])
	assert.Contains(t, chunks[1].Content, paras[2])
	assert.Less(t, chunks[1].StartIndex, chunks[0].EndIndex)

	// Spans stay valid and distinct chunks get distinct ids.
	for _, ch := range chunks {
		assert.Less(t, ch.StartIndex, ch.EndIndex)
	}
	assert.NotEqual(t, chunks[0].ID, chunks[1].ID)
}

func TestChunk_MaxChunksCap(t *testing.T) {
	c := New(WithGroupSize(1), WithOverlap(0), WithMaxChunks(2), WithBounds(1, 2000))
	text := "one alpha\n\ntwo bravo\n\nthree charlie\n\nfour delta"

	chunks := c.Chunk("doc-1", text)

	require.Len(t, chunks, 2)
	assert.Equal(t, "one alpha", chunks[0].Content)
	assert.Equal(t, "two bravo", chunks[1].Content)
}

func TestChunk_TruncatesAtMaxChars(t *testing.T) {
	c := New(WithBounds(10, 20))
	text := strings.Repeat("abcde ", 20)

	chunks := c.Chunk("doc-1", strings.TrimSpace(text))

	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0].Content, 20)
	// The span keeps the true end even when content is truncated.
	assert.Equal(t, len(strings.TrimSpace(text)), chunks[0].EndIndex)
}

func TestChunk_TruncationKeepsValidUTF8(t *testing.T) {
	// 21 bytes lands inside a two-byte rune; the cut must back up.
	c := New(WithBounds(10, 21))
	text := strings.Repeat("é", 30)

	chunks := c.Chunk("doc-1", text)

	require.Len(t, chunks, 1)
	assert.True(t, utf8.ValidString(chunks[0].Content))
	assert.Len(t, chunks[0].Content, 20)
}

func TestChunk_OverlapClampedBelowGroupSize(t *testing.T) {
	c := New(WithGroupSize(2), WithOverlap(5), WithBounds(1, 2000))
	text := "first para\n\nsecond para\n\nthird para"

	chunks := c.Chunk("doc-1", text)

	// Clamped overlap leaves step 1: [0..1] and [1..2].
	require.Len(t, chunks, 2)
	assert.Contains(t, chunks[0].Content, "second para")
	assert.Contains(t, chunks[1].Content, "second para")
}

func TestChunk_Classification(t *testing.T) {
	c := New(WithGroupSize(1), WithOverlap(0), WithBounds(1, 2000))

	tests := []struct {
		name string
		text string
		want domain.ChunkType
	}{
		{"heading", "# Introduction to the topic", domain.ChunkHeading},
		{"bullet list", "- first item\n- second item", domain.ChunkList},
		{"numbered list", "1. first step\n2. second step", domain.ChunkList},
		{"quote", "> a memorable quotation", domain.ChunkQuote},
		{"fenced code", "```\nx := compute()\n```", domain.ChunkCode},
		{"prose", "Plain prose with no structural marker at all.", domain.ChunkParagraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := c.Chunk("doc-1", tt.text)
			require.Len(t, chunks, 1)
			assert.Equal(t, tt.want, chunks[0].Type)
		})
	}
}

func TestChunk_WindowsCRLFParagraphs(t *testing.T) {
	c := New(WithGroupSize(1), WithOverlap(0), WithBounds(1, 2000))
	text := "first paragraph\r\n\r\nsecond paragraph"

	chunks := c.Chunk("doc-1", text)

	require.Len(t, chunks, 2)
	assert.Equal(t, "first paragraph", chunks[0].Content)
	assert.Equal(t, "second paragraph", chunks[1].Content)
}
