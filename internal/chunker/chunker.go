// Package chunker splits extracted document text into bounded, typed,
// positioned chunks. Chunks group blank-line-delimited paragraphs with a
// configurable overlap so neighbouring context is shared between
// consecutive chunks.
package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
)

// Default chunking parameters.
const (
	// DefaultGroupSize is the number of paragraphs per chunk.
	DefaultGroupSize = 3

	// DefaultOverlap is the number of paragraphs shared between
	// consecutive chunks.
	DefaultOverlap = 1

	// DefaultMaxChunks caps chunks per document so downstream
	// completion calls stay bounded. Excess paragraphs are dropped from
	// chunking but remain in the document's full text.
	DefaultMaxChunks = 50

	// DefaultMinChars rejects chunks whose trimmed text is shorter.
	DefaultMinChars = 50

	// DefaultMaxChars truncates chunk content before metadata extraction.
	DefaultMaxChars = 2000
)

// paragraphSep matches the blank-line runs that delimit paragraphs.
var paragraphSep = regexp.MustCompile(`\r?\n[ \t]*\r?\n[\s]*`)

// Chunker splits document text into paragraph-grouped chunks.
type Chunker struct {
	groupSize int
	overlap   int
	maxChunks int
	minChars  int
	maxChars  int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithGroupSize sets the number of paragraphs per chunk.
func WithGroupSize(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.groupSize = n
		}
	}
}

// WithOverlap sets the paragraph overlap between consecutive chunks.
func WithOverlap(n int) Option {
	return func(c *Chunker) {
		if n >= 0 {
			c.overlap = n
		}
	}
}

// WithMaxChunks sets the per-document chunk cap.
func WithMaxChunks(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.maxChunks = n
		}
	}
}

// WithBounds sets the minimum retained and maximum truncated chunk sizes.
func WithBounds(minChars, maxChars int) Option {
	return func(c *Chunker) {
		if minChars >= 0 {
			c.minChars = minChars
		}
		if maxChars > 0 {
			c.maxChars = maxChars
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		groupSize: DefaultGroupSize,
		overlap:   DefaultOverlap,
		maxChunks: DefaultMaxChunks,
		minChars:  DefaultMinChars,
		maxChars:  DefaultMaxChars,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must leave the window moving forward.
	if c.overlap >= c.groupSize {
		c.overlap = c.groupSize - 1
	}

	return c
}

// paragraph is a trimmed paragraph with its offsets into the source text.
type paragraph struct {
	text  string
	start int
	end   int
}

// Chunk splits text into chunks owned by documentID. The returned chunk
// spans are non-overlapping within a pass except for the declared
// paragraph overlap, and no chunk has start >= end.
func (c *Chunker) Chunk(documentID, text string) []domain.Chunk {
	paras := splitParagraphs(text)
	if len(paras) == 0 {
		return nil
	}

	step := c.groupSize - c.overlap
	chunks := make([]domain.Chunk, 0, len(paras)/step+1)
	position := 0

	for i := 0; i < len(paras); i += step {
		if len(chunks) >= c.maxChunks {
			break
		}

		end := i + c.groupSize
		if end > len(paras) {
			end = len(paras)
		}

		first, last := paras[i], paras[end-1]
		content := text[first.start:last.end]
		if len(strings.TrimSpace(content)) < c.minChars {
			if end == len(paras) {
				break
			}
			continue
		}

		// Content is truncated at the cap; the span keeps the true end
		// so chunk ranges still cover the paragraph sequence.
		if len(content) > c.maxChars {
			cut := c.maxChars
			for cut > 0 && !utf8.RuneStart(content[cut]) {
				cut--
			}
			content = content[:cut]
		}

		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: documentID,
			Content:    content,
			StartIndex: first.start,
			EndIndex:   last.end,
			Position:   position,
			Type:       classify(content),
		})
		position++

		if end == len(paras) {
			break
		}
	}

	return chunks
}

// splitParagraphs returns trimmed paragraphs with offsets into text.
func splitParagraphs(text string) []paragraph {
	var paras []paragraph
	start := 0

	seps := paragraphSep.FindAllStringIndex(text, -1)
	bounds := make([]int, 0, len(seps)*2+2)
	for _, sep := range seps {
		bounds = append(bounds, sep[0], sep[1])
	}
	bounds = append(bounds, len(text), len(text))

	for i := 0; i < len(bounds); i += 2 {
		if p, ok := trimParagraph(text, start, bounds[i]); ok {
			paras = append(paras, p)
		}
		start = bounds[i+1]
	}

	return paras
}

// trimParagraph trims whitespace while keeping offsets accurate.
func trimParagraph(text string, start, end int) (paragraph, bool) {
	raw := text[start:end]
	trimmed := strings.TrimLeft(raw, " \t\r\n")
	start += len(raw) - len(trimmed)
	trimmed = strings.TrimRight(trimmed, " \t\r\n")
	end = start + len(trimmed)

	if start >= end {
		return paragraph{}, false
	}
	return paragraph{text: trimmed, start: start, end: end}, true
}

// List and heading markers checked in classification order.
var (
	headingMarker = regexp.MustCompile(`^#{1,6}\s|^={3,}\s*$`)
	listMarker    = regexp.MustCompile(`^(?:[-*+\x{2022}]\s|\d+[.)]\s)`)
	codeMarker    = regexp.MustCompile("^(?:```|~~~|    \\S|\t)")
	quoteMarker   = regexp.MustCompile(`^>\s?`)
)

// classify assigns the chunk type from the first line's leading marker.
// Rules are ordered: heading, list, code, quote, then paragraph.
func classify(content string) domain.ChunkType {
	line := content
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}

	switch {
	case headingMarker.MatchString(line):
		return domain.ChunkHeading
	case listMarker.MatchString(line):
		return domain.ChunkList
	case codeMarker.MatchString(content):
		return domain.ChunkCode
	case quoteMarker.MatchString(line):
		return domain.ChunkQuote
	default:
		return domain.ChunkParagraph
	}
}
