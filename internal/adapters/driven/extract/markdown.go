package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
)

// Ensure Markdown implements the interface.
var _ driven.TextExtractor = (*Markdown)(nil)

// Markdown handles Markdown files, simplifying formatting to plain
// text while keeping paragraph boundaries intact for chunking.
type Markdown struct{}

// NewMarkdown creates a Markdown extractor.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (m *Markdown) SupportedExtensions() []string {
	return []string{".md", ".markdown", ".mdown"}
}

// Priority returns the selection priority.
func (m *Markdown) Priority() int {
	return 50 // Format-specific, higher than plaintext
}

// Extract strips markdown syntax and returns the remaining text.
// Fenced code blocks are dropped, so the result is marked incomplete
// when any were present.
func (m *Markdown) Extract(_ context.Context, name string, content []byte) (*driven.ExtractResult, error) {
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8 text", domain.ErrExtractionFailed, name)
	}

	raw := string(content)
	hadCode := codeBlock.MatchString(raw)
	text := stripMarkdown(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoTextContent, name)
	}

	return &driven.ExtractResult{
		Text:     text,
		Method:   "markdown",
		Complete: !hadCode,
	}, nil
}

var (
	codeBlock    = regexp.MustCompile("(?s)```[^`]*```")
	inlineCode   = regexp.MustCompile("`[^`]+`")
	images       = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings     = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquote   = regexp.MustCompile(`(?m)^>\s*`)
	horizRule    = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkers  = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberedList = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown removes common markdown formatting. This is a
// simplified implementation that handles common cases.
func stripMarkdown(content string) string {
	content = codeBlock.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = headings.ReplaceAllString(content, "")

	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = strings.ReplaceAll(content, "*", "")

	content = blockquote.ReplaceAllString(content, "")
	content = horizRule.ReplaceAllString(content, "")
	content = listMarkers.ReplaceAllString(content, "")
	content = numberedList.ReplaceAllString(content, "")
	content = multiNewline.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
