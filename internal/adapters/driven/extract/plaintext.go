package extract

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
)

// Ensure Plaintext implements the interface.
var _ driven.TextExtractor = (*Plaintext)(nil)

// Plaintext handles plain text files. It is the fallback extractor for
// any text-like extension.
type Plaintext struct{}

// NewPlaintext creates a plain text extractor.
func NewPlaintext() *Plaintext {
	return &Plaintext{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (p *Plaintext) SupportedExtensions() []string {
	return []string{
		".txt", ".text", ".log",
		".csv", ".tsv",
		".json", ".yaml", ".yml", ".toml", ".xml",
		".go", ".py", ".rs", ".java", ".c", ".h", ".cpp", ".rb",
		".sh", ".sql", ".js", ".ts", ".css", ".html",
	}
}

// Priority returns the selection priority.
func (p *Plaintext) Priority() int {
	return 5 // Fallback extractor
}

// Extract validates the bytes as text and returns them verbatim.
func (p *Plaintext) Extract(_ context.Context, name string, content []byte) (*driven.ExtractResult, error) {
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8 text", domain.ErrExtractionFailed, name)
	}

	text := string(content)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoTextContent, name)
	}

	return &driven.ExtractResult{
		Text:     text,
		Method:   "plaintext",
		Complete: true,
	}, nil
}
