package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
)

// stubExtractor implements driven.TextExtractor for registry tests.
type stubExtractor struct {
	exts     []string
	priority int
	method   string
}

func (s *stubExtractor) SupportedExtensions() []string { return s.exts }

func (s *stubExtractor) Priority() int { return s.priority }

func (s *stubExtractor) Extract(_ context.Context, _ string, _ []byte) (*driven.ExtractResult, error) {
	return &driven.ExtractResult{Text: "stub", Method: s.method, Complete: true}, nil
}

func TestRegistry_ForFile_SelectsByExtension(t *testing.T) {
	r := Default()

	e, err := r.ForFile("notes.md")
	require.NoError(t, err)
	assert.IsType(t, &Markdown{}, e)

	e, err = r.ForFile("NOTES.TXT")
	require.NoError(t, err)
	assert.IsType(t, &Plaintext{}, e)
}

func TestRegistry_ForFile_UnsupportedExtension(t *testing.T) {
	r := Default()

	_, err := r.ForFile("image.png")

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestRegistry_HigherPriorityWins(t *testing.T) {
	r := Default()
	better := &stubExtractor{exts: []string{".txt"}, priority: 100, method: "better"}
	r.Register(better)

	e, err := r.ForFile("notes.txt")

	require.NoError(t, err)
	assert.Same(t, driven.TextExtractor(better), e)
}

func TestRegistry_Empty(t *testing.T) {
	r := NewRegistry()

	_, err := r.ForFile("notes.txt")

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
