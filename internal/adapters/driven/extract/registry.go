// Package extract implements the text extraction driven port:
// format-specific extractors plus the registry that picks one per file.
package extract

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry selects the highest-priority extractor per file extension.
type Registry struct {
	byExt map[string][]driven.TextExtractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string][]driven.TextExtractor)}
}

// Default returns a registry with the built-in extractors registered.
func Default() *Registry {
	r := NewRegistry()
	r.Register(NewPlaintext())
	r.Register(NewMarkdown())
	return r
}

// Register adds an extractor, keeping each extension's list sorted by
// descending priority.
func (r *Registry) Register(e driven.TextExtractor) {
	for _, ext := range e.SupportedExtensions() {
		ext = strings.ToLower(ext)
		r.byExt[ext] = append(r.byExt[ext], e)
		sort.SliceStable(r.byExt[ext], func(i, j int) bool {
			return r.byExt[ext][i].Priority() > r.byExt[ext][j].Priority()
		})
	}
}

// ForFile returns the best extractor for the file name.
func (r *Registry) ForFile(name string) (driven.TextExtractor, error) {
	ext := strings.ToLower(filepath.Ext(name))
	list := r.byExt[ext]
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, ext)
	}
	return list[0], nil
}
