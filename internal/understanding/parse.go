package understanding

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
)

// result tags a pass output with how it was produced, so consumers
// branch explicitly on parsed-vs-fallback instead of hoping a JSON
// decode succeeded.
type result[T any] struct {
	value  T
	method domain.GenerationMethod
}

func parsed[T any](v T, model string) result[T] {
	return result[T]{value: v, method: domain.GenerationMethod(model)}
}

func fallback[T any](v T) result[T] {
	return result[T]{value: v, method: domain.MethodHeuristic}
}

// decodeJSON extracts the first JSON object or array embedded in a
// completion response and unmarshals it. Responses are "structured-ish":
// they may wrap JSON in prose or markdown fences.
func decodeJSON(response string, v any) error {
	text := strings.TrimSpace(response)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return fmt.Errorf("%w: no JSON payload", domain.ErrMalformedResponse)
	}

	var end int
	if text[start] == '{' {
		end = strings.LastIndexByte(text, '}')
	} else {
		end = strings.LastIndexByte(text, ']')
	}
	if end <= start {
		return fmt.Errorf("%w: unterminated JSON payload", domain.ErrMalformedResponse)
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return nil
}

var lineNumbering = regexp.MustCompile(`^\s*(?:\d+[.)]\s*|[-*\x{2022}]\s*)`)

// splitLines parses a free-text list response: one entry per line,
// numbering and bullets stripped, empties dropped, capped at limit.
func splitLines(response string, limit int) []string {
	var out []string
	for _, line := range strings.Split(response, "\n") {
		line = lineNumbering.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" || len(out) >= limit {
			continue
		}
		out = append(out, line)
	}
	return out
}

// truncate caps text at n bytes, cutting at the last space when one is
// reasonably close so prompts do not end mid-word. The cut never splits
// a multibyte rune.
func truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	cut := text[:n]
	if idx := strings.LastIndexByte(cut, ' '); idx > n/2 {
		cut = cut[:idx]
	}
	return cut
}
