package understanding

import (
	"fmt"
	"strings"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
)

// Preview caps per pass. The full document is never sent: each pass
// receives a bounded excerpt.
const (
	structurePreviewChars = 1500
	themePreviewChars     = 3000
	conceptPreviewChars   = 4000
	excerptChars          = 600
)

func structurePrompt(name, text string) string {
	return fmt.Sprintf(`Classify the following study document.
Respond with only a JSON object with keys "documentType", "purpose", "readingLevel" and "domain".

File name: %s

Document excerpt:
%s`, name, truncate(text, structurePreviewChars))
}

func themePrompt(text string, focus []string) string {
	var focusLine string
	if len(focus) > 0 {
		focusLine = "Pay particular attention to: " + strings.Join(focus, ", ") + ".\n"
	}
	return fmt.Sprintf(`Identify the theme of the following document excerpt and summarise it.
%sRespond with only a JSON object with keys "theme" (one sentence) and "summary" (3 to 5 sentences).

Excerpt:
%s`, focusLine, truncate(text, themePreviewChars))
}

func conceptPrompt(names []string, text string) string {
	return fmt.Sprintf(`Explain the following concepts as they are used in the document excerpt below.
Respond with only a JSON array; one object per concept with keys
"name", "definition", "importance" ("primary", "secondary" or "supporting"),
"relatedConcepts" (array of strings) and "examples" (array of strings).

Concepts: %s

Excerpt:
%s`, strings.Join(names, ", "), truncate(text, conceptPreviewChars))
}

func insightPrompt(concepts []string, relationships []domain.Relationship, excerpts []string) string {
	var rels []string
	for i, r := range relationships {
		if i >= 5 {
			break
		}
		rels = append(rels, fmt.Sprintf("%s %s %s", r.Subject, r.Predicate, r.Object))
	}

	return fmt.Sprintf(`Derive the most useful insights for a student from this material.
Write one insight per line, no more than 7 lines, plain text.

Key concepts: %s
Known relationships: %s

Excerpts:
%s`, strings.Join(concepts, ", "), strings.Join(rels, "; "), strings.Join(excerpts, "\n---\n"))
}

func conclusionPrompt(insights []string, relationships []domain.Relationship) string {
	var rels []string
	for i, r := range relationships {
		if i >= 5 {
			break
		}
		rels = append(rels, fmt.Sprintf("%s %s %s", r.Subject, r.Predicate, r.Object))
	}

	return fmt.Sprintf(`Synthesise the following insights and relationships into 3 to 5 concluding statements.
Write one conclusion per line, plain text.

Insights:
%s

Relationships: %s`, strings.Join(insights, "\n"), strings.Join(rels, "; "))
}
