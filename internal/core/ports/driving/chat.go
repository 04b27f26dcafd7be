package driving

import (
	"context"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
)

// ChatService drives a bounded conversational exchange over one document.
type ChatService interface {
	// LoadDocument selects the document to converse about and resets
	// the conversation history.
	LoadDocument(ctx context.Context, documentID string) error

	// Ask answers a question using the smallest sufficient excerpt of
	// the loaded document as context. Works heuristically when no
	// completion service is available.
	Ask(ctx context.Context, question string) (string, error)

	// AskStream answers like Ask but delivers the answer incrementally
	// through onChunk when the backend supports streaming. Heuristic
	// answers arrive as a single chunk.
	AskStream(ctx context.Context, question string, onChunk func(string)) (string, error)

	// Summary generates a summary of the loaded document.
	Summary(ctx context.Context) (string, error)

	// History returns the full visible transcript, oldest first.
	History(ctx context.Context) ([]domain.ChatTurn, error)
}
