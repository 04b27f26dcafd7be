package driven

import "context"

// CompletionService provides text generation for the understanding
// pipeline and document chat. This is an optional service - when nil or
// unreachable, every consumer degrades to its deterministic heuristic
// fallback and the pipeline as a whole never fails because of it.
//
// Implementations may include:
//   - Ollama (local models)
//   - OpenAI (chat completions)
//   - Anthropic (messages API)
type CompletionService interface {
	// Complete produces text from a prompt. The response is
	// "structured-ish" text the caller will attempt to parse as JSON,
	// falling back to heuristic parsing.
	Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error)

	// CompleteStream produces text incrementally, invoking onChunk for
	// each fragment, and returns the full response.
	CompleteStream(ctx context.Context, prompt string, opts CompleteOptions, onChunk func(string)) (string, error)

	// Chat conducts a multi-turn conversation.
	Chat(ctx context.Context, messages []ChatMessage, opts CompleteOptions) (string, error)

	// ModelName returns the name of the model being used. It doubles as
	// the provenance label on model-derived content.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	// Used at startup to decide between model-assisted and
	// heuristics-only analysis.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// CompleteOptions configures a completion request.
type CompleteOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// StopWords are sequences that terminate generation early.
	StopWords []string
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}
