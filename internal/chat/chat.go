// Package chat drives a bounded conversational exchange over a single
// document. Context for each question is the smallest sufficient excerpt
// of the document: keyword-scored sentences first, keyword windows when
// overlap is sparse. Works without a completion service by answering
// from the selected context directly.
package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driving"
	"github.com/scholia-labs/scholia-cli/internal/heuristics"
	"github.com/scholia-labs/scholia-cli/internal/knowledge"
	"github.com/scholia-labs/scholia-cli/internal/logger"
)

// Ensure Chat implements the interface.
var _ driving.ChatService = (*Chat)(nil)

// Context selection bounds.
const (
	// maxContextChars caps the assembled context before prompting.
	maxContextChars = 15000

	// sparseThreshold switches to keyword-window fallback when the
	// sentence-scored context comes up shorter.
	sparseThreshold = 500

	// topSentenceCount is how many scored sentences are kept.
	topSentenceCount = 20

	// keywordWindowRadius is the fallback window around each keyword.
	keywordWindowRadius = 200

	// promptHistoryTurns is how many past turns the prompt includes.
	promptHistoryTurns = 4

	// MaxHistory caps retained user/assistant pairs.
	MaxHistory = 10

	// defaultCallTimeout bounds each completion call.
	defaultCallTimeout = 60 * time.Second
)

// Chat is a per-document conversation. One document is loaded at a
// time; loading resets history.
type Chat struct {
	mu          sync.Mutex
	graph       *knowledge.Graph
	completion  driven.CompletionService
	callTimeout time.Duration

	doc     *domain.Document
	history []domain.ChatTurn
}

// New creates a chat service over the graph. completion may be nil.
func New(graph *knowledge.Graph, completion driven.CompletionService) *Chat {
	return &Chat{
		graph:       graph,
		completion:  completion,
		callTimeout: defaultCallTimeout,
	}
}

// LoadDocument selects the conversation document and resets history.
func (c *Chat) LoadDocument(_ context.Context, documentID string) error {
	doc, err := c.graph.Document(documentID)
	if err != nil {
		return err
	}
	if doc.Status != domain.StatusReady {
		return domain.ErrDocumentNotReady
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc = doc
	c.history = nil
	return nil
}

// Ask answers a question about the loaded document.
func (c *Chat) Ask(ctx context.Context, question string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc == nil {
		return "", fmt.Errorf("%w: no document loaded", domain.ErrInvalidInput)
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", domain.ErrInvalidInput
	}

	keywords := heuristics.Keywords(question)
	excerpt := selectContext(c.doc.Content, keywords)

	answer, method := c.answer(ctx, question, excerpt)

	c.history = append(c.history, domain.ChatTurn{
		Question: question,
		Answer:   answer,
		Method:   method,
		AskedAt:  time.Now(),
	})
	if len(c.history) > MaxHistory {
		c.history = c.history[len(c.history)-MaxHistory:]
	}

	return answer, nil
}

// AskStream answers like Ask but streams fragments through onChunk.
// The heuristic fallback arrives as a single chunk.
func (c *Chat) AskStream(ctx context.Context, question string, onChunk func(string)) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc == nil {
		return "", fmt.Errorf("%w: no document loaded", domain.ErrInvalidInput)
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", domain.ErrInvalidInput
	}

	keywords := heuristics.Keywords(question)
	excerpt := selectContext(c.doc.Content, keywords)

	answer, method := c.answerStream(ctx, question, excerpt, onChunk)

	c.history = append(c.history, domain.ChatTurn{
		Question: question,
		Answer:   answer,
		Method:   method,
		AskedAt:  time.Now(),
	})
	if len(c.history) > MaxHistory {
		c.history = c.history[len(c.history)-MaxHistory:]
	}

	return answer, nil
}

// answerStream uses the streaming completion endpoint with a flattened
// prompt, falling back like answer does.
func (c *Chat) answerStream(ctx context.Context, question, excerpt string, onChunk func(string)) (string, domain.GenerationMethod) {
	if c.completion != nil {
		callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
		defer cancel()

		resp, err := c.completion.CompleteStream(callCtx, c.flattenPrompt(question, excerpt), driven.CompleteOptions{
			MaxTokens:   768,
			Temperature: 0.3,
		}, onChunk)
		if err == nil && strings.TrimSpace(resp) != "" {
			return strings.TrimSpace(resp), domain.GenerationMethod(c.completion.ModelName())
		}
		logger.Debug("chat degraded to heuristic answer: %v", err)
	}

	answer := heuristicAnswer(c.doc.Name, excerpt)
	if onChunk != nil {
		onChunk(answer)
	}
	return answer, domain.MethodHeuristic
}

// flattenPrompt folds the system context and recent turns into a single
// prompt for backends that stream plain completions.
func (c *Chat) flattenPrompt(question, excerpt string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a study assistant. Answer using only these excerpts from %q:\n\n%s\n\n", c.doc.Name, excerpt)

	start := len(c.history) - promptHistoryTurns
	if start < 0 {
		start = 0
	}
	for _, turn := range c.history[start:] {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n\n", turn.Question, turn.Answer)
	}

	fmt.Fprintf(&b, "Q: %s\nA:", question)
	return b.String()
}

// answer tries the completion service and falls back to answering
// directly from the selected context.
func (c *Chat) answer(ctx context.Context, question, excerpt string) (string, domain.GenerationMethod) {
	if c.completion != nil {
		callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
		defer cancel()

		resp, err := c.completion.Chat(callCtx, c.buildMessages(question, excerpt), driven.CompleteOptions{
			MaxTokens:   768,
			Temperature: 0.3,
		})
		if err == nil && strings.TrimSpace(resp) != "" {
			return strings.TrimSpace(resp), domain.GenerationMethod(c.completion.ModelName())
		}
		logger.Debug("chat degraded to heuristic answer: %v", err)
	}

	return heuristicAnswer(c.doc.Name, excerpt), domain.MethodHeuristic
}

// buildMessages assembles the system context plus the last turns.
func (c *Chat) buildMessages(question, excerpt string) []driven.ChatMessage {
	messages := []driven.ChatMessage{{
		Role: "system",
		Content: fmt.Sprintf(
			"You are a study assistant. Answer using only these excerpts from %q:\n\n%s",
			c.doc.Name, excerpt),
	}}

	start := len(c.history) - promptHistoryTurns
	if start < 0 {
		start = 0
	}
	for _, turn := range c.history[start:] {
		messages = append(messages,
			driven.ChatMessage{Role: "user", Content: turn.Question},
			driven.ChatMessage{Role: "assistant", Content: turn.Answer},
		)
	}

	return append(messages, driven.ChatMessage{Role: "user", Content: question})
}

// heuristicAnswer reports the most relevant excerpts verbatim.
func heuristicAnswer(docName, excerpt string) string {
	sentences := heuristics.Sentences(excerpt)
	if len(sentences) > 3 {
		sentences = sentences[:3]
	}
	if len(sentences) == 0 {
		return fmt.Sprintf("No relevant passage found in %s for that question.", docName)
	}
	return fmt.Sprintf("From %s: %s", docName, strings.Join(sentences, " "))
}

// Summary generates a summary of the loaded document.
func (c *Chat) Summary(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc == nil {
		return "", fmt.Errorf("%w: no document loaded", domain.ErrInvalidInput)
	}

	if c.completion != nil {
		callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
		defer cancel()

		prompt := fmt.Sprintf("Summarise the following document in 3 to 5 sentences.\n\n%s",
			capText(c.doc.Content, 4000))
		resp, err := c.completion.Complete(callCtx, prompt, driven.CompleteOptions{MaxTokens: 512})
		if err == nil && strings.TrimSpace(resp) != "" {
			return strings.TrimSpace(resp), nil
		}
		logger.Debug("summary degraded to heuristic: %v", err)
	}

	summary := heuristics.Summarize(c.doc.Content, 5)
	if summary == "" {
		summary = c.doc.Summary
	}
	return summary, nil
}

// History returns the retained transcript, oldest first.
func (c *Chat) History(_ context.Context) ([]domain.ChatTurn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.ChatTurn(nil), c.history...), nil
}

// selectContext picks document text relevant to the keywords. Every
// sentence is scored by keyword-overlap count and the top scorers are
// kept in document order; when the result is sparse, the fallback takes
// windows around each keyword's first occurrence; with nothing to go on
// it returns the document head. The result is capped at the context
// budget.
func selectContext(content string, keywords []string) string {
	scored := scoreSentences(content, keywords)
	if len(scored) > topSentenceCount {
		scored = scored[:topSentenceCount]
	}

	sort.Slice(scored, func(i, j int) bool { return scored[i].idx < scored[j].idx })
	parts := make([]string, len(scored))
	for i, s := range scored {
		parts[i] = s.text
	}
	excerpt := strings.Join(parts, " ")

	if len(excerpt) < sparseThreshold {
		if windows := keywordWindows(content, keywords); windows != "" {
			excerpt = windows
		}
	}
	if strings.TrimSpace(excerpt) == "" {
		excerpt = content
	}

	return capText(excerpt, maxContextChars)
}

type scoredSentence struct {
	idx   int
	text  string
	score int
}

// scoreSentences returns sentences with a positive keyword overlap,
// highest score first.
func scoreSentences(content string, keywords []string) []scoredSentence {
	sentences := heuristics.Sentences(content)
	var out []scoredSentence

	for i, sent := range sentences {
		lower := strings.ToLower(sent)
		score := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > 0 {
			out = append(out, scoredSentence{idx: i, text: sent, score: score})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })
	return out
}

// keywordWindows extracts a window around the first occurrence of each
// keyword in the raw text.
func keywordWindows(content string, keywords []string) string {
	lower := strings.ToLower(content)
	var parts []string

	for _, kw := range keywords {
		idx := strings.Index(lower, kw)
		if idx < 0 {
			continue
		}
		lo := idx - keywordWindowRadius
		if lo < 0 {
			lo = 0
		}
		hi := idx + len(kw) + keywordWindowRadius
		if hi > len(content) {
			hi = len(content)
		}
		parts = append(parts, strings.TrimSpace(content[lo:hi]))
	}

	return strings.Join(parts, "\n...\n")
}

// capText trims text to at most n bytes without splitting a rune.
func capText(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}
