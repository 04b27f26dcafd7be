// Package understanding orchestrates the multi-pass analysis of a
// document: structure, theme/summary, concepts, relationships, timeline,
// insights, questions and conclusions. Every pass that calls the
// completion service tolerates both outright call failure and unparsable
// output by degrading to a documented heuristic - the pipeline never
// fails because the collaborator is unavailable.
package understanding

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
	"github.com/scholia-labs/scholia-cli/internal/heuristics"
	"github.com/scholia-labs/scholia-cli/internal/logger"
)

// Pipeline limits.
const (
	conceptBatchSize = 5
	maxInsights      = 7
	maxQuestions     = 5
	maxConclusions   = 5

	// DefaultCallTimeout bounds each completion call. Timeouts are
	// treated identically to outright failure.
	DefaultCallTimeout = 60 * time.Second
)

// conceptCaps maps analysis depth to the total concept budget.
var conceptCaps = map[domain.Depth]int{
	domain.DepthShallow: 10,
	domain.DepthNormal:  15,
	domain.DepthDeep:    20,
}

// Pipeline runs the analysis passes. The completion service is optional;
// a nil service yields a fully heuristic result.
type Pipeline struct {
	completion  driven.CompletionService
	callTimeout time.Duration
}

// Option configures the pipeline.
type Option func(*Pipeline)

// WithCallTimeout sets the per-completion-call timeout.
func WithCallTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.callTimeout = d
		}
	}
}

// New creates an understanding pipeline. completion may be nil.
func New(completion driven.CompletionService, opts ...Option) *Pipeline {
	p := &Pipeline{
		completion:  completion,
		callTimeout: DefaultCallTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Understand runs the fixed pass sequence over an extracted document.
// chunks must belong to the document and carry heuristic metadata.
func (p *Pipeline) Understand(
	ctx context.Context,
	text, fileName string,
	chunks []domain.Chunk,
	opts domain.UnderstandOptions,
) (*domain.Understanding, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrNoTextContent
	}
	if opts.Depth == "" {
		opts.Depth = domain.DepthNormal
	}

	u := &domain.Understanding{Methods: make(map[string]domain.GenerationMethod)}

	structure := p.structurePass(ctx, fileName, text)
	u.Structure = structure.value
	u.Methods["structure"] = structure.method

	theme := p.themePass(ctx, text, chunks, opts.FocusAreas)
	u.Theme = theme.value.theme
	u.Summary = theme.value.summary
	u.Methods["theme"] = theme.method

	concepts := p.conceptPass(ctx, text, chunks, opts.Depth)
	u.Concepts = concepts.value
	u.Methods["concepts"] = concepts.method

	u.Relationships = relationshipPass(chunks)
	u.Timeline = timelinePass(chunks)

	insights := p.insightPass(ctx, u.Concepts, u.Relationships, chunks)
	u.Insights = insights.value
	u.Methods["insights"] = insights.method

	u.Questions = questionPass(u.Concepts, u.Insights)

	conclusions := p.conclusionPass(ctx, u.Insights, u.Relationships, u.Concepts)
	u.Conclusions = conclusions.value
	u.Methods["conclusions"] = conclusions.method

	return u, nil
}

// complete sends one bounded prompt to the completion service.
func (p *Pipeline) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if p.completion == nil {
		return "", domain.ErrCompletionUnavailable
	}

	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	return p.completion.Complete(callCtx, prompt, driven.CompleteOptions{
		MaxTokens:   maxTokens,
		Temperature: 0.2,
	})
}

// --- Pass 1: structure ---

type structureResponse struct {
	DocumentType string `json:"documentType"`
	Purpose      string `json:"purpose"`
	ReadingLevel string `json:"readingLevel"`
	Domain       string `json:"domain"`
}

func (p *Pipeline) structurePass(ctx context.Context, fileName, text string) result[domain.Structure] {
	resp, err := p.complete(ctx, structurePrompt(fileName, text), 256)
	if err != nil {
		logger.Debug("structure pass degraded: %v", err)
		return fallback(domain.DefaultStructure())
	}

	var sr structureResponse
	if err := decodeJSON(resp, &sr); err != nil {
		logger.Debug("structure pass unparsable: %v", err)
		return fallback(domain.DefaultStructure())
	}

	s := domain.Structure{
		DocumentType: defaultStr(sr.DocumentType, "unknown"),
		Purpose:      defaultStr(sr.Purpose, "general"),
		ReadingLevel: defaultStr(sr.ReadingLevel, "intermediate"),
		Domain:       defaultStr(sr.Domain, "general"),
	}
	return parsed(s, p.completion.ModelName())
}

// --- Pass 2: theme and summary ---

type themeSummary struct {
	theme   string
	summary string
}

type themeResponse struct {
	Theme   string `json:"theme"`
	Summary string `json:"summary"`
}

// fallbackSummaryNote is appended when even the heuristic summary is empty.
const fallbackSummaryNote = "This document requires further processing for a complete summary."

func (p *Pipeline) themePass(ctx context.Context, text string, chunks []domain.Chunk, focus []string) result[themeSummary] {
	preview := firstChunksText(chunks, 3)
	if preview == "" {
		preview = text
	}

	resp, err := p.complete(ctx, themePrompt(preview, focus), 512)
	if err == nil {
		var tr themeResponse
		if perr := decodeJSON(resp, &tr); perr == nil && tr.Summary != "" {
			return parsed(themeSummary{
				theme:   defaultStr(tr.Theme, heuristicTheme(text)),
				summary: tr.Summary,
			}, p.completion.ModelName())
		}
		logger.Debug("theme pass unparsable, using heuristic summary")
	} else {
		logger.Debug("theme pass degraded: %v", err)
	}

	summary := heuristics.Summarize(text, 4)
	if summary == "" {
		summary = fallbackSummaryNote
	}
	return fallback(themeSummary{theme: heuristicTheme(text), summary: summary})
}

// heuristicTheme picks the highest-signal sentence as the theme.
func heuristicTheme(text string) string {
	top := heuristics.TopSentences(text, 1)
	if len(top) == 0 {
		return "General study material"
	}
	return top[0]
}

// --- Pass 3: concepts ---

type conceptResponse struct {
	Name            string   `json:"name"`
	Definition      string   `json:"definition"`
	Importance      string   `json:"importance"`
	RelatedConcepts []string `json:"relatedConcepts"`
	Examples        []string `json:"examples"`
}

func (p *Pipeline) conceptPass(ctx context.Context, text string, chunks []domain.Chunk, depth domain.Depth) result[domain.ConceptMap] {
	budget, ok := conceptCaps[depth]
	if !ok {
		budget = conceptCaps[domain.DepthNormal]
	}

	candidates := conceptCandidates(chunks, budget)
	if len(candidates) == 0 {
		return fallback(domain.ConceptMap{})
	}

	var m domain.ConceptMap
	method := domain.MethodHeuristic
	anyParsed := false

	for start := 0; start < len(candidates); start += conceptBatchSize {
		end := start + conceptBatchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		batch := candidates[start:end]

		batchResult := p.conceptBatch(ctx, batch, text)
		for _, c := range batchResult.value {
			m.Add(c)
		}
		if batchResult.method != domain.MethodHeuristic {
			anyParsed = true
			method = batchResult.method
		}
	}

	if !anyParsed {
		method = domain.MethodHeuristic
	}
	return result[domain.ConceptMap]{value: m, method: method}
}

// conceptBatch asks for one batch of concept records, synthesizing
// minimal records from the candidate names when the response fails.
func (p *Pipeline) conceptBatch(ctx context.Context, names []string, text string) result[[]domain.Concept] {
	resp, err := p.complete(ctx, conceptPrompt(names, text), 1024)
	if err == nil {
		var crs []conceptResponse
		if perr := decodeJSON(resp, &crs); perr == nil && len(crs) > 0 {
			out := make([]domain.Concept, 0, len(crs))
			for _, cr := range crs {
				if cr.Name == "" {
					continue
				}
				out = append(out, domain.Concept{
					Name:            cr.Name,
					Definition:      defaultStr(cr.Definition, cr.Name+" as mentioned in the document"),
					Importance:      domain.Importance(cr.Importance),
					RelatedConcepts: cr.RelatedConcepts,
					Examples:        cr.Examples,
				})
			}
			if len(out) > 0 {
				return parsed(out, p.completion.ModelName())
			}
		}
		logger.Debug("concept batch unparsable, synthesizing %d records", len(names))
	} else {
		logger.Debug("concept batch degraded: %v", err)
	}

	out := make([]domain.Concept, 0, len(names))
	for _, name := range names {
		out = append(out, domain.Concept{
			Name:       name,
			Definition: name + " as mentioned in the document",
			Importance: domain.ImportanceSupporting,
		})
	}
	return fallback(out)
}

// conceptCandidates gathers candidate names from chunk metadata,
// deduplicated in first-seen order, capped at limit.
func conceptCandidates(chunks []domain.Chunk, limit int) []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(name string) {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || len(out) >= limit {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(name))
	}

	for _, c := range chunks {
		for _, name := range c.Metadata.Concepts {
			add(name)
		}
	}
	for _, c := range chunks {
		for _, name := range c.Metadata.Topics {
			add(name)
		}
	}

	return out
}

// --- Pass 4: relationships (purely heuristic, no external call) ---

func relationshipPass(chunks []domain.Chunk) []domain.Relationship {
	var out []domain.Relationship
	for _, c := range chunks {
		out = append(out, heuristics.Relationships(c.Content)...)
	}
	return out
}

// --- Pass 5: timeline (purely heuristic) ---

// timelinePass extracts dated events from chunk text with surrounding
// context, ascending by parsed year. Documents with no dated chunks
// return an empty timeline; that is not an error.
func timelinePass(chunks []domain.Chunk) []domain.TimelineEvent {
	seen := make(map[string]struct{})
	var events []domain.TimelineEvent

	for _, c := range chunks {
		for _, ref := range heuristics.Dates(c.Content) {
			if _, ok := seen[ref.Date]; ok {
				continue
			}
			seen[ref.Date] = struct{}{}
			events = append(events, domain.TimelineEvent{
				Date:       ref.Date,
				Event:      ref.Context,
				DocumentID: c.DocumentID,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Year() < events[j].Year() })
	return events
}

// --- Pass 6: insights ---

func (p *Pipeline) insightPass(ctx context.Context, concepts domain.ConceptMap, rels []domain.Relationship, chunks []domain.Chunk) result[[]string] {
	names := conceptNames(concepts, 10)
	excerpts := chunkExcerpts(chunks, 3)

	resp, err := p.complete(ctx, insightPrompt(names, rels, excerpts), 768)
	if err == nil {
		if lines := splitLines(resp, maxInsights); len(lines) > 0 {
			return parsed(lines, p.completion.ModelName())
		}
		logger.Debug("insight pass returned no usable lines")
	} else {
		logger.Debug("insight pass degraded: %v", err)
	}

	return fallback(heuristicInsights(names, rels))
}

// heuristicInsights states the strongest extracted relationships and
// concepts as plain observations.
func heuristicInsights(concepts []string, rels []domain.Relationship) []string {
	var out []string
	for _, r := range rels {
		if len(out) >= maxInsights {
			break
		}
		out = append(out, fmt.Sprintf("The material states that %s %s %s.", r.Subject, r.Predicate, r.Object))
	}
	for _, name := range concepts {
		if len(out) >= maxInsights {
			break
		}
		out = append(out, fmt.Sprintf("%s is a recurring concept in this material.", name))
	}
	return out
}

// --- Pass 7: questions (templated, never calls the collaborator) ---

func questionPass(concepts domain.ConceptMap, insights []string) []string {
	var out []string
	for _, c := range concepts.Primary {
		if len(out) >= maxQuestions {
			break
		}
		out = append(out, fmt.Sprintf("What is %s and why does it matter here?", c.Name))
		if len(out) < maxQuestions {
			out = append(out, fmt.Sprintf("How does %s relate to the other key concepts?", c.Name))
		}
	}
	for i, insight := range insights {
		if i >= 3 || len(out) >= maxQuestions {
			break
		}
		out = append(out, fmt.Sprintf("What evidence supports the point that %s", lowerFirst(strings.TrimSuffix(insight, "."))+"?"))
	}
	return out
}

// --- Pass 8: conclusions ---

func (p *Pipeline) conclusionPass(ctx context.Context, insights []string, rels []domain.Relationship, concepts domain.ConceptMap) result[[]string] {
	resp, err := p.complete(ctx, conclusionPrompt(insights, rels), 512)
	if err == nil {
		if lines := splitLines(resp, maxConclusions); len(lines) > 0 {
			return parsed(lines, p.completion.ModelName())
		}
		logger.Debug("conclusion pass returned no usable lines")
	} else {
		logger.Debug("conclusion pass degraded: %v", err)
	}

	var out []string
	for _, name := range conceptNames(concepts, 3) {
		out = append(out, fmt.Sprintf("Understanding %s is central to this material.", name))
	}
	if len(insights) > 0 && len(out) < maxConclusions {
		out = append(out, insights[0])
	}
	return fallback(out)
}

// --- helpers ---

func conceptNames(m domain.ConceptMap, limit int) []string {
	var out []string
	for _, c := range m.All() {
		if len(out) >= limit {
			break
		}
		out = append(out, c.Name)
	}
	return out
}

func chunkExcerpts(chunks []domain.Chunk, n int) []string {
	var out []string
	for i, c := range chunks {
		if i >= n {
			break
		}
		out = append(out, truncate(c.Content, excerptChars))
	}
	return out
}

func firstChunksText(chunks []domain.Chunk, n int) string {
	var parts []string
	for i, c := range chunks {
		if i >= n {
			break
		}
		parts = append(parts, c.Content)
	}
	return strings.Join(parts, "\n\n")
}

func defaultStr(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
