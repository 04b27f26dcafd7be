package heuristics

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var sentencePattern = regexp.MustCompile(`(?m)(?U)([^.!?\n]+[.!?])`)

// Sentences splits text into sentence strings, trimmed.
func Sentences(text string) []string {
	raw := sentencePattern.FindAllString(text, -1)
	if len(raw) == 0 {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Summarize produces an extractive summary by ranking sentences on
// normalized token frequency, keeping the top maxSentences in their
// original order. Deterministic, used as the summary fallback when the
// completion service is unavailable.
func Summarize(text string, maxSentences int) string {
	ranked := TopSentences(text, maxSentences)
	return strings.Join(ranked, " ")
}

// TopSentences returns the highest-scoring sentences in original order.
func TopSentences(text string, n int) []string {
	if n <= 0 {
		n = 5
	}
	sentences := Sentences(text)
	if len(sentences) == 0 {
		return nil
	}

	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range Tokenize(sent) {
			if IsStopword(tok) || len(tok) <= 2 {
				continue
			}
			freq[tok]++
		}
	}

	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}

	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(sentences))
	for i, sent := range sentences {
		tokens := Tokenize(sent)
		score := 0.0
		for _, tok := range tokens {
			score += freq[tok]
		}
		// Length normalization avoids a long-sentence bias.
		if l := float64(len(tokens)); l > 0 {
			score /= math.Sqrt(l)
		}
		scores[i] = pair{i, score}
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if n > len(scores) {
		n = len(scores)
	}

	selected := scores[:n]
	sort.Slice(selected, func(i, j int) bool { return selected[i].idx < selected[j].idx })

	out := make([]string, len(selected))
	for i, p := range selected {
		out[i] = sentences[p.idx]
	}
	return out
}
