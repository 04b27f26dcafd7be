package heuristics

import "strings"

// stopwords are excluded from keyword extraction and topic candidates.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		a an and are as at be been but by can could did do does for from
		had has have he her his how i if in into is it its may might of on
		or our she should so such than that the their them then there
		these they this those to was we were what when where which while
		who why will with would you your not no nor only own same too very
		just also about after again against all am any because before
		being below between both down during each few further here more
		most other out over some through under until up both`) {
		stopwords[w] = struct{}{}
	}
}

// IsStopword reports whether the lowercase word carries no topical signal.
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

// Keywords extracts the meaningful words of a query or question:
// lowercased, stripped of non-word characters, stopwords and short
// tokens removed, order preserved, deduplicated.
func Keywords(text string) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, tok := range Tokenize(text) {
		if len(tok) <= 2 || IsStopword(tok) {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}

	return out
}

// Tokenize lowercases text and splits it into word tokens, stripping
// all non-word characters.
func Tokenize(text string) []string {
	var tokens []string
	var b strings.Builder

	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	return tokens
}
