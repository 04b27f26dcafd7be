// Package heuristics provides deterministic, pattern-based extraction of
// entities, topics, relationships and dates from chunk text. It never
// calls the completion service: it seeds chunk metadata during ingestion
// and is the correctness fallback everywhere a completion response fails
// to parse. All functions are pure - same input, same extraction.
package heuristics

import (
	"regexp"
	"sort"
	"strings"

	"github.com/scholia-labs/scholia-cli/internal/core/domain"
)

// relationContextRadius bounds the context captured around a
// relationship match.
const relationContextRadius = 50

// dateContextRadius bounds the context captured around a date match.
const dateContextRadius = 100

var (
	capitalizedSeq = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+(?:of\s+|the\s+)?[A-Z][a-z]+)+\b`)
	yearRef        = regexp.MustCompile(`\b(?:1[0-9]{3}|2[01][0-9]{2})\b`)
	numericDate    = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	monthDate      = regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}(?:,?\s+\d{4})?\b`)

	topicIndicator = regexp.MustCompile(`(?i)\b(?:about|concerning|regarding)\s+((?:[a-z][a-z'-]*\s*){1,3})`)
	topicOfPhrase  = regexp.MustCompile(`(?i)\bthe\s+([a-z][a-z'-]+)\s+of\s+([a-z][a-z'-]+)`)

	conceptDef = regexp.MustCompile(`(?i)\b([A-Za-z][\w -]{2,40}?)\s+(?:is defined as|refers to|means|is known as)\b`)
)

// Suffix keyword tables for entity classification.
var (
	orgSuffixes = []string{
		"University", "Institute", "College", "School", "Academy",
		"Company", "Corporation", "Corp", "Inc", "Ltd", "Foundation",
		"Association", "Organization", "Agency", "Laboratory", "Labs",
		"Committee", "Department", "Ministry",
	}
	locationSuffixes = []string{
		"City", "Town", "Village", "County", "Province", "State",
		"River", "Mountain", "Valley", "Island", "Ocean", "Sea",
		"Street", "Avenue", "Road", "Park", "Republic", "Kingdom",
	}
)

// Extract runs all pattern categories over chunk text and returns the
// metadata used to seed the chunk.
func Extract(text string) domain.ChunkMetadata {
	meta := domain.ChunkMetadata{
		Topics: Topics(text),
	}

	for _, e := range Entities(text) {
		meta.Entities = append(meta.Entities, e.Name)
		if e.Type == domain.EntityConcept {
			meta.Concepts = append(meta.Concepts, e.Name)
		}
	}
	meta.Concepts = append(meta.Concepts, Concepts(text)...)
	meta.Concepts = dedupe(meta.Concepts)

	return meta
}

// EntityCandidate is a detected entity before graph merging.
type EntityCandidate struct {
	// Name is the matched text.
	Name string

	// Type is the classified entity type.
	Type domain.EntityType
}

// Entities detects candidate entities. Classification is ordered:
// organisational suffix, then place suffix, then date patterns, then
// two-word capitalized sequences as persons, otherwise concept.
func Entities(text string) []EntityCandidate {
	var out []EntityCandidate
	seen := make(map[string]struct{})

	add := func(name string, typ domain.EntityType) {
		key := domain.NormalizeEntityName(name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, EntityCandidate{Name: name, Type: typ})
	}

	for _, m := range capitalizedSeq.FindAllString(text, -1) {
		add(m, classifySequence(m))
	}
	for _, m := range numericDate.FindAllString(text, -1) {
		add(m, domain.EntityDate)
	}
	for _, m := range monthDate.FindAllString(text, -1) {
		add(m, domain.EntityDate)
	}
	for _, m := range yearRef.FindAllString(text, -1) {
		add(m, domain.EntityDate)
	}

	return out
}

// classifySequence types a capitalized multi-word sequence.
func classifySequence(seq string) domain.EntityType {
	for _, suffix := range orgSuffixes {
		if containsWord(seq, suffix) {
			return domain.EntityOrganization
		}
	}
	for _, suffix := range locationSuffixes {
		if containsWord(seq, suffix) {
			return domain.EntityLocation
		}
	}
	if len(strings.Fields(seq)) == 2 {
		return domain.EntityPerson
	}
	return domain.EntityConcept
}

func containsWord(seq, word string) bool {
	for _, f := range strings.Fields(seq) {
		if strings.EqualFold(strings.Trim(f, ".,;:"), word) {
			return true
		}
	}
	return false
}

// Topics detects topic labels: noun phrases following indicator words
// ("about", "concerning", "regarding") and "the X of Y" phrases.
func Topics(text string) []string {
	var topics []string

	for _, m := range topicIndicator.FindAllStringSubmatch(text, -1) {
		topic := normalizeTopic(m[1])
		if topic != "" {
			topics = append(topics, topic)
		}
	}
	for _, m := range topicOfPhrase.FindAllStringSubmatch(text, -1) {
		head := strings.ToLower(m[1])
		if IsStopword(head) || len(head) <= 2 {
			continue
		}
		topics = append(topics, head+" of "+strings.ToLower(m[2]))
	}

	return dedupe(topics)
}

// normalizeTopic trims an indicator-phrase capture down to its
// meaningful words.
func normalizeTopic(capture string) string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(capture)) {
		if IsStopword(w) || len(w) <= 2 {
			break
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}

// Concepts detects definitional concept names ("X is defined as ...").
func Concepts(text string) []string {
	var out []string
	for _, m := range conceptDef.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		if name != "" {
			out = append(out, name)
		}
	}
	return dedupe(out)
}

// Relationship sentence patterns, one per closed predicate.
var relationPatterns = []struct {
	pattern   *regexp.Regexp
	predicate domain.Predicate
}{
	{regexp.MustCompile(`(?i)\b([A-Za-z][\w -]{1,40}?)\s+is\s+an?\s+([A-Za-z][\w -]{1,40}?)[.,;\n]`), domain.PredicateIsA},
	{regexp.MustCompile(`(?i)\b([A-Za-z][\w -]{1,40}?)\s+causes?\s+([A-Za-z][\w -]{1,40}?)[.,;\n]`), domain.PredicateCauses},
	{regexp.MustCompile(`(?i)\b([A-Za-z][\w -]{1,40}?)\s+depends?\s+on\s+([A-Za-z][\w -]{1,40}?)[.,;\n]`), domain.PredicateDependsOn},
	{regexp.MustCompile(`(?i)\b([A-Za-z][\w -]{1,40}?)\s+includes?\s+([A-Za-z][\w -]{1,40}?)[.,;\n]`), domain.PredicateIncludes},
}

// Relationships scans text for the four closed sentence patterns and
// captures surrounding context for traceability.
func Relationships(text string) []domain.Relationship {
	// Trailing sentinel lets the sentence-final patterns match at EOF.
	scan := text + "\n"

	var out []domain.Relationship
	for _, rp := range relationPatterns {
		for _, loc := range rp.pattern.FindAllStringSubmatchIndex(scan, -1) {
			subject := strings.TrimSpace(scan[loc[2]:loc[3]])
			object := strings.TrimSpace(scan[loc[4]:loc[5]])
			if subject == "" || object == "" {
				continue
			}
			out = append(out, domain.Relationship{
				Subject:   subject,
				Predicate: rp.predicate,
				Object:    object,
				Context:   window(text, loc[0], loc[1], relationContextRadius),
			})
		}
	}

	return out
}

// DateReference is a detected date with its surrounding context.
type DateReference struct {
	// Date is the matched date text.
	Date string

	// Context is the text around the match, used as the event text.
	Context string
}

// Dates detects date references with their surrounding context,
// in order of appearance.
func Dates(text string) []DateReference {
	type match struct{ start, end int }
	var matches []match
	overlaps := func(s, e int) bool {
		for _, m := range matches {
			if s < m.end && e > m.start {
				return true
			}
		}
		return false
	}
	// Richer patterns first; bare years only count outside other matches.
	for _, re := range []*regexp.Regexp{monthDate, numericDate, yearRef} {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if !overlaps(loc[0], loc[1]) {
				matches = append(matches, match{loc[0], loc[1]})
			}
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	seen := make(map[string]struct{})
	var out []DateReference
	for _, m := range matches {
		date := text[m.start:m.end]
		if _, ok := seen[date]; ok {
			continue
		}
		seen[date] = struct{}{}
		out = append(out, DateReference{
			Date:    date,
			Context: window(text, m.start, m.end, dateContextRadius),
		})
	}

	return out
}

// window returns text around [start,end) clamped to the given radius,
// collapsed to single-line form.
func window(text string, start, end, radius int) string {
	lo := start - radius
	if lo < 0 {
		lo = 0
	}
	hi := end + radius
	if hi > len(text) {
		hi = len(text)
	}
	return strings.Join(strings.Fields(text[lo:hi]), " ")
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
