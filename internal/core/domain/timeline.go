package domain

import (
	"regexp"
	"strconv"
)

// TimelineEvent is a dated event extracted from a document. The global
// timeline is the union of all documents' events, sorted ascending by
// parsed year.
type TimelineEvent struct {
	// Date is the raw date text as it appeared in the document.
	Date string

	// Event describes what happened, taken from the surrounding context.
	Event string

	// Significance is optional context on why the event matters.
	Significance string

	// DocumentID is the document the event was extracted from.
	DocumentID string
}

var yearPattern = regexp.MustCompile(`\b(1[0-9]{3}|20[0-9]{2}|21[0-9]{2})\b`)

// Year parses the first plausible four-digit year from the event date.
// Returns 0 when no year is present; undated events sort first.
func (e TimelineEvent) Year() int {
	m := yearPattern.FindString(e.Date)
	if m == "" {
		return 0
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return y
}
