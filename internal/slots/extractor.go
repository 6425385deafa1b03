// Package slots derives structured facts from free-form user text using an
// ordered table of regex rules. Extraction is rule-based and non-learning:
// precision over recall, with a word-count guard as the only anti-noise
// measure.
package slots

import (
	"strings"

	"github.com/eduguide/eduguide/internal/metrics"
)

// maxCaptureWords rejects over-broad captures; a candidate longer than this
// never overwrites an existing slot value.
const maxCaptureWords = 6

// trimCutset is stripped from both ends of a candidate before the guard runs.
const trimCutset = " .!?"

// Capture is one accepted slot value, emitted in rule order.
type Capture struct {
	Slot  string
	Value string
}

// Extractor scans utterances against an injected rule table. The table is
// treated as immutable after construction.
type Extractor struct {
	rules []Rule
}

// New returns an Extractor over the given rules.
func New(rules []Rule) *Extractor {
	return &Extractor{rules: rules}
}

// Extract scans text and returns accepted captures in rule order.
//
// Per slot: patterns are tried in declared order and the first match ends the
// scan for that slot, even when the guard then rejects the candidate. The
// candidate is the last capture group, trimmed of surrounding spaces and
// trailing sentence punctuation. Slots match independently, so one utterance
// may set zero, one, or several slots; an accepted value overwrites any
// previous value unconditionally.
func (e *Extractor) Extract(text string) []Capture {
	var out []Capture
	for _, rule := range e.rules {
		for _, re := range rule.Patterns {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			value := strings.Trim(m[len(m)-1], trimCutset)
			if metrics.Words(value) <= maxCaptureWords {
				out = append(out, Capture{Slot: rule.Slot, Value: value})
			}
			break
		}
	}
	return out
}
