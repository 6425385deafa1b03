package slots

import "regexp"

// Slot names, in extraction order.
const (
	SlotName        = "name"
	SlotDestination = "destination"
	SlotCourse      = "course"
)

// Rule binds a slot name to an ordered list of candidate patterns. The first
// pattern that matches an utterance wins for that slot; the candidate value is
// the last capture group of the match.
type Rule struct {
	Slot     string
	Patterns []*regexp.Regexp
}

// DefaultRules returns the standard rule table. Rule order and pattern order
// are a behavioral contract: callers and tests depend on which pattern wins
// for ambiguous input, so the ordering must not be rearranged.
//
// The course capture is bounded at six words (the capture guard limit) so a
// course mention followed by more prose still yields the leading phrase
// instead of a rejected over-long capture. Name and destination keep
// unbounded captures; the guard rejects their over-long matches outright.
func DefaultRules() []Rule {
	return []Rule{
		{
			Slot: SlotName,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bmy name is\s+([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*)`),
				regexp.MustCompile(`(?i)\bi am\s+([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*)`),
			},
		},
		{
			Slot: SlotDestination,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(study|want to study|plan to study)\s+(?:in|at)\s+([A-Za-z\s]+)`),
				regexp.MustCompile(`(?i)\bdestination\s*:\s*([A-Za-z\s]+)`),
			},
		},
		{
			Slot: SlotCourse,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(interested in|want to study|course is)\s+([A-Za-z]+(?:\s+[A-Za-z]+){0,5})`),
				regexp.MustCompile(`(?i)\bmajor\s*:\s*([A-Za-z]+(?:\s+[A-Za-z]+){0,5})`),
			},
		},
	}
}
