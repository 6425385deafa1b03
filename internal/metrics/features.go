// Package metrics computes local text features for utterances: the word
// counts backing the slot-capture guard and the size fields attached to
// telemetry events.
package metrics

import (
	"strings"
	"unicode/utf8"
)

// Features holds basic size measures for an input string.
type Features struct {
	Bytes int
	Runes int
	Words int
}

// CountFeatures computes byte, rune, and word counts for s.
func CountFeatures(s string) Features {
	return Features{
		Bytes: len(s),
		Runes: utf8.RuneCountInString(s),
		Words: Words(s),
	}
}

// Words counts words split on Unicode whitespace.
func Words(s string) int {
	return len(strings.Fields(s))
}
