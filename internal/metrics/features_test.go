package metrics_test

import (
	"testing"

	"github.com/eduguide/eduguide/internal/metrics"
)

func TestCountFeatures_Table(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		bytes int
		runes int
		words int
	}{
		{name: "Empty", in: "", bytes: 0, runes: 0, words: 0},
		{name: "ASCII", in: "hello world", bytes: 11, runes: 11, words: 2},
		{name: "Multibyte", in: "héllö 世界", bytes: 14, runes: 8, words: 2},
		{name: "Whitespace_Tabs_Spaces", in: "  foo\tbar   baz  ", bytes: 17, runes: 17, words: 3},
		{name: "OnlyWhitespace", in: " \t\n", bytes: 3, runes: 3, words: 0},
		{name: "SixWordPhrase", in: "one two three four five six", bytes: 27, runes: 27, words: 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := metrics.CountFeatures(tc.in)
			if f.Bytes != tc.bytes || f.Runes != tc.runes || f.Words != tc.words {
				t.Fatalf("%s: got %+v, want bytes=%d runes=%d words=%d", tc.name, f, tc.bytes, tc.runes, tc.words)
			}
		})
	}
}
