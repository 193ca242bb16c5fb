// Package textproc holds the text utilities shared by the summarizer and the
// feedback loader: cleaning, sentence splitting and tokenization.
package textproc

import (
	"regexp"
	"strings"
)

var (
	repeatedTerminators = regexp.MustCompile(`[!?.]{2,}`)
	repeatedWhitespace  = regexp.MustCompile(SpaceClass + `{2,}`)
)

// Clean lowercases text, trims it, collapses runs of terminal punctuation
// into a single period and runs of whitespace into a single space.
func Clean(text string) string {
	text = TrimSpace(strings.ToLower(text))
	text = repeatedTerminators.ReplaceAllString(text, ".")
	text = repeatedWhitespace.ReplaceAllString(text, " ")

	return text
}
