package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitSentences splits text at whitespace runs that directly follow '.', '!'
// or '?'. Parts are trimmed and empty parts dropped. Non-blank input that
// yields no parts is returned whole as a single sentence.
func SplitSentences(text string) []string {
	var (
		parts      []string
		start      int
		prev       rune
		inBoundary bool
	)

	for i, r := range text {
		switch {
		case IsSpace(r) && !inBoundary && isTerminator(prev):
			parts = appendTrimmed(parts, text[start:i])
			inBoundary = true
		case !IsSpace(r) && inBoundary:
			start = i
			inBoundary = false
		}

		prev = r
	}

	if !inBoundary {
		parts = appendTrimmed(parts, text[start:])
	}

	if len(parts) == 0 {
		if trimmed := TrimSpace(text); trimmed != "" {
			return []string{trimmed}
		}
	}

	return parts
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.FieldsFunc(text, IsSpace))
}

// CapitalizeFirst upper-cases the first rune of text and leaves the rest alone.
func CapitalizeFirst(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 || r == utf8.RuneError {
		return text
	}

	return string(unicode.ToUpper(r)) + text[size:]
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func appendTrimmed(parts []string, s string) []string {
	if s = TrimSpace(s); s != "" {
		parts = append(parts, s)
	}

	return parts
}
