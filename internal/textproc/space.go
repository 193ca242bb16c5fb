package textproc

import (
	"regexp"
	"strings"
	"unicode"
)

// SpaceClass is a regexp character class for the characters IsSpace accepts.
const SpaceClass = `[\s\v\p{Z}\x{85}\x{1c}-\x{1f}]`

// WhitespaceRun matches one or more whitespace characters.
var WhitespaceRun = regexp.MustCompile(SpaceClass + `+`)

// IsSpace reports whether r is whitespace. On top of unicode.IsSpace it
// accepts the information separators U+001C to U+001F.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// TrimSpace removes leading and trailing whitespace as defined by IsSpace.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, IsSpace)
}
