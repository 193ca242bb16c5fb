package sentiment

import (
	"html"
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	markdownLink = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURL      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTag      = regexp.MustCompile(`<[^>]*>`)
)

// RemoveLinks keeps the text of markdown links and drops bare URLs.
func RemoveLinks(input string) string {
	input = markdownLink.ReplaceAllString(input, "$1")

	return bareURL.ReplaceAllString(input, "")
}

// MarkdownToText renders markdown and strips the markup, leaving plain words
// separated by single spaces.
func MarkdownToText(input string) string {
	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := html.UnescapeString(htmlTag.ReplaceAllString(string(rendered), " "))

	return strings.Join(strings.Fields(RemoveLinks(plain)), " ")
}
