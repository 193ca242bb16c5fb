// Package summarizer builds extractive summaries of a feedback corpus by
// picking the sentences with the most distinctive vocabulary.
package summarizer

import (
	"cmp"
	"slices"
	"strings"

	"github.com/formbricks/insight/internal/textproc"
)

// FallbackSummary is returned when the corpus holds no sentences.
const FallbackSummary = "No feedback available."

const (
	// DefaultMaxSentences is the summary length used when none is given.
	DefaultMaxSentences = 2
	// DefaultMaxFeatures caps the scoring vocabulary.
	DefaultMaxFeatures = 1000

	// Summaries shorter than this many words get the readability pass.
	readabilityWordLimit = 25
)

// readabilityReplacements merge choppy clauses. Replacements are literal and
// applied in this order.
var readabilityReplacements = [][2]string{
	{" .", "."},
	{" but ", ", but "},
	{" and ", ", and "},
}

// Sentence is one sentence of the concatenated corpus and its position in it.
type Sentence struct {
	Index int
	Text  string
}

// SentenceScore pairs a sentence with its informativeness in the current corpus.
type SentenceScore struct {
	Sentence

	Score float64
}

// Summarizer selects the most informative sentences of a corpus.
type Summarizer struct {
	maxFeatures  int
	maxSentences int
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithMaxFeatures caps the number of terms used for scoring.
func WithMaxFeatures(n int) Option {
	return func(s *Summarizer) {
		s.maxFeatures = n
	}
}

// WithDefaultMaxSentences sets the summary length used when Summarize gets k < 1.
func WithDefaultMaxSentences(k int) Option {
	return func(s *Summarizer) {
		if k > 0 {
			s.maxSentences = k
		}
	}
}

// New creates a Summarizer.
func New(opts ...Option) *Summarizer {
	s := &Summarizer{
		maxFeatures:  DefaultMaxFeatures,
		maxSentences: DefaultMaxSentences,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

var defaultSummarizer = New()

// SummarizeTexts summarizes texts with the default settings.
func SummarizeTexts(texts []string, maxSentences int) string {
	return defaultSummarizer.Summarize(texts, maxSentences)
}

// Summarize joins texts into one document and returns its maxSentences most
// informative sentences as a paragraph, in document order. When maxSentences
// is below 1 the configured default is used.
func (s *Summarizer) Summarize(texts []string, maxSentences int) string {
	if len(texts) == 0 {
		return FallbackSummary
	}

	sentences := textproc.SplitSentences(strings.Join(texts, " "))
	if len(sentences) == 0 {
		return FallbackSummary
	}

	if maxSentences < 1 {
		maxSentences = s.maxSentences
	}

	selected := Select(s.Score(sentences), maxSentences)

	parts := make([]string, len(selected))
	for i, sc := range selected {
		parts[i] = sc.Text
	}

	summary := textproc.WhitespaceRun.ReplaceAllString(strings.Join(parts, " "), " ")
	summary = textproc.CapitalizeFirst(summary)

	if textproc.WordCount(summary) < readabilityWordLimit {
		for _, r := range readabilityReplacements {
			summary = strings.ReplaceAll(summary, r[0], r[1])
		}
	}

	return summary
}

// Score returns the informativeness of every sentence, in input order.
func (s *Summarizer) Score(sentences []string) []SentenceScore {
	weights := tfidfScores(sentences, s.maxFeatures)

	scores := make([]SentenceScore, len(sentences))
	for i, text := range sentences {
		scores[i] = SentenceScore{
			Sentence: Sentence{Index: i, Text: text},
			Score:    weights[i],
		}
	}

	return scores
}

// Select keeps the k highest scores, ties going to the earlier sentence, and
// returns them in document order.
func Select(scores []SentenceScore, k int) []SentenceScore {
	ranked := slices.Clone(scores)
	slices.SortStableFunc(ranked, func(a, b SentenceScore) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Index, b.Index)
	})

	if k < len(ranked) {
		ranked = ranked[:max(k, 0)]
	}

	slices.SortFunc(ranked, func(a, b SentenceScore) int {
		return cmp.Compare(a.Index, b.Index)
	})

	return ranked
}
