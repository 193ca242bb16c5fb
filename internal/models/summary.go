package models

// Summary defaults applied when the query omits a value.
const (
	DefaultSummaryMaxSentences = 2
	DefaultSummaryMaxWords     = 40
)

// SummaryQuery holds the query parameters of GET /summary.
type SummaryQuery struct {
	Humanize     bool `form:"humanize"`
	MaxSentences *int `form:"max_sentences" validate:"omitempty,min=1"`
	MaxWords     *int `form:"max_words" validate:"omitempty,min=1"`
}

// SummaryOptions is a resolved summary request.
type SummaryOptions struct {
	Humanize     bool
	MaxSentences int
	MaxWords     int
}

// Options resolves the query against the defaults.
func (q SummaryQuery) Options() SummaryOptions {
	opts := SummaryOptions{
		Humanize:     q.Humanize,
		MaxSentences: DefaultSummaryMaxSentences,
		MaxWords:     DefaultSummaryMaxWords,
	}

	if q.MaxSentences != nil {
		opts.MaxSentences = *q.MaxSentences
	}

	if q.MaxWords != nil {
		opts.MaxWords = *q.MaxWords
	}

	return opts
}

// SummaryResponse is the body returned by GET /summary.
type SummaryResponse struct {
	Summary string `json:"summary"`
}
