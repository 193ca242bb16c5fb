package insight

import "fmt"

// FeedbackRecord is one row of the feedback file keyed by column name,
// including the server-computed "clean_feedback" column.
type FeedbackRecord map[string]string

// Feedback returns the raw feedback text of the record.
func (r FeedbackRecord) Feedback() string {
	return r["feedback"]
}

// CleanFeedback returns the normalized feedback text of the record.
func (r FeedbackRecord) CleanFeedback() string {
	return r["clean_feedback"]
}

// Sentiment is the result of POST /analyze_feedback.
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SummaryParams are the optional parameters of GET /summary.
// Zero values leave the server defaults in place.
type SummaryParams struct {
	Humanize     bool
	MaxSentences int
	MaxWords     int
}

// Summary is the result of GET /summary.
type Summary struct {
	Summary string `json:"summary"`
}

// APIError is returned for any non-2xx response. Title and Detail come from the
// RFC 7807 body when the server sent one.
type APIError struct {
	StatusCode int    `json:"status"`
	Title      string `json:"title"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("insight API %d %s: %s", e.StatusCode, e.Title, e.Detail)
	}

	return fmt.Sprintf("insight API request failed with status %d", e.StatusCode)
}
