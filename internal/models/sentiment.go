package models

// Sentiment labels produced by the classifier.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// AnalyzeFeedbackRequest is the body of POST /analyze_feedback.
type AnalyzeFeedbackRequest struct {
	Text *string `json:"text" validate:"required,no_null_bytes"`
}

// SentimentResult is the label and confidence computed for one text.
type SentimentResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
