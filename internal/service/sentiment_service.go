package service

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/formbricks/insight/internal/models"
	"github.com/formbricks/insight/internal/observability"
)

// SentimentClassifier maps a text to a sentiment result.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (models.SentimentResult, error)
}

// SentimentService runs exactly one classification per call and normalizes the result.
type SentimentService struct {
	classifier SentimentClassifier
	metrics    observability.Metrics
}

// NewSentimentService creates a new sentiment service. metrics may be nil.
func NewSentimentService(classifier SentimentClassifier, metrics observability.Metrics) *SentimentService {
	return &SentimentService{classifier: classifier, metrics: metrics}
}

// AnalyzeSentiment classifies text. Classifier errors are returned unchanged in
// kind and are not retried.
func (s *SentimentService) AnalyzeSentiment(ctx context.Context, text string) (*models.SentimentResult, error) {
	ctx, span := observability.StartSpan(ctx, "sentiment.classify")
	defer span.End()

	res, err := s.classifier.Classify(ctx, text)
	if err != nil {
		observability.FailSpan(span, err, "classify")

		return nil, fmt.Errorf("analyze sentiment: %w", err)
	}

	res.Label = strings.ToLower(res.Label)
	span.SetAttributes(attribute.String("sentiment.label", res.Label))

	if s.metrics != nil {
		s.metrics.RecordClassification(ctx, res.Label)
	}

	return &res, nil
}
