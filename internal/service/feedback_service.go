package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/formbricks/insight/internal/models"
	"github.com/formbricks/insight/internal/observability"
	"github.com/formbricks/insight/internal/textproc"
)

// FeedbackRepository defines the interface for feedback file access.
type FeedbackRepository interface {
	List(ctx context.Context) ([]models.FeedbackRecord, error)
}

// FeedbackService loads and cleans the feedback corpus.
type FeedbackService struct {
	repo    FeedbackRepository
	metrics observability.Metrics
}

// NewFeedbackService creates a new feedback service. metrics may be nil.
func NewFeedbackService(repo FeedbackRepository, metrics observability.Metrics) *FeedbackService {
	return &FeedbackService{repo: repo, metrics: metrics}
}

// ListFeedback reads the feedback file and fills in CleanFeedback for every record.
func (s *FeedbackService) ListFeedback(ctx context.Context) ([]models.FeedbackRecord, error) {
	ctx, span := observability.StartSpan(ctx, "feedback.list")
	defer span.End()

	start := time.Now()

	records, err := s.repo.List(ctx)
	if err != nil {
		observability.FailSpan(span, err, "load feedback")

		if s.metrics != nil {
			s.metrics.RecordCorpusLoad(ctx, observability.CorpusOutcomeError, 0)
		}

		return nil, err
	}

	for i := range records {
		records[i].CleanFeedback = textproc.Clean(records[i].Feedback())
	}

	span.SetAttributes(attribute.Int("feedback.records", len(records)))

	if s.metrics != nil {
		s.metrics.RecordCorpusLoad(ctx, observability.CorpusOutcomeSuccess, len(records))
	}

	slog.DebugContext(ctx, "feedback loaded", "records", len(records), "duration", time.Since(start))

	return records, nil
}

// CleanTexts returns the cleaned feedback texts in file order.
func (s *FeedbackService) CleanTexts(ctx context.Context) ([]string, error) {
	records, err := s.ListFeedback(ctx)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.CleanFeedback
	}

	return texts, nil
}
