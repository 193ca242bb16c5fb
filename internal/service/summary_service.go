package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/formbricks/insight/internal/models"
	"github.com/formbricks/insight/internal/observability"
)

// CorpusLoader returns the cleaned feedback texts, read fresh on every call.
type CorpusLoader interface {
	CleanTexts(ctx context.Context) ([]string, error)
}

// ExtractiveSummarizer selects the most informative sentences of texts.
type ExtractiveSummarizer interface {
	Summarize(texts []string, maxSentences int) string
}

// Rewriter paraphrases a summary within a word budget and never fails.
type Rewriter interface {
	Rewrite(ctx context.Context, summary string, maxWords int) string
}

// SummaryService builds the corpus summary, optionally rewritten.
type SummaryService struct {
	corpus     CorpusLoader
	summarizer ExtractiveSummarizer
	rewriter   Rewriter
	metrics    observability.Metrics
}

// NewSummaryService creates a new summary service. rewriter and metrics may be nil.
func NewSummaryService(corpus CorpusLoader, summarizer ExtractiveSummarizer, rewriter Rewriter, metrics observability.Metrics) *SummaryService {
	return &SummaryService{
		corpus:     corpus,
		summarizer: summarizer,
		rewriter:   rewriter,
		metrics:    metrics,
	}
}

// Summarize loads the corpus and summarizes it. Only corpus errors are returned.
func (s *SummaryService) Summarize(ctx context.Context, opts models.SummaryOptions) (*models.SummaryResponse, error) {
	ctx, span := observability.StartSpan(ctx, "summary.build",
		attribute.Bool("summary.humanize", opts.Humanize),
		attribute.Int("summary.max_sentences", opts.MaxSentences),
	)
	defer span.End()

	texts, err := s.corpus.CleanTexts(ctx)
	if err != nil {
		observability.FailSpan(span, err, "load corpus")

		return nil, err
	}

	summary := s.SummarizeTexts(ctx, texts, opts)

	return &models.SummaryResponse{Summary: summary}, nil
}

// SummarizeTexts summarizes already cleaned texts and, when opts.Humanize is
// set and a rewriter is present, rewrites the result.
func (s *SummaryService) SummarizeTexts(ctx context.Context, texts []string, opts models.SummaryOptions) string {
	start := time.Now()
	summary := s.summarizer.Summarize(texts, opts.MaxSentences)

	if s.metrics != nil {
		s.metrics.RecordSummary(ctx, time.Since(start))
	}

	if opts.Humanize && s.rewriter != nil {
		summary = s.rewriter.Rewrite(ctx, summary, opts.MaxWords)
	}

	return summary
}
