package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"github.com/formbricks/insight/internal/observability"
)

const (
	rewriteSystemPrompt = "You are a concise product analyst."
	rewritePromptFormat = "Rewrite the following feedback summary into 1–2 natural, concise sentences. " +
		"Keep the meaning the same, do not add new facts, and aim for a positive, neutral tone. " +
		"Limit to ~%d words.\n\nSummary:\n%s"

	// DefaultRewriteTimeout bounds a single rewrite call.
	DefaultRewriteTimeout = 10 * time.Second
)

// TextGenerator produces a completion for a system and user prompt.
// Implemented by provider-specific clients (e.g. OpenAI).
type TextGenerator interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// RewriteServiceParams configures a RewriteService.
type RewriteServiceParams struct {
	// Generator is nil when no credential is configured; Rewrite then returns its input.
	Generator TextGenerator
	// Timeout bounds each call; DefaultRewriteTimeout when zero.
	Timeout time.Duration
	// Limiter caps outbound calls; nil means unlimited.
	Limiter *rate.Limiter
	Metrics observability.Metrics
}

// RewriteService paraphrases summaries with a language model and fails open:
// any problem returns the summary unchanged.
type RewriteService struct {
	generator TextGenerator
	timeout   time.Duration
	limiter   *rate.Limiter
	metrics   observability.Metrics
}

// NewRewriteService creates a new rewrite service.
func NewRewriteService(params RewriteServiceParams) *RewriteService {
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = DefaultRewriteTimeout
	}

	return &RewriteService{
		generator: params.Generator,
		timeout:   timeout,
		limiter:   params.Limiter,
		metrics:   params.Metrics,
	}
}

// Enabled reports whether rewrites can reach a generator.
func (s *RewriteService) Enabled() bool {
	return s.generator != nil
}

// RewritePrompt builds the user prompt asking for at most about maxWords words.
func RewritePrompt(summary string, maxWords int) string {
	return fmt.Sprintf(rewritePromptFormat, maxWords, summary)
}

// Rewrite returns a shorter, more natural version of summary. Without a
// generator, or for a blank summary, no call is made.
func (s *RewriteService) Rewrite(ctx context.Context, summary string, maxWords int) string {
	if s.generator == nil || strings.TrimSpace(summary) == "" {
		s.record(ctx, observability.RewriteOutcomeSkipped, 0)

		return summary
	}

	if s.limiter != nil && !s.limiter.Allow() {
		slog.WarnContext(ctx, "summary rewrite skipped: rate limited")
		s.record(ctx, observability.RewriteOutcomeRateLimited, 0)

		return summary
	}

	ctx, span := observability.StartSpan(ctx, "summary.rewrite", attribute.Int("rewrite.max_words", maxWords))
	defer span.End()

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.complete(callCtx, summary, maxWords)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "summary rewrite failed, using extractive summary", "error", err, "duration", duration)
		span.SetAttributes(attribute.String("rewrite.outcome", observability.RewriteOutcomeFailed))
		s.record(ctx, observability.RewriteOutcomeFailed, duration)

		return summary
	}

	text = strings.TrimSpace(strings.ReplaceAll(text, "  ", " "))
	if text == "" {
		slog.WarnContext(ctx, "summary rewrite returned no text, using extractive summary")
		span.SetAttributes(attribute.String("rewrite.outcome", observability.RewriteOutcomeFailed))
		s.record(ctx, observability.RewriteOutcomeFailed, duration)

		return summary
	}

	span.SetAttributes(attribute.String("rewrite.outcome", observability.RewriteOutcomeSuccess))
	s.record(ctx, observability.RewriteOutcomeSuccess, duration)

	return text
}

// complete calls the generator, turning a panic into an error so Rewrite never raises.
func (s *RewriteService) complete(ctx context.Context, summary string, maxWords int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panic: %v", r)
		}
	}()

	return s.generator.Complete(ctx, rewriteSystemPrompt, RewritePrompt(summary, maxWords))
}

func (s *RewriteService) record(ctx context.Context, outcome string, duration time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordRewrite(ctx, outcome, duration)
	}
}
