package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics is the single metrics interface for the insight API. Callers hold a
// nil Metrics when metrics are disabled.
type Metrics interface {
	RecordRequest(ctx context.Context, method, route, statusClass string, duration time.Duration)
	RecordRequestBodyTooLarge(ctx context.Context)
	RecordCorpusLoad(ctx context.Context, outcome string, records int)
	RecordClassification(ctx context.Context, label string)
	RecordSummary(ctx context.Context, duration time.Duration)
	RecordRewrite(ctx context.Context, outcome string, duration time.Duration)
}

type insightMetrics struct {
	requests            metric.Int64Counter
	requestDuration     metric.Float64Histogram
	requestBodyTooLarge metric.Int64Counter
	corpusLoads         metric.Int64Counter
	corpusRecords       metric.Int64Histogram
	classifications     metric.Int64Counter
	summaryDuration     metric.Float64Histogram
	rewrites            metric.Int64Counter
	rewriteDuration     metric.Float64Histogram
}

// NewMetrics creates the instruments on meter. Returns (nil, nil) when meter is nil (metrics disabled).
func NewMetrics(meter metric.Meter) (Metrics, error) {
	if meter == nil {
		//nolint:nilnil // intentional: callers use "if metrics != nil" when metrics disabled
		return nil, nil
	}

	var (
		m   insightMetrics
		err error
	)

	if m.requests, err = meter.Int64Counter(MetricNameHTTPRequests,
		metric.WithDescription("Total HTTP requests")); err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricNameHTTPRequests, err)
	}

	if m.requestDuration, err = meter.Float64Histogram(MetricNameHTTPRequestDuration,
		metric.WithDescription("HTTP request duration in seconds"), metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricNameHTTPRequestDuration, err)
	}

	if m.requestBodyTooLarge, err = meter.Int64Counter(MetricNameRequestBodyTooLarge,
		metric.WithDescription("Requests rejected because the body exceeded the configured limit (413)")); err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricNameRequestBodyTooLarge, err)
	}

	if m.corpusLoads, err = meter.Int64Counter(MetricNameCorpusLoads,
		metric.WithDescription("Feedback file loads by outcome")); err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricNameCorpusLoads, err)
	}

	if m.corpusRecords, err = meter.Int64Histogram(MetricNameCorpusRecords,
		metric.WithDescription("Records per successful feedback file load")); err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricNameCorpusRecords, err)
	}

	if m.classifications, err = meter.Int64Counter(MetricNameClassifications,
		metric.WithDescription("Sentiment classifications by label")); err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricNameClassifications, err)
	}

	if m.summaryDuration, err = meter.Float64Histogram(MetricNameSummaryDuration,
		metric.WithDescription("Extractive summary duration in seconds"), metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricNameSummaryDuration, err)
	}

	if m.rewrites, err = meter.Int64Counter(MetricNameRewrites,
		metric.WithDescription("Summary rewrites by outcome (success, skipped, rate_limited, failed)")); err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricNameRewrites, err)
	}

	if m.rewriteDuration, err = meter.Float64Histogram(MetricNameRewriteDuration,
		metric.WithDescription("Summary rewrite call duration in seconds"), metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricNameRewriteDuration, err)
	}

	return &m, nil
}

func (m *insightMetrics) RecordRequest(ctx context.Context, method, route, statusClass string, duration time.Duration) {
	m.requests.Add(ctx, 1, metric.WithAttributeSet(attribute.NewSet(
		attribute.String(AttrMethod, method),
		attribute.String(AttrRoute, route),
		attribute.String(AttrStatusClass, statusClass),
	)))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributeSet(attribute.NewSet(
		attribute.String(AttrMethod, method),
		attribute.String(AttrRoute, route),
	)))
}

func (m *insightMetrics) RecordRequestBodyTooLarge(ctx context.Context) {
	m.requestBodyTooLarge.Add(ctx, 1)
}

func (m *insightMetrics) RecordCorpusLoad(ctx context.Context, outcome string, records int) {
	outcome = NormalizeOutcome(outcome, AllowedCorpusOutcomes)
	m.corpusLoads.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrOutcome, outcome)))

	if outcome == CorpusOutcomeSuccess {
		m.corpusRecords.Record(ctx, int64(records))
	}
}

func (m *insightMetrics) RecordClassification(ctx context.Context, label string) {
	label = NormalizeOutcome(label, AllowedLabels)
	m.classifications.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrLabel, label)))
}

func (m *insightMetrics) RecordSummary(ctx context.Context, duration time.Duration) {
	m.summaryDuration.Record(ctx, duration.Seconds())
}

func (m *insightMetrics) RecordRewrite(ctx context.Context, outcome string, duration time.Duration) {
	outcome = NormalizeOutcome(outcome, AllowedRewriteOutcomes)
	attrs := metric.WithAttributes(attribute.String(AttrOutcome, outcome))
	m.rewrites.Add(ctx, 1, attrs)

	if outcome != RewriteOutcomeSkipped {
		m.rewriteDuration.Record(ctx, duration.Seconds(), attrs)
	}
}
