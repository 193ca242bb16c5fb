// Package observability provides logging, OpenTelemetry metrics (Prometheus exporter) and tracing for the insight API.
package observability

// Metric names (Prometheus / OpenTelemetry).
const (
	MetricNameHTTPRequests        = "insight_http_requests_total"
	MetricNameHTTPRequestDuration = "insight_http_request_duration_seconds"
	MetricNameRequestBodyTooLarge = "insight_request_body_too_large_total"
	MetricNameCorpusLoads         = "insight_corpus_loads_total"
	MetricNameCorpusRecords       = "insight_corpus_records"
	MetricNameClassifications     = "insight_sentiment_classifications_total"
	MetricNameRewrites            = "insight_rewrites_total"
	MetricNameRewriteDuration     = "insight_rewrite_duration_seconds"
	MetricNameSummaryDuration     = "insight_summary_duration_seconds"
)

// Attribute keys.
const (
	AttrMethod      = "method"
	AttrRoute       = "route"
	AttrStatusClass = "status_class"
	AttrOutcome     = "outcome"
	AttrLabel       = "label"
)

// Corpus load outcomes.
const (
	CorpusOutcomeSuccess = "success"
	CorpusOutcomeError   = "error"
)

// Rewrite outcomes.
const (
	RewriteOutcomeSuccess     = "success"
	RewriteOutcomeSkipped     = "skipped"
	RewriteOutcomeRateLimited = "rate_limited"
	RewriteOutcomeFailed      = "failed"
)

// AllowedRewriteOutcomes for insight_rewrites_total.
var AllowedRewriteOutcomes = map[string]bool{
	RewriteOutcomeSuccess:     true,
	RewriteOutcomeSkipped:     true,
	RewriteOutcomeRateLimited: true,
	RewriteOutcomeFailed:      true,
}

// AllowedCorpusOutcomes for insight_corpus_loads_total.
var AllowedCorpusOutcomes = map[string]bool{
	CorpusOutcomeSuccess: true,
	CorpusOutcomeError:   true,
}

// AllowedLabels for insight_sentiment_classifications_total.
var AllowedLabels = map[string]bool{
	"positive": true,
	"negative": true,
	"neutral":  true,
}

// NormalizeOutcome returns outcome if in allowed, otherwise "other".
func NormalizeOutcome(outcome string, allowed map[string]bool) string {
	if allowed[outcome] {
		return outcome
	}

	return "other"
}
