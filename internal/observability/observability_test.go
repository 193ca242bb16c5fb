package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/formbricks/insight/internal/config"
)

func TestNormalizeOutcome(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		allowed map[string]bool
		want    string
	}{
		{"rewrite success", "success", AllowedRewriteOutcomes, "success"},
		{"rewrite rate limited", "rate_limited", AllowedRewriteOutcomes, "rate_limited"},
		{"rewrite unknown", "timeout", AllowedRewriteOutcomes, "other"},
		{"label neutral", "neutral", AllowedLabels, "neutral"},
		{"label unknown", "mixed", AllowedLabels, "other"},
		{"corpus error", "error", AllowedCorpusOutcomes, "error"},
		{"empty", "", AllowedCorpusOutcomes, "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeOutcome(tt.input, tt.allowed))
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewLogHandler_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewLogHandler(&buf, slog.LevelInfo, LogFormatJSON))
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")

	logger.InfoContext(ctx, "hello")

	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestNewLogHandler_Level(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewLogHandler(&buf, slog.LevelWarn, LogFormatText))
	logger.Info("dropped")
	logger.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewLogHandler_Pretty(t *testing.T) {
	var buf bytes.Buffer

	slog.New(NewLogHandler(&buf, slog.LevelInfo, LogFormatPretty)).Info("pretty line")

	assert.Contains(t, buf.String(), "pretty line")
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, handler, err := NewMeterProvider(&config.Config{})
	require.NoError(t, err)
	assert.Nil(t, mp)
	assert.Nil(t, handler)
}

func TestNewMeterProvider_Prometheus(t *testing.T) {
	mp, handler, err := NewMeterProvider(&config.Config{OtelMetricsExporter: "prometheus"})
	require.NoError(t, err)
	require.NotNil(t, mp)
	require.NotNil(t, handler)

	defer func() { _ = ShutdownMeterProvider(context.Background(), mp) }()

	metrics, err := NewMetrics(mp.Meter(MeterScope))
	require.NoError(t, err)
	require.NotNil(t, metrics)

	ctx := context.Background()
	metrics.RecordRequest(ctx, http.MethodGet, "/summary", "2xx", 10*time.Millisecond)
	metrics.RecordCorpusLoad(ctx, CorpusOutcomeSuccess, 4)
	metrics.RecordClassification(ctx, "positive")
	metrics.RecordSummary(ctx, time.Millisecond)
	metrics.RecordRewrite(ctx, RewriteOutcomeSkipped, 0)
	metrics.RecordRequestBodyTooLarge(ctx)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "insight_http_requests_total")
	assert.Contains(t, body, "insight_corpus_loads_total")
	assert.Contains(t, body, "insight_sentiment_classifications_total")
	assert.Contains(t, body, "insight_rewrites_total")
}

func TestNewMetrics_NilMeter(t *testing.T) {
	metrics, err := NewMetrics(nil)
	require.NoError(t, err)
	assert.Nil(t, metrics)
}

func TestNewTracerProvider(t *testing.T) {
	tp, err := NewTracerProvider(nil)
	require.NoError(t, err)
	assert.Nil(t, tp)

	tp, err = NewTracerProvider(&config.Config{})
	require.NoError(t, err)
	assert.Nil(t, tp)

	tp, err = NewTracerProvider(&config.Config{OtelTracesExporter: "zipkin"})
	require.NoError(t, err)
	assert.Nil(t, tp)

	tp, err = NewTracerProvider(&config.Config{OtelTracesExporter: "stdout"})
	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.NoError(t, ShutdownTracerProvider(context.Background(), tp))
}

func TestStartSpan_FailSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := StartSpan(context.Background(), "summary.build", attribute.Int("summary.max_sentences", 3))
	FailSpan(span, errors.New("corpus missing"), "load corpus")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "summary.build", ended[0].Name())
	assert.Equal(t, TracerName, ended[0].InstrumentationScope().Name)
	assert.Contains(t, ended[0].Attributes(), attribute.Int("summary.max_sentences", 3))
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "load corpus", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}
