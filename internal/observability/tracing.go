package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/formbricks/insight/internal/config"
)

// TracerName is the instrumentation scope of insight spans.
const TracerName = "github.com/formbricks/insight"

// spanExporters maps OTEL_TRACES_EXPORTER values to exporter constructors.
// The OTLP exporter reads its endpoint from the standard OTEL_EXPORTER_OTLP_* variables.
var spanExporters = map[string]func(context.Context) (sdktrace.SpanExporter, error){
	"otlp": func(ctx context.Context) (sdktrace.SpanExporter, error) {
		return otlptracehttp.New(ctx)
	},
	"stdout": func(context.Context) (sdktrace.SpanExporter, error) {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	},
}

// Tracer returns the insight tracer from the global provider. Spans are
// no-ops until NewTracerProvider's result is installed.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartSpan starts a span for one step of a request (loading the corpus,
// classifying a text, rewriting a summary) and tags it with attrs.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// FailSpan records err on span and marks the span failed with msg.
func FailSpan(span trace.Span, err error, msg string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
}

// NewTracerProvider returns a batching TracerProvider for the exporter named
// by cfg.OtelTracesExporter, or nil when that name is empty or unknown.
func NewTracerProvider(cfg *config.Config) (*sdktrace.TracerProvider, error) {
	if cfg == nil {
		//nolint:nilnil // tracing disabled, caller checks for nil
		return nil, nil
	}

	newExporter, ok := spanExporters[cfg.OtelTracesExporter]
	if !ok {
		//nolint:nilnil // tracing disabled, caller checks for nil
		return nil, nil
	}

	exp, err := newExporter(context.Background())
	if err != nil {
		return nil, fmt.Errorf("create %s trace exporter: %w", cfg.OtelTracesExporter, err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(newResource()),
		sdktrace.WithBatcher(exp),
	), nil
}

// ShutdownTracerProvider flushes pending spans. A nil provider is a no-op.
func ShutdownTracerProvider(ctx context.Context, provider *sdktrace.TracerProvider) error {
	if provider == nil {
		return nil
	}

	if err := provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("tracer provider shutdown: %w", err)
	}

	return nil
}
