package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/time/rate"

	"github.com/formbricks/insight/internal/api/handlers"
	"github.com/formbricks/insight/internal/api/middleware"
	"github.com/formbricks/insight/internal/config"
	"github.com/formbricks/insight/internal/observability"
	"github.com/formbricks/insight/internal/openai"
	"github.com/formbricks/insight/internal/repository"
	"github.com/formbricks/insight/internal/sentiment"
	"github.com/formbricks/insight/internal/service"
	"github.com/formbricks/insight/internal/summarizer"
)

// rewriteBurst lets a short run of humanized summaries through before the sustained rate applies.
const rewriteBurst = 2

// App holds all server dependencies and coordinates startup and shutdown.
type App struct {
	cfg            *config.Config
	server         *http.Server
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
}

// handlerSet groups the HTTP handlers registered on the mux.
type handlerSet struct {
	health    *handlers.HealthHandler
	feedback  *handlers.FeedbackHandler
	sentiment *handlers.SentimentHandler
	summary   *handlers.SummaryHandler
	metrics   http.Handler
}

// setupMetrics creates the meter provider, its /metrics handler and the insight metrics.
// When NewMeterProvider returns nil (unsupported or disabled exporter), everything is nil.
func setupMetrics(cfg *config.Config) (*sdkmetric.MeterProvider, http.Handler, observability.Metrics, error) {
	mp, scrape, err := observability.NewMeterProvider(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create meter provider: %w", err)
	}

	if mp == nil {
		slog.Warn("metrics exporter not supported, metrics disabled", "exporter", cfg.OtelMetricsExporter)

		return nil, nil, nil, nil
	}

	metrics, err := observability.NewMetrics(mp.Meter(observability.MeterScope))
	if err != nil {
		if err2 := observability.ShutdownMeterProvider(context.Background(), mp); err2 != nil {
			slog.Error("shutdown meter provider after metrics error", "error", err2)
		}

		return nil, nil, nil, fmt.Errorf("create metrics: %w", err)
	}

	return mp, scrape, metrics, nil
}

// newRewriteService wires the language model client when a key is configured.
// Without one the service returns summaries unchanged.
func newRewriteService(cfg *config.Config, metrics observability.Metrics) *service.RewriteService {
	params := service.RewriteServiceParams{
		Timeout: cfg.RewriteTimeout,
		Limiter: rate.NewLimiter(rate.Limit(cfg.RewriteRateLimit), rewriteBurst),
		Metrics: metrics,
	}

	if cfg.RewriteEnabled() {
		opts := []openai.ClientOption{openai.WithModel(cfg.RewriteModel)}
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
		}

		params.Generator = openai.NewClient(cfg.OpenAIAPIKey, opts...)

		slog.Info("summary rewrite enabled", "model", cfg.RewriteModel, "rate_limit", cfg.RewriteRateLimit)
	} else {
		slog.Info("summary rewrite disabled (OPENAI_API_KEY not set)")
	}

	return service.NewRewriteService(params)
}

// NewApp builds and wires all components. It does not start the HTTP server;
// call Run to start and block until shutdown or failure.
func NewApp(cfg *config.Config) (*App, error) {
	var (
		err           error
		meterProvider *sdkmetric.MeterProvider
		scrape        http.Handler
		metrics       observability.Metrics
	)

	if cfg.OtelMetricsExporter == "" {
		slog.Warn("metrics not enabled (OTEL_METRICS_EXPORTER empty or unset)")
	} else {
		meterProvider, scrape, metrics, err = setupMetrics(cfg)
		if err != nil {
			return nil, err
		}
	}

	var tracerProvider *sdktrace.TracerProvider

	if cfg.OtelTracesExporter == "" {
		slog.Warn("tracing not enabled (OTEL_TRACES_EXPORTER empty or unset)")
	} else {
		tracerProvider, err = observability.NewTracerProvider(cfg)
		if err != nil {
			if meterProvider != nil {
				if err2 := observability.ShutdownMeterProvider(context.Background(), meterProvider); err2 != nil {
					slog.Error("shutdown meter provider after tracer provider error", "error", err2)
				}
			}

			return nil, fmt.Errorf("create tracer provider: %w", err)
		}
	}

	if tracerProvider != nil {
		otel.SetTracerProvider(tracerProvider)
	}

	if meterProvider != nil {
		otel.SetMeterProvider(meterProvider)
	}

	feedbackRepo := repository.NewFeedbackFileRepository(cfg.FeedbackFile)
	feedbackService := service.NewFeedbackService(feedbackRepo, metrics)
	sentimentService := service.NewSentimentService(sentiment.NewVaderClassifier(), metrics)
	summaryService := service.NewSummaryService(
		feedbackService,
		summarizer.New(),
		newRewriteService(cfg, metrics),
		metrics,
	)

	slog.Info("feedback corpus configured", "path", feedbackRepo.Path())

	server := newHTTPServer(cfg, handlerSet{
		health:    handlers.NewHealthHandler(),
		feedback:  handlers.NewFeedbackHandler(feedbackService),
		sentiment: handlers.NewSentimentHandler(sentimentService),
		summary:   handlers.NewSummaryHandler(summaryService),
		metrics:   scrape,
	}, metrics, meterProvider, tracerProvider)

	return &App{
		cfg:            cfg,
		server:         server,
		meterProvider:  meterProvider,
		tracerProvider: tracerProvider,
	}, nil
}

// newMux registers the API routes. Only POST /analyze_feedback reads a body,
// so limitBody wraps that route alone. /metrics is only served when a scrape
// handler exists.
func newMux(h handlerSet, limitBody func(http.Handler) http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.health.Root)
	mux.HandleFunc("GET /health", h.health.Check)
	mux.HandleFunc("GET /feedback", h.feedback.List)
	mux.Handle("POST /analyze_feedback", limitBody(http.HandlerFunc(h.sentiment.Analyze)))
	mux.HandleFunc("GET /summary", h.summary.Get)

	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics)
	}

	return mux
}

// newHTTPServer builds the HTTP server.
// Handler chain: RequestID -> otelhttp -> Logging -> Metrics -> mux.
func newHTTPServer(
	cfg *config.Config,
	h handlerSet,
	metrics observability.Metrics,
	meterProvider *sdkmetric.MeterProvider,
	tracerProvider *sdktrace.TracerProvider,
) *http.Server {
	otelOpts := []otelhttp.Option{
		// Skip tracing and HTTP metrics for health checks and scrapes to reduce noise.
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health" && r.URL.Path != "/metrics"
		}),
	}
	if meterProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithMeterProvider(meterProvider))
	}

	if tracerProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithTracerProvider(tracerProvider))
	}

	var recorder middleware.BodyLimitRecorder
	if metrics != nil {
		recorder = metrics
	}

	// Logging runs inside otelhttp so r.Context() has the span when we log (trace_id/span_id in access logs).
	var handler http.Handler = newMux(h, middleware.LimitBody(cfg.MaxRequestBodyBytes, recorder))
	handler = middleware.Metrics(metrics)(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, observability.ServiceName, otelOpts...)
	handler = middleware.RequestID(handler)

	const (
		readTimeout  = 15 * time.Second
		writeTimeout = 30 * time.Second
		idleTimeout  = 60 * time.Second
	)

	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

// Run starts the HTTP server, then blocks until ctx is cancelled (e.g. signal)
// or the server fails. Caller should then call Shutdown.
func (a *App) Run(ctx context.Context) error {
	runErr := make(chan error, 1)

	go func() {
		slog.Info("Starting server", "port", a.cfg.Port)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr <- fmt.Errorf("server: %w", err)
		}
	}()

	select {
	case err := <-runErr:
		return err
	case <-ctx.Done():
		return nil
	}
}

// shutdownObservability shuts down tracer and meter providers. Logs secondary errors, returns the first.
func shutdownObservability(ctx context.Context, tracer *sdktrace.TracerProvider, meter *sdkmetric.MeterProvider) error {
	var first error

	if tracer != nil {
		if err := observability.ShutdownTracerProvider(ctx, tracer); err != nil {
			first = err
		}
	}

	if meter != nil {
		if err := observability.ShutdownMeterProvider(ctx, meter); err != nil {
			if first == nil {
				first = err
			} else {
				slog.Error("shutdown meter provider", "error", err)
			}
		}
	}

	return first
}

// Shutdown stops the server and flushes telemetry. Call after Run returns.
// The observability error is returned only when the server shut down cleanly.
func (a *App) Shutdown(ctx context.Context) (err error) {
	defer func() {
		obsErr := shutdownObservability(ctx, a.tracerProvider, a.meterProvider)
		if err == nil {
			err = obsErr
		} else if obsErr != nil {
			slog.Error("shutdown observability", "error", obsErr)
		}
	}()

	if err = a.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
