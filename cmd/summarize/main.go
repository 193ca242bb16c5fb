// Package main provides a CLI that summarizes the feedback file or classifies one text.
// It works on the local file by default, or against a running API with -api-url.
//
// Usage:
//
//	go run ./cmd/summarize -max-sentences 3
//	go run ./cmd/summarize -humanize -max-words 30
//	go run ./cmd/summarize -text "The app keeps crashing"
//	go run ./cmd/summarize -api-url http://localhost:8080
//
// Environment variables (local mode):
//   - FEEDBACK_FILE: default for -file (default: data/feedback_raw.csv)
//   - OPENAI_API_KEY: enables -humanize rewrites
//   - REWRITE_MODEL, REWRITE_TIMEOUT, OPENAI_BASE_URL: rewrite client settings
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/formbricks/insight/internal/config"
	"github.com/formbricks/insight/internal/models"
	"github.com/formbricks/insight/internal/observability"
	"github.com/formbricks/insight/internal/openai"
	"github.com/formbricks/insight/internal/repository"
	"github.com/formbricks/insight/internal/sentiment"
	"github.com/formbricks/insight/internal/service"
	"github.com/formbricks/insight/internal/summarizer"
	"github.com/formbricks/insight/pkg/insight"
)

var errInvalidFlag = errors.New("invalid flag value")

var labelColors = map[string]*color.Color{
	models.SentimentPositive: color.New(color.FgGreen),
	models.SentimentNegative: color.New(color.FgRed),
	models.SentimentNeutral:  color.New(color.FgYellow),
}

// printSentiment writes "label<TAB>score". Labels are colored on a terminal.
func printSentiment(out io.Writer, label string, score float64) error {
	if c, ok := labelColors[label]; ok {
		label = c.Sprint(label)
	}

	_, err := fmt.Fprintf(out, "%s\t%.4f\n", label, score)

	return err //nolint:wrapcheck // stdout write
}

type options struct {
	file         string
	maxSentences int
	maxWords     int
	humanize     bool
	text         string
	apiURL       string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load configuration:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(observability.NewLogHandler(os.Stderr, observability.ParseLevel(cfg.LogLevel), cfg.LogFormat)))

	if err := run(ctx, cfg, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			slog.Error("summarize failed", "error", err)
		}

		os.Exit(1)
	}
}

func parseFlags(cfg *config.Config, args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	fs.StringVar(&opts.file, "file", cfg.FeedbackFile, "feedback CSV file with a feedback column")
	fs.IntVar(&opts.maxSentences, "max-sentences", models.DefaultSummaryMaxSentences, "sentences to keep in the summary")
	fs.IntVar(&opts.maxWords, "max-words", models.DefaultSummaryMaxWords, "word budget for the rewritten summary")
	fs.BoolVar(&opts.humanize, "humanize", false, "rewrite the summary with the language model")
	fs.StringVar(&opts.text, "text", "", "classify the sentiment of this text instead of summarizing")
	fs.StringVar(&opts.apiURL, "api-url", "", "use a running insight API instead of local processing")

	if err := fs.Parse(args); err != nil {
		return opts, err //nolint:wrapcheck // flag already prints the problem
	}

	if opts.maxSentences < 1 {
		return opts, fmt.Errorf("%w: -max-sentences must be at least 1", errInvalidFlag)
	}

	if opts.maxWords < 1 {
		return opts, fmt.Errorf("%w: -max-words must be at least 1", errInvalidFlag)
	}

	return opts, nil
}

func run(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	opts, err := parseFlags(cfg, args)
	if err != nil {
		return err
	}

	if opts.apiURL != "" {
		return runRemote(ctx, insight.NewClient(opts.apiURL), opts, out)
	}

	return runLocal(ctx, cfg, opts, out)
}

func runLocal(ctx context.Context, cfg *config.Config, opts options, out io.Writer) error {
	if opts.text != "" {
		result, err := service.NewSentimentService(sentiment.NewVaderClassifier(), nil).AnalyzeSentiment(ctx, opts.text)
		if err != nil {
			return err //nolint:wrapcheck // already wrapped by the service
		}

		return printSentiment(out, result.Label, result.Score)
	}

	params := service.RewriteServiceParams{Timeout: cfg.RewriteTimeout}
	if opts.humanize && cfg.RewriteEnabled() {
		params.Generator = openai.NewClient(cfg.OpenAIAPIKey,
			openai.WithModel(cfg.RewriteModel),
			openai.WithBaseURL(cfg.OpenAIBaseURL),
		)
	} else if opts.humanize {
		slog.Warn("OPENAI_API_KEY not set, printing the extractive summary")
	}

	feedback := service.NewFeedbackService(repository.NewFeedbackFileRepository(opts.file), nil)
	summaries := service.NewSummaryService(feedback, summarizer.New(), service.NewRewriteService(params), nil)

	result, err := summaries.Summarize(ctx, models.SummaryOptions{
		Humanize:     opts.humanize,
		MaxSentences: opts.maxSentences,
		MaxWords:     opts.maxWords,
	})
	if err != nil {
		return err //nolint:wrapcheck // corpus errors carry the file path
	}

	_, err = fmt.Fprintln(out, result.Summary)

	return err //nolint:wrapcheck // stdout write
}

func runRemote(ctx context.Context, client *insight.Client, opts options, out io.Writer) error {
	if opts.text != "" {
		result, err := client.AnalyzeFeedback(ctx, opts.text)
		if err != nil {
			return fmt.Errorf("analyze feedback: %w", err)
		}

		return printSentiment(out, result.Label, result.Score)
	}

	result, err := client.Summary(ctx, insight.SummaryParams{
		Humanize:     opts.humanize,
		MaxSentences: opts.maxSentences,
		MaxWords:     opts.maxWords,
	})
	if err != nil {
		return fmt.Errorf("summary: %w", err)
	}

	_, err = fmt.Fprintln(out, result.Summary)

	return err //nolint:wrapcheck // stdout write
}
