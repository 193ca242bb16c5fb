package service

import (
	"context"
	"sync"
	"time"

	"github.com/formbricks/insight/internal/models"
)

type fakeFeedbackRepo struct {
	records []models.FeedbackRecord
	err     error
	calls   int
}

func (f *fakeFeedbackRepo) List(context.Context) ([]models.FeedbackRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	out := make([]models.FeedbackRecord, len(f.records))
	copy(out, f.records)

	return out, nil
}

func feedbackRecords(texts ...string) []models.FeedbackRecord {
	records := make([]models.FeedbackRecord, len(texts))
	for i, text := range texts {
		records[i] = models.FeedbackRecord{
			Columns: []string{models.FeedbackColumn},
			Values:  map[string]string{models.FeedbackColumn: text},
		}
	}

	return records
}

type fakeClassifier struct {
	result models.SentimentResult
	err    error
	texts  []string
}

func (f *fakeClassifier) Classify(_ context.Context, text string) (models.SentimentResult, error) {
	f.texts = append(f.texts, text)

	return f.result, f.err
}

type fakeGenerator struct {
	mu       sync.Mutex
	complete func(ctx context.Context, system, prompt string) (string, error)
	prompts  []string
	systems  []string
}

func (f *fakeGenerator) Complete(ctx context.Context, system, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.systems = append(f.systems, system)
	f.mu.Unlock()

	return f.complete(ctx, system, prompt)
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.prompts)
}

type fakeRewriter struct {
	calls    int
	maxWords int
}

func (f *fakeRewriter) Rewrite(_ context.Context, summary string, maxWords int) string {
	f.calls++
	f.maxWords = maxWords

	return "rewritten: " + summary
}

type fakeMetrics struct {
	corpus          []string
	classifications []string
	rewrites        []string
	summaries       int
}

func (f *fakeMetrics) RecordRequest(context.Context, string, string, string, time.Duration) {}

func (f *fakeMetrics) RecordRequestBodyTooLarge(context.Context) {}

func (f *fakeMetrics) RecordCorpusLoad(_ context.Context, outcome string, _ int) {
	f.corpus = append(f.corpus, outcome)
}

func (f *fakeMetrics) RecordClassification(_ context.Context, label string) {
	f.classifications = append(f.classifications, label)
}

func (f *fakeMetrics) RecordSummary(context.Context, time.Duration) {
	f.summaries++
}

func (f *fakeMetrics) RecordRewrite(_ context.Context, outcome string, _ time.Duration) {
	f.rewrites = append(f.rewrites, outcome)
}
