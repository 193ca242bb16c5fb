package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formbricks/insight/internal/api/response"
	apperrors "github.com/formbricks/insight/internal/errors"
	"github.com/formbricks/insight/internal/models"
)

type mockFeedbackService struct {
	listFunc func(ctx context.Context) ([]models.FeedbackRecord, error)
}

func (m *mockFeedbackService) ListFeedback(ctx context.Context) ([]models.FeedbackRecord, error) {
	return m.listFunc(ctx)
}

type mockSentimentService struct {
	analyzeFunc func(ctx context.Context, text string) (*models.SentimentResult, error)
}

func (m *mockSentimentService) AnalyzeSentiment(ctx context.Context, text string) (*models.SentimentResult, error) {
	return m.analyzeFunc(ctx, text)
}

type mockSummaryService struct {
	summarizeFunc func(ctx context.Context, opts models.SummaryOptions) (*models.SummaryResponse, error)
}

func (m *mockSummaryService) Summarize(ctx context.Context, opts models.SummaryOptions) (*models.SummaryResponse, error) {
	return m.summarizeFunc(ctx, opts)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) response.ProblemDetails {
	t.Helper()

	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var problem response.ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))

	return problem
}

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler()

	t.Run("root", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.Root(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"AI Client Insight API is running"}`, rec.Body.String())
	})

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.Check(rec, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})
}

func TestFeedbackHandler_List(t *testing.T) {
	t.Run("returns records with clean_feedback", func(t *testing.T) {
		svc := &mockFeedbackService{listFunc: func(context.Context) ([]models.FeedbackRecord, error) {
			return []models.FeedbackRecord{{
				Columns:       []string{"id", "feedback"},
				Values:        map[string]string{"id": "1", "feedback": "Great!!  App"},
				CleanFeedback: "great. app",
			}}, nil
		}}

		rec := httptest.NewRecorder()
		NewFeedbackHandler(svc).List(rec, httptest.NewRequest(http.MethodGet, "/feedback", http.NoBody))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"id":"1","feedback":"Great!!  App","clean_feedback":"great. app"}]`, rec.Body.String())
	})

	t.Run("empty corpus is an empty array", func(t *testing.T) {
		svc := &mockFeedbackService{listFunc: func(context.Context) ([]models.FeedbackRecord, error) {
			return nil, nil
		}}

		rec := httptest.NewRecorder()
		NewFeedbackHandler(svc).List(rec, httptest.NewRequest(http.MethodGet, "/feedback", http.NoBody))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("corpus error returns 500 with detail", func(t *testing.T) {
		svc := &mockFeedbackService{listFunc: func(context.Context) ([]models.FeedbackRecord, error) {
			return nil, apperrors.NewCorpusError("data/feedback_raw.csv", os.ErrNotExist)
		}}

		rec := httptest.NewRecorder()
		NewFeedbackHandler(svc).List(rec, httptest.NewRequest(http.MethodGet, "/feedback", http.NoBody))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		problem := decodeProblem(t, rec)
		assert.Contains(t, problem.Detail, "data/feedback_raw.csv")
	})
}

func TestSentimentHandler_Analyze(t *testing.T) {
	positive := &mockSentimentService{analyzeFunc: func(_ context.Context, text string) (*models.SentimentResult, error) {
		return &models.SentimentResult{Label: models.SentimentPositive, Score: 0.9}, nil
	}}

	t.Run("success", func(t *testing.T) {
		var got string
		svc := &mockSentimentService{analyzeFunc: func(_ context.Context, text string) (*models.SentimentResult, error) {
			got = text
			return &models.SentimentResult{Label: models.SentimentPositive, Score: 0.9}, nil
		}}

		req := httptest.NewRequest(http.MethodPost, "/analyze_feedback", strings.NewReader(`{"text":"I love it"}`))
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		NewSentimentHandler(svc).Analyze(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "I love it", got)
		assert.JSONEq(t, `{"label":"positive","score":0.9}`, rec.Body.String())
	})

	for _, body := range []string{`not json`, `{}`, `{"text":5}`, `{"text":null}`} {
		t.Run("rejects "+body, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/analyze_feedback", strings.NewReader(body))

			rec := httptest.NewRecorder()
			NewSentimentHandler(positive).Analyze(rec, req)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, "Validation Error", decodeProblem(t, rec).Title)
		})
	}

	t.Run("classifier error returns 500", func(t *testing.T) {
		svc := &mockSentimentService{analyzeFunc: func(context.Context, string) (*models.SentimentResult, error) {
			return nil, apperrors.NewClassificationError("lexicon unavailable")
		}}

		req := httptest.NewRequest(http.MethodPost, "/analyze_feedback", strings.NewReader(`{"text":"hi"}`))

		rec := httptest.NewRecorder()
		NewSentimentHandler(svc).Analyze(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, decodeProblem(t, rec).Detail, "lexicon unavailable")
	})
}

func TestSummaryHandler_Get(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var got models.SummaryOptions
		svc := &mockSummaryService{summarizeFunc: func(_ context.Context, opts models.SummaryOptions) (*models.SummaryResponse, error) {
			got = opts
			return &models.SummaryResponse{Summary: "Great product."}, nil
		}}

		rec := httptest.NewRecorder()
		NewSummaryHandler(svc).Get(rec, httptest.NewRequest(http.MethodGet, "/summary", http.NoBody))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, models.SummaryOptions{MaxSentences: 2, MaxWords: 40}, got)
		assert.JSONEq(t, `{"summary":"Great product."}`, rec.Body.String())
	})

	t.Run("passes query options", func(t *testing.T) {
		var got models.SummaryOptions
		svc := &mockSummaryService{summarizeFunc: func(_ context.Context, opts models.SummaryOptions) (*models.SummaryResponse, error) {
			got = opts
			return &models.SummaryResponse{Summary: "x"}, nil
		}}

		rec := httptest.NewRecorder()
		NewSummaryHandler(svc).Get(rec, httptest.NewRequest(http.MethodGet, "/summary?humanize=true&max_sentences=3&max_words=25", http.NoBody))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, models.SummaryOptions{Humanize: true, MaxSentences: 3, MaxWords: 25}, got)
	})

	for _, query := range []string{"max_sentences=abc", "max_sentences=0", "max_words=0", "max_words=-5", "humanize=perhaps"} {
		t.Run("rejects "+query, func(t *testing.T) {
			called := false
			svc := &mockSummaryService{summarizeFunc: func(context.Context, models.SummaryOptions) (*models.SummaryResponse, error) {
				called = true
				return &models.SummaryResponse{}, nil
			}}

			rec := httptest.NewRecorder()
			NewSummaryHandler(svc).Get(rec, httptest.NewRequest(http.MethodGet, "/summary?"+query, http.NoBody))

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.False(t, called)
		})
	}

	t.Run("corpus error returns 500", func(t *testing.T) {
		svc := &mockSummaryService{summarizeFunc: func(context.Context, models.SummaryOptions) (*models.SummaryResponse, error) {
			return nil, apperrors.NewCorpusError("missing.csv", os.ErrNotExist)
		}}

		rec := httptest.NewRecorder()
		NewSummaryHandler(svc).Get(rec, httptest.NewRequest(http.MethodGet, "/summary", http.NoBody))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, decodeProblem(t, rec).Detail, "missing.csv")
	})

	t.Run("unexpected error hides detail", func(t *testing.T) {
		svc := &mockSummaryService{summarizeFunc: func(context.Context, models.SummaryOptions) (*models.SummaryResponse, error) {
			return nil, errors.New("boom")
		}}

		rec := httptest.NewRecorder()
		NewSummaryHandler(svc).Get(rec, httptest.NewRequest(http.MethodGet, "/summary", http.NoBody))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "An unexpected error occurred", decodeProblem(t, rec).Detail)
	})
}
