package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/formbricks/insight/internal/errors"
	"github.com/formbricks/insight/internal/models"
)

func TestVaderClassifier_Classify(t *testing.T) {
	c := NewVaderClassifier()

	tests := []struct {
		name  string
		text  string
		label string
	}{
		{"positive", "I love this product, it is great!", models.SentimentPositive},
		{"negative", "This is terrible and the support was awful.", models.SentimentNegative},
		{"neutral", "The box is blue.", models.SentimentNeutral},
		{"markdown", "**Great** [docs](https://example.com/docs)!", models.SentimentPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := c.Classify(context.Background(), tt.text)
			require.NoError(t, err)

			assert.Equal(t, tt.label, res.Label)
			assert.GreaterOrEqual(t, res.Score, 0.0)
			assert.LessOrEqual(t, res.Score, 1.0)
		})
	}
}

func TestVaderClassifier_SharesAnalyzer(t *testing.T) {
	assert.Same(t, sharedAnalyzer(), sharedAnalyzer())
}

func TestVaderClassifier_PanicBecomesError(t *testing.T) {
	c := NewVaderClassifier()
	c.compound = func(string) float64 { panic("lexicon corrupted") }

	_, err := c.Classify(context.Background(), "anything")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrClassification))
	assert.Contains(t, err.Error(), "lexicon corrupted")
}

func TestVaderClassifier_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewVaderClassifier().Classify(ctx, "fine")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name     string
		compound float64
		want     models.SentimentResult
	}{
		{"strong positive", 0.8, models.SentimentResult{Label: "positive", Score: 0.9}},
		{"at threshold", 0.2, models.SentimentResult{Label: "positive", Score: 0.6}},
		{"strong negative", -0.6, models.SentimentResult{Label: "negative", Score: 0.8}},
		{"neutral", 0.1, models.SentimentResult{Label: "neutral", Score: 0.9}},
		{"zero", 0, models.SentimentResult{Label: "neutral", Score: 1}},
		{"clamped", 1.5, models.SentimentResult{Label: "positive", Score: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Label(tt.compound, DefaultThreshold)

			assert.Equal(t, tt.want.Label, got.Label)
			assert.InDelta(t, tt.want.Score, got.Score, 1e-9)
		})
	}
}

func TestWithThreshold(t *testing.T) {
	c := NewVaderClassifier(WithThreshold(0.5))
	c.compound = func(string) float64 { return 0.3 }

	res, err := c.Classify(context.Background(), "ok")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentNeutral, res.Label)
}

func TestMarkdownToText(t *testing.T) {
	assert.Equal(t, "Great docs and more", MarkdownToText("# Great\n\n[docs](https://example.com) and *more*"))
	assert.Equal(t, "see", MarkdownToText("see https://example.com/x"))
	assert.Equal(t, "a & b", MarkdownToText("a &amp; b"))
}

func TestRemoveLinks(t *testing.T) {
	assert.Equal(t, "read the guide", RemoveLinks("read [the guide](https://example.com/g)"))
	assert.Equal(t, "visit ", RemoveLinks("visit www.example.com"))
}
