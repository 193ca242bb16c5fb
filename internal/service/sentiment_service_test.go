package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/formbricks/insight/internal/errors"
	"github.com/formbricks/insight/internal/models"
)

func TestSentimentService_AnalyzeSentiment(t *testing.T) {
	classifier := &fakeClassifier{result: models.SentimentResult{Label: "POSITIVE", Score: 0.98}}
	metrics := &fakeMetrics{}
	svc := NewSentimentService(classifier, metrics)

	res, err := svc.AnalyzeSentiment(context.Background(), "I love it")
	require.NoError(t, err)

	assert.Equal(t, "positive", res.Label)
	assert.InDelta(t, 0.98, res.Score, 1e-9)
	assert.Equal(t, []string{"I love it"}, classifier.texts)
	assert.Equal(t, []string{"positive"}, metrics.classifications)
}

func TestSentimentService_ClassifierErrorNotRetried(t *testing.T) {
	classifier := &fakeClassifier{err: apperrors.NewClassificationError("model unavailable")}
	svc := NewSentimentService(classifier, nil)

	res, err := svc.AnalyzeSentiment(context.Background(), "text")

	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, apperrors.ErrClassification))
	assert.Contains(t, err.Error(), "model unavailable")
	assert.Len(t, classifier.texts, 1)
}
