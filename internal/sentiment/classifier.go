// Package sentiment classifies feedback text as positive, negative or neutral.
package sentiment

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/jonreiter/govader"

	apperrors "github.com/formbricks/insight/internal/errors"
	"github.com/formbricks/insight/internal/models"
)

// DefaultThreshold is the compound score magnitude needed for a polar label.
const DefaultThreshold = 0.20

// Classifier maps a text to a sentiment label and confidence.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.SentimentResult, error)
}

var (
	analyzerOnce     sync.Once
	analyzerInstance *govader.SentimentIntensityAnalyzer
)

// sharedAnalyzer returns the process-wide VADER analyzer, loading its lexicon
// on first use.
func sharedAnalyzer() *govader.SentimentIntensityAnalyzer {
	analyzerOnce.Do(func() {
		analyzerInstance = govader.NewSentimentIntensityAnalyzer()
	})

	return analyzerInstance
}

// VaderClassifier scores text with the VADER lexicon model.
type VaderClassifier struct {
	threshold float64
	compound  func(text string) float64
}

// Option configures a VaderClassifier.
type Option func(*VaderClassifier)

// WithThreshold sets the compound score magnitude needed for a polar label.
func WithThreshold(threshold float64) Option {
	return func(c *VaderClassifier) {
		c.threshold = threshold
	}
}

// NewVaderClassifier creates a classifier backed by the shared analyzer.
func NewVaderClassifier(opts ...Option) *VaderClassifier {
	c := &VaderClassifier{
		threshold: DefaultThreshold,
		compound: func(text string) float64 {
			return sharedAnalyzer().PolarityScores(text).Compound
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Classify labels text. The confidence is the probability mass the compound
// score puts on the chosen label and is always within [0, 1].
func (c *VaderClassifier) Classify(ctx context.Context, text string) (result models.SentimentResult, err error) {
	if err := ctx.Err(); err != nil {
		return models.SentimentResult{}, fmt.Errorf("classify: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			err = apperrors.NewClassificationError(fmt.Sprintf("sentiment model failed: %v", r))
		}
	}()

	score := c.compound(MarkdownToText(text))
	if math.IsNaN(score) {
		return models.SentimentResult{}, apperrors.NewClassificationError("sentiment model returned NaN")
	}

	return Label(score, c.threshold), nil
}

// Label turns a VADER compound score in [-1, 1] into a result.
func Label(compound, threshold float64) models.SentimentResult {
	compound = math.Max(-1, math.Min(1, compound))

	switch {
	case compound >= threshold:
		return models.SentimentResult{Label: models.SentimentPositive, Score: (1 + compound) / 2}
	case compound <= -threshold:
		return models.SentimentResult{Label: models.SentimentNegative, Score: (1 - compound) / 2}
	default:
		return models.SentimentResult{Label: models.SentimentNeutral, Score: 1 - math.Abs(compound)}
	}
}
