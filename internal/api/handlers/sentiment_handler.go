package handlers

import (
	"context"
	"net/http"

	"github.com/formbricks/insight/internal/api/response"
	"github.com/formbricks/insight/internal/api/validation"
	"github.com/formbricks/insight/internal/models"
)

// SentimentService defines the interface for sentiment classification.
type SentimentService interface {
	AnalyzeSentiment(ctx context.Context, text string) (*models.SentimentResult, error)
}

// SentimentHandler handles HTTP requests for sentiment analysis
type SentimentHandler struct {
	service SentimentService
}

// NewSentimentHandler creates a new sentiment handler
func NewSentimentHandler(service SentimentService) *SentimentHandler {
	return &SentimentHandler{service: service}
}

// Analyze handles POST /analyze_feedback
// @Summary Classify the sentiment of a text
// @Tags Sentiment
// @Accept json
// @Produce json
// @Param request body AnalyzeFeedbackRequest true "Text to classify"
// @Success 200 {object} SentimentResult
// @Failure 413 {object} ProblemDetails "Body exceeds the size limit"
// @Failure 422 {object} ProblemDetails "Body is not JSON or text is missing"
// @Failure 500 {object} ProblemDetails "Classifier failed"
// @Router /analyze_feedback [post]
func (h *SentimentHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeFeedbackRequest
	if err := validation.DecodeJSONBody(r, &req); err != nil {
		validation.RespondRequestError(w, err)
		return
	}

	result, err := h.service.AnalyzeSentiment(r.Context(), *req.Text)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
