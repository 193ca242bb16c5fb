package handlers

import (
	"context"
	"net/http"

	"github.com/formbricks/insight/internal/api/response"
	"github.com/formbricks/insight/internal/models"
)

// FeedbackService defines the interface for reading the cleaned feedback corpus.
type FeedbackService interface {
	ListFeedback(ctx context.Context) ([]models.FeedbackRecord, error)
}

// FeedbackHandler handles HTTP requests for feedback records
type FeedbackHandler struct {
	service FeedbackService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(service FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// List handles GET /feedback
// @Summary List feedback records
// @Description Reads the feedback file and returns every row with its clean_feedback column
// @Tags Feedback
// @Produce json
// @Success 200 {array} FeedbackRecord
// @Failure 500 {object} ProblemDetails "Feedback file could not be loaded"
// @Router /feedback [get]
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListFeedback(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if records == nil {
		records = []models.FeedbackRecord{}
	}

	response.RespondJSON(w, http.StatusOK, records)
}
