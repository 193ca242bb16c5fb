package handlers

import (
	"context"
	"net/http"

	"github.com/formbricks/insight/internal/api/response"
	"github.com/formbricks/insight/internal/api/validation"
	"github.com/formbricks/insight/internal/models"
)

// SummaryService defines the interface for summarizing the feedback corpus.
type SummaryService interface {
	Summarize(ctx context.Context, opts models.SummaryOptions) (*models.SummaryResponse, error)
}

// SummaryHandler handles HTTP requests for the corpus summary
type SummaryHandler struct {
	service SummaryService
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(service SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// Get handles GET /summary
// @Summary Summarize all feedback
// @Description Extractive summary of the feedback corpus, optionally rewritten by the language model
// @Tags Summary
// @Produce json
// @Param humanize query bool false "Rewrite the summary"
// @Param max_sentences query int false "Sentences to keep (1-100, default 2)"
// @Param max_words query int false "Word budget for the rewrite (1-500, default 40)"
// @Success 200 {object} SummaryResponse
// @Failure 422 {object} ProblemDetails "Invalid query parameters"
// @Failure 500 {object} ProblemDetails "Feedback file could not be loaded"
// @Router /summary [get]
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	var query models.SummaryQuery
	if err := validation.ValidateAndDecodeQueryParams(r, &query); err != nil {
		validation.RespondValidationError(w, err)
		return
	}

	result, err := h.service.Summarize(r.Context(), query.Options())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
