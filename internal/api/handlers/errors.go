package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/formbricks/insight/internal/api/response"
	"github.com/formbricks/insight/internal/api/validation"
	apperrors "github.com/formbricks/insight/internal/errors"
)

// respondServiceError maps a service error to its problem response. Corpus and
// classifier failures carry their message as detail.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		validation.RespondValidationError(w, err)
	case errors.Is(err, apperrors.ErrCorpus), errors.Is(err, apperrors.ErrClassification):
		slog.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
		response.RespondInternalServerError(w, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Unexpected error", "path", r.URL.Path, "error", err)
		response.RespondInternalServerError(w, "An unexpected error occurred")
	}
}
