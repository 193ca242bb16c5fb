package handlers

import (
	"net/http"

	"github.com/formbricks/insight/internal/api/response"
	"github.com/formbricks/insight/internal/models"
)

// RootMessage is the liveness message served at GET /.
const RootMessage = "AI Client Insight API is running"

// HealthHandler handles liveness and health check requests.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, models.MessageResponse{Message: RootMessage})
}

// Check handles GET /health.
func (h *HealthHandler) Check(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}
