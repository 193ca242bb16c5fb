package models

// MessageResponse carries a plain status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
