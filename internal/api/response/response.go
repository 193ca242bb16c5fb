// Package response writes the API's JSON bodies and its RFC 7807 problem documents.
package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

const (
	jsonContentType    = "application/json"
	problemContentType = "application/problem+json"
)

// ErrorDetail points at one offending request field.
type ErrorDetail struct {
	Location string `json:"location,omitempty"`
	Message  string `json:"message,omitempty"`
	Value    any    `json:"value,omitempty"`
}

// ProblemDetails is an RFC 7807 problem document.
type ProblemDetails struct {
	Type     string        `json:"type,omitempty"`
	Title    string        `json:"title"`
	Status   int           `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
}

// NewProblem returns an untyped problem titled with the status text of status.
func NewProblem(status int, detail string) ProblemDetails {
	return ProblemDetails{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// RespondJSON writes data as a JSON body with status.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	write(w, status, jsonContentType, data)
}

// RespondProblem writes problem with its own Status.
func RespondProblem(w http.ResponseWriter, problem ProblemDetails) {
	write(w, problem.Status, problemContentType, problem)
}

// RespondInternalServerError reports a failed corpus load or classification.
func RespondInternalServerError(w http.ResponseWriter, detail string) {
	RespondProblem(w, NewProblem(http.StatusInternalServerError, detail))
}

// RespondBodyTooLarge reports a request body over limit bytes.
func RespondBodyTooLarge(w http.ResponseWriter, limit int64) {
	RespondProblem(w, NewProblem(http.StatusRequestEntityTooLarge,
		fmt.Sprintf("request body must not exceed %d bytes", limit)))
}

func write(w http.ResponseWriter, status int, contentType string, body any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode response body", "content_type", contentType, "error", err)
	}
}
