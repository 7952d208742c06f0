package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prn-tf/hijri-users/internal/hijri"
	"github.com/prn-tf/hijri-users/internal/service"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:     msg,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// writeServiceError maps a service error to its HTTP status. Internal
// failures are reported without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = service.ErrInternalError.Error()
	}
	writeError(w, r, status, msg)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidBirthDate),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, hijri.ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, hijri.ErrConversion):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
