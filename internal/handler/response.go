// Package handler translates HTTP requests into service calls and domain
// errors back into the portal's JSON envelope.
//
// Every response has one of two shapes:
//
//	{"status":"success","message":"...", ...}
//	{"status":"error","error":"<kind>","message":"...", ...}
//
// The frontend branches on status and, for errors, on the machine-readable
// kind — it never parses the human message, which may be Bengali.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shahriar/govjobs/internal/apperror"
)

// ErrorResponse is the envelope for every failed request.
type ErrorResponse struct {
	Status  string `json:"status"` // always "error"
	Error   string `json:"error"`  // machine-readable kind
	Message string `json:"message"`
	Field   string `json:"field,omitempty"` // offending form field, if any
	Role    string `json:"role,omitempty"`  // offending attachment role(s), if any
}

// writeJSON sends a JSON response with the given status code. Headers must
// be set before the first body write.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers already sent; nothing to do but log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeSuccess sends the success envelope with any extra fields merged in.
func writeSuccess(w http.ResponseWriter, status int, message string, extra map[string]any) {
	body := map[string]any{
		"status":  "success",
		"message": message,
	}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, status, body)
}

// writeError maps a domain error onto the HTTP surface.
//
// The service layer knows nothing about status codes; this switch is the
// single place where the failure taxonomy meets HTTP.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		kind := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrDuplicateIdentity):
			status = http.StatusConflict
			kind = "duplicate_identity"
		case errors.Is(err, apperror.ErrDuplicateCircular):
			status = http.StatusConflict
			kind = "duplicate_circular"
		case errors.Is(err, apperror.ErrInvalidCredentials):
			status = http.StatusUnauthorized
			kind = "invalid_credentials"
		case errors.Is(err, apperror.ErrUnauthenticated):
			status = http.StatusUnauthorized
			kind = "unauthenticated"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			kind = "forbidden"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			kind = "not_found"
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			kind = "invalid_submission"
		case errors.Is(err, apperror.ErrUnsupportedType):
			status = http.StatusBadRequest
			kind = "unsupported_type"
		case errors.Is(err, apperror.ErrPayloadTooLarge):
			status = http.StatusRequestEntityTooLarge
			kind = "payload_too_large"
		case errors.Is(err, apperror.ErrAttachmentRejected):
			status = http.StatusUnprocessableEntity
			kind = "attachment_rejected"
		case errors.Is(err, apperror.ErrStorage):
			status = http.StatusInternalServerError
			kind = "storage_failure"
		}

		writeJSON(w, status, ErrorResponse{
			Status:  "error",
			Error:   kind,
			Message: appErr.Message,
			Field:   appErr.Field,
			Role:    appErr.Role,
		})
		return
	}

	// Untyped error. Keep the raw message out of the response — it can
	// carry SQL or filesystem detail.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Status:  "error",
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
