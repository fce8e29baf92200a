// Package httpapi is the HTTP boundary: routing, middleware, and the JSON
// handlers in front of the service layer.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/toolly/toolly/internal/common"
	"github.com/toolly/toolly/internal/logging"
	"github.com/toolly/toolly/internal/server/services"
)

type errorResponse struct {
	Error  string                `json:"error"`
	Fields []services.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps service-layer errors onto the boundary's status codes.
// Unknown errors become a generic 500; their details stay in the server log.
func writeError(ctx context.Context, w http.ResponseWriter, logger logging.Logger, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: ve.Fields})
	case errors.Is(err, common.ErrorAlreadyExists):
		writeErrorMessage(w, http.StatusBadRequest, "username already exists")
	case errors.Is(err, common.ErrorNotFound):
		writeErrorMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrInvalidCredentials):
		writeErrorMessage(w, http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		writeErrorMessage(w, http.StatusUnauthorized, "invalid or expired token")
	case errors.Is(err, common.ErrInvalidTOTPCode):
		writeErrorMessage(w, http.StatusUnauthorized, "invalid authentication code")
	case errors.Is(err, common.ErrTOTPNotEnabled):
		writeErrorMessage(w, http.StatusBadRequest, "two-factor authentication is not enabled")
	default:
		logger.Error(ctx, "request failed", "error", err)
		writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
