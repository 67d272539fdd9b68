// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError carries a machine-readable error payload
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

func writeSuccess(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	writeJSON(w, logger, status, APIResponse{Success: true, Data: data})
}

// writeError maps an application error to its HTTP status and payload
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.NewInternalError("An unexpected error occurred").WithCause(err)
	}

	response := APIResponse{
		Success: false,
		Error: &APIError{
			Code:      string(appErr.Code),
			Message:   appErr.Message,
			Details:   appErr.Details,
			RequestID: chimiddleware.GetReqID(r.Context()),
		},
	}
	writeJSON(w, logger, appErr.StatusCode(), response)
}

// urlUUID parses a UUID path parameter; the zero UUID signals a parse
// failure and the handler responds 400.
func urlUUID(w http.ResponseWriter, r *http.Request, logger *zap.Logger, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeError(w, r, logger, errors.NewValidationError(param+" must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// urlInt parses an integer path parameter
func urlInt(w http.ResponseWriter, r *http.Request, logger *zap.Logger, param string) (int, bool) {
	value, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil {
		writeError(w, r, logger, errors.NewValidationError(param+" must be an integer"))
		return 0, false
	}
	return value, true
}

// decodeBody decodes a JSON request body
func decodeBody(w http.ResponseWriter, r *http.Request, logger *zap.Logger, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, r, logger, errors.NewValidationError("request body must be valid JSON"))
		return false
	}
	return true
}
