package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// SuccessResponse represents a successful API response
type SuccessResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
	Meta   *Meta  `json:"meta,omitempty"`
}

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Status string       `json:"status"`
	Error  ErrorDetails `json:"error"`
}

// ErrorDetails contains error information
type ErrorDetails struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// RespondSuccess sends a successful JSON response
func RespondSuccess(w http.ResponseWriter, statusCode int, data any, meta *Meta) {
	writeJSON(w, statusCode, SuccessResponse{
		Status: "success",
		Data:   data,
		Meta:   meta,
	})
}

// RespondError sends an error JSON response
func RespondError(w http.ResponseWriter, statusCode int, errorCode, message string, details any) {
	writeJSON(w, statusCode, ErrorResponse{
		Status: "error",
		Error: ErrorDetails{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode response", slog.Any("error", err))
	}
}

// RespondValidationError sends a validation error response
func RespondValidationError(w http.ResponseWriter, fields map[string]string) {
	RespondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", fields)
}

// Helper functions for common errors
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, "BAD_REQUEST", message, nil)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func RespondNotFound(w http.ResponseWriter, resource string) {
	RespondError(w, http.StatusNotFound, "NOT_FOUND", resource+" not found", nil)
}

func RespondConflict(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusConflict, code, message, nil)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
}
