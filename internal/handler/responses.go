package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/babilu-online/lootbox-contract/internal/domain"
	"github.com/babilu-online/lootbox-contract/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Log the error - we can't write to response at this point since headers are sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	// Write the buffer to the response
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped error response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error(opName+" failed", "error", err)
	statusCode, userMsg := mapServiceErrorToUserMessage(err)
	respondError(w, statusCode, userMsg)
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError     = "Authentication failed. Please check your API key."
	ErrMsgServerErrorError    = "Server error occurred. Please try again."

	// Option configuration messages
	ErrMsgOptionOutOfRangeError    = "Option does not exist"
	ErrMsgOptionNotConfiguredError = "Option is not configured"
	ErrMsgOptionDisabledError      = "Option is disabled"
	ErrMsgClassOutOfRangeError     = "Class is outside the option's configured range"

	// Minting messages
	ErrMsgEmptyClassPoolError     = "No token ids registered for a class in this option"
	ErrMsgInsufficientSupplyError = "Not enough token supply to fill the request"
	ErrMsgOpenInProgressError     = "A box opening is already in progress. Try again shortly"
	ErrMsgUnauthorizedError       = "Not authorized to mint the requested token"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	// Check for specific domain errors
	switch {
	case errors.Is(err, domain.ErrOptionOutOfRange):
		return http.StatusNotFound, ErrMsgOptionOutOfRangeError
	case errors.Is(err, domain.ErrOptionNotConfigured):
		return http.StatusNotFound, ErrMsgOptionNotConfiguredError
	case errors.Is(err, domain.ErrOptionDisabled):
		return http.StatusConflict, ErrMsgOptionDisabledError
	case errors.Is(err, domain.ErrClassOutOfRange):
		return http.StatusBadRequest, ErrMsgClassOutOfRangeError
	case errors.Is(err, domain.ErrEmptyClassPool):
		return http.StatusConflict, ErrMsgEmptyClassPoolError
	case errors.Is(err, domain.ErrInsufficientSupply):
		return http.StatusConflict, ErrMsgInsufficientSupplyError
	case errors.Is(err, domain.ErrOpenInProgress):
		return http.StatusConflict, ErrMsgOpenInProgressError
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, ErrMsgUnauthorizedError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
