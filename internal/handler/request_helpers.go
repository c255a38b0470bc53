package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/babilu-online/lootbox-contract/internal/logger"
)

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidURLParam       = "Invalid %s parameter"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// If this function returns an error, the HTTP response has already been written and the handler
// should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		validationErrs := FormatValidationError(err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: validationErrs,
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetURLParamUint32 retrieves a numeric URL parameter from the chi route context.
// If the parameter is missing or not a base-10 uint32, it writes an error response
// and returns false; the handler should return.
func GetURLParamUint32(r *http.Request, w http.ResponseWriter, paramName string) (uint32, bool) {
	raw := chi.URLParam(r, paramName)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Invalid URL parameter", "param", paramName, "value", raw)
		http.Error(w, fmt.Sprintf(ErrMsgInvalidURLParam, paramName), http.StatusBadRequest)
		return 0, false
	}
	return uint32(value), true
}
