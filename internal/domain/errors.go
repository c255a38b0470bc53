package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Option errors
	ErrMsgOptionOutOfRange    = "option out of range"
	ErrMsgOptionNotConfigured = "option not configured"
	ErrMsgOptionDisabled      = "option is disabled"

	// Class/pool errors
	ErrMsgClassOutOfRange = "class out of range"
	ErrMsgEmptyClassPool  = "class has no registered token ids"

	// Supply errors
	ErrMsgInsufficientSupply = "insufficient token supply"

	// Concurrency errors
	ErrMsgOpenInProgress = "a box opening is already in progress"

	// Authorization errors
	ErrMsgUnauthorized = "unauthorized"

	// Validation errors (used for partial matches)
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Option errors
	ErrOptionOutOfRange    = errors.New(ErrMsgOptionOutOfRange)
	ErrOptionNotConfigured = errors.New(ErrMsgOptionNotConfigured)
	ErrOptionDisabled      = errors.New(ErrMsgOptionDisabled)

	// Class/pool errors
	ErrClassOutOfRange = errors.New(ErrMsgClassOutOfRange)
	ErrEmptyClassPool  = errors.New(ErrMsgEmptyClassPool)

	// Supply errors
	ErrInsufficientSupply = errors.New(ErrMsgInsufficientSupply)

	// Concurrency errors
	ErrOpenInProgress = errors.New(ErrMsgOpenInProgress)

	// Authorization errors
	ErrUnauthorized = errors.New(ErrMsgUnauthorized)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
