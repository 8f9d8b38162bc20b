package domain

import (
	"fmt"
	"time"
)

// APIError represents a standardized error response
type APIError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes for different failure scenarios
const (
	ErrInvalidInput   = "INVALID_INPUT"
	ErrExtraction     = "EXTRACTION_ERROR"
	ErrEvaluation     = "EVALUATION_ERROR"
	ErrStorage        = "STORAGE_ERROR"
	ErrNotFoundCode   = "NOT_FOUND"
	ErrRateLimit      = "RATE_LIMIT_EXCEEDED"
	ErrInternalServer = "INTERNAL_SERVER_ERROR"
)

// InputError represents malformed structured input handed to the safety
// engine: a missing required field or a date outside the calendar-date
// grammar. The engine does not repair bad extraction output; these propagate
// to the caller without retry or recovery.
type InputError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// Error implements the error interface
func (e *InputError) Error() string {
	return fmt.Sprintf("malformed input for field '%s': %s", e.Field, e.Message)
}

// RuleDefinitionError represents a malformed entry in the static rule
// catalog. It is raised at catalog construction only, never during
// evaluation, since the catalog is immutable after load.
type RuleDefinitionError struct {
	RuleID  string `json:"rule_id"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *RuleDefinitionError) Error() string {
	return fmt.Sprintf("rule definition '%s': %s", e.RuleID, e.Message)
}

// NewAPIError creates a new APIError with timestamp
func NewAPIError(code, message, details, requestID string) *APIError {
	return &APIError{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
	}
}

// NewInputError creates a new InputError
func NewInputError(field, message string, value interface{}) *InputError {
	return &InputError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// NewRuleDefinitionError creates a new RuleDefinitionError
func NewRuleDefinitionError(ruleID, message string) *RuleDefinitionError {
	return &RuleDefinitionError{
		RuleID:  ruleID,
		Message: message,
	}
}
