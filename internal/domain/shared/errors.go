package shared

import (
	"fmt"
	"strings"
)

// DomainError represents a domain-level error with a machine-readable code,
// a human-readable message and optional structured context for the UI.
type DomainError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// WithContext returns a copy of the error carrying an additional context value
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	ctx := make(map[string]interface{}, len(e.Context)+1)
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &DomainError{Code: e.Code, Message: e.Message, Context: ctx}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes for the workflow core taxonomy.
const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeNotFound              = "NOT_FOUND"
	CodeBusinessRuleViolation = "BUSINESS_RULE_VIOLATION"
	CodeInvalidTransition     = "INVALID_TRANSITION"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeConcurrencyConflict   = "CONCURRENCY_CONFLICT"
	CodeSystemError           = "SYSTEM_ERROR"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// NewValidationError creates a validation error listing every failing field,
// not just the first one.
func NewValidationError(fields []FieldError) *DomainError {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Field
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("Validation failed for: %s", strings.Join(names, ", ")),
		Context: map[string]interface{}{"fields": fields},
	}
}

// NewNotFoundError creates a not-found error naming the missing resource.
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Context: map[string]interface{}{"resource": resource},
	}
}

// NewBusinessRuleViolation creates a guard-failure error with structured context
// (counts, current/attempted values) so the caller can render an actionable message.
func NewBusinessRuleViolation(rule, message string, context map[string]interface{}) *DomainError {
	if context == nil {
		context = make(map[string]interface{})
	}
	context["rule"] = rule
	return &DomainError{
		Code:    CodeBusinessRuleViolation,
		Message: message,
		Context: context,
	}
}

// NewInvalidTransition creates an illegal-status-change error carrying the
// attempted pair and the legal alternatives.
func NewInvalidTransition(entity, from, to string, legal []string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("%s cannot change status from %s to %s", entity, from, to),
		Context: map[string]interface{}{
			"from":  from,
			"to":    to,
			"legal": legal,
		},
	}
}

// NewConcurrencyConflict creates a version-check failure for an entity that
// was modified by another transaction between read and write.
func NewConcurrencyConflict(entity string) *DomainError {
	return &DomainError{
		Code:    CodeConcurrencyConflict,
		Message: fmt.Sprintf("%s was modified by another transaction, retry the operation", entity),
		Context: map[string]interface{}{"entity": entity},
	}
}

// NewSystemError wraps an unexpected failure from a store call or event handler.
func NewSystemError(message string, cause error) *DomainError {
	ctx := map[string]interface{}{}
	if cause != nil {
		ctx["cause"] = cause.Error()
	}
	return &DomainError{
		Code:    CodeSystemError,
		Message: message,
		Context: ctx,
	}
}

// IsCode reports whether err is a DomainError with the given code.
func IsCode(err error, code string) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}
