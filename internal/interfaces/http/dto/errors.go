package dto

import (
	"net/http"

	"github.com/handwerkos/backend/internal/domain/shared"
)

// GetHTTPStatus maps domain error codes to HTTP status codes.
func GetHTTPStatus(code string) int {
	switch code {
	case shared.CodeValidation:
		return http.StatusBadRequest
	case shared.CodeNotFound:
		return http.StatusNotFound
	case shared.CodeUnauthorized:
		return http.StatusForbidden
	case shared.CodeConcurrencyConflict:
		return http.StatusConflict
	case shared.CodeBusinessRuleViolation, shared.CodeInvalidTransition:
		return http.StatusUnprocessableEntity
	case shared.CodeSystemError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
