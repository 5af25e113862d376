package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// Auth error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
)

// Resource error codes
const (
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeAlreadyExists    = "ALREADY_EXISTS"
	ErrCodeDuplicateRequest = "DUPLICATE_REQUEST"
)

// Business rule error codes. The allocation codes mirror the domain layer so
// clients can branch on which validation failed.
const (
	ErrCodeInvalidInput            = "INVALID_INPUT"
	ErrCodeInvalidState            = "INVALID_STATE"
	ErrCodeInvalidRequest          = "INVALID_REQUEST"
	ErrCodeInsufficientStock       = "INSUFFICIENT_STOCK"
	ErrCodeAllocationMismatch      = "ALLOCATION_MISMATCH"
	ErrCodeIncompleteAllocationRow = "INCOMPLETE_ALLOCATION_ROW"
	ErrCodeAllocationInvariant     = "ALLOCATION_INVARIANT_VIOLATION"
	ErrCodeStaleQuote              = "STALE_QUOTE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeAlreadyExists:    http.StatusConflict,
	ErrCodeDuplicateRequest: http.StatusConflict,

	ErrCodeInvalidInput:            http.StatusBadRequest,
	ErrCodeInvalidState:            http.StatusUnprocessableEntity,
	ErrCodeInvalidRequest:          http.StatusBadRequest,
	ErrCodeInsufficientStock:       http.StatusUnprocessableEntity,
	ErrCodeAllocationMismatch:      http.StatusUnprocessableEntity,
	ErrCodeIncompleteAllocationRow: http.StatusUnprocessableEntity,
	ErrCodeAllocationInvariant:     http.StatusInternalServerError,
	ErrCodeStaleQuote:              http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to 500
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
