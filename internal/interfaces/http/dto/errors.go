package dto

import "net/http"

// Transport-level error codes for failures that never reach the domain
const (
	// ErrCodeBadRequest is used for malformed requests and bind failures
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back to 500.
var errorCodeHTTPStatus = map[string]int{
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"VALIDATION_ERROR":     http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,

	// Business rule violations map to 422 Unprocessable Entity
	"INVALID_STATE":         http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":    http.StatusUnprocessableEntity,
	"INSUFFICIENT_CREDIT":   http.StatusUnprocessableEntity,
	"NOT_STOCK_MANAGED":     http.StatusUnprocessableEntity,
	"NOT_ALL_ITEMS_COUNTED": http.StatusUnprocessableEntity,
	"NO_DEFAULT_TAX":        http.StatusUnprocessableEntity,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// Unknown codes return 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
