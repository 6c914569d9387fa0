package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrValidation          = NewDomainError("VALIDATION_ERROR", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrInsufficientCredit  = NewDomainError("INSUFFICIENT_CREDIT", "Insufficient credit remaining")
	ErrNotStockManaged     = NewDomainError("NOT_STOCK_MANAGED", "Product stock is not managed")
	ErrNotAllItemsCounted  = NewDomainError("NOT_ALL_ITEMS_COUNTED", "Not all count items have been recorded")
	ErrNoDefaultTax        = NewDomainError("NO_DEFAULT_TAX", "No default tax configured for company")
)

// ErrorCode extracts the domain error code from an error, or empty string
// if the error is not a DomainError.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsCode reports whether the error carries the given domain error code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}
