package shared

import "fmt"

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
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput       = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden          = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrOutOfStock         = NewDomainError("OUT_OF_STOCK", "Requested quantity exceeds available stock")
	ErrEmptyCart          = NewDomainError("EMPTY_CART", "Cart contains no items")
	ErrProductUnavailable = NewDomainError("PRODUCT_UNAVAILABLE", "Product is no longer available")
	ErrInvalidTransition  = NewDomainError("INVALID_TRANSITION", "Order status transition is not allowed")
	ErrSubmissionInFlight = NewDomainError("SUBMISSION_IN_FLIGHT", "A submission for this cart is already in progress")
)

// ValidationError is a field-labeled input error. The field name matches
// the JSON name of the offending form field so the caller can highlight it.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a new field-labeled validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
