package dto

import "net/http"

// Error codes used by the HTTP layer itself. Domain error codes come
// from the domain package and are mapped below.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	// Input and structural errors -> 400 Bad Request
	"INVALID_INPUT":        http.StatusBadRequest,
	"INVALID_QUANTITY":     http.StatusBadRequest,
	"INVALID_PRICE":        http.StatusBadRequest,
	"INVALID_STOCK":        http.StatusBadRequest,
	"INVALID_PRODUCT":      http.StatusBadRequest,
	"INVALID_PRODUCT_NAME": http.StatusBadRequest,
	"INVALID_NAME":         http.StatusBadRequest,
	"INVALID_IMAGE_URL":    http.StatusBadRequest,
	"INVALID_STATUS":       http.StatusBadRequest,
	"INVALID_USERNAME":     http.StatusBadRequest,
	"INVALID_PASSWORD":     http.StatusBadRequest,

	// Auth errors
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"FORBIDDEN":           http.StatusForbidden,
	"ACCOUNT_LOCKED":      http.StatusForbidden,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,

	// Resource errors
	"NOT_FOUND":             http.StatusNotFound,
	"ALREADY_EXISTS":        http.StatusConflict,
	"OPTIMISTIC_LOCK_ERROR": http.StatusConflict,
	"SUBMISSION_IN_FLIGHT":  http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	"OUT_OF_STOCK":        http.StatusUnprocessableEntity,
	"EMPTY_CART":          http.StatusUnprocessableEntity,
	"PRODUCT_UNAVAILABLE": http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":  http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
