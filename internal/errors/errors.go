// Package errors provides custom error types for the marketdash API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Unauthorized - Please log in", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrUpstream       = &AppError{Code: "UPSTREAM_ERROR", Message: "Failed to fetch market data", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Portfolio errors. The not-found and forbidden cases share one code so callers
// cannot probe whether an id exists under another account.
var (
	ErrMissingRequiredFields = &AppError{Code: "MISSING_REQUIRED_FIELDS", Message: "Symbol, name, quantity, and purchase price are required", StatusCode: http.StatusBadRequest}
	ErrInvalidSymbol         = &AppError{Code: "INVALID_SYMBOL", Message: "Symbol must be a non-empty string", StatusCode: http.StatusBadRequest}
	ErrInvalidName           = &AppError{Code: "INVALID_NAME", Message: "Name must be a non-empty string", StatusCode: http.StatusBadRequest}
	ErrInvalidQuantity       = &AppError{Code: "INVALID_QUANTITY", Message: "Quantity must be a positive number", StatusCode: http.StatusBadRequest}
	ErrInvalidPrice          = &AppError{Code: "INVALID_PRICE", Message: "Purchase price must be a positive number", StatusCode: http.StatusBadRequest}
	ErrInvalidID             = &AppError{Code: "INVALID_ID", Message: "Valid portfolio ID is required", StatusCode: http.StatusBadRequest}
	ErrNotFoundOrForbidden   = &AppError{Code: "NOT_FOUND_OR_FORBIDDEN", Message: "Portfolio item not found or you do not have permission to delete it", StatusCode: http.StatusNotFound}
)
