// Package errors provides custom error types for the audittrail service.
// Service-layer errors use AppError so that handlers can render consistent
// responses without leaking internal details to clients.
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

// Error implements the error interface. The internal cause is appended so
// that log lines carry it; clients only ever see Message.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so wrapped
// copies still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

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
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Entity store errors.
var (
	ErrRestoreUnsupported = &AppError{Code: "RESTORE_UNSUPPORTED", Message: "This resource cannot be restored", StatusCode: http.StatusBadRequest}
)

// Audit trail errors.
var (
	ErrInvalidAuditEntry   = &AppError{Code: "INVALID_AUDIT_ENTRY", Message: "Audit entry requires an entity name and id", StatusCode: http.StatusInternalServerError}
	ErrAuditAppendFailed   = &AppError{Code: "AUDIT_APPEND_FAILED", Message: "Failed to append audit entry", StatusCode: http.StatusInternalServerError}
	ErrAuditTrailImmutable = &AppError{Code: "AUDIT_TRAIL_IMMUTABLE", Message: "Audit entries cannot be modified", StatusCode: http.StatusForbidden}
)

// Customer errors.
var (
	ErrCustomerNotFound = &AppError{Code: "CUSTOMER_NOT_FOUND", Message: "Customer not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail   = &AppError{Code: "DUPLICATE_EMAIL", Message: "A customer with this email already exists", StatusCode: http.StatusConflict}
)

// Order errors.
var (
	ErrOrderNotFound = &AppError{Code: "ORDER_NOT_FOUND", Message: "Order not found", StatusCode: http.StatusNotFound}
)

// API client errors.
var (
	ErrAPIClientNotFound = &AppError{Code: "API_CLIENT_NOT_FOUND", Message: "API client not found", StatusCode: http.StatusNotFound}
)
