package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Category returns the category the error's code belongs to.
func (e *AppError) Category() Category { return CategoryForCode(e.Code) }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CategoryOf classifies any error. Errors that are not AppErrors are
// operational; nil has no category.
func CategoryOf(err error) Category {
	if err == nil {
		return ""
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr.Category()
	}
	return CategoryOperational
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return CategoryOf(err) == CategoryConfiguration }

// IsInput reports whether err is an input error.
func IsInput(err error) bool { return CategoryOf(err) == CategoryInput }

// IsOperational reports whether err is an operational error.
func IsOperational(err error) bool { return CategoryOf(err) == CategoryOperational }

// --- Configuration errors ---

// MissingConfig creates an AppError for a required setting that is absent.
// hint is appended to the message when non-empty.
func MissingConfig(key, hint string) *AppError {
	msg := fmt.Sprintf("%s environment variable required.", key)
	if hint != "" {
		msg += " " + hint
	}
	return &AppError{
		Code: ErrCodeMissingConfig, Message: msg,
		Details: map[string]any{"key": key},
	}
}

// InvalidConfig creates an AppError for a malformed configuration value.
func InvalidConfig(key, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: fmt.Sprintf("Invalid configuration for %s: %s", key, reason),
		Details: map[string]any{"key": key},
	}
}

// --- Input errors ---

// FileNotFound creates an AppError for a referenced file that does not exist.
func FileNotFound(kind, path string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("%s not found: %s", kind, path),
		Details: map[string]any{"path": path},
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		Details: map[string]any{"field": field},
	}
}

// --- Operational errors ---

// ExternalServiceError creates a new AppError for a failure inside an
// external collaborator such as the diarization pipeline.
func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeExternalService, Message: fmt.Sprintf("The %s failed.", service),
		Details: map[string]any{"service": service}, Cause: cause,
	}
}

// Unauthorized creates a new AppError for a rejected credential.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return &AppError{Code: ErrCodeUnauthorized, Message: reason}
}

// Timeout creates a new AppError for an operation that ran past its deadline.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: fmt.Sprintf("The %s did not complete in time.", operation),
		Details: map[string]any{"operation": operation},
	}
}

// Canceled creates a new AppError for an operation interrupted by the caller.
func Canceled(operation string) *AppError {
	return &AppError{
		Code: ErrCodeCanceled, Message: fmt.Sprintf("The %s was canceled.", operation),
		Details: map[string]any{"operation": operation},
	}
}

// ConnectionFailed creates a new AppError for a failed connection to a service.
func ConnectionFailed(service string) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: fmt.Sprintf("Unable to connect to %s.", service),
		Details: map[string]any{"service": service},
	}
}

// IOError creates a new AppError for a local file operation failure.
func IOError(op, path string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeIO, Message: fmt.Sprintf("Failed to %s %s", op, path),
		Details: map[string]any{"operation": op, "path": path}, Cause: cause,
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Cause: cause,
	}
}

// Message returns the user-facing text of err: the AppError message without
// its code, followed by the cause in parentheses when there is one. Other
// errors return err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	if appErr.Cause == nil {
		return appErr.Message
	}
	return fmt.Sprintf("%s (%s)", appErr.Message, Message(appErr.Cause))
}
