package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors
const (
	// ErrCodeMissingConfig indicates a required configuration value is absent.
	ErrCodeMissingConfig ErrorCode = "MISSING_CONFIG"
	// ErrCodeInvalidConfig indicates a configuration value is malformed.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Input errors
const (
	// ErrCodeNotFound indicates the referenced file or resource does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Operational errors
const (
	// ErrCodeExternalService indicates an error from the diarization pipeline.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	// ErrCodeUnauthorized indicates the pipeline rejected the credential.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeTimeout indicates the request did not finish before its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeCanceled indicates the run was interrupted before it finished.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodeConnectionFailed indicates the pipeline could not be reached.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeIO indicates a local file read or write failure.
	ErrCodeIO ErrorCode = "IO_ERROR"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Category groups error codes by who has to act on them.
type Category string

const (
	// CategoryConfiguration means the tool is not set up correctly.
	CategoryConfiguration Category = "configuration"
	// CategoryInput means the caller referenced something invalid.
	CategoryInput Category = "input"
	// CategoryOperational means loading or running the pipeline failed.
	CategoryOperational Category = "operational"
)

var codeCategories = map[ErrorCode]Category{
	ErrCodeMissingConfig:    CategoryConfiguration,
	ErrCodeInvalidConfig:    CategoryConfiguration,
	ErrCodeNotFound:         CategoryInput,
	ErrCodeInvalidInput:     CategoryInput,
	ErrCodeMissingField:     CategoryInput,
	ErrCodeExternalService:  CategoryOperational,
	ErrCodeUnauthorized:     CategoryOperational,
	ErrCodeTimeout:          CategoryOperational,
	ErrCodeCanceled:         CategoryOperational,
	ErrCodeConnectionFailed: CategoryOperational,
	ErrCodeIO:               CategoryOperational,
	ErrCodeInternal:         CategoryOperational,
}

// CategoryForCode returns the category of an error code.
// Unknown codes are operational.
func CategoryForCode(code ErrorCode) Category {
	if c, ok := codeCategories[code]; ok {
		return c
	}
	return CategoryOperational
}
