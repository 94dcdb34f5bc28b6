package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - these represent business rule violations
var (
	// Ingestion
	ErrEmptyDataset      = errors.New("empty dataset")
	ErrUnreadableFile    = errors.New("unreadable file")
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrNoUploadedFile    = errors.New("no file in upload request")

	// Settings validation
	ErrValueNotNumeric    = errors.New("value must be a valid number")
	ErrValueNegative      = errors.New("value cannot be negative")
	ErrUnknownSalaryLevel = errors.New("unknown salary level")
	ErrInvalidDate        = errors.New("invalid date")

	// Generic
	ErrNotFound    = errors.New("resource not found")
	ErrInternal    = errors.New("internal server error")
	ErrBadRequest  = errors.New("bad request")
	ErrRateLimited = errors.New("rate limit exceeded")
)

// IngestionError marks a failed ingestion attempt. The previous canonical
// dataset stays in place whenever one of these is returned.
type IngestionError struct {
	Err error
}

func (e *IngestionError) Error() string {
	return "ingestion failed: " + e.Err.Error()
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}

// NewIngestionError wraps err as an ingestion failure.
func NewIngestionError(err error) *IngestionError {
	return &IngestionError{Err: err}
}

// NewMissingColumnsError reports which required headers the export lacks.
func NewMissingColumnsError(columns []string) *IngestionError {
	return NewIngestionError(fmt.Errorf("missing required fields: %s", strings.Join(columns, ", ")))
}

// AppError wraps errors with additional context for HTTP responses
type AppError struct {
	Err        error  // The underlying error
	Message    string // User-friendly message
	Code       string // Machine-readable error code
	StatusCode int    // HTTP status code
	Details    map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors for common cases
func NewBadRequestError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "BAD_REQUEST",
		StatusCode: 400,
	}
}

func NewNotFoundError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "NOT_FOUND",
		StatusCode: 404,
	}
}

func NewValidationError(err error, message string, details map[string]interface{}) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "VALIDATION_ERROR",
		StatusCode: 422,
		Details:    details,
	}
}

func NewRateLimitError() *AppError {
	return &AppError{
		Err:        ErrRateLimited,
		Message:    "Too many requests. Please try again later.",
		Code:       "RATE_LIMITED",
		StatusCode: 429,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "An unexpected error occurred",
		Code:       "INTERNAL_ERROR",
		StatusCode: 500,
	}
}

// ValidationErrors holds multiple field validation errors
type ValidationErrors struct {
	Errors map[string][]string `json:"errors"`
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make(map[string][]string),
	}
}

func (v *ValidationErrors) Add(field, message string) {
	v.Errors[field] = append(v.Errors[field], message)
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

func (v *ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed: %d field(s) have errors", len(v.Errors))
}
