package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Catalog (archive) errors
	ErrCatalogParse ErrorCode = "CATALOG_PARSE"
	ErrCatalogRead  ErrorCode = "CATALOG_READ"
	ErrCatalogWrite ErrorCode = "CATALOG_WRITE"
	ErrHashMismatch ErrorCode = "HASH_MISMATCH"

	// Extension errors
	ErrExtensionParse ErrorCode = "EXTENSION_PARSE"
	ErrDuplicateExt   ErrorCode = "DUPLICATE_EXTENSION"
	ErrDepResolve     ErrorCode = "DEP_RESOLVE"

	// Document and patch errors
	ErrDocumentParse ErrorCode = "DOCUMENT_PARSE"
	ErrPatchOp       ErrorCode = "PATCH_OP"
	ErrPatchVerify   ErrorCode = "PATCH_VERIFY"
	ErrBaseMissing   ErrorCode = "BASE_MISSING"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
)

// ModfoldError represents a structured error with code and details
type ModfoldError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ModfoldError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ModfoldError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ModfoldError) Is(target error) bool {
	var targetErr *ModfoldError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ModfoldError with the given code and message
func New(code ErrorCode, message string) *ModfoldError {
	return &ModfoldError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ModfoldError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ModfoldError {
	return &ModfoldError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ModfoldError
func Wrap(err error, code ErrorCode, message string) *ModfoldError {
	if err == nil {
		return nil
	}
	return &ModfoldError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ModfoldError {
	if err == nil {
		return nil
	}
	return &ModfoldError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ModfoldError) WithDetail(key string, value interface{}) *ModfoldError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var mfErr *ModfoldError
	if errors.As(err, &mfErr) {
		return mfErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ModfoldError
func GetErrorCode(err error) ErrorCode {
	var mfErr *ModfoldError
	if errors.As(err, &mfErr) {
		return mfErr.Code
	}
	return ErrUnknown
}
