package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

const (
	ErrUnknown ErrorCode = "UNKNOWN"

	// Version resolution errors
	ErrInvalidVersion ErrorCode = "INVALID_VERSION"

	// Network errors (update check and downloads)
	ErrNetwork ErrorCode = "NETWORK_FAILURE"

	// Filesystem errors (symlinks, cache directories, extraction)
	ErrFilesystem ErrorCode = "FILESYSTEM_FAILURE"

	// The active symlink does not point at <version>/google_appengine
	ErrCorruptActiveLink ErrorCode = "CORRUPT_ACTIVE_LINK"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigSave  ErrorCode = "CONFIG_SAVE"
)

// SwitcherError represents a structured error with code and details
type SwitcherError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SwitcherError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SwitcherError) Unwrap() error {
	return e.Wrapped
}

// Is matches another SwitcherError with the same code
func (e *SwitcherError) Is(target error) bool {
	var targetErr *SwitcherError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SwitcherError with the given code and message
func New(code ErrorCode, message string) *SwitcherError {
	return &SwitcherError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SwitcherError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SwitcherError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error. It returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	return &SwitcherError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *SwitcherError) WithDetail(key string, value interface{}) *SwitcherError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var switcherErr *SwitcherError
	if errors.As(err, &switcherErr) {
		return switcherErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown
func GetErrorCode(err error) ErrorCode {
	var switcherErr *SwitcherError
	if errors.As(err, &switcherErr) {
		return switcherErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil
func GetErrorDetails(err error) map[string]interface{} {
	var switcherErr *SwitcherError
	if errors.As(err, &switcherErr) {
		return switcherErr.Details
	}
	return nil
}
