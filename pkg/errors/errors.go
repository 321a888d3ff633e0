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

	// Entry resolution errors
	ErrNotFound        ErrorCode = "NOT_FOUND"
	ErrAmbiguousSuffix ErrorCode = "AMBIGUOUS_SUFFIX"
	ErrAlreadyExists   ErrorCode = "ALREADY_EXISTS"
	ErrAlreadyManaged  ErrorCode = "ALREADY_MANAGED"
	ErrTargetConflict  ErrorCode = "TARGET_CONFLICT"

	// Configuration errors
	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrConfigValid    ErrorCode = "CONFIG_INVALID"
	ErrConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"

	// Repository errors
	ErrRepoNotFound ErrorCode = "REPO_NOT_FOUND"
	ErrGitCommand   ErrorCode = "GIT_COMMAND"

	// FileSystem errors
	ErrFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// RulesyncError represents a structured error with code and details
type RulesyncError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RulesyncError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RulesyncError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RulesyncError) Is(target error) bool {
	var targetErr *RulesyncError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RulesyncError with the given code and message
func New(code ErrorCode, message string) *RulesyncError {
	return &RulesyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RulesyncError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RulesyncError {
	return &RulesyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RulesyncError
func Wrap(err error, code ErrorCode, message string) *RulesyncError {
	if err == nil {
		return nil
	}
	return &RulesyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RulesyncError {
	if err == nil {
		return nil
	}
	return &RulesyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RulesyncError) WithDetail(key string, value interface{}) *RulesyncError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var rsErr *RulesyncError
	if errors.As(err, &rsErr) {
		return rsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RulesyncError
func GetErrorCode(err error) ErrorCode {
	var rsErr *RulesyncError
	if errors.As(err, &rsErr) {
		return rsErr.Code
	}
	return ErrUnknown
}
