package errors

import (
	"errors"
	"fmt"
)

// Sentinels usable with errors.Is; matching compares Type and Code only.
var (
	ErrNotFound       = &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"}
	ErrTooManyResults = &AppError{Type: ErrorTypeTooManyResults, Code: "TOO_MANY_RESULTS"}
	ErrIntegrity      = &AppError{Type: ErrorTypeIntegrity, Code: "DATA_INTEGRITY"}
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewTooManyResultsError reports a lookup that expected exactly one row
// and received count rows.
func NewTooManyResultsError(resource string, identifier string, count int) *AppError {
	return &AppError{
		Type:    ErrorTypeTooManyResults,
		Message: fmt.Sprintf("too many %s results for %s: %d", resource, identifier, count),
		Code:    "TOO_MANY_RESULTS",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
			"count":      count,
		},
	}
}

// NewIntegrityError reports persisted data that contradicts itself, such as
// an advertised dependency count with no dependency rows behind it.
func NewIntegrityError(resource string, identifier string, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeIntegrity,
		Message: fmt.Sprintf("%s %s: %s", resource, identifier, reason),
		Code:    "DATA_INTEGRITY",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
			"reason":     reason,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError reports whether err is a system failure rather than an
// expected lookup or caller mistake.
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return false
		case ErrorTypeTooManyResults, ErrorTypeIntegrity, ErrorTypeDatabase:
			return true
		default:
			return true
		}
	}
	return true
}
