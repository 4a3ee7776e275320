package cli

import (
	"fmt"
	"strings"

	"task-planner/internal/errors"
)

// Exit codes reported by the planner binary.
const (
	ExitFailure    = 1
	ExitInvalid    = 2
	ExitNotFound   = 3
	ExitDataIssues = 4
)

// ErrorHandler turns repository failures into command errors
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes err with the failed operation and appends the repository
// diagnostics that the error text does not already carry.
func (eh *ErrorHandler) Handle(operation string, err error, diagnostics []string) error {
	if err == nil {
		return nil
	}

	text := err.Error()
	var extra []string
	for _, d := range diagnostics {
		if d != "" && !strings.Contains(text, d) {
			extra = append(extra, d)
		}
	}

	if len(extra) == 0 {
		return fmt.Errorf("failed to %s: %w", operation, err)
	}
	return fmt.Errorf("failed to %s: %w [%s]", operation, err, strings.Join(extra, "; "))
}

// ExitCode maps err to the process exit status by its error code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch errors.GetErrorCode(err) {
	case "VALIDATION_FAILED", "INVALID_INPUT":
		return ExitInvalid
	case "NOT_FOUND":
		return ExitNotFound
	case "TOO_MANY_RESULTS", "DATA_INTEGRITY":
		return ExitDataIssues
	default:
		return ExitFailure
	}
}
