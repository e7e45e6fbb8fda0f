package mcp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/coursetrack/internal/domain/course"
	"github.com/rpggio/coursetrack/internal/domain/progress"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps domain errors to MCP error codes. It returns nil for errors
// that have no client-facing code.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, course.ErrGroupNotFound):
		return &APIError{Code: "GROUP_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call get_progress for valid group keys"}
	case errors.Is(err, course.ErrIndexOutOfRange):
		return &APIError{Code: "INDEX_OUT_OF_RANGE", Message: err.Error(), RecoveryHint: "Use an index listed by get_progress"}
	case errors.Is(err, course.ErrInvalidStatus):
		return &APIError{Code: "INVALID_STATUS", Message: err.Error(), RecoveryHint: "Use one of " + statusList()}
	case errors.Is(err, course.ErrInvalidFilter):
		return &APIError{Code: "INVALID_FILTER", Message: err.Error(), RecoveryHint: "Use one of " + strings.Join(course.Filters, ", ")}
	case errors.Is(err, progress.ErrNotInitialized):
		return &APIError{Code: "NOT_INITIALIZED", Message: err.Error(), RecoveryHint: "Restart the server"}
	default:
		return nil
	}
}

// toolError converts err into the error a tool handler returns.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

func statusList() string {
	names := make([]string, len(course.Statuses))
	for i, s := range course.Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
