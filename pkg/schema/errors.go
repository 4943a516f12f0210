package schema

import "fmt"

// Error codes for structured error reporting.
const (
	ErrCodeConfig         = "CONFIG_ERROR"
	ErrCodeBudgetExceeded = "BUDGET_EXCEEDED"
	ErrCodeValidation     = "VALIDATION_ERROR"
)

// FlowvizError is the structured error type for all flowviz operations.
type FlowvizError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *FlowvizError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *FlowvizError) Unwrap() error {
	return e.Cause
}

// NewError creates a new FlowvizError.
func NewError(code, message string) *FlowvizError {
	return &FlowvizError{Code: code, Message: message}
}

// NewErrorf creates a new FlowvizError with a formatted message.
func NewErrorf(code, format string, args ...any) *FlowvizError {
	return &FlowvizError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithCause attaches an underlying cause.
func (e *FlowvizError) WithCause(err error) *FlowvizError {
	e.Cause = err
	return e
}

// WithDetails attaches key-value details.
func (e *FlowvizError) WithDetails(details map[string]any) *FlowvizError {
	e.Details = details
	return e
}
