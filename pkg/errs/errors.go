// Package errs provides structured, user-friendly errors with machine-parseable codes.
package errs

import (
	"errors"
	"fmt"
)

// ErrorCode is a machine-parseable error identifier.
type ErrorCode string

const (
	// General
	ErrUnknown    ErrorCode = "ERR-000"
	ErrInternal   ErrorCode = "ERR-001"
	ErrValidation ErrorCode = "ERR-002"

	// Config errors
	ErrConfigRead    ErrorCode = "ERR-CFG-001"
	ErrConfigInvalid ErrorCode = "ERR-CFG-002"
	ErrConfigExists  ErrorCode = "ERR-CFG-003"

	// Output errors
	ErrOutputWrite ErrorCode = "ERR-OUT-001"

	// State errors
	ErrStateOpen  ErrorCode = "ERR-STATE-001"
	ErrStateRead  ErrorCode = "ERR-STATE-002"
	ErrStateWrite ErrorCode = "ERR-STATE-003"
)

// GreetError is the structured error type used across greet packages.
type GreetError struct {
	Code     ErrorCode // Machine-parseable error code
	Op       string    // Operation chain, e.g., "history.record"
	Resource string    // File path, bucket, or key involved
	Cause    error     // Wrapped upstream error
	Advice   string    // Human-readable remediation hint
}

func (e *GreetError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("[%s] %s (%s): %v", e.Code, e.Op, e.Resource, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Op, e.Cause)
}

func (e *GreetError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the formatted user-facing message with remediation advice.
func (e *GreetError) UserMessage() string {
	msg := fmt.Sprintf("%s: %s: %v", e.Code, e.Op, e.Cause)
	if e.Resource != "" {
		msg += fmt.Sprintf(" (resource: %s)", e.Resource)
	}
	if e.Advice != "" {
		msg += fmt.Sprintf("\n  → %s", e.Advice)
	}
	return msg
}

// New creates a new GreetError.
func New(code ErrorCode, op string, cause error) *GreetError {
	return &GreetError{Code: code, Op: op, Cause: cause}
}

// Newf creates a new GreetError with a formatted message as the cause.
func Newf(code ErrorCode, op, format string, args ...any) *GreetError {
	return &GreetError{Code: code, Op: op, Cause: fmt.Errorf(format, args...)}
}

// WithResource sets the resource identifier.
func (e *GreetError) WithResource(resource string) *GreetError {
	e.Resource = resource
	return e
}

// WithAdvice sets the remediation hint.
func (e *GreetError) WithAdvice(advice string) *GreetError {
	e.Advice = advice
	return e
}

// Wrap wraps err as a GreetError at a new operation boundary. Nil stays nil.
func Wrap(err error, code ErrorCode, op string) error {
	if err == nil {
		return nil
	}
	return &GreetError{Code: code, Op: op, Cause: err}
}

// IsCode reports whether err is a GreetError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var ge *GreetError
	if errors.As(err, &ge) {
		return ge.Code == code
	}
	return false
}

// AsGreet extracts the *GreetError from err, or returns nil.
func AsGreet(err error) *GreetError {
	var ge *GreetError
	if errors.As(err, &ge) {
		return ge
	}
	return nil
}

// Message returns UserMessage for a GreetError and err.Error() otherwise.
func Message(err error) string {
	if ge := AsGreet(err); ge != nil {
		return ge.UserMessage()
	}
	return err.Error()
}
