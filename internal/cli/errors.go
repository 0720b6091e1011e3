// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors so main can choose an exit
// code without parsing the message.
type ErrorCategory string

const (
	// CategoryValidation means bad flags, arguments or configuration.
	// The user should fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound means a named file or socket does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryEnvironment means the process cannot run here, such as
	// when stdout is not a terminal.
	CategoryEnvironment ErrorCategory = "environment"

	// CategoryInternal means an unexpected failure: I/O errors, bugs.
	CategoryInternal ErrorCategory = "internal"
)

// Exit codes by category.
const (
	ExitInternal    = 1
	ExitValidation  = 2
	ExitNotFound    = 3
	ExitEnvironment = 4
)

// ToolError is a categorized error. It wraps an inner error, so
// errors.Is and errors.As see the whole chain. Use the category
// constructors rather than building one directly.
type ToolError struct {
	Category ErrorCategory
	Err      error

	// Hint is printed after the message, separated by a blank line.
	Hint string
}

// Error returns the message, followed by the hint if there is one.
func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

// Unwrap returns the underlying error.
func (e *ToolError) Unwrap() error { return e.Err }

// WithHint sets the hint and returns the receiver for chaining.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// ExitCode maps the category to a process exit code.
func (e *ToolError) ExitCode() int {
	switch e.Category {
	case CategoryValidation:
		return ExitValidation
	case CategoryNotFound:
		return ExitNotFound
	case CategoryEnvironment:
		return ExitEnvironment
	default:
		return ExitInternal
	}
}

// Validation creates a validation error.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Environment creates an environment error.
func Environment(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryEnvironment, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
