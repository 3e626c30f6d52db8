// Package errors defines the structured error type shared by the tag
// builder, the document assembler, and the surrounding CLI.
//
// Every failure raised by the core carries an ErrorType and a stable code so
// that callers can branch with errors.Is against the exported sentinels:
//
//	if errors.Is(err, perrors.ErrUnknownDirective) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeDirective  ErrorType = "directive"
	ErrorTypeOperation  ErrorType = "operation"
	ErrorTypeInput      ErrorType = "input"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeInternal   ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeUnknownDirective = "ERR_UNKNOWN_DIRECTIVE"
	ErrCodeInvalidOperation = "ERR_INVALID_OPERATION"
	ErrCodeMalformedInput   = "ERR_MALFORMED_INPUT"
	ErrCodeConfigInvalid    = "ERR_CONFIG_INVALID"
	ErrCodeFileNotFound     = "ERR_FILE_NOT_FOUND"
	ErrCodePageInvalid      = "ERR_PAGE_INVALID"
	ErrCodeInternalError    = "ERR_INTERNAL"
)

// Sentinels for errors.Is comparisons. Matching is done on Type and Code, so
// any PagekitError created by the constructors below matches its sentinel.
var (
	ErrUnknownDirective = &PagekitError{Type: ErrorTypeDirective, Code: ErrCodeUnknownDirective}
	ErrInvalidOperation = &PagekitError{Type: ErrorTypeOperation, Code: ErrCodeInvalidOperation}
	ErrMalformedInput   = &PagekitError{Type: ErrorTypeInput, Code: ErrCodeMalformedInput}
)

// PagekitError is a structured error type with context.
type PagekitError struct {
	Type      ErrorType
	Code      string
	Message   string
	Cause     error
	Context   map[string]interface{}
	Component string
}

// Error implements the error interface.
func (e *PagekitError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Component != "" {
		parts = append(parts, "component:"+e.Component)
	}

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *PagekitError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *PagekitError) Is(target error) bool {
	var t *PagekitError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *PagekitError) WithContext(key string, value interface{}) *PagekitError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithComponent adds component context.
func (e *PagekitError) WithComponent(component string) *PagekitError {
	e.Component = component

	return e
}

// WithCause attaches the underlying error.
func (e *PagekitError) WithCause(cause error) *PagekitError {
	e.Cause = cause

	return e
}

// Error creation functions

// NewUnknownDirectiveError reports an operation name outside the closed
// directive vocabulary.
func NewUnknownDirectiveError(name string) *PagekitError {
	return &PagekitError{
		Type:    ErrorTypeDirective,
		Code:    ErrCodeUnknownDirective,
		Message: fmt.Sprintf("directive '%s' not found", name),
	}
}

// NewInvalidOperationError reports a mutation that the target cannot accept.
func NewInvalidOperationError(message string) *PagekitError {
	return &PagekitError{
		Type:    ErrorTypeOperation,
		Code:    ErrCodeInvalidOperation,
		Message: message,
	}
}

// NewMalformedInputError reports an argument of the wrong shape.
func NewMalformedInputError(message string) *PagekitError {
	return &PagekitError{
		Type:    ErrorTypeInput,
		Code:    ErrCodeMalformedInput,
		Message: message,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *PagekitError {
	return &PagekitError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *PagekitError {
	return &PagekitError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *PagekitError {
	return &PagekitError{
		Type:    ErrorTypeIO,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *PagekitError {
	return &PagekitError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsUnknownDirective checks if an error came from directive dispatch.
func IsUnknownDirective(err error) bool {
	return errors.Is(err, ErrUnknownDirective)
}

// IsInvalidOperation checks if an error is an invalid mutation.
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsMalformedInput checks if an error is a malformed argument.
func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// IsConfigError checks if an error is configuration-related.
func IsConfigError(err error) bool {
	var pe *PagekitError
	if errors.As(err, &pe) {
		return pe.Type == ErrorTypeConfig
	}

	return false
}
