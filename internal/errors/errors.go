// Package errors defines the structured error types used across the slotmill
// build. Errors carry a category, a stable code, and the file/tag context
// needed to point a user at the offending page source or component.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeExpand     ErrorType = "expand"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeInternal   ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeUnresolvedTag       = "ERR_UNRESOLVED_COMPONENT_TAG"
	ErrCodeCyclicReference     = "ERR_CYCLIC_COMPONENT_REFERENCE"
	ErrCodeMissingComponentDir = "ERR_MISSING_COMPONENT_DIR"
	ErrCodeInvalidPath         = "ERR_INVALID_PATH"
	ErrCodeFileIO              = "ERR_FILE_IO"
	ErrCodeConfigInvalid       = "ERR_CONFIG_INVALID"
	ErrCodeInvalidTagName      = "ERR_INVALID_TAG_NAME"
	ErrCodeInternal            = "ERR_INTERNAL"
)

// BuildError is a structured error type with context.
type BuildError struct {
	Type     ErrorType
	Code     string
	Message  string
	Cause    error
	Tag      string
	FilePath string
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	if e.Tag != "" {
		parts = append(parts, "tag:"+e.Tag)
	}
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")
	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}
	return result
}

// Unwrap returns the underlying cause error.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison by type and code.
func (e *BuildError) Is(target error) bool {
	var t *BuildError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}
	return false
}

// WithFile attaches the page-source path the error surfaced in.
func (e *BuildError) WithFile(path string) *BuildError {
	e.FilePath = path
	return e
}

// WithTag attaches the component tag identity to the error.
func (e *BuildError) WithTag(tag string) *BuildError {
	e.Tag = tag
	return e
}

// NewUnresolvedTagError reports a registered-looking tag that never collapsed
// during expansion (unclosed or otherwise malformed usage).
func NewUnresolvedTagError(tag string) *BuildError {
	return &BuildError{
		Type:    ErrorTypeExpand,
		Code:    ErrCodeUnresolvedTag,
		Message: "component tag never resolved: " + tag,
		Tag:     tag,
	}
}

// NewCyclicReferenceError reports a template set where a component's template
// reintroduces a usage of a tag already being expanded.
func NewCyclicReferenceError(stack []string, tag string) *BuildError {
	return &BuildError{
		Type:    ErrorTypeExpand,
		Code:    ErrCodeCyclicReference,
		Message: fmt.Sprintf("cyclic component reference: %s -> %s", strings.Join(stack, " -> "), tag),
		Tag:     tag,
	}
}

// NewIOError creates an I/O error.
func NewIOError(message string, cause error) *BuildError {
	return &BuildError{
		Type:    ErrorTypeIO,
		Code:    ErrCodeFileIO,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *BuildError {
	return &BuildError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *BuildError {
	return &BuildError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(message string, cause error) *BuildError {
	return &BuildError{
		Type:    ErrorTypeInternal,
		Code:    ErrCodeInternal,
		Message: message,
		Cause:   cause,
	}
}

// IsUnresolvedTag checks whether err is an unresolved-component-tag error.
func IsUnresolvedTag(err error) bool {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Code == ErrCodeUnresolvedTag
	}
	return false
}

// IsCyclicReference checks whether err is a cyclic-component-reference error.
func IsCyclicReference(err error) bool {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Code == ErrCodeCyclicReference
	}
	return false
}
