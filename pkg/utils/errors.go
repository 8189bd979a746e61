package utils

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure classifications produced by the
// extraction pipeline. External tool wrappers classify their own failures
// at the invocation boundary, so downstream code never inspects message
// text.
type ErrorKind string

const (
	// ErrorKindDecode marks bytes that could not be decoded as UTF-8
	ErrorKindDecode ErrorKind = "decode"

	// ErrorKindNoText marks an attempt that produced empty text or text
	// rejected by the language gate
	ErrorKindNoText ErrorKind = "no_text"

	// ErrorKindUnsupported marks inputs that are not actually valid
	// documents of their claimed type (corrupt PDF, invalid zip
	// container, unreadable image codec)
	ErrorKindUnsupported ErrorKind = "unsupported"

	// ErrorKindTool marks an external converter/OCR binary that exited
	// non-zero or was not found
	ErrorKindTool ErrorKind = "tool"

	// ErrorKindValidation marks bad user input (paths, flag values)
	ErrorKindValidation ErrorKind = "validation"

	// ErrorKindIO marks filesystem failures
	ErrorKindIO ErrorKind = "io"
)

// AppError is an application error carrying its classification
type AppError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target by kind
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Kind == t.Kind
	}
	return false
}

// NewError creates a new application error
func NewError(kind ErrorKind, message string, cause error) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// NewDecodeError creates a UTF-8 decode error
func NewDecodeError(message string, cause error) *AppError {
	return NewError(ErrorKindDecode, message, cause)
}

// NewNoTextError creates a no-extractable-text error
func NewNoTextError(message string) *AppError {
	return NewError(ErrorKindNoText, message, nil)
}

// NewUnsupportedError creates an unsupported-document error
func NewUnsupportedError(message string, cause error) *AppError {
	return NewError(ErrorKindUnsupported, message, cause)
}

// NewToolError creates an external tool failure error
func NewToolError(message string, cause error) *AppError {
	return NewError(ErrorKindTool, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *AppError {
	return NewError(ErrorKindValidation, message, cause)
}

// NewIOError creates an I/O error
func NewIOError(message string, cause error) *AppError {
	return NewError(ErrorKindIO, message, cause)
}

// WrapError wraps an existing error with additional context. An AppError
// cause keeps its original kind unless one is given explicitly.
func WrapError(err error, kind ErrorKind, message string) *AppError {
	if err == nil {
		return nil
	}

	if kind == "" {
		kind = KindOf(err)
	}

	return &AppError{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}
}

// KindOf extracts the classification from an error. Errors from outside
// the pipeline default to the tool kind, since the only unclassified
// failures are external process ones.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ErrorKindTool
}

// IsKind reports whether the error carries the given classification
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
