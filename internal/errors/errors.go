package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether any AppError in the chain carries code
func HasCode(err error, code string) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeParseFailure      = "PARSE_FAILURE"
	CodeNoDataLoaded      = "NO_DATA_LOADED"
	CodeRenderFailure     = "RENDER_FAILURE"
	CodeWriteFailure      = "WRITE_FAILURE"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

// UnsupportedFormat reports a file type the ingestor cannot read
func UnsupportedFormat(path, format string) *AppError {
	return New(CodeUnsupportedFormat, fmt.Sprintf("unsupported file type %q for %s", format, path))
}

// ParseFailure reports content that does not match its declared format
func ParseFailure(path, format string, cause error) *AppError {
	return &AppError{
		Code:    CodeParseFailure,
		Message: fmt.Sprintf("failed to parse %s as %s", path, format),
		Cause:   cause,
	}
}

func NoDataLoaded(message string) *AppError {
	return New(CodeNoDataLoaded, message)
}

func RenderFailure(panel string, cause error) *AppError {
	return &AppError{
		Code:    CodeRenderFailure,
		Message: fmt.Sprintf("failed to render panel %q", panel),
		Cause:   cause,
	}
}

func WriteFailure(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeWriteFailure,
		Message: fmt.Sprintf("failed to write document %s", path),
		Cause:   cause,
	}
}
