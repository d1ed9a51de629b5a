package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error codes carried by AppError.
const (
	CodeConfig        = "CONFIG_ERROR"
	CodeExtraction    = "EXTRACTION_FAILED"
	CodeModel         = "MODEL_INVOCATION_FAILED"
	CodeSchemaParse   = "SCHEMA_PARSE_FAILED"
	CodeBatchIO       = "BATCH_IO_FAILED"
	CodeDocumentPanic = "DOCUMENT_PANIC"
)

// Per-document failures are recovered into a failure row. ErrBatchIO and
// ErrConfig abort the run.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrExtraction      = errors.New("text extraction failed")
	ErrModelInvocation = errors.New("model invocation failed")
	ErrSchemaParse     = errors.New("model output does not match schema")
	ErrBatchIO         = errors.New("batch io failed")
	ErrConfig          = errors.New("invalid configuration")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// ExtractionError tags err as an extraction failure for path.
func ExtractionError(path string, err error) error {
	return NewAppError(CodeExtraction, path, fmt.Errorf("%w: %w", ErrExtraction, err))
}

// ModelError tags err as a failed model call.
func ModelError(err error) error {
	return NewAppError(CodeModel, "chat completion", fmt.Errorf("%w: %w", ErrModelInvocation, err))
}

// SchemaError tags err as unparseable model output.
func SchemaError(err error) error {
	return NewAppError(CodeSchemaParse, "bridge work record", fmt.Errorf("%w: %w", ErrSchemaParse, err))
}

// BatchIOError tags err as a fatal batch input/output failure.
func BatchIOError(message string, err error) error {
	return NewAppError(CodeBatchIO, message, fmt.Errorf("%w: %w", ErrBatchIO, err))
}

// IsFatal reports whether err must abort the whole batch.
func IsFatal(err error) bool {
	return errors.Is(err, ErrBatchIO) || errors.Is(err, ErrConfig)
}
