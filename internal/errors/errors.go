// Package errors provides the sentinel error types shared across layers.
package errors

import "fmt"

// ErrValidation represents a validation error
// This should be used when client input fails validation
var ErrValidation = &ValidationError{}

// ValidationError is a sentinel error for validation failures
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field: %s", e.Field)
	}
	return "validation error"
}

// Is implements the error interface for error comparison
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// NewValidationError creates a new ValidationError with a custom message
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ErrCorpus represents a failure to load the feedback corpus file
// (missing, unreadable, malformed, or without a feedback column)
var ErrCorpus = &CorpusError{}

// CorpusError is a sentinel error for corpus loading failures
type CorpusError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *CorpusError) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("load feedback file %s: %v", e.Path, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "feedback file could not be loaded"
	}
}

// Unwrap returns the underlying cause
func (e *CorpusError) Unwrap() error {
	return e.Err
}

// Is implements the error interface for error comparison
func (e *CorpusError) Is(target error) bool {
	_, ok := target.(*CorpusError)
	return ok
}

// NewCorpusError wraps err as a corpus loading failure for path
func NewCorpusError(path string, err error) *CorpusError {
	return &CorpusError{
		Path: path,
		Err:  err,
	}
}

// ErrClassification represents a failure of the sentiment model
var ErrClassification = &ClassificationError{}

// ClassificationError is a sentinel error for sentiment classification failures
type ClassificationError struct {
	Message string
}

// Error implements the error interface
func (e *ClassificationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "sentiment classification failed"
}

// Is implements the error interface for error comparison
func (e *ClassificationError) Is(target error) bool {
	_, ok := target.(*ClassificationError)
	return ok
}

// NewClassificationError creates a new ClassificationError with a custom message
func NewClassificationError(message string) *ClassificationError {
	return &ClassificationError{Message: message}
}
