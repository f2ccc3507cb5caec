// Package errors provides the error kinds surfaced by the alignment packages.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrAnchorMismatch indicates two texts split into different numbers of anchor groups
	ErrAnchorMismatch = errors.New("anchor mismatch")
	// ErrInvalidMethod indicates an unknown alignment method or method parameter
	ErrInvalidMethod = errors.New("invalid method")
	// ErrInternal indicates a broken internal invariant (an algorithm bug)
	ErrInternal = errors.New("internal error")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported indicates an unsupported option or format
	ErrUnsupported = errors.New("unsupported")
)

// AnchorMismatchError reports the anchor group counts of both inputs.
type AnchorMismatchError struct {
	Left  int // Anchor groups in the left text
	Right int // Anchor groups in the right text
}

func (e *AnchorMismatchError) Error() string {
	return fmt.Sprintf("different number of anchors in texts: %d groups on the left, %d on the right", e.Left, e.Right)
}

func (e *AnchorMismatchError) Unwrap() error {
	return ErrAnchorMismatch
}

// InvalidMethodError represents an unrecognised alignment method selector
type InvalidMethodError struct {
	Method string // Selector as given by the caller
	Reason string // Optional detail, e.g. an unknown parameter
}

func (e *InvalidMethodError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid method %q: %s", e.Method, e.Reason)
	}
	return fmt.Sprintf("invalid method %q", e.Method)
}

func (e *InvalidMethodError) Unwrap() error {
	return ErrInvalidMethod
}

// ConsistencyError reports an alignment whose blocks do not cover the input exactly once
type ConsistencyError struct {
	Side string // "left" or "right"
	Want int    // Expected number of indices (input length)
	Got  int    // Indices covered by the returned blocks
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("error aligning regions: %s blocks cover %d of %d items", e.Side, e.Got, e.Want)
}

func (e *ConsistencyError) Unwrap() error {
	return ErrInternal
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "decompress")
	Path      string // File path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error in a method selector, config file or XML input
type ParseError struct {
	Format  string // Format being parsed (e.g., "method", "TOML", "XPath")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// UnsupportedError represents an unsupported option value or format
type UnsupportedError struct {
	Feature string // Feature or format that is unsupported
	Reason  string // Why it's not supported
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

// Helper functions for creating common errors

// NewAnchorMismatch creates an AnchorMismatchError
func NewAnchorMismatch(left, right int) *AnchorMismatchError {
	return &AnchorMismatchError{Left: left, Right: right}
}

// NewInvalidMethod creates an InvalidMethodError
func NewInvalidMethod(method, reason string) *InvalidMethodError {
	return &InvalidMethodError{Method: method, Reason: reason}
}

// NewConsistency creates a ConsistencyError
func NewConsistency(side string, want, got int) *ConsistencyError {
	return &ConsistencyError{Side: side, Want: want, Got: got}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
