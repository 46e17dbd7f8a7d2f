package bridge

import (
	"errors"
	"fmt"
)

// Error type constants for classification and matching
const (
	// ErrorTypeEvaluation indicates the host-language evaluator rejected or
	// failed to run the embedded source fragment.
	ErrorTypeEvaluation = "evaluation_error"

	// ErrorTypeConversion indicates the expected result binding was missing
	// after evaluation or held a value that could not be converted to text.
	ErrorTypeConversion = "conversion_error"
)

// BridgeError represents a structured error with classification.
// It supports Go's error wrapping patterns with Unwrap() method.
type BridgeError struct {
	Type    string `json:"type"`
	Cause   string `json:"cause"`
	Wrapped error  `json:"-"` // Original error being wrapped
}

// Error implements the error interface
func (e *BridgeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Cause)
}

// Unwrap implements the error unwrapping interface for Go's errors.Is and errors.As
func (e *BridgeError) Unwrap() error {
	return e.Wrapped
}

// NewBridgeError creates a new BridgeError with the specified type and cause.
func NewBridgeError(errorType, cause string) *BridgeError {
	return &BridgeError{
		Type:  errorType,
		Cause: cause,
	}
}

// NewEvaluationError wraps an error returned by the evaluator.
func NewEvaluationError(err error) *BridgeError {
	bErr := NewBridgeError(ErrorTypeEvaluation, err.Error())
	bErr.Wrapped = err
	return bErr
}

// NewConversionError creates a conversion error. The wrapped error may be nil.
func NewConversionError(cause string, err error) *BridgeError {
	if err != nil {
		cause = fmt.Sprintf("%s: %s", cause, err.Error())
	}
	bErr := NewBridgeError(ErrorTypeConversion, cause)
	bErr.Wrapped = err
	return bErr
}

// MatchesErrorType reports whether err is a BridgeError of the given type.
func MatchesErrorType(err error, errorType string) bool {
	var bErr *BridgeError
	if !errors.As(err, &bErr) {
		return false
	}
	return bErr.Type == errorType
}

// IsEvaluationError reports whether err is an evaluation error
func IsEvaluationError(err error) bool {
	return MatchesErrorType(err, ErrorTypeEvaluation)
}

// IsConversionError reports whether err is a conversion error
func IsConversionError(err error) bool {
	return MatchesErrorType(err, ErrorTypeConversion)
}
