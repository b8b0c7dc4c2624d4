package filter

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the category of a filter construction error.
type ErrorCode int

const (
	// ErrPathResolution indicates a path segment naming a field that does not exist.
	ErrPathResolution ErrorCode = iota + 1
	// ErrTokenFormat indicates a malformed collection token or inner clause.
	ErrTokenFormat
	// ErrUnknownOperator indicates an operator outside of the supported set.
	ErrUnknownOperator
	// ErrInvalidCollectionType indicates a collection token targeting a field that is not a slice or array.
	ErrInvalidCollectionType
	// ErrUnknownModelField indicates an inner clause referencing a field missing from the filter model.
	ErrUnknownModelField
	// ErrUnknownQuantifier indicates a collection method other than Any, All or First.
	ErrUnknownQuantifier
	// ErrTypeMismatch indicates operands that can not be compared with the requested operator.
	ErrTypeMismatch
	// ErrInvalidDirection indicates an order by direction other than ascending or descending.
	ErrInvalidDirection
)

var codeNames = map[ErrorCode]string{
	ErrPathResolution:        "path resolution",
	ErrTokenFormat:           "token format",
	ErrUnknownOperator:       "unknown operator",
	ErrInvalidCollectionType: "invalid collection type",
	ErrUnknownModelField:     "unknown model field",
	ErrUnknownQuantifier:     "unknown quantifier",
	ErrTypeMismatch:          "type mismatch",
	ErrInvalidDirection:      "invalid direction",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code %d", int(c))
}

// Error is the structured error returned by every filter construction operation.
// All of them are configuration or programming errors, none is transient.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode
	// Message is a human-readable description.
	Message string
	// Segment is the offending path segment, token or operator, if any.
	Segment string
	// Type is the name of the type the segment was resolved against, if any.
	Type string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("filter: %s: %v", e.Message, e.Cause)
	}
	return "filter: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(code ErrorCode, segment, typeName, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Segment: segment,
		Type:    typeName,
	}
}

func (e *Error) wrap(cause error) *Error {
	e.Cause = cause
	return e
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsPathResolutionError returns true if err is caused by an unknown field in a path.
func IsPathResolutionError(err error) bool {
	return hasCode(err, ErrPathResolution)
}

// IsTokenFormatError returns true if err is caused by a malformed collection token.
func IsTokenFormatError(err error) bool {
	return hasCode(err, ErrTokenFormat)
}

func IsUnknownOperatorError(err error) bool {
	return hasCode(err, ErrUnknownOperator)
}

func IsInvalidCollectionTypeError(err error) bool {
	return hasCode(err, ErrInvalidCollectionType)
}

func IsUnknownModelFieldError(err error) bool {
	return hasCode(err, ErrUnknownModelField)
}

func IsUnknownQuantifierError(err error) bool {
	return hasCode(err, ErrUnknownQuantifier)
}

func IsTypeMismatchError(err error) bool {
	return hasCode(err, ErrTypeMismatch)
}

func IsInvalidDirectionError(err error) bool {
	return hasCode(err, ErrInvalidDirection)
}

// IsFilterError returns true if err is any filter construction error.
func IsFilterError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
