// Package errors provides typed domain errors with machine-readable codes
// and a mapping to HTTP status codes for the transport layer.
package errors

import (
	stderrors "errors"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unclassified error.
	CodeUnknown Code = "UNKNOWN"

	// Transport errors
	CodeInvalidRequest Code = "INVALID_REQUEST"

	// Parse errors
	CodeParseMalformedLine  Code = "PARSE_MALFORMED_LINE"
	CodeParseInvalidBoolean Code = "PARSE_INVALID_BOOLEAN"
	CodeParseDuplicateName  Code = "PARSE_DUPLICATE_NAME"

	// Evaluation errors
	CodeUnknownSubstitution         Code = "UNKNOWN_SUBSTITUTION"
	CodeSubstitutionMissingVariable Code = "SUBSTITUTION_MISSING_VARIABLE"
	CodeSubstitutionWrongKind       Code = "SUBSTITUTION_WRONG_KIND"
	CodeSubstitutionNoMatch         Code = "SUBSTITUTION_NO_MATCH"
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf extracts the domain code from an error chain. It returns the empty
// code for nil errors and CodeUnknown for errors outside the domain.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeUnknown
}

// HTTPStatus maps an error to an HTTP status code. Malformed requests map to
// 400, a substitution that cannot process an otherwise valid assignment set
// maps to 422, and anything unclassified maps to 500.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case "":
		return http.StatusOK
	case CodeInvalidRequest,
		CodeParseMalformedLine,
		CodeParseInvalidBoolean,
		CodeParseDuplicateName,
		CodeUnknownSubstitution:
		return http.StatusBadRequest
	case CodeSubstitutionMissingVariable,
		CodeSubstitutionWrongKind,
		CodeSubstitutionNoMatch:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
