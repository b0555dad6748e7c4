package domain

import "errors"

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown            Code = "UNKNOWN"
	CodeAuthRequired       Code = "AUTH_REQUIRED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyEnrolled    Code = "ALREADY_ENROLLED"
	CodeNotEnrolled        Code = "NOT_ENROLLED"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeMissingFields      Code = "MISSING_FIELDS"
	CodeDuplicate          Code = "DUPLICATE"
	CodeBadRole            Code = "BAD_ROLE"

	// Backend is down or its circuit breaker is open.
	CodeUnavailable Code = "UNAVAILABLE"
)

// Error carries a Code and the message shown to the caller. Two Errors
// match under errors.Is when their codes are equal, so callers can test
// against the sentinels below regardless of message.
type Error struct {
	Code    Code
	Message string
}

func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrAuthRequired       = NewError(CodeAuthRequired, "Not authenticated")
	ErrForbidden          = NewError(CodeForbidden, "Insufficient permissions")
	ErrNotFound           = NewError(CodeNotFound, "Not found")
	ErrAlreadyEnrolled    = NewError(CodeAlreadyEnrolled, "Student is already signed up")
	ErrNotEnrolled        = NewError(CodeNotEnrolled, "Student is not signed up for this activity")
	ErrInvalidCredentials = NewError(CodeInvalidCredentials, "Invalid credentials")
	ErrMissingFields      = NewError(CodeMissingFields, "Missing user fields")
	ErrDuplicate          = NewError(CodeDuplicate, "User already exists")
	ErrBadRole            = NewError(CodeBadRole, "Invalid role")
	ErrUnavailable        = NewError(CodeUnavailable, "Service temporarily unavailable")
)

// CodeOf returns the Code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// MessageOf returns the caller-facing message for err. Errors without a
// domain code get a generic message so adapter details stay internal.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}
