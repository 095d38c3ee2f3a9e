// Package errors carries a coded error type that the HTTP layer turns into envelopes
package errors

// Import as perr so it never shadows the standard errors package

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine readable class of a failure
// the numeric values are part of the wire format, append only
type ErrorCode uint16

const (
	// ErrorCodeUnknown is anything we did not classify
	ErrorCodeUnknown ErrorCode = iota
	// ErrorCodePanic is a handler panic caught by the recoverer
	ErrorCodePanic
	// ErrorCodeUnavailable is a dependency that is down or starting
	ErrorCodeUnavailable
	// ErrorCodeTooManyRequests is a throttled public submission
	ErrorCodeTooManyRequests
	// ErrorCodeConflict is a state clash other than a unique key
	ErrorCodeConflict
	// ErrorCodeUnauthorized is a missing or bad session
	ErrorCodeUnauthorized
	// ErrorCodeForbidden is a session without the needed role
	ErrorCodeForbidden
	// ErrorCodeInvalidArgument is a well formed request naming something unusable
	ErrorCodeInvalidArgument
	// ErrorCodeValidation is a submission that failed field rules
	ErrorCodeValidation
	// ErrorCodeJSON is a body that could not be decoded
	ErrorCodeJSON
	// ErrorCodeNotFound is a missing registration, review or user
	ErrorCodeNotFound
	// ErrorCodeDuplicateKey is a unique constraint hit
	ErrorCodeDuplicateKey
	// ErrorCodeDB is any other database failure
	ErrorCodeDB
)

var statusByCode = map[ErrorCode]int{
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
	ErrorCodeDuplicateKey:    http.StatusConflict,
	ErrorCodeConflict:        http.StatusConflict,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeUnauthorized:    http.StatusUnauthorized,
	ErrorCodeForbidden:       http.StatusForbidden,
	ErrorCodeTooManyRequests: http.StatusTooManyRequests,
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
}

// Status returns the HTTP status for c, unmapped codes are 500
func (c ErrorCode) Status() int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// ErrNotFound is what store helpers return when no row matched
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error is a coded failure with an optional cause
// msg is safe to show a client, the cause never is
type Error struct {
	cause   error
	msg     string
	code    ErrorCode
	field   string
	details []Detail
}

// Detail names one rejected input field
type Detail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Wire is the client facing projection of an error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Details []Detail  `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error     { return e.cause }
func (e *Error) Code() ErrorCode   { return e.code }
func (e *Error) Field() string     { return e.field }
func (e *Error) Details() []Detail { return e.details }

// WireFrom projects err for a response body
// foreign errors keep their text, reply code masks them on 5xx
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field, Details: e.details}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// Root follows Unwrap to the innermost cause
func Root(err error) error {
	for {
		next := stderrs.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// As finds the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf returns err's code or ErrorCodeUnknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus is the response status for err
func HTTPStatus(err error) int { return CodeOf(err).Status() }

// WithField returns a copy of err naming the offending field
// foreign errors pass through untouched
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.field = field
	return &c
}

// WithDetails returns a copy of err with details appended
func WithDetails(err error, details ...Detail) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.details = append(append([]Detail(nil), e.details...), details...)
	return &c
}

// New returns an error with code and msg
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Wrap attaches code and a client safe msg to cause
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

func newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Shorthands per code, the formatted message reaches the client

func NotFoundf(format string, a ...any) error        { return newf(ErrorCodeNotFound, format, a...) }
func InvalidArgf(format string, a ...any) error      { return newf(ErrorCodeInvalidArgument, format, a...) }
func Validationf(format string, a ...any) error      { return newf(ErrorCodeValidation, format, a...) }
func JSONErrf(format string, a ...any) error         { return newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error        { return newf(ErrorCodePanic, format, a...) }
func Unauthorizedf(format string, a ...any) error    { return newf(ErrorCodeUnauthorized, format, a...) }
func Forbiddenf(format string, a ...any) error       { return newf(ErrorCodeForbidden, format, a...) }
func Conflictf(format string, a ...any) error        { return newf(ErrorCodeConflict, format, a...) }
func TooManyRequestsf(format string, a ...any) error { return newf(ErrorCodeTooManyRequests, format, a...) }
func Unavailablef(format string, a ...any) error     { return newf(ErrorCodeUnavailable, format, a...) }
func Internalf(format string, a ...any) error        { return newf(ErrorCodeUnknown, format, a...) }
