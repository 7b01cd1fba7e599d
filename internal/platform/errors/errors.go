// Package errors carries the project error type: a code, a message,
// an optional field and operation tag, and a wrapped cause.
package errors

// Import this package as perr everywhere (platform/errors)

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies errors across services.
// Values ride the wire, so existing ones never move; append only.
type ErrorCode uint16

const (
	// ErrorCodeUnknown covers everything nothing else claims
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic marks a panic caught by the recovery middleware
	ErrorCodePanic

	// ErrorCodeUnavailable marks transient faults where a retry can succeed
	ErrorCodeUnavailable

	// ErrorCodeConflict marks edit conflicts other than duplicate keys
	ErrorCodeConflict

	// ErrorCodeBusy marks operations rejected while another holds the session
	ErrorCodeBusy

	// ErrorCodeInvalidArgument marks bad input parameters
	ErrorCodeInvalidArgument

	// ErrorCodeValidation marks input data that failed validation
	ErrorCodeValidation

	// ErrorCodeJSON marks request bodies that would not parse
	ErrorCodeJSON

	// ErrorCodeNotFound marks missing resources
	ErrorCodeNotFound

	// ErrorCodeDuplicateKey marks unique constraint violations
	ErrorCodeDuplicateKey

	// ErrorCodeDB marks database faults with no better classification
	ErrorCodeDB

	// ErrorCodeBatchFailed marks a multi-record submission failing as a unit
	ErrorCodeBatchFailed

	// ErrorCodeRecordFailed marks a single-record submission failure
	ErrorCodeRecordFailed

	// ErrorCodeUnauthorized marks requests rejected by the api key guard
	ErrorCodeUnauthorized
)

// statusByCode is the wire mapping; anything unmapped reads as a 500
var statusByCode = map[ErrorCode]int{
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
	ErrorCodeDuplicateKey:    http.StatusConflict,
	ErrorCodeConflict:        http.StatusConflict,
	ErrorCodeBusy:            http.StatusConflict,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeUnauthorized:    http.StatusUnauthorized,
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
	ErrorCodeBatchFailed:     http.StatusBadGateway,
	ErrorCodeRecordFailed:    http.StatusBadGateway,
}

// HTTPStatusCode maps an ErrorCode onto an http status
func HTTPStatusCode(c ErrorCode) int {
	if status, ok := statusByCode[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrNotFound is the shared not found sentinel
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error is the structured error.
// msg reads for humans, code for machines; field names the offending
// input when validation fails, op tags the operation, orig is the cause.
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Wire is the JSON shape handed back by the API
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// Error renders "message" or "message: cause"
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig == nil {
		return e.msg
	}
	return e.msg + ": " + e.orig.Error()
}

// Unwrap exposes the cause to errors.Is and errors.As
func (e *Error) Unwrap() error { return e.orig }

// Code reports the machine classification
func (e *Error) Code() ErrorCode { return e.code }

// Field names the offending input, empty when none was recorded
func (e *Error) Field() string { return e.field }

// Op reports the operation tag, empty when none was recorded
func (e *Error) Op() string { return e.op }

// ToWire converts an *Error to its Wire payload
func (e *Error) ToWire() Wire { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// WireFrom converts any error into a Wire payload.
// Foreign errors land as Unknown; nil gives the zero Wire.
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// Root walks Unwrap to the deepest cause
func Root(err error) error {
	if err == nil {
		return nil
	}
	for {
		next := stderrs.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// CodeOf extracts an ErrorCode from any error, Unknown when it has none
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus resolves the status for any error through its code
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// As unwraps and returns (*Error, true) when err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Metadata attachment

// clone copies the receiver so attached metadata never mutates a shared value
func (e *Error) clone() *Error {
	cp := *e
	return &cp
}

// WithField attaches a field to an *Error. Foreign errors pass through unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		cp := e.clone()
		cp.field = field
		return cp
	}
	return err
}

// WithOp attaches an operation tag to an *Error. Foreign errors pass through unchanged
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		cp := e.clone()
		cp.op = op
		return cp
	}
	return err
}

// WithFieldChain sets field on *Error, or lifts a foreign error into an
// Unknown-coded *Error so the field sticks either way
func WithFieldChain(err error, field string) error {
	if e, ok := As(err); ok {
		cp := e.clone()
		cp.field = field
		return cp
	}
	return &Error{code: ErrorCodeUnknown, msg: err.Error(), field: field, orig: err}
}

// Building errors

// New returns an *Error with code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns an *Error with code and a formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns an *Error wrapping orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns an *Error wrapping orig with code and a formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// WrapIf wraps only when err != nil, for one-line returns
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// Shorthand constructors, one per code

// NotFoundf formats a not found error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// InvalidArgf formats an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// DuplicateKeyf formats a duplicate key error
func DuplicateKeyf(format string, a ...any) error { return Newf(ErrorCodeDuplicateKey, format, a...) }

// DBf formats a general database error
func DBf(format string, a ...any) error { return Newf(ErrorCodeDB, format, a...) }

// JSONErrf formats a JSON parse error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf formats a recovered panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Conflictf formats a conflict error
func Conflictf(format string, a ...any) error { return Newf(ErrorCodeConflict, format, a...) }

// Busyf formats a busy error for serialized operations
func Busyf(format string, a ...any) error { return Newf(ErrorCodeBusy, format, a...) }

// BatchFailedf formats a batch submission error
func BatchFailedf(format string, a ...any) error { return Newf(ErrorCodeBatchFailed, format, a...) }

// RecordFailedf formats a single record submission error
func RecordFailedf(format string, a ...any) error { return Newf(ErrorCodeRecordFailed, format, a...) }

// Unauthorizedf formats an unauthorized error
func Unauthorizedf(format string, a ...any) error { return Newf(ErrorCodeUnauthorized, format, a...) }

// Unavailablef formats an unavailable error
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

// Internalf formats a generic internal error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }

// HTTP resolves status and wire body in one call
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatus(err), WireFrom(err)
}

// Retry classification

// Retryable reports whether the error is worth retrying.
// Backed by the Postgres classification in pg.go for now.
func Retryable(err error) bool { return IsRetryable(err) }
