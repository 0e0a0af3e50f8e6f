// Package errs defines the closed error taxonomy of spec.md §7, shared
// by every internal package so none of them need to import the root
// module package (which itself imports them) to construct a well-formed
// error. The root package re-exports these names directly (scotch.Code,
// scotch.Error, scotch.NewError, ...) so callers never see this import
// path. Grounded on junjiewwang-perf-analysis/pkg/errors/errors.go
// (AppError{Code,Message,Err}, sentinel Err* vars, Is/Unwrap).
package errs

import (
	"errors"
	"fmt"
)

// Code identifies one of the closed set of error kinds a scotch operation
// can fail with. The taxonomy is closed: callers may safely switch over
// the known Code values.
type Code string

// The closed error taxonomy.
const (
	// CodeInvalidInput covers malformed files, failing invariants on
	// user-supplied arrays, and impossible parameters.
	CodeInvalidInput Code = "INVALID_INPUT"
	// CodeOutOfMemory covers any allocation failure.
	CodeOutOfMemory Code = "OUT_OF_MEMORY"
	// CodeStrategyParse covers a syntax or type error in a strategy
	// string; Error.Line/Error.Column are populated when known.
	CodeStrategyParse Code = "STRATEGY_PARSE"
	// CodeStrategyRuntime covers an unknown method or wrong parameter
	// shape discovered at apply time, for dynamically built strategies.
	CodeStrategyRuntime Code = "STRATEGY_RUNTIME"
	// CodeNumericFailure covers diffusion overflow/NaN detection.
	CodeNumericFailure Code = "NUMERIC_FAILURE"
	// CodeInternal covers assertion violations; should be unreachable in
	// release builds.
	CodeInternal Code = "INTERNAL"
)

// Error is the error type returned by every scotch entry point.
type Error struct {
	Code    Code
	Message string
	Err     error
	// Line and Column locate a StrategyParse error in the source string;
	// zero when not applicable.
	Line, Column int
}

// Error implements the error interface.
func (e *Error) Error() string {
	loc := ""
	if e.Line > 0 {
		loc = fmt.Sprintf(" (line %d, col %d)", e.Line, e.Column)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s%s: %v", e.Code, e.Message, loc, e.Err)
	}
	return fmt.Sprintf("[%s] %s%s", e.Code, e.Message, loc)
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new *Error with no wrapped cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap wraps err as an *Error of the given code.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// NewParseError creates a CodeStrategyParse error located at line/column.
func NewParseError(message string, line, column int) *Error {
	return &Error{Code: CodeStrategyParse, Message: message, Line: line, Column: column}
}

// Common sentinel errors, analogous to the teacher's getError table.
var (
	ErrInvalidInput    = New(CodeInvalidInput, "invalid input")
	ErrOutOfMemory     = New(CodeOutOfMemory, "out of memory")
	ErrStrategyParse   = New(CodeStrategyParse, "strategy parse error")
	ErrStrategyRuntime = New(CodeStrategyRuntime, "strategy runtime error")
	ErrNumericFailure  = New(CodeNumericFailure, "numeric failure")
	ErrInternal        = New(CodeInternal, "internal assertion violation")
)

// IsInvalidInput reports whether err is, or wraps, a CodeInvalidInput error.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsStrategyParse reports whether err is, or wraps, a CodeStrategyParse error.
func IsStrategyParse(err error) bool { return errors.Is(err, ErrStrategyParse) }

// IsNumericFailure reports whether err is, or wraps, a CodeNumericFailure error.
func IsNumericFailure(err error) bool { return errors.Is(err, ErrNumericFailure) }

// GetCode extracts the Code from err, or CodeInternal if err is not an
// *Error (and is non-nil) or "" if err is nil.
func GetCode(err error) Code {
	if err == nil {
		return ""
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeInternal
}
