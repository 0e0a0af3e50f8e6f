package scotch

import "github.com/yourusername/scotch/internal/errs"

// The public error type and taxonomy are implemented in internal/errs so
// that every internal package can construct well-formed errors without
// importing this root package (which imports them). These are thin
// re-exports, not a separate type.

type Code = errs.Code

const (
	CodeInvalidInput    = errs.CodeInvalidInput
	CodeOutOfMemory     = errs.CodeOutOfMemory
	CodeStrategyParse   = errs.CodeStrategyParse
	CodeStrategyRuntime = errs.CodeStrategyRuntime
	CodeNumericFailure  = errs.CodeNumericFailure
	CodeInternal        = errs.CodeInternal
)

type Error = errs.Error

var (
	NewError      = errs.New
	WrapError     = errs.Wrap
	NewParseError = errs.NewParseError

	ErrInvalidInput    = errs.ErrInvalidInput
	ErrOutOfMemory     = errs.ErrOutOfMemory
	ErrStrategyParse   = errs.ErrStrategyParse
	ErrStrategyRuntime = errs.ErrStrategyRuntime
	ErrNumericFailure  = errs.ErrNumericFailure
	ErrInternal        = errs.ErrInternal

	IsInvalidInput  = errs.IsInvalidInput
	IsStrategyParse = errs.IsStrategyParse
	IsNumericFailure = errs.IsNumericFailure
	GetCode         = errs.GetCode
)
