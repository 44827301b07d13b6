package dom

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes DOM errors.
type ErrorCode string

const (
	// ErrCodeSandboxDropped indicates a weak sandbox (or self) reference
	// could not be resolved.
	ErrCodeSandboxDropped ErrorCode = "SANDBOX_DROPPED"

	// ErrCodeNodeCastFail indicates an erased handle did not hold the
	// requested kind.
	ErrCodeNodeCastFail ErrorCode = "NODE_CAST_FAIL"

	// ErrCodeInvalidQuerySelector indicates a selector string failed
	// validation.
	ErrCodeInvalidQuerySelector ErrorCode = "INVALID_QUERY_SELECTOR"
)

// Error is the single error type returned by this package.
// Errors compare equal under errors.Is when their codes match, so detailed
// errors still match the Err* sentinels.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is a *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinels for errors.Is.
var (
	ErrSandboxDropped       = &Error{Code: ErrCodeSandboxDropped, Message: "sandbox has been dropped"}
	ErrNodeCastFail         = &Error{Code: ErrCodeNodeCastFail, Message: "node is not of the requested kind"}
	ErrInvalidQuerySelector = &Error{Code: ErrCodeInvalidQuerySelector, Message: "invalid query selector"}
)

// IsSandboxDropped returns true if err is, or wraps, a sandbox-dropped error.
func IsSandboxDropped(err error) bool {
	return errors.Is(err, ErrSandboxDropped)
}

// IsNodeCastFail returns true if err is, or wraps, a failed node cast.
func IsNodeCastFail(err error) bool {
	return errors.Is(err, ErrNodeCastFail)
}

// IsInvalidQuerySelector returns true if err is, or wraps, a selector
// validation error.
func IsInvalidQuerySelector(err error) bool {
	return errors.Is(err, ErrInvalidQuerySelector)
}

func newCastError(want NodeType, got AnyNode) *Error {
	if got.record == nil {
		return &Error{Code: ErrCodeNodeCastFail, Message: fmt.Sprintf("cannot cast empty handle to %s", want)}
	}
	return &Error{
		Code:    ErrCodeNodeCastFail,
		Message: fmt.Sprintf("cannot cast %s node to %s", got.NodeType(), want),
	}
}

func newSelectorError(input string, offset int, r rune) *Error {
	return &Error{
		Code:    ErrCodeInvalidQuerySelector,
		Message: fmt.Sprintf("invalid character %q at offset %d in %q: only ASCII letters and digits are allowed", r, offset, input),
	}
}
