package jsonmend

import (
	"errors"
	"fmt"
)

// Error codes surfaced by the engine's entry points.
const (
	CodeInvalidInput  = "INVALID_INPUT"  // schema or argument shape rejected before traversal
	CodeParseError    = "PARSE_ERROR"    // text recovery could not produce a parseable value
	CodeInternalError = "INTERNAL_ERROR" // unexpected failure caught at the entry-point boundary
)

// Error is the engine's failure type. Schema violations are not failures:
// a ValidationResult with Valid=false and populated Errors is a normal
// successful return. Error is reserved for the taxonomy above.
type Error struct {
	Code    string
	Message string
	Detail  string // optional: recovery diagnostics, stack trace, etc.
	Cause   error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// AsError extracts an *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var ee *Error
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}

func invalidInput(format string, a ...any) *Error {
	return &Error{Code: CodeInvalidInput, Message: fmt.Sprintf(format, a...)}
}

func invalidInputCause(cause error, format string, a ...any) *Error {
	return &Error{Code: CodeInvalidInput, Message: fmt.Sprintf(format, a...), Cause: cause}
}

func parseError(msg, detail string) *Error {
	return &Error{Code: CodeParseError, Message: msg, Detail: detail}
}

func internalError(v any, stack []byte) *Error {
	return &Error{Code: CodeInternalError, Message: fmt.Sprint(v), Detail: string(stack)}
}
