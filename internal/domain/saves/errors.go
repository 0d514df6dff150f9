package saves

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("archive not found")
	ErrDecode     = errors.New("decode failed")
	ErrAnalysis   = errors.New("analysis failed")
	ErrInternal   = errors.New("internal error")
)

// Error carries a kind, a caller-facing message, optional diagnostic details and the cause.
type Error struct {
	Kind    error
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return e.Kind == target }

func Validation(format string, args ...any) *Error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(name string) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("archive %q not found", name)}
}

func Decode(msg string, details any, cause error) *Error {
	return &Error{Kind: ErrDecode, Message: msg, Details: details, Err: cause}
}

func Analysis(msg string, cause error) *Error {
	return &Error{Kind: ErrAnalysis, Message: msg, Err: cause}
}

func Internal(msg string, cause error) *Error {
	return &Error{Kind: ErrInternal, Message: msg, Err: cause}
}

// AsError extracts the *Error from a chain, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
