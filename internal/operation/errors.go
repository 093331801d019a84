package operation

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDivisionByZero   = errors.New("division by zero")
)

// Error is a calculation failure of a known kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func invalidInputf(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

// UnknownOperation reports a token that names no registered operation.
// The token is kept exactly as the caller supplied it.
func UnknownOperation(token string) error {
	return &Error{Kind: ErrUnknownOperation, Msg: token}
}

// Stable kind codes, used as metric labels and trace reasons.
const (
	KindUnknownOperation = "unknown_operation"
	KindInvalidInput     = "invalid_input"
	KindDivisionByZero   = "division_by_zero"
	KindInternal         = "internal"
)

// KindOf maps err to its stable kind code. It returns "" for a nil error and
// KindInternal for errors outside the calculation taxonomy.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnknownOperation):
		return KindUnknownOperation
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrDivisionByZero):
		return KindDivisionByZero
	default:
		return KindInternal
	}
}
