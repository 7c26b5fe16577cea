package eval

import (
	"errors"
	"fmt"

	"github.com/ucci-lang/ucci/token"
)

var (
	ErrType                  = errors.New("type error")
	ErrUndefinedVariable     = errors.New("undefined variable")
	ErrUninitializedVariable = errors.New("uninitialized variable")
	ErrNotCallable           = errors.New("not callable")
	ErrArity                 = errors.New("wrong number of arguments")
	ErrRedeclared            = errors.New("variable redeclared")
	ErrStackOverflow         = errors.New("stack overflow")
)

// RuntimeError is raised while executing a program. Err is one of the
// sentinel errors above.
type RuntimeError struct {
	Token token.Token
	Err   error
	Msg   string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Token.Line, e.Msg)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func runtimeError(where token.Token, kind error, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: where, Err: kind, Msg: fmt.Sprintf(format, args...)}
}
