package eval

import (
	"fmt"

	"github.com/ucci-lang/ucci/ast"
)

// Variadic is the arity of a callable that accepts any number of arguments.
const Variadic = -1

// Callable is implemented by script functions and host natives.
type Callable interface {
	Value
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

// Function is a function declared in a script. Its body always runs in a scope
// whose parent is the global environment: locals of the declaring scope are not
// captured.
type Function struct {
	Decl *ast.Function
}

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.Decl.Name.Lexeme)
}

func (*Function) value() {}

func (f *Function) Arity() int {
	return len(f.Decl.Params)
}

func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(in.globals)
	for i, param := range f.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	c, err := in.executeBlock(f.Decl.Body, env)
	if err != nil {
		return nil, err
	}
	if c.kind == completeReturn {
		return c.value, nil
	}

	return Nil{}, nil
}

var (
	_ Value    = &Function{}
	_ Callable = &Function{}
)

// Native is a callable implemented by the host.
type Native struct {
	Name   string
	Arity_ int
	Fn     func(in *Interpreter, args []Value) (Value, error)
}

func (n *Native) String() string {
	return fmt.Sprintf("<native fn %s>", n.Name)
}

func (*Native) value() {}

func (n *Native) Arity() int {
	return n.Arity_
}

func (n *Native) Call(in *Interpreter, args []Value) (Value, error) {
	return n.Fn(in, args)
}

var (
	_ Value    = &Native{}
	_ Callable = &Native{}
)
