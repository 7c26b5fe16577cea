// Package builtin provides the native functions a host usually exposes to
// scripts.
package builtin

import (
	"fmt"
	"strings"
	"time"

	"github.com/ucci-lang/ucci/eval"
)

// Predefined registers every native into the interpreter's globals. It must
// run before the program does.
func Predefined(in *eval.Interpreter) {
	for _, n := range Natives() {
		in.Define(n.Name, n)
	}
}

func Natives() []*eval.Native {
	return []*eval.Native{
		{Name: "clock", Arity_: 0, Fn: clock},
		{Name: "print", Arity_: 1, Fn: printValue},
		{Name: "println", Arity_: eval.Variadic, Fn: printValues},
	}
}

// clock returns wall-clock milliseconds.
func clock(*eval.Interpreter, []eval.Value) (eval.Value, error) {
	return eval.Number(float64(time.Now().UnixNano()) / float64(time.Millisecond)), nil
}

// Text is how print renders a value: strings lose their quotes.
func Text(v eval.Value) string {
	if s, ok := v.(eval.String); ok {
		return s.Unquote().String()
	}
	return v.String()
}

func printValue(in *eval.Interpreter, args []eval.Value) (eval.Value, error) {
	if _, err := fmt.Fprintln(in.Stdout(), Text(args[0])); err != nil {
		return nil, err
	}
	return eval.Nil{}, nil
}

func printValues(in *eval.Interpreter, args []eval.Value) (eval.Value, error) {
	texts := make([]string, len(args))
	for i, arg := range args {
		texts[i] = Text(arg)
	}
	if _, err := fmt.Fprintln(in.Stdout(), strings.Join(texts, " ")); err != nil {
		return nil, err
	}
	return eval.Nil{}, nil
}
