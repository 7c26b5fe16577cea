package eval

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ucci-lang/ucci/token"
)

// Environment is one scope in the chain of nested scopes. Lookups and
// assignments walk outward through parent until a binding is found.
type Environment struct {
	parent *Environment
	values map[string]Value
}

func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		parent: parent,
		values: make(map[string]Value),
	}
}

func (env *Environment) String() string {
	names := make([]string, 0, len(env.values))
	for name := range env.values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("{")
	for _, name := range names {
		b.WriteString(fmt.Sprintf(" %s:%v", name, env.values[name]))
	}
	b.WriteString(" }")
	if env.parent != nil {
		b.WriteString("\n\t&")
		b.WriteString(env.parent.String())
	}
	return b.String()
}

// Define binds name in this scope, replacing any binding it already has here.
func (env *Environment) Define(name string, v Value) {
	env.values[name] = v
}

// Declare binds name without a value; reading it fails until it is assigned.
func (env *Environment) Declare(name string) {
	env.values[name] = Unassigned
}

func (env *Environment) Get(name token.Token) (Value, error) {
	for e := env; e != nil; e = e.parent {
		if v, ok := e.values[name.Lexeme]; ok {
			if v == Unassigned {
				return nil, runtimeError(name, ErrUninitializedVariable, "Attempted to use unassigned variable '%s'.", name.Lexeme)
			}
			return v, nil
		}
	}

	return nil, runtimeError(name, ErrUndefinedVariable, "Undefined variable '%s'.", name.Lexeme)
}

// Assign stores v in the innermost scope that binds name. It never creates a
// binding.
func (env *Environment) Assign(name token.Token, v Value) error {
	for e := env; e != nil; e = e.parent {
		if _, ok := e.values[name.Lexeme]; ok {
			e.values[name.Lexeme] = v
			return nil
		}
	}

	return runtimeError(name, ErrUndefinedVariable, "Undefined variable '%s'.", name.Lexeme)
}

// Contains searches the whole chain, not just this scope.
func (env *Environment) Contains(name string) bool {
	for e := env; e != nil; e = e.parent {
		if _, ok := e.values[name]; ok {
			return true
		}
	}
	return false
}
