package eval

import (
	"fmt"
	"strconv"
	"strings"
)

type Value interface {
	fmt.Stringer
	value()
}

// Number is the only numeric type.
type Number float64

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (Number) value() {}

var _ Value = Number(0)

// String holds text exactly as scanned, so literals keep their quotes.
type String string

func (s String) String() string {
	return string(s)
}

func (String) value() {}

// Unquote removes every quote character.
func (s String) Unquote() String {
	return String(strings.ReplaceAll(string(s), `"`, ""))
}

var _ Value = String("")

type Bool bool

func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}

func (Bool) value() {}

var _ Value = Bool(false)

type Nil struct{}

func (Nil) String() string {
	return "nil"
}

func (Nil) value() {}

var _ Value = Nil{}

// unassigned marks a declared binding that has no value yet. It never
// escapes an Environment.
type unassigned struct{}

func (unassigned) String() string {
	return "<unassigned>"
}

func (unassigned) value() {}

// Unassigned is the value of a binding created by Declare.
var Unassigned Value = unassigned{}

// IsTruthy reports whether v counts as true in a condition: nil and false are
// false, everything else (including 0 and "") is true.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// IsEqual compares two values. Callables are equal only to themselves.
func IsEqual(a, b Value) bool {
	return a == b
}

// FromGo converts a host scalar into a Value. Strings gain surrounding quotes
// so they behave like literals written in a script.
func FromGo(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return Nil{}, nil
	case bool:
		return Bool(v), nil
	case int:
		return Number(v), nil
	case int64:
		return Number(v), nil
	case float64:
		return Number(v), nil
	case string:
		return String(`"` + v + `"`), nil
	case Value:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported host value %v (%T)", v, v)
	}
}
