package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ucci-lang/ucci/token"
)

// AST

// Expr is one of Assign, Binary, Call, Grouping, Literal, Logical, Unary or
// Variable. String renders the node as an S-expression.
type Expr interface {
	fmt.Stringer
	Base() token.Token
	expr()
}

// Stmt is one of Block, Break, Expression, Function, If, Return, Var or While.
type Stmt interface {
	fmt.Stringer
	Base() token.Token
	stmt()
}

type Assign struct {
	Name  token.Token
	Value Expr
}

func (a Assign) String() string {
	return parenthesize("assign", lexeme(a.Name), a.Value).String()
}

func (a *Assign) Base() token.Token {
	return a.Name
}

func (*Assign) expr() {}

var _ Expr = &Assign{}

type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (b Binary) String() string {
	return parenthesize("binary", b.Left, lexeme(b.Op), b.Right).String()
}

func (b *Binary) Base() token.Token {
	return b.Op
}

func (*Binary) expr() {}

var _ Expr = &Binary{}

type Call struct {
	Callee Expr
	// Paren is the closing parenthesis, used to report call errors.
	Paren token.Token
	Args  []Expr
}

func (c Call) String() string {
	return parenthesize("call", c.Callee, concat(c.Args)).String()
}

func (c *Call) Base() token.Token {
	return c.Paren
}

func (*Call) expr() {}

var _ Expr = &Call{}

type Grouping struct {
	Inner Expr
}

func (g Grouping) String() string {
	return parenthesize("grouping", g.Inner).String()
}

func (g *Grouping) Base() token.Token {
	return g.Inner.Base()
}

func (*Grouping) expr() {}

var _ Expr = &Grouping{}

// Literal holds float64, string (quotes included), bool or nil.
type Literal struct {
	token.Token
	Value any
}

func (l Literal) String() string {
	return parenthesize("literal", text(LiteralText(l.Value))).String()
}

func (l *Literal) Base() token.Token {
	return l.Token
}

func (*Literal) expr() {}

var _ Expr = &Literal{}

// LiteralText renders a literal value the way it is written in source.
func LiteralText(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

type Logical struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (l Logical) String() string {
	return parenthesize("logical", l.Left, lexeme(l.Op), l.Right).String()
}

func (l *Logical) Base() token.Token {
	return l.Op
}

func (*Logical) expr() {}

var _ Expr = &Logical{}

type Unary struct {
	Op      token.Token
	Operand Expr
}

func (u Unary) String() string {
	return parenthesize("unary", lexeme(u.Op), u.Operand).String()
}

func (u *Unary) Base() token.Token {
	return u.Op
}

func (*Unary) expr() {}

var _ Expr = &Unary{}

type Variable struct {
	Name token.Token
}

func (v Variable) String() string {
	return parenthesize("variable", lexeme(v.Name)).String()
}

func (v *Variable) Base() token.Token {
	return v.Name
}

func (*Variable) expr() {}

var _ Expr = &Variable{}

type Block struct {
	Brace token.Token
	Body  []Stmt
}

func (b Block) String() string {
	return parenthesize("block", concat(b.Body)).String()
}

func (b *Block) Base() token.Token {
	return b.Brace
}

func (*Block) stmt() {}

var _ Stmt = &Block{}

type Break struct {
	Keyword token.Token
}

func (b Break) String() string {
	return "(break)"
}

func (b *Break) Base() token.Token {
	return b.Keyword
}

func (*Break) stmt() {}

var _ Stmt = &Break{}

// Expression is an expression evaluated for its effects.
type Expression struct {
	Expr Expr
}

func (e Expression) String() string {
	return parenthesize("expr", e.Expr).String()
}

func (e *Expression) Base() token.Token {
	return e.Expr.Base()
}

func (*Expression) stmt() {}

var _ Stmt = &Expression{}

type Function struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func (f Function) String() string {
	params := make([]fmt.Stringer, len(f.Params))
	for i, p := range f.Params {
		params[i] = lexeme(p)
	}
	return parenthesize("function", lexeme(f.Name), parenthesize("", params...), concat(f.Body)).String()
}

func (f *Function) Base() token.Token {
	return f.Name
}

func (*Function) stmt() {}

var _ Stmt = &Function{}

type If struct {
	Keyword token.Token
	Cond    Expr
	Then    Stmt
	Else    Stmt // may be nil
}

func (i If) String() string {
	if i.Else == nil {
		return parenthesize("if", i.Cond, i.Then).String()
	}
	return parenthesize("if", i.Cond, i.Then, i.Else).String()
}

func (i *If) Base() token.Token {
	return i.Keyword
}

func (*If) stmt() {}

var _ Stmt = &If{}

type Return struct {
	Keyword token.Token
	Value   Expr // may be nil
}

func (r Return) String() string {
	if r.Value == nil {
		return "(return)"
	}
	return parenthesize("return", r.Value).String()
}

func (r *Return) Base() token.Token {
	return r.Keyword
}

func (*Return) stmt() {}

var _ Stmt = &Return{}

type Var struct {
	Name token.Token
	Init Expr
}

func (v Var) String() string {
	return parenthesize("var", lexeme(v.Name), v.Init).String()
}

func (v *Var) Base() token.Token {
	return v.Name
}

func (*Var) stmt() {}

var _ Stmt = &Var{}

type While struct {
	Keyword token.Token
	Cond    Expr
	Body    Stmt
}

func (w While) String() string {
	return parenthesize("while", w.Cond, w.Body).String()
}

func (w *While) Base() token.Token {
	return w.Keyword
}

func (*While) stmt() {}

var _ Stmt = &While{}

type text string

func (t text) String() string {
	return string(t)
}

func lexeme(t token.Token) fmt.Stringer {
	return text(t.Lexeme)
}

// parenthesize takes a head string and a variadic number of nodes that implement the fmt.Stringer interface.
// It returns a fmt.Stringer that represents a string where each node is parenthesized and separated by a space.
// If the head string is not empty, it is added at the beginning of the string.
func parenthesize(head string, elems ...fmt.Stringer) fmt.Stringer {
	var b strings.Builder
	b.WriteString("(")
	elemsStr := concat(elems).String()
	if head != "" {
		b.WriteString(head)
	}
	if elemsStr != "" {
		if head != "" {
			b.WriteString(" ")
		}
		b.WriteString(elemsStr)
	}
	b.WriteString(")")
	return &b
}

// concat takes a slice of nodes that implement the fmt.Stringer interface.
// It returns a fmt.Stringer that represents a string where each node is separated by a space.
func concat[T fmt.Stringer](elems []T) fmt.Stringer {
	var b strings.Builder
	for _, elem := range elems {
		// ignore empty string
		// e.g. concat({}) == ""
		str := elem.String()
		if str == "" {
			continue
		}
		if b.Len() != 0 {
			b.WriteString(" ")
		}
		b.WriteString(str)
	}
	return &b
}
