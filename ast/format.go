package ast

import (
	"strings"
)

// Format renders a program back to source text. Parsing the result yields
// a tree with the same structure; `for` loops come back in their desugared
// while form.
func Format(program []Stmt) string {
	f := &formatter{}
	var b strings.Builder
	for _, s := range program {
		b.WriteString(f.stmt(s))
		b.WriteString("\n")
	}
	return b.String()
}

type formatter struct {
	depth int
}

var (
	_ ExprVisitor[string] = &formatter{}
	_ StmtVisitor[string] = &formatter{}
)

func (f *formatter) expr(e Expr) string {
	s, _ := WalkExpr[string](f, e)
	return s
}

func (f *formatter) stmt(s Stmt) string {
	str, _ := WalkStmt[string](f, s)
	return str
}

func (f *formatter) VisitAssign(a *Assign) (string, error) {
	return a.Name.Lexeme + " = " + f.expr(a.Value), nil
}

func (f *formatter) VisitBinary(b *Binary) (string, error) {
	return f.expr(b.Left) + " " + b.Op.Lexeme + " " + f.expr(b.Right), nil
}

func (f *formatter) VisitCall(c *Call) (string, error) {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = f.expr(arg)
	}
	return f.expr(c.Callee) + "(" + strings.Join(args, ", ") + ")", nil
}

func (f *formatter) VisitGrouping(g *Grouping) (string, error) {
	return "(" + f.expr(g.Inner) + ")", nil
}

func (f *formatter) VisitLiteral(l *Literal) (string, error) {
	return LiteralText(l.Value), nil
}

func (f *formatter) VisitLogical(l *Logical) (string, error) {
	return f.expr(l.Left) + " " + l.Op.Lexeme + " " + f.expr(l.Right), nil
}

func (f *formatter) VisitUnary(u *Unary) (string, error) {
	return u.Op.Lexeme + f.expr(u.Operand), nil
}

func (f *formatter) VisitVariable(v *Variable) (string, error) {
	return v.Name.Lexeme, nil
}

func (f *formatter) block(body []Stmt) string {
	if len(body) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{\n")
	f.depth++
	for _, s := range body {
		b.WriteString(strings.Repeat("  ", f.depth))
		b.WriteString(f.stmt(s))
		b.WriteString("\n")
	}
	f.depth--
	b.WriteString(strings.Repeat("  ", f.depth))
	b.WriteString("}")
	return b.String()
}

func (f *formatter) VisitBlock(b *Block) (string, error) {
	return f.block(b.Body), nil
}

func (f *formatter) VisitBreak(*Break) (string, error) {
	return "break;", nil
}

func (f *formatter) VisitExpression(e *Expression) (string, error) {
	return f.expr(e.Expr) + ";", nil
}

func (f *formatter) VisitFunction(fn *Function) (string, error) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Lexeme
	}
	return "function " + fn.Name.Lexeme + "(" + strings.Join(params, ", ") + ") " + f.block(fn.Body), nil
}

func (f *formatter) VisitIf(i *If) (string, error) {
	s := "if (" + f.expr(i.Cond) + ") " + f.stmt(i.Then)
	if i.Else != nil {
		s += " else " + f.stmt(i.Else)
	}
	return s, nil
}

func (f *formatter) VisitReturn(r *Return) (string, error) {
	if r.Value == nil {
		return "return;", nil
	}
	return "return " + f.expr(r.Value) + ";", nil
}

func (f *formatter) VisitVar(v *Var) (string, error) {
	return "var " + v.Name.Lexeme + " = " + f.expr(v.Init) + ";", nil
}

func (f *formatter) VisitWhile(w *While) (string, error) {
	return "while (" + f.expr(w.Cond) + ") " + f.stmt(w.Body), nil
}
