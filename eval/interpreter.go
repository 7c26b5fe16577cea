package eval

import (
	"fmt"
	"io"
	"os"

	"github.com/ucci-lang/ucci/ast"
	"github.com/ucci-lang/ucci/token"
)

// MaxCallDepth bounds nested calls so runaway recursion is reported instead of
// exhausting the Go stack.
const MaxCallDepth = 4096

// Interpreter walks the AST. It is not safe for concurrent use: one
// Interpreter and its globals belong to a single execution at a time.
type Interpreter struct {
	globals  *Environment
	env      *Environment
	stdout   io.Writer
	stderr   io.Writer
	warnings []error
	depth    int
}

type Option func(*Interpreter)

// WithStdout sets where natives write program output.
func WithStdout(w io.Writer) Option {
	return func(in *Interpreter) { in.stdout = w }
}

// WithStderr sets where non-fatal runtime errors are reported.
func WithStderr(w io.Writer) Option {
	return func(in *Interpreter) { in.stderr = w }
}

func NewInterpreter(opts ...Option) *Interpreter {
	globals := NewEnvironment(nil)
	in := &Interpreter{
		globals: globals,
		env:     globals,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

var (
	_ ast.ExprVisitor[Value]      = &Interpreter{}
	_ ast.StmtVisitor[completion] = &Interpreter{}
)

// Define binds a global before the program runs.
func (in *Interpreter) Define(name string, v Value) {
	in.globals.Define(name, v)
}

// Declare reserves a global that the program must assign before reading.
func (in *Interpreter) Declare(name string) {
	in.globals.Declare(name)
}

func (in *Interpreter) Globals() *Environment {
	return in.globals
}

func (in *Interpreter) Stdout() io.Writer {
	return in.stdout
}

// Warnings returns the non-fatal runtime errors reported so far.
func (in *Interpreter) Warnings() []error {
	return in.warnings
}

func (in *Interpreter) warn(err error) {
	in.warnings = append(in.warnings, err)
	fmt.Fprintln(in.stderr, err)
}

func (in *Interpreter) Name() string {
	return "eval.Interpreter"
}

func (in *Interpreter) Init([]ast.Stmt) error {
	return nil
}

func (in *Interpreter) Run(program []ast.Stmt) ([]ast.Stmt, error) {
	return program, in.Interpret(program)
}

// Interpret executes program statement by statement. The first fatal error
// stops execution and is returned.
func (in *Interpreter) Interpret(program []ast.Stmt) error {
	for _, stmt := range program {
		c, err := in.execute(stmt)
		if err != nil {
			return err
		}
		if c.kind == completeReturn {
			return nil
		}
	}
	return nil
}

// Evaluate evaluates a single expression in the current scope.
func (in *Interpreter) Evaluate(expr ast.Expr) (Value, error) {
	return in.evaluate(expr)
}

type completionKind int

const (
	completeNormal completionKind = iota
	completeBreak
	completeReturn
)

// completion tells the enclosing block, loop or call how a statement ended.
type completion struct {
	kind  completionKind
	value Value // set for completeReturn
}

var normal = completion{kind: completeNormal}

func (in *Interpreter) execute(stmt ast.Stmt) (completion, error) {
	return ast.WalkStmt[completion](in, stmt)
}

func (in *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	return ast.WalkExpr[Value](in, expr)
}

// executeBlock runs stmts in env and restores the previous scope on every
// exit path.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) (completion, error) {
	prev := in.env
	in.env = env
	defer func() { in.env = prev }()

	for _, stmt := range stmts {
		c, err := in.execute(stmt)
		if err != nil || c.kind != completeNormal {
			return c, err
		}
	}

	return normal, nil
}

func (in *Interpreter) VisitBlock(b *ast.Block) (completion, error) {
	return in.executeBlock(b.Body, NewEnvironment(in.env))
}

func (in *Interpreter) VisitBreak(*ast.Break) (completion, error) {
	return completion{kind: completeBreak}, nil
}

func (in *Interpreter) VisitExpression(e *ast.Expression) (completion, error) {
	_, err := in.evaluate(e.Expr)
	return normal, err
}

func (in *Interpreter) VisitFunction(f *ast.Function) (completion, error) {
	in.env.Define(f.Name.Lexeme, &Function{Decl: f})
	return normal, nil
}

func (in *Interpreter) VisitIf(i *ast.If) (completion, error) {
	cond, err := in.evaluate(i.Cond)
	if err != nil {
		return normal, err
	}
	if IsTruthy(cond) {
		return in.execute(i.Then)
	}
	if i.Else != nil {
		return in.execute(i.Else)
	}
	return normal, nil
}

func (in *Interpreter) VisitReturn(r *ast.Return) (completion, error) {
	var value Value = Nil{}
	if r.Value != nil {
		var err error
		if value, err = in.evaluate(r.Value); err != nil {
			return normal, err
		}
	}
	return completion{kind: completeReturn, value: value}, nil
}

// VisitVar reports a name that is already visible in any enclosing scope, but
// still defines it in the current one.
func (in *Interpreter) VisitVar(v *ast.Var) (completion, error) {
	if in.env.Contains(v.Name.Lexeme) {
		in.warn(runtimeError(v.Name, ErrRedeclared, "Variable %s has already been declared.", v.Name.Lexeme))
	}

	value, err := in.evaluate(v.Init)
	if err != nil {
		return normal, err
	}
	in.env.Define(v.Name.Lexeme, value)

	return normal, nil
}

func (in *Interpreter) VisitWhile(w *ast.While) (completion, error) {
	for {
		cond, err := in.evaluate(w.Cond)
		if err != nil {
			return normal, err
		}
		if !IsTruthy(cond) {
			return normal, nil
		}

		c, err := in.execute(w.Body)
		if err != nil {
			return normal, err
		}
		switch c.kind {
		case completeBreak:
			return normal, nil
		case completeReturn:
			return c, nil
		}
	}
}

// VisitAssign reports an assignment to an unknown name and drops the value.
func (in *Interpreter) VisitAssign(a *ast.Assign) (Value, error) {
	value, err := in.evaluate(a.Value)
	if err != nil {
		return nil, err
	}

	if !in.env.Contains(a.Name.Lexeme) {
		in.warn(runtimeError(a.Name, ErrUndefinedVariable, "Undefined variable '%s'.", a.Name.Lexeme))
		return value, nil
	}
	if err := in.env.Assign(a.Name, value); err != nil {
		return nil, err
	}

	return value, nil
}

func (in *Interpreter) VisitBinary(b *ast.Binary) (Value, error) {
	left, err := in.evaluate(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(b.Right)
	if err != nil {
		return nil, err
	}

	//exhaustive:ignore
	switch b.Op.Kind {
	case token.PLUS:
		if l, ok := left.(Number); ok {
			if r, ok := right.(Number); ok {
				return l + r, nil
			}
		}
		return String(left.String() + right.String()), nil
	case token.EQUALEQUAL:
		return Bool(IsEqual(left, right)), nil
	case token.BANGEQUAL:
		return Bool(!IsEqual(left, right)), nil
	}

	l, r, err := checkNumbers(b.Op, left, right)
	if err != nil {
		return nil, err
	}

	//exhaustive:ignore
	switch b.Op.Kind {
	case token.MINUS:
		return l - r, nil
	case token.SLASH:
		return l / r, nil
	case token.STAR:
		return l * r, nil
	case token.GREATER:
		return Bool(l > r), nil
	case token.GREATEREQUAL:
		return Bool(l >= r), nil
	case token.LESS:
		return Bool(l < r), nil
	case token.LESSEQUAL:
		return Bool(l <= r), nil
	default:
		panic(fmt.Sprintf("unreachable: binary operator %v", b.Op))
	}
}

func checkNumbers(op token.Token, left, right Value) (Number, Number, error) {
	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return 0, 0, runtimeError(op, ErrType, "Operands of '%s' must be numbers.", op.Lexeme)
	}
	return l, r, nil
}

func (in *Interpreter) VisitCall(c *ast.Call) (Value, error) {
	callee, err := in.evaluate(c.Callee)
	if err != nil {
		return nil, err
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, runtimeError(c.Paren, ErrNotCallable, "Can't call %s: not a function.", callee)
	}
	if fn.Arity() != Variadic && fn.Arity() != len(c.Args) {
		return nil, runtimeError(c.Paren, ErrArity, "Expected %d arguments but got %d.", fn.Arity(), len(c.Args))
	}

	args := make([]Value, len(c.Args))
	for i, arg := range c.Args {
		v, err := in.evaluate(arg)
		if err != nil {
			return nil, err
		}
		if s, ok := v.(String); ok {
			v = s.Unquote()
		}
		args[i] = v
	}

	if in.depth >= MaxCallDepth {
		return nil, runtimeError(c.Paren, ErrStackOverflow, "Stack overflow.")
	}
	in.depth++
	defer func() { in.depth-- }()

	return fn.Call(in, args)
}

func (in *Interpreter) VisitGrouping(g *ast.Grouping) (Value, error) {
	return in.evaluate(g.Inner)
}

func (in *Interpreter) VisitLiteral(l *ast.Literal) (Value, error) {
	switch v := l.Value.(type) {
	case string:
		// already quoted by the lexer
		return String(v), nil
	default:
		return FromGo(v)
	}
}

func (in *Interpreter) VisitLogical(l *ast.Logical) (Value, error) {
	left, err := in.evaluate(l.Left)
	if err != nil {
		return nil, err
	}

	if l.Op.Kind == token.OR {
		if IsTruthy(left) {
			return left, nil
		}
	} else if !IsTruthy(left) {
		return left, nil
	}

	return in.evaluate(l.Right)
}

func (in *Interpreter) VisitUnary(u *ast.Unary) (Value, error) {
	operand, err := in.evaluate(u.Operand)
	if err != nil {
		return nil, err
	}

	//exhaustive:ignore
	switch u.Op.Kind {
	case token.MINUS:
		n, ok := operand.(Number)
		if !ok {
			return nil, runtimeError(u.Op, ErrType, "Operand of '-' must be a number.")
		}
		return -n, nil
	case token.BANG:
		return Bool(!IsTruthy(operand)), nil
	default:
		panic(fmt.Sprintf("unreachable: unary operator %v", u.Op))
	}
}

func (in *Interpreter) VisitVariable(v *ast.Variable) (Value, error) {
	return in.env.Get(v.Name)
}
