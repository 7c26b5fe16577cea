package ast

import "fmt"

// ExprVisitor has one operation per expression variant.
type ExprVisitor[T any] interface {
	VisitAssign(*Assign) (T, error)
	VisitBinary(*Binary) (T, error)
	VisitCall(*Call) (T, error)
	VisitGrouping(*Grouping) (T, error)
	VisitLiteral(*Literal) (T, error)
	VisitLogical(*Logical) (T, error)
	VisitUnary(*Unary) (T, error)
	VisitVariable(*Variable) (T, error)
}

// StmtVisitor has one operation per statement variant.
type StmtVisitor[T any] interface {
	VisitBlock(*Block) (T, error)
	VisitBreak(*Break) (T, error)
	VisitExpression(*Expression) (T, error)
	VisitFunction(*Function) (T, error)
	VisitIf(*If) (T, error)
	VisitReturn(*Return) (T, error)
	VisitVar(*Var) (T, error)
	VisitWhile(*While) (T, error)
}

// WalkExpr dispatches e to the matching operation of v.
func WalkExpr[T any](v ExprVisitor[T], e Expr) (T, error) {
	switch e := e.(type) {
	case *Assign:
		return v.VisitAssign(e)
	case *Binary:
		return v.VisitBinary(e)
	case *Call:
		return v.VisitCall(e)
	case *Grouping:
		return v.VisitGrouping(e)
	case *Literal:
		return v.VisitLiteral(e)
	case *Logical:
		return v.VisitLogical(e)
	case *Unary:
		return v.VisitUnary(e)
	case *Variable:
		return v.VisitVariable(e)
	default:
		panic(fmt.Sprintf("unreachable: unknown expression %T", e))
	}
}

// WalkStmt dispatches s to the matching operation of v.
func WalkStmt[T any](v StmtVisitor[T], s Stmt) (T, error) {
	switch s := s.(type) {
	case *Block:
		return v.VisitBlock(s)
	case *Break:
		return v.VisitBreak(s)
	case *Expression:
		return v.VisitExpression(s)
	case *Function:
		return v.VisitFunction(s)
	case *If:
		return v.VisitIf(s)
	case *Return:
		return v.VisitReturn(s)
	case *Var:
		return v.VisitVar(s)
	case *While:
		return v.VisitWhile(s)
	default:
		panic(fmt.Sprintf("unreachable: unknown statement %T", s))
	}
}
