package parser

import (
	"errors"

	"github.com/ucci-lang/ucci/ast"
	"github.com/ucci-lang/ucci/token"
	"github.com/ucci-lang/ucci/utils"
)

// MaxArgs bounds both call arguments and function parameters.
const MaxArgs = 255

// ErrMissingInitializer aborts parsing: a `var` without `= expr` is not a
// recoverable syntax error.
var ErrMissingInitializer = errors.New("Variable declaration requires an initializer.")

type Parser struct {
	tokens  []token.Token
	current int
	err     error
}

func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens, 0, nil}
}

// Parse returns every well-formed top-level statement. Malformed statements
// are reported in the joined error and skipped.
func (p *Parser) Parse() ([]ast.Stmt, error) {
	p.err = nil
	stmts := []ast.Stmt{}
	for !p.IsAtEnd() {
		stmt, err := p.decl()
		if err != nil {
			p.recover(err)
			break
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	return stmts, p.err
}

// ParseExpr parses a single expression followed by the end of input.
func (p *Parser) ParseExpr() (ast.Expr, error) {
	p.err = nil
	expr, err := p.expr()
	if err != nil {
		p.recover(err)
		return nil, p.err
	}
	if !p.IsAtEnd() {
		p.recover(errorAt(p.peek(), "Expect end of expression."))
	}

	return expr, p.err
}

// decl = varDecl | funDecl | stmt ;
//
// decl returns a non-nil error only when parsing cannot continue.
// Recoverable errors are recorded and the parser resynchronizes.
func (p *Parser) decl() (ast.Stmt, error) {
	var stmt ast.Stmt
	var err error
	switch {
	case p.match(token.VAR):
		stmt, err = p.varDecl()
	case p.match(token.FUNCTION):
		stmt, err = p.funDecl()
	default:
		stmt, err = p.stmt()
	}
	if err == nil {
		return stmt, nil
	}
	if errors.Is(err, ErrMissingInitializer) {
		return nil, err
	}
	p.recover(err)
	p.synchronize()

	return nil, nil
}

// varDecl = "var" IDENT "=" expr ";" ;
func (p *Parser) varDecl() (*ast.Var, error) {
	name, err := p.consume(token.IDENT, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	if !p.match(token.EQUAL) {
		return nil, utils.ErrorAt{Where: p.peek(), Err: ErrMissingInitializer}
	}
	init, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}

	return &ast.Var{Name: name, Init: init}, nil
}

// funDecl = "function" IDENT "(" params? ")" block ;
// params = IDENT ("," IDENT)* ;
func (p *Parser) funDecl() (*ast.Function, error) {
	name, err := p.consume(token.IDENT, "Expect function name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LEFTPAREN, "Expect '(' after function name."); err != nil {
		return nil, err
	}
	params := []token.Token{}
	if !p.check(token.RIGHTPAREN) {
		for {
			if len(params) >= MaxArgs {
				p.recover(errorAt(p.peek(), "Can't have more than 255 parameters."))
			}
			param, err := p.consume(token.IDENT, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.RIGHTPAREN, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LEFTBRACE, "Expect '{' before function body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.Function{Name: name, Params: params, Body: body}, nil
}

// stmt = forStmt | ifStmt | whileStmt | block | breakStmt | returnStmt | exprStmt ;
func (p *Parser) stmt() (ast.Stmt, error) {
	switch {
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.match(token.LEFTBRACE):
		brace := p.previous()
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		return &ast.Block{Brace: brace, Body: body}, nil
	case p.match(token.BREAK):
		return p.breakStmt()
	case p.match(token.RETURN):
		return p.returnStmt()
	default:
		return p.exprStmt()
	}
}

// forStmt = "for" "(" (varDecl | exprStmt | ";") expr? ";" expr? ")" stmt ;
//
// The loop is desugared into blocks and a while statement.
func (p *Parser) forStmt() (ast.Stmt, error) {
	keyword := p.previous()
	if _, err := p.consume(token.LEFTPAREN, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var init ast.Stmt
	var err error
	switch {
	case p.match(token.SEMICOLON):
	case p.match(token.VAR):
		init, err = p.varDecl()
	default:
		init, err = p.exprStmt()
	}
	if err != nil {
		return nil, err
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		if cond, err = p.expr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var incr ast.Expr
	if !p.check(token.RIGHTPAREN) {
		if incr, err = p.expr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RIGHTPAREN, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.stmt()
	if err != nil {
		return nil, err
	}

	if incr != nil {
		body = &ast.Block{Brace: keyword, Body: []ast.Stmt{body, &ast.Expression{Expr: incr}}}
	}
	if cond == nil {
		cond = &ast.Literal{Token: keyword, Value: true}
	}
	body = &ast.While{Keyword: keyword, Cond: cond, Body: body}
	if init != nil {
		body = &ast.Block{Brace: keyword, Body: []ast.Stmt{init, body}}
	}

	return body, nil
}

// ifStmt = "if" "(" expr ")" stmt ("else" stmt)? ;
func (p *Parser) ifStmt() (*ast.If, error) {
	keyword := p.previous()
	if _, err := p.consume(token.LEFTPAREN, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RIGHTPAREN, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	then, err := p.stmt()
	if err != nil {
		return nil, err
	}
	var els ast.Stmt
	if p.match(token.ELSE) {
		if els, err = p.stmt(); err != nil {
			return nil, err
		}
	}

	return &ast.If{Keyword: keyword, Cond: cond, Then: then, Else: els}, nil
}

// whileStmt = "while" "(" expr ")" stmt ;
func (p *Parser) whileStmt() (*ast.While, error) {
	keyword := p.previous()
	if _, err := p.consume(token.LEFTPAREN, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RIGHTPAREN, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.stmt()
	if err != nil {
		return nil, err
	}

	return &ast.While{Keyword: keyword, Cond: cond, Body: body}, nil
}

// block = "{" decl* "}" ;
func (p *Parser) block() ([]ast.Stmt, error) {
	stmts := []ast.Stmt{}
	for !p.check(token.RIGHTBRACE) && !p.IsAtEnd() {
		stmt, err := p.decl()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := p.consume(token.RIGHTBRACE, "Expect '}' after block."); err != nil {
		return nil, err
	}

	return stmts, nil
}

// breakStmt = "break" ";" ;
func (p *Parser) breakStmt() (*ast.Break, error) {
	keyword := p.previous()
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after break statement."); err != nil {
		return nil, err
	}

	return &ast.Break{Keyword: keyword}, nil
}

// returnStmt = "return" expr? ";" ;
func (p *Parser) returnStmt() (*ast.Return, error) {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		var err error
		if value, err = p.expr(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after return value."); err != nil {
		return nil, err
	}

	return &ast.Return{Keyword: keyword, Value: value}, nil
}

// exprStmt = expr ";" ;
func (p *Parser) exprStmt() (*ast.Expression, error) {
	expr, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}

	return &ast.Expression{Expr: expr}, nil
}

// expr = assignment ;
func (p *Parser) expr() (ast.Expr, error) {
	return p.assignment()
}

// assignment = IDENT "=" assignment | or ;
func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(token.EQUAL) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Name: v.Name, Value: value}, nil
		}

		// reported, but the surrounding statement is still well-formed
		p.recover(errorAt(equals, "Invalid assignment target."))
	}

	return expr, nil
}

// or = and ("or" and)* ;
func (p *Parser) or() (ast.Expr, error) {
	return p.logical(p.and, token.OR)
}

// and = equality ("and" equality)* ;
func (p *Parser) and() (ast.Expr, error) {
	return p.logical(p.equality, token.AND)
}

func (p *Parser) logical(next func() (ast.Expr, error), kind token.Kind) (ast.Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(kind) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}

	return expr, nil
}

// equality = comparison (("!=" | "==") comparison)* ;
func (p *Parser) equality() (ast.Expr, error) {
	return p.binary(p.comparison, token.BANGEQUAL, token.EQUALEQUAL)
}

// comparison = term ((">" | ">=" | "<" | "<=") term)* ;
func (p *Parser) comparison() (ast.Expr, error) {
	return p.binary(p.term, token.GREATER, token.GREATEREQUAL, token.LESS, token.LESSEQUAL)
}

// term = factor (("-" | "+") factor)* ;
func (p *Parser) term() (ast.Expr, error) {
	return p.binary(p.factor, token.MINUS, token.PLUS)
}

// factor = unary (("/" | "*") unary)* ;
func (p *Parser) factor() (ast.Expr, error) {
	return p.binary(p.unary, token.SLASH, token.STAR)
}

func (p *Parser) binary(next func() (ast.Expr, error), kinds ...token.Kind) (ast.Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(kinds...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}

	return expr, nil
}

// unary = ("!" | "-") unary | call ;
func (p *Parser) unary() (ast.Expr, error) {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, Operand: operand}, nil
	}

	return p.call()
}

// call = primary ("(" args? ")")* ;
func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(token.LEFTPAREN) {
		if expr, err = p.callTail(expr); err != nil {
			return nil, err
		}
	}

	return expr, nil
}

// args = expr ("," expr)* ;
func (p *Parser) callTail(callee ast.Expr) (*ast.Call, error) {
	args := []ast.Expr{}
	if !p.check(token.RIGHTPAREN) {
		for {
			if len(args) >= MaxArgs {
				p.recover(errorAt(p.peek(), "Can't have more than 255 arguments."))
			}
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren, err := p.consume(token.RIGHTPAREN, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}

	return &ast.Call{Callee: callee, Paren: paren, Args: args}, nil
}

// primary = "false" | "true" | "nil" | NUMBER | STRING | "(" expr ")" | IDENT ;
func (p *Parser) primary() (ast.Expr, error) {
	//exhaustive:ignore
	switch tok := p.peek(); tok.Kind {
	case token.FALSE:
		p.advance()
		return &ast.Literal{Token: tok, Value: false}, nil
	case token.TRUE:
		p.advance()
		return &ast.Literal{Token: tok, Value: true}, nil
	case token.NIL:
		p.advance()
		return &ast.Literal{Token: tok, Value: nil}, nil
	case token.NUMBER, token.STRING:
		p.advance()
		return &ast.Literal{Token: tok, Value: tok.Literal}, nil
	case token.LEFTPAREN:
		p.advance()
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RIGHTPAREN, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &ast.Grouping{Inner: inner}, nil
	case token.IDENT:
		p.advance()
		return &ast.Variable{Name: tok}, nil
	default:
		return nil, errorAt(tok, "Expect expression.")
	}
}

// synchronize discards tokens until a statement boundary.
func (p *Parser) synchronize() {
	p.advance()

	for !p.IsAtEnd() {
		if p.previous().Kind == token.SEMICOLON {
			return
		}

		//exhaustive:ignore
		switch p.peek().Kind {
		case token.FUNCTION, token.VAR, token.FOR, token.IF, token.WHILE, token.RETURN:
			return
		}

		p.advance()
	}
}

func (p *Parser) recover(err error) {
	p.err = errors.Join(p.err, err)
}

func (p Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) advance() token.Token {
	if !p.IsAtEnd() {
		p.current++
	}

	return p.previous()
}

func (p Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p Parser) IsAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p Parser) check(kind token.Kind) bool {
	if p.IsAtEnd() {
		return false
	}

	return p.peek().Kind == kind
}

// match consumes the next token if it has one of kinds.
func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}

	return false
}

func (p *Parser) consume(kind token.Kind, msg string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}

	return p.peek(), errorAt(p.peek(), msg)
}

type SyntaxError struct {
	Msg string
}

func (e SyntaxError) Error() string {
	return e.Msg
}

func errorAt(t token.Token, msg string) error {
	return utils.ErrorAt{Where: t, Err: SyntaxError{Msg: msg}}
}
