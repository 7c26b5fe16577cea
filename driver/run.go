package driver

import (
	"errors"
	"fmt"
	"io"

	"github.com/ucci-lang/ucci/ast"
	"github.com/ucci-lang/ucci/lexer"
	"github.com/ucci-lang/ucci/parser"
)

type Pass interface {
	Init([]ast.Stmt) error
	Run([]ast.Stmt) ([]ast.Stmt, error)
}

type PassRunner struct {
	passes []Pass
}

func NewPassRunner() *PassRunner {
	return &PassRunner{}
}

// AddPass adds a pass to the end of the pass list.
func (r *PassRunner) AddPass(pass Pass) {
	r.passes = append(r.passes, pass)
}

// Run executes passes in order.
// If an error occurs, it stops the execution and returns the current program.
func (r *PassRunner) Run(program []ast.Stmt) ([]ast.Stmt, error) {
	for _, pass := range r.passes {
		err := pass.Init(program)
		if err != nil {
			return program, err
		}
		program, err = pass.Run(program)
		if err != nil {
			return program, err
		}
	}

	return program, nil
}

// RunSource scans and parses the source code and executes passes in order.
// Scan and parse errors are all collected; if there are any, no pass runs.
func (r *PassRunner) RunSource(source string) ([]ast.Stmt, error) {
	program, err := Parse(source)
	if err != nil {
		return program, err
	}

	return r.Run(program)
}

func Parse(source string) ([]ast.Stmt, error) {
	tokens, lexErr := lexer.Lex(source)
	program, parseErr := parser.NewParser(tokens).Parse()

	return program, errors.Join(lexErr, parseErr)
}

// Dump prints each statement as an S-expression.
type Dump struct {
	W io.Writer
}

func (d Dump) Init([]ast.Stmt) error {
	return nil
}

func (d Dump) Run(program []ast.Stmt) ([]ast.Stmt, error) {
	for _, stmt := range program {
		if _, err := fmt.Fprintln(d.W, stmt); err != nil {
			return program, err
		}
	}
	return program, nil
}

// Format prints the program as source text.
type Format struct {
	W io.Writer
}

func (f Format) Init([]ast.Stmt) error {
	return nil
}

func (f Format) Run(program []ast.Stmt) ([]ast.Stmt, error) {
	_, err := io.WriteString(f.W, ast.Format(program))
	return program, err
}

// Errors flattens a joined error into its parts.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	if errs, ok := err.(interface{ Unwrap() []error }); ok {
		var flat []error
		for _, err := range errs.Unwrap() {
			flat = append(flat, Errors(err)...)
		}
		return flat
	}
	return []error{err}
}
