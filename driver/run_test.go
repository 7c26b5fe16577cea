package driver_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ucci-lang/ucci/ast"
	"github.com/ucci-lang/ucci/driver"
)

type recorder struct {
	name string
	log  *[]string
	err  error
}

func (r recorder) Init([]ast.Stmt) error {
	*r.log = append(*r.log, r.name+".Init")
	return nil
}

func (r recorder) Run(program []ast.Stmt) ([]ast.Stmt, error) {
	*r.log = append(*r.log, r.name+".Run")
	return program, r.err
}

func TestPassRunnerOrder(t *testing.T) {
	t.Parallel()
	var log []string
	errStop := errors.New("stop")

	r := driver.NewPassRunner()
	r.AddPass(recorder{"a", &log, nil})
	r.AddPass(recorder{"b", &log, errStop})
	r.AddPass(recorder{"c", &log, nil})

	_, err := r.RunSource("1;")
	if !errors.Is(err, errStop) {
		t.Errorf("RunSource returned %v, expected %v", err, errStop)
	}
	if diff := cmp.Diff([]string{"a.Init", "a.Run", "b.Init", "b.Run"}, log); diff != "" {
		t.Errorf("pass order mismatch (-want +got):\n%s", diff)
	}
}

func TestRunSourceSkipsPassesOnSyntaxError(t *testing.T) {
	t.Parallel()
	var log []string
	r := driver.NewPassRunner()
	r.AddPass(recorder{"a", &log, nil})

	_, err := r.RunSource("print(1);\n@\nvar = 2;")
	if err == nil {
		t.Fatal("RunSource returned no error")
	}
	if len(log) != 0 {
		t.Errorf("passes ran despite errors: %v", log)
	}

	var actual []string
	for _, err := range driver.Errors(err) {
		actual = append(actual, err.Error())
	}
	expected := []string{
		"[Line 2] Error: Unrecognized character: @.",
		"[Line 3] Error at '=': Expect variable name.",
	}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestDump(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	r := driver.NewPassRunner()
	r.AddPass(driver.Dump{W: &b})

	if _, err := r.RunSource("var x = 1; { x = -x; }"); err != nil {
		t.Fatalf("RunSource returned error: %v", err)
	}
	expected := "(var x (literal 1))\n(block (expr (assign x (unary - (variable x)))))\n"
	if diff := cmp.Diff(expected, b.String()); diff != "" {
		t.Errorf("Dump mismatch (-want +got):\n%s", diff)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	r := driver.NewPassRunner()
	r.AddPass(driver.Format{W: &b})

	if _, err := r.RunSource("if(a)print(1);else{}"); err != nil {
		t.Fatalf("RunSource returned error: %v", err)
	}
	if diff := cmp.Diff("if (a) print(1); else {}\n", b.String()); diff != "" {
		t.Errorf("Format mismatch (-want +got):\n%s", diff)
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()
	e1 := errors.New("one")
	e2 := errors.New("two")
	e3 := errors.New("three")

	if driver.Errors(nil) != nil {
		t.Error("Errors(nil) is not nil")
	}
	actual := driver.Errors(errors.Join(errors.Join(e1, nil), errors.Join(e2, e3)))
	if len(actual) != 3 || actual[0] != e1 || actual[1] != e2 || actual[2] != e3 {
		t.Errorf("Errors returned %v", actual)
	}
	if actual := driver.Errors(e1); len(actual) != 1 || actual[0] != e1 {
		t.Errorf("Errors returned %v", actual)
	}
}
