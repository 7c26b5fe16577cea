package parser_test

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ucci-lang/ucci/ast"
	"github.com/ucci-lang/ucci/driver"
	"github.com/ucci-lang/ucci/lexer"
	"github.com/ucci-lang/ucci/parser"
	"github.com/ucci-lang/ucci/utils"
)

type reporter interface {
	Errorf(format string, args ...any)
}

func dump(program []ast.Stmt) string {
	var b strings.Builder
	for _, stmt := range program {
		b.WriteString(stmt.String())
		b.WriteString("\n")
	}
	return b.String()
}

func completeParse(t reporter, label, input, expected string) {
	program, err := driver.Parse(input)
	if err != nil {
		t.Errorf("Parse %s returned error: %v", label, err)
		return
	}

	if diff := cmp.Diff(expected, dump(program)); diff != "" {
		t.Errorf("Parse %s mismatch (-want +got):\n%s", label, diff)
	}
}

func TestParseFromTestData(t *testing.T) {
	t.Parallel()
	s, err := os.ReadFile("../testdata/testcase.yaml")
	if err != nil {
		panic(err)
	}
	testcases := utils.ReadTestData(s)
	for _, testcase := range testcases {
		if expected, ok := testcase.Expected["parser"]; ok {
			completeParse(t, testcase.Label, testcase.Input, expected)
		}
	}
}

func parse(input string) ([]ast.Stmt, error) {
	tokens, err := lexer.Lex(input)
	if err != nil {
		panic(err)
	}
	return parser.NewParser(tokens).Parse()
}

func TestSyntaxErrorRecovery(t *testing.T) {
	t.Parallel()
	testcases := []struct {
		label    string
		input    string
		expected string
		errors   []string
	}{
		{
			"missing semicolon and variable name",
			"print(1) print(2);\nvar = 3;\nprint(4);",
			"(expr (call (variable print) (literal 4)))\n",
			[]string{
				"[Line 1] Error at 'print': Expect ';' after expression.",
				"[Line 2] Error at '=': Expect variable name.",
			},
		},
		{
			"invalid assignment target keeps the statement",
			"a + b = 3; print(1);",
			"(expr (binary (variable a) + (variable b)))\n(expr (call (variable print) (literal 1)))\n",
			[]string{"[Line 1] Error at '=': Invalid assignment target."},
		},
		{
			"this is not an expression",
			"print(this);",
			"",
			[]string{"[Line 1] Error at 'this': Expect expression."},
		},
		{
			"unclosed grouping",
			"(1 + 2;\nvar y = 1;",
			"(var y (literal 1))\n",
			[]string{"[Line 1] Error at ';': Expect ')' after expression."},
		},
		{
			"synchronize stops before while",
			"if (true print(1); while (x) { print(2); }",
			"(while (variable x) (block (expr (call (variable print) (literal 2)))))\n",
			[]string{"[Line 1] Error at 'print': Expect ')' after if condition."},
		},
		{
			"synchronize stops before var",
			"function (a) {} var ok = 1;",
			"(var ok (literal 1))\n",
			[]string{"[Line 1] Error at '(': Expect function name."},
		},
		{
			"unterminated block",
			"{ print(1);",
			"",
			[]string{"[Line 1] Error at end: Expect '}' after block."},
		},
	}

	for _, testcase := range testcases {
		program, err := parse(testcase.input)
		if err == nil {
			t.Errorf("%s: Parse returned no error", testcase.label)
			continue
		}
		if diff := cmp.Diff(testcase.expected, dump(program)); diff != "" {
			t.Errorf("%s: program mismatch (-want +got):\n%s", testcase.label, diff)
		}
		var actual []string
		for _, err := range driver.Errors(err) {
			actual = append(actual, err.Error())
		}
		if diff := cmp.Diff(testcase.errors, actual); diff != "" {
			t.Errorf("%s: errors mismatch (-want +got):\n%s", testcase.label, diff)
		}
	}
}

func TestMissingInitializerIsFatal(t *testing.T) {
	t.Parallel()
	program, err := parse("var a = 1; var b;\nvar c = ;")

	if !errors.Is(err, parser.ErrMissingInitializer) {
		t.Fatalf("Parse returned %v, expected %v", err, parser.ErrMissingInitializer)
	}
	if diff := cmp.Diff("[Line 1] Error at ';': Variable declaration requires an initializer.", err.Error()); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("(var a (literal 1))\n", dump(program)); diff != "" {
		t.Errorf("program mismatch (-want +got):\n%s", diff)
	}
}

func TestArgumentLimit(t *testing.T) {
	t.Parallel()
	args := make([]string, parser.MaxArgs+1)
	params := make([]string, parser.MaxArgs+1)
	for i := range args {
		args[i] = fmt.Sprint(i)
		params[i] = fmt.Sprintf("p%d", i)
	}

	_, err := parse("f(" + strings.Join(args[:parser.MaxArgs], ", ") + ");")
	if err != nil {
		t.Errorf("%d arguments returned error: %v", parser.MaxArgs, err)
	}

	program, err := parse("f(" + strings.Join(args, ", ") + ");")
	if diff := cmp.Diff("[Line 1] Error at '255': Can't have more than 255 arguments.", fmt.Sprint(err)); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}
	if len(program) != 1 {
		t.Errorf("too many arguments dropped the statement: %v", program)
	}

	_, err = parse("function f(" + strings.Join(params, ", ") + ") {}")
	if diff := cmp.Diff("[Line 1] Error at 'p255': Can't have more than 255 parameters.", fmt.Sprint(err)); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}
}

func TestParseExpr(t *testing.T) {
	t.Parallel()
	testcases := []struct {
		input    string
		expected string
		err      string
	}{
		{"1 + 2 * 3", "(binary (literal 1) + (binary (literal 2) * (literal 3)))", ""},
		{"x = y = 1", "(assign x (assign y (literal 1)))", ""},
		{"f(1)(2)", "(call (call (variable f) (literal 1)) (literal 2))", ""},
		{"!!a or b and c", "(logical (unary ! (unary ! (variable a))) or (logical (variable b) and (variable c)))", ""},
		{"1 2", "(literal 1)", "[Line 1] Error at '2': Expect end of expression."},
		{"", "", "[Line 1] Error at end: Expect expression."},
	}

	for _, testcase := range testcases {
		tokens, err := lexer.Lex(testcase.input)
		if err != nil {
			t.Errorf("Lex %q returned error: %v", testcase.input, err)
			continue
		}
		expr, err := parser.NewParser(tokens).ParseExpr()

		var actual string
		if expr != nil {
			actual = expr.String()
		}
		if diff := cmp.Diff(testcase.expected, actual); diff != "" {
			t.Errorf("ParseExpr %q mismatch (-want +got):\n%s", testcase.input, diff)
		}
		var actualErr string
		if err != nil {
			actualErr = err.Error()
		}
		if diff := cmp.Diff(testcase.err, actualErr); diff != "" {
			t.Errorf("ParseExpr %q error mismatch (-want +got):\n%s", testcase.input, diff)
		}
	}
}

func BenchmarkFromTestData(b *testing.B) {
	s, err := os.ReadFile("../testdata/testcase.yaml")
	if err != nil {
		panic(err)
	}
	testcases := utils.ReadTestData(s)

	for _, testcase := range testcases {
		expected, ok := testcase.Expected["parser"]
		if !ok {
			continue
		}
		b.Run(testcase.Label, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				completeParse(b, testcase.Label, testcase.Input, expected)
			}
		})
	}
}
