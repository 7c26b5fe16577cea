package builtin_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ucci-lang/ucci/builtin"
	"github.com/ucci-lang/ucci/driver"
	"github.com/ucci-lang/ucci/eval"
	"github.com/ucci-lang/ucci/token"
)

func run(t *testing.T, input string) string {
	t.Helper()
	var stdout bytes.Buffer
	in := eval.NewInterpreter(eval.WithStdout(&stdout))
	builtin.Predefined(in)

	program, err := driver.Parse(input)
	require.NoError(t, err)
	require.NoError(t, in.Interpret(program))

	return stdout.String()
}

func TestPredefined(t *testing.T) {
	t.Parallel()
	in := eval.NewInterpreter()
	builtin.Predefined(in)

	for _, name := range []string{"clock", "print", "println"} {
		v, err := in.Globals().Get(token.Token{Kind: token.IDENT, Lexeme: name, Line: 1})
		require.NoError(t, err, name)
		assert.Implements(t, (*eval.Callable)(nil), v, name)
	}
}

func TestPrint(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "hi\n", run(t, `print("hi");`))
	assert.Equal(t, "3\n", run(t, `print(1 + 2);`))
	assert.Equal(t, "nil\n", run(t, `print(nil);`))
	assert.Equal(t, "false\n", run(t, `print(1 > 2);`))
	assert.Equal(t, "<fn f>\n", run(t, `function f() {} print(f);`))
	assert.Equal(t, "<native fn clock>\n", run(t, `print(clock);`))
	assert.Equal(t, "ab\n", run(t, `print("a" + "b");`))
	assert.Equal(t, "x\ntrue\n", run(t, `print(print("x") == nil);`))
}

func TestPrintln(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "\n", run(t, `println();`))
	assert.Equal(t, "a 1 true\n", run(t, `println("a", 1, true);`))
}

func TestClock(t *testing.T) {
	t.Parallel()
	in := eval.NewInterpreter()
	builtin.Predefined(in)

	program, err := driver.Parse("var start = clock(); var elapsed = clock() - start;")
	require.NoError(t, err)
	require.NoError(t, in.Interpret(program))

	start, err := in.Globals().Get(token.Token{Kind: token.IDENT, Lexeme: "start", Line: 1})
	require.NoError(t, err)
	assert.IsType(t, eval.Number(0), start)
	assert.Positive(t, float64(start.(eval.Number)))

	elapsed, err := in.Globals().Get(token.Token{Kind: token.IDENT, Lexeme: "elapsed", Line: 1})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, float64(elapsed.(eval.Number)), 0.0)
}

func TestText(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "quoted", builtin.Text(eval.String(`"quoted"`)))
	assert.Equal(t, "2.5", builtin.Text(eval.Number(2.5)))
	assert.Equal(t, "true", builtin.Text(eval.Bool(true)))
	assert.Equal(t, "nil", builtin.Text(eval.Nil{}))
}
