package repl

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestREPL() *REPL {
	return &REPL{out: io.Discard}
}

func TestEvalExprArithmetic(t *testing.T) {
	r := newTestREPL()
	v, err := r.evalExpr("1 + 2 * 3")
	require.NoError(t, err)
	require.Equal(t, "7", v.String())
}

func TestEvalExprAccumulatesDefs(t *testing.T) {
	r := newTestREPL()
	r.defs = append(r.defs, "def double(x: Int): Int = { x + x }")
	v, err := r.evalExpr("double(21)")
	require.NoError(t, err)
	require.Equal(t, "42", v.String())
}

func TestEvalExprReportsTypeErrors(t *testing.T) {
	r := newTestREPL()
	_, err := r.evalExpr("1 + true")
	require.Error(t, err)
}

func TestLooksLikeDef(t *testing.T) {
	require.True(t, looksLikeDef("def f(x: Int): Int = { x }"))
	require.True(t, looksLikeDef("abstract class Shape"))
	require.True(t, looksLikeDef("case class Circle(r: Int) extends Shape"))
	require.False(t, looksLikeDef("1 + 1"))
}

func TestReadFrom(t *testing.T) {
	lines := ReadFrom(strings.NewReader("a\nb\nc\n"))
	require.Equal(t, []string{"a", "b", "c"}, lines)
}
