package interp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/interp"
	"github.com/amy-lang/amyc/internal/lexer"
	"github.com/amy-lang/amyc/internal/nameanalyzer"
	"github.com/amy-lang/amyc/internal/parser"
	"github.com/amy-lang/amyc/internal/types"
)

func run(t *testing.T, source string, in string) string {
	t.Helper()
	rep := diag.NewReporter()

	toks, err := lexer.Tokenize("test.amy", []byte(source), rep)
	require.NoError(t, err)

	p, err := parser.New(toks, rep)
	require.NoError(t, err)
	prog, err := p.Parse()
	require.NoError(t, err)
	require.False(t, rep.HadError())

	sprog, tab, err := nameanalyzer.Resolve(prog, rep)
	require.NoError(t, err)
	require.False(t, rep.HadError())

	types.Check(sprog, tab, rep)
	require.False(t, rep.HadError())

	var out bytes.Buffer
	ip := interp.New(tab, rep, strings.NewReader(in), &out)
	require.NoError(t, ip.Run(sprog))
	return out.String()
}

func TestInterpPrintsIntegerArithmetic(t *testing.T) {
	src := `object Main {
  Std.printInt(1 + 2 * 3)
}`
	require.Equal(t, "7\n", run(t, src, ""))
}

func TestInterpMatchDispatchesByConstructor(t *testing.T) {
	src := `object Main {
  abstract class Shape
  case class Circle(r: Int) extends Shape
  case class Square(s: Int) extends Shape

  def area(sh: Shape): Int = {
    sh match {
      case Circle(r) => r * r
      case Square(s) => s * s
    }
  }

  Std.printInt(area(Circle(3)))
}`
	require.Equal(t, "9\n", run(t, src, ""))
}

func TestInterpStringConcatAndPrint(t *testing.T) {
	src := `object Main {
  Std.printString("a" ++ "b")
}`
	require.Equal(t, "ab\n", run(t, src, ""))
}
