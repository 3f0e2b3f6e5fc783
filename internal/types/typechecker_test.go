package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/lexer"
	"github.com/amy-lang/amyc/internal/nameanalyzer"
	"github.com/amy-lang/amyc/internal/parser"
	"github.com/amy-lang/amyc/internal/types"
)

func check(t *testing.T, src string) *diag.Reporter {
	t.Helper()
	rep := diag.NewReporter()
	toks, err := lexer.Tokenize("test.amy", []byte(src), rep)
	require.NoError(t, err)
	p, err := parser.New(toks, rep)
	require.NoError(t, err)
	prog, err := p.Parse()
	require.NoError(t, err)
	sprog, tab, err := nameanalyzer.Resolve(prog, rep)
	require.NoError(t, err)
	require.False(t, rep.HadError())

	types.Check(sprog, tab, rep)
	return rep
}

func TestCheckAcceptsWellTypedArithmetic(t *testing.T) {
	rep := check(t, `object Main {
  def double(x: Int): Int = { x + x }
  Std.printInt(double(21))
}`)
	require.False(t, rep.HadError())
}

func TestCheckRejectsIteBranchTypeMismatch(t *testing.T) {
	rep := check(t, `object Main {
  if (true) { 1 } else { "x" }
}`)
	require.True(t, rep.HadError())
}

func TestCheckRejectsLetInitializerTypeMismatch(t *testing.T) {
	rep := check(t, `object Main {
  val x: Int = "oops"; x
}`)
	require.True(t, rep.HadError())
}

func TestCheckRejectsArithmeticOnNonInt(t *testing.T) {
	rep := check(t, `object Main {
  Std.printInt(1 + true)
}`)
	require.True(t, rep.HadError())
}

func TestCheckAcceptsEqualityBetweenAnyMatchingTypes(t *testing.T) {
	rep := check(t, `object Main {
  Std.printInt(if (1 == 1) { 1 } else { 0 })
}`)
	require.False(t, rep.HadError())
}

func TestCheckRejectsEqualityBetweenMismatchedTypes(t *testing.T) {
	rep := check(t, `object Main {
  Std.printInt(if (1 == true) { 1 } else { 0 })
}`)
	require.True(t, rep.HadError())
}

func TestCheckRejectsCallArityMismatch(t *testing.T) {
	rep := check(t, `object Main {
  def add(a: Int, b: Int): Int = { a + b }
  Std.printInt(add(1))
}`)
	require.True(t, rep.HadError())
}

func TestCheckRejectsPatternArityMismatch(t *testing.T) {
	rep := check(t, `object Main {
  abstract class Shape
  case class Circle(r: Int) extends Shape

  def area(sh: Shape): Int = {
    sh match {
      case Circle(r, extra) => r
    }
  }
  Std.printInt(area(Circle(3)))
}`)
	require.True(t, rep.HadError())
}

func TestCheckAcceptsMatchWithConsistentBranchTypes(t *testing.T) {
	rep := check(t, `object Main {
  abstract class Shape
  case class Circle(r: Int) extends Shape
  case class Square(s: Int) extends Shape

  def area(sh: Shape): Int = {
    sh match {
      case Circle(r) => r * r
      case Square(s) => s * s
    }
  }
  Std.printInt(area(Square(4)))
}`)
	require.False(t, rep.HadError())
}

func TestCheckRejectsMatchWithInconsistentBranchTypes(t *testing.T) {
	rep := check(t, `object Main {
  abstract class Shape
  case class Circle(r: Int) extends Shape
  case class Square(s: Int) extends Shape

  def describe(sh: Shape): Int = {
    sh match {
      case Circle(r) => r
      case Square(s) => "square"
    }
  }
  Std.printInt(describe(Square(4)))
}`)
	require.True(t, rep.HadError())
}

func TestCheckModuleInitializerTypeIsFree(t *testing.T) {
	rep := check(t, `object Main {
  "just a string, never consumed"
}`)
	require.False(t, rep.HadError())
}

func TestCheckModuleInitializerSequenceMixesTypesFreely(t *testing.T) {
	rep := check(t, `object Main {
  Std.printInt(1); "a string, discarded by nobody"
}`)
	require.False(t, rep.HadError())
}

func TestCheckErrorExprRequiresStringMessage(t *testing.T) {
	rep := check(t, `object Main {
  if (false) { error(1) } else { () }
}`)
	require.True(t, rep.HadError())
}
