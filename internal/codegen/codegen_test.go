package codegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amy-lang/amyc/internal/codegen"
	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/lexer"
	"github.com/amy-lang/amyc/internal/nameanalyzer"
	"github.com/amy-lang/amyc/internal/parser"
	"github.com/amy-lang/amyc/internal/sast"
	"github.com/amy-lang/amyc/internal/symbols"
	"github.com/amy-lang/amyc/internal/types"
)

func compile(t *testing.T, src string) (string, *diag.Reporter) {
	return compileWithPages(t, src, codegen.DefaultPages)
}

func compileWithPages(t *testing.T, src string, pages int) (string, *diag.Reporter) {
	t.Helper()
	rep := diag.NewReporter()

	toks, err := lexer.Tokenize("test.amy", []byte(src), rep)
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

	return codegen.Emit(sprog, tab, rep, pages), rep
}

func mustCompile(t *testing.T, src string) string {
	wat, rep := compile(t, src)
	require.False(t, rep.HadError())
	return wat
}

func TestEmitModuleSkeleton(t *testing.T) {
	wat := mustCompile(t, `object Main {
  Std.printInt(42)
}`)
	require.True(t, strings.HasPrefix(strings.TrimSpace(wat), "(module"))
	require.Contains(t, wat, `(import "system" "mem" (memory 100))`)
	require.Contains(t, wat, "(global $heap (mut i32)")
	require.Contains(t, wat, `(func $Main_main (export "Main_main")`)
	require.Contains(t, wat, "call $printInt")
}

func TestEmitUserFunctionCall(t *testing.T) {
	wat := mustCompile(t, `object Main {
  def double(x: Int): Int = { x + x }
  Std.printInt(double(21))
}`)
	require.Contains(t, wat, "(func $Main_double")
	require.Contains(t, wat, "call $Main_double")
	require.Contains(t, wat, "i32.add")
}

func TestEmitStringConcatCallsRuntimeHelper(t *testing.T) {
	wat := mustCompile(t, `object Main {
  Std.printString("a" ++ "b")
}`)
	require.Contains(t, wat, "call $String_concat")
	require.Contains(t, wat, "(func $String_concat")
}

func TestEmitConstructorAllocatesRecord(t *testing.T) {
	wat := mustCompile(t, `object Main {
  abstract class Shape
  case class Circle(r: Int) extends Shape

  def area(sh: Shape): Int = {
    sh match {
      case Circle(r) => r * r
    }
  }

  Std.printInt(area(Circle(3)))
}`)
	require.Contains(t, wat, "i32.store")
	require.Contains(t, wat, "i32.load")
	require.Contains(t, wat, "call $Main_area")
}

func TestEmitMatchTrapsOnExhaustionFailure(t *testing.T) {
	wat := mustCompile(t, `object Main {
  abstract class Shape
  case class Circle(r: Int) extends Shape
  case class Square(s: Int) extends Shape

  def area(sh: Shape): Int = {
    sh match {
      case Circle(r) => r * r
    }
  }

  Std.printInt(area(Square(2)))
}`)
	require.Contains(t, wat, "unreachable")
	require.Contains(t, wat, "call $printString")
}

func TestEmitReportsInternalErrorOnUnresolvedCall(t *testing.T) {
	rep := diag.NewReporter()
	prog := &sast.Program{Modules: []*sast.ModuleDef{{
		ID: symbols.Identifier{},
		Expr: &sast.Call{
			Callee: symbols.Identifier{Name: "bogus"},
		},
	}}}
	tab := symbols.New()
	tab.AddModule(symbols.Identifier{}, "Main")
	tab.Freeze()

	_ = codegen.Emit(prog, tab, rep, codegen.DefaultPages)
	require.True(t, rep.HadError())
}

func TestEmitHonorsMemoryPageCount(t *testing.T) {
	wat, rep := compileWithPages(t, `object Main {
  Std.printInt(42)
}`, 250)
	require.False(t, rep.HadError())
	require.Contains(t, wat, `(import "system" "mem" (memory 250))`)
}
