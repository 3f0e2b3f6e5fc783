package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amy-lang/amyc/internal/ast"
	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/lexer"
	"github.com/amy-lang/amyc/internal/parser"
)

func parse(t *testing.T, src string) (*ast.Program, *diag.Reporter) {
	t.Helper()
	rep := diag.NewReporter()
	toks, err := lexer.Tokenize("test.amy", []byte(src), rep)
	require.NoError(t, err)
	p, err := parser.New(toks, rep)
	require.NoError(t, err)
	prog, err := p.Parse()
	require.NoError(t, err)
	return prog, rep
}

func TestParseModuleWithDefsAndTopLevelExpr(t *testing.T) {
	prog, rep := parse(t, `object Main {
  def double(x: Int): Int = { x + x }
  Std.printInt(double(21))
}`)
	require.False(t, rep.HadError())
	require.Len(t, prog.Modules, 1)

	mod := prog.Modules[0]
	require.Equal(t, "Main", mod.Name)
	require.Len(t, mod.Defs, 1)

	fn, ok := mod.Defs[0].(*ast.FunDef)
	require.True(t, ok)
	require.Equal(t, "double", fn.Name)
	require.Len(t, fn.Params, 1)
	require.Equal(t, "x", fn.Params[0].Name)
	require.Equal(t, "Int", fn.RetType.Primitive)

	body, ok := fn.Body.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, "+", body.Op)

	call, ok := mod.Expr.(*ast.Call)
	require.True(t, ok)
	require.Equal(t, "Std", *call.Name.Module)
	require.Equal(t, "printInt", call.Name.Name)
}

func TestParseAbstractAndCaseClassDefs(t *testing.T) {
	prog, rep := parse(t, `object Main {
  abstract class Shape
  case class Circle(r: Int) extends Shape
}`)
	require.False(t, rep.HadError())
	mod := prog.Modules[0]
	require.Len(t, mod.Defs, 2)

	abs, ok := mod.Defs[0].(*ast.AbstractClassDef)
	require.True(t, ok)
	require.Equal(t, "Shape", abs.Name)

	cc, ok := mod.Defs[1].(*ast.CaseClassDef)
	require.True(t, ok)
	require.Equal(t, "Circle", cc.Name)
	require.Equal(t, "Shape", cc.Parent)
	require.Len(t, cc.Fields, 1)
	require.Equal(t, "r", cc.Fields[0].Name)
}

func TestParseIfExprRequiresParensAndBraces(t *testing.T) {
	prog, rep := parse(t, `object Main {
  if (true) { 1 } else { 2 }
}`)
	require.False(t, rep.HadError())
	ite, ok := prog.Modules[0].Expr.(*ast.Ite)
	require.True(t, ok)
	require.Equal(t, ast.IntLit, ite.Then.(*ast.Literal).Kind)
	require.Equal(t, ast.IntLit, ite.Else.(*ast.Literal).Kind)
}

func TestParseOperatorPrecedenceAndLeftAssociativity(t *testing.T) {
	prog, rep := parse(t, `object Main {
  1 + 2 * 3 - 4
}`)
	require.False(t, rep.HadError())
	// (1 + (2 * 3)) - 4, left-associative at the +/- level.
	top, ok := prog.Modules[0].Expr.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, "-", top.Op)
	require.Equal(t, int32(4), top.Right.(*ast.Literal).Value)

	left, ok := top.Left.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, "+", left.Op)
	require.Equal(t, int32(1), left.Left.(*ast.Literal).Value)

	mul, ok := left.Right.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, "*", mul.Op)
}

func TestParseLetExprChains(t *testing.T) {
	prog, rep := parse(t, `object Main {
  val x: Int = 1; val y: Int = 2; x + y
}`)
	require.False(t, rep.HadError())
	outer, ok := prog.Modules[0].Expr.(*ast.Let)
	require.True(t, ok)
	require.Equal(t, "x", outer.Param.Name)

	inner, ok := outer.Body.(*ast.Let)
	require.True(t, ok)
	require.Equal(t, "y", inner.Param.Name)

	_, ok = inner.Body.(*ast.BinaryOp)
	require.True(t, ok)
}

func TestParseMatchWithCaseClassAndWildcardPatterns(t *testing.T) {
	prog, rep := parse(t, `object Main {
  abstract class Shape
  case class Circle(r: Int) extends Shape

  def area(sh: Shape): Int = {
    sh match {
      case Circle(r) => r * r
      case _ => 0
    }
  }
}`)
	require.False(t, rep.HadError())
	fn := prog.Modules[0].Defs[2].(*ast.FunDef)
	m, ok := fn.Body.(*ast.Match)
	require.True(t, ok)
	require.Len(t, m.Cases, 2)

	ccPat, ok := m.Cases[0].Pattern.(*ast.CaseClassPattern)
	require.True(t, ok)
	require.Equal(t, "Circle", ccPat.Name.Name)
	require.Len(t, ccPat.Subs, 1)
	_, ok = ccPat.Subs[0].(*ast.IdPattern)
	require.True(t, ok)

	_, ok = m.Cases[1].Pattern.(*ast.WildcardPattern)
	require.True(t, ok)
}

func TestParseErrorExprAndUnitLiteral(t *testing.T) {
	prog, rep := parse(t, `object Main {
  if (false) { error("bad") } else { () }
}`)
	require.False(t, rep.HadError())
	ite := prog.Modules[0].Expr.(*ast.Ite)
	errExpr, ok := ite.Then.(*ast.Error)
	require.True(t, ok)
	require.Equal(t, ast.StringLit, errExpr.Msg.(*ast.Literal).Kind)

	unit, ok := ite.Else.(*ast.Literal)
	require.True(t, ok)
	require.Equal(t, ast.UnitLit, unit.Kind)
}

func TestParseReportsFatalOnUnexpectedToken(t *testing.T) {
	rep := diag.NewReporter()
	toks, err := lexer.Tokenize("test.amy", []byte(`object Main { def }`), rep)
	require.NoError(t, err)
	p, err := parser.New(toks, rep)
	require.NoError(t, err)
	_, err = p.Parse()
	require.Error(t, err)
}

func TestParseReportsFatalOnUnexpectedEOF(t *testing.T) {
	rep := diag.NewReporter()
	toks, err := lexer.Tokenize("test.amy", []byte(`object Main {`), rep)
	require.NoError(t, err)
	p, err := parser.New(toks, rep)
	require.NoError(t, err)
	_, err = p.Parse()
	require.Error(t, err)
}
