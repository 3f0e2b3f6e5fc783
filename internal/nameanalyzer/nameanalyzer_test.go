package nameanalyzer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/amy-lang/amyc/internal/ast"
	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/lexer"
	"github.com/amy-lang/amyc/internal/nameanalyzer"
	"github.com/amy-lang/amyc/internal/parser"
	"github.com/amy-lang/amyc/internal/sast"
	"github.com/amy-lang/amyc/internal/symbols"
)

func resolve(t *testing.T, src string) (*sast.Program, *symbols.Table, *diag.Reporter) {
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
	return sprog, tab, rep
}

func TestResolveRegistersStdBeforeAnyUserModule(t *testing.T) {
	_, tab, rep := resolve(t, `object Main {
  Std.printInt(1)
}`)
	require.False(t, rep.HadError())
	require.True(t, tab.Frozen())

	_, ok := tab.LookupModule(nameanalyzer.StdModuleName)
	require.True(t, ok)
	_, ok = tab.LookupFunction(nameanalyzer.StdModuleName, "printInt")
	require.True(t, ok)
}

func TestResolveDuplicateModuleNameIsFatal(t *testing.T) {
	rep := diag.NewReporter()
	toks, err := lexer.Tokenize("test.amy", []byte(`object Main { 1 } object Main { 2 }`), rep)
	require.NoError(t, err)
	p, err := parser.New(toks, rep)
	require.NoError(t, err)
	prog, err := p.Parse()
	require.NoError(t, err)

	_, _, err = nameanalyzer.Resolve(prog, rep)
	require.Error(t, err)
}

func TestResolveModuleNameCollidingWithStdIsFatal(t *testing.T) {
	rep := diag.NewReporter()
	toks, err := lexer.Tokenize("test.amy", []byte(`object Std { 1 }`), rep)
	require.NoError(t, err)
	p, err := parser.New(toks, rep)
	require.NoError(t, err)
	prog, err := p.Parse()
	require.NoError(t, err)

	_, _, err = nameanalyzer.Resolve(prog, rep)
	require.Error(t, err)
}

func TestResolveDuplicateTypeNameInModuleIsError(t *testing.T) {
	_, _, rep := resolve(t, `object Main {
  abstract class Shape
  abstract class Shape
  1
}`)
	require.True(t, rep.HadError())
}

func TestResolveCaseClassUnresolvedParentIsError(t *testing.T) {
	_, _, rep := resolve(t, `object Main {
  case class Circle(r: Int) extends Ghost
  1
}`)
	require.True(t, rep.HadError())
}

func TestResolveCaseClassNonAbstractParentIsError(t *testing.T) {
	_, _, rep := resolve(t, `object Main {
  abstract class Shape
  case class Circle(r: Int) extends Shape
  case class Square(s: Int) extends Circle
  1
}`)
	require.True(t, rep.HadError())
}

func TestResolveDuplicateParamNameIsError(t *testing.T) {
	_, _, rep := resolve(t, `object Main {
  def f(x: Int, x: Int): Int = { x }
  1
}`)
	require.True(t, rep.HadError())
}

func TestResolveUnresolvedIdentifierIsError(t *testing.T) {
	_, _, rep := resolve(t, `object Main {
  Std.printInt(bogus)
}`)
	require.True(t, rep.HadError())
}

func TestResolveDuplicateBinderInPatternIsError(t *testing.T) {
	_, _, rep := resolve(t, `object Main {
  abstract class Shape
  case class Pair(a: Int, b: Int) extends Shape
  Pair(1, 2) match {
    case Pair(x, x) => x
  }
}`)
	require.True(t, rep.HadError())
}

func TestResolveCaseClassSiblingIndicesFollowDeclarationOrder(t *testing.T) {
	_, tab, rep := resolve(t, `object Main {
  abstract class Shape
  case class Circle(r: Int) extends Shape
  case class Square(s: Int) extends Shape
  case class Triangle(b: Int, h: Int) extends Shape
  1
}`)
	require.False(t, rep.HadError())

	shapeID, ok := tab.LookupType("Main", "Shape")
	require.True(t, ok)

	circleID, ok := tab.LookupConstructor("Main", "Circle")
	require.True(t, ok)
	squareID, ok := tab.LookupConstructor("Main", "Square")
	require.True(t, ok)
	triID, ok := tab.LookupConstructor("Main", "Triangle")
	require.True(t, ok)

	require.Equal(t, []symbols.Identifier{circleID, squareID, triID}, tab.Siblings(shapeID))

	circleSig, ok := tab.Constructor(circleID)
	require.True(t, ok)
	require.Equal(t, 0, circleSig.Index)
	triSig, ok := tab.Constructor(triID)
	require.True(t, ok)
	require.Equal(t, 2, triSig.Index)
	require.Len(t, triSig.ArgTypes, 2)
}

func TestResolveQualifiedFieldTypeInLaterModule(t *testing.T) {
	// A field type may qualify a class in a module declared later in the
	// source; pass 2 mints every module's type ids before resolving any
	// module's signatures, so declaration order between modules is free.
	_, tab, rep := resolve(t, `object First {
  abstract class Container
  case class Box(v: Second.Thing) extends Container
  1
}

object Second {
  abstract class Thing
  2
}`)
	require.False(t, rep.HadError())

	thingID, ok := tab.LookupType("Second", "Thing")
	require.True(t, ok)
	boxID, ok := tab.LookupConstructor("First", "Box")
	require.True(t, ok)

	sig, ok := tab.Constructor(boxID)
	require.True(t, ok)
	require.Len(t, sig.ArgTypes, 1)
	require.Equal(t, symbols.ClassT, sig.ArgTypes[0].Kind)
	require.True(t, sig.ArgTypes[0].Class.Equal(thingID))
}

func TestResolveFunctionSignatureMatchesParamAndReturnTypes(t *testing.T) {
	_, tab, rep := resolve(t, `object Main {
  abstract class Shape
  case class Circle(r: Int) extends Shape

  def area(sh: Shape): Int = {
    sh match {
      case Circle(r) => r * r
    }
  }
}`)
	require.False(t, rep.HadError())

	shapeID, ok := tab.LookupType("Main", "Shape")
	require.True(t, ok)
	areaID, ok := tab.LookupFunction("Main", "area")
	require.True(t, ok)
	mainID, ok := tab.LookupModule("Main")
	require.True(t, ok)

	want := symbols.FunSig{
		ArgTypes: []symbols.Type{{Kind: symbols.ClassT, Class: shapeID}},
		Ret:      symbols.Type{Kind: symbols.IntT},
		Owner:    mainID,
	}
	got, ok := tab.Function(areaID)
	require.True(t, ok)
	require.Empty(t, cmp.Diff(want, got), "function signature mismatch (-want +got)")
}

func TestResolveQualifiedStdCallRewritesToCalleeIdentifier(t *testing.T) {
	sprog, tab, rep := resolve(t, `object Main {
  Std.printInt(42)
}`)
	require.False(t, rep.HadError())

	printIntID, ok := tab.LookupFunction(nameanalyzer.StdModuleName, "printInt")
	require.True(t, ok)

	mainModule := sprog.Modules[len(sprog.Modules)-1]
	want := &sast.Call{
		Callee: printIntID,
		Args:   []sast.Expr{&sast.Literal{Kind: ast.IntLit, Value: int32(42)}},
	}
	got := mainModule.Expr
	require.Empty(t, cmp.Diff(want, got, cmpopts.IgnoreFields(sast.Call{}, "Pos"), cmpopts.IgnoreFields(sast.Literal{}, "Pos")))
}

func TestResolveBareZeroArgFunctionCallIsNotConstructorCall(t *testing.T) {
	// Bare (unqualified) calls resolve against the current module's own
	// callable namespace; this pins down that a local, zero-arg function
	// call resolves to a Call with IsConstructor=false.
	sprog, tab, rep := resolve(t, `object Main {
  def zero(): Int = { 0 }
  zero()
}`)
	require.False(t, rep.HadError())
	zeroID, ok := tab.LookupFunction("Main", "zero")
	require.True(t, ok)

	mainModule := sprog.Modules[len(sprog.Modules)-1]
	call, ok := mainModule.Expr.(*sast.Call)
	require.True(t, ok)
	require.False(t, call.IsConstructor)
	require.True(t, call.Callee.Equal(zeroID))
}
