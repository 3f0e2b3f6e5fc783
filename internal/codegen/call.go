package codegen

import (
	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/sast"
	"github.com/amy-lang/amyc/internal/wat"
)

// emitCall lowers a resolved call: either a case-class constructor
// allocation or an invocation of a user function or Std built-in (spec
// §4.5's "Call" rule).
func (g *generator) emitCall(w *wat.Writer, n *sast.Call, plan *funcPlan) {
	if n.IsConstructor {
		g.emitConstructorCall(w, n, plan)
		return
	}

	sig, ok := g.tab.Function(n.Callee)
	if !ok {
		g.rep.Err(diag.GEN001, n.Pos, "internal: call to unresolved function %q", n.Callee.Name)
		w.Line("i32.const 0")
		return
	}
	ownerName, _ := g.tab.ModuleName(sig.Owner)
	if ownerName == stdModule {
		g.emitStdCall(w, n, plan)
		return
	}
	for _, a := range n.Args {
		g.emitExpr(w, a, plan)
	}
	w.Line("call %s", funcName(ownerName, n.Callee.Name))
}

// emitConstructorCall allocates a heap record for a case-class
// constructor invocation. Per the reserve-then-fill ordering, the full
// record's space is claimed from the heap (and the heap global
// advanced) before any argument expression runs, so a constructor
// argument that itself allocates (a nested constructor call, a string
// literal) can never land inside the record being built (spec §4.5,
// resolving an ambiguity the construction-order text leaves open).
//
// Layout: word 0 is the constructor's sibling index (its tag); words
// 1..N are the fields, in declaration order.
func (g *generator) emitConstructorCall(w *wat.Writer, n *sast.Call, plan *funcPlan) {
	sig, ok := g.tab.Constructor(n.Callee)
	if !ok {
		g.rep.Err(diag.GEN001, n.Pos, "internal: call to unresolved constructor %q", n.Callee.Name)
		w.Line("i32.const 0")
		return
	}
	scratch := plan.scratch[n]
	size := (len(sig.ArgTypes) + 1) * 4

	w.Line("global.get $heap")
	w.Line("local.set %s", scratch)
	w.Line("local.get %s", scratch)
	w.Line("i32.const %d", size)
	w.Line("i32.add")
	w.Line("global.set $heap")

	w.Line("local.get %s", scratch)
	w.Line("i32.const %d", sig.Index)
	w.Line("i32.store")

	for i, a := range n.Args {
		w.Line("local.get %s", scratch)
		w.Line("i32.const %d", (i+1)*4)
		w.Line("i32.add")
		g.emitExpr(w, a, plan)
		w.Line("i32.store")
	}

	w.Line("local.get %s", scratch)
}

// emitStdCall lowers a call to one of the six predeclared Std
// functions (spec §4.3 pass 1, §4.5's built-in lowering table).
func (g *generator) emitStdCall(w *wat.Writer, n *sast.Call, plan *funcPlan) {
	switch n.Callee.Name {
	case "printInt":
		g.emitExpr(w, n.Args[0], plan)
		w.Line("call $printInt")
	case "printString":
		g.emitExpr(w, n.Args[0], plan)
		w.Line("call $printString")
	case "readInt":
		w.Line("call $readInt")
	case "readString":
		g.emitReadString(w, n, plan)
	case "intToString":
		g.emitExpr(w, n.Args[0], plan)
		w.Line("call $Std_intToString")
	case "digitToString":
		g.emitExpr(w, n.Args[0], plan)
		w.Line("call $Std_digitToString")
	default:
		g.rep.Err(diag.GEN001, n.Pos, "internal: call to unknown Std function %q", n.Callee.Name)
		w.Line("i32.const 0")
	}
}

// emitReadString lowers `Std.readString()`: readString0 writes the line
// at the current heap pointer and returns the heap's new value, so the
// start position must be captured in a scratch local before the call
// (spec §4.7's `readString0(heapPtr)→i32` contract).
func (g *generator) emitReadString(w *wat.Writer, n *sast.Call, plan *funcPlan) {
	scratch := plan.scratch[n]
	w.Line("global.get $heap")
	w.Line("local.set %s", scratch)
	w.Line("local.get %s", scratch)
	w.Line("call $readString0")
	w.Line("global.set $heap")
	w.Line("local.get %s", scratch)
}
