package codegen

import (
	"github.com/amy-lang/amyc/internal/ast"
	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/sast"
	"github.com/amy-lang/amyc/internal/wat"
)

// emitExpr lowers e onto the WAT value stack as a single i32 (spec §4.5's
// "Expression lowering"). Every case leaves exactly one i32 on the stack
// regardless of e's Amy-level type (Int/Bool/Unit bare, String/record a
// pointer), matching the code generator's uniform value representation.
func (g *generator) emitExpr(w *wat.Writer, e sast.Expr, plan *funcPlan) {
	switch n := e.(type) {
	case *sast.Variable:
		w.Line("local.get %s", plan.locals[n.ID])

	case *sast.Literal:
		g.emitLiteral(w, n.Kind, n.Value, plan.scratch[e])

	case *sast.BinaryOp:
		g.emitBinaryOp(w, n, plan)

	case *sast.UnaryOp:
		g.emitUnaryOp(w, n, plan)

	case *sast.Call:
		g.emitCall(w, n, plan)

	case *sast.Sequence:
		g.emitExpr(w, n.First, plan)
		w.Line("drop")
		g.emitExpr(w, n.Second, plan)

	case *sast.Let:
		g.emitExpr(w, n.Value, plan)
		w.Line("local.set %s", plan.locals[n.Param.ID])
		g.emitExpr(w, n.Body, plan)

	case *sast.Ite:
		g.emitExpr(w, n.Cond, plan)
		w.Block("if (result i32)")
		g.emitExpr(w, n.Then, plan)
		w.Mid("else")
		g.emitExpr(w, n.Else, plan)
		w.End()

	case *sast.Match:
		g.emitMatch(w, n, plan)

	case *sast.Error:
		g.emitExpr(w, n.Msg, plan)
		w.Line("call $printString")
		w.Line("drop")
		w.Line("unreachable")

	default:
		g.rep.Err(diag.GEN001, e.Position(), "internal: unhandled expression shape in code generation")
		w.Line("i32.const 0")
	}
}

// emitUnaryOp is split out from emitExpr because unary minus needs its
// constant operand pushed before, not after, the sub-expression.
func (g *generator) emitUnaryOp(w *wat.Writer, n *sast.UnaryOp, plan *funcPlan) {
	switch n.Op {
	case "-":
		w.Line("i32.const 0")
		g.emitExpr(w, n.Expr, plan)
		w.Line("i32.sub")
	case "!":
		g.emitExpr(w, n.Expr, plan)
		w.Line("i32.const 1")
		w.Line("i32.xor")
	default:
		g.rep.Err(diag.GEN001, n.Pos, "internal: unknown unary operator %q", n.Op)
		w.Line("i32.const 0")
	}
}

func (g *generator) emitBinaryOp(w *wat.Writer, n *sast.BinaryOp, plan *funcPlan) {
	switch n.Op {
	case "&&":
		g.emitExpr(w, n.Left, plan)
		w.Block("if (result i32)")
		g.emitExpr(w, n.Right, plan)
		w.Mid("else")
		w.Line("i32.const 0")
		w.End()
		return
	case "||":
		g.emitExpr(w, n.Left, plan)
		w.Block("if (result i32)")
		w.Line("i32.const 1")
		w.Mid("else")
		g.emitExpr(w, n.Right, plan)
		w.End()
		return
	case "++":
		g.emitExpr(w, n.Left, plan)
		g.emitExpr(w, n.Right, plan)
		w.Line("call $String_concat")
		return
	}

	g.emitExpr(w, n.Left, plan)
	g.emitExpr(w, n.Right, plan)
	switch n.Op {
	case "+":
		w.Line("i32.add")
	case "-":
		w.Line("i32.sub")
	case "*":
		w.Line("i32.mul")
	case "/":
		w.Line("i32.div_s")
	case "mod", "%":
		w.Line("i32.rem_s")
	case "<":
		w.Line("i32.lt_s")
	case "<=":
		w.Line("i32.le_s")
	case "==":
		w.Line("i32.eq")
	default:
		g.rep.Err(diag.GEN001, n.Pos, "internal: unknown binary operator %q", n.Op)
	}
}

// emitLiteral materializes a literal value: Int/Boolean/Unit are bare
// constants; String reserves space in the heap, stores its bytes
// (NUL-terminated, 4-byte padded) and leaves the starting pointer on the
// stack, advancing the heap global by the space it consumed first so
// that any allocation nested in a sibling expression never overlaps it
// (spec §4.5's heap monotonicity invariant). scratch is the local
// reserved by funcPlan for exactly this literal occurrence.
func (g *generator) emitLiteral(w *wat.Writer, kind ast.LiteralKind, value interface{}, scratch string) {
	switch kind {
	case ast.IntLit:
		w.Line("i32.const %d", value.(int32))
	case ast.BooleanLit:
		if value.(bool) {
			w.Line("i32.const 1")
		} else {
			w.Line("i32.const 0")
		}
	case ast.UnitLit:
		w.Line("i32.const 0")
	case ast.StringLit:
		g.emitStringLiteral(w, value.(string), scratch)
	}
}

// emitStringLiteral writes out the byte-store sequence for a
// compile-time-known string constant (spec §4.5: "strings are
// materialized by a run of byte stores at the current heap pointer").
func (g *generator) emitStringLiteral(w *wat.Writer, s string, scratch string) {
	size := paddedStringSize(len(s))

	w.Line("global.get $heap")
	w.Line("local.set %s", scratch)
	w.Line("local.get %s", scratch)
	w.Line("i32.const %d", size)
	w.Line("i32.add")
	w.Line("global.set $heap")

	for i := 0; i < len(s); i++ {
		w.Line("local.get %s", scratch)
		w.Line("i32.const %d", i)
		w.Line("i32.add")
		w.Line("i32.const %d", s[i])
		w.Line("i32.store8")
	}
	w.Line("local.get %s", scratch)
	w.Line("i32.const %d", len(s))
	w.Line("i32.add")
	w.Line("i32.const 0")
	w.Line("i32.store8")

	w.Line("local.get %s", scratch)
}

// paddedStringSize returns the number of bytes a length-n string
// occupies once its NUL terminator is added and the result is padded up
// to a 4-byte boundary (spec §4.5).
func paddedStringSize(n int) int {
	total := n + 1
	if rem := total % 4; rem != 0 {
		total += 4 - rem
	}
	return total
}
