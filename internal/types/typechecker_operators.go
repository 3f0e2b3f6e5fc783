package types

import (
	"github.com/amy-lang/amyc/internal/sast"
	"github.com/amy-lang/amyc/internal/symbols"
)

func intT() TypeOrVar     { return concrete(symbols.Type{Kind: symbols.IntT}) }
func boolT() TypeOrVar    { return concrete(symbols.Type{Kind: symbols.BooleanT}) }
func stringT() TypeOrVar  { return concrete(symbols.Type{Kind: symbols.StringT}) }

// genBinaryOp implements the operator row of the constraint table
// (spec §4.4): each operator fixes its own result type and the type it
// demands of both operands, except `==`, which only requires its
// operands to agree with each other via a shared fresh variable.
func genBinaryOp(n *sast.BinaryOp, expected TypeOrVar, e env, vf *varFactory, tab *symbols.Table, out *[]Constraint, errs *[]*posError) TypeOrVar {
	var found TypeOrVar
	switch n.Op {
	case "+", "-", "*", "/", "%":
		found = intT()
		genConstraints(n.Left, intT(), e, vf, tab, out, errs)
		genConstraints(n.Right, intT(), e, vf, tab, out, errs)
	case "<", "<=":
		found = boolT()
		genConstraints(n.Left, intT(), e, vf, tab, out, errs)
		genConstraints(n.Right, intT(), e, vf, tab, out, errs)
	case "&&", "||":
		found = boolT()
		genConstraints(n.Left, boolT(), e, vf, tab, out, errs)
		genConstraints(n.Right, boolT(), e, vf, tab, out, errs)
	case "==":
		found = boolT()
		alpha := vf.fresh()
		genConstraints(n.Left, alpha, e, vf, tab, out, errs)
		genConstraints(n.Right, alpha, e, vf, tab, out, errs)
	case "++":
		found = stringT()
		genConstraints(n.Left, stringT(), e, vf, tab, out, errs)
		genConstraints(n.Right, stringT(), e, vf, tab, out, errs)
	default:
		found = vf.fresh()
	}
	*out = append(*out, Constraint{Found: found, Expected: expected, Pos: n.Pos})
	return found
}

// genUnaryOp implements `!` (Boolean) and unary `-` (Int).
func genUnaryOp(n *sast.UnaryOp, expected TypeOrVar, e env, vf *varFactory, tab *symbols.Table, out *[]Constraint, errs *[]*posError) TypeOrVar {
	var found TypeOrVar
	switch n.Op {
	case "!":
		found = boolT()
		genConstraints(n.Expr, boolT(), e, vf, tab, out, errs)
	case "-":
		found = intT()
		genConstraints(n.Expr, intT(), e, vf, tab, out, errs)
	default:
		found = vf.fresh()
	}
	*out = append(*out, Constraint{Found: found, Expected: expected, Pos: n.Pos})
	return found
}
