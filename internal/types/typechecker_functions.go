package types

import (
	"github.com/amy-lang/amyc/internal/sast"
	"github.com/amy-lang/amyc/internal/symbols"
)

// genCall implements Call(id, args) → sig.return, constraining each
// argument pointwise against the callee's declared parameter types
// (spec §4.4). The callee may be a function or a constructor; both
// share the same shape of signature lookup.
func genCall(n *sast.Call, expected TypeOrVar, e env, vf *varFactory, tab *symbols.Table, out *[]Constraint, errs *[]*posError) TypeOrVar {
	var argTypes []symbols.Type
	var ret symbols.Type
	if n.IsConstructor {
		sig, ok := tab.Constructor(n.Callee)
		if !ok {
			found := vf.fresh()
			*out = append(*out, Constraint{Found: found, Expected: expected, Pos: n.Pos})
			return found
		}
		argTypes = sig.ArgTypes
		ret = symbols.Type{Kind: symbols.ClassT, Class: sig.Parent}
	} else {
		sig, ok := tab.Function(n.Callee)
		if !ok {
			found := vf.fresh()
			*out = append(*out, Constraint{Found: found, Expected: expected, Pos: n.Pos})
			return found
		}
		argTypes = sig.ArgTypes
		ret = sig.Ret
	}

	if len(n.Args) != len(argTypes) {
		*errs = append(*errs, &posError{pos: n.Pos, err: NewCallArityError(n.Callee.Name, len(argTypes), len(n.Args))})
	}
	lim := len(n.Args)
	if len(argTypes) < lim {
		lim = len(argTypes)
	}
	for i := 0; i < lim; i++ {
		genConstraints(n.Args[i], concrete(argTypes[i]), e, vf, tab, out, errs)
	}

	found := concrete(ret)
	*out = append(*out, Constraint{Found: found, Expected: expected, Pos: n.Pos})
	return found
}

// genSequence implements Sequence(e1,e2) → expected(e2); e1's value is
// discarded so it is checked against a fresh, unconstrained variable.
func genSequence(n *sast.Sequence, expected TypeOrVar, e env, vf *varFactory, tab *symbols.Table, out *[]Constraint, errs *[]*posError) TypeOrVar {
	genConstraints(n.First, vf.fresh(), e, vf, tab, out, errs)
	genConstraints(n.Second, expected, e, vf, tab, out, errs)
	*out = append(*out, Constraint{Found: expected, Expected: expected, Pos: n.Pos})
	return expected
}

// genLet implements Let(p, v, b): v is checked against p's declared
// type, b against the surrounding expectation, with p bound in the
// environment used for b; the Let's own Found is that expectation.
func genLet(n *sast.Let, expected TypeOrVar, e env, vf *varFactory, tab *symbols.Table, out *[]Constraint, errs *[]*posError) TypeOrVar {
	pType := concrete(n.Param.Type)
	genConstraints(n.Value, pType, e, vf, tab, out, errs)
	genConstraints(n.Body, expected, e.extend(n.Param.ID, pType), vf, tab, out, errs)
	*out = append(*out, Constraint{Found: expected, Expected: expected, Pos: n.Pos})
	return expected
}

// genIte implements Ite(c,t,e): the condition must be Boolean; both
// branches are checked against the surrounding expectation directly,
// so an `if`/`else` with mismatched branches is caught at the branch
// that disagrees with the context rather than against each other.
func genIte(n *sast.Ite, expected TypeOrVar, e env, vf *varFactory, tab *symbols.Table, out *[]Constraint, errs *[]*posError) TypeOrVar {
	genConstraints(n.Cond, boolT(), e, vf, tab, out, errs)
	genConstraints(n.Then, expected, e, vf, tab, out, errs)
	genConstraints(n.Else, expected, e, vf, tab, out, errs)
	*out = append(*out, Constraint{Found: expected, Expected: expected, Pos: n.Pos})
	return expected
}

// genError implements Error(msg): msg must be a String; the
// expression's own type unifies with whatever the context demands,
// since control never actually returns through it (spec §4.4).
func genError(n *sast.Error, expected TypeOrVar, e env, vf *varFactory, tab *symbols.Table, out *[]Constraint, errs *[]*posError) TypeOrVar {
	genConstraints(n.Msg, stringT(), e, vf, tab, out, errs)
	found := vf.fresh()
	*out = append(*out, Constraint{Found: found, Expected: expected, Pos: n.Pos})
	return found
}
