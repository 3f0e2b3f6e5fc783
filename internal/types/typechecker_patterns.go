package types

import (
	"github.com/amy-lang/amyc/internal/ast"
	"github.com/amy-lang/amyc/internal/sast"
	"github.com/amy-lang/amyc/internal/symbols"
)

// genMatch implements Match(s, cases): the scrutinee is checked against
// a fresh variable shared by every case's pattern, and each case's body
// against the surrounding expectation (spec §4.4).
func genMatch(n *sast.Match, expected TypeOrVar, e env, vf *varFactory, tab *symbols.Table, out *[]Constraint, errs *[]*posError) TypeOrVar {
	sigma := vf.fresh()
	genConstraints(n.Scrutinee, sigma, e, vf, tab, out, errs)
	for _, c := range n.Cases {
		branchEnv := genPattern(c.Pattern, sigma, e, tab, out, errs)
		genConstraints(c.Body, expected, branchEnv, vf, tab, out, errs)
	}
	*out = append(*out, Constraint{Found: expected, Expected: expected, Pos: n.Pos})
	return expected
}

// genPattern emits the constraints a pattern imposes on the slot it is
// matched against and returns the environment extended with any
// binders it introduces. A constructor pattern's sub-patterns are
// matched pointwise against the constructor's declared field types
// (spec §4.4).
func genPattern(p sast.Pattern, expected TypeOrVar, e env, tab *symbols.Table, out *[]Constraint, errs *[]*posError) env {
	switch n := p.(type) {
	case *sast.WildcardPattern:
		return e

	case *sast.IdPattern:
		return e.extend(n.ID, expected)

	case *sast.LiteralPattern:
		var found TypeOrVar
		switch n.Kind {
		case ast.IntLit:
			found = intT()
		case ast.BooleanLit:
			found = boolT()
		case ast.StringLit:
			found = stringT()
		default:
			found = concrete(symbols.Type{Kind: symbols.UnitT})
		}
		*out = append(*out, Constraint{Found: found, Expected: expected, Pos: n.Pos})
		return e

	case *sast.CaseClassPattern:
		sig, ok := tab.Constructor(n.Constructor)
		if !ok {
			return e
		}
		*out = append(*out, Constraint{
			Found:    concrete(symbols.Type{Kind: symbols.ClassT, Class: sig.Parent}),
			Expected: expected,
			Pos:      n.Pos,
		})
		if len(n.Subs) != len(sig.ArgTypes) {
			*errs = append(*errs, &posError{pos: n.Pos, err: NewPatternArityError(n.Constructor.Name, len(sig.ArgTypes), len(n.Subs))})
		}
		lim := len(n.Subs)
		if len(sig.ArgTypes) < lim {
			lim = len(sig.ArgTypes)
		}
		cur := e
		for i := 0; i < lim; i++ {
			cur = genPattern(n.Subs[i], concrete(sig.ArgTypes[i]), cur, tab, out, errs)
		}
		return cur

	default:
		return e
	}
}
