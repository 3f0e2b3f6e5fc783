package types

import (
	"github.com/amy-lang/amyc/internal/ast"
	"github.com/amy-lang/amyc/internal/sast"
	"github.com/amy-lang/amyc/internal/symbols"
)

// genVariable handles Variable(n) → env(n) (spec §4.4). A binder missing
// from env would be a name-analysis escape; name analysis guarantees
// every Variable in the symbolic tree was resolved, so this only
// defends against that invariant rather than a reachable user error.
func genVariable(n *sast.Variable, expected TypeOrVar, e env, out *[]Constraint, errs *[]*posError) TypeOrVar {
	found, ok := e[n.ID]
	if !ok {
		found = concrete(symbols.Type{})
	}
	*out = append(*out, Constraint{Found: found, Expected: expected, Pos: n.Pos})
	return found
}

// genLiteral handles IntLit/BooleanLit/StringLit/UnitLit → their fixed
// concrete type (spec §4.4).
func genLiteral(n *sast.Literal, expected TypeOrVar, out *[]Constraint, errs *[]*posError) TypeOrVar {
	var found TypeOrVar
	switch n.Kind {
	case ast.IntLit:
		found = concrete(symbols.Type{Kind: symbols.IntT})
	case ast.BooleanLit:
		found = concrete(symbols.Type{Kind: symbols.BooleanT})
	case ast.StringLit:
		found = concrete(symbols.Type{Kind: symbols.StringT})
	default:
		found = concrete(symbols.Type{Kind: symbols.UnitT})
	}
	*out = append(*out, Constraint{Found: found, Expected: expected, Pos: n.Pos})
	return found
}
