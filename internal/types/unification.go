package types

import "github.com/amy-lang/amyc/internal/ast"

// Substitution maps a type variable to whatever it was last unified
// with — a concrete type, or (transiently) another variable. apply
// follows the chain to its end. No occurs check is needed: Amy's types
// are first-order and non-recursive, so a variable can never occur
// inside its own binding (spec §4.4).
type Substitution map[uint64]TypeOrVar

func (s Substitution) apply(t TypeOrVar) TypeOrVar {
	for t.IsVar {
		next, ok := s[t.Var]
		if !ok {
			return t
		}
		t = next
	}
	return t
}

// solve runs the unification algorithm over cs, processing constraints
// head-first: whichever side is (or resolves to) a variable is bound to
// the other side for the remainder of the pass; two identical concrete
// types are discarded; anything else is a type error at that
// constraint's position (spec §4.4).
func solve(cs []Constraint) (Substitution, []*posError) {
	sub := Substitution{}
	var errs []*posError

	for _, c := range cs {
		found := sub.apply(c.Found)
		expected := sub.apply(c.Expected)

		switch {
		case found.IsVar && expected.IsVar:
			if found.Var != expected.Var {
				sub[found.Var] = expected
			}
		case found.IsVar:
			sub[found.Var] = expected
		case expected.IsVar:
			sub[expected.Var] = found
		case found.Type.Equal(expected.Type):
			// identical concrete types: nothing to do
		default:
			errs = append(errs, &posError{pos: c.Pos, err: NewMismatchError(expected, found)})
		}
	}
	return sub, errs
}

// posError pairs a TypeCheckError with the source position that raised it.
type posError struct {
	pos ast.Pos
	err *TypeCheckError
}
