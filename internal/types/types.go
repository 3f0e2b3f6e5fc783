// Package types implements Amy's constraint-based, monomorphic type
// checker (spec §4.4): constraint generation over the symbolic AST
// followed by a unification solver over TypeOrVar. The solver runs once
// per function body and once per module initializer, consuming the
// frozen symbols.Table built by internal/nameanalyzer and never
// mutating it.
package types

import (
	"github.com/amy-lang/amyc/internal/ast"
	"github.com/amy-lang/amyc/internal/symbols"
)

// TypeOrVar is either a concrete symbols.Type or a fresh type variable,
// identified by a process-local counter. Amy has exactly one kind of
// type variable; there is no kind system to speak of.
type TypeOrVar struct {
	IsVar bool
	Var   uint64
	Type  symbols.Type
}

func concrete(t symbols.Type) TypeOrVar { return TypeOrVar{Type: t} }

func (t TypeOrVar) String() string {
	if t.IsVar {
		return "?"
	}
	return t.Type.String()
}

// varFactory mints fresh type variables, scoped to a single
// genConstraints run (one function body or one module initializer),
// matching the fresh-identifier counter's per-compilation reset rule
// (spec §5, §9).
type varFactory struct {
	next uint64
}

func (f *varFactory) fresh() TypeOrVar {
	f.next++
	return TypeOrVar{IsVar: true, Var: f.next}
}

// Constraint is one `(found, expected, pos)` obligation emitted by
// genConstraints (spec §4.4).
type Constraint struct {
	Found    TypeOrVar
	Expected TypeOrVar
	Pos      ast.Pos
}
