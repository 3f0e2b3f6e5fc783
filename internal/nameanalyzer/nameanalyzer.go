// Package nameanalyzer implements Amy's three-pass name resolution
// (spec §4.3): module registration, type/constructor/function signature
// resolution, then expression rewriting from the nominal AST into the
// symbolic AST over a frozen symbols.Table.
package nameanalyzer

import (
	"github.com/amy-lang/amyc/internal/ast"
	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/sast"
	"github.com/amy-lang/amyc/internal/symbols"
)

// Analyzer carries the mutable state threaded through all three passes.
type Analyzer struct {
	rep *diag.Reporter
	fac *symbols.Factory
	tab *symbols.Table

	// moduleIDs maps module source name -> minted Identifier, populated by
	// pass 1 and consulted by every later pass.
	moduleIDs map[string]symbols.Identifier

	// contexts holds each module's pass-2 bookkeeping, reused by pass 3 to
	// resolve unqualified calls and type references.
	contexts map[string]*moduleCtx
}

// Resolve runs all three passes over prog, returning the symbolic program
// and a now-frozen symbol table. It does not abort on ordinary name
// errors (those are collected via rep.Err); it returns a non-nil error
// only when a Fatal diagnostic (duplicate module name) was raised, per
// spec §4.3.
func Resolve(prog *ast.Program, rep *diag.Reporter) (*sast.Program, *symbols.Table, error) {
	a := &Analyzer{
		rep:       rep,
		fac:       symbols.NewFactory(),
		tab:       symbols.New(),
		moduleIDs: map[string]symbols.Identifier{},
	}

	stdID := registerStd(a.fac, a.tab)
	a.moduleIDs[StdModuleName] = stdID

	if err := a.pass1(prog); err != nil {
		return nil, nil, err
	}
	a.pass2(prog)
	out := a.pass3(prog)

	a.tab.Freeze()
	return out, a.tab, nil
}

// pass1 assigns a fresh identifier to every module name; a duplicate
// module name is fatal (spec §4.3 pass 1).
func (a *Analyzer) pass1(prog *ast.Program) error {
	for _, m := range prog.Modules {
		if m.Name == StdModuleName {
			return a.rep.Fatal(diag.NAM001, m.Position(), "module name %q collides with the built-in Std module", m.Name)
		}
		if _, dup := a.moduleIDs[m.Name]; dup {
			return a.rep.Fatal(diag.NAM001, m.Position(), "duplicate module name %q", m.Name)
		}
		id := a.fac.Fresh(m.Name)
		a.moduleIDs[m.Name] = id
		a.tab.AddModule(id, m.Name)
	}
	return nil
}
