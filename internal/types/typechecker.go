package types

import (
	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/sast"
	"github.com/amy-lang/amyc/internal/symbols"
)

// Check type checks every function body and every module initializer in
// prog, reporting failures through rep. It never returns an error
// itself; the caller observes failures via rep.HadError() / a
// subsequent rep.StageBoundary call, matching the non-fatal "error"
// severity spec §4.4/§7 assigns to every type-checking failure.
func Check(prog *sast.Program, tab *symbols.Table, rep *diag.Reporter) {
	for _, m := range prog.Modules {
		for _, d := range m.Defs {
			if fd, ok := d.(*sast.FunDef); ok {
				checkFunBody(fd, tab, rep)
			}
		}
		if m.Expr != nil {
			checkModuleInit(m, tab, rep)
		}
	}
}

func checkFunBody(fd *sast.FunDef, tab *symbols.Table, rep *diag.Reporter) {
	e := env{}
	for _, p := range fd.Params {
		e = e.extend(p.ID, concrete(p.Type))
	}
	run(&varFactory{}, fd.Body, concrete(fd.RetType), e, tab, rep)
}

// checkModuleInit checks a module's optional top-level expression
// against a fresh unconstrained variable: its type is free (spec §4.4).
// The variable comes from the same factory the run uses, keeping its id
// distinct from every variable minted during constraint generation.
func checkModuleInit(m *sast.ModuleDef, tab *symbols.Table, rep *diag.Reporter) {
	vf := &varFactory{}
	run(vf, m.Expr, vf.fresh(), env{}, tab, rep)
}

func run(vf *varFactory, body sast.Expr, expected TypeOrVar, e env, tab *symbols.Table, rep *diag.Reporter) {
	var cs []Constraint
	var errs []*posError
	genConstraints(body, expected, e, vf, tab, &cs, &errs)

	_, solveErrs := solve(cs)
	for _, pe := range errs {
		rep.Err(codeFor(pe.err.Kind), pe.pos, "%s", pe.err.Error())
	}
	for _, pe := range solveErrs {
		rep.Err(diag.TYP001, pe.pos, "%s", pe.err.Error())
	}
}

func codeFor(k TypeErrorKind) string {
	switch k {
	case CallArityError:
		return diag.TYP002
	case PatternArityError:
		return diag.TYP003
	default:
		return diag.TYP001
	}
}

// genConstraints dispatches on the symbolic expression shape, following
// the table in spec §4.4. It both emits constraints into out and
// returns the node's own "found" type; the callers in this package use
// only the emitted constraints.
func genConstraints(ex sast.Expr, expected TypeOrVar, e env, vf *varFactory, tab *symbols.Table, out *[]Constraint, errs *[]*posError) TypeOrVar {
	switch n := ex.(type) {
	case *sast.Variable:
		return genVariable(n, expected, e, out, errs)
	case *sast.Literal:
		return genLiteral(n, expected, out, errs)
	case *sast.BinaryOp:
		return genBinaryOp(n, expected, e, vf, tab, out, errs)
	case *sast.UnaryOp:
		return genUnaryOp(n, expected, e, vf, tab, out, errs)
	case *sast.Call:
		return genCall(n, expected, e, vf, tab, out, errs)
	case *sast.Sequence:
		return genSequence(n, expected, e, vf, tab, out, errs)
	case *sast.Let:
		return genLet(n, expected, e, vf, tab, out, errs)
	case *sast.Ite:
		return genIte(n, expected, e, vf, tab, out, errs)
	case *sast.Match:
		return genMatch(n, expected, e, vf, tab, out, errs)
	case *sast.Error:
		return genError(n, expected, e, vf, tab, out, errs)
	default:
		found := vf.fresh()
		*out = append(*out, Constraint{Found: found, Expected: expected, Pos: ex.Position()})
		return found
	}
}
