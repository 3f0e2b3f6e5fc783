package codegen

import (
	"github.com/amy-lang/amyc/internal/sast"
	"github.com/amy-lang/amyc/internal/wat"
)

// emitMatch lowers a Match expression to a left-to-right nested
// if/else chain (spec §4.5's "Match" rule), replacing the teacher's
// full decision-tree matrix compiler (internal/dtree) with the
// simpler per-case sequential form the spec actually calls for: each
// case's pattern compiles to a self-contained boolean test, and a
// candidate's bindings are only ever stored once inside its own
// matched branch, so a discarded candidate never touches a binder it
// doesn't own. The chain ends in a printed diagnostic and
// `unreachable` if every case fails, covering the non-exhaustive-match
// runtime trap.
func (g *generator) emitMatch(w *wat.Writer, n *sast.Match, plan *funcPlan) {
	scratch := plan.scratch[n]
	g.emitExpr(w, n.Scrutinee, plan)
	w.Line("local.set %s", scratch)

	scrutinee := func(w *wat.Writer) { w.Line("local.get %s", scratch) }
	g.emitMatchCases(w, n.Cases, 0, scrutinee, plan)
}

func (g *generator) emitMatchCases(w *wat.Writer, cases []*sast.MatchCase, i int, scrutinee func(*wat.Writer), plan *funcPlan) {
	if i >= len(cases) {
		w.Line("i32.const %d", matchErrorPtr)
		w.Line("call $printString")
		w.Line("drop")
		w.Line("unreachable")
		return
	}

	c := cases[i]
	g.emitAndChain(w, g.patternTests(c.Pattern, scrutinee, plan))
	w.Block("if (result i32)")
	g.bindPattern(w, c.Pattern, scrutinee, plan)
	g.emitExpr(w, c.Body, plan)
	w.Mid("else")
	g.emitMatchCases(w, cases, i+1, scrutinee, plan)
	w.End()
}

// emitAndChain emits a short-circuit conjunction of tests, in the same
// if/else style as `&&` (spec §4.5: "Combine sub-tests with && short
// circuit"). No tests at all means the pattern always matches.
func (g *generator) emitAndChain(w *wat.Writer, tests []func(*wat.Writer)) {
	if len(tests) == 0 {
		w.Line("i32.const 1")
		return
	}
	tests[0](w)
	if len(tests) == 1 {
		return
	}
	w.Block("if (result i32)")
	g.emitAndChain(w, tests[1:])
	w.Mid("else")
	w.Line("i32.const 0")
	w.End()
}

// patternTests flattens a pattern's test obligations into an ordered
// list of boolean-producing thunks, each one given the thunk that
// produces the value it tests against. Wildcard and Id patterns
// contribute no test (they always match); a literal contributes one
// equality test; a constructor pattern contributes a tag test followed
// by its sub-patterns' tests, each addressed against the field loaded
// from the constructor's record at the corresponding offset (spec
// §4.5: "load tag at offset 0 ... recursively test fields at offsets
// 4, 8, ...").
func (g *generator) patternTests(pat sast.Pattern, value func(*wat.Writer), plan *funcPlan) []func(*wat.Writer) {
	switch p := pat.(type) {
	case *sast.WildcardPattern:
		return nil
	case *sast.IdPattern:
		return nil
	case *sast.LiteralPattern:
		scratch := plan.scratchPat[pat]
		return []func(*wat.Writer){func(w *wat.Writer) {
			value(w)
			g.emitLiteral(w, p.Kind, p.Value, scratch)
			w.Line("i32.eq")
		}}
	case *sast.CaseClassPattern:
		sig, _ := g.tab.Constructor(p.Constructor)
		tests := []func(*wat.Writer){func(w *wat.Writer) {
			value(w)
			w.Line("i32.load")
			w.Line("i32.const %d", sig.Index)
			w.Line("i32.eq")
		}}
		for i, sub := range p.Subs {
			tests = append(tests, g.patternTests(sub, fieldValue(value, i), plan)...)
		}
		return tests
	}
	return nil
}

// bindPattern stores every identifier a matched pattern binds into its
// planned local, loading each from the corresponding offset of value.
func (g *generator) bindPattern(w *wat.Writer, pat sast.Pattern, value func(*wat.Writer), plan *funcPlan) {
	switch p := pat.(type) {
	case *sast.IdPattern:
		value(w)
		w.Line("local.set %s", plan.locals[p.ID])
	case *sast.CaseClassPattern:
		for i, sub := range p.Subs {
			g.bindPattern(w, sub, fieldValue(value, i), plan)
		}
	}
}

// fieldValue returns a thunk that loads the i-th field (1-based record
// offset, 0 reserved for the tag) out of whatever parent produces.
func fieldValue(parent func(*wat.Writer), i int) func(*wat.Writer) {
	return func(w *wat.Writer) {
		parent(w)
		w.Line("i32.const %d", (i+1)*4)
		w.Line("i32.add")
		w.Line("i32.load")
	}
}
