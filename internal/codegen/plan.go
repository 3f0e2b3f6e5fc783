// Package codegen lowers a type-checked symbolic program to WebAssembly
// text (spec §4.5), using internal/wat purely for indentation bookkeeping
// and fmt.Fprintf-style text assembly for everything else, in the style of
// the teacher's own direct-to-text emission passes.
package codegen

import (
	"fmt"

	"github.com/amy-lang/amyc/internal/ast"
	"github.com/amy-lang/amyc/internal/sast"
	"github.com/amy-lang/amyc/internal/symbols"
)

// funcPlan collects, ahead of emission, every local WAT needs to
// declare for one Amy function: one local per parameter, one per Let
// binding and pattern binder (keyed by their stable symbols.Identifier),
// and one scratch local per node that needs a temporary during emission
// (string literals, constructor allocations, Match scrutinees, the
// readString built-in). Scratch locals are keyed by node pointer
// identity rather than a traversal-order counter, so the planning pass
// and the emission pass never need to walk the tree in lock-step.
type funcPlan struct {
	locals     map[symbols.Identifier]string
	order      []string // declared locals, in the order collect assigned them
	scratch    map[sast.Expr]string
	scratchPat map[sast.Pattern]string
	nextLocal  int
}

func newFuncPlan() *funcPlan {
	return &funcPlan{
		locals:     map[symbols.Identifier]string{},
		scratch:    map[sast.Expr]string{},
		scratchPat: map[sast.Pattern]string{},
	}
}

func (p *funcPlan) bindParam(id symbols.Identifier) string {
	name := fmt.Sprintf("$p%d", id.Num())
	p.locals[id] = name
	return name
}

func (p *funcPlan) localFor(id symbols.Identifier) string {
	if name, ok := p.locals[id]; ok {
		return name
	}
	name := fmt.Sprintf("$L%d", id.Num())
	p.locals[id] = name
	p.order = append(p.order, name)
	return name
}

func (p *funcPlan) scratchFor(e sast.Expr) string {
	if name, ok := p.scratch[e]; ok {
		return name
	}
	p.nextLocal++
	name := fmt.Sprintf("$t%d", p.nextLocal)
	p.scratch[e] = name
	p.order = append(p.order, name)
	return name
}

// scratchForPattern is scratchFor's counterpart for string-literal
// patterns, which need the same materialize-then-compare scratch local
// as a string-literal expression.
func (p *funcPlan) scratchForPattern(pat sast.Pattern) string {
	if name, ok := p.scratchPat[pat]; ok {
		return name
	}
	p.nextLocal++
	name := fmt.Sprintf("$t%d", p.nextLocal)
	p.scratchPat[pat] = name
	p.order = append(p.order, name)
	return name
}

// collect walks body, registering every Let/pattern binder and every
// node that will need a scratch local at emission time.
func collect(e sast.Expr, p *funcPlan) {
	switch n := e.(type) {
	case *sast.Variable, *sast.Literal:
		if lit, ok := e.(*sast.Literal); ok && lit.Kind == ast.StringLit {
			p.scratchFor(e)
		}
	case *sast.BinaryOp:
		collect(n.Left, p)
		collect(n.Right, p)
	case *sast.UnaryOp:
		collect(n.Expr, p)
	case *sast.Call:
		for _, a := range n.Args {
			collect(a, p)
		}
		if n.IsConstructor || isReadString(n) {
			p.scratchFor(e)
		}
	case *sast.Sequence:
		collect(n.First, p)
		collect(n.Second, p)
	case *sast.Let:
		p.localFor(n.Param.ID)
		collect(n.Value, p)
		collect(n.Body, p)
	case *sast.Ite:
		collect(n.Cond, p)
		collect(n.Then, p)
		collect(n.Else, p)
	case *sast.Match:
		p.scratchFor(e)
		collect(n.Scrutinee, p)
		for _, c := range n.Cases {
			collectPattern(c.Pattern, p)
			collect(c.Body, p)
		}
	case *sast.Error:
		collect(n.Msg, p)
	}
}

func collectPattern(pat sast.Pattern, p *funcPlan) {
	switch n := pat.(type) {
	case *sast.IdPattern:
		p.localFor(n.ID)
	case *sast.LiteralPattern:
		if n.Kind == ast.StringLit {
			p.scratchForPattern(pat)
		}
	case *sast.CaseClassPattern:
		for _, s := range n.Subs {
			collectPattern(s, p)
		}
	}
}

// isReadString reports whether a Call targets the Std.readString
// built-in, the one built-in whose lowering needs a scratch local to
// hold the string's start pointer across the readString0 call.
func isReadString(n *sast.Call) bool {
	return !n.IsConstructor && n.Callee.Name == "readString"
}
