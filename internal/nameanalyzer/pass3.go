package nameanalyzer

import (
	"github.com/amy-lang/amyc/internal/ast"
	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/sast"
	"github.com/amy-lang/amyc/internal/symbols"
)

// env is a local name -> Identifier environment, threaded functionally:
// every extension (Let, pattern binding) returns a new map rather than
// mutating the caller's, so sibling branches never see each other's
// bindings (spec §4.3 pass 3).
type env map[string]symbols.Identifier

func (e env) extend(name string, id symbols.Identifier) env {
	out := make(env, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	out[name] = id
	return out
}

// pass3 rewrites the nominal program into the symbolic tree.
func (a *Analyzer) pass3(prog *ast.Program) *sast.Program {
	out := &sast.Program{}
	for _, m := range prog.Modules {
		ctx := a.contexts[m.Name]
		sm := &sast.ModuleDef{ID: ctx.moduleID, Pos: m.Position()}
		for _, d := range m.Defs {
			switch def := d.(type) {
			case *ast.FunDef:
				if fd := a.resolveFunBody(ctx, def); fd != nil {
					sm.Defs = append(sm.Defs, fd)
				}
			case *ast.AbstractClassDef:
				if id, ok := ctx.typeIDs[def.Name]; ok {
					sm.Defs = append(sm.Defs, &sast.AbstractClassDef{ID: id, Pos: def.Position()})
				}
			case *ast.CaseClassDef:
				if id, ok := ctx.typeIDs[def.Name]; ok {
					if sig, ok := a.tab.Constructor(id); ok {
						fields := make([]sast.Param, len(def.Fields))
						for i, f := range def.Fields {
							fields[i] = sast.Param{ID: a.fac.Fresh(f.Name), Type: sig.ArgTypes[i]}
						}
						sm.Defs = append(sm.Defs, &sast.CaseClassDef{ID: id, Fields: fields, Parent: sig.Parent, Pos: def.Position()})
					}
				}
			}
		}
		if m.Expr != nil {
			sm.Expr = a.resolveExpr(ctx, m.Expr, env{})
		}
		out.Modules = append(out.Modules, sm)
	}
	return out
}

func (a *Analyzer) resolveFunBody(ctx *moduleCtx, def *ast.FunDef) *sast.FunDef {
	id, ok := ctx.funcIDs[def.Name]
	if !ok {
		return nil
	}
	sig, ok := a.tab.Function(id)
	if !ok {
		return nil
	}
	e := env{}
	params := make([]sast.Param, len(def.Params))
	for i, p := range def.Params {
		pid := a.fac.Fresh(p.Name)
		params[i] = sast.Param{ID: pid, Type: sig.ArgTypes[i]}
		e = e.extend(p.Name, pid)
	}
	return &sast.FunDef{
		ID:      id,
		Params:  params,
		RetType: sig.Ret,
		Body:    a.resolveExpr(ctx, def.Body, e),
		Pos:     def.Position(),
	}
}

func (a *Analyzer) resolveExpr(ctx *moduleCtx, e ast.Expr, ev env) sast.Expr {
	switch n := e.(type) {
	case *ast.Variable:
		if id, ok := ev[n.Name]; ok {
			return &sast.Variable{ID: id, Pos: n.Pos}
		}
		if id, ok := a.tab.LookupFunction(ctx.name, n.Name); ok {
			return &sast.Call{Callee: id, Pos: n.Pos}
		}
		if id, ok := a.tab.LookupConstructor(ctx.name, n.Name); ok {
			return &sast.Call{Callee: id, IsConstructor: true, Pos: n.Pos}
		}
		a.rep.Err(diag.NAM006, n.Pos, "unresolved identifier %q", n.Name)
		return &sast.Literal{Kind: ast.IntLit, Value: int32(0), Pos: n.Pos}

	case *ast.Literal:
		return &sast.Literal{Kind: n.Kind, Value: n.Value, Pos: n.Pos}

	case *ast.BinaryOp:
		return &sast.BinaryOp{Op: n.Op, Left: a.resolveExpr(ctx, n.Left, ev), Right: a.resolveExpr(ctx, n.Right, ev), Pos: n.Pos}

	case *ast.UnaryOp:
		return &sast.UnaryOp{Op: n.Op, Expr: a.resolveExpr(ctx, n.Expr, ev), Pos: n.Pos}

	case *ast.Call:
		args := make([]sast.Expr, len(n.Args))
		for i, arg := range n.Args {
			args[i] = a.resolveExpr(ctx, arg, ev)
		}
		callee, isCtor, ok := a.resolveCallee(ctx, n.Name, n.Pos)
		if !ok {
			return &sast.Literal{Kind: ast.IntLit, Value: int32(0), Pos: n.Pos}
		}
		return &sast.Call{Callee: callee, IsConstructor: isCtor, Args: args, Pos: n.Pos}

	case *ast.Sequence:
		return &sast.Sequence{First: a.resolveExpr(ctx, n.First, ev), Second: a.resolveExpr(ctx, n.Second, ev), Pos: n.Pos}

	case *ast.Let:
		pid := a.fac.Fresh(n.Param.Name)
		typ, _ := a.resolveType(ctx, n.Param.Type)
		value := a.resolveExpr(ctx, n.Value, ev)
		body := a.resolveExpr(ctx, n.Body, ev.extend(n.Param.Name, pid))
		return &sast.Let{Param: sast.Param{ID: pid, Type: typ}, Value: value, Body: body, Pos: n.Pos}

	case *ast.Ite:
		return &sast.Ite{
			Cond: a.resolveExpr(ctx, n.Cond, ev),
			Then: a.resolveExpr(ctx, n.Then, ev),
			Else: a.resolveExpr(ctx, n.Else, ev),
			Pos:  n.Pos,
		}

	case *ast.Match:
		scrut := a.resolveExpr(ctx, n.Scrutinee, ev)
		cases := make([]*sast.MatchCase, len(n.Cases))
		for i, c := range n.Cases {
			pat, branchEnv := a.resolvePattern(ctx, c.Pattern, ev)
			cases[i] = &sast.MatchCase{Pattern: pat, Body: a.resolveExpr(ctx, c.Body, branchEnv), Pos: c.Pos}
		}
		return &sast.Match{Scrutinee: scrut, Cases: cases, Pos: n.Pos}

	case *ast.Error:
		return &sast.Error{Msg: a.resolveExpr(ctx, n.Msg, ev), Pos: n.Pos}

	default:
		a.rep.Err(diag.NAM006, e.Position(), "internal: unhandled expression node in name analysis")
		return &sast.Literal{Kind: ast.UnitLit, Pos: e.Position()}
	}
}

// resolveCallee resolves a Call's (possibly qualified) target name to
// either a function or a constructor, per spec §4.3 pass 3.
func (a *Analyzer) resolveCallee(ctx *moduleCtx, q ast.QualifiedName, pos ast.Pos) (symbols.Identifier, bool, bool) {
	moduleName := ctx.name
	if q.Module != nil {
		if _, ok := a.moduleIDs[*q.Module]; !ok {
			a.rep.Err(diag.NAM007, pos, "unresolved module %q", *q.Module)
			return symbols.Identifier{}, false, false
		}
		moduleName = *q.Module
	}
	if id, ok := a.tab.LookupFunction(moduleName, q.Name); ok {
		return id, false, true
	}
	if id, ok := a.tab.LookupConstructor(moduleName, q.Name); ok {
		return id, true, true
	}
	a.rep.Err(diag.NAM006, pos, "unresolved identifier %q in module %s", q.Name, moduleName)
	return symbols.Identifier{}, false, false
}

// resolvePattern rewrites a nominal pattern, extending ev with any binders
// it introduces. Duplicate binders within one pattern are an error.
func (a *Analyzer) resolvePattern(ctx *moduleCtx, p ast.Pattern, ev env) (sast.Pattern, env) {
	seen := map[string]bool{}
	return a.resolvePatternRec(ctx, p, ev, seen)
}

func (a *Analyzer) resolvePatternRec(ctx *moduleCtx, p ast.Pattern, ev env, seen map[string]bool) (sast.Pattern, env) {
	switch n := p.(type) {
	case *ast.WildcardPattern:
		return &sast.WildcardPattern{Pos: n.Pos}, ev
	case *ast.LiteralPattern:
		return &sast.LiteralPattern{Kind: n.Literal.Kind, Value: n.Literal.Value, Pos: n.Pos}, ev
	case *ast.IdPattern:
		if seen[n.Name] {
			a.rep.Err(diag.NAM008, n.Pos, "duplicate binder %q in pattern", n.Name)
		}
		seen[n.Name] = true
		id := a.fac.Fresh(n.Name)
		return &sast.IdPattern{ID: id, Pos: n.Pos}, ev.extend(n.Name, id)
	case *ast.CaseClassPattern:
		moduleName := ctx.name
		if n.Name.Module != nil {
			moduleName = *n.Name.Module
		}
		ctorID, ok := a.tab.LookupConstructor(moduleName, n.Name.Name)
		if !ok {
			a.rep.Err(diag.NAM006, n.Pos, "unresolved constructor %q", n.Name)
			return &sast.WildcardPattern{Pos: n.Pos}, ev
		}
		subs := make([]sast.Pattern, len(n.Subs))
		curEnv := ev
		for i, sub := range n.Subs {
			var sp sast.Pattern
			sp, curEnv = a.resolvePatternRec(ctx, sub, curEnv, seen)
			subs[i] = sp
		}
		return &sast.CaseClassPattern{Constructor: ctorID, Subs: subs, Pos: n.Pos}, curEnv
	default:
		return &sast.WildcardPattern{Pos: p.Position()}, ev
	}
}
