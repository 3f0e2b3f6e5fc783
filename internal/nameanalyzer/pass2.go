package nameanalyzer

import (
	"github.com/amy-lang/amyc/internal/ast"
	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/symbols"
)

// moduleCtx accumulates pass-2 bookkeeping private to one module: the
// fresh ids minted for its types and functions, and the textual-name
// lookup needed to validate parent references before the symbol table's
// own by-name index is fully populated.
type moduleCtx struct {
	name       string
	moduleID   symbols.Identifier
	typeIDs    map[string]symbols.Identifier   // abstract+case class names -> id
	typeIsAbs  map[string]bool                 // true if the type name is abstract
	funcIDs    map[string]symbols.Identifier   // function names -> id
}

// pass2 resolves type/constructor/function signatures for every module, in
// source-declaration order, per spec §4.3 pass 2. Errors are recorded via
// a.rep.Err and do not stop the pass; unresolved entries are simply
// skipped rather than added to the table. It runs as two full sweeps over
// all modules: sub-pass A mints ids for every declared type/function name
// everywhere first, then sub-pass B resolves field/param/return types, so
// a qualified type reference to a module declared later in the source
// still resolves (module ids themselves were all registered by pass 1).
func (a *Analyzer) pass2(prog *ast.Program) {
	a.contexts = map[string]*moduleCtx{}

	// Sub-pass A: mint one identifier per declared type/function name in
	// every module, so type references need not be declared earlier in the
	// program than their use — within a module or across modules.
	for _, m := range prog.Modules {
		ctx := &moduleCtx{
			name:      m.Name,
			moduleID:  a.moduleIDs[m.Name],
			typeIDs:   map[string]symbols.Identifier{},
			typeIsAbs: map[string]bool{},
			funcIDs:   map[string]symbols.Identifier{},
		}
		a.contexts[m.Name] = ctx

		for _, d := range m.Defs {
			switch def := d.(type) {
			case *ast.AbstractClassDef:
				if _, dup := ctx.typeIDs[def.Name]; dup {
					a.rep.Err(diag.NAM002, def.Position(), "duplicate type name %q in module %s", def.Name, m.Name)
					continue
				}
				id := a.fac.Fresh(def.Name)
				ctx.typeIDs[def.Name] = id
				ctx.typeIsAbs[def.Name] = true
			case *ast.CaseClassDef:
				if _, dup := ctx.typeIDs[def.Name]; dup {
					a.rep.Err(diag.NAM002, def.Position(), "duplicate type name %q in module %s", def.Name, m.Name)
					continue
				}
				id := a.fac.Fresh(def.Name)
				ctx.typeIDs[def.Name] = id
				ctx.typeIsAbs[def.Name] = false
			case *ast.FunDef:
				if _, dup := ctx.funcIDs[def.Name]; dup {
					a.rep.Err(diag.NAM002, def.Position(), "duplicate function name %q in module %s", def.Name, m.Name)
					continue
				}
				ctx.funcIDs[def.Name] = a.fac.Fresh(def.Name)
			}
		}
	}

	// Sub-pass B: resolve field/param/return types, register constructor
	// parent links (with sibling index = encounter order within this
	// sub-pass) and function signatures.
	for _, m := range prog.Modules {
		ctx := a.contexts[m.Name]
		for _, d := range m.Defs {
			switch def := d.(type) {
			case *ast.AbstractClassDef:
				id, ok := ctx.typeIDs[def.Name]
				if !ok {
					continue
				}
				a.tab.AddType(id, ctx.moduleID, m.Name)
			case *ast.CaseClassDef:
				a.resolveCaseClass(ctx, def, m.Name)
			case *ast.FunDef:
				a.resolveFunDef(ctx, def, m.Name)
			}
		}
	}
}

func (a *Analyzer) resolveCaseClass(ctx *moduleCtx, def *ast.CaseClassDef, moduleName string) {
	id, ok := ctx.typeIDs[def.Name]
	if !ok {
		return
	}
	a.tab.AddType(id, ctx.moduleID, moduleName)

	parentID, ok := ctx.typeIDs[def.Parent]
	if !ok {
		a.rep.Err(diag.NAM003, def.Position(), "unresolved parent class %q for %q", def.Parent, def.Name)
		return
	}
	if !ctx.typeIsAbs[def.Parent] {
		a.rep.Err(diag.NAM004, def.Position(), "parent %q of %q is not an abstract class", def.Parent, def.Name)
		return
	}

	argTypes := make([]symbols.Type, 0, len(def.Fields))
	ok = true
	for _, f := range def.Fields {
		t, resolveErr := a.resolveType(ctx, f.Type)
		if resolveErr {
			ok = false
			continue
		}
		argTypes = append(argTypes, t)
	}
	if !ok {
		return
	}
	a.tab.AddConstructor(id, moduleName, symbols.ConstrSig{
		ArgTypes: argTypes,
		Parent:   parentID,
		Index:    len(a.tab.Siblings(parentID)),
	})
}

func (a *Analyzer) resolveFunDef(ctx *moduleCtx, def *ast.FunDef, moduleName string) {
	id, ok := ctx.funcIDs[def.Name]
	if !ok {
		return
	}

	seen := map[string]bool{}
	for _, p := range def.Params {
		if seen[p.Name] {
			a.rep.Err(diag.NAM005, p.Position(), "duplicate parameter name %q in function %q", p.Name, def.Name)
		}
		seen[p.Name] = true
	}

	argTypes := make([]symbols.Type, 0, len(def.Params))
	anyUnresolved := false
	for _, p := range def.Params {
		t, unresolved := a.resolveType(ctx, p.Type)
		if unresolved {
			anyUnresolved = true
			continue
		}
		argTypes = append(argTypes, t)
	}
	retType, unresolved := a.resolveType(ctx, def.RetType)
	if unresolved {
		anyUnresolved = true
	}
	if anyUnresolved {
		return
	}
	a.tab.AddFunction(id, moduleName, symbols.FunSig{ArgTypes: argTypes, Ret: retType, Owner: ctx.moduleID})
}

// resolveType resolves a nominal type tree to a symbols.Type. Primitives
// resolve directly; class references resolve qualified-then-unqualified
// within the current module (spec §4.3 pass 2).
func (a *Analyzer) resolveType(ctx *moduleCtx, t *ast.Type) (symbols.Type, bool) {
	switch t.Primitive {
	case "Int":
		return symbols.Type{Kind: symbols.IntT}, false
	case "String":
		return symbols.Type{Kind: symbols.StringT}, false
	case "Boolean":
		return symbols.Type{Kind: symbols.BooleanT}, false
	case "Unit":
		return symbols.Type{Kind: symbols.UnitT}, false
	}
	q := t.Qualified
	if q == nil {
		a.rep.Err(diag.NAM003, t.Position(), "malformed type reference")
		return symbols.Type{}, true
	}
	if q.Module != nil {
		modCtx, ok := a.contexts[*q.Module]
		if !ok {
			a.rep.Err(diag.NAM007, t.Position(), "unresolved module %q", *q.Module)
			return symbols.Type{}, true
		}
		id, ok := modCtx.typeIDs[q.Name]
		if !ok {
			a.rep.Err(diag.NAM003, t.Position(), "unresolved type %s.%s", *q.Module, q.Name)
			return symbols.Type{}, true
		}
		return symbols.Type{Kind: symbols.ClassT, Class: id}, false
	}
	id, ok := ctx.typeIDs[q.Name]
	if !ok {
		a.rep.Err(diag.NAM003, t.Position(), "unresolved type %q", q.Name)
		return symbols.Type{}, true
	}
	return symbols.Type{Kind: symbols.ClassT, Class: id}, false
}
