package codegen

import (
	"fmt"

	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/sast"
	"github.com/amy-lang/amyc/internal/symbols"
	"github.com/amy-lang/amyc/internal/wat"
)

// stdModule is the reserved name of the built-in module whose functions
// lower to imports or runtime helpers instead of user-defined WAT
// functions (spec §4.3's Std, §4.5's built-in lowering).
const stdModule = "Std"

// matchErrorMsg is printed before trapping on a non-exhaustive match
// (spec §4.5's "If no case matches at runtime, emit a printed error
// message and unreachable"). It is written into a static data segment
// at address 0 rather than materialized at runtime, since it has no
// source position of its own to attach a Literal node's scratch local
// to; the bump-pointer heap then starts immediately after it.
const matchErrorMsg = "Match error: no case matched the scrutinee"

// matchErrorPtr is the fixed address of matchErrorMsg's data segment.
const matchErrorPtr = 0

// DefaultPages is the initial memory page count requested from the host
// when the caller has no better value, matching spec §4.5's import
// preamble.
const DefaultPages = 100

// Emit lowers a fully type-checked symbolic program to a single WAT
// module (spec §4.5). pages is the initial memory page count declared in
// the `system.mem` import (the manifest's `pages:` knob); values <= 0
// fall back to DefaultPages. It assumes prog has already passed name
// analysis and type checking; any shape it cannot account for is an
// internal invariant violation reported as GEN001, not a
// user-facing error.
func Emit(prog *sast.Program, tab *symbols.Table, rep *diag.Reporter, pages int) string {
	if pages <= 0 {
		pages = DefaultPages
	}

	w := wat.New()
	w.Open("module")

	w.Line(`(import "system" "mem" (memory %d))`, pages)
	w.Line(`(import "system" "printInt" (func $printInt (param i32) (result i32)))`)
	w.Line(`(import "system" "printString" (func $printString (param i32) (result i32)))`)
	w.Line(`(import "system" "readInt" (func $readInt (result i32)))`)
	w.Line(`(import "system" "readString0" (func $readString0 (param i32) (result i32)))`)

	heapStart := paddedStringSize(len(matchErrorMsg))
	w.Line(`(data (i32.const %d) %s)`, matchErrorPtr, watStringLiteral(matchErrorMsg))
	w.Line("(global $heap (mut i32) (i32.const %d))", heapStart)

	w.Raw(stringConcatWAT)
	w.Raw(digitToStringWAT)
	w.Raw(intToStringWAT)

	g := &generator{tab: tab, rep: rep}
	for _, m := range prog.Modules {
		moduleName, _ := tab.ModuleName(m.ID)
		for _, d := range m.Defs {
			if fd, ok := d.(*sast.FunDef); ok {
				g.emitFunction(w, moduleName, fd)
			}
		}
		if m.Expr != nil {
			g.emitModuleMain(w, moduleName, m.Expr)
		}
	}

	w.Close()
	return w.String()
}

// generator carries the read-only context (symbol table, diagnostic
// sink) threaded through expression lowering; all per-function mutable
// state lives in funcPlan instead.
type generator struct {
	tab *symbols.Table
	rep *diag.Reporter
}

// funcName computes the WAT identifier for a user-defined function,
// `<Module>_<Func>` (spec §4.5).
func funcName(moduleName string, local string) string {
	return fmt.Sprintf("$%s_%s", moduleName, local)
}

// watStringLiteral renders s as a WAT data-segment string literal,
// NUL-terminated and zero-padded to the same 4-byte boundary every
// runtime-materialized string observes.
func watStringLiteral(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			b = append(b, '\\')
			b = append(b, c)
		case c >= 0x20 && c < 0x7f:
			b = append(b, c)
		default:
			b = append(b, []byte(fmt.Sprintf(`\%02x`, c))...)
		}
	}
	total := paddedStringSize(len(s))
	for i := len(s); i < total; i++ {
		b = append(b, []byte(`\00`)...)
	}
	return `"` + string(b) + `"`
}

func (g *generator) emitFunction(w *wat.Writer, moduleName string, fd *sast.FunDef) {
	plan := newFuncPlan()
	for _, p := range fd.Params {
		plan.bindParam(p.ID)
	}
	collect(fd.Body, plan)

	header := funcName(moduleName, fd.ID.Name)
	var sig string
	for _, p := range fd.Params {
		sig += fmt.Sprintf(" (param %s i32)", plan.locals[p.ID])
	}
	w.Open("func %s%s (result i32)", header, sig)
	for _, local := range plan.order {
		w.Line("(local %s i32)", local)
	}
	g.emitExpr(w, fd.Body, plan)
	w.Close()
}

// emitModuleMain emits the exported `<Module>_main` wrapper around a
// module's optional top-level expression; its value is dropped (spec
// §4.5's "Module wrapper").
func (g *generator) emitModuleMain(w *wat.Writer, moduleName string, expr sast.Expr) {
	plan := newFuncPlan()
	collect(expr, plan)

	name := funcName(moduleName, "main")
	w.Open(`func %s (export "%s")`, name, name[1:])
	for _, local := range plan.order {
		w.Line("(local %s i32)", local)
	}
	g.emitExpr(w, expr, plan)
	w.Line("drop")
	w.Close()
}
