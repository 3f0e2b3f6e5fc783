// Package wat is a minimal indentation-aware writer for the WebAssembly
// text format (s-expressions). It has no notion of WASM semantics; it
// only tracks nesting depth so the code generator's output is readable,
// matching the shared "AST/symbols/diagnostics/printer" slice of the
// pipeline (spec §2).
package wat

import (
	"fmt"
	"strings"
)

// Writer accumulates WAT source line by line.
type Writer struct {
	b      strings.Builder
	indent int
}

// New creates an empty Writer.
func New() *Writer { return &Writer{} }

// Open writes an opening s-expression head, e.g. Open("module") writes
// "(module" on its own line and increases indentation for what follows.
func (w *Writer) Open(format string, args ...interface{}) {
	w.Line("("+format, args...)
	w.indent++
}

// Close writes a bare ")" and decreases indentation, closing the most
// recent Open.
func (w *Writer) Close() {
	w.indent--
	w.Line(")")
}

// Line writes one fully-formed, self-contained s-expression or instruction
// on its own indented line.
func (w *Writer) Line(format string, args ...interface{}) {
	w.b.WriteString(strings.Repeat("  ", w.indent))
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteByte('\n')
}

// Block writes a keyword-delimited header (e.g. "if (result i32)",
// "block $done", "loop $again") and increases indentation for the
// instructions that follow, to be closed by End. Unlike Open/Close this
// never adds a closing paren: the matching keyword ("end") is what
// closes a WAT control instruction in flat instruction form.
func (w *Writer) Block(format string, args ...interface{}) {
	w.Line(format, args...)
	w.indent++
}

// Mid writes a mid-block keyword (typically "else") at the enclosing
// block's indentation, then resumes indenting for what follows.
func (w *Writer) Mid(format string, args ...interface{}) {
	w.indent--
	w.Line(format, args...)
	w.indent++
}

// End closes the most recent Block with a bare "end".
func (w *Writer) End() {
	w.indent--
	w.Line("end")
}

// Raw emits a pre-formatted, possibly multi-line block of WAT text
// verbatim, reindenting each of its lines to the writer's current
// depth. It exists for the handful of fixed runtime helpers (string
// concatenation, integer-to-string conversion) that are easier to
// author as a single hand-written function body than to assemble
// instruction-by-instruction.
func (w *Writer) Raw(text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			w.b.WriteByte('\n')
			continue
		}
		w.b.WriteString(strings.Repeat("  ", w.indent))
		w.b.WriteString(line)
		w.b.WriteByte('\n')
	}
}

// String returns the accumulated WAT source.
func (w *Writer) String() string { return w.b.String() }
