// Package repl implements an interactive read-eval-print loop over
// internal/interp, reachable from the `amyc repl` subcommand (spec's
// optional tree-walking interpreter collaborator, SPEC_FULL.md's
// "Interactive REPL" addition). It has no interesting engineering of its
// own: every line is compiled as a one-off module and evaluated fresh,
// the same pipeline `amyc -mode interpret` runs on a whole file.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/interp"
	"github.com/amy-lang/amyc/internal/lexer"
	"github.com/amy-lang/amyc/internal/nameanalyzer"
	"github.com/amy-lang/amyc/internal/parser"
	"github.com/amy-lang/amyc/internal/sast"
	"github.com/amy-lang/amyc/internal/types"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

const prompt = "amy> "

// REPL holds the accumulated function/class definitions that every new
// line is recompiled alongside (Amy has no persistent top-level
// variable bindings; only `def`/`class` declarations carry over).
type REPL struct {
	in      io.Reader
	out     io.Writer
	line    *liner.State
	defs    []string
	history string
}

// New creates a REPL reading from stdin and writing to stdout, with
// liner-backed line editing and a history file in the user's home
// directory.
func New() *REPL {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)

	r := &REPL{in: os.Stdin, out: os.Stdout, line: l}
	if home, err := os.UserHomeDir(); err == nil {
		r.history = home + "/.amyc_history"
		if f, err := os.Open(r.history); err == nil {
			l.ReadHistory(f)
			f.Close()
		}
	}
	return r
}

// Close releases the underlying terminal state and persists history.
func (r *REPL) Close() {
	if r.history != "" {
		if f, err := os.Create(r.history); err == nil {
			r.line.WriteHistory(f)
			f.Close()
		}
	}
	r.line.Close()
}

// Run drives the loop until EOF or an explicit `:quit`.
func (r *REPL) Run() {
	fmt.Fprintln(r.out, cyan("Amy REPL — type :help for commands, :quit to exit"))
	for {
		text, err := r.line.Prompt(prompt)
		if err != nil { // EOF (Ctrl-D) or Ctrl-C
			fmt.Fprintln(r.out)
			return
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		r.line.AppendHistory(text)

		switch text {
		case ":quit", ":q":
			return
		case ":help":
			r.printHelp()
			continue
		case ":reset":
			r.defs = nil
			fmt.Fprintln(r.out, yellow("definitions cleared"))
			continue
		}

		r.evalLine(text)
	}
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, "  :help   show this message")
	fmt.Fprintln(r.out, "  :reset  forget accumulated def/class declarations")
	fmt.Fprintln(r.out, "  :quit   exit the REPL")
	fmt.Fprintln(r.out, "  anything else is compiled as an Amy expression")
}

// looksLikeDef reports whether text should be remembered as a
// definition rather than evaluated as an expression this round.
func looksLikeDef(text string) bool {
	for _, kw := range []string{"def ", "abstract class", "case class"} {
		if strings.HasPrefix(text, kw) {
			return true
		}
	}
	return false
}

func (r *REPL) evalLine(text string) {
	if looksLikeDef(text) {
		r.defs = append(r.defs, text)
		fmt.Fprintln(r.out, green("defined"))
		return
	}

	v, err := r.evalExpr(text)
	if err != nil {
		fmt.Fprintln(r.out, red(err.Error()))
		return
	}
	fmt.Fprintln(r.out, v.String())
}

// evalExpr compiles text as the top-level expression of a throwaway
// module wrapping every def/class the REPL has accumulated so far, then
// runs it through the full pipeline and the interpreter.
func (r *REPL) evalExpr(text string) (interp.Value, error) {
	src := r.moduleSource(text)
	rep := diag.NewReporter()

	toks, err := lexer.Tokenize("<repl>", []byte(src), rep)
	if err != nil {
		return nil, err
	}
	p, err := parser.New(toks, rep)
	if err != nil {
		return nil, err
	}
	prog, err := p.Parse()
	if err != nil {
		return nil, err
	}
	if rep.HadError() {
		return nil, firstError(rep)
	}

	sprog, tab, err := nameanalyzer.Resolve(prog, rep)
	if err != nil {
		return nil, err
	}
	if rep.HadError() {
		return nil, firstError(rep)
	}

	types.Check(sprog, tab, rep)
	if rep.HadError() {
		return nil, firstError(rep)
	}

	var exprNode sast.Expr
	for _, m := range sprog.Modules {
		if m.Expr != nil {
			exprNode = m.Expr
		}
	}
	if exprNode == nil {
		return interp.UnitValue{}, nil
	}

	ip := interp.New(tab, rep, strings.NewReader(""), r.out)
	// Register every accumulated function body without evaluating any
	// module's top-level expression.
	defsOnly := &sast.Program{}
	for _, m := range sprog.Modules {
		mc := *m
		mc.Expr = nil
		defsOnly.Modules = append(defsOnly.Modules, &mc)
	}
	_ = ip.Run(defsOnly)
	var result interp.Value
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				result = nil
			}
		}()
		result = ip.Eval(exprNode, interp.NewEnv(nil))
	}()
	if result == nil {
		return nil, firstError(rep)
	}
	return result, nil
}

func (r *REPL) moduleSource(text string) string {
	var b strings.Builder
	b.WriteString("object Repl {\n")
	for _, d := range r.defs {
		b.WriteString("  ")
		b.WriteString(d)
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(text)
	b.WriteString("\n}\n")
	return b.String()
}

func firstError(rep *diag.Reporter) error {
	reports := rep.Reports()
	if len(reports) == 0 {
		return fmt.Errorf("unknown error")
	}
	return fmt.Errorf("%s", reports[0].Error())
}

// ReadFrom is a non-interactive helper used by tests and by piping
// scripted input into the REPL (liner still handles echo/history).
func ReadFrom(in io.Reader) []string {
	var lines []string
	s := bufio.NewScanner(in)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	return lines
}
