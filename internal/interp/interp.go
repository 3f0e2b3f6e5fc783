package interp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/amy-lang/amyc/internal/ast"
	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/nameanalyzer"
	"github.com/amy-lang/amyc/internal/sast"
	"github.com/amy-lang/amyc/internal/symbols"
)

// trap unwinds Eval's recursive descent the moment a runtime diagnostic
// (spec §7's RT### codes) is raised, mirroring the code generator's
// `unreachable` instruction.
type trap struct{ abort *diag.Abort }

// Interp evaluates a type-checked symbolic program directly. It backs
// both the CLI's `-mode interpret` pipeline and internal/repl, serving
// as the operational reference the compiled WAT output is meant to
// match (spec §1's scope note).
type Interp struct {
	tab *symbols.Table
	rep *diag.Reporter
	in  *bufio.Reader
	out io.Writer

	funcs map[symbols.Identifier]*sast.FunDef
}

// New creates an Interp bound to tab/rep, reading Std.readInt/readString
// input from in and writing Std.printInt/printString output to out.
func New(tab *symbols.Table, rep *diag.Reporter, in io.Reader, out io.Writer) *Interp {
	return &Interp{
		tab:   tab,
		rep:   rep,
		in:    bufio.NewReader(in),
		out:   out,
		funcs: map[symbols.Identifier]*sast.FunDef{},
	}
}

// Run registers every module's functions, then evaluates each module's
// optional top-level expression in declaration order. A runtime trap
// aborts the whole run; its diagnostic is already recorded on rep.
func (ip *Interp) Run(prog *sast.Program) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if t, ok := r.(trap); ok {
				err = t.abort
				return
			}
			panic(r)
		}
	}()

	for _, m := range prog.Modules {
		for _, d := range m.Defs {
			if fd, ok := d.(*sast.FunDef); ok {
				ip.funcs[fd.ID] = fd
			}
		}
	}
	for _, m := range prog.Modules {
		if m.Expr != nil {
			ip.Eval(m.Expr, NewEnv(nil))
		}
	}
	return nil
}

// Eval evaluates a single expression in env, exposed directly for
// internal/repl's one-expression-at-a-time read-eval-print loop.
func (ip *Interp) Eval(e sast.Expr, env *Env) Value {
	switch n := e.(type) {
	case *sast.Variable:
		v, ok := env.Get(n.ID)
		if !ok {
			ip.fatal(diag.GEN001, n.Pos, "internal: unbound variable %q at runtime", n.ID.Name)
		}
		return v

	case *sast.Literal:
		return ip.evalLiteral(n.Kind, n.Value, n.Pos)

	case *sast.BinaryOp:
		return ip.evalBinaryOp(n, env)

	case *sast.UnaryOp:
		return ip.evalUnaryOp(n, env)

	case *sast.Call:
		return ip.evalCall(n, env)

	case *sast.Sequence:
		ip.Eval(n.First, env)
		return ip.Eval(n.Second, env)

	case *sast.Let:
		v := ip.Eval(n.Value, env)
		child := NewEnv(env)
		child.Bind(n.Param.ID, v)
		return ip.Eval(n.Body, child)

	case *sast.Ite:
		if bool(ip.Eval(n.Cond, env).(BoolValue)) {
			return ip.Eval(n.Then, env)
		}
		return ip.Eval(n.Else, env)

	case *sast.Match:
		return ip.evalMatch(n, env)

	case *sast.Error:
		msg := ip.Eval(n.Msg, env)
		fmt.Fprintln(ip.out, msg.String())
		ip.fatal(diag.RT003, n.Pos, "error: %s", msg.String())
	}

	ip.fatal(diag.GEN001, e.Position(), "internal: unhandled expression shape in interpretation")
	return nil
}

func (ip *Interp) fatal(code string, pos ast.Pos, format string, args ...interface{}) {
	abort := ip.rep.Fatal(code, pos, format, args...)
	panic(trap{abort})
}

func (ip *Interp) evalLiteral(kind ast.LiteralKind, value interface{}, pos ast.Pos) Value {
	switch kind {
	case ast.IntLit:
		return IntValue(value.(int32))
	case ast.BooleanLit:
		return BoolValue(value.(bool))
	case ast.UnitLit:
		return UnitValue{}
	case ast.StringLit:
		return &StringValue{S: value.(string)}
	}
	ip.fatal(diag.GEN001, pos, "internal: unknown literal kind")
	return nil
}

func (ip *Interp) evalUnaryOp(n *sast.UnaryOp, env *Env) Value {
	switch n.Op {
	case "-":
		return -ip.Eval(n.Expr, env).(IntValue)
	case "!":
		return !ip.Eval(n.Expr, env).(BoolValue)
	}
	ip.fatal(diag.GEN001, n.Pos, "internal: unknown unary operator %q", n.Op)
	return nil
}

func (ip *Interp) evalBinaryOp(n *sast.BinaryOp, env *Env) Value {
	switch n.Op {
	case "&&":
		if !bool(ip.Eval(n.Left, env).(BoolValue)) {
			return BoolValue(false)
		}
		return ip.Eval(n.Right, env)
	case "||":
		if bool(ip.Eval(n.Left, env).(BoolValue)) {
			return BoolValue(true)
		}
		return ip.Eval(n.Right, env)
	case "==":
		return BoolValue(Equal(ip.Eval(n.Left, env), ip.Eval(n.Right, env)))
	case "++":
		l := ip.Eval(n.Left, env).(*StringValue)
		r := ip.Eval(n.Right, env).(*StringValue)
		return &StringValue{S: l.S + r.S}
	}

	l := ip.Eval(n.Left, env).(IntValue)
	r := ip.Eval(n.Right, env).(IntValue)
	switch n.Op {
	case "+":
		return l + r
	case "-":
		return l - r
	case "*":
		return l * r
	case "/":
		if r == 0 {
			ip.fatal(diag.RT001, n.Pos, "division by zero")
		}
		return l / r
	case "mod", "%":
		if r == 0 {
			ip.fatal(diag.RT001, n.Pos, "modulo by zero")
		}
		return l % r
	case "<":
		return BoolValue(l < r)
	case "<=":
		return BoolValue(l <= r)
	}
	ip.fatal(diag.GEN001, n.Pos, "internal: unknown binary operator %q", n.Op)
	return nil
}

func (ip *Interp) evalCall(n *sast.Call, env *Env) Value {
	if n.IsConstructor {
		sig, ok := ip.tab.Constructor(n.Callee)
		if !ok {
			ip.fatal(diag.GEN001, n.Pos, "internal: call to unresolved constructor %q", n.Callee.Name)
		}
		fields := make([]Value, len(n.Args))
		for i, a := range n.Args {
			fields[i] = ip.Eval(a, env)
		}
		return &RecordValue{Constructor: n.Callee.Name, Tag: sig.Index, Fields: fields}
	}

	sig, ok := ip.tab.Function(n.Callee)
	if !ok {
		ip.fatal(diag.GEN001, n.Pos, "internal: call to unresolved function %q", n.Callee.Name)
	}
	ownerName, _ := ip.tab.ModuleName(sig.Owner)
	if ownerName == nameanalyzer.StdModuleName {
		return ip.evalStdCall(n, env)
	}

	fd, ok := ip.funcs[n.Callee]
	if !ok {
		ip.fatal(diag.GEN001, n.Pos, "internal: function body for %q not registered", n.Callee.Name)
	}
	// Amy has no closures or nested function definitions (spec's
	// Non-goals exclude higher-order functions), so a call's scope
	// starts fresh rather than chaining off the caller's environment.
	callEnv := NewEnv(nil)
	for i, p := range fd.Params {
		callEnv.Bind(p.ID, ip.Eval(n.Args[i], env))
	}
	return ip.Eval(fd.Body, callEnv)
}

func (ip *Interp) evalStdCall(n *sast.Call, env *Env) Value {
	switch n.Callee.Name {
	case "printInt":
		v := ip.Eval(n.Args[0], env).(IntValue)
		fmt.Fprintln(ip.out, int32(v))
		return UnitValue{}
	case "printString":
		v := ip.Eval(n.Args[0], env).(*StringValue)
		fmt.Fprintln(ip.out, v.S)
		return UnitValue{}
	case "readInt":
		line, err := ip.readLine()
		if err != nil {
			ip.fatal(diag.RT001, n.Pos, "readInt: %s", err)
		}
		i, perr := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
		if perr != nil {
			ip.fatal(diag.RT001, n.Pos, "readInt: invalid integer %q", line)
		}
		return IntValue(i)
	case "readString":
		line, err := ip.readLine()
		if err != nil {
			ip.fatal(diag.RT001, n.Pos, "readString: %s", err)
		}
		return &StringValue{S: line}
	case "intToString":
		v := ip.Eval(n.Args[0], env).(IntValue)
		return &StringValue{S: strconv.FormatInt(int64(v), 10)}
	case "digitToString":
		v := ip.Eval(n.Args[0], env).(IntValue)
		return &StringValue{S: string(rune('0' + int32(v)))}
	}
	ip.fatal(diag.GEN001, n.Pos, "internal: unknown Std function %q", n.Callee.Name)
	return nil
}

func (ip *Interp) readLine() (string, error) {
	line, err := ip.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err == io.EOF && line != "" {
		err = nil
	}
	return line, err
}

func (ip *Interp) evalMatch(n *sast.Match, env *Env) Value {
	scrutinee := ip.Eval(n.Scrutinee, env)
	for _, c := range n.Cases {
		child := NewEnv(env)
		if ip.matchPattern(c.Pattern, scrutinee, child) {
			return ip.Eval(c.Body, child)
		}
	}
	ip.fatal(diag.RT002, n.Pos, "non-exhaustive match")
	return nil
}

func (ip *Interp) matchPattern(pat sast.Pattern, v Value, env *Env) bool {
	switch p := pat.(type) {
	case *sast.WildcardPattern:
		return true
	case *sast.IdPattern:
		env.Bind(p.ID, v)
		return true
	case *sast.LiteralPattern:
		lit := ip.evalLiteral(p.Kind, p.Value, p.Pos)
		return Equal(lit, v)
	case *sast.CaseClassPattern:
		rec, ok := v.(*RecordValue)
		if !ok {
			return false
		}
		sig, _ := ip.tab.Constructor(p.Constructor)
		if rec.Tag != sig.Index {
			return false
		}
		for i, sub := range p.Subs {
			if !ip.matchPattern(sub, rec.Fields[i], env) {
				return false
			}
		}
		return true
	}
	return false
}
