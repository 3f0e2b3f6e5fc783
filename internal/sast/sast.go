// Package sast defines the symbolic AST: structurally identical to the
// nominal tree in package ast, but every name has been replaced by a
// unique symbols.Identifier. It is produced by internal/nameanalyzer and
// consumed read-only by internal/types and internal/codegen (spec §3).
package sast

import (
	"fmt"
	"strings"

	"github.com/amy-lang/amyc/internal/ast"
	"github.com/amy-lang/amyc/internal/symbols"
)

// Program is the symbolic root: a list of resolved modules.
type Program struct {
	Modules []*ModuleDef
}

// ModuleDef is a resolved `object`.
type ModuleDef struct {
	ID   symbols.Identifier
	Defs []Def
	Expr Expr // optional top-level expression
	Pos  ast.Pos
}

// Def is any resolved top-level member.
type Def interface {
	defNode()
}

// FunDef is a resolved function: parameters now carry resolved ids/types.
type FunDef struct {
	ID      symbols.Identifier
	Params  []Param
	RetType symbols.Type
	Body    Expr
	Pos     ast.Pos
}

func (f *FunDef) defNode() {}

// Param is a resolved parameter binding.
type Param struct {
	ID   symbols.Identifier
	Type symbols.Type
}

// AbstractClassDef is a resolved abstract class declaration.
type AbstractClassDef struct {
	ID  symbols.Identifier
	Pos ast.Pos
}

func (a *AbstractClassDef) defNode() {}

// CaseClassDef is a resolved case class declaration.
type CaseClassDef struct {
	ID     symbols.Identifier
	Fields []Param
	Parent symbols.Identifier
	Pos    ast.Pos
}

func (c *CaseClassDef) defNode() {}

// Expr is the base interface for resolved expressions.
type Expr interface {
	Position() ast.Pos
	exprNode()
}

type Variable struct {
	ID  symbols.Identifier
	Pos ast.Pos
}

func (v *Variable) Position() ast.Pos { return v.Pos }
func (v *Variable) exprNode()         {}

type Literal struct {
	Kind  ast.LiteralKind
	Value interface{}
	Pos   ast.Pos
}

func (l *Literal) Position() ast.Pos { return l.Pos }
func (l *Literal) exprNode()         {}

type BinaryOp struct {
	Op    string
	Left  Expr
	Right Expr
	Pos   ast.Pos
}

func (b *BinaryOp) Position() ast.Pos { return b.Pos }
func (b *BinaryOp) exprNode()         {}

type UnaryOp struct {
	Op   string
	Expr Expr
	Pos  ast.Pos
}

func (u *UnaryOp) Position() ast.Pos { return u.Pos }
func (u *UnaryOp) exprNode()         {}

// Call may reference either a function or a constructor; the resolver
// records which via IsConstructor so later stages needn't re-look it up.
type Call struct {
	Callee        symbols.Identifier
	IsConstructor bool
	Args          []Expr
	Pos           ast.Pos
}

func (c *Call) Position() ast.Pos { return c.Pos }
func (c *Call) exprNode()         {}

type Sequence struct {
	First  Expr
	Second Expr
	Pos    ast.Pos
}

func (s *Sequence) Position() ast.Pos { return s.Pos }
func (s *Sequence) exprNode()         {}

type Let struct {
	Param Param
	Value Expr
	Body  Expr
	Pos   ast.Pos
}

func (l *Let) Position() ast.Pos { return l.Pos }
func (l *Let) exprNode()         {}

type Ite struct {
	Cond Expr
	Then Expr
	Else Expr
	Pos  ast.Pos
}

func (i *Ite) Position() ast.Pos { return i.Pos }
func (i *Ite) exprNode()         {}

type MatchCase struct {
	Pattern Pattern
	Body    Expr
	Pos     ast.Pos
}

type Match struct {
	Scrutinee Expr
	Cases     []*MatchCase
	Pos       ast.Pos
}

func (m *Match) Position() ast.Pos { return m.Pos }
func (m *Match) exprNode()         {}

type Error struct {
	Msg Expr
	Pos ast.Pos
}

func (e *Error) Position() ast.Pos { return e.Pos }
func (e *Error) exprNode()         {}

// Pattern is the base interface for resolved patterns.
type Pattern interface {
	Position() ast.Pos
	patternNode()
}

type WildcardPattern struct {
	Pos ast.Pos
}

func (w *WildcardPattern) Position() ast.Pos { return w.Pos }
func (w *WildcardPattern) patternNode()      {}

// IdPattern binds a fresh Identifier local to the branch.
type IdPattern struct {
	ID  symbols.Identifier
	Pos ast.Pos
}

func (i *IdPattern) Position() ast.Pos { return i.Pos }
func (i *IdPattern) patternNode()      {}

type LiteralPattern struct {
	Kind  ast.LiteralKind
	Value interface{}
	Pos   ast.Pos
}

func (l *LiteralPattern) Position() ast.Pos { return l.Pos }
func (l *LiteralPattern) patternNode()      {}

type CaseClassPattern struct {
	Constructor symbols.Identifier
	Subs        []Pattern
	Pos         ast.Pos
}

func (c *CaseClassPattern) Position() ast.Pos { return c.Pos }
func (c *CaseClassPattern) patternNode()      {}

// String implementations, useful for debugging.

func (p *Program) String() string {
	parts := make([]string, len(p.Modules))
	for i, m := range p.Modules {
		parts[i] = m.String()
	}
	return strings.Join(parts, "\n\n")
}

func (m *ModuleDef) String() string {
	return fmt.Sprintf("object %s { ... }", m.ID)
}
