// Package ast defines the nominal abstract syntax tree produced by the
// parser: names are plain strings and module qualifications are optional
// prefixes. The name analyzer consumes a Program and rewrites it into the
// symbolic tree defined by package sast.
package ast

import (
	"fmt"
	"strings"
)

// Pos is a source position. Each file restarts its own line/column count;
// the lexer never merges positions across files.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Node is the base interface implemented by every AST node. Position
// returns the position of the node's first significant token.
type Node interface {
	Position() Pos
	String() string
}

// QualifiedName is a (module?, localName) pair as written in source.
type QualifiedName struct {
	Module *string
	Name   string
}

func (q QualifiedName) String() string {
	if q.Module != nil {
		return *q.Module + "." + q.Name
	}
	return q.Name
}

// Type is the nominal type-tree: either a primitive name or a possibly
// module-qualified class reference.
type Type struct {
	Primitive string // "Int", "String", "Boolean", "Unit", or "" if Qualified is set
	Qualified *QualifiedName
	Pos       Pos
}

func (t *Type) Position() Pos { return t.Pos }
func (t *Type) String() string {
	if t.Qualified != nil {
		return t.Qualified.String()
	}
	return t.Primitive
}

// Program is the root node: a list of modules.
type Program struct {
	Modules []*ModuleDef
}

func (p *Program) Position() Pos {
	if len(p.Modules) > 0 {
		return p.Modules[0].Position()
	}
	return Pos{}
}
func (p *Program) String() string {
	parts := make([]string, len(p.Modules))
	for i, m := range p.Modules {
		parts[i] = m.String()
	}
	return strings.Join(parts, "\n\n")
}

// Def is any top-level module member: FunDef, AbstractClassDef, CaseClassDef.
type Def interface {
	Node
	defNode()
}

// ModuleDef is `object Name { Def* Expr? }`.
type ModuleDef struct {
	Name string
	Defs []Def
	Expr Expr // optional top-level expression
	Pos  Pos
}

func (m *ModuleDef) Position() Pos { return m.Pos }
func (m *ModuleDef) String() string {
	parts := make([]string, len(m.Defs))
	for i, d := range m.Defs {
		parts[i] = d.String()
	}
	body := strings.Join(parts, "\n")
	if m.Expr != nil {
		body += "\n" + m.Expr.String()
	}
	return fmt.Sprintf("object %s {\n%s\n}", m.Name, body)
}

// ParamDef is a single `name: Type` parameter.
type ParamDef struct {
	Name string
	Type *Type
	Pos  Pos
}

func (p *ParamDef) Position() Pos { return p.Pos }
func (p *ParamDef) String() string {
	return fmt.Sprintf("%s: %s", p.Name, p.Type)
}

// FunDef is `def name(params): RetType = { body }`.
type FunDef struct {
	Name    string
	Params  []*ParamDef
	RetType *Type
	Body    Expr
	Pos     Pos
}

func (f *FunDef) Position() Pos { return f.Pos }
func (f *FunDef) defNode()      {}
func (f *FunDef) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("def %s(%s): %s = { %s }", f.Name, strings.Join(params, ", "), f.RetType, f.Body)
}

// AbstractClassDef is `abstract class Name`.
type AbstractClassDef struct {
	Name string
	Pos  Pos
}

func (a *AbstractClassDef) Position() Pos { return a.Pos }
func (a *AbstractClassDef) defNode()      {}
func (a *AbstractClassDef) String() string {
	return fmt.Sprintf("abstract class %s", a.Name)
}

// CaseClassDef is `case class Name(fields) extends Parent`.
type CaseClassDef struct {
	Name   string
	Fields []*ParamDef
	Parent string
	Pos    Pos
}

func (c *CaseClassDef) Position() Pos { return c.Pos }
func (c *CaseClassDef) defNode()      {}
func (c *CaseClassDef) String() string {
	fields := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		fields[i] = f.String()
	}
	return fmt.Sprintf("case class %s(%s) extends %s", c.Name, strings.Join(fields, ", "), c.Parent)
}
