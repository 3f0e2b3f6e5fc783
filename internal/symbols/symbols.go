// Package symbols implements the process-local symbol table: the registry
// of globally unique identifiers for modules, types, constructors and
// functions that the name analyzer builds and the type checker and code
// generator consult read-only thereafter (spec §3).
package symbols

import "fmt"

// Identifier is an opaque, process-wide unique id with an attached debug
// name, standing in for both QualifiedName and textual Name once the
// nominal AST has been resolved. Modeled on the teacher's Core AST NodeID
// (internal/core/core.go), which assigns every node a stable uint64 at
// elaboration time.
type Identifier struct {
	id   uint64
	Name string // debug name only, never used for equality
}

func (id Identifier) String() string { return fmt.Sprintf("%s#%d", id.Name, id.id) }

// Equal compares identifiers by their unique numeric id, never by Name.
func (id Identifier) Equal(other Identifier) bool { return id.id == other.id }

// Num returns the identifier's raw numeric value. It exists so downstream
// stages (code generation) can derive stable, deterministic symbol names
// without reopening equality semantics to anything but Equal.
func (id Identifier) Num() uint64 { return id.id }

// Factory mints fresh Identifiers. The counter is process-local and must
// be reset at the start of each compilation to keep determinism across
// repeated invocations within one host process (spec §5, §9).
type Factory struct {
	next uint64
}

// NewFactory creates a Factory whose first minted id is 1 (0 is reserved
// as the zero-value "no identifier").
func NewFactory() *Factory {
	return &Factory{next: 1}
}

// Fresh mints a new globally unique Identifier carrying the given debug name.
func (f *Factory) Fresh(name string) Identifier {
	id := Identifier{id: f.next, Name: name}
	f.next++
	return id
}

// Type is the symbolic AST's type sum: IntType, BooleanType, StringType,
// UnitType or ClassType(id).
type Type struct {
	Kind  TypeKind
	Class Identifier // only meaningful when Kind == ClassT
}

type TypeKind int

const (
	IntT TypeKind = iota
	BooleanT
	StringT
	UnitT
	ClassT
)

func (t Type) String() string {
	switch t.Kind {
	case IntT:
		return "Int"
	case BooleanT:
		return "Boolean"
	case StringT:
		return "String"
	case UnitT:
		return "Unit"
	case ClassT:
		return t.Class.Name
	default:
		return "?"
	}
}

// Equal compares two Types structurally.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	if t.Kind == ClassT {
		return t.Class.Equal(other.Class)
	}
	return true
}

// FunSig is a function's resolved signature.
type FunSig struct {
	ArgTypes []Type
	Ret      Type
	Owner    Identifier // owning module id
}

// ConstrSig is a case class constructor's resolved signature.
type ConstrSig struct {
	ArgTypes []Type
	Parent   Identifier // owning abstract class id
	Index    int        // 0-based declaration order among siblings
}

// byNameKey indexes by-name lookup tables: (module name, local name).
type byNameKey struct {
	Module string
	Name   string
}

// Table is the frozen-after-analysis symbol table (spec §3 invariants).
type Table struct {
	frozen bool

	moduleNames map[Identifier]string
	typeOwner   map[Identifier]Identifier // type id -> owning module id
	functions   map[Identifier]FunSig
	constructors map[Identifier]ConstrSig

	parentConstructors map[Identifier][]Identifier // abstract class id -> constructor ids, in decl order
	constructorParent  map[Identifier]Identifier   // constructor id -> parent abstract class id

	byNameModule map[string]Identifier
	byNameType   map[byNameKey]Identifier
	byNameFunc   map[byNameKey]Identifier
	byNameConstr map[byNameKey]Identifier
}

// New creates an empty, writable Table.
func New() *Table {
	return &Table{
		moduleNames:        map[Identifier]string{},
		typeOwner:          map[Identifier]Identifier{},
		functions:          map[Identifier]FunSig{},
		constructors:       map[Identifier]ConstrSig{},
		parentConstructors: map[Identifier][]Identifier{},
		constructorParent:  map[Identifier]Identifier{},
		byNameModule:       map[string]Identifier{},
		byNameType:         map[byNameKey]Identifier{},
		byNameFunc:         map[byNameKey]Identifier{},
		byNameConstr:       map[byNameKey]Identifier{},
	}
}

func (t *Table) mustNotBeFrozen() {
	if t.frozen {
		panic("symbols: attempt to mutate a frozen Table")
	}
}

// Freeze marks the table read-only; any later mutation attempt panics,
// since it would be a programmer error (spec §3, §5).
func (t *Table) Freeze() { t.frozen = true }

// Frozen reports whether Freeze has been called.
func (t *Table) Frozen() bool { return t.frozen }

// AddModule registers a module id under its source name.
func (t *Table) AddModule(id Identifier, name string) {
	t.mustNotBeFrozen()
	t.moduleNames[id] = name
	t.byNameModule[name] = id
}

// ModuleName returns a module id's declared name.
func (t *Table) ModuleName(id Identifier) (string, bool) {
	name, ok := t.moduleNames[id]
	return name, ok
}

// LookupModule resolves a module by its source name.
func (t *Table) LookupModule(name string) (Identifier, bool) {
	id, ok := t.byNameModule[name]
	return id, ok
}

// AddType registers a type (abstract or case class) id as owned by module.
func (t *Table) AddType(id Identifier, module Identifier, moduleName string) {
	t.mustNotBeFrozen()
	t.typeOwner[id] = module
	t.byNameType[byNameKey{moduleName, id.Name}] = id
}

// TypeOwner returns the module id owning a type id.
func (t *Table) TypeOwner(id Identifier) (Identifier, bool) {
	m, ok := t.typeOwner[id]
	return m, ok
}

// LookupType resolves a type name within a module.
func (t *Table) LookupType(module, name string) (Identifier, bool) {
	id, ok := t.byNameType[byNameKey{module, name}]
	return id, ok
}

// AddFunction registers a function signature under its owning module.
func (t *Table) AddFunction(id Identifier, moduleName string, sig FunSig) {
	t.mustNotBeFrozen()
	t.functions[id] = sig
	t.byNameFunc[byNameKey{moduleName, id.Name}] = id
}

// Function looks up a function's signature by id.
func (t *Table) Function(id Identifier) (FunSig, bool) {
	sig, ok := t.functions[id]
	return sig, ok
}

// LookupFunction resolves a function name within a module.
func (t *Table) LookupFunction(module, name string) (Identifier, bool) {
	id, ok := t.byNameFunc[byNameKey{module, name}]
	return id, ok
}

// AddConstructor registers a case class constructor, linking it to its
// abstract parent and recording its 0-based sibling index.
func (t *Table) AddConstructor(id Identifier, moduleName string, sig ConstrSig) {
	t.mustNotBeFrozen()
	t.constructors[id] = sig
	t.constructorParent[id] = sig.Parent
	t.parentConstructors[sig.Parent] = append(t.parentConstructors[sig.Parent], id)
	t.byNameConstr[byNameKey{moduleName, id.Name}] = id
}

// Constructor looks up a constructor's signature by id.
func (t *Table) Constructor(id Identifier) (ConstrSig, bool) {
	sig, ok := t.constructors[id]
	return sig, ok
}

// LookupConstructor resolves a constructor name within a module.
func (t *Table) LookupConstructor(module, name string) (Identifier, bool) {
	id, ok := t.byNameConstr[byNameKey{module, name}]
	return id, ok
}

// Siblings returns an abstract class's constructor ids in declaration order.
func (t *Table) Siblings(parent Identifier) []Identifier {
	return t.parentConstructors[parent]
}

// ConstructorParent returns a constructor's parent abstract class id.
func (t *Table) ConstructorParent(id Identifier) (Identifier, bool) {
	p, ok := t.constructorParent[id]
	return p, ok
}

// LookupCallable resolves a bare name to either a function or a
// constructor declared in module, in that preference order (both kinds
// share the unqualified-call namespace per spec §4.3 pass 3).
func (t *Table) LookupCallable(module, name string) (Identifier, bool, bool) {
	if id, ok := t.LookupFunction(module, name); ok {
		return id, true, false
	}
	if id, ok := t.LookupConstructor(module, name); ok {
		return id, false, true
	}
	return Identifier{}, false, false
}
