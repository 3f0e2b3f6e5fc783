package interp

import "github.com/amy-lang/amyc/internal/symbols"

// Env is a chained variable scope, keyed by the same stable Identifier
// the name analyzer minted, so lookups never depend on lexical shadowing
// rules being re-derived at evaluation time.
type Env struct {
	vars   map[symbols.Identifier]Value
	parent *Env
}

// NewEnv creates a scope chained to parent (nil for a root scope).
func NewEnv(parent *Env) *Env {
	return &Env{vars: map[symbols.Identifier]Value{}, parent: parent}
}

// Get resolves id, searching outward through enclosing scopes.
func (e *Env) Get(id symbols.Identifier) (Value, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[id]; ok {
			return v, true
		}
	}
	return nil, false
}

// Bind introduces or overwrites id in this scope only.
func (e *Env) Bind(id symbols.Identifier, v Value) {
	e.vars[id] = v
}
