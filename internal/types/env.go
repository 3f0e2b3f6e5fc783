package types

import "github.com/amy-lang/amyc/internal/symbols"

// env maps a local binder (function parameter, let-binding, or pattern
// binder) to its type, which may itself be an unresolved type variable
// until the solver runs — a bare pattern binder under a Match takes on
// the scrutinee's type variable directly (spec §4.4). Threaded
// functionally, matching internal/nameanalyzer's env.
type env map[symbols.Identifier]TypeOrVar

func (e env) extend(id symbols.Identifier, t TypeOrVar) env {
	out := make(env, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	out[id] = t
	return out
}
