package nameanalyzer

import (
	"github.com/amy-lang/amyc/internal/symbols"
)

// StdModuleName is the reserved name of Amy's built-in standard library
// module, always registered before any user module (spec §4.3 pass 1).
const StdModuleName = "Std"

type stdFunc struct {
	name string
	args []symbols.Type
	ret  symbols.Type
}

func intT() symbols.Type     { return symbols.Type{Kind: symbols.IntT} }
func stringT() symbols.Type  { return symbols.Type{Kind: symbols.StringT} }
func unitT() symbols.Type    { return symbols.Type{Kind: symbols.UnitT} }

// stdFuncs enumerates Std's predeclared functions (spec §4.3 pass 1):
// printInt, printString, readInt, readString, intToString, digitToString.
var stdFuncs = []stdFunc{
	{"printInt", []symbols.Type{intT()}, unitT()},
	{"printString", []symbols.Type{stringT()}, unitT()},
	{"readInt", nil, intT()},
	{"readString", nil, stringT()},
	{"intToString", []symbols.Type{intT()}, stringT()},
	{"digitToString", []symbols.Type{intT()}, stringT()},
}

// registerStd installs the Std module and its functions into the table,
// returning the minted Std module identifier.
func registerStd(fac *symbols.Factory, tab *symbols.Table) symbols.Identifier {
	stdID := fac.Fresh(StdModuleName)
	tab.AddModule(stdID, StdModuleName)
	for _, f := range stdFuncs {
		id := fac.Fresh(f.name)
		tab.AddFunction(id, StdModuleName, symbols.FunSig{ArgTypes: f.args, Ret: f.ret, Owner: stdID})
	}
	return stdID
}
