// Package diag provides the compiler's structured diagnostic reporter: a
// single append-only sink shared by every pipeline stage, plus a registry
// of error codes organized by phase, in the style of AILANG's
// internal/errors package.
package diag

// Error/warning codes, grouped by the stage that raises them (spec §7).
const (
	// Lexer (LEX###)
	LEX001 = "LEX001" // malformed integer literal (overflow)
	LEX002 = "LEX002" // unterminated block comment
	LEX003 = "LEX003" // unknown character

	// Parser (PAR###)
	PAR001 = "PAR001" // unexpected token
	PAR002 = "PAR002" // unexpected end of file
	PAR003 = "PAR003" // grammar failed its startup LL(1) validation

	// Name analysis (NAM###)
	NAM001 = "NAM001" // duplicate module name
	NAM002 = "NAM002" // duplicate type/constructor/function name
	NAM003 = "NAM003" // unresolved type reference
	NAM004 = "NAM004" // case class parent is not an abstract class
	NAM005 = "NAM005" // duplicate parameter name within one function
	NAM006 = "NAM006" // unresolved identifier
	NAM007 = "NAM007" // unresolved module
	NAM008 = "NAM008" // duplicate binder within one pattern

	// Type checking (TYP###)
	TYP001 = "TYP001" // unification failure (type mismatch)
	TYP002 = "TYP002" // call arity mismatch
	TYP003 = "TYP003" // pattern arity mismatch against constructor signature

	// Code generation (GEN###) -- internal invariant violations only
	GEN001 = "GEN001" // unexpected node shape reached codegen
	GEN002 = "GEN002" // unresolved type variable escaped the checker

	// Runtime traps raised by emitted/interpreted code (RT###)
	RT001 = "RT001" // division or modulo by zero; also Std.readInt/readString input failure
	RT002 = "RT002" // non-exhaustive match at runtime
	RT003 = "RT003" // explicit error(...) expression evaluated
)

// Info describes one error code for documentation and filtering.
type Info struct {
	Code        string
	Phase       string
	Description string
}

// Registry maps every code above to its descriptive Info, mirroring
// AILANG's ErrorRegistry.
var Registry = map[string]Info{
	LEX001: {LEX001, "lexer", "Integer literal overflow"},
	LEX002: {LEX002, "lexer", "Unclosed block comment"},
	LEX003: {LEX003, "lexer", "Unrecognized character"},

	PAR001: {PAR001, "parser", "Unexpected token"},
	PAR002: {PAR002, "parser", "Unexpected end of file"},
	PAR003: {PAR003, "parser", "Grammar is not LL(1)"},

	NAM001: {NAM001, "names", "Duplicate module declaration"},
	NAM002: {NAM002, "names", "Duplicate declaration"},
	NAM003: {NAM003, "names", "Unresolved type"},
	NAM004: {NAM004, "names", "Parent class is not abstract"},
	NAM005: {NAM005, "names", "Duplicate parameter name"},
	NAM006: {NAM006, "names", "Unresolved identifier"},
	NAM007: {NAM007, "names", "Unresolved module"},
	NAM008: {NAM008, "names", "Duplicate pattern binder"},

	TYP001: {TYP001, "typecheck", "Type mismatch"},
	TYP002: {TYP002, "typecheck", "Argument count mismatch"},
	TYP003: {TYP003, "typecheck", "Pattern arity mismatch"},

	GEN001: {GEN001, "codegen", "Internal codegen invariant violated"},
	GEN002: {GEN002, "codegen", "Type variable escaped type checking"},

	RT001: {RT001, "runtime", "Division by zero"},
	RT002: {RT002, "runtime", "Non-exhaustive match"},
	RT003: {RT003, "runtime", "Explicit error() raised"},
}

// GetInfo looks up a code's registry entry.
func GetInfo(code string) (Info, bool) {
	info, ok := Registry[code]
	return info, ok
}
