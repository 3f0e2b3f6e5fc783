package types

import "fmt"

// TypeErrorKind classifies a type-checking failure (spec §4.4, §7).
type TypeErrorKind string

const (
	MismatchError      TypeErrorKind = "type_mismatch"
	CallArityError     TypeErrorKind = "call_arity"
	PatternArityError  TypeErrorKind = "pattern_arity"
)

// TypeCheckError is a single solver or generation failure, carrying
// enough detail for a diag.Report message.
type TypeCheckError struct {
	Kind     TypeErrorKind
	Message  string
	Expected string
	Found    string
}

func (e *TypeCheckError) Error() string {
	if e.Expected != "" || e.Found != "" {
		return fmt.Sprintf("%s (expected %s, found %s)", e.Message, e.Expected, e.Found)
	}
	return e.Message
}

// NewMismatchError reports that two TypeOrVar sides failed to unify.
func NewMismatchError(expected, found TypeOrVar) *TypeCheckError {
	return &TypeCheckError{
		Kind:     MismatchError,
		Message:  "type mismatch",
		Expected: expected.String(),
		Found:    found.String(),
	}
}

// NewCallArityError reports a function/constructor call with the wrong
// number of arguments.
func NewCallArityError(name string, want, got int) *TypeCheckError {
	return &TypeCheckError{
		Kind:    CallArityError,
		Message: fmt.Sprintf("%s expects %d argument(s), found %d", name, want, got),
	}
}

// NewPatternArityError reports a constructor pattern with the wrong
// number of sub-patterns.
func NewPatternArityError(name string, want, got int) *TypeCheckError {
	return &TypeCheckError{
		Kind:    PatternArityError,
		Message: fmt.Sprintf("pattern for %s expects %d sub-pattern(s), found %d", name, want, got),
	}
}
