package diag

import (
	"encoding/json"
	"fmt"

	"github.com/amy-lang/amyc/internal/ast"
)

// Severity classifies how a Report affects pipeline progression.
type Severity int

const (
	// Warning never halts the pipeline.
	Warning Severity = iota
	// Error is recorded but lets the current stage finish; the pipeline
	// aborts at the next stage boundary if any Error was recorded.
	Error
	// Fatal aborts the pipeline immediately.
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Report is the canonical structured diagnostic, modeled on AILANG's
// internal/errors.Report: schema-tagged, JSON-serializable, code-indexed.
type Report struct {
	Schema   string         `json:"schema"`
	Code     string         `json:"code"`
	Severity string         `json:"severity"`
	Phase    string         `json:"phase"`
	Message  string         `json:"message"`
	Pos      *ast.Pos       `json:"pos,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// ToJSON renders the report as JSON, compact or indented.
func (r *Report) ToJSON(indent bool) (string, error) {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(r, "", "  ")
	} else {
		data, err = json.Marshal(r)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *Report) Error() string {
	if r.Pos != nil {
		return fmt.Sprintf("%s: %s [%s] %s", r.Pos, r.Severity, r.Code, r.Message)
	}
	return fmt.Sprintf("%s [%s] %s", r.Severity, r.Code, r.Message)
}

// New builds a Report, looking up the code's registered phase when the
// caller doesn't know it offhand.
func New(severity Severity, code string, pos ast.Pos, format string, args ...interface{}) *Report {
	phase := "unknown"
	if info, ok := GetInfo(code); ok {
		phase = info.Phase
	}
	return &Report{
		Schema:   "amyc.diagnostic/v1",
		Code:     code,
		Severity: severity.String(),
		Phase:    phase,
		Message:  fmt.Sprintf(format, args...),
		Pos:      &pos,
	}
}
