package diag

import (
	"fmt"

	"github.com/amy-lang/amyc/internal/ast"
	"github.com/google/uuid"
)

// Abort is the sentinel error returned by Reporter.Check when a Fatal
// diagnostic was recorded; pipeline stages unwind on it immediately.
type Abort struct {
	Report *Report
}

func (a *Abort) Error() string { return a.Report.Error() }

// Reporter is the append-only diagnostic sink threaded through every
// pipeline stage (spec §5): lexer, parser, name analyzer, type checker and
// code generator all write into the same Reporter.
type Reporter struct {
	RunID    string
	reports  []*Report
	hadError bool
}

// NewReporter creates a Reporter stamped with a fresh run ID, used to
// correlate the reports of one compilation invocation in aggregated logs.
func NewReporter() *Reporter {
	return &Reporter{RunID: uuid.NewString()}
}

// Warn records a Warning diagnostic. Never halts anything.
func (r *Reporter) Warn(code string, pos ast.Pos, format string, args ...interface{}) {
	r.reports = append(r.reports, New(Warning, code, pos, format, args...))
}

// Err records an Error diagnostic; the current stage keeps running but the
// pipeline will abort once the stage returns.
func (r *Reporter) Err(code string, pos ast.Pos, format string, args ...interface{}) {
	r.hadError = true
	r.reports = append(r.reports, New(Error, code, pos, format, args...))
}

// Fatal records a Fatal diagnostic and returns an *Abort that the caller
// must propagate up out of the current stage immediately.
func (r *Reporter) Fatal(code string, pos ast.Pos, format string, args ...interface{}) *Abort {
	rep := New(Fatal, code, pos, format, args...)
	r.reports = append(r.reports, rep)
	r.hadError = true
	return &Abort{Report: rep}
}

// HadError reports whether any Error or Fatal diagnostic was recorded so
// far, which the pipeline driver uses to decide whether to abort between
// stages even without an explicit Abort.
func (r *Reporter) HadError() bool { return r.hadError }

// Reports returns every diagnostic recorded, in emission order.
func (r *Reporter) Reports() []*Report { return r.reports }

// Reset clears accumulated diagnostics and assigns a fresh run ID; callers
// must invoke this once per compilation to keep reports from one run out
// of the next (mirrors the fresh-identifier-counter reset requirement).
func (r *Reporter) Reset() {
	r.reports = nil
	r.hadError = false
	r.RunID = uuid.NewString()
}

// StageBoundary aborts the pipeline with a plain error if any Error/Fatal
// was recorded during the just-finished stage.
func (r *Reporter) StageBoundary(stage string) error {
	if r.hadError {
		return fmt.Errorf("%s: aborting after %d diagnostic(s)", stage, len(r.reports))
	}
	return nil
}
