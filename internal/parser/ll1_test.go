package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amy-lang/amyc/internal/diag"
)

// TestGrammarIsLL1 exercises the startup check directly (spec §4.2), white
// box since validateLL1 and grammar are unexported.
func TestGrammarIsLL1(t *testing.T) {
	rep := diag.NewReporter()
	require.NoError(t, validateLL1(rep))
	require.False(t, rep.HadError())
}

func TestIntersectReportsNoSharedTokenForDisjointAlternatives(t *testing.T) {
	tok, ok := intersect(grammar["Simple"][0].first, grammar["Simple"][1].first)
	require.False(t, ok, "Literal and VarOrCall must have disjoint FIRST sets, got %v", tok)
}
