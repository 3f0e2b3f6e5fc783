package parser

import (
	"sync"

	"github.com/amy-lang/amyc/internal/ast"
	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/lexer"
)

// alternative names one production of a nonterminal and the set of
// lookahead tokens that starts it (its FIRST set, since none of Amy's
// productions can derive empty except the explicit optional-list rules
// handled separately in parseParams/parseArgs/parsePatterns).
type alternative struct {
	name  string
	first []lexer.TokenType
}

// grammar enumerates every nonterminal with more than one alternative, as
// a static table mirroring the design grammar in spec §4.2. Validating it
// once at startup is Amy's version of the LL(1) check: alternatives of the
// same nonterminal must have disjoint FIRST sets.
var grammar = map[string][]alternative{
	"Def": {
		{"FunDef", []lexer.TokenType{lexer.DEF}},
		{"AbstractDef", []lexer.TokenType{lexer.ABSTRACT}},
		{"CaseDef", []lexer.TokenType{lexer.CASE}},
	},
	"Type": {
		{"Primitive", []lexer.TokenType{lexer.TYPE_INT, lexer.TYPE_STRING, lexer.TYPE_BOOLEAN, lexer.TYPE_UNIT}},
		{"QualifiedId", []lexer.TokenType{lexer.IDENT}},
	},
	"Expr": {
		{"LetExpr", []lexer.TokenType{lexer.VAL}},
		{"SeqExpr", []lexer.TokenType{
			lexer.IF, lexer.INT, lexer.STRING, lexer.BOOLEAN, lexer.IDENT,
			lexer.LPAREN, lexer.ERROR, lexer.MINUS, lexer.BANG,
		}},
	},
	"Lv2Expr": {
		{"IteExpr", []lexer.TokenType{lexer.IF}},
		{"OpExpr", []lexer.TokenType{
			lexer.INT, lexer.STRING, lexer.BOOLEAN, lexer.IDENT,
			lexer.LPAREN, lexer.ERROR, lexer.MINUS, lexer.BANG,
		}},
	},
	"UnaryExpr": {
		{"NegExpr", []lexer.TokenType{lexer.MINUS}},
		{"NotExpr", []lexer.TokenType{lexer.BANG}},
		{"Simple", []lexer.TokenType{
			lexer.INT, lexer.STRING, lexer.BOOLEAN, lexer.IDENT, lexer.LPAREN, lexer.ERROR,
		}},
	},
	"Simple": {
		{"Literal", []lexer.TokenType{lexer.INT, lexer.STRING, lexer.BOOLEAN}},
		{"VarOrCall", []lexer.TokenType{lexer.IDENT}},
		{"Paren", []lexer.TokenType{lexer.LPAREN}},
		{"ErrorExpr", []lexer.TokenType{lexer.ERROR}},
	},
	"Pattern": {
		{"LiteralPattern", []lexer.TokenType{lexer.INT, lexer.STRING, lexer.BOOLEAN}},
		{"UnitPattern", []lexer.TokenType{lexer.LPAREN}},
		{"WildcardPattern", []lexer.TokenType{lexer.UNDERSCORE}},
		{"IdOrConstructorPattern", []lexer.TokenType{lexer.IDENT}},
	},
}

var (
	ll1Once   sync.Once
	ll1Result error
)

// validateLL1 checks that every nonterminal in grammar has pairwise
// disjoint FIRST sets among its alternatives, memoizing the result for the
// lifetime of the process (spec §4.2: "must validate LL(1) at startup").
func validateLL1(rep *diag.Reporter) error {
	ll1Once.Do(func() {
		for nonterminal, alts := range grammar {
			for i := 0; i < len(alts); i++ {
				for j := i + 1; j < len(alts); j++ {
					if tok, ok := intersect(alts[i].first, alts[j].first); ok {
						ll1Result = rep.Fatal(diag.PAR003, ast.Pos{},
							"grammar is not LL(1): nonterminal %s alternatives %s and %s both start with %s",
							nonterminal, alts[i].name, alts[j].name, tok)
						return
					}
				}
			}
		}
	})
	return ll1Result
}

func intersect(a, b []lexer.TokenType) (lexer.TokenType, bool) {
	set := make(map[lexer.TokenType]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	for _, t := range b {
		if set[t] {
			return t, true
		}
	}
	return 0, false
}
