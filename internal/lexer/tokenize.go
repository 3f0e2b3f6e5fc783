package lexer

import (
	"strings"

	"github.com/amy-lang/amyc/internal/ast"
	"github.com/amy-lang/amyc/internal/diag"
)

// Tokenize lexes one source file into a token stream terminated by exactly
// one EOF. An ILLEGAL token is a fatal diagnostic: the pipeline aborts
// immediately, carrying the token's message and position (spec §4.1, §7).
func Tokenize(filename string, src []byte, rep *diag.Reporter) ([]Token, error) {
	l := New(Normalize(src), filename)
	var toks []Token
	for {
		tok := l.NextToken()
		if tok.Type == ILLEGAL {
			pos := ast.Pos{File: tok.File, Line: tok.Line, Column: tok.Column}
			code := diag.LEX003
			switch {
			case tok.Lit == "unclosed block comment":
				code = diag.LEX002
			case strings.HasPrefix(tok.Lit, "integer literal"):
				code = diag.LEX001
			}
			abort := rep.Fatal(code, pos, "%s", tok.Lit)
			return nil, abort
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}
	return toks, nil
}

// TokenizeFiles lexes multiple source files in order, concatenating their
// token streams. Each file restarts its own position counter; only the
// final file's EOF is kept in the combined stream (earlier EOFs are
// dropped so the parser sees one Program spanning all inputs).
func TokenizeFiles(files map[string][]byte, order []string, rep *diag.Reporter) ([]Token, error) {
	var all []Token
	for i, name := range order {
		toks, err := Tokenize(name, files[name], rep)
		if err != nil {
			return nil, err
		}
		if i < len(order)-1 && len(toks) > 0 && toks[len(toks)-1].Type == EOF {
			toks = toks[:len(toks)-1]
		}
		all = append(all, toks...)
	}
	return all, nil
}
