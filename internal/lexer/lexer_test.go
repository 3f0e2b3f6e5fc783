package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amy-lang/amyc/internal/diag"
)

func TestNextTokenLongestMatchAndPriority(t *testing.T) {
	input := `object Main {
  abstract class Shape
  case class Circle(r: Int) extends Shape
  def area(sh: Shape): Int = {
    sh match {
      case Circle(r) => r * r
      case _ => 0
    }
  }
  val pi: Int = 3
  if true && !false || x <= 10 then "big" else "small"
  "a" ++ "b"
  // line comment
  /* block comment */
}
`
	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{OBJECT, "object"},
		{IDENT, "Main"},
		{LBRACE, "{"},

		{ABSTRACT, "abstract"},
		{CLASS, "class"},
		{IDENT, "Shape"},

		{CASE, "case"},
		{CLASS, "class"},
		{IDENT, "Circle"},
		{LPAREN, "("},
		{IDENT, "r"},
		{COLON, ":"},
		{TYPE_INT, "Int"},
		{RPAREN, ")"},
		{EXTENDS, "extends"},
		{IDENT, "Shape"},

		{DEF, "def"},
		{IDENT, "area"},
		{LPAREN, "("},
		{IDENT, "sh"},
		{COLON, ":"},
		{IDENT, "Shape"},
		{RPAREN, ")"},
		{COLON, ":"},
		{TYPE_INT, "Int"},
		{EQ, "="},
		{LBRACE, "{"},

		{IDENT, "sh"},
		{MATCH, "match"},
		{LBRACE, "{"},
		{CASE, "case"},
		{IDENT, "Circle"},
		{LPAREN, "("},
		{IDENT, "r"},
		{RPAREN, ")"},
		{FARROW, "=>"},
		{IDENT, "r"},
		{STAR, "*"},
		{IDENT, "r"},
		{CASE, "case"},
		{UNDERSCORE, "_"},
		{FARROW, "=>"},
		{INT, "0"},
		{RBRACE, "}"},
		{RBRACE, "}"},

		{VAL, "val"},
		{IDENT, "pi"},
		{COLON, ":"},
		{TYPE_INT, "Int"},
		{EQ, "="},
		{INT, "3"},

		{IF, "if"},
		{BOOLEAN, "true"},
		{AND, "&&"},
		{BANG, "!"},
		{BOOLEAN, "false"},
		{OR, "||"},
		{IDENT, "x"},
		{LE, "<="},
		{INT, "10"},
		{IDENT, "then"},
		{STRING, "big"},
		{ELSE, "else"},
		{STRING, "small"},

		{STRING, "a"},
		{CONCAT, "++"},
		{STRING, "b"},

		{RBRACE, "}"},
		{EOF, ""},
	}

	rep := diag.NewReporter()
	toks, err := Tokenize("test.amy", []byte(input), rep)
	require.NoError(t, err)
	require.False(t, rep.HadError())

	for i, want := range tests {
		require.Lessf(t, i, len(toks), "ran out of tokens at index %d, expected %s %q", i, want.expectedType, want.expectedLiteral)
		got := toks[i]
		require.Equalf(t, want.expectedType, got.Type, "token %d: type", i)
		require.Equalf(t, want.expectedLiteral, got.Lit, "token %d: literal", i)
	}
	require.Len(t, toks, len(tests))
}

func TestKeywordsWinOverIdentifiers(t *testing.T) {
	require.Equal(t, DEF, LookupIdent("def"))
	require.Equal(t, TYPE_INT, LookupIdent("Int"))
	require.Equal(t, BOOLEAN, LookupIdent("true"))
	require.Equal(t, IDENT, LookupIdent("definition"))
}

func TestUnderscoreIsNeverAnIdentifierPrefix(t *testing.T) {
	rep := diag.NewReporter()
	toks, err := Tokenize("test.amy", []byte("_foo a_b"), rep)
	require.NoError(t, err)
	require.Equal(t, UNDERSCORE, toks[0].Type)
	require.Equal(t, IDENT, toks[1].Type)
	require.Equal(t, "foo", toks[1].Lit)
	require.Equal(t, IDENT, toks[2].Type)
	require.Equal(t, "a_b", toks[2].Lit)
}

func TestIntegerLiteralOverflowIsIllegal(t *testing.T) {
	rep := diag.NewReporter()
	_, err := Tokenize("test.amy", []byte("99999999999999999999"), rep)
	require.Error(t, err)
	require.True(t, rep.HadError())
}

func TestUnterminatedStringLiteralIsIllegal(t *testing.T) {
	rep := diag.NewReporter()
	_, err := Tokenize("test.amy", []byte(`"unterminated`), rep)
	require.Error(t, err)
	require.True(t, rep.HadError())
}

func TestUnclosedBlockCommentIsIllegal(t *testing.T) {
	rep := diag.NewReporter()
	_, err := Tokenize("test.amy", []byte("/* never closes"), rep)
	require.Error(t, err)
	require.True(t, rep.HadError())
}

func TestTokenizeFilesDropsAllButFinalEOF(t *testing.T) {
	rep := diag.NewReporter()
	toks, err := TokenizeFiles(map[string][]byte{
		"a.amy": []byte("object A { 1 }"),
		"b.amy": []byte("object B { 2 }"),
	}, []string{"a.amy", "b.amy"}, rep)
	require.NoError(t, err)
	require.False(t, rep.HadError())

	eofCount := 0
	for i, tok := range toks {
		if tok.Type == EOF {
			eofCount++
			require.Equal(t, len(toks)-1, i, "EOF must only appear as the final token")
		}
	}
	require.Equal(t, 1, eofCount)
}
