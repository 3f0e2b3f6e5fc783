// Package parser implements Amy's LL(1) recursive-descent parser (spec §4.2).
// Before parsing anything the package validates that its own grammar table
// is LL(1); a violation there is a fatal, internal diagnostic distinct from
// a malformed input program.
package parser

import (
	"github.com/amy-lang/amyc/internal/ast"
	"github.com/amy-lang/amyc/internal/diag"
	"github.com/amy-lang/amyc/internal/lexer"
)

// Parser consumes a token stream and produces a nominal ast.Program.
type Parser struct {
	toks []lexer.Token
	pos  int
	rep  *diag.Reporter
}

// New creates a Parser over a finished token stream (as produced by
// lexer.Tokenize / TokenizeFiles). It validates the grammar's LL(1)-ness
// once per process via a sync.Once guard in ll1.go, aborting fatally if
// that check ever fails.
func New(toks []lexer.Token, rep *diag.Reporter) (*Parser, error) {
	if err := validateLL1(rep); err != nil {
		return nil, err
	}
	return &Parser{toks: toks, rep: rep}, nil
}

func (p *Parser) cur() lexer.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return lexer.Token{Type: lexer.EOF}
}

func (p *Parser) peek() lexer.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return lexer.Token{Type: lexer.EOF}
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) at(tt lexer.TokenType) bool { return p.cur().Type == tt }

func (p *Parser) pos_() ast.Pos {
	t := p.cur()
	return ast.Pos{File: t.File, Line: t.Line, Column: t.Column}
}

// expect consumes the current token if it matches tt, else reports a fatal
// unexpected-token (or unexpected-EOF) diagnostic (spec §4.2).
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if p.at(tt) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.unexpected(tt)
}

func (p *Parser) unexpected(expected ...lexer.TokenType) error {
	cur := p.cur()
	if cur.Type == lexer.EOF {
		return p.rep.Fatal(diag.PAR002, p.pos_(), "unexpected end of file")
	}
	return p.rep.Fatal(diag.PAR001, p.pos_(), "unexpected token %s %q, expected one of %v", cur.Type, cur.Lit, expected)
}

// Parse parses a complete Program: one or more modules followed by EOF.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}
	if p.at(lexer.EOF) {
		return nil, p.unexpected(lexer.OBJECT)
	}
	for !p.at(lexer.EOF) {
		m, err := p.parseModule()
		if err != nil {
			return nil, err
		}
		prog.Modules = append(prog.Modules, m)
	}
	return prog, nil
}

func (p *Parser) parseModule() (*ast.ModuleDef, error) {
	start := p.pos_()
	if _, err := p.expect(lexer.OBJECT); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}

	mod := &ast.ModuleDef{Name: nameTok.Lit, Pos: start}
	for p.at(lexer.DEF) || p.at(lexer.ABSTRACT) || p.at(lexer.CASE) {
		def, err := p.parseDef()
		if err != nil {
			return nil, err
		}
		mod.Defs = append(mod.Defs, def)
	}
	if !p.at(lexer.RBRACE) {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		mod.Expr = expr
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return mod, nil
}

func (p *Parser) parseDef() (ast.Def, error) {
	switch {
	case p.at(lexer.DEF):
		return p.parseFunDef()
	case p.at(lexer.ABSTRACT):
		return p.parseAbstractDef()
	case p.at(lexer.CASE):
		return p.parseCaseDef()
	default:
		return nil, p.unexpected(lexer.DEF, lexer.ABSTRACT, lexer.CASE)
	}
}

func (p *Parser) parseFunDef() (*ast.FunDef, error) {
	start := p.pos_()
	if _, err := p.expect(lexer.DEF); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.EQ); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.FunDef{Name: nameTok.Lit, Params: params, RetType: retType, Body: body, Pos: start}, nil
}

func (p *Parser) parseAbstractDef() (*ast.AbstractClassDef, error) {
	start := p.pos_()
	if _, err := p.expect(lexer.ABSTRACT); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.CLASS); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	return &ast.AbstractClassDef{Name: nameTok.Lit, Pos: start}, nil
}

func (p *Parser) parseCaseDef() (*ast.CaseClassDef, error) {
	start := p.pos_()
	if _, err := p.expect(lexer.CASE); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.CLASS); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.EXTENDS); err != nil {
		return nil, err
	}
	parentTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	return &ast.CaseClassDef{Name: nameTok.Lit, Fields: params, Parent: parentTok.Lit, Pos: start}, nil
}

func (p *Parser) parseParams() ([]*ast.ParamDef, error) {
	var params []*ast.ParamDef
	if p.at(lexer.RPAREN) {
		return params, nil
	}
	for {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.at(lexer.COMMA) {
			break
		}
		p.advance()
	}
	return params, nil
}

func (p *Parser) parseParam() (*ast.ParamDef, error) {
	start := p.pos_()
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.ParamDef{Name: nameTok.Lit, Type: ty, Pos: start}, nil
}

func (p *Parser) parseType() (*ast.Type, error) {
	start := p.pos_()
	switch p.cur().Type {
	case lexer.TYPE_INT:
		p.advance()
		return &ast.Type{Primitive: "Int", Pos: start}, nil
	case lexer.TYPE_STRING:
		p.advance()
		return &ast.Type{Primitive: "String", Pos: start}, nil
	case lexer.TYPE_BOOLEAN:
		p.advance()
		return &ast.Type{Primitive: "Boolean", Pos: start}, nil
	case lexer.TYPE_UNIT:
		p.advance()
		return &ast.Type{Primitive: "Unit", Pos: start}, nil
	case lexer.IDENT:
		first := p.advance().Lit
		if p.at(lexer.DOT) {
			p.advance()
			second, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			mod := first
			return &ast.Type{Qualified: &ast.QualifiedName{Module: &mod, Name: second.Lit}, Pos: start}, nil
		}
		return &ast.Type{Qualified: &ast.QualifiedName{Name: first}, Pos: start}, nil
	default:
		return nil, p.unexpected(lexer.TYPE_INT, lexer.TYPE_STRING, lexer.TYPE_BOOLEAN, lexer.TYPE_UNIT, lexer.IDENT)
	}
}
