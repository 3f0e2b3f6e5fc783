package parser

import (
	"github.com/amy-lang/amyc/internal/ast"
	"github.com/amy-lang/amyc/internal/lexer"
)

// Case ::= 'case' Pattern '=>' Expr
func (p *Parser) parseCase() (*ast.MatchCase, error) {
	start := p.pos_()
	if _, err := p.expect(lexer.CASE); err != nil {
		return nil, err
	}
	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.FARROW); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.MatchCase{Pattern: pat, Body: body, Pos: start}, nil
}

// Pattern ::= Literal | '(' ')' | '_' | Id ('.' Id)? ('(' Patterns ')')?
func (p *Parser) parsePattern() (ast.Pattern, error) {
	start := p.pos_()
	switch p.cur().Type {
	case lexer.INT:
		tok := p.advance()
		return &ast.LiteralPattern{Literal: &ast.Literal{Kind: ast.IntLit, Value: lexer.DecodeInt32(tok.Lit), Pos: start}, Pos: start}, nil
	case lexer.STRING:
		tok := p.advance()
		return &ast.LiteralPattern{Literal: &ast.Literal{Kind: ast.StringLit, Value: tok.Lit, Pos: start}, Pos: start}, nil
	case lexer.BOOLEAN:
		tok := p.advance()
		return &ast.LiteralPattern{Literal: &ast.Literal{Kind: ast.BooleanLit, Value: tok.Lit == "true", Pos: start}, Pos: start}, nil
	case lexer.LPAREN:
		p.advance()
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return &ast.LiteralPattern{Literal: &ast.Literal{Kind: ast.UnitLit, Pos: start}, Pos: start}, nil
	case lexer.UNDERSCORE:
		p.advance()
		return &ast.WildcardPattern{Pos: start}, nil
	case lexer.IDENT:
		first := p.advance().Lit
		qname := ast.QualifiedName{Name: first}
		if p.at(lexer.DOT) {
			p.advance()
			second, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			mod := first
			qname = ast.QualifiedName{Module: &mod, Name: second.Lit}
		}
		if p.at(lexer.LPAREN) {
			p.advance()
			subs, err := p.parsePatterns()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RPAREN); err != nil {
				return nil, err
			}
			return &ast.CaseClassPattern{Name: qname, Subs: subs, Pos: start}, nil
		}
		if qname.Module != nil {
			return nil, p.unexpected(lexer.LPAREN)
		}
		// A bare identifier pattern is always a binder, never a nullary
		// constructor reference (spec §4.3).
		return &ast.IdPattern{Name: qname.Name, Pos: start}, nil
	default:
		return nil, p.unexpected(lexer.INT, lexer.STRING, lexer.BOOLEAN, lexer.LPAREN, lexer.UNDERSCORE, lexer.IDENT)
	}
}

func (p *Parser) parsePatterns() ([]ast.Pattern, error) {
	var pats []ast.Pattern
	if p.at(lexer.RPAREN) {
		return pats, nil
	}
	for {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		pats = append(pats, pat)
		if !p.at(lexer.COMMA) {
			break
		}
		p.advance()
	}
	return pats, nil
}
