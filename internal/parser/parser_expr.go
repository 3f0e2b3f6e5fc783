package parser

import (
	"github.com/amy-lang/amyc/internal/ast"
	"github.com/amy-lang/amyc/internal/lexer"
)

// parseExpr ::= LetExpr | SeqExpr
func (p *Parser) parseExpr() (ast.Expr, error) {
	if p.at(lexer.VAL) {
		return p.parseLetExpr()
	}
	return p.parseSeqExpr()
}

// LetExpr ::= 'val' Param '=' Lv2Expr ';' Expr
func (p *Parser) parseLetExpr() (ast.Expr, error) {
	start := p.pos_()
	p.advance() // 'val'
	param, err := p.parseParam()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.EQ); err != nil {
		return nil, err
	}
	value, err := p.parseLv2Expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Let{Param: param, Value: value, Body: body, Pos: start}, nil
}

// SeqExpr ::= Lv2Expr (';' Expr)?   -- right associative
func (p *Parser) parseSeqExpr() (ast.Expr, error) {
	start := p.pos_()
	first, err := p.parseLv2Expr()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.SEMI) {
		p.advance()
		rest, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Sequence{First: first, Second: rest, Pos: start}, nil
	}
	return first, nil
}

// Lv2Expr ::= (IteExpr | OpExpr) ('match' '{' Case+ '}')*
func (p *Parser) parseLv2Expr() (ast.Expr, error) {
	var (
		e   ast.Expr
		err error
	)
	if p.at(lexer.IF) {
		e, err = p.parseIte()
	} else {
		e, err = p.parseOpExpr(0)
	}
	if err != nil {
		return nil, err
	}
	for matchFollows(p) {
		start := p.pos_()
		p.advance() // 'match'
		if _, err := p.expect(lexer.LBRACE); err != nil {
			return nil, err
		}
		var cases []*ast.MatchCase
		for p.at(lexer.CASE) {
			c, err := p.parseCase()
			if err != nil {
				return nil, err
			}
			cases = append(cases, c)
		}
		if len(cases) == 0 {
			return nil, p.unexpected(lexer.CASE)
		}
		if _, err := p.expect(lexer.RBRACE); err != nil {
			return nil, err
		}
		e = &ast.Match{Scrutinee: e, Cases: cases, Pos: start}
	}
	return e, nil
}

// matchFollows reports whether the parser sits on the 'match' keyword.
// Amy reserves match as a real keyword (lexer.MATCH) rather than a
// contextual one.
func matchFollows(p *Parser) bool {
	return p.at(lexer.MATCH)
}

func (p *Parser) parseIte() (ast.Expr, error) {
	start := p.pos_()
	p.advance() // 'if'
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ELSE); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.Ite{Cond: cond, Then: then, Else: els, Pos: start}, nil
}

// opLevels enumerates binary-operator precedence from lowest to highest,
// all levels left-associative (spec §4.2, §9 design notes).
var opLevels = [][]lexer.TokenType{
	{lexer.OR},
	{lexer.AND},
	{lexer.EQEQ},
	{lexer.LT, lexer.LE},
	{lexer.PLUS, lexer.MINUS, lexer.CONCAT},
	{lexer.STAR, lexer.SLASH, lexer.MOD},
}

// parseOpExpr implements the precedence-climbing ladder over opLevels,
// bottoming out at parseUnary.
func (p *Parser) parseOpExpr(level int) (ast.Expr, error) {
	if level >= len(opLevels) {
		return p.parseUnary()
	}
	left, err := p.parseOpExpr(level + 1)
	if err != nil {
		return nil, err
	}
	for matchesAny(p.cur().Type, opLevels[level]) {
		opTok := p.advance()
		right, err := p.parseOpExpr(level + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: opTok.Lit, Left: left, Right: right, Pos: left.Position()}
	}
	return left, nil
}

func matchesAny(tt lexer.TokenType, set []lexer.TokenType) bool {
	for _, s := range set {
		if tt == s {
			return true
		}
	}
	return false
}

// UnaryExpr ::= '-' Simple | '!' Simple | Simple
func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.at(lexer.MINUS) {
		start := p.pos_()
		p.advance()
		e, err := p.parseSimple()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: "-", Expr: e, Pos: start}, nil
	}
	if p.at(lexer.BANG) {
		start := p.pos_()
		p.advance()
		e, err := p.parseSimple()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: "!", Expr: e, Pos: start}, nil
	}
	return p.parseSimple()
}

// Simple ::= Literal | VarOrCall | '(' Expr? ')' | 'error' '(' Expr ')'
func (p *Parser) parseSimple() (ast.Expr, error) {
	start := p.pos_()
	switch p.cur().Type {
	case lexer.INT:
		tok := p.advance()
		return &ast.Literal{Kind: ast.IntLit, Value: lexer.DecodeInt32(tok.Lit), Pos: start}, nil
	case lexer.STRING:
		tok := p.advance()
		return &ast.Literal{Kind: ast.StringLit, Value: tok.Lit, Pos: start}, nil
	case lexer.BOOLEAN:
		tok := p.advance()
		return &ast.Literal{Kind: ast.BooleanLit, Value: tok.Lit == "true", Pos: start}, nil
	case lexer.IDENT:
		return p.parseVarOrCall()
	case lexer.LPAREN:
		p.advance()
		if p.at(lexer.RPAREN) {
			p.advance()
			return &ast.Literal{Kind: ast.UnitLit, Pos: start}, nil
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.ERROR:
		p.advance()
		if _, err := p.expect(lexer.LPAREN); err != nil {
			return nil, err
		}
		msg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return &ast.Error{Msg: msg, Pos: start}, nil
	default:
		return nil, p.unexpected(lexer.INT, lexer.STRING, lexer.BOOLEAN, lexer.IDENT, lexer.LPAREN, lexer.ERROR)
	}
}

// VarOrCall ::= Id ('.' Id)? ('(' Args ')')?
func (p *Parser) parseVarOrCall() (ast.Expr, error) {
	start := p.pos_()
	first, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	qname := ast.QualifiedName{Name: first.Lit}
	if p.at(lexer.DOT) {
		p.advance()
		second, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		mod := first.Lit
		qname = ast.QualifiedName{Module: &mod, Name: second.Lit}
	}
	if p.at(lexer.LPAREN) {
		p.advance()
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return &ast.Call{Name: qname, Args: args, Pos: start}, nil
	}
	if qname.Module != nil {
		// A qualified reference without a call is not a legal variable; the
		// grammar only allows M.n as a call target.
		return nil, p.unexpected(lexer.LPAREN)
	}
	return &ast.Variable{Name: qname.Name, Pos: start}, nil
}

func (p *Parser) parseArgs() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.at(lexer.RPAREN) {
		return args, nil
	}
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if !p.at(lexer.COMMA) {
			break
		}
		p.advance()
	}
	return args, nil
}
