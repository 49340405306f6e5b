package parser

import (
	"github.com/ohaddr/vesper/lang/ast"
	"github.com/ohaddr/vesper/lang/token"
)

// parseDeclaration = "let" decl | "fn" decl | statement
func (p *parser) parseDeclaration() ast.Stmt {
	switch p.tok {
	case token.LET:
		return p.parseLetStmt()
	case token.FN:
		return p.parseFnStmt()
	default:
		return p.parseStatement()
	}
}

// identAndAdvance returns the literal and position of the current IDENT
// token, then consumes it (or records an error if it is not an IDENT).
func (p *parser) identAndAdvance() (string, token.Position) {
	pos := p.pos
	name := p.lit
	p.expect(token.IDENT)
	return name, pos
}

func (p *parser) parseLetStmt() ast.Stmt {
	pos := p.expect(token.LET)
	name, _ := p.identAndAdvance()

	var init ast.Expr
	if p.tok == token.EQ {
		p.advance()
		init = p.parseExpression()
	}
	p.consumeSemi()
	return &ast.LetStmt{Position: pos, Name: name, Init: init}
}

func (p *parser) parseFnStmt() ast.Stmt {
	pos := p.expect(token.FN)
	name, _ := p.identAndAdvance()

	p.expect(token.LPAREN)
	var params []ast.Param
	if p.tok != token.RPAREN {
		for {
			pname, ppos := p.identAndAdvance()
			params = append(params, ast.Param{Position: ppos, Name: pname})
			if p.tok != token.COMMA {
				break
			}
			p.advance()
		}
	}
	p.expect(token.RPAREN)

	body := p.parseBlock()
	return &ast.FnStmt{Position: pos, Name: name, Params: params, Body: body}
}

func (p *parser) parseStatement() ast.Stmt {
	switch p.tok {
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.PRINT:
		return p.parsePrintStmt()
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseIfStmt() ast.Stmt {
	pos := p.expect(token.IF)
	cond := p.parseExpression()
	then := p.parseBlock()

	var els ast.Stmt
	if p.tok == token.ELSE {
		p.advance()
		if p.tok == token.IF {
			els = p.parseIfStmt()
		} else {
			els = p.parseBlock()
		}
	}
	return &ast.IfStmt{Position: pos, Cond: cond, Then: then, Else: els}
}

func (p *parser) parseWhileStmt() ast.Stmt {
	pos := p.expect(token.WHILE)
	cond := p.parseExpression()
	body := p.parseBlock()
	return &ast.WhileStmt{Position: pos, Cond: cond, Body: body}
}

func (p *parser) parseReturnStmt() ast.Stmt {
	pos := p.expect(token.RETURN)
	var val ast.Expr
	if !p.at(token.SEMI, token.RBRACE, token.EOF) {
		val = p.parseExpression()
	}
	p.consumeSemi()
	return &ast.ReturnStmt{Position: pos, X: val}
}

func (p *parser) parsePrintStmt() ast.Stmt {
	pos := p.expect(token.PRINT)
	x := p.parseExpression()
	p.consumeSemi()
	return &ast.PrintStmt{Position: pos, X: x}
}

func (p *parser) parseBlock() *ast.BlockStmt {
	pos := p.expect(token.LBRACE)
	block := &ast.BlockStmt{Position: pos}
	for p.tok != token.RBRACE && p.tok != token.EOF {
		stmt := p.parseDeclarationRecover()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}
	p.expect(token.RBRACE)
	return block
}

func (p *parser) parseExprStmt() ast.Stmt {
	x := p.parseExpression()
	p.consumeSemi()
	return &ast.ExprStmt{X: x}
}

// consumeSemi swallows an optional statement-terminating ';'; the grammar
// treats newlines as insignificant, so semicolons are never
// required.
func (p *parser) consumeSemi() {
	if p.tok == token.SEMI {
		p.advance()
	}
}
