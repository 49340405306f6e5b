// Package parser implements the recursive-descent parser that transforms
// vesper source text into an *ast.Program.
package parser

import (
	"errors"

	"github.com/ohaddr/vesper/lang/ast"
	"github.com/ohaddr/vesper/lang/scanner"
	"github.com/ohaddr/vesper/lang/token"
)

// Parse parses a complete source text and returns its AST. The returned
// error, if non-nil, is a *token.ErrorList collecting every syntax error
// found; the parser synchronizes at declaration boundaries rather than
// stopping at the first mistake.
func Parse(src []byte) (*ast.Program, error) {
	var p parser
	p.init(src)
	prog := p.parseProgram()
	p.errors.Sort()
	return prog, p.errors.Err()
}

type parser struct {
	scanner scanner.Scanner
	errors  token.ErrorList

	tok token.Token
	lit string
	pos token.Position
}

func (p *parser) init(src []byte) {
	p.scanner.Init(src, p.errors.Add)
	p.advance()
}

func (p *parser) advance() {
	p.tok, p.lit, p.pos = p.scanner.Scan()
}

// errPanicMode unwinds parsing of the current declaration when a syntax
// error is found; recovered in parseProgram, which then synchronizes.
var errPanicMode = errors.New("parser: panic mode")

func (p *parser) error(pos token.Position, msg string) {
	p.errors.Add(pos, msg)
}

func (p *parser) errorExpected(pos token.Position, what string) {
	p.error(pos, "expected "+what+", found "+describeTok(p.tok, p.lit))
}

func describeTok(tok token.Token, lit string) string {
	switch tok {
	case token.IDENT, token.NUMBER:
		return lit
	default:
		return tok.GoString()
	}
}

// expect consumes the current token if it matches tok, otherwise records an
// error and aborts the current declaration via panic(errPanicMode).
func (p *parser) expect(tok token.Token) token.Position {
	pos := p.pos
	if p.tok != tok {
		p.errorExpected(pos, tok.GoString())
		panic(errPanicMode)
	}
	p.advance()
	return pos
}

func (p *parser) at(toks ...token.Token) bool {
	for _, t := range toks {
		if p.tok == t {
			return true
		}
	}
	return false
}

// synchronize discards tokens until it reaches a plausible declaration
// boundary, so that a single syntax error does not suppress every later one.
func (p *parser) synchronize() {
	for p.tok != token.EOF {
		if p.tok == token.SEMI {
			p.advance()
			return
		}
		switch p.tok {
		case token.LET, token.FN, token.IF, token.WHILE, token.RETURN,
			token.PRINT, token.LBRACE, token.RBRACE:
			return
		}
		p.advance()
	}
}

func (p *parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.tok != token.EOF {
		stmt := p.parseDeclarationRecover()
		if stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
	}
	return prog
}

func (p *parser) parseDeclarationRecover() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()
	return p.parseDeclaration()
}
