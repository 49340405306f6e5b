// Package scanner tokenizes vesper source text for lang/parser. The tokenizer
// itself is adapted from the structure of Go's own scanner
// (cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go):
// a single rune lookahead, byte offsets tracked alongside line/column, and
// errors reported through a callback rather than panics.
package scanner

import (
	"unicode"
	"unicode/utf8"

	"github.com/ohaddr/vesper/lang/token"
)

// A Scanner tokenizes one source text. The zero value is not usable; call
// Init first.
type Scanner struct {
	src []byte
	err func(pos token.Position, msg string)

	cur  rune // current character, -1 at end of file
	off  int  // byte offset of cur
	roff int  // byte offset just past cur

	line int
	col  int
}

// Init prepares s to scan src, reporting lexical errors to errHandler.
func (s *Scanner) Init(src []byte, errHandler func(token.Position, string)) {
	s.src = src
	s.err = errHandler
	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.line = 1
	s.col = 0
	s.advance()
}

func (s *Scanner) pos() token.Position { return token.Position{Line: s.line, Col: s.col} }

func (s *Scanner) error(pos token.Position, msg string) {
	if s.err != nil {
		s.err(pos, msg)
	}
}

// advance reads the next rune into s.cur, tracking line and column. s.cur is
// -1 once the source is exhausted.
func (s *Scanner) advance() {
	if s.cur == '\n' {
		s.line++
		s.col = 0
	}
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}
	s.off = s.roff
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.pos(), "illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
	s.col++
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

// advanceIf advances and returns true if the current rune equals r.
func (s *Scanner) advanceIf(r rune) bool {
	if s.cur == r {
		s.advance()
		return true
	}
	return false
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case s.cur == ' ' || s.cur == '\t' || s.cur == '\n' || s.cur == '\r':
			s.advance()
		case s.cur == '#':
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
		default:
			return
		}
	}
}

// Scan returns the next token, its literal text, and its starting position.
// Identifiers and keywords share lit as their literal spelling; NUMBER's lit
// is its decimal text, parseable with strconv.ParseFloat.
func (s *Scanner) Scan() (tok token.Token, lit string, pos token.Position) {
	s.skipWhitespaceAndComments()

	pos = s.pos()
	start := s.off

	switch {
	case isLetter(s.cur):
		for isLetter(s.cur) || isDigit(s.cur) {
			s.advance()
		}
		lit = string(s.src[start:s.off])
		return token.Lookup(lit), lit, pos

	case isDigit(s.cur) || (s.cur == '.' && isDigit(rune(s.peek()))):
		s.scanNumber()
		return token.NUMBER, string(s.src[start:s.off]), pos
	}

	cur := s.cur
	s.advance()
	switch cur {
	case -1:
		return token.EOF, "", pos
	case '+':
		return token.PLUS, "+", pos
	case '-':
		return token.MINUS, "-", pos
	case '*':
		return token.STAR, "*", pos
	case '/':
		return token.SLASH, "/", pos
	case '%':
		return token.PERCENT, "%", pos
	case ',':
		return token.COMMA, ",", pos
	case ';':
		return token.SEMI, ";", pos
	case '(':
		return token.LPAREN, "(", pos
	case ')':
		return token.RPAREN, ")", pos
	case '{':
		return token.LBRACE, "{", pos
	case '}':
		return token.RBRACE, "}", pos
	case '=':
		if s.advanceIf('=') {
			return token.EQL, "==", pos
		}
		return token.EQ, "=", pos
	case '!':
		if s.advanceIf('=') {
			return token.NEQ, "!=", pos
		}
		return token.BANG, "!", pos
	case '<':
		if s.advanceIf('=') {
			return token.LE, "<=", pos
		}
		return token.LT, "<", pos
	case '>':
		if s.advanceIf('=') {
			return token.GE, ">=", pos
		}
		return token.GT, ">", pos
	default:
		s.error(pos, "illegal character "+string(cur))
		return token.ILLEGAL, string(cur), pos
	}
}

func (s *Scanner) scanNumber() {
	for isDigit(s.cur) {
		s.advance()
	}
	if s.cur == '.' && isDigit(rune(s.peek())) {
		s.advance()
		for isDigit(s.cur) {
			s.advance()
		}
	}
}

func isLetter(r rune) bool {
	return r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' ||
		r >= utf8.RuneSelf && unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
