package scanner

import (
	"testing"

	"github.com/ohaddr/vesper/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) ([]token.Token, []string) {
	t.Helper()
	var el token.ErrorList
	var s Scanner
	s.Init([]byte(src), el.Add)
	var toks []token.Token
	var lits []string
	for {
		tok, lit, _ := s.Scan()
		toks = append(toks, tok)
		lits = append(lits, lit)
		if tok == token.EOF {
			break
		}
	}
	require.NoError(t, el.Err())
	return toks, lits
}

func TestScanPunctuationAndKeywords(t *testing.T) {
	toks, lits := scanAll(t, "let x = 1 + 2 * 3; if x >= 1 and x != 0 { print x } else { return }")
	want := []token.Token{
		token.LET, token.IDENT, token.EQ, token.NUMBER, token.PLUS, token.NUMBER,
		token.STAR, token.NUMBER, token.SEMI, token.IF, token.IDENT, token.GE,
		token.NUMBER, token.AND, token.IDENT, token.NEQ, token.NUMBER, token.LBRACE,
		token.PRINT, token.IDENT, token.RBRACE, token.ELSE, token.LBRACE,
		token.RETURN, token.RBRACE, token.EOF,
	}
	assert.Equal(t, want, toks)
	assert.Equal(t, "x", lits[1])
	assert.Equal(t, "1", lits[3])
}

func TestScanNumbers(t *testing.T) {
	toks, lits := scanAll(t, "1 1.5 0.25")
	require.Equal(t, []token.Token{token.NUMBER, token.NUMBER, token.NUMBER, token.EOF}, toks)
	assert.Equal(t, []string{"1", "1.5", "0.25", ""}, lits)
}

func TestScanComment(t *testing.T) {
	toks, _ := scanAll(t, "1 # a comment\n+ 2")
	assert.Equal(t, []token.Token{token.NUMBER, token.PLUS, token.NUMBER, token.EOF}, toks)
}

func TestScanIllegalChar(t *testing.T) {
	var el token.ErrorList
	var s Scanner
	s.Init([]byte("1 @ 2"), el.Add)
	for {
		tok, _, _ := s.Scan()
		if tok == token.EOF {
			break
		}
	}
	require.Error(t, el.Err())
}

func TestScanPosition(t *testing.T) {
	var s Scanner
	s.Init([]byte("let\nx"), nil)
	_, _, pos := s.Scan()
	assert.Equal(t, token.Position{Line: 1, Col: 1}, pos)
	_, _, pos = s.Scan()
	assert.Equal(t, 2, pos.Line)
}

func TestScanAllKeywords(t *testing.T) {
	toks, _ := scanAll(t, "and else false fn if let or print return true while")
	want := []token.Token{
		token.AND, token.ELSE, token.FALSE, token.FN, token.IF, token.LET,
		token.OR, token.PRINT, token.RETURN, token.TRUE, token.WHILE, token.EOF,
	}
	assert.Equal(t, want, toks)
}
