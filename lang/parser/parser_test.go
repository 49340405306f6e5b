package parser

import (
	"testing"

	"github.com/ohaddr/vesper/lang/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLetAndPrint(t *testing.T) {
	prog, err := Parse([]byte(`let x = 1 + 2; print x;`))
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 2)

	let, ok := prog.Stmts[0].(*ast.LetStmt)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name)
	require.NotNil(t, let.Init)

	pr, ok := prog.Stmts[1].(*ast.PrintStmt)
	require.True(t, ok)
	ident, ok := pr.X.(*ast.IdentExpr)
	require.True(t, ok)
	assert.Equal(t, "x", ident.Name)
}

func TestParseFnAndCall(t *testing.T) {
	prog, err := Parse([]byte(`fn add(a, b) { return a + b } print add(1, 2);`))
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 2)

	fn, ok := prog.Stmts[0].(*ast.FnStmt)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "b", fn.Params[1].Name)
	require.Len(t, fn.Body.Stmts, 1)
	_, ok = fn.Body.Stmts[0].(*ast.ReturnStmt)
	assert.True(t, ok)
}

func TestParseIfWhileElse(t *testing.T) {
	prog, err := Parse([]byte(`
		while x < 10 {
			if x == 0 { print x } else { x = x + 1 }
		}
	`))
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	ws, ok := prog.Stmts[0].(*ast.WhileStmt)
	require.True(t, ok)
	body, ok := ws.Body.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, body.Stmts, 1)
	ifs, ok := body.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifs.Else)
}

func TestParseOperatorPrecedence(t *testing.T) {
	prog, err := Parse([]byte(`print 1 + 2 * 3 == 7 and !false;`))
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	pr := prog.Stmts[0].(*ast.PrintStmt)
	and, ok := pr.X.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "and", and.Op.String())
}

func TestParseParenthesesAreTransparent(t *testing.T) {
	prog, err := Parse([]byte(`print (1 + 2);`))
	require.NoError(t, err)
	pr := prog.Stmts[0].(*ast.PrintStmt)
	bin, ok := pr.X.(*ast.BinaryExpr)
	require.True(t, ok, "parenthesized expression should not wrap in an extra node")
	assert.Equal(t, "+", bin.Op.String())
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	_, err := Parse([]byte(`1 + 2 = 3;`))
	require.Error(t, err)
}

func TestParseSyntaxErrorRecoversAndReportsMultiple(t *testing.T) {
	_, err := Parse([]byte(`
		let = 1;
		let y = ;
	`))
	require.Error(t, err)
	list, ok := err.(interface{ Error() string })
	require.True(t, ok)
	assert.Contains(t, list.Error(), "Error")
	assert.Contains(t, list.Error(), "and 1 more errors")
}

func TestParseMissingClosingBrace(t *testing.T) {
	_, err := Parse([]byte(`fn f() { print 1;`))
	require.Error(t, err)
}
