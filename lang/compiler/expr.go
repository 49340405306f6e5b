package compiler

import (
	"github.com/ohaddr/vesper/lang/ast"
	"github.com/ohaddr/vesper/lang/opcode"
	"github.com/ohaddr/vesper/lang/token"
)

// compileExpr lowers e, leaving exactly one value on the stack.
func (fs *funcState) compileExpr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.NumberExpr:
		fs.emitOp1(opcode.CONSTANT, fs.numberConstant(e.Value, e.Position), e.Position.Line)

	case *ast.BoolExpr:
		if e.Value {
			fs.emitOp(opcode.TRUE, e.Position.Line)
		} else {
			fs.emitOp(opcode.FALSE, e.Position.Line)
		}

	case *ast.IdentExpr:
		fs.compileIdent(e)

	case *ast.UnaryExpr:
		fs.compileUnary(e)

	case *ast.BinaryExpr:
		fs.compileBinary(e)

	case *ast.AssignExpr:
		fs.compileAssign(e)

	case *ast.CallExpr:
		fs.compileCall(e)

	default:
		fs.c.errorf(e.Pos(), "internal error: unhandled expression %T", e)
	}
}

func (fs *funcState) compileIdent(e *ast.IdentExpr) {
	if slot, ok := fs.resolveLocal(e.Name, e.Position); ok {
		fs.emitOp1(opcode.GET_LOCAL, slot, e.Position.Line)
		return
	}
	fs.emitOp1(opcode.GET_GLOBAL, fs.nameConstant(e.Name, e.Position), e.Position.Line)
}

func (fs *funcState) compileUnary(e *ast.UnaryExpr) {
	fs.compileExpr(e.Right)
	switch e.Op {
	case token.MINUS:
		fs.emitOp(opcode.NEGATE, e.Position.Line)
	case token.BANG:
		fs.emitOp(opcode.NOT, e.Position.Line)
	default:
		fs.c.errorf(e.Position, "internal error: unhandled unary operator %s", e.Op)
	}
}

func (fs *funcState) compileBinary(e *ast.BinaryExpr) {
	switch e.Op {
	case token.AND:
		fs.compileAnd(e)
		return
	case token.OR:
		fs.compileOr(e)
		return
	}

	fs.compileExpr(e.Left)
	fs.compileExpr(e.Right)
	line := e.Position.Line
	switch e.Op {
	case token.PLUS:
		fs.emitOp(opcode.ADD, line)
	case token.MINUS:
		fs.emitOp(opcode.SUB, line)
	case token.STAR:
		fs.emitOp(opcode.MUL, line)
	case token.SLASH:
		fs.emitOp(opcode.DIV, line)
	case token.PERCENT:
		fs.emitOp(opcode.MODULO, line)
	case token.EQL:
		fs.emitOp(opcode.EQUAL, line)
	case token.NEQ:
		fs.emitOp(opcode.EQUAL, line)
		fs.emitOp(opcode.NOT, line)
	case token.LT:
		fs.emitOp(opcode.LESS, line)
	case token.GT:
		fs.emitOp(opcode.GREATER, line)
	case token.LE:
		fs.emitOp(opcode.GREATER, line)
		fs.emitOp(opcode.NOT, line)
	case token.GE:
		fs.emitOp(opcode.LESS, line)
		fs.emitOp(opcode.NOT, line)
	default:
		fs.c.errorf(e.Position, "internal error: unhandled binary operator %s", e.Op)
	}
}

// compileAnd: a and b -- if a is falsey, short-circuit with a's value;
// otherwise discard a and the expression's value is b.
func (fs *funcState) compileAnd(e *ast.BinaryExpr) {
	fs.compileExpr(e.Left)
	line := e.Position.Line
	end := fs.emitJump(opcode.JUMP_IF_FALSE, line)
	fs.emitOp(opcode.POP, line)
	fs.compileExpr(e.Right)
	fs.patchJump(end, e.Position)
}

// compileOr: a or b -- if a is truthy, short-circuit with a's value;
// otherwise discard a and the expression's value is b.
func (fs *funcState) compileOr(e *ast.BinaryExpr) {
	fs.compileExpr(e.Left)
	line := e.Position.Line
	elseJump := fs.emitJump(opcode.JUMP_IF_FALSE, line)
	endJump := fs.emitJump(opcode.JUMP, line)
	fs.patchJump(elseJump, e.Position)
	fs.emitOp(opcode.POP, line)
	fs.compileExpr(e.Right)
	fs.patchJump(endJump, e.Position)
}

func (fs *funcState) compileAssign(e *ast.AssignExpr) {
	fs.compileExpr(e.Value)
	line := e.Position.Line
	if slot, ok := fs.resolveLocal(e.Name, e.Position); ok {
		fs.emitOp1(opcode.SET_LOCAL, slot, line)
		return
	}
	fs.emitOp1(opcode.SET_GLOBAL, fs.nameConstant(e.Name, e.Position), line)
}

func (fs *funcState) compileCall(e *ast.CallExpr) {
	fs.compileExpr(e.Callee)
	for _, arg := range e.Args {
		fs.compileExpr(arg)
	}
	if len(e.Args) > 255 {
		fs.c.errorf(e.Position, "can't have more than 255 arguments")
	}
	fs.emitOp1(opcode.CALL, byte(len(e.Args)), e.Position.Line)
}
