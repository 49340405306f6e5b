package compiler

import (
	"github.com/ohaddr/vesper/lang/ast"
	"github.com/ohaddr/vesper/lang/opcode"
	"github.com/ohaddr/vesper/lang/value"
)

// compileDeclaration lowers a declaration or statement; it is the entry
// point used at every nesting level (program, block, function body).
func (fs *funcState) compileDeclaration(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.LetStmt:
		fs.compileLet(s)
	case *ast.FnStmt:
		fs.compileFn(s)
	default:
		fs.compileStatement(s)
	}
}

func (fs *funcState) compileStatement(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.ExprStmt:
		fs.compileExpr(s.X)
		fs.emitOp(opcode.POP, s.Pos().Line)
	case *ast.PrintStmt:
		fs.compileExpr(s.X)
		fs.emitOp(opcode.PRINT, s.Position.Line)
	case *ast.IfStmt:
		fs.compileIf(s)
	case *ast.WhileStmt:
		fs.compileWhile(s)
	case *ast.ReturnStmt:
		fs.compileReturn(s)
	case *ast.BlockStmt:
		fs.beginScope()
		for _, inner := range s.Stmts {
			fs.compileDeclaration(inner)
		}
		fs.endScope(s.Position.Line)
	default:
		fs.c.errorf(s.Pos(), "internal error: unhandled statement %T", s)
	}
}

// compileLet lowers `let x;` (implicit nil) or `let x = e;`. At depth 0 the
// value is stored in the global table by name; at depth > 0 it becomes a
// new local occupying the stack slot the initializer just pushed.
func (fs *funcState) compileLet(s *ast.LetStmt) {
	line := s.Position.Line
	fs.declareLocal(s.Name, s.Position)

	if s.Init != nil {
		fs.compileExpr(s.Init)
	} else {
		fs.emitOp(opcode.NIL, line)
	}

	if fs.scopeDepth > 0 {
		fs.markInitialized()
		return
	}
	fs.emitOp1(opcode.DEFINE_GLOBAL, fs.nameConstant(s.Name, s.Position), line)
}

// compileFn lowers a function declaration. The function's own name is
// declared (and, for a block-scoped function, immediately marked
// initialized) in the *enclosing* scope before its body is compiled, so
// later sibling code can reference it as a local. There are no upvalues:
// a nested function body only resolves its own params and locals, so a
// self-call inside a top-level function's body falls through to
// GET_GLOBAL and works because its DEFINE_GLOBAL already ran by the time
// any call executes; a self-call inside a block-scoped function has no
// such binding to fall back to.
func (fs *funcState) compileFn(s *ast.FnStmt) {
	fs.declareLocal(s.Name, s.Position)
	if fs.scopeDepth > 0 {
		fs.markInitialized()
	}

	nested := newFuncState(fs.c, fs, userFunc, s.Name)
	fs.c.cur = nested
	nested.fn.Arity = len(s.Params)

	nested.beginScope()
	for _, param := range s.Params {
		nested.declareLocal(param.Name, param.Position)
		nested.markInitialized()
	}
	for _, stmt := range s.Body.Stmts {
		nested.compileDeclaration(stmt)
	}
	fn := nested.end()

	fs.c.cur = fs
	fs.emitOp1(opcode.CONSTANT, fs.addConstant(value.Obj(fn), s.Position), s.Position.Line)

	if fs.scopeDepth == 0 {
		fs.emitOp1(opcode.DEFINE_GLOBAL, fs.nameConstant(s.Name, s.Position), s.Position.Line)
	}
}

func (fs *funcState) compileIf(s *ast.IfStmt) {
	line := s.Position.Line
	fs.compileExpr(s.Cond)
	thenJump := fs.emitJump(opcode.JUMP_IF_FALSE, line)
	fs.emitOp(opcode.POP, line)
	fs.compileStatement(s.Then)

	elseJump := fs.emitJump(opcode.JUMP, line)
	fs.patchJump(thenJump, s.Position)
	fs.emitOp(opcode.POP, line)
	if s.Else != nil {
		fs.compileStatement(s.Else)
	}
	fs.patchJump(elseJump, s.Position)
}

func (fs *funcState) compileWhile(s *ast.WhileStmt) {
	line := s.Position.Line
	loopStart := len(fs.chunk.Code)
	fs.compileExpr(s.Cond)
	exitJump := fs.emitJump(opcode.JUMP_IF_FALSE, line)
	fs.emitOp(opcode.POP, line)
	fs.compileStatement(s.Body)
	fs.emitLoop(loopStart, line, s.Position)
	fs.patchJump(exitJump, s.Position)
	fs.emitOp(opcode.POP, line)
}

func (fs *funcState) compileReturn(s *ast.ReturnStmt) {
	line := s.Position.Line
	if fs.kind == scriptFunc {
		fs.c.errorf(s.Position, "can't return from top-level code")
	}
	if s.X == nil {
		fs.emitReturn(line)
		return
	}
	fs.compileExpr(s.X)
	fs.emitOp(opcode.RETURN, line)
}
