package compiler

import (
	"github.com/ohaddr/vesper/lang/opcode"
	"github.com/ohaddr/vesper/lang/token"
)

func (fs *funcState) beginScope() { fs.scopeDepth++ }

// endScope pops every local declared at a depth greater than the new scope
// depth, emitting one POP per popped local.
func (fs *funcState) endScope(line int) {
	fs.scopeDepth--
	for len(fs.locals) > 0 && fs.locals[len(fs.locals)-1].depth > fs.scopeDepth {
		fs.emitOp(opcode.POP, line)
		fs.locals = fs.locals[:len(fs.locals)-1]
	}
}

// declareLocal adds name as a local in the current scope, uninitialized
// (depth -1) until markInitialized is called. At depth 0 (global scope)
// this is a no-op: globals are managed by name in the VM's global table,
// not by slot.
func (fs *funcState) declareLocal(name string, pos token.Position) {
	if fs.scopeDepth == 0 {
		return
	}
	for i := len(fs.locals) - 1; i >= 0; i-- {
		l := fs.locals[i]
		if l.depth != -1 && l.depth < fs.scopeDepth {
			break
		}
		if l.name == name {
			fs.c.errorf(pos, "already a variable with this name in this scope")
			return
		}
	}
	if len(fs.locals) >= maxLocals {
		fs.c.errorf(pos, "too many local variables in function")
		return
	}
	fs.locals = append(fs.locals, local{name: name, depth: -1})
}

// markInitialized sets the most recently declared local's depth to the
// current scope depth, making it resolvable. No-op at depth 0.
func (fs *funcState) markInitialized() {
	if fs.scopeDepth == 0 {
		return
	}
	fs.locals[len(fs.locals)-1].depth = fs.scopeDepth
}

// resolveLocal looks up name among the function's locals, top-down. It
// returns the slot and true if found; if the matching local is still
// uninitialized it reports "can't read local variable in its own
// initializer" and returns a harmless zero slot.
func (fs *funcState) resolveLocal(name string, pos token.Position) (slot byte, ok bool) {
	for i := len(fs.locals) - 1; i >= 0; i-- {
		if fs.locals[i].name == name {
			if fs.locals[i].depth == -1 {
				fs.c.errorf(pos, "can't read local variable in its own initializer")
				return 0, true
			}
			return byte(i), true
		}
	}
	return 0, false
}
