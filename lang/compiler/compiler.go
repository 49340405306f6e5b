// Package compiler implements the single-pass compiler that lowers a parsed
// AST directly to bytecode: one value.Chunk per function, with lexical
// scopes resolved to stack slots at compile time and control flow lowered
// to backpatched relative jumps. There is no intervening IR and no separate
// resolver pass — scope resolution happens inline as the AST is walked,
// mirroring how the compiler itself is the only consumer of the AST.
package compiler

import (
	"fmt"

	"github.com/dolthub/swiss"
	"github.com/ohaddr/vesper/lang/ast"
	"github.com/ohaddr/vesper/lang/opcode"
	"github.com/ohaddr/vesper/lang/token"
	"github.com/ohaddr/vesper/lang/value"
)

// Compile compiles a parsed program into its top-level Function. The
// returned error, if non-nil, is a token.ErrorList: the compiler records
// each error and keeps compiling the rest of the program, so a single
// source text can surface more than one diagnostic. Follow-on errors are
// not suppressed; syntax-error recovery happens earlier, in lang/parser.
func Compile(prog *ast.Program) (*value.Function, error) {
	c := &compiler{names: make(map[string]*value.String)}
	fs := newFuncState(c, nil, scriptFunc, "")
	c.cur = fs
	for _, stmt := range prog.Stmts {
		fs.compileDeclaration(stmt)
	}
	fn := fs.end()
	c.errors.Sort()
	if err := c.errors.Err(); err != nil {
		return nil, err
	}
	return fn, nil
}

// funcKind distinguishes the implicit top-level script from a user-defined
// function; a return statement is a compile error only in the former, and
// only the latter installs parameters as locals 1..arity.
type funcKind int

const (
	scriptFunc funcKind = iota
	userFunc
)

// compiler holds state shared across every nested funcState: the
// name-interning table (so that two GET_GLOBAL references to the same
// identifier, wherever they're compiled, share one *value.String instead of
// allocating a fresh one per occurrence; the global table itself compares
// keys by content, not by this identity, since nothing guarantees a single
// canonical string across separate Compile calls) and the accumulated
// diagnostics.
type compiler struct {
	cur    *funcState
	names  map[string]*value.String
	errors token.ErrorList
}

// intern returns the canonical *value.String for name, creating it on first
// use.
func (c *compiler) intern(name string) *value.String {
	if s, ok := c.names[name]; ok {
		return s
	}
	s := value.NewString(name)
	c.names[name] = s
	return s
}

func (c *compiler) errorf(pos token.Position, format string, args ...any) {
	c.errors.Add(pos, fmt.Sprintf(format, args...))
}

// local is a compile-time stack slot binding. depth == -1 means "declared
// but not yet initialized", used to reject `let x = x`.
type local struct {
	name  string
	depth int
}

// funcState is the per-function compile context: its own Chunk, its own
// local-slot table and scope depth, and a link to the enclosing function
// being compiled (for nested function literals; vesper has no closures, so
// the link exists only to return to compiling the parent after a nested
// function body finishes — it is never used to resolve a name as an
// upvalue).
type funcState struct {
	c          *compiler
	enclosing  *funcState
	kind       funcKind
	fn         *value.Function
	chunk      *value.Chunk
	locals     []local
	scopeDepth int

	numberConsts *swiss.Map[float64, byte]
	stringConsts *swiss.Map[string, byte]
}

// maxLocals is the number of stack slots a function body can declare: a
// single byte addresses a local, so slots are limited to 256, one of which
// (slot 0) is reserved for the callee itself.
const maxLocals = 256

func newFuncState(c *compiler, enclosing *funcState, kind funcKind, name string) *funcState {
	fn := &value.Function{Name: name}
	fn.Chunk = &value.Chunk{}
	fs := &funcState{
		c:            c,
		enclosing:    enclosing,
		kind:         kind,
		fn:           fn,
		chunk:        fn.Chunk,
		numberConsts: swiss.NewMap[float64, byte](8),
		stringConsts: swiss.NewMap[string, byte](8),
	}
	// Slot 0 is reserved for the function value itself (the callee), as
	// described for CALL: slot_base aliases the callee, args start at 1.
	fs.locals = append(fs.locals, local{name: "", depth: 0})
	return fs
}

// end finalizes the function being compiled: an implicit `nil; return` is
// always appended, so every body falls through to it.
func (fs *funcState) end() *value.Function {
	fs.emitReturn(0)
	return fs.fn
}
