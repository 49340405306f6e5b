package compiler

import (
	"github.com/ohaddr/vesper/lang/opcode"
	"github.com/ohaddr/vesper/lang/token"
	"github.com/ohaddr/vesper/lang/value"
)

// maxJump is the largest forward or backward distance a JUMP/JUMP_IF_FALSE/
// LOOP can encode in its 16-bit big-endian operand.
const maxJump = 65535

func (fs *funcState) emitByte(b byte, line int) {
	fs.chunk.WriteByte(b, line)
}

func (fs *funcState) emitOp(op opcode.Opcode, line int) {
	fs.emitByte(byte(op), line)
}

func (fs *funcState) emitOp1(op opcode.Opcode, arg byte, line int) {
	fs.emitByte(byte(op), line)
	fs.emitByte(arg, line)
}

// emitJump emits op followed by a two-byte placeholder offset and returns
// the offset of the placeholder's first byte, to be patched later.
func (fs *funcState) emitJump(op opcode.Opcode, line int) int {
	fs.emitByte(byte(op), line)
	fs.emitByte(0xff, line)
	fs.emitByte(0xff, line)
	return len(fs.chunk.Code) - 2
}

// patchJump backpatches the jump placeholder at offset to land at the
// current end of the chunk.
func (fs *funcState) patchJump(offset int, pos token.Position) {
	dist := len(fs.chunk.Code) - offset - 2
	if dist > maxJump {
		fs.c.errorf(pos, "too much code to jump over")
		dist = 0
	}
	fs.chunk.Code[offset] = byte(dist >> 8)
	fs.chunk.Code[offset+1] = byte(dist)
}

// emitLoop emits an unconditional backward LOOP to loopStart.
func (fs *funcState) emitLoop(loopStart int, line int, pos token.Position) {
	fs.emitByte(byte(opcode.LOOP), line)
	dist := len(fs.chunk.Code) - loopStart + 2
	if dist > maxJump {
		fs.c.errorf(pos, "loop body too large")
		dist = 0
	}
	fs.emitByte(byte(dist>>8), line)
	fs.emitByte(byte(dist), line)
}

func (fs *funcState) emitReturn(line int) {
	fs.emitOp(opcode.NIL, line)
	fs.emitOp(opcode.RETURN, line)
}

// addConstant appends v to the chunk's constant pool, reporting a compile
// error if the pool is full.
func (fs *funcState) addConstant(v value.Value, pos token.Position) byte {
	idx, err := fs.chunk.AddConstant(v)
	if err != nil {
		fs.c.errorf(pos, "%s", err)
		return 0
	}
	return byte(idx)
}

// numberConstant returns the constant-pool index for n, reusing an existing
// entry for the same number within this chunk.
func (fs *funcState) numberConstant(n float64, pos token.Position) byte {
	if idx, ok := fs.numberConsts.Get(n); ok {
		return idx
	}
	idx := fs.addConstant(value.Number(n), pos)
	fs.numberConsts.Put(n, idx)
	return idx
}

// nameConstant returns the constant-pool index of the interned identifier
// String for name, reusing an existing entry within this chunk.
func (fs *funcState) nameConstant(name string, pos token.Position) byte {
	if idx, ok := fs.stringConsts.Get(name); ok {
		return idx
	}
	idx := fs.addConstant(value.Obj(fs.c.intern(name)), pos)
	fs.stringConsts.Put(name, idx)
	return idx
}
