package value

import (
	"fmt"
	"io"

	"github.com/ohaddr/vesper/lang/opcode"
)

// Disassemble writes a human-readable listing of c to w, labeled name, for
// tests asserting on emitted bytecode shape. The VM's instruction trace
// (VESPER_TRACE) uses DisassembleInstructionAt instead.
func (c *Chunk) Disassemble(w io.Writer, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		offset = c.disassembleInstruction(w, offset)
	}
}

// DisassembleInstructionAt writes the single instruction at offset, for the
// VM's per-step trace mode.
func (c *Chunk) DisassembleInstructionAt(w io.Writer, offset int) {
	c.disassembleInstruction(w, offset)
}

// disassembleInstruction writes one instruction at offset and returns the
// offset of the next one.
func (c *Chunk) disassembleInstruction(w io.Writer, offset int) int {
	fmt.Fprintf(w, "%04d ", offset)
	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		fmt.Fprint(w, "   | ")
	} else {
		fmt.Fprintf(w, "%4d ", c.Lines[offset])
	}

	op := opcode.Opcode(c.Code[offset])
	width := opcode.OperandWidth(op)

	switch width {
	case 0:
		fmt.Fprintf(w, "%s\n", op)
		return offset + 1
	case 1:
		arg := c.Code[offset+1]
		if op == opcode.CONSTANT || op == opcode.GET_GLOBAL || op == opcode.DEFINE_GLOBAL || op == opcode.SET_GLOBAL {
			fmt.Fprintf(w, "%-16s %4d '%s'\n", op, arg, c.Constants[arg].Print())
		} else {
			fmt.Fprintf(w, "%-16s %4d\n", op, arg)
		}
		return offset + 2
	case 2:
		hi, lo := c.Code[offset+1], c.Code[offset+2]
		jump := int(hi)<<8 | int(lo)
		sign := 1
		if op == opcode.LOOP {
			sign = -1
		}
		fmt.Fprintf(w, "%-16s %4d -> %d\n", op, offset, offset+3+sign*jump)
		return offset + 3
	default:
		fmt.Fprintf(w, "unknown operand width for %s\n", op)
		return offset + 1
	}
}
