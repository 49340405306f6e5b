// Package opcode defines the bytecode instruction set shared by the
// compiler and the machine. Opcode numbering is internal to this module;
// it is not a compatibility contract across builds.
package opcode

import "fmt"

// An Opcode identifies a single bytecode instruction.
type Opcode uint8

//nolint:revive
const (
	NOP Opcode = iota

	CONSTANT // u8 k    ( -- v )
	NIL      //         ( -- v )
	TRUE     //         ( -- v )
	FALSE    //         ( -- v )
	POP      //         ( v -- )

	GET_LOCAL    // u8 s  ( -- v )
	SET_LOCAL    // u8 s  ( v -- v )
	GET_GLOBAL   // u8 k  ( -- v )
	DEFINE_GLOBAL // u8 k ( v -- )
	SET_GLOBAL   // u8 k  ( v -- v )

	EQUAL
	LESS
	GREATER
	ADD
	SUB
	MUL
	DIV
	MODULO

	NOT
	NEGATE

	PRINT

	JUMP          // u16 off ( -- )
	JUMP_IF_FALSE // u16 off ( v -- v )
	LOOP          // u16 off ( -- )

	CALL   // u8 argc ( fn a1..aN -- ret )
	RETURN //         ( v -- )

	maxOpcode
)

var names = [...]string{
	NOP:           "NOP",
	CONSTANT:      "CONSTANT",
	NIL:           "NIL",
	TRUE:          "TRUE",
	FALSE:         "FALSE",
	POP:           "POP",
	GET_LOCAL:     "GET_LOCAL",
	SET_LOCAL:     "SET_LOCAL",
	GET_GLOBAL:    "GET_GLOBAL",
	DEFINE_GLOBAL: "DEFINE_GLOBAL",
	SET_GLOBAL:    "SET_GLOBAL",
	EQUAL:         "EQUAL",
	LESS:          "LESS",
	GREATER:       "GREATER",
	ADD:           "ADD",
	SUB:           "SUB",
	MUL:           "MUL",
	DIV:           "DIV",
	MODULO:        "MODULO",
	NOT:           "NOT",
	NEGATE:        "NEGATE",
	PRINT:         "PRINT",
	JUMP:          "JUMP",
	JUMP_IF_FALSE: "JUMP_IF_FALSE",
	LOOP:          "LOOP",
	CALL:          "CALL",
	RETURN:        "RETURN",
}

func (op Opcode) String() string {
	if op < maxOpcode {
		if s := names[op]; s != "" {
			return s
		}
	}
	return fmt.Sprintf("illegal opcode (%d)", op)
}

// OperandWidth returns the number of operand bytes following op in the
// instruction stream: 0, 1 (an 8-bit index/count) or 2 (a 16-bit big-endian
// jump offset).
func OperandWidth(op Opcode) int {
	switch op {
	case CONSTANT, GET_LOCAL, SET_LOCAL, GET_GLOBAL, DEFINE_GLOBAL, SET_GLOBAL, CALL:
		return 1
	case JUMP, JUMP_IF_FALSE, LOOP:
		return 2
	default:
		return 0
	}
}

// IsJump reports whether op carries a 16-bit jump offset operand.
func IsJump(op Opcode) bool {
	return op == JUMP || op == JUMP_IF_FALSE || op == LOOP
}
