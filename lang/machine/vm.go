// Package machine implements the stack-based virtual machine that executes
// the bytecode produced by lang/compiler: a dispatch loop over a value
// stack and a call-frame stack, the global symbol table, and host builtin
// registration.
package machine

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/ohaddr/vesper/lang/opcode"
	"github.com/ohaddr/vesper/lang/value"
)

// RuntimeConfig carries the VM's resource bounds. Its defaults match the
// language's fixed bounds (stack depth 256, call-frame depth 64); a host
// embedding the VM, or a test exercising overflow, can override either via
// the corresponding env var when the config is populated with
// github.com/caarlos0/env.
type RuntimeConfig struct {
	StackMax  int `env:"VESPER_STACK_MAX" envDefault:"256"`
	FramesMax int `env:"VESPER_FRAMES_MAX" envDefault:"64"`
}

// VM executes compiled vesper programs. It is single-threaded and
// synchronous: there is no concurrent access to its stacks, globals, or
// object bookkeeping, and natives run to completion before the dispatch
// loop resumes (spec §5).
type VM struct {
	cfg RuntimeConfig

	stack  []value.Value
	frames []frame

	globals *Globals

	// Stdout and Stderr receive PRINT output and runtime diagnostics
	// respectively; both default to the OS streams if nil.
	Stdout io.Writer
	Stderr io.Writer

	// Trace, when true, writes a disassembled trace of each executed
	// instruction and the value stack contents to Stderr (VESPER_TRACE, read once by
	// internal/maincmd).
	Trace bool
}

// New returns a VM configured with cfg's resource bounds and the standard
// builtins registered.
func New(cfg RuntimeConfig) *VM {
	if cfg.StackMax <= 0 {
		cfg.StackMax = 256
	}
	if cfg.FramesMax <= 0 {
		cfg.FramesMax = 64
	}
	vm := &VM{
		cfg:     cfg,
		globals: NewGlobals(),
	}
	registerBuiltins(vm)
	return vm
}

func (vm *VM) stdout() io.Writer {
	if vm.Stdout != nil {
		return vm.Stdout
	}
	return os.Stdout
}

func (vm *VM) stderr() io.Writer {
	if vm.Stderr != nil {
		return vm.Stderr
	}
	return os.Stderr
}

func (vm *VM) push(v value.Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() value.Value {
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[len(vm.stack)-1-distance]
}

func (vm *VM) resetStack() {
	vm.stack = vm.stack[:0]
	vm.frames = vm.frames[:0]
}

// GlobalsSnapshot returns every global binding sorted by name, for
// VESPER_TRACE diagnostics.
func (vm *VM) GlobalsSnapshot() []Binding {
	return vm.globals.Snapshot()
}

// Interpret runs fn (typically the top-level script Function produced by
// lang/compiler) to completion. Globals persist across calls on the same
// VM, which is what lets a REPL retain bindings between lines.
func (vm *VM) Interpret(ctx context.Context, fn *value.Function) error {
	vm.push(value.Obj(fn))
	vm.frames = append(vm.frames, frame{fn: fn, slotBase: 0})
	err := vm.run(ctx)
	if err != nil {
		vm.resetStack()
	}
	return err
}

func (vm *VM) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(vm.stack) > vm.cfg.StackMax {
			return vm.runtimeError("Stack overflow")
		}

		fr := &vm.frames[len(vm.frames)-1]
		code := fr.fn.Chunk.Code

		if vm.Trace {
			vm.traceInstruction(fr, code)
		}

		op := opcode.Opcode(code[fr.ip])
		fr.ip++

		switch op {
		case opcode.NOP:
			// no-op

		case opcode.CONSTANT:
			idx := code[fr.ip]
			fr.ip++
			vm.push(fr.fn.Chunk.Constants[idx])

		case opcode.NIL:
			vm.push(value.Nil)

		case opcode.TRUE:
			vm.push(value.Bool(true))

		case opcode.FALSE:
			vm.push(value.Bool(false))

		case opcode.POP:
			vm.pop()

		case opcode.GET_LOCAL:
			slot := code[fr.ip]
			fr.ip++
			vm.push(vm.stack[fr.slotBase+int(slot)])

		case opcode.SET_LOCAL:
			slot := code[fr.ip]
			fr.ip++
			vm.stack[fr.slotBase+int(slot)] = vm.peek(0)

		case opcode.GET_GLOBAL:
			idx := code[fr.ip]
			fr.ip++
			name := fr.fn.Chunk.Constants[idx].AsObject().(*value.String)
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'", name.Chars)
			}
			vm.push(v)

		case opcode.DEFINE_GLOBAL:
			idx := code[fr.ip]
			fr.ip++
			name := fr.fn.Chunk.Constants[idx].AsObject().(*value.String)
			vm.globals.Set(name, vm.pop())

		case opcode.SET_GLOBAL:
			idx := code[fr.ip]
			fr.ip++
			name := fr.fn.Chunk.Constants[idx].AsObject().(*value.String)
			if _, ok := vm.globals.Get(name); !ok {
				return vm.runtimeError("Undefined variable '%s'", name.Chars)
			}
			vm.globals.Set(name, vm.peek(0))

		case opcode.EQUAL:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))

		case opcode.LESS, opcode.GREATER:
			if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
				return vm.runtimeError("Operands must be numbers")
			}
			b := vm.pop().AsNumber()
			a := vm.pop().AsNumber()
			if op == opcode.LESS {
				vm.push(value.Bool(a < b))
			} else {
				vm.push(value.Bool(a > b))
			}

		case opcode.ADD, opcode.SUB, opcode.MUL, opcode.DIV, opcode.MODULO:
			if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
				return vm.runtimeError("Operands must be numbers")
			}
			b := vm.pop().AsNumber()
			a := vm.pop().AsNumber()
			vm.push(value.Number(arith(op, a, b)))

		case opcode.NOT:
			vm.push(value.Bool(!vm.pop().Truthy()))

		case opcode.NEGATE:
			if !vm.peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number")
			}
			vm.push(value.Number(-vm.pop().AsNumber()))

		case opcode.PRINT:
			fmt.Fprintln(vm.stdout(), vm.pop().Print())

		case opcode.JUMP:
			off := int(code[fr.ip])<<8 | int(code[fr.ip+1])
			fr.ip += 2 + off

		case opcode.JUMP_IF_FALSE:
			off := int(code[fr.ip])<<8 | int(code[fr.ip+1])
			fr.ip += 2
			if !vm.peek(0).Truthy() {
				fr.ip += off
			}

		case opcode.LOOP:
			off := int(code[fr.ip])<<8 | int(code[fr.ip+1])
			fr.ip += 2 - off

		case opcode.CALL:
			argc := int(code[fr.ip])
			fr.ip++
			if err := vm.call(argc); err != nil {
				return err
			}

		case opcode.RETURN:
			result := vm.pop()
			vm.frames = vm.frames[:len(vm.frames)-1]
			if len(vm.frames) == 0 {
				vm.pop() // the top-level script function
				return nil
			}
			vm.stack = vm.stack[:fr.slotBase]
			vm.push(result)

		default:
			return vm.runtimeError("internal error: unimplemented opcode %s", op)
		}
	}
}

// traceInstruction writes the current stack contents and the next
// instruction to Stderr, in the style of clox's DEBUG_TRACE_EXECUTION.
func (vm *VM) traceInstruction(fr *frame, code []byte) {
	fmt.Fprint(vm.stderr(), "          ")
	for _, v := range vm.stack {
		fmt.Fprintf(vm.stderr(), "[ %s ]", v.Print())
	}
	fmt.Fprintln(vm.stderr())
	fr.fn.Chunk.DisassembleInstructionAt(vm.stderr(), fr.ip)
}

func arith(op opcode.Opcode, a, b float64) float64 {
	switch op {
	case opcode.ADD:
		return a + b
	case opcode.SUB:
		return a - b
	case opcode.MUL:
		return a * b
	case opcode.DIV:
		return a / b
	case opcode.MODULO:
		return math.Mod(a, b)
	}
	panic("unreachable")
}
