package machine

import (
	"fmt"

	"github.com/ohaddr/vesper/lang/value"
)

// call implements the CALL opcode: callee = peek(argc); dispatch on its
// kind (spec §4.5).
func (vm *VM) call(argc int) error {
	callee := vm.peek(argc)
	if !callee.IsObject() {
		return vm.runtimeError("Can only call functions")
	}

	switch fn := callee.AsObject().(type) {
	case *value.Function:
		return vm.callFunction(fn, argc)
	case *value.Native:
		return vm.callNative(fn, argc)
	default:
		return vm.runtimeError("Can only call functions")
	}
}

func (vm *VM) callFunction(fn *value.Function, argc int) error {
	if argc != fn.Arity {
		return vm.runtimeError("Expected %d arguments but got %d", fn.Arity, argc)
	}
	if len(vm.frames) >= vm.cfg.FramesMax {
		return vm.runtimeError("Stack overflow")
	}
	vm.frames = append(vm.frames, frame{
		fn:       fn,
		slotBase: len(vm.stack) - argc - 1,
	})
	return nil
}

func (vm *VM) callNative(n *value.Native, argc int) error {
	args := make([]value.Value, argc)
	copy(args, vm.stack[len(vm.stack)-argc:])

	result := n.Fn(args, func(format string, a ...any) {
		fmt.Fprintf(vm.stderr(), "%s: %s\n", n.Name, fmt.Sprintf(format, a...))
	})
	vm.stack = vm.stack[:len(vm.stack)-argc-1]
	vm.push(result)
	return nil
}

// runtimeError formats msg, writes it and a call-stack trace (innermost
// frame first) to Stderr, and returns the error so the dispatch loop unwinds
// to Interpret, which resets the VM's stacks.
func (vm *VM) runtimeError(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(vm.stderr(), msg)
	for i := len(vm.frames) - 1; i >= 0; i-- {
		fr := &vm.frames[i]
		fmt.Fprintf(vm.stderr(), "[line %d] in %s\n", fr.line(), fr.name())
	}
	return fmt.Errorf("%s", msg)
}
