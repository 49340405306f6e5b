package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/ohaddr/vesper/lang/compiler"
	"github.com/ohaddr/vesper/lang/machine"
	"github.com/ohaddr/vesper/lang/parser"
)

// runResult classifies how a file run ended, for Main's exit-code mapping.
type runResult int

const (
	runOK runResult = iota
	runCompileError
	runRuntimeError
	runIOError
)

// runFile compiles and runs the source at path against vm, reporting
// diagnostics on stdio.Stderr.
func runFile(ctx context.Context, vm *machine.VM, stdio mainer.Stdio, path string) runResult {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "Could not open file %q\n", path)
		return runIOError
	}

	prog, err := parser.Parse(src)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return runCompileError
	}

	fn, err := compiler.Compile(prog)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return runCompileError
	}

	if err := vm.Interpret(ctx, fn); err != nil {
		return runRuntimeError
	}
	return runOK
}
