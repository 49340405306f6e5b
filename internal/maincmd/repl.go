package maincmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/ohaddr/vesper/lang/compiler"
	"github.com/ohaddr/vesper/lang/machine"
	"github.com/ohaddr/vesper/lang/parser"
)

// repl reads one line at a time from stdio.Stdin, compiling and running
// each independently against vm. Globals persist across lines because vm
// is not recreated; the value stack and call-frame stack are reset after
// every line (Interpret always starts a fresh top-level frame).
func repl(ctx context.Context, vm *machine.VM, stdio mainer.Stdio) {
	fmt.Fprintln(stdio.Stdout, "vesper")
	fmt.Fprintln(stdio.Stdout, "Type 'exit' to quit")
	fmt.Fprintln(stdio.Stdout)

	scanner := bufio.NewScanner(stdio.Stdin)
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(stdio.Stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(stdio.Stdout)
			return
		}

		line := scanner.Text()
		if line == "exit" {
			return
		}

		prog, err := parser.Parse([]byte(line))
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			continue
		}
		fn, err := compiler.Compile(prog)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			continue
		}
		// a runtime error here already printed its own diagnostic and trace
		_ = vm.Interpret(ctx, fn)

		if vm.Trace {
			dumpGlobals(stdio, vm)
		}
	}
}

func dumpGlobals(stdio mainer.Stdio, vm *machine.VM) {
	fmt.Fprintln(stdio.Stderr, "globals:")
	for _, b := range vm.GlobalsSnapshot() {
		fmt.Fprintf(stdio.Stderr, "  %s = %s\n", b.Name, b.Value.Print())
	}
}
