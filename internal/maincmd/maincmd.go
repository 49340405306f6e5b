// Package maincmd implements the vesper CLI: no-argument invocation opens a
// REPL, a single path argument runs that file, anything else is a usage
// error. It wraps lang/machine in the exit-code scheme the language
// reserves for its three error kinds.
package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/mna/mainer"
	"github.com/ohaddr/vesper/lang/machine"
)

const binName = "vesper"

const (
	// exitUsage, exitCompile, exitRuntime and exitIO are the language's
	// reserved exit codes; exitUsage also covers invalid arguments and
	// environment configuration, and mainer.Success covers help, version
	// and the REPL.
	exitUsage   mainer.ExitCode = 64
	exitCompile mainer.ExitCode = 65
	exitRuntime mainer.ExitCode = 70
	exitIO      mainer.ExitCode = 74
)

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<path>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<path>]
       %[1]s -h|--help
       %[1]s -v|--version

Bytecode compiler and virtual machine for the %[1]s scripting language.

With no arguments, opens a REPL: each line is compiled and run against a
single persistent VM, so globals survive from one line to the next. Type
'exit' to quit.

With one argument, compiles and runs the file at <path>.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
`, binName)
)

// Cmd is the vesper CLI's mainer.Cmd implementation.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args []string
}

func (c *Cmd) SetArgs(args []string)      { c.args = args }
func (c *Cmd) SetFlags(_ map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) > 1 {
		return fmt.Errorf("too many arguments: expected at most one path, got %d", len(c.args))
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return exitUsage
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	var cfg machine.RuntimeConfig
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid environment configuration: %s\n", err)
		return exitUsage
	}
	vm := machine.New(cfg)
	vm.Stdout = stdio.Stdout
	vm.Stderr = stdio.Stderr
	vm.Trace = os.Getenv("VESPER_TRACE") != ""

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	if len(c.args) == 0 {
		repl(ctx, vm, stdio)
		return mainer.Success
	}

	switch runFile(ctx, vm, stdio, c.args[0]) {
	case runOK:
		return mainer.Success
	case runCompileError:
		return exitCompile
	case runRuntimeError:
		return exitRuntime
	case runIOError:
		return exitIO
	default:
		return mainer.Failure
	}
}
