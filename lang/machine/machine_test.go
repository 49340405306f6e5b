package machine

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ohaddr/vesper/lang/compiler"
	"github.com/ohaddr/vesper/lang/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run compiles and interprets src against a fresh VM, returning its stdout.
func run(t *testing.T, src string) string {
	t.Helper()
	vm := New(RuntimeConfig{})
	out, err := runOn(t, vm, src)
	require.NoError(t, err)
	return out
}

func runOn(t *testing.T, vm *VM, src string) (string, error) {
	t.Helper()
	prog, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	fn, err := compiler.Compile(prog)
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	vm.Stdout = &stdout
	vm.Stderr = &stderr
	err = vm.Interpret(context.Background(), fn)
	if err != nil {
		return stdout.String(), errWithStderr{err, stderr.String()}
	}
	return stdout.String(), nil
}

type errWithStderr struct {
	err    error
	stderr string
}

func (e errWithStderr) Error() string { return e.err.Error() + "\n" + e.stderr }

func TestInterpretArithmeticPrecedence(t *testing.T) {
	assert.Equal(t, "7\n", run(t, "print 1 + 2 * 3;"))
}

func TestInterpretWhileLoopSum(t *testing.T) {
	src := `
		let total = 0;
		let i = 1;
		while i <= 10 {
			total = total + i;
			i = i + 1;
		}
		print total;
	`
	assert.Equal(t, "55\n", run(t, src))
}

func TestInterpretIfElse(t *testing.T) {
	assert.Equal(t, "1\n", run(t, `if 1 < 2 { print 1; } else { print 0; }`))
}

func TestInterpretFunctionCallAndRecursion(t *testing.T) {
	src := `
		fn fib(n) {
			if n < 2 { return n; }
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`
	assert.Equal(t, "55\n", run(t, src))
}

func TestInterpretGlobalsPersistAcrossCalls(t *testing.T) {
	vm := New(RuntimeConfig{})
	_, err := runOn(t, vm, "let counter = 0;")
	require.NoError(t, err)
	out, err := runOn(t, vm, "counter = counter + 1; print counter;")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestInterpretUndefinedGlobalIsRuntimeError(t *testing.T) {
	vm := New(RuntimeConfig{})
	_, err := runOn(t, vm, "print missing;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable 'missing'")
}

func TestInterpretArityMismatchIsRuntimeError(t *testing.T) {
	vm := New(RuntimeConfig{})
	_, err := runOn(t, vm, "fn f(a, b) { return a; } f(1);")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected 2 arguments but got 1")
}

func TestInterpretCallingNonFunctionIsRuntimeError(t *testing.T) {
	vm := New(RuntimeConfig{})
	_, err := runOn(t, vm, "let x = 1; x();")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can only call functions")
}

func TestInterpretArithmeticTypeMismatchIsRuntimeError(t *testing.T) {
	vm := New(RuntimeConfig{})
	_, err := runOn(t, vm, `print 1 + true;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Operands must be numbers")
}

func TestInterpretNegateTypeMismatchIsRuntimeError(t *testing.T) {
	vm := New(RuntimeConfig{})
	_, err := runOn(t, vm, `print -true;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Operand must be a number")
}

func TestInterpretStackOverflowOnUnboundedRecursion(t *testing.T) {
	vm := New(RuntimeConfig{FramesMax: 8})
	src := `
		fn loop() { return loop(); }
		loop();
	`
	_, err := runOn(t, vm, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Stack overflow")
}

func TestInterpretBuiltinMath(t *testing.T) {
	src := `
		print abs(0 - 5);
		print min(3, 7);
		print max(3, 7);
		print sqrt(9);
		print pow(2, 10);
		print floor(1.9);
		print ceil(1.1);
	`
	out := run(t, src)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{"5", "3", "7", "3", "1024", "1", "2"}, lines)
}

func TestInterpretBuiltinArityErrorReturnsNilNotAbort(t *testing.T) {
	assert.Equal(t, "nil\n", run(t, "print abs(1, 2);"))
}
