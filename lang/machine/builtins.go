package machine

import (
	"math"

	"github.com/ohaddr/vesper/lang/value"
)

// registerBuiltins binds the host math natives into vm's global table. Each
// validates its own arity and argument types and reports a diagnostic
// through the sink rather than aborting the VM on misuse.
func registerBuiltins(vm *VM) {
	define := func(name string, fn value.NativeFn) {
		vm.globals.Set(value.NewString(name), value.Obj(&value.Native{Name: name, Fn: fn}))
	}

	define("abs", nativeAbs)
	define("min", nativeMin)
	define("max", nativeMax)
	define("sqrt", nativeSqrt)
	define("pow", nativePow)
	define("floor", nativeFloor)
	define("ceil", nativeCeil)
}

func nativeAbs(args []value.Value, diag func(string, ...any)) value.Value {
	if len(args) != 1 {
		diag("abs() takes exactly 1 argument")
		return value.Nil
	}
	if !args[0].IsNumber() {
		diag("abs() argument must be a number")
		return value.Nil
	}
	return value.Number(math.Abs(args[0].AsNumber()))
}

func nativeMin(args []value.Value, diag func(string, ...any)) value.Value {
	if len(args) != 2 {
		diag("min() takes exactly 2 arguments")
		return value.Nil
	}
	if !args[0].IsNumber() || !args[1].IsNumber() {
		diag("min() arguments must be numbers")
		return value.Nil
	}
	a, b := args[0].AsNumber(), args[1].AsNumber()
	if a < b {
		return value.Number(a)
	}
	return value.Number(b)
}

func nativeMax(args []value.Value, diag func(string, ...any)) value.Value {
	if len(args) != 2 {
		diag("max() takes exactly 2 arguments")
		return value.Nil
	}
	if !args[0].IsNumber() || !args[1].IsNumber() {
		diag("max() arguments must be numbers")
		return value.Nil
	}
	a, b := args[0].AsNumber(), args[1].AsNumber()
	if a > b {
		return value.Number(a)
	}
	return value.Number(b)
}

func nativeSqrt(args []value.Value, diag func(string, ...any)) value.Value {
	if len(args) != 1 {
		diag("sqrt() takes exactly 1 argument")
		return value.Nil
	}
	if !args[0].IsNumber() {
		diag("sqrt() argument must be a number")
		return value.Nil
	}
	n := args[0].AsNumber()
	if n < 0 {
		diag("sqrt() argument must be non-negative")
		return value.Nil
	}
	return value.Number(math.Sqrt(n))
}

func nativePow(args []value.Value, diag func(string, ...any)) value.Value {
	if len(args) != 2 {
		diag("pow() takes exactly 2 arguments")
		return value.Nil
	}
	if !args[0].IsNumber() || !args[1].IsNumber() {
		diag("pow() arguments must be numbers")
		return value.Nil
	}
	return value.Number(math.Pow(args[0].AsNumber(), args[1].AsNumber()))
}

func nativeFloor(args []value.Value, diag func(string, ...any)) value.Value {
	if len(args) != 1 {
		diag("floor() takes exactly 1 argument")
		return value.Nil
	}
	if !args[0].IsNumber() {
		diag("floor() argument must be a number")
		return value.Nil
	}
	return value.Number(math.Floor(args[0].AsNumber()))
}

func nativeCeil(args []value.Value, diag func(string, ...any)) value.Value {
	if len(args) != 1 {
		diag("ceil() takes exactly 1 argument")
		return value.Nil
	}
	if !args[0].IsNumber() {
		diag("ceil() argument must be a number")
		return value.Nil
	}
	return value.Number(math.Ceil(args[0].AsNumber()))
}
