// Package value implements the tagged-union runtime value
// shared by the compiler's constant pool and the machine's value stack, and
// the Chunk that pairs bytecode with its line table and
// constant pool.
//
// Values are represented as a closed tagged union rather than an interface:
// vesper's value space is small and fixed — nil, bool, number, and a
// handful of heap object kinds — with no user-defined maps, arrays, or
// attributes to support, so a concrete struct carrying a kind tag is the
// direct Go analogue and avoids an allocation on every number. See
// DESIGN.md.
package value

import "fmt"

// Kind identifies which variant of the tagged union a Value holds.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObject
)

// Value is a tagged union of {nil, bool, number, heap object}.
type Value struct {
	kind Kind
	b    bool
	n    float64
	obj  Object
}

// Nil is the singular nil value.
var Nil = Value{kind: KindNil}

// Bool returns the Value wrapping b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns the Value wrapping n.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Obj returns the Value wrapping the heap object o.
func Obj(o Object) Value { return Value{kind: KindObject, obj: o} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNil() bool    { return v.kind == KindNil }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsObject() bool { return v.kind == KindObject }

// AsBool returns the boolean payload; the caller must check IsBool first.
func (v Value) AsBool() bool { return v.b }

// AsNumber returns the numeric payload; the caller must check IsNumber first.
func (v Value) AsNumber() float64 { return v.n }

// AsObject returns the heap object payload; the caller must check IsObject
// first.
func (v Value) AsObject() Object { return v.obj }

// Truthy implements the language's truthiness rule: every value
// is truthy except nil and bool(false).
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.b
	default:
		return true
	}
}

// Equal implements value equality: nil equals nil, bool/number compare by
// value (numbers via IEEE equality, so NaN != NaN), and objects compare by
// identity rather than content.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindObject:
		return a.obj == b.obj
	default:
		return false
	}
}

// TypeName returns a short string describing v's type, used by GoString's
// debug format.
func (v Value) TypeName() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindObject:
		return v.obj.ObjType()
	default:
		return "unknown"
	}
}

// Print renders v the way the PRINT instruction and the REPL do: nil ->
// "nil"; bool -> "true"/"false"; number -> shortest round-trip decimal;
// string -> raw bytes; function -> "<fn NAME>" or "<script>"; native ->
// "<native fn>".
func (v Value) Print() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.n)
	case KindObject:
		return v.obj.String()
	default:
		return "?"
	}
}

func formatNumber(n float64) string {
	return fmt.Sprintf("%g", n)
}

// GoString supports %#v formatting for debug traces; see
// token.Token.GoString for the same idiom applied to tokens.
func (v Value) GoString() string {
	return fmt.Sprintf("%s(%s)", v.TypeName(), v.Print())
}
