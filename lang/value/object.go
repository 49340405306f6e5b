package value

import "fmt"

// Object is implemented by every heap-allocated value variant. vesper has
// exactly three closed object kinds and no open attribute/index/binary
// protocol to support, so Object only needs to identify itself and print.
type Object interface {
	ObjType() string
	String() string
}

// String is a hash-cached byte sequence. Identifier-name strings are
// interned by lang/compiler within one Compile call; lang/machine's global
// table compares keys by content, not identity. Equal compares String
// objects by identity.
type String struct {
	Chars string
	Hash  uint32
}

// NewString creates a String object, computing and caching its FNV-1a hash.
func NewString(s string) *String {
	return &String{Chars: s, Hash: fnv1a(s)}
}

func (s *String) ObjType() string { return "string" }
func (s *String) String() string  { return s.Chars }

// fnv1a computes the 32-bit FNV-1a hash of s.
func fnv1a(s string) uint32 {
	const (
		offsetBasis uint32 = 2166136261
		prime       uint32 = 16777619
	)
	h := offsetBasis
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime
	}
	return h
}

// Function is a user-defined function: its arity, an optional name (unset
// for the top-level script function), and its owned Chunk.
type Function struct {
	Name  string // empty for the top-level script and anonymous functions
	Arity int
	Chunk *Chunk
}

func (f *Function) ObjType() string { return "function" }
func (f *Function) String() string {
	if f.Name == "" {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", f.Name)
}

// NativeFn is a host-provided function: it receives its arguments and a
// diagnostics sink, and returns a Value. A native that rejects its
// arguments writes a diagnostic through that sink and returns Nil rather
// than aborting the VM.
type NativeFn func(args []Value, diagnostics func(format string, a ...any)) Value

// Native wraps a host function pointer so it can be called like a user
// function.
type Native struct {
	Name string
	Fn   NativeFn
}

func (n *Native) ObjType() string { return "native" }
func (n *Native) String() string  { return "<native fn>" }
