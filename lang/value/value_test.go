package value

import (
	"math"
	"strings"
	"testing"

	"github.com/ohaddr/vesper/lang/opcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"nil", Nil, false},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"zero", Number(0), true},
		{"empty string", Obj(NewString("")), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.v.Truthy())
		})
	}
}

func TestEqual(t *testing.T) {
	s1 := Obj(NewString("a"))
	s2 := Obj(NewString("a"))

	assert.True(t, Equal(Nil, Nil))
	assert.True(t, Equal(Number(1), Number(1)))
	assert.False(t, Equal(Number(1), Number(2)))
	assert.False(t, Equal(Number(math.NaN()), Number(math.NaN())))
	assert.False(t, Equal(Bool(true), Number(1)))
	assert.False(t, Equal(s1, s2), "distinct string objects are not equal by identity")
	assert.True(t, Equal(s1, s1))
}

func TestPrint(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Nil, "nil"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Number(7), "7"},
		{Number(1.5), "1.5"},
		{Obj(NewString("hi")), "hi"},
		{Obj(&Function{Name: "fact"}), "<fn fact>"},
		{Obj(&Function{}), "<script>"},
		{Obj(&Native{Name: "sqrt"}), "<native fn>"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.v.Print())
	}
}

func TestChunkAddConstantOverflow(t *testing.T) {
	var c Chunk
	for i := 0; i < MaxConstants; i++ {
		_, err := c.AddConstant(Number(float64(i)))
		require.NoError(t, err)
	}
	_, err := c.AddConstant(Number(0))
	require.Error(t, err)
}

func TestChunkDisassemble(t *testing.T) {
	c := &Chunk{}
	idx, err := c.AddConstant(Number(1))
	require.NoError(t, err)
	c.WriteByte(byte(opcode.CONSTANT), 1)
	c.WriteByte(byte(idx), 1)
	c.WriteByte(byte(opcode.RETURN), 1)

	var buf strings.Builder
	c.Disassemble(&buf, "test")
	out := buf.String()

	assert.Contains(t, out, "== test ==")
	assert.Contains(t, out, "CONSTANT")
	assert.Contains(t, out, "'1'")
	assert.Contains(t, out, "RETURN")
}

func TestStringHash(t *testing.T) {
	a := NewString("hello")
	b := NewString("hello")
	assert.Equal(t, a.Hash, b.Hash)
	assert.NotEqual(t, NewString("world").Hash, a.Hash)
}
