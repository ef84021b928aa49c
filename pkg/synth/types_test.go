package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{"equal ints", NewIntValue(3), NewIntValue(3), true},
		{"different ints", NewIntValue(3), NewIntValue(4), false},
		{"equal bools", NewBoolValue(true), NewBoolValue(true), true},
		{"different types", NewIntValue(0), NewBoolValue(false), false},
		{"bitvec masked equal", NewBitVecValue(4, 0x1F), NewBitVecValue(4, 0x0F), true},
		{"bitvec different width", NewBitVecValue(4, 1), NewBitVecValue(8, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Equal(tt.b))
		})
	}
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "true", NewBoolValue(true).String())
	assert.Equal(t, "false", NewBoolValue(false).String())
	assert.Equal(t, "42", NewIntValue(42).String())
	assert.Equal(t, "#x0f", NewBitVecValue(8, 0x0F).String())
	assert.Equal(t, "#b101", NewBitVecValue(3, 0b101).String())
}

func TestType_Equal(t *testing.T) {
	assert.True(t, BoolType().Equal(BoolType()))
	assert.True(t, BitVecType(8).Equal(BitVecType(8)))
	assert.False(t, BitVecType(8).Equal(BitVecType(16)))
	assert.False(t, IntType().Equal(BoolType()))
}

func TestPoint_Key(t *testing.T) {
	p1 := Point{NewIntValue(1), NewIntValue(2)}
	p2 := Point{NewIntValue(1), NewIntValue(2)}
	p3 := Point{NewIntValue(2), NewIntValue(1)}
	assert.Equal(t, p1.Key(), p2.Key())
	assert.NotEqual(t, p1.Key(), p3.Key())
}
