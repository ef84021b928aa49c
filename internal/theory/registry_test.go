package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esolve/esolve/pkg/synth"
)

func TestRegistry_TriesEachTheoryInOrder(t *testing.T) {
	reg := Default()

	_, ok := reg.Instantiate("and", []synth.Type{synth.BoolType(), synth.BoolType()})
	assert.True(t, ok, "core theory operator")

	_, ok = reg.Instantiate("add", []synth.Type{synth.IntType(), synth.IntType()})
	assert.True(t, ok, "LIA theory operator")

	_, ok = reg.Instantiate("bvadd", []synth.Type{synth.BitVecType(8), synth.BitVecType(8)})
	assert.True(t, ok, "bit-vector theory operator")
}

func TestRegistry_UnknownOperatorFails(t *testing.T) {
	reg := Default()
	_, ok := reg.Instantiate("frobnicate", []synth.Type{synth.IntType()})
	assert.False(t, ok)
}

type stubTheory struct {
	name string
	op   *synth.OperatorDescriptor
}

func (s stubTheory) Instantiate(name string, argTypes []synth.Type) (*synth.OperatorDescriptor, bool) {
	if name == s.name {
		return s.op, true
	}
	return nil, false
}

func TestRegistry_FirstMatchWins(t *testing.T) {
	first := stubTheory{name: "pick", op: &synth.OperatorDescriptor{Name: "first"}}
	second := stubTheory{name: "pick", op: &synth.OperatorDescriptor{Name: "second"}}

	reg := NewRegistry(first, second)
	op, ok := reg.Instantiate("pick", nil)
	require.True(t, ok)
	assert.Equal(t, "first", op.Name)
}
