package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature_ExtendPreservesExistingBits(t *testing.T) {
	sig := NewSignature(2)
	sig.Set(0)
	sig.Extend(4)

	assert.True(t, sig.Test(0))
	assert.False(t, sig.Test(1))
	assert.False(t, sig.Test(2))
	assert.False(t, sig.Test(3))
	assert.Equal(t, uint(4), sig.Width())
}

func TestSignature_EqualRequiresSameWidth(t *testing.T) {
	a := NewSignature(2)
	a.Set(0)
	b := NewSignature(3)
	b.Set(0)
	assert.False(t, a.Equal(b))

	c := NewSignature(2)
	c.Set(0)
	assert.True(t, a.Equal(c))
}

func TestSignature_IsFullAndIsEmpty(t *testing.T) {
	sig := NewSignature(3)
	assert.True(t, sig.IsEmpty())
	sig.Set(0)
	sig.Set(1)
	sig.Set(2)
	assert.True(t, sig.IsFull())
}

func eqIntOp() *OperatorDescriptor {
	return &OperatorDescriptor{
		Name:      "eq",
		ArgTypes:  []Type{IntType(), IntType()},
		RangeType: BoolType(),
		Evaluate: func(args []Value) (Value, error) {
			return NewBoolValue(args[0].Int() == args[1].Int()), nil
		},
	}
}

// TestSignatureFactory_TermModeSubstitutesCandidateIntoSpec proves the fix
// for the bug where TermSolver scored candidates against an externally
// supplied expected-value oracle instead of substituting the candidate as
// the synthesis function's interpretation and evaluating the specification
// itself, per the reference solver's
// eval_ctx.set_interpretation_map([term])/evaluate_expression_raw pairing.
func TestSignatureFactory_TermModeSubstitutesCandidateIntoSpec(t *testing.T) {
	vi := NewVariableInterner()
	x := vi.Intern("x", IntType())
	x.EvalOffset = 0

	synthOp := NewSynthesisTarget("f", []Type{IntType()}, IntType())
	eq := eqIntOp()
	xPlusOne := &OperatorDescriptor{
		Name:      "add1",
		ArgTypes:  []Type{IntType()},
		RangeType: IntType(),
		Evaluate: func(args []Value) (Value, error) {
			return NewIntValue(args[0].Int() + 1), nil
		},
	}
	// spec: f(x) = x + 1
	spec := NewFunctionApp(eq,
		NewFunctionApp(synthOp, NewVariable(x)),
		NewFunctionApp(xPlusOne, NewVariable(x)),
	)

	ctx := NewEvaluationContext()
	factory := NewTermSignatureFactory(ctx, "f", spec)
	factory.AddPoint(Point{NewIntValue(1)}) // expects f(1) = 2
	factory.AddPoint(Point{NewIntValue(5)}) // expects f(5) = 6

	candidate := NewFunctionApp(xPlusOne, NewVariable(x))
	sig, err := factory.Compute(candidate)
	require.NoError(t, err)
	assert.True(t, sig.IsFull())

	wrongCandidate := NewVariable(x)
	sig2, err := factory.Compute(wrongCandidate)
	require.NoError(t, err)
	assert.True(t, sig2.IsEmpty())
}

func TestSignatureFactory_ExtendOnlyEvaluatesNewPoints(t *testing.T) {
	vi := NewVariableInterner()
	x := vi.Intern("x", IntType())
	x.EvalOffset = 0

	ctx := NewEvaluationContext()
	factory := NewSignatureFactory(ctx)
	factory.AddPoint(Point{NewBoolValue(true)})

	expr := NewConstant(NewBoolValue(true))
	sig, err := factory.Compute(expr)
	require.NoError(t, err)
	assert.True(t, sig.IsFull())

	factory.AddPoint(Point{NewBoolValue(false)})
	extended, err := factory.Extend(expr, sig)
	require.NoError(t, err)
	assert.True(t, extended.Test(0))
	assert.True(t, extended.Test(1), "constant true is true at every point")
}
