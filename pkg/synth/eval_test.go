package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_Variable(t *testing.T) {
	vi := NewVariableInterner()
	x := vi.Intern("x", IntType())
	x.EvalOffset = 0

	ctx := NewEvaluationContext()
	ctx.SetValuationMap(Point{NewIntValue(5)})

	v, err := Evaluate(NewVariable(x), ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.Int())
}

func TestEvaluate_UnboundVariable(t *testing.T) {
	vi := NewVariableInterner()
	x := vi.Intern("x", IntType())

	ctx := NewEvaluationContext()
	ctx.SetValuationMap(Point{})

	_, err := Evaluate(NewVariable(x), ctx)
	require.Error(t, err)
	var evalErr *EvalError
	assert.ErrorAs(t, err, &evalErr)
}

func TestEvaluate_FormalParameter(t *testing.T) {
	ctx := NewEvaluationContext()
	ctx.SetValuationMap(Point{NewIntValue(1), NewIntValue(2)})

	param := NewFormalParameter("f", IntType(), 1)
	v, err := Evaluate(param, ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.Int())
}

func TestEvaluate_SynthesisTargetInterpretation(t *testing.T) {
	vi := NewVariableInterner()
	x := vi.Intern("x", IntType())
	x.EvalOffset = 0

	synthOp := NewSynthesisTarget("f", []Type{IntType()}, IntType())
	call := NewFunctionApp(synthOp, NewVariable(x))

	ctx := NewEvaluationContext()
	ctx.SetValuationMap(Point{NewIntValue(9)})

	_, err := Evaluate(call, ctx)
	require.Error(t, err, "unbound interpretation must fail")

	body := NewFormalParameter("f", IntType(), 0)
	ctx.SetInterpretation("f", body)
	v, err := Evaluate(call, ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(9), v.Int())
}

func TestEvaluateBool_FoldsErrorToFalse(t *testing.T) {
	vi := NewVariableInterner()
	x := vi.Intern("x", BoolType())

	ctx := NewEvaluationContext()
	ctx.SetValuationMap(Point{})

	assert.False(t, EvaluateBool(NewVariable(x), ctx))
}
