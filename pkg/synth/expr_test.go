package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addOp() *OperatorDescriptor {
	return &OperatorDescriptor{
		Name:      "add",
		ArgTypes:  []Type{IntType(), IntType()},
		RangeType: IntType(),
		Evaluate: func(args []Value) (Value, error) {
			return NewIntValue(args[0].Int() + args[1].Int()), nil
		},
	}
}

func TestVariableInterner_InternIsStable(t *testing.T) {
	vi := NewVariableInterner()
	a := vi.Intern("x", IntType())
	b := vi.Intern("x", IntType())
	assert.Same(t, a, b)
}

func TestVariableInterner_RejectsTypeMismatch(t *testing.T) {
	vi := NewVariableInterner()
	vi.Intern("x", IntType())
	assert.Panics(t, func() {
		vi.Intern("x", BoolType())
	})
}

func TestExpr_SizeAndString(t *testing.T) {
	vi := NewVariableInterner()
	x := vi.Intern("x", IntType())
	op := addOp()

	e := NewFunctionApp(op, NewVariable(x), NewConstant(NewIntValue(1)))
	assert.Equal(t, 3, Size(e))
	assert.Equal(t, "(add x 1)", e.String())
}

func TestExpr_Type(t *testing.T) {
	vi := NewVariableInterner()
	x := vi.Intern("x", IntType())
	op := addOp()
	e := NewFunctionApp(op, NewVariable(x), NewConstant(NewIntValue(1)))
	require.Equal(t, IntType(), e.Type())
}

func TestExpr_WithExprID(t *testing.T) {
	e := NewConstant(NewIntValue(1))
	assert.Equal(t, UndefinedExprID, e.ExprID)
	stamped := e.WithExprID(7)
	assert.Equal(t, int64(7), stamped.ExprID)
	assert.Equal(t, UndefinedExprID, e.ExprID, "original expression must stay unmodified")
}
