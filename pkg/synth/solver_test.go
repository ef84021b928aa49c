package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esolve/esolve/internal/smt"
	"github.com/esolve/esolve/internal/theory"
)

// TestSolver_SynthesizesMaxOfTwo is an end-to-end CEGIS scenario: no term
// alone computes max(x, y), so the solver must fall back to unification,
// guarded by a "ge" predicate, and the gateway's counterexample loop must
// converge within the configured bound. The specification is phrased as a
// genuine CEGIS-style property — f(x,y) is at least x, at least y, and
// equal to one of them — rather than as an equation to a pre-computed
// closed form, so this also proves term signatures are scored by
// substituting the candidate into the full specification.
func TestSolver_SynthesizesMaxOfTwo(t *testing.T) {
	reg := theory.Default()
	vi := NewVariableInterner()
	x := vi.Intern("x", IntType())
	y := vi.Intern("y", IntType())
	x.EvalOffset, y.EvalOffset = 0, 1

	ge, ok := reg.Instantiate("ge", []Type{IntType(), IntType()})
	require.True(t, ok)
	ite, ok := reg.Instantiate("ite", []Type{BoolType(), IntType(), IntType()})
	require.True(t, ok)
	eq, ok := reg.Instantiate("eq", []Type{IntType(), IntType()})
	require.True(t, ok)
	and, ok := reg.Instantiate("and", []Type{BoolType(), BoolType()})
	require.True(t, ok)
	or, ok := reg.Instantiate("or", []Type{BoolType(), BoolType()})
	require.True(t, ok)

	synthOp := NewSynthesisTarget("f", []Type{IntType(), IntType()}, IntType())
	fxy := func() *Expr { return NewFunctionApp(synthOp, NewVariable(x), NewVariable(y)) }
	spec := NewFunctionApp(and,
		NewFunctionApp(ge, fxy(), NewVariable(x)),
		NewFunctionApp(and,
			NewFunctionApp(ge, fxy(), NewVariable(y)),
			NewFunctionApp(or,
				NewFunctionApp(eq, fxy(), NewVariable(x)),
				NewFunctionApp(eq, fxy(), NewVariable(y)),
			),
		),
	)

	leaves := []*Expr{NewVariable(x), NewVariable(y)}
	termGen := NewLeafGenerator(IntType(), leaves)
	predGen := NewFunctionalGenerator(ge, []Generator{
		NewLeafGenerator(IntType(), leaves),
		NewLeafGenerator(IntType(), leaves),
	})

	backend := smt.NewBackend(func(name string, t Type) smt.Domain {
		return smt.Domain{Type: t, Low: -8, High: 8}
	})
	gw := NewGateway(backend, spec, "f", []*VarDescriptor{x, y})

	solver := NewSolver(termGen, predGen, spec, "f", gw, ite, SolverConfig{
		MaxTermSize:   3,
		MaxPredSize:   3,
		MaxIterations: 30,
	}, nil)

	result, err := solver.Solve()
	require.NoError(t, err)
	require.True(t, result.Found)

	ctx := NewEvaluationContext()
	for x0 := int64(-8); x0 <= 8; x0 += 3 {
		for y0 := int64(-8); y0 <= 8; y0 += 3 {
			ctx.SetValuationMap(Point{NewIntValue(x0), NewIntValue(y0)})
			v, err := Evaluate(result.Expr, ctx)
			require.NoError(t, err)
			want := x0
			if y0 > want {
				want = y0
			}
			assert.Equal(t, want, v.Int(), "x=%d y=%d", x0, y0)
		}
	}
}

// TestSolver_FindsSingleTermDirectly exercises the no-unification path:
// the identity function needs no predicate at all, just the term x.
func TestSolver_FindsSingleTermDirectly(t *testing.T) {
	reg := theory.Default()
	vi := NewVariableInterner()
	x := vi.Intern("x", IntType())
	x.EvalOffset = 0

	eq, ok := reg.Instantiate("eq", []Type{IntType(), IntType()})
	require.True(t, ok)
	ite, ok := reg.Instantiate("ite", []Type{BoolType(), IntType(), IntType()})
	require.True(t, ok)

	synthOp := NewSynthesisTarget("f", []Type{IntType()}, IntType())
	spec := NewFunctionApp(eq, NewFunctionApp(synthOp, NewVariable(x)), NewVariable(x))

	termGen := NewLeafGenerator(IntType(), []*Expr{NewVariable(x)})
	predGen := NewLeafGenerator(BoolType(), nil)

	backend := smt.NewBackend(func(name string, t Type) smt.Domain {
		return smt.Domain{Type: t, Low: -4, High: 4}
	})
	gw := NewGateway(backend, spec, "f", []*VarDescriptor{x})

	solver := NewSolver(termGen, predGen, spec, "f", gw, ite, SolverConfig{
		MaxTermSize:   2,
		MaxPredSize:   1,
		MaxIterations: 10,
	}, nil)

	result, err := solver.Solve()
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, "x", result.Expr.String())
}

// TestSolver_ExhaustsWhenNoPredicateSeparates confirms the solver reports
// Found == false, rather than erroring, when term enumeration has already
// produced two terms that together cover every known point but the
// predicate grammar offers nothing able to separate them. Both the term
// and predicate factories are seeded directly (valid since this test lives
// in-package) so the scenario is reached deterministically in the very
// first CEGIS round, without depending on the gateway's counterexample
// search order. The specification is the same max(x, y) property used by
// TestSolver_SynthesizesMaxOfTwo: with an empty predicate grammar, "x" and
// "y" each cover exactly one of the two seeded points and nothing can
// combine them into a single expression.
func TestSolver_ExhaustsWhenNoPredicateSeparates(t *testing.T) {
	reg := theory.Default()
	vi := NewVariableInterner()
	x := vi.Intern("x", IntType())
	y := vi.Intern("y", IntType())
	x.EvalOffset, y.EvalOffset = 0, 1

	ge, ok := reg.Instantiate("ge", []Type{IntType(), IntType()})
	require.True(t, ok)
	eq, ok := reg.Instantiate("eq", []Type{IntType(), IntType()})
	require.True(t, ok)
	and, ok := reg.Instantiate("and", []Type{BoolType(), BoolType()})
	require.True(t, ok)
	or, ok := reg.Instantiate("or", []Type{BoolType(), BoolType()})
	require.True(t, ok)
	ite, ok := reg.Instantiate("ite", []Type{BoolType(), IntType(), IntType()})
	require.True(t, ok)

	synthOp := NewSynthesisTarget("f", []Type{IntType(), IntType()}, IntType())
	fxy := func() *Expr { return NewFunctionApp(synthOp, NewVariable(x), NewVariable(y)) }
	spec := NewFunctionApp(and,
		NewFunctionApp(ge, fxy(), NewVariable(x)),
		NewFunctionApp(and,
			NewFunctionApp(ge, fxy(), NewVariable(y)),
			NewFunctionApp(or,
				NewFunctionApp(eq, fxy(), NewVariable(x)),
				NewFunctionApp(eq, fxy(), NewVariable(y)),
			),
		),
	)

	termGen := NewLeafGenerator(IntType(), []*Expr{NewVariable(x), NewVariable(y)})
	predGen := NewLeafGenerator(BoolType(), nil) // no predicates to split on

	backend := smt.NewBackend(func(name string, t Type) smt.Domain {
		return smt.Domain{Type: t, Low: -2, High: 2}
	})
	gw := NewGateway(backend, spec, "f", []*VarDescriptor{x, y})

	solver := NewSolver(termGen, predGen, spec, "f", gw, ite, SolverConfig{
		MaxTermSize:   1,
		MaxPredSize:   1,
		MaxIterations: 5,
	}, nil)

	// Seed two points where x and y differ, so neither leaf term alone
	// satisfies the specification at both: "x" holds at (1,0) but not
	// (0,1), and vice versa for "y".
	solver.termFactory.AddPoint(Point{NewIntValue(1), NewIntValue(0)})
	solver.termFactory.AddPoint(Point{NewIntValue(0), NewIntValue(1)})
	solver.predFactory.AddPoint(Point{NewIntValue(1), NewIntValue(0)})
	solver.predFactory.AddPoint(Point{NewIntValue(0), NewIntValue(1)})

	result, err := solver.Solve()
	require.NoError(t, err)
	assert.False(t, result.Found)
}
