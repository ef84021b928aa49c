package synth

// EvaluationContext is the stateful evaluator: a valuation vector indexed
// by variable offset, and an interpretation map from synthesis-function
// name to whichever candidate body is currently being tried.
//
// FormalParameter expressions read the valuation vector directly at their
// declared position rather than through a separate argument frame: the
// synthesis function is always applied to the universally quantified
// variables in their declared order, so a formal parameter's position and
// the corresponding variable's eval offset coincide. This is the "same
// offset space" EvaluationContext's design note calls out.
type EvaluationContext struct {
	valuation []Value
	interp    map[string]*Expr
}

// NewEvaluationContext creates an empty evaluation context.
func NewEvaluationContext() *EvaluationContext {
	return &EvaluationContext{interp: make(map[string]*Expr)}
}

// SetValuationMap installs the point currently being evaluated.
func (c *EvaluationContext) SetValuationMap(point Point) {
	c.valuation = point
}

// SetInterpretation binds synthFun to the candidate body currently being
// tried.
func (c *EvaluationContext) SetInterpretation(synthFun string, body *Expr) {
	c.interp[synthFun] = body
}

// Evaluate evaluates expr under ctx's current valuation and interpretation.
// An EvalError is returned for an unbound variable/parameter, a missing
// interpretation, or an operator reporting an undefined result; callers
// treat this as "this point's signature bit is off", never as fatal.
func Evaluate(expr *Expr, ctx *EvaluationContext) (Value, error) {
	switch expr.Kind {
	case ConstantExpr:
		return expr.Const, nil

	case VariableExpr:
		off := expr.Var.EvalOffset
		if off == EvalOffsetUndefined || off < 0 || off >= len(ctx.valuation) {
			return Value{}, &EvalError{Reason: "unbound variable " + expr.Var.Name}
		}
		return ctx.valuation[off], nil

	case FormalParameterExpr:
		if expr.Position < 0 || expr.Position >= len(ctx.valuation) {
			return Value{}, &EvalError{Reason: "formal parameter position out of range"}
		}
		return ctx.valuation[expr.Position], nil

	case FunctionAppExpr:
		if expr.Op.IsSynthesisTarget {
			body, ok := ctx.interp[expr.Op.Name]
			if !ok {
				return Value{}, &EvalError{Reason: "no interpretation bound for " + expr.Op.Name}
			}
			return Evaluate(body, ctx)
		}
		args := make([]Value, len(expr.Children))
		for i, c := range expr.Children {
			v, err := Evaluate(c, ctx)
			if err != nil {
				return Value{}, err
			}
			args[i] = v
		}
		v, err := expr.Op.Evaluate(args)
		if err != nil {
			return Value{}, &EvalError{Reason: err.Error()}
		}
		return v, nil

	default:
		return Value{}, &UnhandledCaseError{Detail: "Evaluate: unknown expression kind"}
	}
}

// EvaluateBool is a convenience wrapper for the common case of evaluating a
// Boolean-typed expression (a specification, a clause, a predicate) and
// folding any error into "false", per this package's EvalError policy.
func EvaluateBool(expr *Expr, ctx *EvaluationContext) bool {
	v, err := Evaluate(expr, ctx)
	if err != nil {
		return false
	}
	if v.Type.Kind != BoolKind {
		return false
	}
	return v.Bool()
}
