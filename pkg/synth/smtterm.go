package synth

// SMTTerm is a small symbolic-expression value built by an operator's
// SMTEncode callback. It is the wire format this package hands to the SMT
// gateway's backend — the backend decides what, if anything, it means.
type SMTTerm struct {
	Op      string
	Args    []SMTTerm
	isConst bool
	Const   Value
	isVar   bool
	VarName string
}

// LiteralTerm wraps a constant value as a leaf SMT term.
func LiteralTerm(v Value) SMTTerm { return SMTTerm{isConst: true, Const: v} }

// VarTerm references a named free variable.
func VarTerm(name string) SMTTerm { return SMTTerm{isVar: true, VarName: name} }

// AppTerm builds an operator application.
func AppTerm(op string, args ...SMTTerm) SMTTerm { return SMTTerm{Op: op, Args: args} }

// IsLiteral reports whether the term is a literal leaf, and if so returns
// its value.
func (t SMTTerm) IsLiteral() (Value, bool) { return t.Const, t.isConst }

// IsVarRef reports whether the term is a free-variable reference, and if
// so returns the variable's name.
func (t SMTTerm) IsVarRef() (string, bool) { return t.VarName, t.isVar }

// EncodeExpr walks an already-substituted (synthesis-function-free)
// expression tree into its SMTTerm form, by delegating to each operator's
// SMTEncode callback. Encoding a FormalParameter or an unsubstituted
// synthesis-target FunctionApp is a caller error: both must be eliminated
// by SubstituteSynthFunction first.
func EncodeExpr(e *Expr) SMTTerm {
	switch e.Kind {
	case ConstantExpr:
		return LiteralTerm(e.Const)
	case VariableExpr:
		return VarTerm(e.Var.Name)
	case FormalParameterExpr:
		panic(&UnhandledCaseError{Detail: "EncodeExpr: unsubstituted formal parameter"})
	case FunctionAppExpr:
		if e.Op.IsSynthesisTarget {
			panic(&UnhandledCaseError{Detail: "EncodeExpr: unsubstituted synthesis-target application"})
		}
		args := make([]SMTTerm, len(e.Children))
		for i, c := range e.Children {
			args[i] = EncodeExpr(c)
		}
		return e.Op.SMTEncode(args)
	default:
		panic(&UnhandledCaseError{Detail: "EncodeExpr: unknown expression kind"})
	}
}

// SubstituteSynthFunction rewrites e, replacing every FunctionApp rooted at
// the synthesis target named synthFun with candidate's body, binding each
// FormalParameter(k) in candidate to the k-th argument expression of the
// matched call. This is the structural substitution spec.md's SMT gateway
// performs before encoding; it is distinct from (and independent of) the
// positional-valuation shortcut EvaluationContext.Evaluate uses for the
// fast signature-computation path.
func SubstituteSynthFunction(e *Expr, synthFun string, candidate *Expr) *Expr {
	switch e.Kind {
	case FunctionAppExpr:
		newChildren := make([]*Expr, len(e.Children))
		for i, c := range e.Children {
			newChildren[i] = SubstituteSynthFunction(c, synthFun, candidate)
		}
		if e.Op.IsSynthesisTarget && e.Op.Name == synthFun {
			return bindFormalParameters(candidate, newChildren)
		}
		return NewFunctionApp(e.Op, newChildren...)
	default:
		return e
	}
}

func bindFormalParameters(body *Expr, args []*Expr) *Expr {
	switch body.Kind {
	case FormalParameterExpr:
		return args[body.Position]
	case FunctionAppExpr:
		newChildren := make([]*Expr, len(body.Children))
		for i, c := range body.Children {
			newChildren[i] = bindFormalParameters(c, args)
		}
		return NewFunctionApp(body.Op, newChildren...)
	default:
		return body
	}
}
