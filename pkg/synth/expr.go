package synth

import (
	"strings"
	"sync"
)

// ExprKind tags the four expression variants.
type ExprKind int

const (
	VariableExpr ExprKind = iota
	ConstantExpr
	FormalParameterExpr
	FunctionAppExpr
)

// UndefinedExprID marks an expression that has not yet been stamped with a
// cache key by an enumeration pass.
const UndefinedExprID int64 = -1

// EvalOffsetUndefined is the sentinel value of VarDescriptor.EvalOffset
// before the variable has been registered with an EvaluationContext.
const EvalOffsetUndefined = -1

// VarDescriptor names a universally quantified variable and records where
// it lives in an evaluation context's valuation vector.
type VarDescriptor struct {
	Name       string
	Type       Type
	EvalOffset int
}

// VariableInterner deduplicates variable descriptors by name, the way
// exprs.py's ExprManager interns variable names before minting a variable
// expression.
type VariableInterner struct {
	mu   sync.Mutex
	byID map[string]*VarDescriptor
}

// NewVariableInterner creates an empty interner.
func NewVariableInterner() *VariableInterner {
	return &VariableInterner{byID: make(map[string]*VarDescriptor)}
}

// Intern returns the canonical descriptor for name, creating one of the
// given type the first time name is seen. Re-interning the same name with
// a different type is a caller error and panics with an ArgumentError,
// since it would silently alias two distinct variables.
func (vi *VariableInterner) Intern(name string, t Type) *VarDescriptor {
	vi.mu.Lock()
	defer vi.mu.Unlock()
	if existing, ok := vi.byID[name]; ok {
		if !existing.Type.Equal(t) {
			panic(&ArgumentError{Detail: "variable " + name + " re-interned with a different type"})
		}
		return existing
	}
	desc := &VarDescriptor{Name: name, Type: t, EvalOffset: EvalOffsetUndefined}
	vi.byID[name] = desc
	return desc
}

// Expr is an immutable, tagged-union expression tree node. Variants are
// dispatched by Kind rather than by one Go type per kind: a flat tagged
// union is simpler to reason about here than a type hierarchy, and matches
// this package's grammar nodes (see grammar.go's design note on the same
// choice).
//
// Every Expr carries an ExprID, a cache key stamped by an enumeration pass
// (TermSolver, Unifier). Expressions built directly via the constructors
// below start with ExprID == UndefinedExprID; WithExprID returns a shallow
// copy carrying a fresh id, since expressions are otherwise immutable and
// may be shared.
type Expr struct {
	Kind   ExprKind
	ExprID int64

	// Variable
	Var *VarDescriptor

	// Constant
	Const Value

	// FormalParameter: SynthFun names the function this is an argument
	// placeholder for; Position indexes the shared valuation vector
	// directly (see EvaluationContext.Evaluate) rather than carrying its
	// own eval offset.
	SynthFun  string
	ParamType Type
	Position  int

	// FunctionApp
	Op       *OperatorDescriptor
	Children []*Expr
}

// NewVariable wraps a variable descriptor as an expression.
func NewVariable(desc *VarDescriptor) *Expr {
	return &Expr{Kind: VariableExpr, ExprID: UndefinedExprID, Var: desc}
}

// NewConstant wraps a typed value as an expression.
func NewConstant(v Value) *Expr {
	return &Expr{Kind: ConstantExpr, ExprID: UndefinedExprID, Const: v}
}

// NewFormalParameter builds the placeholder for the argument at position
// pos of synthFun's signature.
func NewFormalParameter(synthFun string, t Type, pos int) *Expr {
	return &Expr{Kind: FormalParameterExpr, ExprID: UndefinedExprID, SynthFun: synthFun, ParamType: t, Position: pos}
}

// NewFunctionApp applies op to the given children.
func NewFunctionApp(op *OperatorDescriptor, children ...*Expr) *Expr {
	return &Expr{Kind: FunctionAppExpr, ExprID: UndefinedExprID, Op: op, Children: children}
}

// WithExprID returns a shallow copy of e stamped with id, used by
// TermSolver and Unifier to number expressions monotonically in
// enumeration order.
func (e *Expr) WithExprID(id int64) *Expr {
	cp := *e
	cp.ExprID = id
	return &cp
}

// Type returns the type of the expression.
func (e *Expr) Type() Type {
	switch e.Kind {
	case VariableExpr:
		return e.Var.Type
	case ConstantExpr:
		return e.Const.Type
	case FormalParameterExpr:
		return e.ParamType
	case FunctionAppExpr:
		return e.Op.RangeType
	default:
		panic(&UnhandledCaseError{Detail: "Expr.Type: unknown expression kind"})
	}
}

// Size returns the structural size of the expression: 1 for a leaf
// (variable, constant, or formal parameter), or 1 plus the sum of the
// children's sizes for a function application.
func Size(e *Expr) int {
	if e.Kind != FunctionAppExpr {
		return 1
	}
	size := 1
	for _, c := range e.Children {
		size += Size(c)
	}
	return size
}

// String renders the expression in prefix notation: "(op c1 c2 ...)" for
// function applications, the variable's name for variables, the value's
// surface form for constants, and a synthetic "argK" for formal parameters.
func (e *Expr) String() string {
	switch e.Kind {
	case VariableExpr:
		return e.Var.Name
	case ConstantExpr:
		return e.Const.String()
	case FormalParameterExpr:
		return "arg" + itoa(e.Position)
	case FunctionAppExpr:
		var b strings.Builder
		b.WriteByte('(')
		b.WriteString(e.Op.Name)
		for _, c := range e.Children {
			b.WriteByte(' ')
			b.WriteString(c.String())
		}
		b.WriteByte(')')
		return b.String()
	default:
		return "<?expr>"
	}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
