package synth

// Backend is the SMT gateway's collaborator contract: anything capable of
// accepting a free-variable interpretation, asserting SMT terms, deciding
// satisfiability, and reporting back a model is a valid oracle for this
// package's CEGIS loop. internal/smt ships one concrete, dependency-free
// implementation; production use is expected to swap in a real solver
// binding behind this same interface.
type Backend interface {
	// Reset clears any assertions and interpretations from a previous
	// Check call, starting a fresh query.
	Reset()
	// DeclareVariable registers a free variable the query may refer to.
	DeclareVariable(name string, t Type)
	// Assert adds a Boolean-typed SMT term as a hard constraint.
	Assert(term SMTTerm)
	// Check decides satisfiability of the asserted constraints.
	Check() (sat bool, err error)
	// Model returns, for a satisfiable query, the value bound to each
	// previously declared variable, in the order DeclareVariable was
	// called.
	Model() ([]Value, error)
}

// Gateway mediates between this package's expression/point vocabulary and a
// Backend's SMT-term vocabulary: it substitutes a synthesis candidate into
// the specification, encodes the result, and turns a returned model back
// into a counterexample Point.
type Gateway struct {
	backend   Backend
	spec      *Expr
	synthFun  string
	variables []*VarDescriptor
}

// NewGateway creates a gateway that verifies candidates against spec (an
// expression mentioning the synthesis-target operator named synthFun),
// using vars as the ordered list of universally quantified variables that
// make up a counterexample point.
func NewGateway(backend Backend, spec *Expr, synthFun string, vars []*VarDescriptor) *Gateway {
	return &Gateway{backend: backend, spec: spec, synthFun: synthFun, variables: vars}
}

// Verify asks whether candidate satisfies the specification for every
// assignment of the quantified variables. A false result always carries a
// concrete counterexample point extracted from the backend's model.
func (g *Gateway) Verify(candidate *Expr) (ok bool, counterexample Point, err error) {
	g.backend.Reset()
	for _, v := range g.variables {
		g.backend.DeclareVariable(v.Name, v.Type)
	}

	negatedSpec := SubstituteSynthFunction(g.spec, g.synthFun, candidate)
	term := EncodeExpr(negatedSpec)
	notTerm := negateBoolTerm(term)
	g.backend.Assert(notTerm)

	sat, err := g.backend.Check()
	if err != nil {
		return false, nil, err
	}
	if !sat {
		return true, nil, nil
	}

	model, err := g.backend.Model()
	if err != nil {
		return false, nil, err
	}
	point, err := modelToPoint(model, g.variables)
	if err != nil {
		return false, nil, err
	}
	return false, point, nil
}

func negateBoolTerm(t SMTTerm) SMTTerm {
	return AppTerm("not", t)
}

// modelToPoint converts a backend model (one Value per declared variable,
// in declaration order) into a counterexample Point. Every Type kind this
// package defines, including bit-vector, is handled here: the reference
// implementation's model-to-point conversion left its bit-vector branch
// incomplete, silently dropping width information and miscomputing the
// concrete point whenever the backend returned a bit-vector model value.
// This implementation always carries width through, since a bit-vector
// Value is meaningless without it.
func modelToPoint(model []Value, vars []*VarDescriptor) (Point, error) {
	if len(model) != len(vars) {
		return nil, &ArgumentError{Detail: "model/variable count mismatch"}
	}
	point := make(Point, len(model))
	for i, v := range model {
		switch v.Type.Kind {
		case BoolKind, IntKind:
			point[i] = v
		case BitVecKind:
			if v.Type.Width != vars[i].Type.Width {
				return nil, &ArgumentError{Detail: "bit-vector model width mismatch for " + vars[i].Name}
			}
			point[i] = NewBitVecValue(v.Type.Width, v.BitVec())
		default:
			return nil, &UnhandledCaseError{Detail: "modelToPoint: unknown type kind"}
		}
	}
	return point, nil
}
