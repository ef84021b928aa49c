package synth

// OperatorDescriptor is the operator/grammar-instantiator collaborator
// contract: from this package's perspective an operator is opaque beyond
// its name, typing, and the two callbacks. Concrete theories (integer,
// Boolean, bit-vector) live outside this package and construct descriptors
// through their own instantiators (see internal/theory).
//
// Operators are compared by reference, not by name/type equality: two
// independently instantiated "add" descriptors with identical types may or
// may not be the same object, depending on the instantiator's own caching
// policy. This package never relies on operator equality beyond identity.
type OperatorDescriptor struct {
	Name      string
	ArgTypes  []Type
	RangeType Type
	Evaluate  func(args []Value) (Value, error)
	SMTEncode func(args []SMTTerm) SMTTerm

	// IsSynthesisTarget marks the distinguished "unknown function" f this
	// synthesizer is solving for. A FunctionApp rooted at such an operator
	// has no native Evaluate/SMTEncode of its own; its value comes from
	// whatever candidate expression is currently bound as the
	// interpretation of Name (see EvaluationContext.SetInterpretation and
	// SubstituteSynthFunction).
	IsSynthesisTarget bool
}

// NewSynthesisTarget describes the function being synthesized: it has a
// name and a type signature but no evaluator of its own.
func NewSynthesisTarget(name string, argTypes []Type, rangeType Type) *OperatorDescriptor {
	return &OperatorDescriptor{
		Name:              name,
		ArgTypes:          argTypes,
		RangeType:         rangeType,
		IsSynthesisTarget: true,
	}
}
