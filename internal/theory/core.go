package theory

import "github.com/esolve/esolve/pkg/synth"

// CoreTheory provides the type-agnostic Boolean connectives and the
// polymorphic ite/eq operators every grammar needs regardless of which
// value theory it otherwise draws from.
type CoreTheory struct{}

// NewCoreTheory creates the core theory.
func NewCoreTheory() *CoreTheory { return &CoreTheory{} }

func (CoreTheory) Instantiate(name string, argTypes []synth.Type) (*synth.OperatorDescriptor, bool) {
	switch name {
	case "and":
		if !allOfKind(argTypes, 2, synth.BoolKind) {
			return nil, false
		}
		return boolBinOp("and", func(a, b bool) bool { return a && b }), true

	case "or":
		if !allOfKind(argTypes, 2, synth.BoolKind) {
			return nil, false
		}
		return boolBinOp("or", func(a, b bool) bool { return a || b }), true

	case "not":
		if len(argTypes) != 1 || argTypes[0].Kind != synth.BoolKind {
			return nil, false
		}
		return &synth.OperatorDescriptor{
			Name:      "not",
			ArgTypes:  []synth.Type{synth.BoolType()},
			RangeType: synth.BoolType(),
			Evaluate: func(args []synth.Value) (synth.Value, error) {
				return synth.NewBoolValue(!args[0].Bool()), nil
			},
			SMTEncode: func(args []synth.SMTTerm) synth.SMTTerm {
				return synth.AppTerm("not", args[0])
			},
		}, true

	case "eq":
		if len(argTypes) != 2 || !argTypes[0].Equal(argTypes[1]) {
			return nil, false
		}
		t := argTypes[0]
		return &synth.OperatorDescriptor{
			Name:      "eq",
			ArgTypes:  []synth.Type{t, t},
			RangeType: synth.BoolType(),
			Evaluate: func(args []synth.Value) (synth.Value, error) {
				return synth.NewBoolValue(args[0].Equal(args[1])), nil
			},
			SMTEncode: func(args []synth.SMTTerm) synth.SMTTerm {
				return synth.AppTerm("eq", args[0], args[1])
			},
		}, true

	case "ite":
		if len(argTypes) != 3 || argTypes[0].Kind != synth.BoolKind || !argTypes[1].Equal(argTypes[2]) {
			return nil, false
		}
		t := argTypes[1]
		return &synth.OperatorDescriptor{
			Name:      "ite",
			ArgTypes:  []synth.Type{synth.BoolType(), t, t},
			RangeType: t,
			Evaluate: func(args []synth.Value) (synth.Value, error) {
				if args[0].Bool() {
					return args[1], nil
				}
				return args[2], nil
			},
			SMTEncode: func(args []synth.SMTTerm) synth.SMTTerm {
				return synth.AppTerm("ite", args[0], args[1], args[2])
			},
		}, true

	default:
		return nil, false
	}
}

func allOfKind(argTypes []synth.Type, n int, kind synth.TypeKind) bool {
	if len(argTypes) != n {
		return false
	}
	for _, t := range argTypes {
		if t.Kind != kind {
			return false
		}
	}
	return true
}

func boolBinOp(name string, f func(a, b bool) bool) *synth.OperatorDescriptor {
	return &synth.OperatorDescriptor{
		Name:      name,
		ArgTypes:  []synth.Type{synth.BoolType(), synth.BoolType()},
		RangeType: synth.BoolType(),
		Evaluate: func(args []synth.Value) (synth.Value, error) {
			return synth.NewBoolValue(f(args[0].Bool(), args[1].Bool())), nil
		},
		SMTEncode: func(args []synth.SMTTerm) synth.SMTTerm {
			return synth.AppTerm(name, args[0], args[1])
		},
	}
}
