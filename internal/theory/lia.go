package theory

import "github.com/esolve/esolve/pkg/synth"

// LIATheory provides linear integer arithmetic: addition, subtraction, and
// the four strict/non-strict orderings, all over synth.IntType.
type LIATheory struct{}

// NewLIATheory creates the LIA theory.
func NewLIATheory() *LIATheory { return &LIATheory{} }

func (LIATheory) Instantiate(name string, argTypes []synth.Type) (*synth.OperatorDescriptor, bool) {
	if !allOfKind(argTypes, 2, synth.IntKind) {
		return nil, false
	}
	switch name {
	case "add":
		return intBinOp("add", func(a, b int64) int64 { return a + b }), true
	case "sub":
		return intBinOp("sub", func(a, b int64) int64 { return a - b }), true
	case "le":
		return intCmpOp("le", func(a, b int64) bool { return a <= b }), true
	case "ge":
		return intCmpOp("ge", func(a, b int64) bool { return a >= b }), true
	case "lt":
		return intCmpOp("lt", func(a, b int64) bool { return a < b }), true
	case "gt":
		return intCmpOp("gt", func(a, b int64) bool { return a > b }), true
	default:
		return nil, false
	}
}

// NewMulByConst instantiates the one LIA operator that is not fixed-arity
// over two Ints: multiplication by a grammar-declared integer constant,
// kept linear by construction rather than by a runtime side condition.
func NewMulByConst(k int64) *synth.OperatorDescriptor {
	return &synth.OperatorDescriptor{
		Name:      "mul-by-const",
		ArgTypes:  []synth.Type{synth.IntType()},
		RangeType: synth.IntType(),
		Evaluate: func(args []synth.Value) (synth.Value, error) {
			return synth.NewIntValue(args[0].Int() * k), nil
		},
		SMTEncode: func(args []synth.SMTTerm) synth.SMTTerm {
			return synth.AppTerm("mul", args[0], synth.LiteralTerm(synth.NewIntValue(k)))
		},
	}
}

func intBinOp(name string, f func(a, b int64) int64) *synth.OperatorDescriptor {
	return &synth.OperatorDescriptor{
		Name:      name,
		ArgTypes:  []synth.Type{synth.IntType(), synth.IntType()},
		RangeType: synth.IntType(),
		Evaluate: func(args []synth.Value) (synth.Value, error) {
			return synth.NewIntValue(f(args[0].Int(), args[1].Int())), nil
		},
		SMTEncode: func(args []synth.SMTTerm) synth.SMTTerm {
			return synth.AppTerm(name, args[0], args[1])
		},
	}
}

func intCmpOp(name string, f func(a, b int64) bool) *synth.OperatorDescriptor {
	return &synth.OperatorDescriptor{
		Name:      name,
		ArgTypes:  []synth.Type{synth.IntType(), synth.IntType()},
		RangeType: synth.BoolType(),
		Evaluate: func(args []synth.Value) (synth.Value, error) {
			return synth.NewBoolValue(f(args[0].Int(), args[1].Int())), nil
		},
		SMTEncode: func(args []synth.SMTTerm) synth.SMTTerm {
			return synth.AppTerm(name, args[0], args[1])
		},
	}
}
