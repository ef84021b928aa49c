package theory

import "github.com/esolve/esolve/pkg/synth"

// BitVectorTheory provides fixed-width bit-vector arithmetic, bitwise
// operators, and unsigned ordering. Every operator is width-checked at
// instantiation time: bvadd(BitVec(8), BitVec(8)) and bvadd(BitVec(16),
// BitVec(16)) are distinct descriptors, never a single width-polymorphic
// one, since Evaluate must mask results to a fixed width.
type BitVectorTheory struct{}

// NewBitVectorTheory creates the bit-vector theory.
func NewBitVectorTheory() *BitVectorTheory { return &BitVectorTheory{} }

func (BitVectorTheory) Instantiate(name string, argTypes []synth.Type) (*synth.OperatorDescriptor, bool) {
	if len(argTypes) != 2 || argTypes[0].Kind != synth.BitVecKind || !argTypes[0].Equal(argTypes[1]) {
		if !(name == "bvnot" && len(argTypes) == 1 && argTypes[0].Kind == synth.BitVecKind) {
			return nil, false
		}
	}

	if name == "bvnot" {
		w := argTypes[0].Width
		return &synth.OperatorDescriptor{
			Name:      "bvnot",
			ArgTypes:  []synth.Type{synth.BitVecType(w)},
			RangeType: synth.BitVecType(w),
			Evaluate: func(args []synth.Value) (synth.Value, error) {
				return synth.NewBitVecValue(w, ^args[0].BitVec()), nil
			},
			SMTEncode: func(args []synth.SMTTerm) synth.SMTTerm {
				return synth.AppTerm("bvnot", args[0])
			},
		}, true
	}

	w := argTypes[0].Width
	switch name {
	case "bvadd":
		return bvBinOp(w, "bvadd", func(a, b uint64) uint64 { return a + b }), true
	case "bvsub":
		return bvBinOp(w, "bvsub", func(a, b uint64) uint64 { return a - b }), true
	case "bvand":
		return bvBinOp(w, "bvand", func(a, b uint64) uint64 { return a & b }), true
	case "bvor":
		return bvBinOp(w, "bvor", func(a, b uint64) uint64 { return a | b }), true
	case "bvult":
		return bvCmpOp(w, "bvult", func(a, b uint64) bool { return a < b }), true
	case "bvule":
		return bvCmpOp(w, "bvule", func(a, b uint64) bool { return a <= b }), true
	default:
		return nil, false
	}
}

func bvBinOp(w int, name string, f func(a, b uint64) uint64) *synth.OperatorDescriptor {
	t := synth.BitVecType(w)
	return &synth.OperatorDescriptor{
		Name:      name,
		ArgTypes:  []synth.Type{t, t},
		RangeType: t,
		Evaluate: func(args []synth.Value) (synth.Value, error) {
			return synth.NewBitVecValue(w, f(args[0].BitVec(), args[1].BitVec())), nil
		},
		SMTEncode: func(args []synth.SMTTerm) synth.SMTTerm {
			return synth.AppTerm(name, args[0], args[1])
		},
	}
}

func bvCmpOp(w int, name string, f func(a, b uint64) bool) *synth.OperatorDescriptor {
	t := synth.BitVecType(w)
	return &synth.OperatorDescriptor{
		Name:      name,
		ArgTypes:  []synth.Type{t, t},
		RangeType: synth.BoolType(),
		Evaluate: func(args []synth.Value) (synth.Value, error) {
			return synth.NewBoolValue(f(args[0].BitVec(), args[1].BitVec())), nil
		},
		SMTEncode: func(args []synth.SMTTerm) synth.SMTTerm {
			return synth.AppTerm(name, args[0], args[1])
		},
	}
}
