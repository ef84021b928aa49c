package smt

import "github.com/esolve/esolve/pkg/synth"

// evalTerm interprets an SMTTerm tree under a concrete variable assignment.
// It understands every operator name this module's theory package emits
// (internal/theory/core.go, lia.go, bitvector.go); an unrecognized
// operator name is a configuration error between the two packages and is
// reported as a synth.UnhandledCaseError rather than silently treated as
// unsatisfiable.
func evalTerm(t synth.SMTTerm, assignment map[string]synth.Value) (synth.Value, error) {
	if v, ok := t.IsLiteral(); ok {
		return v, nil
	}
	if name, ok := t.IsVarRef(); ok {
		v, ok := assignment[name]
		if !ok {
			return synth.Value{}, &synth.EvalError{Reason: "unbound SMT variable " + name}
		}
		return v, nil
	}

	args := make([]synth.Value, len(t.Args))
	for i, a := range t.Args {
		v, err := evalTerm(a, assignment)
		if err != nil {
			return synth.Value{}, err
		}
		args[i] = v
	}

	switch t.Op {
	case "not":
		return synth.NewBoolValue(!args[0].Bool()), nil
	case "and":
		return synth.NewBoolValue(args[0].Bool() && args[1].Bool()), nil
	case "or":
		return synth.NewBoolValue(args[0].Bool() || args[1].Bool()), nil
	case "eq":
		return synth.NewBoolValue(args[0].Equal(args[1])), nil
	case "ite":
		if args[0].Bool() {
			return args[1], nil
		}
		return args[2], nil

	case "add":
		return synth.NewIntValue(args[0].Int() + args[1].Int()), nil
	case "sub":
		return synth.NewIntValue(args[0].Int() - args[1].Int()), nil
	case "mul":
		return synth.NewIntValue(args[0].Int() * args[1].Int()), nil
	case "le":
		return synth.NewBoolValue(args[0].Int() <= args[1].Int()), nil
	case "ge":
		return synth.NewBoolValue(args[0].Int() >= args[1].Int()), nil
	case "lt":
		return synth.NewBoolValue(args[0].Int() < args[1].Int()), nil
	case "gt":
		return synth.NewBoolValue(args[0].Int() > args[1].Int()), nil

	case "bvadd":
		return synth.NewBitVecValue(args[0].Type.Width, args[0].BitVec()+args[1].BitVec()), nil
	case "bvsub":
		return synth.NewBitVecValue(args[0].Type.Width, args[0].BitVec()-args[1].BitVec()), nil
	case "bvand":
		return synth.NewBitVecValue(args[0].Type.Width, args[0].BitVec()&args[1].BitVec()), nil
	case "bvor":
		return synth.NewBitVecValue(args[0].Type.Width, args[0].BitVec()|args[1].BitVec()), nil
	case "bvnot":
		return synth.NewBitVecValue(args[0].Type.Width, ^args[0].BitVec()), nil
	case "bvult":
		return synth.NewBoolValue(args[0].BitVec() < args[1].BitVec()), nil
	case "bvule":
		return synth.NewBoolValue(args[0].BitVec() <= args[1].BitVec()), nil

	default:
		return synth.Value{}, &synth.UnhandledCaseError{Detail: "boundeddomain: unknown SMT operator " + t.Op}
	}
}
