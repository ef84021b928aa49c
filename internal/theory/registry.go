// Package theory provides the concrete operator instantiators this module
// ships out of the box: the Core Boolean theory, linear integer
// arithmetic, and fixed-width bit-vectors. A synth.Generator's leaves and
// function applications are always built from an OperatorDescriptor minted
// by one of these theories, or by a caller's own instantiator following
// the same contract.
package theory

import "github.com/esolve/esolve/pkg/synth"

// Theory mints OperatorDescriptors by name, the way EUSolver's
// TheoryBVSortInstantiator/TheoryLIASortInstantiator et al. resolve an
// operator token to a concrete descriptor once the grammar's types are
// known.
type Theory interface {
	// Instantiate resolves name to an operator over the given argument
	// types, or reports ok == false if this theory has no such operator.
	Instantiate(name string, argTypes []synth.Type) (op *synth.OperatorDescriptor, ok bool)
}

// Registry composes several theories, trying each in order. Two theories
// registered with an overlapping operator name is a configuration error
// the caller must avoid; Registry does not detect it, since it always
// returns the first match.
type Registry struct {
	theories []Theory
}

// NewRegistry creates a registry over the given theories, consulted in
// order.
func NewRegistry(theories ...Theory) *Registry {
	return &Registry{theories: theories}
}

// Instantiate resolves name against every registered theory in turn.
func (r *Registry) Instantiate(name string, argTypes []synth.Type) (*synth.OperatorDescriptor, bool) {
	for _, t := range r.theories {
		if op, ok := t.Instantiate(name, argTypes); ok {
			return op, true
		}
	}
	return nil, false
}

// Default builds the registry this module's CLI harness and tests use:
// Core plus LIA plus bit-vector, in that order.
func Default() *Registry {
	return NewRegistry(NewCoreTheory(), NewLIATheory(), NewBitVectorTheory())
}
