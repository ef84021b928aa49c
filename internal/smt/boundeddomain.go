// Package smt provides a concrete, dependency-free synth.Backend: a
// brute-force satisfiability oracle over a configured bounded domain per
// variable. It is not a general SMT solver — it is the "oracle exposing
// check/model" synth.Gateway requires, concretely realized for the bounded
// instances this module's tests and CLI harness exercise.
package smt

import "github.com/esolve/esolve/pkg/synth"

// Domain describes the finite set of values boundeddomain.Backend tries
// for one free variable: either an inclusive integer range [Low, High], or
// (for a Boolean or bit-vector variable) its entire natural domain.
type Domain struct {
	Type synth.Type
	Low  int64 // inclusive, IntKind only
	High int64 // inclusive, IntKind only
}

func (d Domain) values() []synth.Value {
	switch d.Type.Kind {
	case synth.BoolKind:
		return []synth.Value{synth.NewBoolValue(false), synth.NewBoolValue(true)}
	case synth.IntKind:
		out := make([]synth.Value, 0, d.High-d.Low+1)
		for i := d.Low; i <= d.High; i++ {
			out = append(out, synth.NewIntValue(i))
		}
		return out
	case synth.BitVecKind:
		n := uint64(1) << uint(d.Type.Width)
		out := make([]synth.Value, 0, n)
		for i := uint64(0); i < n; i++ {
			out = append(out, synth.NewBitVecValue(d.Type.Width, i))
		}
		return out
	default:
		return nil
	}
}

// Backend is a bounded-domain brute-force synth.Backend: Check tries every
// combination of declared variables' domain values until one satisfies
// every asserted term, or reports unsatisfiable once the whole space is
// exhausted.
type Backend struct {
	domainFor func(name string, t synth.Type) Domain

	domains map[string]Domain
	order   []string
	terms   []synth.SMTTerm
	model   map[string]synth.Value
}

// NewBackend creates a backend. domainFor resolves a declared variable's
// name to the Domain it should be searched over; it is consulted lazily in
// DeclareVariable, since the gateway declares variables one at a time per
// query.
func NewBackend(domainFor func(name string, t synth.Type) Domain) *Backend {
	return &Backend{domainFor: domainFor, domains: make(map[string]Domain)}
}

// DeclareVariable registers name with the domain resolver supplied at
// construction time.
func (b *Backend) DeclareVariable(name string, t synth.Type) {
	b.domains[name] = b.domainFor(name, t)
	b.order = append(b.order, name)
}

// Reset clears assertions, declared variables, and any model from a
// previous query.
func (b *Backend) Reset() {
	b.domains = make(map[string]Domain)
	b.order = nil
	b.terms = nil
	b.model = nil
}

// Assert adds a Boolean-typed SMT term as a hard constraint.
func (b *Backend) Assert(term synth.SMTTerm) {
	b.terms = append(b.terms, term)
}

// Check searches the cross product of every declared variable's domain for
// an assignment satisfying every asserted term.
func (b *Backend) Check() (bool, error) {
	domains := make([][]synth.Value, len(b.order))
	for i, name := range b.order {
		domains[i] = b.domains[name].values()
	}
	assignment := make(map[string]synth.Value, len(b.order))
	found, err := b.search(0, domains, assignment)
	if err != nil {
		return false, err
	}
	if found {
		b.model = assignment
		return true, nil
	}
	return false, nil
}

func (b *Backend) search(i int, domains [][]synth.Value, assignment map[string]synth.Value) (bool, error) {
	if i == len(b.order) {
		ok, err := b.satisfiesAll(assignment)
		return ok, err
	}
	name := b.order[i]
	for _, v := range domains[i] {
		assignment[name] = v
		ok, err := b.search(i+1, domains, assignment)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	delete(assignment, name)
	return false, nil
}

func (b *Backend) satisfiesAll(assignment map[string]synth.Value) (bool, error) {
	for _, t := range b.terms {
		v, err := evalTerm(t, assignment)
		if err != nil {
			return false, err
		}
		if v.Type.Kind != synth.BoolKind || !v.Bool() {
			return false, nil
		}
	}
	return true, nil
}

// Model returns the satisfying assignment found by the last successful
// Check, in variable declaration order.
func (b *Backend) Model() ([]synth.Value, error) {
	if b.model == nil {
		return nil, &synth.ArgumentError{Detail: "boundeddomain: Model called without a satisfied Check"}
	}
	out := make([]synth.Value, len(b.order))
	for i, name := range b.order {
		out[i] = b.model[name]
	}
	return out, nil
}
