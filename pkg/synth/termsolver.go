package synth

import "sort"

// SigTermPair couples a signature with the (lowest-size, lowest-enumeration-
// order) term that produced it. TermSolver keeps exactly one SigTermPair per
// distinct signature: any later term with an equal signature is behaviorally
// redundant given the current point set and is discarded.
type SigTermPair struct {
	Sig  *Signature
	Term *Expr
}

// TermSolverResult is the outcome of one enumeration pass: either the
// distinct-signature term set whose union of signatures covers every known
// point, or — when the point universe is empty — a single vacuous term,
// since every term trivially agrees with an empty specification and
// signature-based pruning has nothing to discriminate on. Vacuous mirrors
// the reference implementation's sentinel "no point separates these terms"
// marker; it is represented as an explicit flag rather than a nullable map
// key because Go map keys must be comparable and Signature is not.
// Exhausted reports that maxSize was reached without the retained terms'
// signatures jointly covering every point, mirroring the reference
// TermSolver.solve() returning None: this is a hard failure for the
// current CEGIS iteration, not a partial result to unify further.
type TermSolverResult struct {
	Terms       []SigTermPair
	Vacuous     bool
	VacuousTerm *Expr
	Exhausted   bool
}

// TermSolver enumerates terms of a Generator in increasing structural size,
// keeping one representative per distinct signature over the current point
// set, until either a term's signature is full (an exact solution to the
// specification has been found outright, with no need for the Unifier) or a
// caller-supplied size bound is reached.
type TermSolver struct {
	gen     Generator
	factory *SignatureFactory
	nextID  int64

	bySig map[string]SigTermPair
}

// NewTermSolver creates a solver enumerating gen's terms, scored against
// factory's current point set.
func NewTermSolver(gen Generator, factory *SignatureFactory) *TermSolver {
	return &TermSolver{gen: gen, factory: factory, bySig: make(map[string]SigTermPair)}
}

// Solve enumerates terms of increasing size up to and including maxSize,
// returning as soon as a single term's signature is full (see IsFull), or
// as soon as the union of every retained term's signature covers every
// known point (the accumulated set is then sufficient for the Unifier to
// build a decision tree over). If maxSize is exhausted before either of
// those holds, Solve reports Exhausted: the reference solver's "no
// sufficient set of terms" failure, which its CEGIS driver treats as a
// hard stop rather than something to unify further.
//
// If the point universe is currently empty, Solve returns immediately with
// a vacuous result built from the first size-1 term the generator produces,
// without enumerating further: an empty specification cannot discriminate
// between any two terms.
func (ts *TermSolver) Solve(maxSize int) (*TermSolverResult, error) {
	if ts.factory.NumPoints() == 0 {
		for e := range ts.gen.Generate(1) {
			return &TermSolverResult{Vacuous: true, VacuousTerm: e}, nil
		}
		return &TermSolverResult{Vacuous: true, VacuousTerm: nil}, nil
	}

	covered := NewSignature(uint(ts.factory.NumPoints()))
	for _, pair := range ts.bySig {
		covered.Or(pair.Sig)
	}

	for size := 1; size <= maxSize; size++ {
		full, err := ts.extendBySize(size, covered)
		if err != nil {
			return nil, err
		}
		if full != nil {
			return &TermSolverResult{Terms: []SigTermPair{*full}}, nil
		}
		if covered.IsFull() {
			return &TermSolverResult{Terms: ts.snapshot()}, nil
		}
	}
	return &TermSolverResult{Exhausted: true}, nil
}

// ExtendPoints re-scores every previously retained representative term
// against factory's now-larger point set, incrementally extending each
// cached signature rather than recomputing it. Callers invoke this after a
// counterexample has been added to the factory's point universe, before
// resuming Solve at a fresh size bound.
func (ts *TermSolver) ExtendPoints() error {
	for key, pair := range ts.bySig {
		sig, err := ts.factory.Extend(pair.Term, pair.Sig)
		if err != nil {
			return err
		}
		delete(ts.bySig, key)
		ts.bySig[sig.Key()] = SigTermPair{Sig: sig, Term: pair.Term}
	}
	return nil
}

func (ts *TermSolver) extendBySize(size int, covered *Signature) (*SigTermPair, error) {
	for e := range ts.gen.Generate(size) {
		stamped := e.WithExprID(ts.nextID)
		ts.nextID++
		sig, err := ts.factory.Compute(stamped)
		if err != nil {
			return nil, err
		}
		if sig.IsFull() {
			return &SigTermPair{Sig: sig, Term: stamped}, nil
		}
		if sig.IsEmpty() {
			continue
		}
		key := sig.Key()
		if _, dup := ts.bySig[key]; !dup {
			ts.bySig[key] = SigTermPair{Sig: sig, Term: stamped}
			covered.Or(sig)
		}
	}
	return nil, nil
}

// snapshot returns the retained pairs in enumeration order (ascending
// ExprID), so the Unifier sees the same term order on every run.
func (ts *TermSolver) snapshot() []SigTermPair {
	out := make([]SigTermPair, 0, len(ts.bySig))
	for _, p := range ts.bySig {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Term.ExprID < out[j].Term.ExprID })
	return out
}
