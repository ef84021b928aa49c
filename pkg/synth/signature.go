package synth

import (
	"strconv"

	"github.com/bits-and-blooms/bitset"
)

// Signature is a behavioral fingerprint of an expression: bit i is set when
// the expression evaluates to true (a predicate signature), or, for a
// value-typed candidate term scored against a full specification, when
// substituting the term as the synthesis function's interpretation makes
// the specification evaluate to true at point i of the solver's growing
// point set.
//
// Signatures back the whole pruning scheme this package is built around: two
// terms with an Equal signature are behaviorally indistinguishable over the
// current point set and only one needs to be kept. The bit width grows
// monotonically as new counterexample points are added; SignatureFactory is
// responsible for producing signatures sized to the current universe and
// for extending previously-computed ones (see Extend) rather than forcing
// every caller to recompute a signature bit by bit from scratch.
type Signature struct {
	bits  *bitset.BitSet
	width uint
}

// NewSignature allocates a zero signature over width points.
func NewSignature(width uint) *Signature {
	return &Signature{bits: bitset.New(width), width: width}
}

// Set marks point i of the signature as satisfied.
func (s *Signature) Set(i uint) { s.bits.Set(i) }

// Clear marks point i of the signature as unsatisfied.
func (s *Signature) Clear(i uint) { s.bits.Clear(i) }

// Test reports whether point i is set.
func (s *Signature) Test(i uint) bool { return s.bits.Test(i) }

// Width returns the number of points this signature covers.
func (s *Signature) Width() uint { return s.width }

// IsEmpty reports whether no bit is set: the expression disagrees with the
// specification (or is false, for a predicate) at every point.
func (s *Signature) IsEmpty() bool { return s.bits.None() }

// IsFull reports whether every bit up to width is set: the expression
// agrees with the specification (or is true, for a predicate) at every
// point currently known.
func (s *Signature) IsFull() bool { return s.bits.Count() == s.width }

// Equal reports whether two signatures of the same width agree on every
// bit. Signatures of differing width are never equal: they were computed
// over different point universes and are not comparable.
func (s *Signature) Equal(other *Signature) bool {
	if other == nil || s.width != other.width {
		return false
	}
	return s.bits.Equal(other.bits)
}

// Extend grows s in place to newWidth, leaving existing bits untouched and
// the newly added bits clear. Extending (rather than recomputing) a
// signature as the point universe grows means a retained term's
// already-settled bits never need to be re-evaluated. Signatures are not
// cached by ExprID: only the representatives TermSolver retains are
// extended, and every other enumerated term is scored again by Compute.
func (s *Signature) Extend(newWidth uint) {
	if newWidth <= s.width {
		return
	}
	grown := bitset.New(newWidth)
	grown.InPlaceUnion(s.bits)
	s.bits = grown
	s.width = newWidth
}

// Or merges other's set bits into s in place. Both must share the same
// width; TermSolver uses this to accumulate the union of every retained
// term's signature as an early-exit test for full coverage.
func (s *Signature) Or(other *Signature) {
	s.bits.InPlaceUnion(other.bits)
}

// Clone returns an independent copy of s.
func (s *Signature) Clone() *Signature {
	return &Signature{bits: s.bits.Clone(), width: s.width}
}

// Key returns a string uniquely identifying the bit pattern, suitable for
// use as a Go map key: bitset.BitSet itself is not comparable, so callers
// that need to deduplicate signatures (TermSolver's "one representative
// term per distinct signature" pruning) key on this instead.
func (s *Signature) Key() string {
	words := s.bits.Bytes()
	buf := make([]byte, 0, len(words)*8+8)
	buf = strconv.AppendUint(buf, uint64(s.width), 16)
	buf = append(buf, ':')
	for _, w := range words {
		buf = strconv.AppendUint(buf, w, 16)
		buf = append(buf, ',')
	}
	return string(buf)
}

// SignatureFactory computes the signature of an expression over the
// current point set, evaluating only the tail of points a cached signature
// does not yet cover.
type SignatureFactory struct {
	ctx    *EvaluationContext
	points []Point
	// synthFun and spec are both zero when signatures are predicate
	// signatures (the expression passed to Compute/Extend IS the thing
	// being tested for truth at each point, as in the Unifier's per-term
	// predicate computation). When spec is non-nil, Compute/Extend instead
	// bind the candidate expression as synthFun's interpretation and
	// evaluate spec itself: this is the TermSolver's term-vs-specification
	// signature, mirroring the reference solver's
	// eval_ctx.set_interpretation_map([term]) followed by evaluating the
	// whole specification at each point.
	synthFun string
	spec     *Expr
}

// NewSignatureFactory creates a factory producing predicate signatures: the
// expression passed to Compute/Extend is itself the Boolean value tested
// for truth at each point. Used for the Unifier's separating-predicate
// signatures.
func NewSignatureFactory(ctx *EvaluationContext) *SignatureFactory {
	return &SignatureFactory{ctx: ctx}
}

// NewTermSignatureFactory creates a factory producing term signatures: at
// each point, the candidate expression passed to Compute/Extend is bound as
// synthFun's interpretation and spec is evaluated against it, so bit i is
// set exactly when the full specification holds with that candidate
// substituted in as the synthesis target. Used for TermSolver's candidate
// scoring.
func NewTermSignatureFactory(ctx *EvaluationContext, synthFun string, spec *Expr) *SignatureFactory {
	return &SignatureFactory{ctx: ctx, synthFun: synthFun, spec: spec}
}

// AddPoint appends a new point to the universe, growing the width every
// subsequently computed or extended signature will have.
func (f *SignatureFactory) AddPoint(p Point) {
	f.points = append(f.points, p)
}

// NumPoints reports the current size of the point universe.
func (f *SignatureFactory) NumPoints() int { return len(f.points) }

// Compute evaluates expr at every point from scratch, producing a fresh
// Signature sized to the current universe.
func (f *SignatureFactory) Compute(expr *Expr) (*Signature, error) {
	sig := NewSignature(uint(len(f.points)))
	for i, p := range f.points {
		if f.bitAt(p, expr) {
			sig.Set(uint(i))
		}
	}
	return sig, nil
}

// Extend brings a previously computed signature up to date with the
// current (possibly larger) point universe, evaluating expr only at the
// newly added points. TermSolver.ExtendPoints uses it for the terms it
// retains; there is no ExprID-keyed signature cache, so a term that was not
// retained is scored from scratch by Compute when it is enumerated again.
func (f *SignatureFactory) Extend(expr *Expr, sig *Signature) (*Signature, error) {
	start := int(sig.Width())
	sig.Extend(uint(len(f.points)))
	for i := start; i < len(f.points); i++ {
		if f.bitAt(f.points[i], expr) {
			sig.Set(uint(i))
		}
	}
	return sig, nil
}

// bitAt reports the signature bit for expr at point p: expr's own truth
// value in predicate mode, or the truth of spec with expr substituted in
// as synthFun's interpretation in term-scoring mode.
func (f *SignatureFactory) bitAt(p Point, expr *Expr) bool {
	f.ctx.SetValuationMap(p)
	if f.spec == nil {
		return EvaluateBool(expr, f.ctx)
	}
	f.ctx.SetInterpretation(f.synthFun, expr)
	return EvaluateBool(f.spec, f.ctx)
}
