package synth

import "math"

// DecisionTree is the unifier's output shape: a leaf holding a single term
// that alone covers every point reaching it, or an internal node holding a
// Boolean predicate plus the subtrees to use when the predicate is true or
// false at a given point. ToExpr flattens it into a single nested
// if-then-else expression.
type DecisionTree struct {
	IsLeaf bool
	Term   *Expr

	Predicate *Expr
	True      *DecisionTree
	False     *DecisionTree
}

// ToExpr renders the tree as a single expression, wrapping ite around the
// predicate at every internal node. iteOp must be a ternary operator
// (condition, then-branch, else-branch) supplied by the calling theory,
// since this package does not hardcode any operator's identity.
func (t *DecisionTree) ToExpr(iteOp *OperatorDescriptor) *Expr {
	if t.IsLeaf {
		return t.Term
	}
	return NewFunctionApp(iteOp, t.Predicate, t.True.ToExpr(iteOp), t.False.ToExpr(iteOp))
}

// UnifyOutcome reports the result of one Unify attempt: a tree, or
// Exhausted when no predicate within the size bound could further separate
// the terms reaching some node. The reference implementation falls off the
// end of its learner in this situation and returns None, which its driver
// then mishandles as a counterexample point; this type makes the distinct
// "give up cleanly" outcome explicit instead.
type UnifyOutcome struct {
	Tree      *DecisionTree
	Exhausted bool
}

// predCandidate is one enumerated predicate together with its signature
// over the unifier's point set.
type predCandidate struct {
	index int
	expr  *Expr
	sig   *Signature
}

// Unifier builds a decision tree combining a set of value-producing terms,
// guarded by Boolean predicates, into a single expression agreeing with the
// specification at every point — the "unification" step of CEGIS once term
// enumeration alone has failed to find one term covering every point
// outright.
type Unifier struct {
	predFactory *SignatureFactory
}

// NewUnifier creates a unifier scoring predicates against predFactory's
// current point set (a predicate signature: bit i set means the predicate
// is true at point i).
func NewUnifier(predFactory *SignatureFactory) *Unifier {
	return &Unifier{predFactory: predFactory}
}

// Unify builds a decision tree over terms, drawing separating predicates
// from predGen up to maxPredSize structural size. numPoints is the current
// size of the point universe (terms' signatures and predicate signatures
// must share this width).
func (u *Unifier) Unify(terms []SigTermPair, predGen Generator, maxPredSize int, numPoints int) (*UnifyOutcome, error) {
	allPoints := make([]int, numPoints)
	for i := range allPoints {
		allPoints[i] = i
	}

	preds, err := u.enumeratePredicates(predGen, maxPredSize)
	if err != nil {
		return nil, err
	}

	tree, exhausted := u.build(terms, preds, allPoints)
	if exhausted {
		return &UnifyOutcome{Exhausted: true}, nil
	}
	return &UnifyOutcome{Tree: tree}, nil
}

func (u *Unifier) enumeratePredicates(predGen Generator, maxPredSize int) ([]predCandidate, error) {
	var out []predCandidate
	idx := 0
	for size := 1; size <= maxPredSize; size++ {
		for e := range predGen.Generate(size) {
			stamped := e.WithExprID(int64(idx))
			sig, err := u.predFactory.Compute(stamped)
			if err != nil {
				return nil, err
			}
			out = append(out, predCandidate{index: idx, expr: stamped, sig: sig})
			idx++
		}
	}
	return out, nil
}

// build recursively partitions points, preferring a leaf (single covering
// term) and falling back to the best-information-gain predicate split.
// It returns (tree, exhausted); exhausted propagates up immediately, since
// one unresolvable node invalidates the whole tree.
func (u *Unifier) build(terms []SigTermPair, preds []predCandidate, points []int) (*DecisionTree, bool) {
	if len(points) == 0 {
		// Nothing to distinguish; any term with an already-full signature
		// over the empty remainder is as good as any other.
		if len(terms) > 0 {
			return &DecisionTree{IsLeaf: true, Term: terms[0].Term}, false
		}
		return nil, true
	}

	if covering := firstCoveringTerm(terms, points); covering != nil {
		return &DecisionTree{IsLeaf: true, Term: covering}, false
	}

	best, bestGain := bestSplit(preds, terms, points)
	if best == nil || bestGain <= 0 {
		return nil, true
	}

	var truePoints, falsePoints []int
	for _, p := range points {
		if best.sig.Test(uint(p)) {
			truePoints = append(truePoints, p)
		} else {
			falsePoints = append(falsePoints, p)
		}
	}
	if len(truePoints) == 0 || len(falsePoints) == 0 {
		return nil, true
	}

	trueTree, exhausted := u.build(terms, preds, truePoints)
	if exhausted {
		return nil, true
	}
	falseTree, exhausted := u.build(terms, preds, falsePoints)
	if exhausted {
		return nil, true
	}
	return &DecisionTree{Predicate: best.expr, True: trueTree, False: falseTree}, false
}

// firstCoveringTerm returns the lowest-index term whose signature has every
// bit in points set, or nil if none does.
func firstCoveringTerm(terms []SigTermPair, points []int) *Expr {
	for _, t := range terms {
		covers := true
		for _, p := range points {
			if !t.Sig.Test(uint(p)) {
				covers = false
				break
			}
		}
		if covers {
			return t.Term
		}
	}
	return nil
}

// bestSplit scores each predicate by information gain over a proxy label —
// the lowest-index term covering each point — and returns the
// highest-gain predicate, breaking ties on ascending predicate index. The
// proxy label exists only to pick a split; leaf purity is still checked
// exactly via firstCoveringTerm, independent of this heuristic, since the
// reference decision-tree learner that inspired it is not available for
// this package to call into directly.
func bestSplit(preds []predCandidate, terms []SigTermPair, points []int) (*predCandidate, float64) {
	labels := make(map[int]int, len(points))
	for _, p := range points {
		labels[p] = representativeLabel(terms, p)
	}
	baseEntropy := entropyOf(points, labels)

	var best *predCandidate
	bestGain := math.Inf(-1)
	for i := range preds {
		pred := &preds[i]
		var truePts, falsePts []int
		for _, p := range points {
			if pred.sig.Test(uint(p)) {
				truePts = append(truePts, p)
			} else {
				falsePts = append(falsePts, p)
			}
		}
		if len(truePts) == 0 || len(falsePts) == 0 {
			continue
		}
		n := float64(len(points))
		gain := baseEntropy
		gain -= float64(len(truePts)) / n * entropyOf(truePts, labels)
		gain -= float64(len(falsePts)) / n * entropyOf(falsePts, labels)
		if gain > bestGain {
			bestGain = gain
			best = pred
		}
	}
	return best, bestGain
}

func representativeLabel(terms []SigTermPair, point int) int {
	for i, t := range terms {
		if t.Sig.Test(uint(point)) {
			return i
		}
	}
	return -1
}

func entropyOf(points []int, labels map[int]int) float64 {
	counts := make(map[int]int)
	for _, p := range points {
		counts[labels[p]]++
	}
	n := float64(len(points))
	h := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		pr := float64(c) / n
		h -= pr * math.Log2(pr)
	}
	return h
}
