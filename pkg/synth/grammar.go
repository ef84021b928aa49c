package synth

import "iter"

// Generator is the grammar-node contract: every context-free-grammar
// production this package enumerates over is a Generator, dispatched by a
// type switch in the functions below rather than through inheritance — the
// same tagged-union discipline Expr uses for expression variants.
//
// Generate must be usable repeatedly and must be a pure function of the
// Generator's own configuration: callers (TermSolver, RecursiveGeneratorFactory)
// rely on being able to re-run it for successive size bounds.
type Generator interface {
	// Generate lazily yields every expression this generator produces of
	// exactly the given structural size. Implementations use Go's
	// iter.Seq so callers can stop early (size-bounded enumeration is
	// inherently unbounded in the limit) without any goroutine or channel
	// lifecycle to manage.
	Generate(size int) iter.Seq[*Expr]

	// Type reports the type of every expression this generator produces.
	Type() Type
}

// LeafGenerator yields a fixed pool of size-1 expressions (typically a
// variable together with a handful of grammar-declared constants). It
// yields nothing for any size other than 1.
type LeafGenerator struct {
	leafType Type
	leaves   []*Expr
}

// NewLeafGenerator builds a leaf generator over the given size-1
// expressions, which must all share t.
func NewLeafGenerator(t Type, leaves []*Expr) *LeafGenerator {
	return &LeafGenerator{leafType: t, leaves: leaves}
}

func (g *LeafGenerator) Type() Type { return g.leafType }

func (g *LeafGenerator) Generate(size int) iter.Seq[*Expr] {
	return func(yield func(*Expr) bool) {
		if size != 1 {
			return
		}
		for _, l := range g.leaves {
			if !yield(l) {
				return
			}
		}
	}
}

// FunctionalGenerator yields function applications of op over every
// combination of its argument generators whose structural sizes sum to
// size-1 (the 1 accounts for op's own application node).
type FunctionalGenerator struct {
	op   *OperatorDescriptor
	args []Generator
}

// NewFunctionalGenerator builds a generator over op applied to the given
// per-argument-position generators, one per entry of op.ArgTypes.
func NewFunctionalGenerator(op *OperatorDescriptor, args []Generator) *FunctionalGenerator {
	return &FunctionalGenerator{op: op, args: args}
}

func (g *FunctionalGenerator) Type() Type { return g.op.RangeType }

func (g *FunctionalGenerator) Generate(size int) iter.Seq[*Expr] {
	return func(yield func(*Expr) bool) {
		if size < 1+len(g.args) {
			return
		}
		for _, sizes := range partitions(size-1, len(g.args)) {
			ok := cartesianProduct(g.args, sizes, nil, func(children []*Expr) bool {
				cp := make([]*Expr, len(children))
				copy(cp, children)
				return yield(NewFunctionApp(g.op, cp...))
			})
			if !ok {
				return
			}
		}
	}
}

// partitions enumerates every way to write total as an ordered sum of
// nparts positive integers (a composition of total into nparts parts).
// Each argument generator of a FunctionalGenerator must receive at least
// structural size 1, hence "positive".
func partitions(total, nparts int) [][]int {
	if nparts == 0 {
		if total == 0 {
			return [][]int{{}}
		}
		return nil
	}
	if nparts == 1 {
		if total >= 1 {
			return [][]int{{total}}
		}
		return nil
	}
	var out [][]int
	for first := 1; first <= total-(nparts-1); first++ {
		for _, rest := range partitions(total-first, nparts-1) {
			combo := append([]int{first}, rest...)
			out = append(out, combo)
		}
	}
	return out
}

// cartesianProduct walks the cross product of gens[i].Generate(sizes[i])
// for every i, invoking yield once per fully assembled combination and
// stopping early (returning false) the first time yield does. acc
// accumulates the combination being built across the recursive descent.
func cartesianProduct(gens []Generator, sizes []int, acc []*Expr, yield func([]*Expr) bool) bool {
	if len(acc) == len(gens) {
		return yield(acc)
	}
	i := len(acc)
	cont := true
	for e := range gens[i].Generate(sizes[i]) {
		if !cartesianProduct(gens, sizes, append(acc, e), yield) {
			cont = false
			break
		}
	}
	return cont
}

// AlternativesGenerator yields the union of several generators of the same
// type at a given size — a single grammar nonterminal with more than one
// production, e.g. "Start -> plus(Start,Start) | minus(Start,Start) | x".
type AlternativesGenerator struct {
	altType Type
	alts    []Generator
}

// NewAlternativesGenerator builds a generator over the union of alts, which
// must all report the same Type.
func NewAlternativesGenerator(t Type, alts []Generator) *AlternativesGenerator {
	return &AlternativesGenerator{altType: t, alts: alts}
}

func (g *AlternativesGenerator) Type() Type { return g.altType }

func (g *AlternativesGenerator) Generate(size int) iter.Seq[*Expr] {
	return func(yield func(*Expr) bool) {
		for _, alt := range g.alts {
			for e := range alt.Generate(size) {
				if !yield(e) {
					return
				}
			}
		}
	}
}

// recursivePlaceholder is a Generator whose production set is resolved
// after construction, allowing a grammar nonterminal to refer to itself
// (directly or mutually) without a Go initialization cycle. It is never
// constructed directly by a grammar author; see RecursiveGeneratorFactory.
type recursivePlaceholder struct {
	name     string
	declType Type
	resolved Generator
}

func (g *recursivePlaceholder) Type() Type { return g.declType }

func (g *recursivePlaceholder) Generate(size int) iter.Seq[*Expr] {
	return func(yield func(*Expr) bool) {
		if g.resolved == nil {
			panic(&ArgumentError{Detail: "recursive generator '" + g.name + "' used before RecursiveGeneratorFactory.Resolve"})
		}
		for e := range g.resolved.Generate(size) {
			if !yield(e) {
				return
			}
		}
	}
}

// RecursiveGeneratorFactory lets a grammar's productions reference
// themselves: callers obtain placeholders with Declare up front, build the
// real generator graph using those placeholders as children, then bind
// each placeholder to its real generator with Resolve. Because
// enumeration is always bounded by structural size and every production
// consumes at least one unit of size, a placeholder's self-reference
// terminates the same way any other recursive descent bounded by a
// strictly decreasing argument does — no cycle detection is needed at
// generate time.
type RecursiveGeneratorFactory struct {
	placeholders map[string]*recursivePlaceholder
}

// NewRecursiveGeneratorFactory creates an empty factory.
func NewRecursiveGeneratorFactory() *RecursiveGeneratorFactory {
	return &RecursiveGeneratorFactory{placeholders: make(map[string]*recursivePlaceholder)}
}

// Declare registers a new named placeholder of type t. Declaring the same
// name twice is a caller error.
func (f *RecursiveGeneratorFactory) Declare(name string, t Type) Generator {
	if _, ok := f.placeholders[name]; ok {
		panic(&ArgumentError{Detail: "recursive generator '" + name + "' declared twice"})
	}
	p := &recursivePlaceholder{name: name, declType: t}
	f.placeholders[name] = p
	return p
}

// Resolve binds the placeholder previously declared under name to its real
// generator. Resolving an undeclared name or resolving twice is a caller
// error.
func (f *RecursiveGeneratorFactory) Resolve(name string, g Generator) {
	p, ok := f.placeholders[name]
	if !ok {
		panic(&ArgumentError{Detail: "resolving undeclared recursive generator '" + name + "'"})
	}
	if p.resolved != nil {
		panic(&ArgumentError{Detail: "recursive generator '" + name + "' resolved twice"})
	}
	p.resolved = g
}
