package synth

// Logger receives structured progress events from Solve, independent of
// any particular logging backend; internal/obslog provides the concrete
// implementation this package's own CLI and tests use.
type Logger interface {
	Iteration(n int, numPoints int)
	CandidateFound(expr *Expr, size int)
	CounterexampleFound(point Point)
	Solved(expr *Expr, size int)
	Exhausted()
}

// nopLogger discards every event; used when Solve is called with a nil
// Logger so the hot loop never has to nil-check.
type nopLogger struct{}

func (nopLogger) Iteration(int, int)        {}
func (nopLogger) CandidateFound(*Expr, int) {}
func (nopLogger) CounterexampleFound(Point) {}
func (nopLogger) Solved(*Expr, int)         {}
func (nopLogger) Exhausted()                {}

// Result is the outcome of a Solve call: either a synthesized expression,
// or Found == false once the configured size bounds are exhausted without
// one. "No solution within the bounds tried" is not itself an error.
type Result struct {
	Expr  *Expr
	Found bool
}

// SolverConfig bounds the search: term and predicate enumeration stop at
// MaxTermSize/MaxPredSize respectively, and the outer CEGIS loop stops
// after MaxIterations counterexample rounds.
type SolverConfig struct {
	MaxTermSize   int
	MaxPredSize   int
	MaxIterations int
}

// Solver ties together term enumeration, unification, and SMT
// verification into the CEGIS loop: enumerate terms against the points
// known so far, unify them into a candidate if no single term suffices,
// verify the candidate, and feed any counterexample back into the point
// set for the next round.
type Solver struct {
	termGen  Generator
	predGen  Generator
	gateway  *Gateway
	iteOp    *OperatorDescriptor
	cfg      SolverConfig
	log      Logger

	ctx         *EvaluationContext
	termFactory *SignatureFactory
	predFactory *SignatureFactory
	seenPoints  map[string]bool
}

// NewSolver builds a solver. termGen enumerates value-typed candidate
// terms; predGen enumerates Boolean-typed candidate guards; spec is the
// full Boolean specification expression (mentioning the synthFun-named
// synthesis target) that candidate terms are scored against: a term's
// signature bit at a point is set by substituting the term as synthFun's
// interpretation and evaluating spec itself, mirroring the reference
// solver's set_interpretation_map/evaluate_expression_raw pairing; gateway
// supplies the SMT oracle; iteOp is the theory's ternary if-then-else
// operator used to flatten a DecisionTree into a single expression.
func NewSolver(termGen, predGen Generator, spec *Expr, synthFun string, gateway *Gateway, iteOp *OperatorDescriptor, cfg SolverConfig, log Logger) *Solver {
	if log == nil {
		log = nopLogger{}
	}
	ctx := NewEvaluationContext()
	return &Solver{
		termGen:     termGen,
		predGen:     predGen,
		gateway:     gateway,
		iteOp:       iteOp,
		cfg:         cfg,
		log:         log,
		ctx:         ctx,
		termFactory: NewTermSignatureFactory(ctx, synthFun, spec),
		predFactory: NewSignatureFactory(ctx),
		seenPoints:  make(map[string]bool),
	}
}

// Solve runs the CEGIS loop to completion (a solution, or the configured
// bounds exhausted). A DuplicatePointError aborts the call immediately: the
// oracle returning a point already seen indicates the candidate it just
// rejected was never actually distinguished from an earlier one, which
// this package treats as an invariant violation rather than as "try
// again".
func (s *Solver) Solve() (Result, error) {
	termSolver := NewTermSolver(s.termGen, s.termFactory)

	for iter := 0; iter < s.cfg.MaxIterations; iter++ {
		s.log.Iteration(iter, s.termFactory.NumPoints())

		tsResult, err := termSolver.Solve(s.cfg.MaxTermSize)
		if err != nil {
			return Result{}, err
		}

		var candidate *Expr
		switch {
		case tsResult.Vacuous:
			candidate = tsResult.VacuousTerm
		case tsResult.Exhausted:
			s.log.Exhausted()
			return Result{Found: false}, nil
		case len(tsResult.Terms) == 1:
			candidate = tsResult.Terms[0].Term
		default:
			outcome, err := NewUnifier(s.predFactory).Unify(tsResult.Terms, s.predGen, s.cfg.MaxPredSize, s.termFactory.NumPoints())
			if err != nil {
				return Result{}, err
			}
			if outcome.Exhausted {
				s.log.Exhausted()
				return Result{Found: false}, nil
			}
			candidate = outcome.Tree.ToExpr(s.iteOp)
		}

		if candidate == nil {
			s.log.Exhausted()
			return Result{Found: false}, nil
		}
		s.log.CandidateFound(candidate, Size(candidate))

		ok, counterexample, err := s.gateway.Verify(candidate)
		if err != nil {
			return Result{}, err
		}
		if ok {
			s.log.Solved(candidate, Size(candidate))
			return Result{Expr: candidate, Found: true}, nil
		}

		s.log.CounterexampleFound(counterexample)
		key := counterexample.Key()
		if s.seenPoints[key] {
			return Result{}, &DuplicatePointError{Point: counterexample}
		}
		s.seenPoints[key] = true

		s.termFactory.AddPoint(counterexample)
		s.predFactory.AddPoint(counterexample)
		if err := termSolver.ExtendPoints(); err != nil {
			return Result{}, err
		}
	}

	s.log.Exhausted()
	return Result{Found: false}, nil
}
