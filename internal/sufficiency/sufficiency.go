// Package sufficiency provides the solve/check/counterexample loop of
// original_source/src/sample_sufficiency.py (GetSufficientSamples) and a
// bounded-concurrency runner for independent sub-solves (Batch). It does
// not build the term-sufficiency, predicate-sufficiency or completion
// passes itself: there is no decomposition of an intended solution into
// predicate/term pairs and no enumeration of predicate subsets or
// assignments here; callers supply each sub-problem as a Problem.
//
// Batch runs the jobs it is given on a bounded worker pool (adapted from
// gitrdm-gokando's WorkerPool) gated by a
// golang.org/x/sync/semaphore.Weighted, rather than one goroutine per job,
// so a large job list does not become an unbounded goroutine fan-out.
package sufficiency

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/esolve/esolve/pkg/synth"
)

// Problem bundles what one sub-solve needs: a Solver factory scoped to a
// particular (possibly additionally constrained) specification, and a
// function reporting whether a found expression matches the specification
// everywhere, handing back a concrete counterexample point when it
// doesn't. Both sample_sufficiency.py's get_sufficient_samples and this
// port are built around the same idea: repeatedly solve, check, and feed
// any counterexample back in, until the oracle has nothing left to offer.
type Problem struct {
	// NewSolver builds a fresh Solver scored against the given initial
	// point set (spec.md's synthesis spec restricted to those points).
	NewSolver func(points []synth.Point) *synth.Solver
	// CheckSolution verifies candidate against the full, unrestricted
	// specification, returning a counterexample point when it disagrees.
	CheckSolution func(candidate *synth.Expr) (point synth.Point, ok bool)
}

// GetSufficientSamples runs Problem.NewSolver / Problem.CheckSolution in the
// same loop as sample_sufficiency.py's get_sufficient_samples: solve over
// the current point set, ask whether the solution found is a true
// solution, and if not append the returned counterexample and retry. It
// returns only the points added beyond initial.
func GetSufficientSamples(p Problem, initial []synth.Point) ([]synth.Point, error) {
	points := append([]synth.Point(nil), initial...)
	seen := make(map[string]bool, len(points))
	for _, pt := range points {
		seen[pt.Key()] = true
	}

	for {
		solver := p.NewSolver(points)
		result, err := solver.Solve()
		if err != nil {
			return nil, err
		}
		if !result.Found {
			return diff(points, initial), nil
		}

		cex, ok := p.CheckSolution(result.Expr)
		if ok {
			return diff(points, initial), nil
		}
		key := cex.Key()
		if seen[key] {
			return nil, &synth.DuplicatePointError{Point: cex}
		}
		seen[key] = true
		points = append(points, cex)
	}
}

func diff(points, initial []synth.Point) []synth.Point {
	if len(initial) == 0 {
		return points
	}
	seenInitial := make(map[string]bool, len(initial))
	for _, p := range initial {
		seenInitial[p.Key()] = true
	}
	var out []synth.Point
	for _, p := range points {
		if !seenInitial[p.Key()] {
			out = append(out, p)
		}
	}
	return out
}

// Batch runs a set of independent Problem/initial-points pairs concurrently,
// bounded by a semaphore sized to runtime.GOMAXPROCS(0), and merges every
// sub-solve's added points back into a single deduplicated result. The jobs
// are whatever the caller passes in; Batch does not generate them. Each
// sub-solve's own CEGIS loop remains single-threaded and
// deterministic; only the independent sub-problems run in parallel with
// one another.
type Batch struct {
	sem *semaphore.Weighted
}

// NewBatch creates a batch runner with concurrency capped at
// runtime.GOMAXPROCS(0).
func NewBatch() *Batch {
	return &Batch{sem: semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0)))}
}

// Job is one independent sub-solve to run as part of a Batch.
type Job struct {
	Problem Problem
	Initial []synth.Point
}

// Run executes every job, bounded by the batch's concurrency limit, and
// returns the deduplicated union of every job's added points. A job
// returning an error aborts the whole batch once all in-flight jobs have
// finished, mirroring Solver.Solve's own all-or-nothing error policy.
func (b *Batch) Run(ctx context.Context, jobs []Job) ([]synth.Point, error) {
	results := make([][]synth.Point, len(jobs))
	errs := make([]error, len(jobs))

	done := make(chan int, len(jobs))
	for i, job := range jobs {
		i, job := i, job
		if err := b.sem.Acquire(ctx, 1); err != nil {
			errs[i] = err
			done <- i
			continue
		}
		go func() {
			defer b.sem.Release(1)
			pts, err := GetSufficientSamples(job.Problem, job.Initial)
			results[i] = pts
			errs[i] = err
			done <- i
		}()
	}
	for range jobs {
		<-done
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	merged := make([]synth.Point, 0)
	seen := make(map[string]bool)
	for _, r := range results {
		for _, p := range r {
			key := p.Key()
			if !seen[key] {
				seen[key] = true
				merged = append(merged, p)
			}
		}
	}
	return merged, nil
}
