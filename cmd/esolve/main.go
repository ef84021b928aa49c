// Command esolve runs the counterexample-guided synthesizer against a
// problem file and appends one run record to a log.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/esolve/esolve/internal/config"
	"github.com/esolve/esolve/internal/obslog"
	"github.com/esolve/esolve/internal/runlog"
	"github.com/esolve/esolve/internal/smt"
	"github.com/esolve/esolve/internal/sparser"
	"github.com/esolve/esolve/internal/theory"
	"github.com/esolve/esolve/pkg/synth"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: esolve <problem.yaml> <log-path>")
		os.Exit(2)
	}
	if err := run(os.Args[1], os.Args[2]); err != nil {
		fmt.Fprintln(os.Stderr, "esolve:", err)
		os.Exit(1)
	}
}

func run(problemPath, logPath string) error {
	pf, err := config.Load(problemPath)
	if err != nil {
		return err
	}

	rangeType, err := sparser.ParseType(pf.RangeType)
	if err != nil {
		return fmt.Errorf("range_type: %w", err)
	}

	interner := synth.NewVariableInterner()
	varDescs := make([]*synth.VarDescriptor, len(pf.Vars))
	argTypes := make([]synth.Type, len(pf.Vars))
	for i, vs := range pf.Vars {
		t, err := sparser.ParseType(vs.Type)
		if err != nil {
			return fmt.Errorf("vars[%d] (%s): %w", i, vs.Name, err)
		}
		varDescs[i] = interner.Intern(vs.Name, t)
		varDescs[i].EvalOffset = i
		argTypes[i] = t
	}

	registry := theory.Default()
	synthOp := synth.NewSynthesisTarget(pf.SynthFun, argTypes, rangeType)

	env := &sparser.Env{
		Vars:     varNameMap(varDescs),
		SynthFun: synthOp,
		Registry: registry,
	}
	specExpr, err := sparser.ParseExpr(pf.Spec, env)
	if err != nil {
		return fmt.Errorf("spec: %w", err)
	}

	termGen, err := buildLeafGrammar(pf.TermGrammar, rangeType, varDescs, registry)
	if err != nil {
		return fmt.Errorf("term_grammar: %w", err)
	}
	predGen, err := buildLeafGrammar(pf.PredGrammar, synth.BoolType(), varDescs, registry)
	if err != nil {
		return fmt.Errorf("pred_grammar: %w", err)
	}

	iteOp, _ := registry.Instantiate("ite", []synth.Type{synth.BoolType(), rangeType, rangeType})

	backend := smt.NewBackend(func(name string, t synth.Type) smt.Domain {
		if t.Kind == synth.IntKind {
			return smt.Domain{Type: t, Low: -16, High: 16}
		}
		return smt.Domain{Type: t}
	})
	gateway := synth.NewGateway(backend, specExpr, pf.SynthFun, varDescs)

	runID := runlog.NewRunID()
	colored := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	stderrLogger := log.New(os.Stderr, "", log.LstdFlags)
	solveLogger := obslog.NewSolveLogger(runID, stderrLogger)

	if colored {
		fmt.Fprintf(os.Stderr, "\x1b[1mesolve\x1b[0m run %s: %s\n", runID, problemPath)
	} else {
		fmt.Fprintf(os.Stderr, "esolve run %s: %s\n", runID, problemPath)
	}

	cfg := synth.SolverConfig{
		MaxTermSize:   pf.MaxTermSize,
		MaxPredSize:   pf.MaxPredSize,
		MaxIterations: pf.MaxIterations,
	}
	solver := synth.NewSolver(termGen, predGen, specExpr, pf.SynthFun, gateway, iteOp, cfg, solveLogger)

	start := time.Now()
	result, err := solver.Solve()
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	rl, err := runlog.Open(logPath)
	if err != nil {
		return err
	}
	defer rl.Close()

	entry := runlog.Entry{
		RunID:           runID,
		ProblemPath:     problemPath,
		Found:           result.Found,
		WallTime:        elapsed,
		Counterexamples: int(solveLogger.Snapshot().Counterexamples),
		Timestamp:       start,
	}
	if result.Found {
		entry.Expr = result.Expr.String()
		fmt.Println(result.Expr.String())
	} else {
		entry.Expr = ""
		fmt.Fprintln(os.Stderr, "no solution found within configured bounds")
	}
	return rl.Append(entry)
}

func varNameMap(vars []*synth.VarDescriptor) map[string]*synth.VarDescriptor {
	m := make(map[string]*synth.VarDescriptor, len(vars))
	for _, v := range vars {
		m[v.Name] = v
	}
	return m
}

// buildLeafGrammar builds the simplest grammar this CLI harness supports: a
// single nonterminal whose leaves are the problem's variables plus, for
// each operator name the grammar spec declares, a FunctionalGenerator
// applying that operator to the same nonterminal recursively.
func buildLeafGrammar(gs config.GrammarSpec, t synth.Type, vars []*synth.VarDescriptor, registry *theory.Registry) (synth.Generator, error) {
	if gs.Type == "" {
		return synth.NewLeafGenerator(t, nil), nil
	}
	declType, err := sparser.ParseType(gs.Type)
	if err != nil {
		return nil, err
	}

	var leaves []*synth.Expr
	for _, v := range vars {
		if v.Type.Equal(declType) {
			leaves = append(leaves, synth.NewVariable(v))
		}
	}

	factory := synth.NewRecursiveGeneratorFactory()
	self := factory.Declare("self", declType)

	var alts []synth.Generator
	alts = append(alts, synth.NewLeafGenerator(declType, leaves))

	for _, opName := range gs.Operators {
		op, ok := resolveOperator(registry, opName, declType)
		if !ok {
			return nil, fmt.Errorf("unknown grammar operator %q for type %s", opName, declType)
		}
		args := make([]synth.Generator, len(op.ArgTypes))
		for i := range args {
			args[i] = self
		}
		alts = append(alts, synth.NewFunctionalGenerator(op, args))
	}

	gen := synth.NewAlternativesGenerator(declType, alts)
	factory.Resolve("self", gen)
	return gen, nil
}

// resolveOperator tries a handful of plausible argument-type shapes for
// opName against the registry: most of this module's grammar operators are
// binary and homogeneous in the nonterminal's own type, but unary
// operators (not, bvnot) and polymorphic ones (eq, ite) need a distinct
// probe.
func resolveOperator(registry *theory.Registry, opName string, t synth.Type) (*synth.OperatorDescriptor, bool) {
	if op, ok := registry.Instantiate(opName, []synth.Type{t, t}); ok {
		return op, true
	}
	if op, ok := registry.Instantiate(opName, []synth.Type{t}); ok {
		return op, true
	}
	if op, ok := registry.Instantiate(opName, []synth.Type{synth.BoolType(), t, t}); ok {
		return op, true
	}
	return nil, false
}
