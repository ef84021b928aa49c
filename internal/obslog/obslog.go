// Package obslog provides structured logging and run metrics for the
// synthesis driver: a thin wrapper around *log.Logger, tracking
// iteration/candidate/counterexample counts the way the teacher package's
// ContextMonitor tracks goal-execution metrics, adapted here to CEGIS
// solve events instead of miniKanren goal lifecycle events.
package obslog

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/esolve/esolve/pkg/synth"
)

// Metrics tracks counters for one Solve call: how many outer iterations
// ran, how many candidates were proposed, and how many counterexamples the
// oracle returned, plus wall time since the logger was created.
type Metrics struct {
	Iterations       int64
	Candidates       int64
	Counterexamples  int64
	StartTime        time.Time
	LastEventTime    time.Time
}

// SolveLogger is the concrete synth.Logger this module's CLI and tests use:
// it writes one line per event to an underlying *log.Logger (nil is valid
// and silences output entirely) and accumulates Metrics under a mutex.
type SolveLogger struct {
	runID  string
	logger *log.Logger

	mu      sync.Mutex
	metrics Metrics
}

// NewSolveLogger creates a logger tagging every line with runID (the CLI
// harness's SQLite run id, or any caller-chosen label in tests). logger may
// be nil to disable output while still accumulating Metrics.
func NewSolveLogger(runID string, logger *log.Logger) *SolveLogger {
	now := time.Now()
	return &SolveLogger{
		runID:  runID,
		logger: logger,
		metrics: Metrics{
			StartTime:     now,
			LastEventTime: now,
		},
	}
}

func (l *SolveLogger) printf(format string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[solve:%s] "+format, append([]any{l.runID}, args...)...)
}

// Iteration implements synth.Logger.
func (l *SolveLogger) Iteration(n int, numPoints int) {
	l.mu.Lock()
	l.metrics.Iterations++
	l.metrics.LastEventTime = time.Now()
	l.mu.Unlock()
	l.printf("iteration %d starting, %d points known", n, numPoints)
}

// CandidateFound implements synth.Logger.
func (l *SolveLogger) CandidateFound(expr *synth.Expr, size int) {
	l.mu.Lock()
	l.metrics.Candidates++
	l.metrics.LastEventTime = time.Now()
	l.mu.Unlock()
	l.printf("candidate of size %d: %s", size, expr.String())
}

// CounterexampleFound implements synth.Logger.
func (l *SolveLogger) CounterexampleFound(point synth.Point) {
	l.mu.Lock()
	l.metrics.Counterexamples++
	l.metrics.LastEventTime = time.Now()
	l.mu.Unlock()
	l.printf("counterexample: %s", point.String())
}

// Solved implements synth.Logger.
func (l *SolveLogger) Solved(expr *synth.Expr, size int) {
	l.printf("solved, size %d: %s", size, expr.String())
}

// Exhausted implements synth.Logger.
func (l *SolveLogger) Exhausted() {
	l.printf("search bounds exhausted without a solution")
}

// Snapshot returns a copy of the current metrics.
func (l *SolveLogger) Snapshot() Metrics {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.metrics
}

// String renders a short human-readable summary, in the teacher's
// ContextMonitor.String style.
func (l *SolveLogger) String() string {
	m := l.Snapshot()
	return fmt.Sprintf("SolveLogger{run: %s, iterations: %d, candidates: %d, counterexamples: %d, elapsed: %v}",
		l.runID, m.Iterations, m.Candidates, m.Counterexamples, m.LastEventTime.Sub(m.StartTime))
}

var _ synth.Logger = (*SolveLogger)(nil)
