package obslog

import (
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esolve/esolve/pkg/synth"
)

func TestSolveLogger_AccumulatesMetrics(t *testing.T) {
	l := NewSolveLogger("test-run", nil)

	l.Iteration(0, 0)
	l.Iteration(1, 2)
	l.CandidateFound(synth.NewConstant(synth.NewIntValue(1)), 1)
	l.CounterexampleFound(synth.Point{synth.NewIntValue(5)})
	l.Solved(synth.NewConstant(synth.NewIntValue(1)), 1)

	m := l.Snapshot()
	assert.Equal(t, int64(2), m.Iterations)
	assert.Equal(t, int64(1), m.Candidates)
	assert.Equal(t, int64(1), m.Counterexamples)
}

func TestSolveLogger_NilUnderlyingLoggerIsSilent(t *testing.T) {
	l := NewSolveLogger("silent", nil)
	assert.NotPanics(t, func() {
		l.Iteration(0, 0)
		l.Exhausted()
	})
}

func TestSolveLogger_WritesToUnderlyingLogger(t *testing.T) {
	var buf writeRecorder
	logger := log.New(&buf, "", 0)
	l := NewSolveLogger("run-1", logger)

	l.Exhausted()
	require.NotEmpty(t, buf.lines)
	assert.Contains(t, buf.lines[0], "run-1")
	assert.Contains(t, buf.lines[0], "exhausted")
}

func TestSolveLogger_StringSummary(t *testing.T) {
	l := NewSolveLogger("run-2", nil)
	l.Iteration(0, 0)
	s := l.String()
	assert.Contains(t, s, "run-2")
	assert.Contains(t, s, "iterations: 1")
}

type writeRecorder struct {
	lines []string
}

func (w *writeRecorder) Write(p []byte) (int, error) {
	w.lines = append(w.lines, string(p))
	return len(p), nil
}

var _ synth.Logger = (*SolveLogger)(nil)
