package runlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunID_ProducesDistinctIDs(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, a)
}

func TestLog_SQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	l, err := Open(path)
	require.NoError(t, err)
	defer l.Close()

	entry := Entry{
		RunID:           NewRunID(),
		ProblemPath:     "examples/max2.yaml",
		Expr:            "(ite (ge x y) x y)",
		Found:           true,
		WallTime:        150 * time.Millisecond,
		Counterexamples: 3,
		Timestamp:       time.Now().UTC(),
	}
	require.NoError(t, l.Append(entry))

	recent, err := l.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, entry.RunID, recent[0].RunID)
	assert.Equal(t, entry.Expr, recent[0].Expr)
	assert.True(t, recent[0].Found)
	assert.Equal(t, entry.Counterexamples, recent[0].Counterexamples)
	assert.Equal(t, entry.WallTime, recent[0].WallTime)
}

func TestLog_SQLiteRecentOrdersNewestFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	l, err := Open(path)
	require.NoError(t, err)
	defer l.Close()

	base := time.Now().UTC()
	first := Entry{RunID: NewRunID(), ProblemPath: "a.yaml", Expr: "x", Found: true, Timestamp: base}
	second := Entry{RunID: NewRunID(), ProblemPath: "b.yaml", Expr: "y", Found: true, Timestamp: base.Add(time.Second)}
	require.NoError(t, l.Append(first))
	require.NoError(t, l.Append(second))

	recent, err := l.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, second.RunID, recent[0].RunID)
	assert.Equal(t, first.RunID, recent[1].RunID)
}

func TestLog_JSONLinesFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	l, err := Open(path)
	require.NoError(t, err)
	defer l.Close()

	entry := Entry{
		RunID:       NewRunID(),
		ProblemPath: "examples/max3.yaml",
		Expr:        "(ite (ge x y) x y)",
		Found:       true,
		Timestamp:   time.Now().UTC(),
	}
	require.NoError(t, l.Append(entry))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())
	var got Entry
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &got))
	assert.Equal(t, entry.RunID, got.RunID)
	assert.Equal(t, entry.Expr, got.Expr)
}

func TestLog_JSONLinesRecentIsUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	l, err := Open(path)
	require.NoError(t, err)
	defer l.Close()

	_, err = l.Recent(10)
	require.Error(t, err)
}
