package pipeline

import (
	"testing"

	"github.com/relaxer-go/relaxer/dump"
	"github.com/relaxer-go/relaxer/ta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLoopSystem mirrors the S1-family fixture in trace/trace_test.go:
// one clock x, a single self-loop edge guarded by x <= 10 (relaxation
// 0) that resets x, and safety property AG(x <= 10).
func buildLoopSystem() *ta.InMemorySystem {
	loc := ta.Location{ID: "L", Process: "p", Name: "L"}
	state := ta.SystemState{Symbolic: ta.SymbolicState{Locations: []ta.Location{loc}}}

	relaxIdx := 0
	edge := ta.Edge{
		SourceID: "L", TargetID: "L", Process: "p",
		Guards: []ta.ClockConstraint{
			{Clock: ta.Clock{Name: "x", Process: "p"}, Operator: ta.LessEqual, Limit: 10, RelaxationIdx: &relaxIdx},
		},
		Resets: []ta.Clock{{Name: "x", Process: "p"}},
	}
	transition := ta.SystemTransition{Source: state, Target: state, Edges: []ta.Edge{edge}}

	sys := ta.NewInMemorySystem(state, 1, nil)
	sys.AddTransition(transition)
	sys.SetSafetyProperties(state, ta.ClockConstraint{
		Clock: ta.Clock{Name: "x", Process: "p"}, Operator: ta.LessEqual, Limit: 10,
	})
	return sys
}

func TestRelax_ProducesPopulatedResult(t *testing.T) {
	sys := buildLoopSystem()

	result, err := Relax(sys, Options{Depth: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, result.TraceCount)
	assert.NotNil(t, result.Stats)
	assert.Greater(t, result.Stats.Duration(PhaseTraceGeneration).Nanoseconds(), int64(0))
	assert.Greater(t, result.Stats.Duration(PhaseOptimization).Nanoseconds(), int64(0))
}

func TestRelax_WiresDumpHandler(t *testing.T) {
	sys := buildLoopSystem()
	handler := dump.NewDirectoryHandler(t.TempDir())

	result, err := Relax(sys, Options{Depth: 1, Dump: handler})
	require.NoError(t, err)
	assert.Equal(t, 2, result.TraceCount)
}

func TestRelax_DefaultsGridPointsAndEpsilon(t *testing.T) {
	sys := buildLoopSystem()

	result, err := Relax(sys, Options{Depth: 1, GridPoints: 0, Epsilon: nil})
	require.NoError(t, err)
	assert.NotNil(t, result.Set)
}
