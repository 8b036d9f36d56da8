package trace

import (
	"testing"

	"github.com/relaxer-go/relaxer/ta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLoopSystem builds the S1-family fixture from spec §8: one clock x,
// one process with a single location L, a self-loop edge guarded by
// x <= 10 (relaxation 0) that resets x, and safety property AG(x <= 10).
func buildLoopSystem(invariantLimit int64, invariantRelax *int, urgent bool) *ta.InMemorySystem {
	loc := ta.Location{
		ID: "L", Process: "p", Name: "L", Urgent: urgent,
	}
	if invariantLimit >= 0 {
		loc.Invariants = []ta.ClockConstraint{
			{Clock: ta.Clock{Name: "x", Process: "p"}, Operator: ta.LessEqual, Limit: invariantLimit, RelaxationIdx: invariantRelax},
		}
	}
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

	numRelax := 1
	if invariantRelax != nil {
		numRelax = 2
	}
	sys := ta.NewInMemorySystem(state, numRelax, nil)
	sys.AddTransition(transition)
	sys.SetSafetyProperties(state, ta.ClockConstraint{
		Clock: ta.Clock{Name: "x", Process: "p"}, Operator: ta.LessEqual, Limit: 10,
	})
	return sys
}

func drain(t *testing.T, it *DFSTraceIterator) []*TraceConstraintBundle {
	t.Helper()
	var out []*TraceConstraintBundle
	for {
		b, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		out = append(out, b)
	}
	return out
}

func TestDFSTraceIterator_S1_BaselineBundleCounts(t *testing.T) {
	sys := buildLoopSystem(-1, nil, false)
	it, err := NewDFSTraceIterator(sys, 2)
	require.NoError(t, err)
	bundles := drain(t, it)

	// depth0 + depth1 + depth2 = 3 bundles for a single self-loop.
	require.Len(t, bundles, 3)
	for i, b := range bundles {
		assert.Len(t, b.SymbolicTrace, i+1)
		assert.Len(t, b.DeltaVars, i+1)
		assert.Len(t, b.Inequalities, i+1)
		assert.Len(t, b.PropertyFormulas, i+1)
	}
}

func TestDFSTraceIterator_RelaxationVarsStableAcrossBundles(t *testing.T) {
	relax1 := 1
	sys := buildLoopSystem(5, &relax1, false)
	it, err := NewDFSTraceIterator(sys, 2)
	require.NoError(t, err)
	bundles := drain(t, it)

	require.NotEmpty(t, bundles)
	first := bundles[0].RelaxationVars
	for _, b := range bundles[1:] {
		require.Len(t, b.RelaxationVars, len(first))
		for i := range first {
			assert.Equal(t, first[i].Identifier(), b.RelaxationVars[i].Identifier())
		}
	}
}

func TestDFSTraceIterator_S5_UrgentEncodesZeroDelay(t *testing.T) {
	sys := buildLoopSystem(-1, nil, true)
	it, err := NewDFSTraceIterator(sys, 0)
	require.NoError(t, err)
	b, ok, err := it.Next()
	require.NoError(t, err)
	require.True(t, ok)

	found := 0
	for _, atom := range b.Inequalities[0] {
		s := atom.String()
		if s == "1*delta_0 <= 0" || s == "1*delta_0 >= 0" {
			found++
		}
	}
	assert.Equal(t, 2, found)
}

func TestDFSTraceIterator_UnsupportedOperatorErrors(t *testing.T) {
	loc := ta.Location{
		ID: "L", Process: "p", Name: "L",
		Invariants: []ta.ClockConstraint{
			{Clock: ta.Clock{Name: "x", Process: "p"}, Operator: ta.NotEqual, Limit: 3},
		},
	}
	state := ta.SystemState{Symbolic: ta.SymbolicState{Locations: []ta.Location{loc}}}
	sys := ta.NewInMemorySystem(state, 0, nil)

	_, err := NewDFSTraceIterator(sys, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestDFSTraceIterator_DoneReturnsFalseAfterExhaustion(t *testing.T) {
	sys := buildLoopSystem(-1, nil, false)
	it, err := NewDFSTraceIterator(sys, 0)
	require.NoError(t, err)
	_, ok, err := it.Next()
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = it.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}
