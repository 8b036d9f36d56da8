package polyhedron

import (
	"math/big"
	"testing"

	"github.com/relaxer-go/relaxer/lra"
	"github.com/relaxer-go/relaxer/pareto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rho(i int) lra.Variable { return lra.RelaxationVariable{Index: i} }

func sum1(v lra.Variable) lra.Sum {
	return lra.NewSum(lra.NewSummand(big.NewRat(1, 1), v))
}

// A triangle: rho0 >= 0, rho1 >= 0, rho0 + rho1 <= 10.
func triangleTerm() []lra.Inequality {
	return []lra.Inequality{
		lra.NewInequality(sum1(rho(0)), lra.GreaterEqual, big.NewRat(0, 1)),
		lra.NewInequality(sum1(rho(1)), lra.GreaterEqual, big.NewRat(0, 1)),
		lra.NewInequality(
			lra.NewSum(lra.NewSummand(big.NewRat(1, 1), rho(0)), lra.NewSummand(big.NewRat(1, 1), rho(1))),
			lra.LessEqual, big.NewRat(10, 1)),
	}
}

func TestEnumerate_TriangleHasThreeVertices(t *testing.T) {
	vars := []lra.Variable{rho(0), rho(1)}
	sys, err := FromTerm(vars, triangleTerm(), big.NewRat(1, 10))
	require.NoError(t, err)

	vertices, rays := Enumerate(sys)
	assert.Len(t, rays, 0)
	require.Len(t, vertices, 3)

	want := map[string]bool{"0,0": true, "10,0": true, "0,10": true}
	for _, v := range vertices {
		key := v[0].RatString() + "," + v[1].RatString()
		assert.True(t, want[key], "unexpected vertex %v", v)
	}
}

func TestOptimize_TriangleProducesNonDominatedVertex(t *testing.T) {
	vars := []lra.Variable{rho(0), rho(1)}
	sys, err := FromTerm(vars, triangleTerm(), big.NewRat(1, 10))
	require.NoError(t, err)

	set := pareto.NewSet()
	Optimize(sys, 2, set)

	// (10,0) and (0,10) both maximal; (0,0) is dominated by both.
	for _, p := range set.Points() {
		assert.False(t, p[0] == 0 && p[1] == 0, "origin should be dominated")
	}
	assert.NotEmpty(t, set.Points())
}

// An unbounded half-plane: rho0 >= 0 (no upper bound at all).
func unboundedTerm() []lra.Inequality {
	return []lra.Inequality{
		lra.NewInequality(sum1(rho(0)), lra.GreaterEqual, big.NewRat(0, 1)),
	}
}

func TestEnumerate_UnboundedHasOneVertexAndOneRayOnSingleVar(t *testing.T) {
	vars := []lra.Variable{rho(0)}
	sys, err := FromTerm(vars, unboundedTerm(), big.NewRat(1, 10))
	require.NoError(t, err)

	vertices, rays := Enumerate(sys)
	assert.Len(t, vertices, 1) // rho0 = 0 is the single vertex (the bound is tight there).
	require.Len(t, rays, 1)
	assert.True(t, rays[0][0].Sign() > 0)
}

func TestMaximizeRelaxation_SupportedFlagSingleDisjunct(t *testing.T) {
	vars := []lra.Variable{rho(0), rho(1)}
	dnf := lra.DNFFormula{Terms: [][]lra.Inequality{triangleTerm()}}

	set, supported, err := MaximizeRelaxation(vars, dnf, big.NewRat(1, 10), 2)
	require.NoError(t, err)
	assert.True(t, supported)
	assert.NotEmpty(t, set.Points())
}

func TestMaximizeRelaxation_UnsupportedForMultipleDisjuncts(t *testing.T) {
	vars := []lra.Variable{rho(0), rho(1)}
	dnf := lra.DNFFormula{Terms: [][]lra.Inequality{triangleTerm(), triangleTerm()}}

	_, supported, err := MaximizeRelaxation(vars, dnf, big.NewRat(1, 10), 2)
	require.NoError(t, err)
	assert.False(t, supported)
}

func TestMaximizeRelaxation_EmptyDisjunctIsSkipped(t *testing.T) {
	vars := []lra.Variable{rho(0)}
	infeasible := []lra.Inequality{
		lra.NewInequality(sum1(rho(0)), lra.GreaterEqual, big.NewRat(10, 1)),
		lra.NewInequality(sum1(rho(0)), lra.LessEqual, big.NewRat(3, 1)),
	}
	dnf := lra.DNFFormula{Terms: [][]lra.Inequality{infeasible}}

	set, _, err := MaximizeRelaxation(vars, dnf, big.NewRat(1, 10), 2)
	require.NoError(t, err)
	assert.Empty(t, set.Points())
}
