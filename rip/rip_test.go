package rip

import (
	"math/big"
	"testing"

	"github.com/relaxer-go/relaxer/lra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func x() lra.Sum {
	return lra.NewSum(lra.NewSummand(big.NewRat(1, 1), lra.DeltaVariable{Depth: 0}))
}

func ineq(sym lra.InequalitySymbol, bound int64) lra.Inequality {
	return lra.NewInequality(x(), sym, big.NewRat(bound, 1))
}

// S6: CNF {x >= 5, x <= 3} -> false.
func TestPropagate_ContradictoryUnitClausesAreUnsat(t *testing.T) {
	cnf := lra.NewAnd(ineq(lra.GreaterEqual, 5), ineq(lra.LessEqual, 3))
	out, err := Propagate(cnf)
	require.NoError(t, err)
	assert.Equal(t, lra.FALSE.Key(), out.Key())
}

func TestPropagate_UnitClauseProvesLiteralInLargerClause(t *testing.T) {
	// x <= 3 makes (x <= 3 OR y >= 10) trivially true, collapsing the clause.
	y := lra.NewSum(lra.NewSummand(big.NewRat(1, 1), lra.DeltaVariable{Depth: 1}))
	cnf := lra.NewAnd(
		ineq(lra.LessEqual, 3),
		lra.NewOr(ineq(lra.LessEqual, 3), lra.NewInequality(y, lra.GreaterEqual, big.NewRat(10, 1))),
	)
	out, err := Propagate(cnf)
	require.NoError(t, err)
	and, ok := out.(lra.And)
	if ok {
		assert.Len(t, and.Args, 1)
	} else {
		assert.Equal(t, ineq(lra.LessEqual, 3).Key(), out.Key())
	}
}

func TestPropagate_DropsProvenFalseLiteral(t *testing.T) {
	y := lra.NewSum(lra.NewSummand(big.NewRat(1, 1), lra.DeltaVariable{Depth: 1}))
	yIneq := lra.NewInequality(y, lra.LessEqual, big.NewRat(1, 1))
	cnf := lra.NewAnd(
		ineq(lra.GreaterEqual, 10),
		lra.NewOr(ineq(lra.LessEqual, 3), yIneq),
	)
	out, err := Propagate(cnf)
	require.NoError(t, err)
	assert.Contains(t, out.String(), yIneq.String())
}

func TestPropagate_SatisfiableUnchanged(t *testing.T) {
	cnf := lra.NewAnd(ineq(lra.GreaterEqual, 0), ineq(lra.LessEqual, 10))
	out, err := Propagate(cnf)
	require.NoError(t, err)
	assert.NotEqual(t, lra.FALSE.Key(), out.Key())
}

func TestTightenUpper_TieBreakPrefersNonStrict(t *testing.T) {
	five := big.NewRat(5, 1)
	strict := NewBound(five, true)
	nonStrict := NewBound(five, false)

	assert.False(t, tightenUpper(strict, nonStrict).Strict)
	assert.False(t, tightenUpper(nonStrict, strict).Strict)
}

func TestTightenLower_TieBreakPrefersStrict(t *testing.T) {
	five := big.NewRat(5, 1)
	strict := NewBound(five, true)
	nonStrict := NewBound(five, false)

	assert.True(t, tightenLower(strict, nonStrict).Strict)
	assert.True(t, tightenLower(nonStrict, strict).Strict)
}
