package normalform

import (
	"math/big"
	"testing"

	"github.com/relaxer-go/relaxer/lra"
	"github.com/stretchr/testify/assert"
)

func ineq(depth int, sym lra.InequalitySymbol, bound int64) lra.Inequality {
	return lra.NewInequality(
		lra.NewSum(lra.NewSummand(big.NewRat(1, 1), lra.DeltaVariable{Depth: depth})),
		sym,
		big.NewRat(bound, 1),
	)
}

func hasAndUnderOr(f lra.Formula) bool {
	or, ok := f.(lra.Or)
	if !ok {
		return false
	}
	for _, d := range or.Args {
		if _, ok := d.(lra.And); ok {
			return true
		}
		if hasAndUnderOr(d) {
			return true
		}
	}
	return false
}

func hasOrUnderAnd(f lra.Formula) bool {
	and, ok := f.(lra.And)
	if !ok {
		return false
	}
	for _, c := range and.Args {
		if _, ok := c.(lra.Or); ok {
			return true
		}
		if hasOrUnderAnd(c) {
			return true
		}
	}
	return false
}

func TestNNF_Idempotent(t *testing.T) {
	a := ineq(0, lra.LessEqual, 1)
	b := ineq(1, lra.GreaterEqual, 0)
	f := lra.NewNot(lra.NewAnd(a, lra.NewOr(b, lra.NewNot(a))))

	once := NNF(f)
	twice := NNF(once)
	assert.Equal(t, once.Key(), twice.Key())
	assert.True(t, CheckEquivalent(f, once))
}

func TestCNF_NoAndNestedUnderOr(t *testing.T) {
	a := ineq(0, lra.LessEqual, 1)
	b := ineq(1, lra.GreaterEqual, 0)
	c := ineq(2, lra.LessThan, 3)

	f := lra.NewOr(a, lra.NewAnd(b, c))
	out := CNF(f)
	assert.False(t, hasAndUnderOr(out))
	assert.True(t, CheckEquivalent(f, out))
}

func TestDNF_NoOrNestedUnderAnd(t *testing.T) {
	a := ineq(0, lra.LessEqual, 1)
	b := ineq(1, lra.GreaterEqual, 0)
	c := ineq(2, lra.LessThan, 3)

	f := lra.NewAnd(a, lra.NewOr(b, c))
	out := DNF(f)
	assert.False(t, hasOrUnderAnd(out))
	assert.True(t, CheckEquivalent(f, out))
}

// TestWalkOr_EmptyDisjunctionIsFalse guards a deliberate divergence from the
// reference implementation: an Or with no disjuncts, or whose every
// disjunct is FALSE and dropped, normalizes to FALSE, not TRUE. An empty
// disjunction is false by definition; returning TRUE would violate the
// equivalence-preservation invariant. (A literal next to its negation makes
// an Or TRUE rather than empty, and absorption always keeps the smaller
// term, so neither rule empties an Or.)
func TestWalkOr_EmptyDisjunctionIsFalse(t *testing.T) {
	assert.Equal(t, lra.FALSE.Key(), NNF(lra.NewOr()).Key())
	assert.Equal(t, lra.FALSE.Key(), NNF(lra.NewOr(lra.FALSE, lra.FALSE)).Key())

	a := ineq(0, lra.LessEqual, 1)
	contradiction := lra.NewOr(lra.NewAnd(a), lra.NewAnd(lra.NewNot(a)))
	_ = contradiction
}

func TestWalkAnd_ContradictionIsFalse(t *testing.T) {
	a := ineq(0, lra.LessEqual, 1)
	f := lra.NewAnd(a, lra.NewNot(a))
	assert.Equal(t, lra.FALSE.Key(), NNF(f).Key())
}

func TestWalkOr_TautologyIsTrue(t *testing.T) {
	a := ineq(0, lra.LessEqual, 1)
	f := lra.NewOr(a, lra.NewNot(a))
	assert.Equal(t, lra.TRUE.Key(), NNF(f).Key())
}

func TestNNF_PushesNegationThroughAndOr(t *testing.T) {
	a := ineq(0, lra.LessEqual, 1)
	b := ineq(1, lra.GreaterEqual, 0)

	f := lra.NewNot(lra.NewAnd(a, b))
	out := NNF(f)

	or, ok := out.(lra.Or)
	assert.True(t, ok)
	for _, d := range or.Args {
		_, isNot := d.(lra.Not)
		assert.True(t, isNot)
	}
}
