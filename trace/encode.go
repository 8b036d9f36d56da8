package trace

import (
	"fmt"
	"math/big"

	"github.com/relaxer-go/relaxer/lra"
	"github.com/relaxer-go/relaxer/ta"
)

// clockResets is monotone in depth per clock: resets are always appended
// in DFS order and truncated on backtrack (spec §3 invariant).
type clockResets map[ta.Clock][]int

func (r clockResets) record(c ta.Clock, depth int) {
	r[c] = append(r[c], depth)
}

// truncate drops every recorded reset at depth >= d, restoring the state
// the DFS had when it first reached depth d on some earlier branch.
func (r clockResets) truncate(d int) {
	for c, depths := range r {
		kept := depths[:0:0]
		for _, rd := range depths {
			if rd < d {
				kept = append(kept, rd)
			}
		}
		r[c] = kept
	}
}

// greatestResetBefore returns the greatest reset depth <= depth recorded
// for c, or 0 if none (every clock is implicitly reset at the initial
// state).
func (r clockResets) greatestResetBefore(c ta.Clock, depth int) int {
	best := 0
	for _, rd := range r[c] {
		if rd <= depth && rd > best {
			best = rd
		}
	}
	return best
}

// clockSum returns the sum delta_r + delta_{r+1} + ... + delta_{depth-1}
// where r is the greatest reset at or before depth — the clock's symbolic
// value upon entering depth (before any delay at depth itself elapses).
func clockSum(resets clockResets, c ta.Clock, depth int) lra.Sum {
	r := resets.greatestResetBefore(c, depth)
	var summands []lra.Summand
	for j := r; j < depth; j++ {
		summands = append(summands, lra.NewSummand(big.NewRat(1, 1), lra.DeltaVariable{Depth: j}))
	}
	return lra.NewSum(summands...)
}

// plusDelta returns sum with an added +1*delta_depth summand.
func plusDelta(sum lra.Sum, depth int) lra.Sum {
	summands := append(append([]lra.Summand(nil), sum.Summands...),
		lra.NewSummand(big.NewRat(1, 1), lra.DeltaVariable{Depth: depth}))
	return lra.NewSum(summands...)
}

// relaxSummand returns the signed relaxation summand for a constraint's
// operator: >=/> use +1, <=/< use -1 (spec §4.2 clock substitution). The
// sign is picked per generated inequality, not per constraint, so that an
// Equal constraint — which expands into both a >= and a <= inequality —
// signs each half correctly.
func relaxSummand(idx int, positive bool) lra.Summand {
	coeff := big.NewRat(1, 1)
	if !positive {
		coeff = big.NewRat(-1, 1)
	}
	return lra.NewSummand(coeff, lra.RelaxationVariable{Index: idx})
}

func withRelax(sum lra.Sum, idx *int, positive bool) lra.Sum {
	if idx == nil {
		return sum
	}
	summands := append(append([]lra.Summand(nil), sum.Summands...), relaxSummand(*idx, positive))
	return lra.NewSum(summands...)
}

func toLRASymbol(op ta.Operator, positive bool) (lra.InequalitySymbol, error) {
	switch op {
	case ta.GreaterThan:
		return lra.GreaterThan, nil
	case ta.LessThan:
		return lra.LessThan, nil
	case ta.GreaterEqual:
		return lra.GreaterEqual, nil
	case ta.LessEqual:
		return lra.LessEqual, nil
	case ta.Equal:
		if positive {
			return lra.GreaterEqual, nil
		}
		return lra.LessEqual, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedOperator, op)
	}
}

// encodeConstraint builds the inequality atom(s) for a single clock
// constraint given its already-substituted clock sum (base, before any
// relaxation summand or added delta). Equal expands into a conjunction of
// two non-strict inequalities; every other operator yields exactly one.
func encodeConstraint(cc ta.ClockConstraint, base lra.Sum) (lra.Formula, error) {
	if cc.Operator == ta.NotEqual {
		return nil, fmt.Errorf("%w: != on %s", ErrUnsupportedOperator, cc.Clock)
	}

	limit := big.NewRat(cc.Limit, 1)

	if cc.Operator == ta.Equal {
		geSum := withRelax(base, cc.RelaxationIdx, true)
		leSum := withRelax(base, cc.RelaxationIdx, false)
		ge := lra.NewInequality(geSum, lra.GreaterEqual, limit)
		le := lra.NewInequality(leSum, lra.LessEqual, limit)
		return lra.NewAnd(ge, le), nil
	}

	positive := cc.Operator == ta.GreaterThan || cc.Operator == ta.GreaterEqual
	sym, err := toLRASymbol(cc.Operator, positive)
	if err != nil {
		return nil, err
	}
	sum := withRelax(base, cc.RelaxationIdx, positive)
	return lra.NewInequality(sum, sym, limit), nil
}

// encodeGuard encodes an edge guard firing at the transition into depth d:
// the clock's value is its symbolic value upon entering depth d-1, plus
// the full delay that elapsed at depth d-1 (the edge fires at the end of
// that sojourn).
func encodeGuard(resets clockResets, cc ta.ClockConstraint, targetDepth int) (lra.Formula, error) {
	prev := targetDepth - 1
	base := plusDelta(clockSum(resets, cc.Clock, prev), prev)
	return encodeConstraint(cc, base)
}

// encodeInvariant encodes a location invariant at depth d, producing two
// atoms: one using the clock's value on entry to depth d, one using its
// value after the depth-d delay elapses.
func encodeInvariant(resets clockResets, cc ta.ClockConstraint, depth int) (entry, afterDelay lra.Formula, err error) {
	base := clockSum(resets, cc.Clock, depth)
	entry, err = encodeConstraint(cc, base)
	if err != nil {
		return nil, nil, err
	}
	afterDelay, err = encodeConstraint(cc, plusDelta(base, depth))
	if err != nil {
		return nil, nil, err
	}
	return entry, afterDelay, nil
}

// urgentAtoms returns the delta_d<=0 AND delta_d>=0 pair that makes time
// unable to pass at an urgent location.
func urgentAtoms(depth int) []lra.Formula {
	d := lra.NewSum(lra.NewSummand(big.NewRat(1, 1), lra.DeltaVariable{Depth: depth}))
	zero := big.NewRat(0, 1)
	return []lra.Formula{
		lra.NewInequality(d, lra.LessEqual, zero),
		lra.NewInequality(d, lra.GreaterEqual, zero),
	}
}

// encodeExpression recursively encodes a safety-property Expression. A
// LocationPredicate is resolved structurally against state (it is not an
// LRA atom); a ClockConstraint is encoded with the given delta-inclusion.
func encodeExpression(expr ta.Expression, resets clockResets, state ta.SymbolicState, depth int, withDelta bool) (lra.Formula, error) {
	switch v := expr.(type) {
	case ta.BoolOr:
		left, err := encodeExpression(v.Left, resets, state, depth, withDelta)
		if err != nil {
			return nil, err
		}
		right, err := encodeExpression(v.Right, resets, state, depth, withDelta)
		if err != nil {
			return nil, err
		}
		return lra.NewOr(left, right), nil
	case ta.BoolAnd:
		left, err := encodeExpression(v.Left, resets, state, depth, withDelta)
		if err != nil {
			return nil, err
		}
		right, err := encodeExpression(v.Right, resets, state, depth, withDelta)
		if err != nil {
			return nil, err
		}
		return lra.NewAnd(left, right), nil
	case ta.BoolNot:
		arg, err := encodeExpression(v.Arg, resets, state, depth, withDelta)
		if err != nil {
			return nil, err
		}
		return lra.NewNot(arg), nil
	case ta.LocationPredicate:
		return lra.BoolConst(state.HasLocationID(v.LocationID)), nil
	case ta.ClockConstraint:
		base := clockSum(resets, v.Clock, depth)
		if withDelta {
			base = plusDelta(base, depth)
		}
		return encodeConstraint(v, base)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownExpression, expr)
	}
}
