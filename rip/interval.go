// Package rip implements real-interval propagation: tightening unit
// intervals over the sum expressions appearing in a CNF formula and using
// them to drop or resolve clauses, producing an equisatisfiable CNF.
package rip

import "math/big"

// Bound is one side of an Interval: either a finite rational limit with a
// strictness flag, or an infinite bound. It is a value type (no pointer
// fields shared with a stored Interval) so propagation can copy and mutate
// it freely without aliasing a previously recorded bound.
type Bound struct {
	Infinite bool
	Value    big.Rat
	Strict   bool
}

// UnboundedLower is (-∞).
func UnboundedLower() Bound { return Bound{Infinite: true} }

// UnboundedUpper is (+∞).
func UnboundedUpper() Bound { return Bound{Infinite: true} }

// NewBound builds a finite bound.
func NewBound(v *big.Rat, strict bool) Bound {
	b := Bound{Value: *v, Strict: strict}
	return b
}

func (b Bound) cmpValue(o Bound) int { return b.Value.Cmp(&o.Value) }

// tightenUpper keeps the smaller (stricter, i.e. lower-valued) of the two
// upper bounds. On an exact value tie it prefers the NON-strict bound —
// reproducing the reference RIP implementation's observable behavior,
// which is inverted from what "tighter" should mean (a strict bound on an
// equal value is the stronger constraint). Preserved deliberately; see
// DESIGN.md.
func tightenUpper(cur, new_ Bound) Bound {
	if cur.Infinite {
		return new_
	}
	if new_.Infinite {
		return cur
	}
	switch cur.cmpValue(new_) {
	case 1:
		return new_
	case -1:
		return cur
	default:
		if cur.Strict && !new_.Strict {
			return new_
		}
		return cur
	}
}

// tightenLower keeps the larger (stricter, i.e. higher-valued) of the two
// lower bounds. On an exact tie it prefers the strict bound, the
// mathematically correct choice — this is the counterpart the Open
// Question singles tighten_upper out from; lower-bound tightening is not
// affected by that discrepancy.
func tightenLower(cur, new_ Bound) Bound {
	if cur.Infinite {
		return new_
	}
	if new_.Infinite {
		return cur
	}
	switch cur.cmpValue(new_) {
	case -1:
		return new_
	case 1:
		return cur
	default:
		if new_.Strict {
			return new_
		}
		return cur
	}
}

// Interval is a (lower, upper) pair of Bounds for a single sum expression.
type Interval struct {
	Lower Bound
	Upper Bound
}

// Unbounded is (-∞, +∞).
func Unbounded() Interval { return Interval{Lower: UnboundedLower(), Upper: UnboundedUpper()} }

// TightenUpper narrows i's upper bound against b.
func (i Interval) TightenUpper(b Bound) Interval {
	i.Upper = tightenUpper(i.Upper, b)
	return i
}

// TightenLower narrows i's lower bound against b.
func (i Interval) TightenLower(b Bound) Interval {
	i.Lower = tightenLower(i.Lower, b)
	return i
}

// scaleBound multiplies a Bound by a positive or negative rational coefficient.
// A negative coefficient flips which side of the interval the bound
// constrains, which callers account for.
func scaleBound(b Bound, c *big.Rat) Bound {
	if b.Infinite {
		return b
	}
	v := new(big.Rat).Mul(&b.Value, c)
	return Bound{Value: *v, Strict: b.Strict}
}
