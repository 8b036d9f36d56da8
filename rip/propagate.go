package rip

import (
	"fmt"
	"math/big"

	"github.com/relaxer-go/relaxer/lra"
)

// literal is a clause member reduced to its positive Inequality form: a
// Not(Inequality) is rewritten into the logically equivalent Inequality
// with the negated operator, so clause rewriting only ever has to reason
// about Inequality atoms.
type literal struct {
	ineq lra.Inequality
}

func negateOperator(sym lra.InequalitySymbol) (lra.InequalitySymbol, error) {
	switch sym {
	case lra.LessEqual:
		return lra.GreaterThan, nil
	case lra.LessThan:
		return lra.GreaterEqual, nil
	case lra.GreaterEqual:
		return lra.LessThan, nil
	case lra.GreaterThan:
		return lra.LessEqual, nil
	default:
		return 0, fmt.Errorf("%w: cannot negate symbol %v", ErrNotLRA, sym)
	}
}

func toLiteral(f lra.Formula) (literal, bool, error) {
	switch v := f.(type) {
	case lra.Inequality:
		return literal{ineq: v}, true, nil
	case lra.Not:
		ineq, ok := v.Arg.(lra.Inequality)
		if !ok {
			return literal{}, false, fmt.Errorf("%w: negation of non-inequality atom", ErrNotLRA)
		}
		sym, err := negateOperator(ineq.Symbol)
		if err != nil {
			return literal{}, false, err
		}
		return literal{ineq: lra.NewInequality(ineq.Left, sym, ineq.Right)}, true, nil
	case lra.BoolConst:
		return literal{}, false, nil
	default:
		return literal{}, false, fmt.Errorf("%w: unexpected clause member %s", ErrNotLRA, f.String())
	}
}

// clause is a disjunction of literals together with any constant (TRUE)
// member collapsed away already; isConst/constVal track a bare TRUE/FALSE clause.
type clause struct {
	literals []literal
	isConst  bool
	constVal bool
}

func toClauses(f lra.Formula) ([]clause, error) {
	var conjuncts []lra.Formula
	switch v := f.(type) {
	case lra.And:
		conjuncts = v.Args
	default:
		conjuncts = []lra.Formula{f}
	}

	clauses := make([]clause, 0, len(conjuncts))
	for _, c := range conjuncts {
		var disjuncts []lra.Formula
		if or, ok := c.(lra.Or); ok {
			disjuncts = or.Args
		} else {
			disjuncts = []lra.Formula{c}
		}

		var lits []literal
		clauseIsTrue := false
		for _, d := range disjuncts {
			if bc, isConst := d.(lra.BoolConst); isConst {
				if bool(bc) {
					clauseIsTrue = true
					break
				}
				continue
			}
			lit, ok, err := toLiteral(d)
			if err != nil {
				return nil, err
			}
			if ok {
				lits = append(lits, lit)
			}
		}

		switch {
		case clauseIsTrue:
			clauses = append(clauses, clause{isConst: true, constVal: true})
		case len(lits) == 0:
			clauses = append(clauses, clause{isConst: true, constVal: false})
		default:
			clauses = append(clauses, clause{literals: lits})
		}
	}
	return clauses, nil
}

// normalize returns a sign-normalized key for ineq's Left sum (negating
// every coefficient, and turning/negating the inequality accordingly, if
// the first summand in canonical order is negative), plus the resulting
// symbol/strictness/constant to evaluate against an Interval for that key.
func normalize(ineq lra.Inequality) (key string, sym lra.InequalitySymbol, constant *big.Rat, combined lra.Sum) {
	combined = ineq.Left.CombineLikeTerms()
	sym = ineq.Symbol
	constant = new(big.Rat).Set(ineq.Right)

	if len(combined.Summands) > 0 && combined.Summands[0].Coefficient.Sign() < 0 {
		flipped := make([]lra.Summand, len(combined.Summands))
		for i, s := range combined.Summands {
			flipped[i] = lra.NewSummand(new(big.Rat).Neg(s.Coefficient), s.Var)
		}
		combined = lra.NewSum(flipped...)
		sym = sym.Turned()
		constant.Neg(constant)
	}

	return combined.String(), sym, constant, combined
}

// singleUnitVariable reports whether sum is exactly one summand with
// coefficient 1, returning that variable's identifier. Per the Open
// Question on _add_unit_intervals, cross-sum propagation through a shared
// variable is restricted to this coefficient-1 case.
func singleUnitVariable(sum lra.Sum) (string, bool) {
	if len(sum.Summands) != 1 {
		return "", false
	}
	s := sum.Summands[0]
	if s.Coefficient.Cmp(big.NewRat(1, 1)) != 0 {
		return "", false
	}
	return s.Var.Identifier(), true
}

func boundFromSymbol(sym lra.InequalitySymbol, strict bool, c *big.Rat) (isLower bool, b Bound) {
	switch sym {
	case lra.LessEqual, lra.LessThan:
		return false, NewBound(c, strict)
	default:
		return true, NewBound(c, strict)
	}
}

// propagator holds the intervals collected and derived for one fixpoint
// pass: one per distinct (sign-normalized) sum expression, and one per
// single variable for Minkowski composition of multi-variable sums.
type propagator struct {
	bySum map[string]Interval
	byVar map[string]Interval
}

func newPropagator() *propagator {
	return &propagator{bySum: map[string]Interval{}, byVar: map[string]Interval{}}
}

func (p *propagator) tighten(key string, isLower bool, b Bound) {
	iv, ok := p.bySum[key]
	if !ok {
		iv = Unbounded()
	}
	if isLower {
		iv = iv.TightenLower(b)
	} else {
		iv = iv.TightenUpper(b)
	}
	p.bySum[key] = iv
}

func (p *propagator) tightenVar(id string, isLower bool, b Bound) {
	iv, ok := p.byVar[id]
	if !ok {
		iv = Unbounded()
	}
	if isLower {
		iv = iv.TightenLower(b)
	} else {
		iv = iv.TightenUpper(b)
	}
	p.byVar[id] = iv
}

// collectUnits is step 1: unit-interval collection.
func (p *propagator) collectUnits(clauses []clause) {
	for _, c := range clauses {
		if c.isConst || len(c.literals) != 1 {
			continue
		}
		key, sym, constant, combined := normalize(c.literals[0].ineq)
		isLower, b := boundFromSymbol(sym, c.literals[0].ineq.IsStrict(), constant)
		p.tighten(key, isLower, b)
		if id, ok := singleUnitVariable(combined); ok {
			p.tightenVar(id, isLower, b)
		}
	}
}

// hasCrossedInterval reports whether any tracked sum interval's lower
// bound exceeds its upper bound (or meets it with a strict side),
// witnessing unsatisfiability directly from unit clauses alone.
func (p *propagator) hasCrossedInterval() bool {
	for _, iv := range p.bySum {
		if iv.Lower.Infinite || iv.Upper.Infinite {
			continue
		}
		cmp := iv.Lower.Value.Cmp(&iv.Upper.Value)
		if cmp > 0 {
			return true
		}
		if cmp == 0 && (iv.Lower.Strict || iv.Upper.Strict) {
			return true
		}
	}
	return false
}

// implied is step 2: compose a Minkowski-sum interval for sum from
// per-variable intervals, when every variable of sum is known.
func (p *propagator) implied(sum lra.Sum) (Interval, bool) {
	if len(sum.Summands) == 0 {
		return Interval{}, false
	}
	lower := big.NewRat(0, 1)
	upper := big.NewRat(0, 1)
	lowerStrict, upperStrict := false, false
	lowerInf, upperInf := false, false

	for _, s := range sum.Summands {
		iv, ok := p.byVar[s.Var.Identifier()]
		if !ok {
			return Interval{}, false
		}
		c := s.Coefficient
		if c.Sign() >= 0 {
			if iv.Lower.Infinite {
				lowerInf = true
			} else if !lowerInf {
				lower.Add(lower, new(big.Rat).Mul(c, &iv.Lower.Value))
				lowerStrict = lowerStrict || iv.Lower.Strict
			}
			if iv.Upper.Infinite {
				upperInf = true
			} else if !upperInf {
				upper.Add(upper, new(big.Rat).Mul(c, &iv.Upper.Value))
				upperStrict = upperStrict || iv.Upper.Strict
			}
		} else {
			if iv.Upper.Infinite {
				lowerInf = true
			} else if !lowerInf {
				lower.Add(lower, new(big.Rat).Mul(c, &iv.Upper.Value))
				lowerStrict = lowerStrict || iv.Upper.Strict
			}
			if iv.Lower.Infinite {
				upperInf = true
			} else if !upperInf {
				upper.Add(upper, new(big.Rat).Mul(c, &iv.Lower.Value))
				upperStrict = upperStrict || iv.Lower.Strict
			}
		}
	}

	out := Interval{}
	if lowerInf {
		out.Lower = UnboundedLower()
	} else {
		out.Lower = NewBound(lower, lowerStrict)
	}
	if upperInf {
		out.Upper = UnboundedUpper()
	} else {
		out.Upper = NewBound(upper, upperStrict)
	}
	return out, true
}

// effective returns the tightest interval known for ineq's normalized sum,
// merging any directly-tracked interval with an implied composite one.
func (p *propagator) effective(key string, combined lra.Sum) (Interval, bool) {
	direct, hasDirect := p.bySum[key]
	implied, hasImplied := p.implied(combined)
	switch {
	case hasDirect && hasImplied:
		return direct.TightenLower(implied.Lower).TightenUpper(implied.Upper), true
	case hasDirect:
		return direct, true
	case hasImplied:
		return implied, true
	default:
		return Interval{}, false
	}
}

// evaluates whether the interval proves the literal's inequality always
// true, always false, or neither (unknown).
func evalLiteral(iv Interval, sym lra.InequalitySymbol, strict bool, c *big.Rat) (provenTrue, provenFalse bool) {
	switch sym {
	case lra.LessEqual, lra.LessThan:
		if !iv.Upper.Infinite {
			cmp := iv.Upper.Value.Cmp(c)
			if cmp < 0 {
				provenTrue = true
			} else if cmp == 0 && (!strict || iv.Upper.Strict) {
				provenTrue = true
			}
		}
		if !iv.Lower.Infinite {
			cmp := iv.Lower.Value.Cmp(c)
			if cmp > 0 {
				provenFalse = true
			} else if cmp == 0 && (strict || iv.Lower.Strict) {
				provenFalse = true
			}
		}
	default: // GreaterEqual, GreaterThan
		if !iv.Lower.Infinite {
			cmp := iv.Lower.Value.Cmp(c)
			if cmp > 0 {
				provenTrue = true
			} else if cmp == 0 && (!strict || iv.Lower.Strict) {
				provenTrue = true
			}
		}
		if !iv.Upper.Infinite {
			cmp := iv.Upper.Value.Cmp(c)
			if cmp < 0 {
				provenFalse = true
			} else if cmp == 0 && (strict || iv.Upper.Strict) {
				provenFalse = true
			}
		}
	}
	return
}

// rewrite is step 3: drop proven-false literals, collapse clauses proven
// true, and detect unsatisfiability.
func (p *propagator) rewrite(clauses []clause) (out []clause, changed bool, unsat bool) {
	for _, c := range clauses {
		if c.isConst {
			if !c.constVal {
				return nil, false, true
			}
			continue
		}

		// A unit clause's own fact is exactly what tightened its interval;
		// evaluating it against that same interval would always prove it
		// trivially true and erase the fact it recorded. Unit clauses pass
		// through untouched — only multi-literal clauses get simplified
		// using the facts unit clauses elsewhere in the formula established.
		if len(c.literals) == 1 {
			out = append(out, c)
			continue
		}

		var kept []literal
		dropped := false
		clauseTrue := false
		for _, lit := range c.literals {
			key, sym, constant, combined := normalize(lit.ineq)
			iv, ok := p.effective(key, combined)
			if !ok {
				kept = append(kept, lit)
				continue
			}
			provenTrue, provenFalse := evalLiteral(iv, sym, lit.ineq.IsStrict(), constant)
			switch {
			case provenTrue:
				clauseTrue = true
			case provenFalse:
				dropped = true
			default:
				kept = append(kept, lit)
			}
		}

		if clauseTrue {
			changed = true
			continue
		}
		if dropped {
			changed = true
		}
		if len(kept) == 0 {
			return nil, false, true
		}
		out = append(out, clause{literals: kept})
	}
	return out, changed, false
}

func clausesToFormula(clauses []clause) lra.Formula {
	if len(clauses) == 0 {
		return lra.TRUE
	}
	conjuncts := make([]lra.Formula, len(clauses))
	for i, c := range clauses {
		if len(c.literals) == 1 {
			conjuncts[i] = c.literals[0].ineq
			continue
		}
		args := make([]lra.Formula, len(c.literals))
		for j, lit := range c.literals {
			args[j] = lit.ineq
		}
		conjuncts[i] = lra.NewOr(args...)
	}
	if len(conjuncts) == 1 {
		return conjuncts[0]
	}
	return lra.NewAnd(conjuncts...)
}

// Propagate tightens unit intervals over cnf's sum expressions and
// rewrites clauses to fixpoint, returning an equisatisfiable CNF. cnf must
// already be in conjunctive normal form (e.g. via normalform.CNF); a
// non-LRA sub-expression is reported via ErrNotLRA.
func Propagate(cnf lra.Formula) (lra.Formula, error) {
	if bc, ok := cnf.(lra.BoolConst); ok {
		return bc, nil
	}

	f := cnf
	for {
		clauses, err := toClauses(f)
		if err != nil {
			return nil, err
		}

		p := newPropagator()
		p.collectUnits(clauses)
		if p.hasCrossedInterval() {
			return lra.FALSE, nil
		}

		rewritten, changed, unsat := p.rewrite(clauses)
		if unsat {
			return lra.FALSE, nil
		}
		f = clausesToFormula(rewritten)
		if !changed {
			return f, nil
		}
	}
}
