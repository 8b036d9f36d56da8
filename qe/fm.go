package qe

import (
	"fmt"
	"math/big"

	"github.com/relaxer-go/relaxer/lra"
)

// boundExpr is "v ~ (sum + konst)", the result of solving an inequality
// for a single variable v: sum never contains v.
type boundExpr struct {
	sum    lra.Sum
	konst  *big.Rat
	strict bool
}

func coefficientOf(combined lra.Sum, v lra.Variable) *big.Rat {
	for _, s := range combined.Summands {
		if s.Var.Identifier() == v.Identifier() {
			return new(big.Rat).Set(s.Coefficient)
		}
	}
	return nil
}

func withoutVar(combined lra.Sum, v lra.Variable) lra.Sum {
	out := make([]lra.Summand, 0, len(combined.Summands))
	for _, s := range combined.Summands {
		if s.Var.Identifier() != v.Identifier() {
			out = append(out, s)
		}
	}
	return lra.NewSum(out...)
}

func scaleSum(sum lra.Sum, factor *big.Rat) lra.Sum {
	out := make([]lra.Summand, len(sum.Summands))
	for i, s := range sum.Summands {
		out[i] = lra.NewSummand(new(big.Rat).Mul(s.Coefficient, factor), s.Var)
	}
	return lra.NewSum(out...)
}

func subtractSums(a, b lra.Sum) lra.Sum {
	out := make([]lra.Summand, 0, len(a.Summands)+len(b.Summands))
	out = append(out, a.Summands...)
	for _, s := range b.Summands {
		out = append(out, lra.NewSummand(new(big.Rat).Neg(s.Coefficient), s.Var))
	}
	return lra.NewSum(out...).CombineLikeTerms()
}

// trivialTruth reports whether a variable-free inequality (0 ~ right) is
// unconditionally true or false.
func trivialTruth(sym lra.InequalitySymbol, right *big.Rat) (isTrue, isFalse bool) {
	zero := big.NewRat(0, 1)
	cmp := zero.Cmp(right)
	switch sym {
	case lra.LessEqual:
		return cmp <= 0, cmp > 0
	case lra.LessThan:
		return cmp < 0, cmp >= 0
	case lra.GreaterEqual:
		return cmp >= 0, cmp < 0
	default: // GreaterThan
		return cmp > 0, cmp <= 0
	}
}

// eliminateOne projects variable v out of a conjunctive term (Fourier-
// Motzkin elimination): every inequality mentioning v with a positive
// coefficient becomes a lower bound on v, every one with a negative
// coefficient becomes an upper bound; the result is every pairwise
// combination of a lower and an upper bound, re-expressed without v.
// Inequalities not mentioning v pass through unchanged. feasible is false
// if some combination is a numeric contradiction (the term is
// unsatisfiable, independent of v).
func eliminateOne(term []lra.Inequality, v lra.Variable) (out []lra.Inequality, feasible bool) {
	var lowers, uppers []boundExpr
	var others []lra.Inequality

	for _, ineq := range term {
		combined := ineq.Left.CombineLikeTerms()
		coeff := coefficientOf(combined, v)
		if coeff == nil || coeff.Sign() == 0 {
			others = append(others, ineq)
			continue
		}

		rest := withoutVar(combined, v)
		invCoeff := new(big.Rat).Inv(coeff)
		be := boundExpr{
			sum:    scaleSum(rest, new(big.Rat).Neg(invCoeff)),
			konst:  new(big.Rat).Mul(ineq.Right, invCoeff),
			strict: ineq.IsStrict(),
		}

		sym := ineq.Symbol
		if coeff.Sign() < 0 {
			sym = sym.Turned()
		}
		if sym == lra.GreaterEqual || sym == lra.GreaterThan {
			lowers = append(lowers, be)
		} else {
			uppers = append(uppers, be)
		}
	}

	out = append(out, others...)
	feasible = true

	for _, lo := range lowers {
		for _, up := range uppers {
			strict := lo.strict || up.strict
			sym := lra.LessEqual
			if strict {
				sym = lra.LessThan
			}
			sumDiff := subtractSums(lo.sum, up.sum)
			constDiff := new(big.Rat).Sub(up.konst, lo.konst)

			if sumDiff.IsEmpty() {
				isTrue, isFalse := trivialTruth(sym, constDiff)
				if isFalse {
					feasible = false
				}
				if isTrue || isFalse {
					continue
				}
			}
			out = append(out, lra.NewInequality(sumDiff, sym, constDiff))
		}
	}

	return out, feasible
}

// eliminateAll projects every variable in bound out of term, in order.
func eliminateAll(term []lra.Inequality, bound []lra.Variable) (out []lra.Inequality, feasible bool) {
	out = term
	for _, v := range bound {
		var ok bool
		out, ok = eliminateOne(out, v)
		if !ok {
			return nil, false
		}
	}
	return out, true
}

// toConjunctiveTerm reduces a DNF conjunctive term (an And of
// Inequality/Not(Inequality) literals, a bare literal, or a BoolConst)
// into an explicit inequality list, or (nil, false) if the term is
// trivially unsatisfiable.
func toConjunctiveTerm(f lra.Formula) ([]lra.Inequality, bool, error) {
	if bc, ok := f.(lra.BoolConst); ok {
		return nil, bool(bc), nil
	}

	var members []lra.Formula
	if and, ok := f.(lra.And); ok {
		members = and.Args
	} else {
		members = []lra.Formula{f}
	}

	var out []lra.Inequality
	for _, m := range members {
		switch v := m.(type) {
		case lra.Inequality:
			out = append(out, v)
		case lra.Not:
			ineq, ok := v.Arg.(lra.Inequality)
			if !ok {
				return nil, false, fmt.Errorf("%w: negation of non-inequality atom", ErrNotLRA)
			}
			sym, err := negateSymbol(ineq.Symbol)
			if err != nil {
				return nil, false, err
			}
			out = append(out, lra.NewInequality(ineq.Left, sym, ineq.Right))
		case lra.BoolConst:
			if !bool(v) {
				return nil, false, nil
			}
		default:
			return nil, false, fmt.Errorf("%w: unexpected conjunct %s", ErrNotLRA, m.String())
		}
	}
	return out, true, nil
}

func negateSymbol(sym lra.InequalitySymbol) (lra.InequalitySymbol, error) {
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

func termToFormula(term []lra.Inequality) lra.Formula {
	if len(term) == 0 {
		return lra.TRUE
	}
	args := make([]lra.Formula, len(term))
	for i, ineq := range term {
		args[i] = ineq
	}
	if len(args) == 1 {
		return args[0]
	}
	return lra.NewAnd(args...)
}
