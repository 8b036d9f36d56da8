// Package polyhedron implements the optimizer (C7): for each disjunct of
// the global DNF it constructs the feasible polyhedron A*rho <= b in
// matrix form, enumerates its vertex/ray generators, masks unbounded
// coordinates, and samples edges between surviving non-dominated
// vertices into the Pareto set (spec §4.8).
package polyhedron

import (
	"fmt"
	"math/big"

	"github.com/relaxer-go/relaxer/lra"
)

// System is a conjunction of inequalities A*x <= b over a fixed variable
// ordering, every strict inequality already converted to non-strict via
// the configured epsilon (spec §4.8 step 1).
type System struct {
	Vars []lra.Variable
	A    [][]*big.Rat
	B    []*big.Rat
}

// FromTerm builds a System over vars from a DNF disjunct (a conjunction of
// Inequality atoms), converting every symbol to "<=" form and reducing
// the right-hand side of a strict inequality by epsilon.
func FromTerm(vars []lra.Variable, term []lra.Inequality, epsilon *big.Rat) (System, error) {
	index := make(map[string]int, len(vars))
	for i, v := range vars {
		index[v.Identifier()] = i
	}

	sys := System{Vars: vars}
	for _, ineq := range term {
		row := make([]*big.Rat, len(vars))
		for i := range row {
			row[i] = big.NewRat(0, 1)
		}

		combined := ineq.Left.CombineLikeTerms()
		for _, s := range combined.Summands {
			i, ok := index[s.Var.Identifier()]
			if !ok {
				return System{}, fmt.Errorf("polyhedron: variable %s not among objectives", s.Var.Identifier())
			}
			row[i] = new(big.Rat).Set(s.Coefficient)
		}

		rhs := new(big.Rat).Set(ineq.Right)

		switch ineq.Symbol {
		case lra.LessEqual:
			// already in <= form
		case lra.LessThan:
			rhs.Sub(rhs, epsilon)
		case lra.GreaterEqual, lra.GreaterThan:
			for i := range row {
				row[i].Neg(row[i])
			}
			rhs.Neg(rhs)
			if ineq.Symbol == lra.GreaterThan {
				rhs.Sub(rhs, epsilon)
			}
		}

		sys.A = append(sys.A, row)
		sys.B = append(sys.B, rhs)
	}
	return sys, nil
}

// satisfies reports whether x satisfies every row of sys (A*x <= b).
func (sys System) satisfies(x []*big.Rat) bool {
	for i, row := range sys.A {
		sum := big.NewRat(0, 1)
		for j, coeff := range row {
			sum.Add(sum, new(big.Rat).Mul(coeff, x[j]))
		}
		if sum.Cmp(sys.B[i]) > 0 {
			return false
		}
	}
	return true
}

// satisfiesHomogeneous reports whether d satisfies every row's recession
// condition A*d <= 0, the defining inequalities of the system's recession
// cone.
func (sys System) satisfiesHomogeneous(d []*big.Rat) bool {
	zero := big.NewRat(0, 1)
	for _, row := range sys.A {
		sum := big.NewRat(0, 1)
		for j, coeff := range row {
			sum.Add(sum, new(big.Rat).Mul(coeff, d[j]))
		}
		if sum.Cmp(zero) > 0 {
			return false
		}
	}
	return true
}
