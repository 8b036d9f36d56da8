package polyhedron

import (
	"math/big"

	"github.com/relaxer-go/relaxer/lra"
	"github.com/relaxer-go/relaxer/pareto"
)

// defaultGridPoints is spec §4.8 step 7's default G: vertices plus one
// interior sample per surviving edge.
const defaultGridPoints = 2

// MaximizeRelaxation runs the optimizer over every disjunct of constraints
// and merges the results into one Pareto set (spec §4.8/§4.9). supported
// is true iff constraints has exactly one disjunct (the conjunctive fast
// path — no case split was needed to reach the answer). gridPoints <= 0
// selects the spec default.
func MaximizeRelaxation(vars []lra.Variable, constraints lra.DNFFormula, epsilon *big.Rat, gridPoints int) (set *pareto.Set, supported bool, err error) {
	if gridPoints <= 0 {
		gridPoints = defaultGridPoints
	}

	set = pareto.NewSet()
	supported = len(constraints.Terms) == 1

	for _, term := range constraints.Terms {
		sys, err := FromTerm(vars, term, epsilon)
		if err != nil {
			return nil, false, err
		}
		Optimize(sys, gridPoints, set)
	}
	return set, supported, nil
}
