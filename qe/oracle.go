package qe

import (
	"github.com/relaxer-go/relaxer/lra"
	"github.com/relaxer-go/relaxer/normalform"
)

// Oracle eliminates the quantifier from a Sentence, returning a
// quantifier-free LRA formula equivalent to it. Spec §4.3/§6.2 describe
// this as a pluggable external collaborator; FourierMotzkinOracle is the
// built-in reference implementation.
type Oracle interface {
	Eliminate(s Sentence) (lra.Formula, error)
}

// FourierMotzkinOracle eliminates ForAll(Bound, Body) by rewriting it as
// NOT Exists(Bound, NOT Body), projecting Bound out of NOT Body's DNF term
// by term via classical Fourier-Motzkin elimination, and re-negating.
type FourierMotzkinOracle struct{}

// Eliminate implements Oracle.
func (FourierMotzkinOracle) Eliminate(s Sentence) (lra.Formula, error) {
	negatedBody := normalform.NNF(lra.NewNot(s.Body))
	dnf := normalform.DNF(negatedBody)

	var terms []lra.Formula
	disjuncts := []lra.Formula{dnf}
	if or, ok := dnf.(lra.Or); ok {
		disjuncts = or.Args
	}

	for _, d := range disjuncts {
		ineqs, sat, err := toConjunctiveTerm(d)
		if err != nil {
			return nil, err
		}
		if !sat {
			continue
		}
		projected, feasible := eliminateAll(ineqs, s.Bound)
		if !feasible {
			continue
		}
		terms = append(terms, termToFormula(projected))
	}

	var exists lra.Formula
	if len(terms) == 0 {
		exists = lra.FALSE
	} else {
		exists = lra.NewOr(terms...)
	}

	forAll := normalform.NNF(lra.NewNot(exists))

	conjuncts := append([]lra.Formula{forAll}, s.Extra...)
	return lra.NewAnd(conjuncts...), nil
}
