// Package qe implements the quantifier-elimination driver (C5) and a
// from-scratch Fourier-Motzkin reference oracle for the external
// collaborator interface spec §4.3/§6.2 describes. No SMT or polyhedral
// library exists in the example pack for this role, so the reference
// backend is implemented natively here; see DESIGN.md.
package qe

import "github.com/relaxer-go/relaxer/lra"

// Sentence is the quantified LRA sentence the oracle eliminates (spec
// §4.3): `qe(phi)` where `phi = ForAll(Bound, Body) AND Extra`. Body is
// the implication trace_formula => properties_formula; Extra carries the
// conjuncts that sit outside the quantifier (the relaxation-variable
// lower bounds).
type Sentence struct {
	Bound []lra.Variable
	Body  lra.Formula
	Extra []lra.Formula
}
