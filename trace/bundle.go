// Package trace implements the DFS trace enumerator (spec §4.2): it walks
// a ta.System's transitions to bounded depth, incrementally encoding
// guards, invariants, resets, urgency, and safety properties into LRA
// formulas, and yields one immutable TraceConstraintBundle per trace.
package trace

import (
	"github.com/relaxer-go/relaxer/lra"
	"github.com/relaxer-go/relaxer/ta"
)

// TraceConstraintBundle is an immutable snapshot of a single symbolic
// trace of realized length w+1: the states visited, the delay/relaxation
// variables in scope, and the LRA atoms and safety-property obligations
// contributed at each depth.
type TraceConstraintBundle struct {
	SymbolicTrace    []ta.SymbolicState
	RelaxationVars   []lra.Variable
	DeltaVars        []lra.Variable
	Inequalities     [][]lra.Formula
	PropertyFormulas [][]lra.Formula
}

// TraceFormula conjoins every inequality contributed across every depth of
// the bundle — the trace_formula of spec §4.3/§4.6, not yet including the
// delta/relaxation non-negativity bounds (the QE driver adds those).
func (b TraceConstraintBundle) TraceFormula() lra.Formula {
	var atoms []lra.Formula
	for _, depth := range b.Inequalities {
		atoms = append(atoms, depth...)
	}
	if len(atoms) == 0 {
		return lra.TRUE
	}
	return lra.NewAnd(atoms...)
}

// PropertiesFormula conjoins every safety-property obligation contributed
// across every depth of the bundle.
func (b TraceConstraintBundle) PropertiesFormula() lra.Formula {
	var atoms []lra.Formula
	for _, depth := range b.PropertyFormulas {
		atoms = append(atoms, depth...)
	}
	if len(atoms) == 0 {
		return lra.TRUE
	}
	return lra.NewAnd(atoms...)
}

func cloneStates(s []ta.SymbolicState) []ta.SymbolicState {
	out := make([]ta.SymbolicState, len(s))
	copy(out, s)
	return out
}

func cloneFormulaSlices(s [][]lra.Formula) [][]lra.Formula {
	out := make([][]lra.Formula, len(s))
	for i, d := range s {
		out[i] = append([]lra.Formula(nil), d...)
	}
	return out
}
