package trace

import (
	"github.com/relaxer-go/relaxer/lra"
	"github.com/relaxer-go/relaxer/ta"
)

// pending is a transition staged on the DFS stack, annotated with the
// depth its target will occupy once applied.
type pending struct {
	depth      int
	transition ta.SystemTransition
}

// DFSTraceIterator is a stateful producer (spec §4.2, §9 "iterator as
// cooperative producer"): it owns the DFS stack, the monotone clock-reset
// map, and the per-depth inequality/property arrays exclusively, and
// exposes Next as an explicit pull with no implicit yielding. The QE
// driver (C5) is its only caller.
type DFSTraceIterator struct {
	system ta.System
	depth  int
	r      int

	stack  []pending
	resets clockResets

	symbolicTrace    []ta.SymbolicState
	inequalities     [][]lra.Formula
	propertyFormulas [][]lra.Formula

	pendingInitial bool
	done           bool
}

// NewDFSTraceIterator builds an iterator over system's traces up to
// length k+1 (depth <= k). It performs spec §4.2's "initialization" step
// eagerly: encoding depth 0 and staging the initial state's outgoing
// transitions.
func NewDFSTraceIterator(system ta.System, k int) (*DFSTraceIterator, error) {
	it := &DFSTraceIterator{
		system:         system,
		depth:          k,
		r:              system.NumOfRelaxations(),
		resets:         clockResets{},
		pendingInitial: true,
	}

	s0 := system.InitialState()
	it.symbolicTrace = []ta.SymbolicState{s0.Symbolic}
	it.inequalities = [][]lra.Formula{nil}
	it.propertyFormulas = [][]lra.Formula{nil}

	if err := it.encodeStateAt(0, s0.Symbolic); err != nil {
		return nil, err
	}
	if err := it.encodePropertiesAt(0, s0); err != nil {
		return nil, err
	}

	if k >= 1 {
		it.pushTransitions(s0, 1)
	}

	return it, nil
}

func (it *DFSTraceIterator) pushTransitions(state ta.SystemState, targetDepth int) {
	for _, t := range it.system.OutgoingTransitions(state) {
		it.stack = append(it.stack, pending{depth: targetDepth, transition: t})
	}
}

// encodeStateAt appends the location-invariant and urgency atoms for
// state, occupying symbolicTrace index depth, into inequalities[depth].
func (it *DFSTraceIterator) encodeStateAt(depth int, state ta.SymbolicState) error {
	for _, loc := range state.Locations {
		for _, inv := range loc.Invariants {
			entry, afterDelay, err := encodeInvariant(it.resets, inv, depth)
			if err != nil {
				return err
			}
			it.inequalities[depth] = append(it.inequalities[depth], entry, afterDelay)
		}
		if loc.Urgent {
			it.inequalities[depth] = append(it.inequalities[depth], urgentAtoms(depth)...)
		}
	}
	return nil
}

// encodePropertiesAt appends the safety-property obligations for state,
// each encoded twice (without and with the depth-d delay), into
// propertyFormulas[depth].
func (it *DFSTraceIterator) encodePropertiesAt(depth int, state ta.SystemState) error {
	for _, prop := range it.system.SafetyProperties(state) {
		zero, err := encodeExpression(prop, it.resets, state.Symbolic, depth, false)
		if err != nil {
			return err
		}
		withDelta, err := encodeExpression(prop, it.resets, state.Symbolic, depth, true)
		if err != nil {
			return err
		}
		it.propertyFormulas[depth] = append(it.propertyFormulas[depth], zero, withDelta)
	}
	return nil
}

// encodeTransitionAt encodes t's guards at depth d (fired from depth d-1)
// into inequalities[d], and records its resets at depth d.
func (it *DFSTraceIterator) encodeTransitionAt(depth int, t ta.SystemTransition) error {
	for _, edge := range t.Edges {
		for _, guard := range edge.Guards {
			atom, err := encodeGuard(it.resets, guard, depth)
			if err != nil {
				return err
			}
			it.inequalities[depth] = append(it.inequalities[depth], atom)
		}
	}
	for _, edge := range t.Edges {
		for _, c := range edge.Resets {
			it.resets.record(c, depth)
		}
	}
	return nil
}

func (it *DFSTraceIterator) snapshot() *TraceConstraintBundle {
	relax := make([]lra.Variable, it.r)
	for i := 0; i < it.r; i++ {
		relax[i] = lra.RelaxationVariable{Index: i}
	}
	delta := make([]lra.Variable, len(it.symbolicTrace))
	for i := range delta {
		delta[i] = lra.DeltaVariable{Depth: i}
	}
	return &TraceConstraintBundle{
		SymbolicTrace:    cloneStates(it.symbolicTrace),
		RelaxationVars:   relax,
		DeltaVars:        delta,
		Inequalities:     cloneFormulaSlices(it.inequalities),
		PropertyFormulas: cloneFormulaSlices(it.propertyFormulas),
	}
}

// Next produces the next trace constraint bundle, or ok=false once every
// trace up to depth k has been enumerated.
func (it *DFSTraceIterator) Next() (bundle *TraceConstraintBundle, ok bool, err error) {
	if it.pendingInitial {
		it.pendingInitial = false
		return it.snapshot(), true, nil
	}
	if it.done || len(it.stack) == 0 {
		it.done = true
		return nil, false, nil
	}

	top := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
	d, t := top.depth, top.transition

	it.symbolicTrace = it.symbolicTrace[:d]
	it.inequalities = it.inequalities[:d]
	it.propertyFormulas = it.propertyFormulas[:d]
	it.resets.truncate(d)

	it.symbolicTrace = append(it.symbolicTrace, t.Target.Symbolic)
	it.inequalities = append(it.inequalities, nil)
	it.propertyFormulas = append(it.propertyFormulas, nil)

	if err := it.encodeTransitionAt(d, t); err != nil {
		return nil, false, err
	}
	if err := it.encodeStateAt(d, t.Target.Symbolic); err != nil {
		return nil, false, err
	}
	if err := it.encodePropertiesAt(d, t.Target); err != nil {
		return nil, false, err
	}

	if d+1 <= it.depth {
		it.pushTransitions(t.Target, d+1)
	}

	return it.snapshot(), true, nil
}
