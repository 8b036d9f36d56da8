package ta

// SystemState is a single state of a TASystem: the set of locations the
// automaton network occupies.
type SystemState struct {
	Symbolic SymbolicState
}

// SystemTransition is an edge-set firing from Source to Target.
type SystemTransition struct {
	Source SystemState
	Target SystemState
	Edges  []Edge
}

// System is the adapter contract (spec §6.1) the core consumes: a
// deterministic view over a timed automaton's states, transitions and
// safety properties. The front-end that parses concrete models (e.g. a
// XML/UPPAAL reader) and the simulator that computes enabled edges are
// external collaborators that implement this interface; the core never
// looks past it.
type System interface {
	// InitialState returns the system's starting state.
	InitialState() SystemState

	// NumOfRelaxations returns the number of designated relaxation
	// variables (R in spec §3): relaxation indices referenced by any
	// ClockConstraint must be in [0, R).
	NumOfRelaxations() int

	// OutgoingTransitions returns the transitions enabled from state, in
	// a fixed, reproducible order.
	OutgoingTransitions(state SystemState) []SystemTransition

	// SafetyProperties returns the safety-property obligations that must
	// hold in state.
	SafetyProperties(state SystemState) []Expression
}
