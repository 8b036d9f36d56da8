package ta

import "sort"

// InMemorySystem is a small reference System backed by explicit state and
// transition tables. It stands in for the XML/UPPAAL front-end and
// concrete simulator that spec.md places out of scope, and is what the
// tests build their TA models with. The CLI does not use it: a config
// input's relax_all field is parsed but not acted on.
type InMemorySystem struct {
	Initial         SystemState
	Relaxations     int
	TransitionsByID map[string][]SystemTransition
	PropertiesByID  map[string][]Expression
	keyOf           func(SystemState) string
}

// NewInMemorySystem builds a System from an initial state and a key
// function used to index transitions/properties by state identity. If
// keyOf is nil, SymbolicState.String is used.
func NewInMemorySystem(initial SystemState, relaxations int, keyOf func(SystemState) string) *InMemorySystem {
	if keyOf == nil {
		keyOf = func(s SystemState) string { return s.Symbolic.String() }
	}
	return &InMemorySystem{
		Initial:         initial,
		Relaxations:     relaxations,
		TransitionsByID: map[string][]SystemTransition{},
		PropertiesByID:  map[string][]Expression{},
		keyOf:           keyOf,
	}
}

// AddTransition registers a transition as outgoing from its Source state.
func (s *InMemorySystem) AddTransition(t SystemTransition) {
	key := s.keyOf(t.Source)
	s.TransitionsByID[key] = append(s.TransitionsByID[key], t)
}

// SetSafetyProperties registers the safety obligations for a state.
func (s *InMemorySystem) SetSafetyProperties(state SystemState, props ...Expression) {
	s.PropertiesByID[s.keyOf(state)] = props
}

func (s *InMemorySystem) InitialState() SystemState { return s.Initial }
func (s *InMemorySystem) NumOfRelaxations() int      { return s.Relaxations }

func (s *InMemorySystem) OutgoingTransitions(state SystemState) []SystemTransition {
	return s.TransitionsByID[s.keyOf(state)]
}

func (s *InMemorySystem) SafetyProperties(state SystemState) []Expression {
	return s.PropertiesByID[s.keyOf(state)]
}

// RelaxAll scans every guard and invariant reachable from the initial
// state (following transitions exhaustively), mutates them in place to
// carry a relaxation index, and returns s. Indices are assigned in the
// order of each constraint's string representation — the same
// determinism rule the original tool's "relax_all" mode uses
// (uppyyl/system.py: get_relaxation_for_bounds_of_system).
func (s *InMemorySystem) RelaxAll() *InMemorySystem {
	type target struct {
		str   string
		apply func(idx int)
	}

	visited := map[string]bool{}
	var targets []target
	var walk func(state SystemState)
	walk = func(state SystemState) {
		key := s.keyOf(state)
		if visited[key] {
			return
		}
		visited[key] = true

		for li, loc := range state.Symbolic.Locations {
			for ii := range loc.Invariants {
				li, ii := li, ii
				c := state.Symbolic.Locations[li].Invariants[ii]
				targets = append(targets, target{
					str: c.String(),
					apply: func(idx int) {
						state.Symbolic.Locations[li].Invariants[ii] = c.Relaxed(idx)
					},
				})
			}
		}

		for _, t := range s.TransitionsByID[key] {
			for ei := range t.Edges {
				for gi := range t.Edges[ei].Guards {
					ei, gi := ei, gi
					c := t.Edges[ei].Guards[gi]
					targets = append(targets, target{
						str: c.String(),
						apply: func(idx int) {
							t.Edges[ei].Guards[gi] = c.Relaxed(idx)
						},
					})
				}
			}
			walk(t.Target)
		}
	}
	walk(s.Initial)

	sort.Slice(targets, func(i, j int) bool { return targets[i].str < targets[j].str })
	for idx, t := range targets {
		t.apply(idx)
	}

	s.Relaxations = len(targets)
	return s
}
