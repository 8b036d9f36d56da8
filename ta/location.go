package ta

import (
	"sort"
	"strings"
)

// Location is a single automaton's current control state: an id, the
// owning process, a display name, whether time may not pass while in it
// (urgent), and the invariants that must hold while occupying it.
type Location struct {
	ID         string
	Process    string
	Name       string
	Urgent     bool
	Invariants []ClockConstraint
}

// SymbolicState is the frozen set of locations — one per process — that a
// system occupies at some depth of a symbolic trace.
type SymbolicState struct {
	Locations []Location
}

// String renders the state as "(proc.name, proc.name, ...)" sorted for
// determinism, matching the reference implementation's printer.
func (s SymbolicState) String() string {
	names := make([]string, len(s.Locations))
	for i, l := range s.Locations {
		names[i] = l.Process + "." + l.Name
	}
	sort.Strings(names)
	return "(" + strings.Join(names, ", ") + ")"
}

// HasLocationID reports whether some location in the state has the given id.
func (s SymbolicState) HasLocationID(id string) bool {
	for _, l := range s.Locations {
		if l.ID == id {
			return true
		}
	}
	return false
}

// Edge connects two locations within one process, carrying the guards
// that must hold to fire and the clocks it resets.
type Edge struct {
	SourceID string
	TargetID string
	Process  string
	Guards   []ClockConstraint
	Resets   []Clock
}
