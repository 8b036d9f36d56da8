// Package ta defines the external adapter contract (spec §6.1) that the
// core consumes to enumerate a timed automaton system: clocks, guarded
// edges, location invariants, urgency, and safety properties. The front-end
// that parses concrete UPPAAL-style models and the simulator used to
// compute enabled edges live outside this module; ta only fixes the
// interface shape and offers a small in-memory reference implementation
// used by the tests; the CLI does not build systems from it.
package ta

import "fmt"

// Operator is a clock-constraint comparison operator. NotEqual is accepted
// by the data model but unsupported for clock-constraint encoding (spec
// §4.2); producing it from a front-end is a design error the trace
// enumerator rejects at encode time.
type Operator int

const (
	GreaterThan Operator = iota
	LessThan
	GreaterEqual
	LessEqual
	Equal
	NotEqual
)

func (op Operator) String() string {
	switch op {
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	case GreaterEqual:
		return ">="
	case LessEqual:
		return "<="
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	default:
		return "?"
	}
}

// Clock identifies a clock variable. Clocks with Process == "" are global;
// equality is structural on (Name, Process).
type Clock struct {
	Name    string
	Process string
}

func (c Clock) String() string {
	if c.Process == "" {
		return c.Name
	}
	return fmt.Sprintf("%s.%s", c.Process, c.Name)
}

// ClockConstraint is "clock ~ limit", optionally annotated with a
// relaxation index that designates it for relaxation.
type ClockConstraint struct {
	Clock         Clock
	Operator      Operator
	Limit         int64
	RelaxationIdx *int // nil if not relaxed
}

// IsRelaxed reports whether the constraint carries a relaxation index.
func (c ClockConstraint) IsRelaxed() bool { return c.RelaxationIdx != nil }

func (c ClockConstraint) String() string {
	if c.IsRelaxed() {
		return fmt.Sprintf("%s %s %d ± rel_%d", c.Clock, c.Operator, c.Limit, *c.RelaxationIdx)
	}
	return fmt.Sprintf("%s %s %d", c.Clock, c.Operator, c.Limit)
}

// Relaxed returns a copy of c annotated with the given relaxation index.
func (c ClockConstraint) Relaxed(idx int) ClockConstraint {
	out := c
	i := idx
	out.RelaxationIdx = &i
	return out
}
