package lra

import (
	"sort"
	"strings"
)

// Formula is the closed sum type Atom(Inequality | BoolConst) | And | Or |
// Not. All variants are immutable and share structure by value; And/Or
// are commutative and idempotent (their children form a set, deduplicated
// and ordered by Key for deterministic printing and comparison).
type Formula interface {
	isFormula()
	// Atoms returns the set of atoms (by Key) reachable from this formula.
	Atoms() map[string]Formula
	// IsAtom reports whether this formula is a leaf (Inequality or BoolConst).
	IsAtom() bool
	// Key is a canonical string identity used for set membership, equality
	// and structural hashing throughout the package.
	Key() string
	String() string
}

// BoolConst is a Boolean atom, TRUE or FALSE.
type BoolConst bool

func (BoolConst) isFormula() {}
func (b BoolConst) IsAtom() bool { return true }
func (b BoolConst) Atoms() map[string]Formula {
	return map[string]Formula{b.Key(): b}
}
func (b BoolConst) Key() string { return b.String() }
func (b BoolConst) String() string {
	if bool(b) {
		return "TRUE"
	}
	return "FALSE"
}

// TRUE and FALSE are the two Boolean constants.
var TRUE Formula = BoolConst(true)
var FALSE Formula = BoolConst(false)

func unionAtoms(args []Formula) map[string]Formula {
	out := map[string]Formula{}
	for _, arg := range args {
		for k, v := range arg.Atoms() {
			out[k] = v
		}
	}
	return out
}

// dedupSort removes duplicate-by-Key formulas and returns them ordered by
// Key, giving And/Or a canonical, deterministic child order.
func dedupSort(args []Formula) []Formula {
	seen := map[string]Formula{}
	for _, a := range args {
		seen[a.Key()] = a
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Formula, len(keys))
	for i, k := range keys {
		out[i] = seen[k]
	}
	return out
}

// And is the conjunction of its arguments (a set: commutative, idempotent).
type And struct {
	Args []Formula
}

// NewAnd builds a canonicalized conjunction.
func NewAnd(args ...Formula) And {
	return And{Args: dedupSort(args)}
}

func (And) isFormula() {}
func (a And) IsAtom() bool { return false }
func (a And) Atoms() map[string]Formula { return unionAtoms(a.Args) }
func (a And) Key() string {
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.Key()
	}
	return "AND(" + strings.Join(parts, ",") + ")"
}
func (a And) String() string {
	if len(a.Args) == 0 {
		return "TRUE"
	}
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = "(" + arg.String() + ")"
	}
	return strings.Join(parts, " AND ")
}

// Or is the disjunction of its arguments (a set: commutative, idempotent).
type Or struct {
	Args []Formula
}

// NewOr builds a canonicalized disjunction.
func NewOr(args ...Formula) Or {
	return Or{Args: dedupSort(args)}
}

func (Or) isFormula() {}
func (o Or) IsAtom() bool { return false }
func (o Or) Atoms() map[string]Formula { return unionAtoms(o.Args) }
func (o Or) Key() string {
	parts := make([]string, len(o.Args))
	for i, arg := range o.Args {
		parts[i] = arg.Key()
	}
	return "OR(" + strings.Join(parts, ",") + ")"
}
func (o Or) String() string {
	if len(o.Args) == 0 {
		return "FALSE"
	}
	parts := make([]string, len(o.Args))
	for i, arg := range o.Args {
		parts[i] = "(" + arg.String() + ")"
	}
	return strings.Join(parts, " OR ")
}

// Not is logical negation.
type Not struct {
	Arg Formula
}

// NewNot builds a negation.
func NewNot(arg Formula) Not { return Not{Arg: arg} }

func (Not) isFormula() {}
func (n Not) IsAtom() bool { return false }
func (n Not) Atoms() map[string]Formula { return n.Arg.Atoms() }
func (n Not) Key() string { return "NOT(" + n.Arg.Key() + ")" }
func (n Not) String() string { return "NOT(" + n.Arg.String() + ")" }
