package normalform

import "github.com/relaxer-go/relaxer/lra"

// CheckEquivalent reports whether a and b are logically equivalent when
// every distinct atom is treated as an opaque Boolean variable. NNF/CNF/DNF
// transforms never reason about the arithmetic content of an Inequality
// atom, only its Boolean-structural placement, so a brute-force
// truth-table check over atom keys is sound and complete at this level
// (used by the CLI's debug mode to confirm a transform preserved meaning).
func CheckEquivalent(a, b lra.Formula) bool {
	atoms := map[string]bool{}
	for k := range a.Atoms() {
		atoms[k] = true
	}
	for k := range b.Atoms() {
		atoms[k] = true
	}

	keys := make([]string, 0, len(atoms))
	for k := range atoms {
		keys = append(keys, k)
	}

	n := len(keys)
	total := 1 << uint(n)
	for mask := 0; mask < total; mask++ {
		assignment := make(map[string]bool, n)
		for i, k := range keys {
			assignment[k] = mask&(1<<uint(i)) != 0
		}
		if Eval(a, assignment) != Eval(b, assignment) {
			return false
		}
	}
	return true
}

// Eval evaluates f under assignment, an atom-key -> truth-value map.
// Atoms absent from assignment default to false.
func Eval(f lra.Formula, assignment map[string]bool) bool {
	switch v := f.(type) {
	case lra.BoolConst:
		return bool(v)
	case lra.And:
		for _, a := range v.Args {
			if !Eval(a, assignment) {
				return false
			}
		}
		return true
	case lra.Or:
		for _, a := range v.Args {
			if Eval(a, assignment) {
				return true
			}
		}
		return false
	case lra.Not:
		return !Eval(v.Arg, assignment)
	default:
		return assignment[f.Key()]
	}
}
