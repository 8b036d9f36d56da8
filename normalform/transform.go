// Package normalform rewrites lra.Formula values into negation normal
// form (NNF), conjunctive normal form (CNF), or disjunctive normal form
// (DNF). All three share one fixpoint rewrite loop, differing only in
// which extra distribution rule runs on top of the shared NNF rules
// (spec §4.4).
package normalform

import "github.com/relaxer-go/relaxer/lra"

type mode int

const (
	nnfMode mode = iota
	cnfMode
	dnfMode
)

// NNF pushes negations down to the atoms. NNF(NNF(f)) == NNF(f) and the
// result is logically equivalent to f.
func NNF(f lra.Formula) lra.Formula { return run(f, nnfMode) }

// CNF rewrites f into a conjunction of disjunctive clauses. The result
// contains no And nested under Or.
func CNF(f lra.Formula) lra.Formula { return run(f, cnfMode) }

// DNF rewrites f into a disjunction of conjunctive terms. The result
// contains no Or nested under And.
func DNF(f lra.Formula) lra.Formula { return run(f, dnfMode) }

func run(f lra.Formula, m mode) lra.Formula {
	t := &transformer{mode: m}
	out := f
	for {
		t.changed = false
		out = t.walk(out)
		if !t.changed {
			return out
		}
	}
}

type transformer struct {
	mode    mode
	changed bool
}

func (t *transformer) walk(f lra.Formula) lra.Formula {
	switch v := f.(type) {
	case lra.And:
		args := make([]lra.Formula, len(v.Args))
		for i, a := range v.Args {
			args[i] = t.walk(a)
		}
		return t.walkAnd(args)
	case lra.Or:
		args := make([]lra.Formula, len(v.Args))
		for i, a := range v.Args {
			args[i] = t.walk(a)
		}
		return t.walkOr(args)
	case lra.Not:
		return t.walkNot(t.walk(v.Arg))
	default:
		return f
	}
}

func (t *transformer) walkNot(arg lra.Formula) lra.Formula {
	if _, isConst := arg.(lra.BoolConst); arg.IsAtom() && !isConst {
		return lra.NewNot(arg)
	}

	t.changed = true

	switch v := arg.(type) {
	case lra.BoolConst:
		if bool(v) {
			return lra.FALSE
		}
		return lra.TRUE
	case lra.Not:
		return v.Arg
	case lra.And:
		negated := make([]lra.Formula, len(v.Args))
		for i, c := range v.Args {
			negated[i] = t.walkNot(c)
		}
		return lra.NewOr(negated...)
	case lra.Or:
		negated := make([]lra.Formula, len(v.Args))
		for i, d := range v.Args {
			negated[i] = t.walkNot(d)
		}
		return lra.NewAnd(negated...)
	default:
		return lra.NewNot(arg)
	}
}

// literalSet returns the set of literal keys a clause-like formula
// contributes when it sits as a sibling inside the given container kind:
// an Or sitting inside And contributes its disjuncts; an And sitting
// inside Or contributes its conjuncts; anything else is a singleton.
func literalSet(f lra.Formula, containerIsAnd bool) map[string]bool {
	out := map[string]bool{}
	if containerIsAnd {
		if or, ok := f.(lra.Or); ok {
			for _, a := range or.Args {
				out[a.Key()] = true
			}
			return out
		}
	} else {
		if and, ok := f.(lra.And); ok {
			for _, a := range and.Args {
				out[a.Key()] = true
			}
			return out
		}
	}
	out[f.Key()] = true
	return out
}

func setsEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// isProperSuperset reports whether a strictly contains every element of b.
func isProperSuperset(a, b map[string]bool) bool {
	if len(a) <= len(b) {
		return false
	}
	for k := range b {
		if !a[k] {
			return false
		}
	}
	return true
}

func (t *transformer) walkAnd(args []lra.Formula) lra.Formula {
	litSets := make([]map[string]bool, len(args))
	argKeys := map[string]bool{}
	for i, a := range args {
		litSets[i] = literalSet(a, true)
		argKeys[a.Key()] = true
	}

	var conjuncts []lra.Formula
	for i, a := range args {
		if and, ok := a.(lra.And); ok {
			conjuncts = append(conjuncts, and.Args...)
			continue
		}

		if _, ok := a.(lra.Or); ok {
			absorbed := false
			for j := range args {
				if j == i || setsEqual(litSets[i], litSets[j]) {
					continue
				}
				if isProperSuperset(litSets[i], litSets[j]) {
					absorbed = true
					break
				}
			}
			if absorbed {
				continue
			}
		}

		if not, ok := a.(lra.Not); ok && argKeys[not.Arg.Key()] {
			return lra.FALSE
		}

		if a.Key() == lra.FALSE.Key() {
			return lra.FALSE
		}
		if a.Key() == lra.TRUE.Key() {
			continue
		}

		conjuncts = append(conjuncts, a)
	}

	if len(conjuncts) == 0 {
		return lra.TRUE
	}

	result := lra.NewAnd(conjuncts...)

	switch t.mode {
	case cnfMode:
		for _, c := range result.Args {
			if _, ok := c.(lra.And); ok {
				t.changed = true
				break
			}
		}
		return result
	case dnfMode:
		return t.distributeAndOverOr(result)
	default:
		return result
	}
}

func (t *transformer) walkOr(args []lra.Formula) lra.Formula {
	litSets := make([]map[string]bool, len(args))
	argKeys := map[string]bool{}
	for i, a := range args {
		litSets[i] = literalSet(a, false)
		argKeys[a.Key()] = true
	}

	var disjuncts []lra.Formula
	for i, a := range args {
		if or, ok := a.(lra.Or); ok {
			disjuncts = append(disjuncts, or.Args...)
			continue
		}

		if _, ok := a.(lra.And); ok {
			absorbed := false
			for j := range args {
				if j == i || setsEqual(litSets[i], litSets[j]) {
					continue
				}
				if isProperSuperset(litSets[i], litSets[j]) {
					absorbed = true
					break
				}
			}
			if absorbed {
				continue
			}
		}

		if not, ok := a.(lra.Not); ok && argKeys[not.Arg.Key()] {
			return lra.TRUE
		}

		if a.Key() == lra.TRUE.Key() {
			return lra.TRUE
		}
		if a.Key() == lra.FALSE.Key() {
			continue
		}

		disjuncts = append(disjuncts, a)
	}

	if len(disjuncts) == 0 {
		return lra.FALSE
	}

	result := lra.NewOr(disjuncts...)

	switch t.mode {
	case dnfMode:
		for _, d := range result.Args {
			if _, ok := d.(lra.Or); ok {
				t.changed = true
				break
			}
		}
		return result
	case cnfMode:
		return t.distributeOrOverAnd(result)
	default:
		return result
	}
}

// distributeOrOverAnd implements A OR (B1 AND B2) -> (A OR B1) AND (A OR B2).
func (t *transformer) distributeOrOverAnd(f lra.Formula) lra.Formula {
	or, ok := f.(lra.Or)
	if !ok {
		return f
	}

	var nested lra.And
	found := false
	for _, arg := range or.Args {
		if and, ok := arg.(lra.And); ok {
			nested = and
			found = true
		}
	}
	if !found {
		return f
	}

	t.changed = true

	rest := make([]lra.Formula, 0, len(or.Args))
	for _, arg := range or.Args {
		if arg.Key() != nested.Key() {
			rest = append(rest, arg)
		}
	}

	var conjuncts []lra.Formula
	for _, c := range nested.Args {
		conjuncts = append(conjuncts, lra.NewOr(append(append([]lra.Formula{}, rest...), c)...))
	}
	return lra.NewAnd(conjuncts...)
}

// distributeAndOverOr implements A AND (B1 OR B2) -> (A AND B1) OR (A AND B2).
func (t *transformer) distributeAndOverOr(f lra.Formula) lra.Formula {
	and, ok := f.(lra.And)
	if !ok {
		return f
	}

	var nested lra.Or
	found := false
	for _, arg := range and.Args {
		if or, ok := arg.(lra.Or); ok {
			nested = or
			found = true
		}
	}
	if !found {
		return f
	}

	t.changed = true

	rest := make([]lra.Formula, 0, len(and.Args))
	for _, arg := range and.Args {
		if arg.Key() != nested.Key() {
			rest = append(rest, arg)
		}
	}

	var disjuncts []lra.Formula
	for _, d := range nested.Args {
		disjuncts = append(disjuncts, lra.NewAnd(append(append([]lra.Formula{}, rest...), d)...))
	}
	return lra.NewOr(disjuncts...)
}
