package lra

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// Summand is a single (coefficient, variable) term of a Sum.
type Summand struct {
	Coefficient *big.Rat
	Var         Variable
}

// NewSummand builds a Summand with the given coefficient and variable.
func NewSummand(coefficient *big.Rat, v Variable) Summand {
	return Summand{Coefficient: new(big.Rat).Set(coefficient), Var: v}
}

func (s Summand) equal(o Summand) bool {
	return sameVariable(s.Var, o.Var) && s.Coefficient.Cmp(o.Coefficient) == 0
}

func (s Summand) String() string {
	return fmt.Sprintf("%s*%s", s.Coefficient.RatString(), s.Var.Identifier())
}

// Sum is an unordered multiset of Summands. Equality is by multiset, not
// by slice order: two Sums are equal iff every distinct Summand occurs the
// same number of times in both.
type Sum struct {
	Summands []Summand
}

// NewSum builds a Sum from the given summands, preserved as given (no
// implicit combination of like terms — use CombineLikeTerms for that).
func NewSum(summands ...Summand) Sum {
	out := make([]Summand, len(summands))
	copy(out, summands)
	return Sum{Summands: out}
}

// IsEmpty reports whether the sum has no summands.
func (s Sum) IsEmpty() bool { return len(s.Summands) == 0 }

// Equal reports multiset equality between s and o.
func (s Sum) Equal(o Sum) bool {
	if len(s.Summands) != len(o.Summands) {
		return false
	}
	used := make([]bool, len(o.Summands))
	for _, a := range s.Summands {
		found := false
		for j, b := range o.Summands {
			if used[j] {
				continue
			}
			if a.equal(b) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// CombineLikeTerms returns a Sum with at most one Summand per distinct
// variable, the coefficients of equal variables added together. Summands
// that cancel to a zero coefficient are dropped. Implementations are
// encouraged (not required) to canonicalize this way; the rest of the
// package relies on it for deterministic hashing and printing.
func (s Sum) CombineLikeTerms() Sum {
	order := []string{}
	totals := map[string]*big.Rat{}
	vars := map[string]Variable{}
	for _, summand := range s.Summands {
		id := summand.Var.Identifier()
		if _, ok := totals[id]; !ok {
			totals[id] = new(big.Rat)
			vars[id] = summand.Var
			order = append(order, id)
		}
		totals[id].Add(totals[id], summand.Coefficient)
	}
	sort.Strings(order)
	out := make([]Summand, 0, len(order))
	for _, id := range order {
		if totals[id].Sign() == 0 {
			continue
		}
		out = append(out, Summand{Coefficient: totals[id], Var: vars[id]})
	}
	return Sum{Summands: out}
}

// String renders the sum as "<c1>*<v1> + <c2>*<v2> + ...", or "0" if empty.
func (s Sum) String() string {
	if s.IsEmpty() {
		return "0"
	}
	parts := make([]string, len(s.Summands))
	for i, summand := range s.Summands {
		parts[i] = summand.String()
	}
	return strings.Join(parts, " + ")
}

// ParseSum parses the output of Sum.String.
func ParseSum(s string) (Sum, error) {
	s = strings.TrimSpace(s)
	if s == "0" {
		return Sum{}, nil
	}
	var summands []Summand
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.Index(part, "*")
		if idx < 0 {
			return Sum{}, fmt.Errorf("%w: summand %q missing '*'", ErrFormat, part)
		}
		coeffStr, varStr := strings.TrimSpace(part[:idx]), strings.TrimSpace(part[idx+1:])
		coeff, ok := new(big.Rat).SetString(coeffStr)
		if !ok {
			return Sum{}, fmt.Errorf("%w: cannot parse coefficient %q", ErrFormat, coeffStr)
		}
		v, err := ParseVariable(varStr)
		if err != nil {
			return Sum{}, err
		}
		summands = append(summands, Summand{Coefficient: coeff, Var: v})
	}
	return Sum{Summands: summands}, nil
}
