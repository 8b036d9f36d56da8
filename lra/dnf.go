package lra

import (
	"strings"
)

// DNFFormula is a disjunction of conjunctive terms, each term a collection
// of Inequality atoms. It is the materialized output of the quantifier
// elimination driver (C5) and the input to the polyhedron optimizer (C7).
type DNFFormula struct {
	Terms [][]Inequality
}

// String renders the DNF using the persisted format from spec §6.4: terms
// separated by "OR" on its own line, each term a block of tab-indented
// inequalities.
func (d DNFFormula) String() string {
	termStrings := make([]string, len(d.Terms))
	for i, term := range d.Terms {
		lines := make([]string, len(term))
		for j, ineq := range term {
			lines[j] = "\t" + ineq.String()
		}
		termStrings[i] = strings.Join(lines, "\n")
	}
	return strings.Join(termStrings, "\nOR\n")
}

// ParseDNFFormula parses the output of DNFFormula.String. It accepts a
// printer's own output verbatim.
func ParseDNFFormula(s string) (DNFFormula, error) {
	var terms [][]Inequality
	for _, termStr := range strings.Split(s, "OR") {
		var constraints []Inequality
		for _, line := range strings.Split(termStr, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			ineq, err := ParseInequality(line)
			if err != nil {
				return DNFFormula{}, err
			}
			constraints = append(constraints, ineq)
		}
		terms = append(terms, constraints)
	}
	return DNFFormula{Terms: terms}, nil
}
