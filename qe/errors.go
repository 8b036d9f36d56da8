package qe

import "errors"

// ErrRemainingQuantifier would signal that an oracle returned a formula
// that still contains a quantifier (spec §4.3: "any remaining quantifier
// is a fatal error"). lra.Formula's closed sum type has no quantifier
// variant, so Eliminate can never construct one — this stays unreachable
// from FourierMotzkinOracle and exists for interface completeness, should
// a future external oracle binding need to report the same failure.
var ErrRemainingQuantifier = errors.New("qe: oracle returned a formula containing quantifiers")

// ErrNotLRA is returned when a sentence's Body contains a sub-expression
// that isn't an LRA atom (Inequality/BoolConst) once reduced to NNF/DNF.
var ErrNotLRA = errors.New("qe: formula not LRA")
