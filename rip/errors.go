package rip

import "errors"

// ErrNotLRA is returned when Propagate is given a formula that is not a
// CNF over Inequality/BoolConst literals (a non-linear or otherwise
// unsupported sub-expression was encountered).
var ErrNotLRA = errors.New("rip: formula not LRA")
