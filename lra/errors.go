package lra

import "errors"

// ErrFormat is returned when a Variable, Sum, Inequality, or DNFFormula
// fails to parse. Parsing leaves no partial state.
var ErrFormat = errors.New("lra: parse error")
