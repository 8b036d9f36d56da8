package trace

import "errors"

// ErrUnsupportedOperator is returned when a clock constraint carries the
// NotEqual operator, or any operator outside {=, <, <=, >, >=}. Producing
// one from a TASystem adapter is a design error, not a recoverable one.
var ErrUnsupportedOperator = errors.New("trace: unsupported operator for clock-constraint encoding")

// ErrUnknownExpression is returned when a safety-property Expression node
// is not one of the closed set {BoolOr, BoolAnd, BoolNot, ClockConstraint,
// LocationPredicate}.
var ErrUnknownExpression = errors.New("trace: unknown safety-property expression node")
