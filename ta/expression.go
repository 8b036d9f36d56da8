package ta

// Expression is the safety-property grammar: BoolOr | BoolAnd | BoolNot |
// ClockConstraint | LocationPredicate. It is a closed set evaluated by the
// trace enumerator (spec §4.2) when it encodes a system's safety
// properties into LRA obligations.
type Expression interface {
	isExpression()
}

// BoolOr is the disjunction of two property expressions.
type BoolOr struct {
	Left, Right Expression
}

// BoolAnd is the conjunction of two property expressions.
type BoolAnd struct {
	Left, Right Expression
}

// BoolNot negates a property expression.
type BoolNot struct {
	Arg Expression
}

// LocationPredicate is TRUE in a state iff some location of that state has
// the given id.
type LocationPredicate struct {
	LocationID string
}

func (BoolOr) isExpression()            {}
func (BoolAnd) isExpression()           {}
func (BoolNot) isExpression()           {}
func (LocationPredicate) isExpression() {}
func (ClockConstraint) isExpression()   {}
