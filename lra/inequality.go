package lra

import (
	"fmt"
	"math/big"
	"strings"
)

// InequalitySymbol is one of the four LRA comparison operators.
type InequalitySymbol int

const (
	GreaterThan InequalitySymbol = iota
	LessThan
	GreaterEqual
	LessEqual
)

func (sym InequalitySymbol) String() string {
	switch sym {
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	case GreaterEqual:
		return ">="
	case LessEqual:
		return "<="
	default:
		return "?"
	}
}

// Turned swaps the direction of the symbol: < <-> >, <= <-> >=.
// Turned(Turned(s)) == s for every symbol.
func (sym InequalitySymbol) Turned() InequalitySymbol {
	switch sym {
	case GreaterThan:
		return LessThan
	case LessThan:
		return GreaterThan
	case GreaterEqual:
		return LessEqual
	default: // LessEqual
		return GreaterEqual
	}
}

// IsStrict reports whether the symbol is a strict comparison (<, >).
func (sym InequalitySymbol) IsStrict() bool {
	return sym == GreaterThan || sym == LessThan
}

// ParseInequalitySymbol parses one of "<", "<=", ">", ">=".
func ParseInequalitySymbol(s string) (InequalitySymbol, error) {
	switch s {
	case ">":
		return GreaterThan, nil
	case "<":
		return LessThan, nil
	case ">=":
		return GreaterEqual, nil
	case "<=":
		return LessEqual, nil
	default:
		return 0, fmt.Errorf("%w: unknown inequality symbol %q", ErrFormat, s)
	}
}

// Inequality is an LRA atom: left <symbol> right, e.g. "1*delta_0 <= 10".
type Inequality struct {
	Left   Sum
	Symbol InequalitySymbol
	Right  *big.Rat
}

// NewInequality builds an Inequality.
func NewInequality(left Sum, symbol InequalitySymbol, right *big.Rat) Inequality {
	return Inequality{Left: left, Symbol: symbol, Right: new(big.Rat).Set(right)}
}

func (i Inequality) isFormula() {}

// Atoms implements Formula: an atom's atom-set is itself.
func (i Inequality) Atoms() map[string]Formula {
	return map[string]Formula{i.Key(): i}
}

// IsAtom implements Formula.
func (i Inequality) IsAtom() bool { return true }

// IsStrict reports whether the inequality's symbol is strict.
func (i Inequality) IsStrict() bool { return i.Symbol.IsStrict() }

// Equal reports whether i and o have equal sums and (symbol, right).
func (i Inequality) Equal(o Inequality) bool {
	return i.Left.Equal(o.Left) && i.Symbol == o.Symbol && i.Right.Cmp(o.Right) == 0
}

// Key returns a canonical string identity for i, used for set membership
// and structural hashing across the package.
func (i Inequality) Key() string { return i.String() }

func (i Inequality) String() string {
	return fmt.Sprintf("%s %s %s", i.Left.CombineLikeTerms().String(), i.Symbol, i.Right.RatString())
}

// ParseInequality parses the output of Inequality.String.
func ParseInequality(s string) (Inequality, error) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return Inequality{}, fmt.Errorf("%w: inequality %q has too few fields", ErrFormat, s)
	}
	rightStr := fields[len(fields)-1]
	symStr := fields[len(fields)-2]
	leftStr := strings.Join(fields[:len(fields)-2], " ")

	left, err := ParseSum(leftStr)
	if err != nil {
		return Inequality{}, err
	}
	sym, err := ParseInequalitySymbol(symStr)
	if err != nil {
		return Inequality{}, err
	}
	right, ok := new(big.Rat).SetString(rightStr)
	if !ok {
		return Inequality{}, fmt.Errorf("%w: cannot parse rational %q", ErrFormat, rightStr)
	}
	return Inequality{Left: left, Symbol: sym, Right: right}, nil
}
