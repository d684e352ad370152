package sat

import "fmt"

// Var identifies a Boolean variable. Variable 0 is reserved by the solver
// and is permanently assigned true; it is never handed out by NewVar.
type Var int

// Literal represents a signed Boolean variable: lit = 2*var + sign, so a
// literal and its negation are adjacent integers and the sign lives in the
// low bit.
type Literal int

// PositiveLiteral returns the positive literal of variable v.
func PositiveLiteral(v Var) Literal {
	return Literal(v) * 2
}

// NegativeLiteral returns the negative literal of variable v.
func NegativeLiteral(v Var) Literal {
	return Literal(v)*2 + 1
}

// VarID returns the variable underlying the literal.
func (l Literal) VarID() Var {
	return Var(l / 2)
}

// IsPositive returns true if and only if l is the unnegated form of its
// variable (i.e. not its negation).
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the negation of l.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

// TrueLiteral is the literal of the permanently-true reserved variable 0.
const TrueLiteral Literal = 0

// FalseLiteral is the permanently-false literal, i.e. the negation of
// variable 0.
const FalseLiteral Literal = 1

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("-%d", l.VarID())
}
