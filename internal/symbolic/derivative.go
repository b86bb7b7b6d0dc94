// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package symbolic

// Differentiation rules. Results are built structurally: nothing is
// folded here, that is Simplify's job. Operands reused on both sides of
// a rule (product, quotient, power) are cloned into the output.

// Differentiate returns the derivative of a constant, which is zero.
func (n *Number) Differentiate(variable string) (Expr, error) {
	return &Number{Value: 0}, nil
}

// Differentiate returns 1 for the differentiation variable and 0 for any
// other variable.
func (v *Variable) Differentiate(variable string) (Expr, error) {
	if v.Name == variable {
		return &Number{Value: 1}, nil
	}
	return &Number{Value: 0}, nil
}

func (b *Binary) Differentiate(variable string) (Expr, error) {
	switch b.Op {
	case ADD, SUB:
		left, err := b.Left.Differentiate(variable)
		if err != nil {
			return nil, err
		}
		right, err := b.Right.Differentiate(variable)
		if err != nil {
			return nil, err
		}
		return &Binary{Op: b.Op, Left: left, Right: right}, nil

	case MUL:
		// Product rule: (u*v)' = u*v' + v*u'
		du, err := b.Left.Differentiate(variable)
		if err != nil {
			return nil, err
		}
		dv, err := b.Right.Differentiate(variable)
		if err != nil {
			return nil, err
		}
		term1 := &Binary{Op: MUL, Left: b.Left.Clone(), Right: dv}
		term2 := &Binary{Op: MUL, Left: b.Right.Clone(), Right: du}
		return &Binary{Op: ADD, Left: term1, Right: term2}, nil

	case DIV:
		// Quotient rule: (u/v)' = (v*u' - u*v') / v^2
		du, err := b.Left.Differentiate(variable)
		if err != nil {
			return nil, err
		}
		dv, err := b.Right.Differentiate(variable)
		if err != nil {
			return nil, err
		}
		numerator := &Binary{
			Op:    SUB,
			Left:  &Binary{Op: MUL, Left: b.Right.Clone(), Right: du},
			Right: &Binary{Op: MUL, Left: b.Left.Clone(), Right: dv},
		}
		denominator := &Binary{Op: POW, Left: b.Right.Clone(), Right: &Number{Value: 2}}
		return &Binary{Op: DIV, Left: numerator, Right: denominator}, nil

	case POW:
		// Power rule with the chain rule folded in, constant exponents
		// only: (u^n)' = u^(n-1) * (n * u')
		if !b.Right.IsConstant() {
			return nil, transformErrorf("differentiate", "variable exponents not implemented")
		}
		n, err := b.Right.Eval(nil)
		if err != nil {
			return nil, &TransformError{Op: "differentiate", Msg: err.Error()}
		}
		du, err := b.Left.Differentiate(variable)
		if err != nil {
			return nil, err
		}
		powerTerm := &Binary{Op: POW, Left: b.Left.Clone(), Right: &Number{Value: n - 1}}
		chainTerm := &Binary{Op: MUL, Left: &Number{Value: n}, Right: du}
		return &Binary{Op: MUL, Left: powerTerm, Right: chainTerm}, nil
	}

	return nil, transformErrorf("differentiate", "unknown binary operation")
}

func (u *Unary) Differentiate(variable string) (Expr, error) {
	du, err := u.Operand.Differentiate(variable)
	if err != nil {
		return nil, err
	}

	switch u.Op {
	case POS:
		return du, nil

	case NEG:
		return &Unary{Op: NEG, Operand: du}, nil

	case SIN:
		// sin(u)' = cos(u) * u'
		cos := &Unary{Op: COS, Operand: u.Operand.Clone()}
		return &Binary{Op: MUL, Left: cos, Right: du}, nil

	case COS:
		// cos(u)' = -sin(u) * u'
		sin := &Unary{Op: SIN, Operand: u.Operand.Clone()}
		negSin := &Unary{Op: NEG, Operand: sin}
		return &Binary{Op: MUL, Left: negSin, Right: du}, nil

	case TAN:
		// tan(u)' = (1 / cos(u)^2) * u'
		cos := &Unary{Op: COS, Operand: u.Operand.Clone()}
		cosSquared := &Binary{Op: POW, Left: cos, Right: &Number{Value: 2}}
		secSquared := &Binary{Op: DIV, Left: &Number{Value: 1}, Right: cosSquared}
		return &Binary{Op: MUL, Left: secSquared, Right: du}, nil

	case LN:
		// ln(u)' = (1/u) * u'
		recip := &Binary{Op: DIV, Left: &Number{Value: 1}, Right: u.Operand.Clone()}
		return &Binary{Op: MUL, Left: recip, Right: du}, nil

	case SQRT:
		// sqrt(u)' = (1 / (2*sqrt(u))) * u'
		sqrt := &Unary{Op: SQRT, Operand: u.Operand.Clone()}
		twoSqrt := &Binary{Op: MUL, Left: &Number{Value: 2}, Right: sqrt}
		recip := &Binary{Op: DIV, Left: &Number{Value: 1}, Right: twoSqrt}
		return &Binary{Op: MUL, Left: recip, Right: du}, nil
	}

	return nil, transformErrorf("differentiate", "not implemented for this operation")
}

func (c *Call) Differentiate(variable string) (Expr, error) {
	if len(c.Args) != 1 {
		return nil, transformErrorf("differentiate", "not implemented for multi-argument functions")
	}

	du, err := c.Args[0].Differentiate(variable)
	if err != nil {
		return nil, err
	}

	switch c.Name {
	case "sin":
		cos := &Unary{Op: COS, Operand: c.Args[0].Clone()}
		return &Binary{Op: MUL, Left: cos, Right: du}, nil

	case "cos":
		sin := &Unary{Op: SIN, Operand: c.Args[0].Clone()}
		negSin := &Unary{Op: NEG, Operand: sin}
		return &Binary{Op: MUL, Left: negSin, Right: du}, nil

	case "ln":
		recip := &Binary{Op: DIV, Left: &Number{Value: 1}, Right: c.Args[0].Clone()}
		return &Binary{Op: MUL, Left: recip, Right: du}, nil
	}

	return nil, transformErrorf("differentiate", "not implemented for function: %s", c.Name)
}
