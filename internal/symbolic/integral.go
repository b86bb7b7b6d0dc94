// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package symbolic

// Integration rules. The table is intentionally narrow: only closed
// forms where the integration variable appears in a recognized shape
// succeed, everything else returns a TransformError rather than a
// silent approximation. Operand matching against the bare variable is
// string identity on the stringified operand, so sin(x + 0) does not
// match where sin(x) does.

// Integrate returns c*x for a constant c.
func (n *Number) Integrate(variable string) (Expr, error) {
	return &Binary{
		Op:    MUL,
		Left:  &Number{Value: n.Value},
		Right: &Variable{Name: variable},
	}, nil
}

// Integrate returns x^2/2 for the integration variable itself; any
// other variable is treated as a constant and becomes y*x.
func (v *Variable) Integrate(variable string) (Expr, error) {
	if v.Name == variable {
		square := &Binary{Op: POW, Left: &Variable{Name: variable}, Right: &Number{Value: 2}}
		return &Binary{Op: DIV, Left: square, Right: &Number{Value: 2}}, nil
	}
	return &Binary{
		Op:    MUL,
		Left:  &Variable{Name: v.Name},
		Right: &Variable{Name: variable},
	}, nil
}

func (b *Binary) Integrate(variable string) (Expr, error) {
	switch b.Op {
	case ADD, SUB:
		left, err := b.Left.Integrate(variable)
		if err != nil {
			return nil, err
		}
		right, err := b.Right.Integrate(variable)
		if err != nil {
			return nil, err
		}
		return &Binary{Op: b.Op, Left: left, Right: right}, nil

	case MUL:
		// Constant factors pull out of the integral; general products
		// would need integration by parts.
		if b.Left.IsConstant() && !b.Right.IsConstant() {
			integral, err := b.Right.Integrate(variable)
			if err != nil {
				return nil, err
			}
			return &Binary{Op: MUL, Left: b.Left.Clone(), Right: integral}, nil
		}
		if !b.Left.IsConstant() && b.Right.IsConstant() {
			integral, err := b.Left.Integrate(variable)
			if err != nil {
				return nil, err
			}
			return &Binary{Op: MUL, Left: integral, Right: b.Right.Clone()}, nil
		}
		return nil, transformErrorf("integrate", "integration by parts not implemented for general products")

	case DIV:
		// c/x integrates to c*ln(x).
		if b.Left.IsConstant() && b.Right.String() == variable {
			ln := &Unary{Op: LN, Operand: &Variable{Name: variable}}
			return &Binary{Op: MUL, Left: b.Left.Clone(), Right: ln}, nil
		}
		return nil, transformErrorf("integrate", "not implemented for this division")

	case POW:
		// x^n integrates to x^(n+1)/(n+1), or ln(x) when n = -1.
		if b.Left.String() == variable && b.Right.IsConstant() {
			n, err := b.Right.Eval(nil)
			if err != nil {
				return nil, &TransformError{Op: "integrate", Msg: err.Error()}
			}
			if n == -1 {
				return &Unary{Op: LN, Operand: &Variable{Name: variable}}, nil
			}
			power := &Binary{Op: POW, Left: &Variable{Name: variable}, Right: &Number{Value: n + 1}}
			return &Binary{Op: DIV, Left: power, Right: &Number{Value: n + 1}}, nil
		}
		return nil, transformErrorf("integrate", "not implemented for this power")
	}

	return nil, transformErrorf("integrate", "not implemented for this binary operation")
}

func (u *Unary) Integrate(variable string) (Expr, error) {
	switch u.Op {
	case POS:
		return u.Operand.Integrate(variable)

	case NEG:
		integral, err := u.Operand.Integrate(variable)
		if err != nil {
			return nil, err
		}
		return &Unary{Op: NEG, Operand: integral}, nil

	case SIN:
		if u.Operand.String() == variable {
			cos := &Unary{Op: COS, Operand: &Variable{Name: variable}}
			return &Unary{Op: NEG, Operand: cos}, nil
		}
		return nil, transformErrorf("integrate", "not implemented for composite sine")

	case COS:
		if u.Operand.String() == variable {
			return &Unary{Op: SIN, Operand: &Variable{Name: variable}}, nil
		}
		return nil, transformErrorf("integrate", "not implemented for composite cosine")

	case LN:
		// ln(x) integrates to x*ln(x) - x.
		if u.Operand.String() == variable {
			x := &Variable{Name: variable}
			ln := &Unary{Op: LN, Operand: &Variable{Name: variable}}
			return &Binary{
				Op:    SUB,
				Left:  &Binary{Op: MUL, Left: x, Right: ln},
				Right: &Variable{Name: variable},
			}, nil
		}
		return nil, transformErrorf("integrate", "not implemented for composite logarithm")
	}

	return nil, transformErrorf("integrate", "not implemented for this operation")
}

func (c *Call) Integrate(variable string) (Expr, error) {
	if len(c.Args) != 1 {
		return nil, transformErrorf("integrate", "not implemented for multi-argument functions")
	}

	if c.Args[0].String() != variable {
		return nil, transformErrorf("integrate", "not implemented for function: %s", c.Name)
	}

	switch c.Name {
	case "sin":
		cos := &Unary{Op: COS, Operand: &Variable{Name: variable}}
		return &Unary{Op: NEG, Operand: cos}, nil

	case "cos":
		return &Unary{Op: SIN, Operand: &Variable{Name: variable}}, nil

	case "ln":
		x := &Variable{Name: variable}
		ln := &Unary{Op: LN, Operand: &Variable{Name: variable}}
		return &Binary{
			Op:    SUB,
			Left:  &Binary{Op: MUL, Left: x, Right: ln},
			Right: &Variable{Name: variable},
		}, nil
	}

	return nil, transformErrorf("integrate", "not implemented for function: %s", c.Name)
}
