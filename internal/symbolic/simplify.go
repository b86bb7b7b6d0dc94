// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package symbolic

// Simplification rewrites bottom-up: children first, then identity and
// annihilator elimination per operator, then constant folding when every
// operand is a literal-free constant. Simplification never changes the
// free-variable set of an expression, and a zero divisor is an error
// here, not an unreduced leftover.

func (n *Number) Simplify() (Expr, error) {
	return &Number{Value: n.Value}, nil
}

func (v *Variable) Simplify() (Expr, error) {
	return &Variable{Name: v.Name}, nil
}

func (b *Binary) Simplify() (Expr, error) {
	left, err := b.Left.Simplify()
	if err != nil {
		return nil, err
	}
	right, err := b.Right.Simplify()
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case ADD:
		if left.IsZero() {
			return right, nil
		}
		if right.IsZero() {
			return left, nil
		}

	case SUB:
		if right.IsZero() {
			return left, nil
		}
		if left.IsZero() {
			return &Unary{Op: NEG, Operand: right}, nil
		}

	case MUL:
		if left.IsZero() || right.IsZero() {
			return &Number{Value: 0}, nil
		}
		if left.IsOne() {
			return right, nil
		}
		if right.IsOne() {
			return left, nil
		}

	case DIV:
		if right.IsZero() {
			return nil, transformErrorf("simplify", "division by zero")
		}
		if left.IsZero() {
			return &Number{Value: 0}, nil
		}
		if right.IsOne() {
			return left, nil
		}

	case POW:
		if right.IsZero() {
			return &Number{Value: 1}, nil
		}
		if right.IsOne() {
			return left, nil
		}
		if left.IsZero() {
			return &Number{Value: 0}, nil
		}
		if left.IsOne() {
			return &Number{Value: 1}, nil
		}
	}

	if left.IsConstant() && right.IsConstant() {
		return foldConstant(&Binary{Op: b.Op, Left: left, Right: right})
	}

	return &Binary{Op: b.Op, Left: left, Right: right}, nil
}

func (u *Unary) Simplify() (Expr, error) {
	operand, err := u.Operand.Simplify()
	if err != nil {
		return nil, err
	}

	switch u.Op {
	case POS:
		return operand, nil

	case NEG:
		if operand.IsZero() {
			return &Number{Value: 0}, nil
		}
		// Double negation collapses.
		if inner, ok := operand.(*Unary); ok && inner.Op == NEG {
			return inner.Operand.Clone(), nil
		}
	}

	if operand.IsConstant() {
		return foldConstant(&Unary{Op: u.Op, Operand: operand})
	}

	return &Unary{Op: u.Op, Operand: operand}, nil
}

func (c *Call) Simplify() (Expr, error) {
	args := make([]Expr, len(c.Args))
	allConstant := true
	for i, a := range c.Args {
		arg, err := a.Simplify()
		if err != nil {
			return nil, err
		}
		args[i] = arg
		if !arg.IsConstant() {
			allConstant = false
		}
	}

	if allConstant {
		return foldConstant(&Call{Name: c.Name, Args: args})
	}

	return &Call{Name: c.Name, Args: args}, nil
}

// foldConstant evaluates a constant subtree down to a literal number.
// Domain violations surface as simplification errors.
func foldConstant(e Expr) (Expr, error) {
	val, err := e.Eval(nil)
	if err != nil {
		return nil, &TransformError{Op: "simplify", Msg: err.Error()}
	}
	return &Number{Value: val}, nil
}
