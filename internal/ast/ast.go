// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package ast defines the numeric expression tree built by the parser.
//
// Trees are built bottom-up and never mutated afterwards; Clone produces
// a fully independent deep copy. The node set is closed: Number,
// Variable, Binary, Unary, and Call.
package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Node is the interface all expression tree nodes implement.
type Node interface {
	// String returns the fully parenthesized infix rendering.
	String() string
	// Eval computes the numeric value under the given variable bindings.
	Eval(vars map[string]float64) (float64, error)
	// Clone returns a deep copy sharing no subtrees with the original.
	Clone() Node
}

// BinOp identifies a binary operator.
type BinOp int

const (
	ADD BinOp = iota
	SUB
	MUL
	DIV
	POW
)

// String returns the operator symbol.
func (op BinOp) String() string {
	switch op {
	case ADD:
		return "+"
	case SUB:
		return "-"
	case MUL:
		return "*"
	case DIV:
		return "/"
	case POW:
		return "^"
	}
	return "?"
}

// UnOp identifies a unary operator. The named operators correspond to
// the built-in single-argument functions.
type UnOp int

const (
	POS UnOp = iota
	NEG
	SIN
	COS
	TAN
	LOG
	LN
	SQRT
	ABS
)

// Name returns the function-style name of the operator. POS and NEG
// render as prefix signs instead.
func (op UnOp) Name() string {
	switch op {
	case POS:
		return "+"
	case NEG:
		return "-"
	case SIN:
		return "sin"
	case COS:
		return "cos"
	case TAN:
		return "tan"
	case LOG:
		return "log"
	case LN:
		return "ln"
	case SQRT:
		return "sqrt"
	case ABS:
		return "abs"
	}
	return "unknown"
}

// EvalErrorKind classifies evaluation failures.
type EvalErrorKind int

const (
	ErrUndefinedVariable EvalErrorKind = iota
	ErrDivisionByZero
	ErrDomain
	ErrArity
	ErrUnknownFunction
)

// EvalError is returned when an expression tree cannot be evaluated
// numerically.
type EvalError struct {
	Kind   EvalErrorKind
	Detail string
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case ErrUndefinedVariable:
		return "undefined variable: " + e.Detail
	case ErrDivisionByZero:
		return "division by zero"
	case ErrDomain:
		return e.Detail
	case ErrArity:
		return "function " + e.Detail + " expects 1 argument"
	case ErrUnknownFunction:
		return "unknown function: " + e.Detail
	}
	return "evaluation error"
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

func (n *Number) String() string {
	return FormatNumber(n.Value)
}

func (n *Number) Eval(vars map[string]float64) (float64, error) {
	return n.Value, nil
}

func (n *Number) Clone() Node {
	return &Number{Value: n.Value}
}

// Variable is a named free variable.
type Variable struct {
	Name string
}

func (v *Variable) String() string {
	return v.Name
}

func (v *Variable) Eval(vars map[string]float64) (float64, error) {
	val, ok := vars[v.Name]
	if !ok {
		return 0, &EvalError{Kind: ErrUndefinedVariable, Detail: v.Name}
	}
	return val, nil
}

func (v *Variable) Clone() Node {
	return &Variable{Name: v.Name}
}

// Binary applies a binary operator to two owned subtrees.
type Binary struct {
	Op    BinOp
	Left  Node
	Right Node
}

func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

func (b *Binary) Eval(vars map[string]float64) (float64, error) {
	left, err := b.Left.Eval(vars)
	if err != nil {
		return 0, err
	}
	right, err := b.Right.Eval(vars)
	if err != nil {
		return 0, err
	}

	switch b.Op {
	case ADD:
		return left + right, nil
	case SUB:
		return left - right, nil
	case MUL:
		return left * right, nil
	case DIV:
		if right == 0 {
			return 0, &EvalError{Kind: ErrDivisionByZero}
		}
		return left / right, nil
	case POW:
		return math.Pow(left, right), nil
	}
	return 0, fmt.Errorf("unknown binary operation %d", b.Op)
}

func (b *Binary) Clone() Node {
	return &Binary{Op: b.Op, Left: b.Left.Clone(), Right: b.Right.Clone()}
}

// Unary applies a unary operator or built-in function to one owned
// subtree.
type Unary struct {
	Op      UnOp
	Operand Node
}

func (u *Unary) String() string {
	switch u.Op {
	case POS:
		return "+" + u.Operand.String()
	case NEG:
		return "-" + u.Operand.String()
	}
	return u.Op.Name() + "(" + u.Operand.String() + ")"
}

func (u *Unary) Eval(vars map[string]float64) (float64, error) {
	val, err := u.Operand.Eval(vars)
	if err != nil {
		return 0, err
	}
	return applyUnary(u.Op, val)
}

func (u *Unary) Clone() Node {
	return &Unary{Op: u.Op, Operand: u.Operand.Clone()}
}

// Call invokes a named function with an ordered argument list. Arity and
// name validity are checked at evaluation time, not parse time.
type Call struct {
	Name string
	Args []Node
}

func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

func (c *Call) Eval(vars map[string]float64) (float64, error) {
	if len(c.Args) != 1 {
		return 0, &EvalError{Kind: ErrArity, Detail: c.Name}
	}

	arg, err := c.Args[0].Eval(vars)
	if err != nil {
		return 0, err
	}

	op, ok := unaryByName(c.Name)
	if !ok {
		return 0, &EvalError{Kind: ErrUnknownFunction, Detail: c.Name}
	}
	return applyUnary(op, arg)
}

func (c *Call) Clone() Node {
	args := make([]Node, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.Clone()
	}
	return &Call{Name: c.Name, Args: args}
}

// applyUnary evaluates a unary operator with the shared domain checks:
// log and ln require a positive argument, sqrt a non-negative one.
func applyUnary(op UnOp, val float64) (float64, error) {
	switch op {
	case POS:
		return val, nil
	case NEG:
		return -val, nil
	case SIN:
		return math.Sin(val), nil
	case COS:
		return math.Cos(val), nil
	case TAN:
		return math.Tan(val), nil
	case LOG:
		if val <= 0 {
			return 0, &EvalError{Kind: ErrDomain, Detail: "log of non-positive number"}
		}
		return math.Log10(val), nil
	case LN:
		if val <= 0 {
			return 0, &EvalError{Kind: ErrDomain, Detail: "natural log of non-positive number"}
		}
		return math.Log(val), nil
	case SQRT:
		if val < 0 {
			return 0, &EvalError{Kind: ErrDomain, Detail: "square root of negative number"}
		}
		return math.Sqrt(val), nil
	case ABS:
		return math.Abs(val), nil
	}
	return 0, fmt.Errorf("unknown unary operation %d", op)
}

// unaryByName maps a registered function name to its operator.
func unaryByName(name string) (UnOp, bool) {
	switch name {
	case "sin":
		return SIN, true
	case "cos":
		return COS, true
	case "tan":
		return TAN, true
	case "log":
		return LOG, true
	case "ln":
		return LN, true
	case "sqrt":
		return SQRT, true
	case "abs":
		return ABS, true
	}
	return 0, false
}

// UnaryByName reports the unary operator for a registered function name.
func UnaryByName(name string) (UnOp, bool) {
	return unaryByName(name)
}

// FormatNumber renders a float the way the tree printers expect:
// integral values without a decimal part, everything else in compact
// 'g' form.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
