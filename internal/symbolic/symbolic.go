// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package symbolic implements the symbolic expression tree and the
// rewrite rules for differentiation, integration, and simplification.
//
// The tree mirrors the parser's AST structurally but is an independent
// type family: once converted, the AST is no longer needed. All
// transformations are functional, returning fresh trees and cloning any
// subtree that appears more than once in the output.
package symbolic

import (
	"fmt"
	"math"
	"strings"

	"github.com/asiyen02/cas/internal/ast"
)

// Expr is the interface all symbolic expression nodes implement.
type Expr interface {
	// String returns the display rendering, with coefficient collapsing
	// for multiplications by a literal number.
	String() string
	// Clone returns a deep copy sharing no subtrees with the original.
	Clone() Expr
	// Eval computes the numeric value under the given bindings.
	Eval(vars map[string]float64) (float64, error)
	// Differentiate returns the derivative with respect to variable.
	Differentiate(variable string) (Expr, error)
	// Integrate returns an antiderivative with respect to variable, or a
	// TransformError for shapes outside the recognized closed forms.
	Integrate(variable string) (Expr, error)
	// Simplify rewrites the tree bottom-up using algebraic identities
	// and constant folding.
	Simplify() (Expr, error)
	// IsConstant reports whether the subtree contains no variables.
	IsConstant() bool
	// IsZero reports whether the node is the literal number 0.
	IsZero() bool
	// IsOne reports whether the node is the literal number 1.
	IsOne() bool
}

// BinOp identifies a symbolic binary operator.
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

// UnOp identifies a symbolic unary operator.
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

// Name returns the function-style name of the operator.
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

// TransformError is returned when a symbolic rewrite cannot be applied
// to the given expression shape.
type TransformError struct {
	Op  string
	Msg string
}

func (e *TransformError) Error() string {
	return e.Op + ": " + e.Msg
}

func transformErrorf(op, format string, args ...interface{}) error {
	return &TransformError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

func (n *Number) String() string {
	return ast.FormatNumber(n.Value)
}

func (n *Number) Clone() Expr {
	return &Number{Value: n.Value}
}

func (n *Number) Eval(vars map[string]float64) (float64, error) {
	return n.Value, nil
}

func (n *Number) IsConstant() bool { return true }
func (n *Number) IsZero() bool     { return n.Value == 0 }
func (n *Number) IsOne() bool      { return n.Value == 1 }

// Variable is a named free variable.
type Variable struct {
	Name string
}

func (v *Variable) String() string {
	return v.Name
}

func (v *Variable) Clone() Expr {
	return &Variable{Name: v.Name}
}

func (v *Variable) Eval(vars map[string]float64) (float64, error) {
	val, ok := vars[v.Name]
	if !ok {
		return 0, &ast.EvalError{Kind: ast.ErrUndefinedVariable, Detail: v.Name}
	}
	return val, nil
}

func (v *Variable) IsConstant() bool { return false }
func (v *Variable) IsZero() bool     { return false }
func (v *Variable) IsOne() bool      { return false }

// Binary applies a binary operator to two owned subtrees.
type Binary struct {
	Op    BinOp
	Left  Expr
	Right Expr
}

func (b *Binary) String() string {
	if b.Op == MUL {
		ln, leftIsNum := b.Left.(*Number)
		rn, rightIsNum := b.Right.(*Number)

		// Two literals fold to their product at print time even if the
		// tree itself was never simplified.
		if leftIsNum && rightIsNum {
			return ast.FormatNumber(ln.Value * rn.Value)
		}
		if leftIsNum && !b.Right.IsConstant() {
			return coefficientString(ln.Value, b.Right)
		}
		if rightIsNum && !b.Left.IsConstant() {
			return coefficientString(rn.Value, b.Left)
		}
		return "(" + b.Left.String() + " * " + b.Right.String() + ")"
	}

	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

// coefficientString renders a constant*expr multiplication in juxtaposed
// form: 2x, -sin(x), 3(x + 1). Coefficient 1 is dropped and -1 becomes a
// leading minus.
func coefficientString(coeff float64, operand Expr) string {
	s := operand.String()
	if coeff == 1 {
		return s
	}
	if coeff == -1 {
		return "-" + s
	}

	switch operand.(type) {
	case *Variable, *Call, *Unary:
		return ast.FormatNumber(coeff) + s
	}
	return ast.FormatNumber(coeff) + "(" + s + ")"
}

func (b *Binary) Clone() Expr {
	return &Binary{Op: b.Op, Left: b.Left.Clone(), Right: b.Right.Clone()}
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
			return 0, &ast.EvalError{Kind: ast.ErrDivisionByZero}
		}
		return left / right, nil
	case POW:
		return math.Pow(left, right), nil
	}
	return 0, fmt.Errorf("unknown binary operation %d", b.Op)
}

func (b *Binary) IsConstant() bool {
	return b.Left.IsConstant() && b.Right.IsConstant()
}

func (b *Binary) IsZero() bool { return false }
func (b *Binary) IsOne() bool  { return false }

// Unary applies a unary operator or built-in function to one owned
// subtree.
type Unary struct {
	Op      UnOp
	Operand Expr
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

func (u *Unary) Clone() Expr {
	return &Unary{Op: u.Op, Operand: u.Operand.Clone()}
}

func (u *Unary) Eval(vars map[string]float64) (float64, error) {
	val, err := u.Operand.Eval(vars)
	if err != nil {
		return 0, err
	}
	return applyUnary(u.Op, val)
}

func (u *Unary) IsConstant() bool { return u.Operand.IsConstant() }

// IsZero delegates through sign wrappers so that -0 still counts as
// zero; it performs no algebraic analysis.
func (u *Unary) IsZero() bool { return u.Operand.IsZero() }
func (u *Unary) IsOne() bool  { return false }

// Call invokes a named function with an ordered argument list.
type Call struct {
	Name string
	Args []Expr
}

func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

func (c *Call) Clone() Expr {
	args := make([]Expr, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.Clone()
	}
	return &Call{Name: c.Name, Args: args}
}

func (c *Call) Eval(vars map[string]float64) (float64, error) {
	if len(c.Args) != 1 {
		return 0, &ast.EvalError{Kind: ast.ErrArity, Detail: c.Name}
	}

	arg, err := c.Args[0].Eval(vars)
	if err != nil {
		return 0, err
	}

	op, ok := unaryOpForFunction(c.Name)
	if !ok {
		return 0, &ast.EvalError{Kind: ast.ErrUnknownFunction, Detail: c.Name}
	}
	return applyUnary(op, arg)
}

func (c *Call) IsConstant() bool {
	for _, a := range c.Args {
		if !a.IsConstant() {
			return false
		}
	}
	return true
}

func (c *Call) IsZero() bool { return false }
func (c *Call) IsOne() bool  { return false }

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
			return 0, &ast.EvalError{Kind: ast.ErrDomain, Detail: "log of non-positive number"}
		}
		return math.Log10(val), nil
	case LN:
		if val <= 0 {
			return 0, &ast.EvalError{Kind: ast.ErrDomain, Detail: "natural log of non-positive number"}
		}
		return math.Log(val), nil
	case SQRT:
		if val < 0 {
			return 0, &ast.EvalError{Kind: ast.ErrDomain, Detail: "square root of negative number"}
		}
		return math.Sqrt(val), nil
	case ABS:
		return math.Abs(val), nil
	}
	return 0, fmt.Errorf("unknown unary operation %d", op)
}

func unaryOpForFunction(name string) (UnOp, bool) {
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

// FromAST converts a parsed tree into its symbolic counterpart. The
// mapping is total over the closed AST node set; anything else is an
// error rather than a silent drop.
func FromAST(n ast.Node) (Expr, error) {
	if n == nil {
		return nil, fmt.Errorf("nil AST node")
	}

	switch v := n.(type) {
	case *ast.Number:
		return &Number{Value: v.Value}, nil

	case *ast.Variable:
		return &Variable{Name: v.Name}, nil

	case *ast.Binary:
		left, err := FromAST(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := FromAST(v.Right)
		if err != nil {
			return nil, err
		}
		op, err := binOpFromAST(v.Op)
		if err != nil {
			return nil, err
		}
		return &Binary{Op: op, Left: left, Right: right}, nil

	case *ast.Unary:
		operand, err := FromAST(v.Operand)
		if err != nil {
			return nil, err
		}
		op, err := unOpFromAST(v.Op)
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, Operand: operand}, nil

	case *ast.Call:
		args := make([]Expr, len(v.Args))
		for i, a := range v.Args {
			arg, err := FromAST(a)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &Call{Name: v.Name, Args: args}, nil

	default:
		return nil, fmt.Errorf("unknown AST node type %T", n)
	}
}

func binOpFromAST(op ast.BinOp) (BinOp, error) {
	switch op {
	case ast.ADD:
		return ADD, nil
	case ast.SUB:
		return SUB, nil
	case ast.MUL:
		return MUL, nil
	case ast.DIV:
		return DIV, nil
	case ast.POW:
		return POW, nil
	}
	return 0, fmt.Errorf("unknown binary operation %d", op)
}

func unOpFromAST(op ast.UnOp) (UnOp, error) {
	switch op {
	case ast.POS:
		return POS, nil
	case ast.NEG:
		return NEG, nil
	case ast.SIN:
		return SIN, nil
	case ast.COS:
		return COS, nil
	case ast.TAN:
		return TAN, nil
	case ast.LOG:
		return LOG, nil
	case ast.LN:
		return LN, nil
	case ast.SQRT:
		return SQRT, nil
	case ast.ABS:
		return ABS, nil
	}
	return 0, fmt.Errorf("unknown unary operation %d", op)
}
