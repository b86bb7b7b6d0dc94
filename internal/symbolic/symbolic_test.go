package symbolic

import (
	"errors"
	"math"
	"testing"

	"github.com/asiyen02/cas/internal/parser"
)

func mustExpr(t *testing.T, input string) Expr {
	t.Helper()
	node, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	e, err := FromAST(node)
	if err != nil {
		t.Fatalf("FromAST(%q) failed: %v", input, err)
	}
	return e
}

func isTransformError(err error) bool {
	var te *TransformError
	return errors.As(err, &te)
}

func TestFromAST(t *testing.T) {
	e := mustExpr(t, "2x + sin(-y) / 3")

	got, err := e.Eval(map[string]float64{"x": 4, "y": 0})
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if got != 8 {
		t.Errorf("expected 8, got %g", got)
	}
}

func TestFromASTNil(t *testing.T) {
	if _, err := FromAST(nil); err == nil {
		t.Error("expected error for nil node")
	}
}

func TestCoefficientPrinting(t *testing.T) {
	x := &Variable{Name: "x"}

	tests := []struct {
		expr Expr
		want string
	}{
		{&Binary{Op: MUL, Left: &Number{Value: 2}, Right: x.Clone()}, "2x"},
		{&Binary{Op: MUL, Left: x.Clone(), Right: &Number{Value: 2}}, "2x"},
		{&Binary{Op: MUL, Left: &Number{Value: 1}, Right: x.Clone()}, "x"},
		{&Binary{Op: MUL, Left: &Number{Value: -1}, Right: x.Clone()}, "-x"},
		{&Binary{Op: MUL, Left: &Number{Value: 3}, Right: &Call{Name: "sin", Args: []Expr{x.Clone()}}}, "3sin(x)"},
		{
			&Binary{
				Op:    MUL,
				Left:  &Number{Value: 3},
				Right: &Binary{Op: ADD, Left: x.Clone(), Right: &Number{Value: 1}},
			},
			"3((x + 1))",
		},
		// Two literals fold at print time
		{&Binary{Op: MUL, Left: &Number{Value: 2}, Right: &Number{Value: 3}}, "6"},
		// Non-constant on both sides keeps the infix form
		{&Binary{Op: MUL, Left: x.Clone(), Right: &Variable{Name: "y"}}, "(x * y)"},
	}

	for _, tt := range tests {
		if got := tt.expr.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestDifferentiatePolynomial(t *testing.T) {
	e := mustExpr(t, "x^2")

	d, err := e.Differentiate("x")
	if err != nil {
		t.Fatalf("Differentiate failed: %v", err)
	}
	s, err := d.Simplify()
	if err != nil {
		t.Fatalf("Simplify failed: %v", err)
	}
	if s.String() != "2x" {
		t.Errorf("expected '2x', got %q", s.String())
	}
}

func TestDifferentiateTrig(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"sin(x)", "cos(x)"},
		{"cos(x)", "-sin(x)"},
		{"ln(x)", "(1 / x)"},
	}

	for _, tt := range tests {
		e := mustExpr(t, tt.input)
		d, err := e.Differentiate("x")
		if err != nil {
			t.Fatalf("Differentiate(%q) failed: %v", tt.input, err)
		}
		s, err := d.Simplify()
		if err != nil {
			t.Fatalf("Simplify failed: %v", err)
		}
		if s.String() != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.input, tt.want, s.String())
		}
	}
}

func TestDifferentiateOtherVariable(t *testing.T) {
	e := mustExpr(t, "x * y")

	d, err := e.Differentiate("x")
	if err != nil {
		t.Fatalf("Differentiate failed: %v", err)
	}
	s, err := d.Simplify()
	if err != nil {
		t.Fatalf("Simplify failed: %v", err)
	}
	if s.String() != "y" {
		t.Errorf("expected 'y', got %q", s.String())
	}
}

func TestDifferentiateQuotient(t *testing.T) {
	e := mustExpr(t, "1 / x")

	d, err := e.Differentiate("x")
	if err != nil {
		t.Fatalf("Differentiate failed: %v", err)
	}
	s, err := d.Simplify()
	if err != nil {
		t.Fatalf("Simplify failed: %v", err)
	}
	if s.String() != "(-1 / (x ^ 2))" {
		t.Errorf("expected '(-1 / (x ^ 2))', got %q", s.String())
	}
}

func TestDifferentiateUnsupported(t *testing.T) {
	// Variable exponents
	e := mustExpr(t, "x ^ y")
	if _, err := e.Differentiate("x"); !isTransformError(err) {
		t.Errorf("expected TransformError for variable exponent, got %v", err)
	}

	// log and abs differentiation is not implemented
	for _, input := range []string{"log(x)", "abs(x)"} {
		e := mustExpr(t, input)
		if _, err := e.Differentiate("x"); !isTransformError(err) {
			t.Errorf("%q: expected TransformError, got %v", input, err)
		}
	}
}

func TestIntegratePowers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x", "((x ^ 2) / 2)"},
		{"x^3", "((x ^ 4) / 4)"},
		{"x^(-1)", "ln(x)"},
		{"1 / x", "ln(x)"},
		{"sin(x)", "-cos(x)"},
		{"cos(x)", "sin(x)"},
		{"5", "5x"},
	}

	for _, tt := range tests {
		e := mustExpr(t, tt.input)
		integral, err := e.Integrate("x")
		if err != nil {
			t.Fatalf("Integrate(%q) failed: %v", tt.input, err)
		}
		s, err := integral.Simplify()
		if err != nil {
			t.Fatalf("Simplify failed: %v", err)
		}
		if s.String() != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.input, tt.want, s.String())
		}
	}
}

func TestIntegrateConstantFactor(t *testing.T) {
	e := mustExpr(t, "2 * x")

	integral, err := e.Integrate("x")
	if err != nil {
		t.Fatalf("Integrate failed: %v", err)
	}
	got, err := integral.Eval(map[string]float64{"x": 3})
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if got != 9 {
		t.Errorf("expected 9, got %g", got)
	}
}

func TestIntegrateGeneralProductFails(t *testing.T) {
	e := mustExpr(t, "x * y")
	if _, err := e.Integrate("x"); !isTransformError(err) {
		t.Errorf("expected TransformError for general product, got %v", err)
	}
}

func TestIntegrateCompositeArgumentFails(t *testing.T) {
	// The operand match is string identity, so x + 0 is not x
	e := mustExpr(t, "sin(x + 0)")
	if _, err := e.Integrate("x"); !isTransformError(err) {
		t.Errorf("expected TransformError for composite argument, got %v", err)
	}
}

func TestIntegrateOtherVariableAsConstant(t *testing.T) {
	e := mustExpr(t, "y")

	integral, err := e.Integrate("x")
	if err != nil {
		t.Fatalf("Integrate failed: %v", err)
	}
	if integral.String() != "(y * x)" {
		t.Errorf("expected '(y * x)', got %q", integral.String())
	}
}

func TestSimplifyIdentities(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x + 0", "x"},
		{"0 + x", "x"},
		{"x - 0", "x"},
		{"0 - x", "-x"},
		{"x * 1", "x"},
		{"x * 0", "0"},
		{"x / 1", "x"},
		{"x ^ 0", "1"},
		{"x ^ 1", "x"},
		{"0 ^ x", "0"},
		{"1 ^ x", "1"},
		{"-(-x)", "x"},
		{"2 + 3 * 4", "14"},
		{"sin(0)", "0"},
	}

	for _, tt := range tests {
		e := mustExpr(t, tt.input)
		s, err := e.Simplify()
		if err != nil {
			t.Fatalf("Simplify(%q) failed: %v", tt.input, err)
		}
		if s.String() != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.input, tt.want, s.String())
		}
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	inputs := []string{
		"x + 0",
		"x^2 + 2x + 1",
		"sin(x) * 1",
		"2 + 3 * 4",
		"(x + 0) * (y + 0)",
	}

	for _, input := range inputs {
		e := mustExpr(t, input)
		once, err := e.Simplify()
		if err != nil {
			t.Fatalf("Simplify(%q) failed: %v", input, err)
		}
		twice, err := once.Simplify()
		if err != nil {
			t.Fatalf("second Simplify(%q) failed: %v", input, err)
		}
		if once.String() != twice.String() {
			t.Errorf("%q: not idempotent: %q vs %q", input, once.String(), twice.String())
		}
	}
}

func TestSimplifyDivisionByZero(t *testing.T) {
	e := mustExpr(t, "x / 0")
	if _, err := e.Simplify(); !isTransformError(err) {
		t.Errorf("expected TransformError for zero divisor, got %v", err)
	}
}

func TestSolveConstantLeft(t *testing.T) {
	e := mustExpr(t, "3 + x")

	sol, err := Solve(e, "x")
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if sol.String() != "(-3 / x)" {
		t.Errorf("expected '(-3 / x)', got %q", sol.String())
	}
}

func TestSolveLinear(t *testing.T) {
	e := mustExpr(t, "2 * x - 3")

	sol, err := Solve(e, "x")
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	got, err := sol.Eval(nil)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if math.Abs(got-1.5) > 1e-12 {
		t.Errorf("expected 1.5, got %g", got)
	}
}

func TestSolveUnsupported(t *testing.T) {
	e := mustExpr(t, "sin(x)")
	if _, err := Solve(e, "x"); !isTransformError(err) {
		t.Errorf("expected TransformError, got %v", err)
	}
}

func TestFactorProduct(t *testing.T) {
	e := mustExpr(t, "x(x + 1)")

	factors, err := Factor(e)
	if err != nil {
		t.Fatalf("Factor failed: %v", err)
	}
	if len(factors) != 2 {
		t.Fatalf("expected 2 factors, got %d", len(factors))
	}
	if factors[0].String() != "x" || factors[1].String() != "(x + 1)" {
		t.Errorf("unexpected factors: %q, %q", factors[0].String(), factors[1].String())
	}
}

func TestFactorSquarePlusX(t *testing.T) {
	e := mustExpr(t, "x^2 + x")

	factors, err := Factor(e)
	if err != nil {
		t.Fatalf("Factor failed: %v", err)
	}
	if len(factors) != 2 {
		t.Fatalf("expected 2 factors, got %d", len(factors))
	}
	if factors[0].String() != "x" || factors[1].String() != "(x + 1)" {
		t.Errorf("unexpected factors: %q, %q", factors[0].String(), factors[1].String())
	}
}

func TestFactorFallback(t *testing.T) {
	e := mustExpr(t, "x + 1")

	factors, err := Factor(e)
	if err != nil {
		t.Fatalf("Factor failed: %v", err)
	}
	if len(factors) != 1 {
		t.Fatalf("expected 1 element, got %d", len(factors))
	}
	if factors[0].String() != "(x + 1)" {
		t.Errorf("expected '(x + 1)', got %q", factors[0].String())
	}
}

func TestCloneIndependence(t *testing.T) {
	leaf := &Number{Value: 1}
	original := &Binary{Op: ADD, Left: &Variable{Name: "x"}, Right: leaf}

	clone := original.Clone()
	leaf.Value = 99
	if clone.String() == original.String() {
		t.Error("mutating the original changed the clone")
	}
}
