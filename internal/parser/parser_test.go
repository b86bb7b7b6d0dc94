package parser

import (
	"errors"
	"testing"

	"github.com/asiyen02/cas/internal/token"
)

func eval(t *testing.T, input string, vars map[string]float64) float64 {
	t.Helper()
	node, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	got, err := node.Eval(vars)
	if err != nil {
		t.Fatalf("Eval(%q) failed: %v", input, err)
	}
	return got
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"2 ^ 3 ^ 2", 512}, // right associative
		{"10 - 4 - 3", 3},  // left associative
		{"12 / 3 / 2", 2},
		{"2 * 3 ^ 2", 18},
		{"-2 ^ 2", 4}, // unary binds tighter than ^
	}

	for _, tt := range tests {
		if got := eval(t, tt.input, nil); got != tt.want {
			t.Errorf("%q: expected %g, got %g", tt.input, tt.want, got)
		}
	}
}

func TestImplicitMultiplication(t *testing.T) {
	vars := map[string]float64{"x": 5, "y": 3}
	tests := []struct {
		input string
		want  float64
	}{
		{"2x", 10},
		{"x y", 15},
		{"3(x + 1)", 18},
		{"2sin(0)", 0},
		{"(x)(y)", 15},
		{"2 3", 6},
	}

	for _, tt := range tests {
		if got := eval(t, tt.input, vars); got != tt.want {
			t.Errorf("%q: expected %g, got %g", tt.input, tt.want, got)
		}
	}
}

func TestStringForm(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"2x", "(2 * x)"},
		{"sin(x)", "sin(x)"},
		{"-x", "-x"},
		{"x^2 + 2x + 1", "(((x ^ 2) + (2 * x)) + 1)"},
	}

	for _, tt := range tests {
		node, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.input, err)
		}
		if got := node.String(); got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"2 + 3 * 4",
		"x^2 + 2x + 1",
		"sin(x) / cos(x)",
		"-(x + 1)",
		"sqrt(x^2 + y^2)",
	}

	for _, input := range inputs {
		first, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", input, err)
		}
		second, err := Parse(first.String())
		if err != nil {
			t.Fatalf("re-parse of %q failed: %v", first.String(), err)
		}
		if first.String() != second.String() {
			t.Errorf("%q: round trip changed rendering: %q vs %q",
				input, first.String(), second.String())
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		pos   int
	}{
		{"2 +", 3},
		{"", 0},
		{"(1 + 2", 6},
		{"sin 2", 4},
		{")", 0},
		{"2 + 3 )", 6},
		{"1 @ 2", 2},
	}

	for _, tt := range tests {
		_, err := Parse(tt.input)
		if err == nil {
			t.Errorf("%q: expected parse error", tt.input)
			continue
		}
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("%q: expected *ParseError, got %T", tt.input, err)
			continue
		}
		if parseErr.Pos != tt.pos {
			t.Errorf("%q: expected error at position %d, got %d (%v)",
				tt.input, tt.pos, parseErr.Pos, err)
		}
	}
}

func TestFunctionCalls(t *testing.T) {
	if got := eval(t, "sqrt(9) + abs(-2)", nil); got != 5 {
		t.Errorf("expected 5, got %g", got)
	}

	// Empty argument lists parse; arity is checked at evaluation
	node, err := Parse("sin()")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := node.Eval(nil); err == nil {
		t.Error("expected arity error evaluating sin()")
	}
}

func TestCustomFunctions(t *testing.T) {
	p := NewWithFunctions("sin * 2", token.NewRegistry("foo"))
	node, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got, err := node.Eval(map[string]float64{"sin": 3})
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if got != 6 {
		t.Errorf("expected 6, got %g", got)
	}
}
