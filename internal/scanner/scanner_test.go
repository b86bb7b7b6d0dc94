package scanner

import (
	"testing"

	"github.com/asiyen02/cas/internal/token"
)

func TestScanExpression(t *testing.T) {
	s := New("2x + sin(y)", nil)

	want := []Item{
		{Token: token.NUMBER, Value: "2", Pos: 0},
		{Token: token.VARIABLE, Value: "x", Pos: 1},
		{Token: token.PLUS, Value: "+", Pos: 3},
		{Token: token.FUNCTION, Value: "sin", Pos: 5},
		{Token: token.LPAREN, Value: "(", Pos: 8},
		{Token: token.VARIABLE, Value: "y", Pos: 9},
		{Token: token.RPAREN, Value: ")", Pos: 10},
		{Token: token.EOF, Pos: 11},
	}

	for i, w := range want {
		got := s.Next()
		if got != w {
			t.Errorf("item %d: expected %+v, got %+v", i, w, got)
		}
	}
}

func TestScanNumbers(t *testing.T) {
	tests := []struct {
		input string
		value string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{".5", ".5"},
		{"1e5", "1e5"},
		{"2.5e-3", "2.5e-3"},
		{"1E+10", "1E+10"},
		// Malformed exponents are still consumed greedily
		{"1e+", "1e+"},
		{"1e", "1e"},
	}

	for _, tt := range tests {
		s := New(tt.input, nil)
		got := s.Next()
		if got.Token != token.NUMBER {
			t.Errorf("%q: expected NUMBER, got %v", tt.input, got.Token)
		}
		if got.Value != tt.value {
			t.Errorf("%q: expected value %q, got %q", tt.input, tt.value, got.Value)
		}
	}
}

func TestScanSecondDecimalPoint(t *testing.T) {
	s := New("1.2.3", nil)

	first := s.Next()
	if first.Token != token.NUMBER || first.Value != "1.2" {
		t.Errorf("expected NUMBER '1.2', got %v %q", first.Token, first.Value)
	}
	second := s.Next()
	if second.Token != token.NUMBER || second.Value != ".3" {
		t.Errorf("expected NUMBER '.3', got %v %q", second.Token, second.Value)
	}
}

func TestScanIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		token token.Token
	}{
		{"sin", token.FUNCTION},
		{"cos", token.FUNCTION},
		{"sqrt", token.FUNCTION},
		{"x", token.VARIABLE},
		{"sine", token.VARIABLE},
		{"_tmp", token.VARIABLE},
		{"x2", token.VARIABLE},
	}

	for _, tt := range tests {
		s := New(tt.input, nil)
		got := s.Next()
		if got.Token != tt.token {
			t.Errorf("%q: expected %v, got %v", tt.input, tt.token, got.Token)
		}
		if got.Value != tt.input {
			t.Errorf("%q: expected value %q, got %q", tt.input, tt.input, got.Value)
		}
	}
}

func TestScanCustomRegistry(t *testing.T) {
	s := New("sin foo", token.NewRegistry("foo"))

	first := s.Next()
	if first.Token != token.VARIABLE {
		t.Errorf("expected 'sin' to be VARIABLE under custom registry, got %v", first.Token)
	}
	second := s.Next()
	if second.Token != token.FUNCTION {
		t.Errorf("expected 'foo' to be FUNCTION under custom registry, got %v", second.Token)
	}
}

func TestScanInvalid(t *testing.T) {
	s := New("2 @ 3", nil)

	s.Next() // 2
	got := s.Next()
	if got.Token != token.INVALID || got.Value != "@" {
		t.Errorf("expected INVALID '@', got %v %q", got.Token, got.Value)
	}
}

func TestEOFIsSticky(t *testing.T) {
	s := New("x", nil)
	s.Next()

	for i := 0; i < 3; i++ {
		if got := s.Next(); got.Token != token.EOF {
			t.Fatalf("expected EOF on call %d, got %v", i, got.Token)
		}
	}
}

func TestReset(t *testing.T) {
	s := New("x + 1", nil)

	first := s.Next()
	s.Next()
	s.Next()

	s.Reset()
	if got := s.Next(); got != first {
		t.Errorf("expected %+v after Reset, got %+v", first, got)
	}
}
