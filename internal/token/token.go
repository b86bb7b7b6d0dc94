// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines cas token types and the function-name registry.
package token

// Token represents a cas token type.
type Token int

const (
	EOF Token = iota
	NUMBER
	VARIABLE
	FUNCTION
	PLUS
	MINUS
	STAR
	SLASH
	CARET
	LPAREN
	RPAREN
	COMMA
	INVALID
)

// FromRune returns the token type for a single-character operator rune
// and whether the rune is one.
func FromRune(r rune) (Token, bool) {
	switch r {
	case '+':
		return PLUS, true
	case '-':
		return MINUS, true
	case '*':
		return STAR, true
	case '/':
		return SLASH, true
	case '^':
		return CARET, true
	case '(':
		return LPAREN, true
	case ')':
		return RPAREN, true
	case ',':
		return COMMA, true
	}
	return INVALID, false
}

// String returns the string representation of a token.
func (t Token) String() string {
	switch t {
	case EOF:
		return "EOF"
	case NUMBER:
		return "NUMBER"
	case VARIABLE:
		return "VARIABLE"
	case FUNCTION:
		return "FUNCTION"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case STAR:
		return "STAR"
	case SLASH:
		return "SLASH"
	case CARET:
		return "CARET"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case COMMA:
		return "COMMA"
	case INVALID:
		return "INVALID"
	}
	return "UNKNOWN"
}

// StartsFactor returns true if a token can begin a factor. The parser
// inserts an implicit multiplication when such a token follows a
// completed factor.
func (t Token) StartsFactor() bool {
	switch t {
	case NUMBER, VARIABLE, FUNCTION, LPAREN:
		return true
	}
	return false
}

// Registry is an immutable set of recognized function names. Identifiers
// matching a registry entry lex as FUNCTION tokens; everything else is a
// VARIABLE.
type Registry map[string]struct{}

// NewRegistry builds a registry from the given names.
func NewRegistry(names ...string) Registry {
	r := make(Registry, len(names))
	for _, n := range names {
		r[n] = struct{}{}
	}
	return r
}

// DefaultRegistry returns the built-in function set.
func DefaultRegistry() Registry {
	return NewRegistry("sin", "cos", "tan", "log", "ln", "sqrt", "abs")
}

// Contains reports whether name is a registered function.
func (r Registry) Contains(name string) bool {
	_, ok := r[name]
	return ok
}
