// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides a single-pass lexer for infix math expressions.
package scanner

import (
	"github.com/asiyen02/cas/internal/token"
)

// Item represents a scanned token with its literal text and the byte
// offset where it started.
type Item struct {
	Token token.Token
	Value string
	Pos   int
}

// Scanner tokenizes an expression string. It never fails: characters it
// does not recognize come back as INVALID items for the parser to reject.
type Scanner struct {
	input string
	pos   int
	funcs token.Registry
}

// New creates a Scanner over input. A nil registry selects the default
// function set.
func New(input string, funcs token.Registry) *Scanner {
	if funcs == nil {
		funcs = token.DefaultRegistry()
	}
	return &Scanner{input: input, funcs: funcs}
}

// Pos returns the current scan offset.
func (s *Scanner) Pos() int {
	return s.pos
}

// Reset rewinds the scanner to the start of its input.
func (s *Scanner) Reset() {
	s.pos = 0
}

// Next returns the next token from the input. At end of input it returns
// an EOF item; it does not restart.
func (s *Scanner) Next() Item {
	s.skipWhitespace()

	if s.pos >= len(s.input) {
		return Item{Token: token.EOF, Pos: s.pos}
	}

	c := s.input[s.pos]
	start := s.pos

	if isDigit(c) || c == '.' {
		return s.scanNumber()
	}

	if isAlpha(c) || c == '_' {
		return s.scanIdentifier()
	}

	if t, ok := token.FromRune(rune(c)); ok {
		s.pos++
		return Item{Token: t, Value: string(c), Pos: start}
	}

	s.pos++
	return Item{Token: token.INVALID, Value: string(c), Pos: start}
}

func (s *Scanner) skipWhitespace() {
	for s.pos < len(s.input) && isSpace(s.input[s.pos]) {
		s.pos++
	}
}

// scanNumber consumes the longest match of digits with at most one
// decimal point and an optional exponent suffix. A malformed exponent
// ("1e" with no digits) is still consumed greedily; strconv rejects it
// at parse time.
func (s *Scanner) scanNumber() Item {
	start := s.pos
	hasDecimal := false

	for s.pos < len(s.input) {
		c := s.input[s.pos]
		if isDigit(c) {
			s.pos++
		} else if c == '.' && !hasDecimal {
			hasDecimal = true
			s.pos++
		} else if c == 'e' || c == 'E' {
			s.pos++
			if s.pos < len(s.input) && (s.input[s.pos] == '+' || s.input[s.pos] == '-') {
				s.pos++
			}
			for s.pos < len(s.input) && isDigit(s.input[s.pos]) {
				s.pos++
			}
			break
		} else {
			break
		}
	}

	return Item{Token: token.NUMBER, Value: s.input[start:s.pos], Pos: start}
}

func (s *Scanner) scanIdentifier() Item {
	start := s.pos
	for s.pos < len(s.input) && (isAlnum(s.input[s.pos]) || s.input[s.pos] == '_') {
		s.pos++
	}

	name := s.input[start:s.pos]
	t := token.VARIABLE
	if s.funcs.Contains(name) {
		t = token.FUNCTION
	}
	return Item{Token: t, Value: name, Pos: start}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isDigit(c) || isAlpha(c)
}
