// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package parser builds expression trees from infix text.
//
// Grammar, lowest to highest precedence:
//
//	term    = factor { ("+" | "-") factor }
//	factor  = power { ("*" | "/" | <factor-start>) power }
//	power   = primary [ "^" power ]            (right associative)
//	primary = NUMBER | VARIABLE | call | "(" term ")" | ("+" | "-") primary
//	call    = FUNCTION "(" [ term { "," term } ] ")"
//
// A factor-start token (number, variable, function name, or open paren)
// directly after a completed power denotes implicit multiplication, so
// "2x" parses as (2 * x).
package parser

import (
	"fmt"
	"strconv"

	"github.com/asiyen02/cas/internal/ast"
	"github.com/asiyen02/cas/internal/scanner"
	"github.com/asiyen02/cas/internal/token"
)

// ParseError describes a parse failure with the byte offset of the
// offending token.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
}

// Parser is a single-use recursive descent parser over one input string.
type Parser struct {
	scan *scanner.Scanner
	cur  scanner.Item
}

// New creates a parser for input using the default function registry.
func New(input string) *Parser {
	return NewWithFunctions(input, nil)
}

// NewWithFunctions creates a parser with a custom function registry.
func NewWithFunctions(input string, funcs token.Registry) *Parser {
	p := &Parser{scan: scanner.New(input, funcs)}
	p.advance()
	return p
}

// Parse parses input into an expression tree using the default function
// registry.
func Parse(input string) (ast.Node, error) {
	return New(input).Parse()
}

// Parse consumes the whole input and returns the tree. Trailing tokens
// after a complete expression are a parse error; no partial result is
// returned on failure.
func (p *Parser) Parse() (ast.Node, error) {
	node, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.cur.Token != token.EOF {
		return nil, p.errorf("expected end of expression")
	}
	return node, nil
}

func (p *Parser) advance() {
	p.cur = p.scan.Next()
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Pos: p.cur.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) parseTerm() (ast.Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.cur.Token == token.PLUS || p.cur.Token == token.MINUS {
		op := ast.ADD
		if p.cur.Token == token.MINUS {
			op = ast.SUB
		}
		p.advance()

		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}

	return left, nil
}

func (p *Parser) parseFactor() (ast.Node, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	for p.cur.Token == token.STAR || p.cur.Token == token.SLASH || p.cur.Token.StartsFactor() {
		op := ast.MUL
		switch p.cur.Token {
		case token.STAR:
			p.advance()
		case token.SLASH:
			op = ast.DIV
			p.advance()
		default:
			// Implicit multiplication: the next token starts a new
			// factor, so the synthetic operator is not consumed.
		}

		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}

	return left, nil
}

func (p *Parser) parsePower() (ast.Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if p.cur.Token == token.CARET {
		p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: ast.POW, Left: left, Right: right}
	}

	return left, nil
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	switch p.cur.Token {
	case token.NUMBER:
		value, err := strconv.ParseFloat(p.cur.Value, 64)
		if err != nil {
			return nil, p.errorf("invalid number %q", p.cur.Value)
		}
		p.advance()
		return &ast.Number{Value: value}, nil

	case token.VARIABLE:
		name := p.cur.Value
		p.advance()
		return &ast.Variable{Name: name}, nil

	case token.FUNCTION:
		return p.parseCall()

	case token.LPAREN:
		p.advance()
		node, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if p.cur.Token != token.RPAREN {
			return nil, p.errorf("expected closing parenthesis")
		}
		p.advance()
		return node, nil

	case token.PLUS, token.MINUS:
		op := ast.POS
		if p.cur.Token == token.MINUS {
			op = ast.NEG
		}
		p.advance()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, Operand: operand}, nil

	case token.EOF:
		return nil, p.errorf("unexpected end of input")

	default:
		return nil, p.errorf("unexpected token %q", p.cur.Value)
	}
}

func (p *Parser) parseCall() (ast.Node, error) {
	name := p.cur.Value
	p.advance()

	if p.cur.Token != token.LPAREN {
		return nil, p.errorf("expected opening parenthesis after function name %q", name)
	}
	p.advance()

	var args []ast.Node
	if p.cur.Token != token.RPAREN {
		arg, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		for p.cur.Token == token.COMMA {
			p.advance()
			arg, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}

	if p.cur.Token != token.RPAREN {
		return nil, p.errorf("expected closing parenthesis")
	}
	p.advance()

	return &ast.Call{Name: name, Args: args}, nil
}
