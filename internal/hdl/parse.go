// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"github.com/pkg/errors"
)

// Pin is a simple pin name
type Pin struct {
	Name string
	Pos  int
}

// PinIndex is an indexed pin p[index]
type PinIndex struct {
	Pin
	Index int
}

// PinRange is a pin range p[start..end]
type PinRange struct {
	Pin
	Start int
	End   int
}

// PinAssignment is a part pin to chip pin assignment. pp=pc
type PinAssignment struct {
	LHS interface{}
	RHS interface{}
}

// Parser is a simplistic parser for comma separated lists of pins, indexed
// pins, pin ranges and, optionally, pin assignments.
type Parser struct {
	Input string
	l     *Lexer
	i     Item
	done  bool
}

// Next returns the next item in the input stream: a Pin, PinIndex, PinRange or,
// if allowConns is true, a PinAssignment. It returns nil, nil once the input is
// exhausted.
func (p *Parser) Next(allowConns bool) (interface{}, error) {
	if p.done {
		return nil, nil
	}
	if p.l == nil {
		p.l = NewLexer(p.Input)
		p.i = p.l.Lex()
		if p.i.Type == EOF {
			p.done = true
			return nil, nil
		}
	} else {
		p.i = p.l.Lex()
	}

	lhs, err := p.getPin()
	if err != nil {
		p.done = true
		return nil, err
	}
	switch p.i.Type {
	case EOF:
		p.done = true
		return lhs, nil
	case Comma:
		return lhs, nil
	case Equal:
		if allowConns {
			break
		}
		fallthrough
	default:
		p.done = true
		return nil, parseError(p.Input, p.i.Pos, "unexpected "+p.i.String())
	}

	p.i = p.l.Lex()
	rhs, err := p.getPin()
	if err != nil {
		p.done = true
		return nil, err
	}
	switch p.i.Type {
	case EOF:
		p.done = true
		fallthrough
	case Comma:
		return PinAssignment{lhs, rhs}, nil
	}
	p.done = true
	return nil, parseError(p.Input, p.i.Pos, "unexpected "+p.i.String())
}

// getPin parses a pin starting at the current item. On return, p.i is the item
// following the pin.
func (p *Parser) getPin() (interface{}, error) {
	if p.i.Type != Ident {
		return nil, parseError(p.Input, p.i.Pos, "expected pin name, got "+p.i.String())
	}
	pin := Pin{p.i.Value.(string), p.i.Pos}
	p.i = p.l.Lex()
	if p.i.Type != BracketOpen {
		return pin, nil
	}
	p.i = p.l.Lex()
	if p.i.Type != Int {
		return nil, parseError(p.Input, p.i.Pos, "integer value expected after '['")
	}
	start := p.i.Value.(int)
	end := -1
	p.i = p.l.Lex()
	if p.i.Type == Range {
		p.i = p.l.Lex()
		if p.i.Type != Int {
			return nil, parseError(p.Input, p.i.Pos, "integer value expected after '..'")
		}
		end = p.i.Value.(int)
		p.i = p.l.Lex()
	}
	if p.i.Type != BracketClose {
		return nil, parseError(p.Input, p.i.Pos, "closing ']' expected after index or range")
	}
	p.i = p.l.Lex()
	if end >= 0 {
		return PinRange{pin, start, end}, nil
	}
	return PinIndex{pin, start}, nil
}

func parseError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
