// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl implements a lexer and parser for pin specifications and
// connection strings.
package hdl

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Type is the type of a lexed item.
type Type int

// Tokens
const (
	EOF Type = iota
	Raw
	Ident
	BracketOpen
	BracketClose
	Comma
	Int
	Range
	Equal
)

var typeNames = [...]string{
	EOF:          "end of input",
	Raw:          "character",
	Ident:        "identifier",
	BracketOpen:  "'['",
	BracketClose: "']'",
	Comma:        "','",
	Int:          "integer",
	Range:        "'..'",
	Equal:        "'='",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "token(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// Item is a lexed token. Value is a string for Ident and Raw items and an int
// for Int items.
type Item struct {
	Type  Type
	Pos   int
	Value interface{}
}

func (i Item) String() string {
	switch i.Type {
	case Ident:
		return "identifier " + strconv.Quote(i.Value.(string))
	case Int:
		return "integer " + strconv.Itoa(i.Value.(int))
	case Raw:
		return "character " + strconv.QuoteRune(i.Value.(rune))
	}
	return i.Type.String()
}

// stateFn lexes one item starting at l.pos and returns the next state. A nil
// return value means "back to lexInit".
type stateFn func(l *Lexer) stateFn

// Lexer splits an i/o spec or a connection string into items.
type Lexer struct {
	input string
	start int // start of the current item
	pos   int // next rune
	width int // width of the last rune read
	items []Item
	state stateFn
}

// NewLexer returns a new lexer for i/o specs and connection descriptions.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Lex returns the next item in the input. Once the end of input is reached,
// it keeps returning EOF items.
func (l *Lexer) Lex() Item {
	for len(l.items) == 0 {
		st := l.state
		if st == nil {
			st = lexInit
		}
		l.state = st(l)
	}
	i := l.items[0]
	l.items = l.items[1:]
	return i
}

const eof = -1

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	return r
}

func (l *Lexer) backup() {
	l.pos -= l.width
	l.width = 0
}

func (l *Lexer) emit(t Type, v interface{}) {
	l.items = append(l.items, Item{Type: t, Pos: l.start, Value: v})
}

func lexInit(l *Lexer) stateFn {
	l.start = l.pos
	r := l.next()
	switch {
	case r == eof:
		return lexEOF
	case unicode.IsSpace(r):
		for unicode.IsSpace(r) {
			r = l.next()
		}
		l.backup()
	case unicode.IsLetter(r) || r == '_':
		return lexIdent
	case '0' <= r && r <= '9':
		return lexNumber
	case r == '[':
		l.emit(BracketOpen, "[")
	case r == ']':
		l.emit(BracketClose, "]")
	case r == ',':
		l.emit(Comma, ",")
	case r == '=':
		l.emit(Equal, "=")
	case r == '.':
		if l.next() == '.' {
			l.emit(Range, "..")
			break
		}
		l.backup()
		fallthrough
	default:
		l.emit(Raw, r)
		return lexEOF
	}
	return nil
}

func lexNumber(l *Lexer) stateFn {
	for r := l.next(); '0' <= r && r <= '9'; r = l.next() {
	}
	l.backup()
	// digits only: Atoi can only fail on overflow.
	n, err := strconv.Atoi(l.input[l.start:l.pos])
	if err != nil {
		l.emit(Raw, rune(l.input[l.start]))
		return lexEOF
	}
	l.emit(Int, n)
	return nil
}

func lexIdent(l *Lexer) stateFn {
	for r := l.next(); unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'; r = l.next() {
	}
	l.backup()
	l.emit(Ident, l.input[l.start:l.pos])
	return nil
}

// lexEOF places the lexer in End-Of-File state.
// Once in this state, the lexer will only emit EOF.
func lexEOF(l *Lexer) stateFn {
	l.emit(EOF, "end of input")
	return lexEOF
}
