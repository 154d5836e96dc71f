// Package lexer scans pl0 source text into a stream of token.Token
// values.
package lexer

import (
	"fmt"
	"strconv"

	"github.com/pl0-lang/pl0/token"
)

// Error is a lexer-stage diagnostic.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lexer error: %s (%s)", e.Msg, e.Pos)
}

func (e *Error) Stage() string { return "lexer" }

const (
	eofRune = -1
)

// Lexer scans a fixed in-memory source buffer one rune at a time.
type Lexer struct {
	src  []rune
	pos  int // index of the next unread rune
	ch   rune
	eof  bool
	line int
	col  int

	Errors []error
}

// New returns a Lexer over src.
func New(src string) *Lexer {
	l := &Lexer{
		src:  []rune(src),
		line: 1,
		col:  0,
	}
	return l
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return eofRune
	}
	return l.src[l.pos]
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.src) {
		l.eof = true
		l.ch = eofRune
		return eofRune
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	l.ch = r
	return r
}

func (l *Lexer) match(r rune) bool {
	if l.peek() == r {
		l.next()
		return true
	}
	return false
}

func (l *Lexer) matchIf(f func(rune) bool) bool {
	if f(l.peek()) {
		l.next()
		return true
	}
	return false
}

func (l *Lexer) errorf(pos token.Position, format string, args ...interface{}) {
	l.Errors = append(l.Errors, &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// Next returns the next token in the stream. Once the source is
// exhausted it returns an endless stream of EOF tokens.
func (l *Lexer) Next() token.Token {
	for l.matchIf(isSpace) {
	}

	start := token.Position{Line: l.line, Column: l.col + 1}

	if l.peek() == eofRune {
		l.next()
		return token.Token{Kind: token.EOF, Pos: start}
	}

	switch {
	case l.matchIf(isLetter):
		return l.scanIdent(start)
	case l.matchIf(isDigit):
		return l.scanNumber(start)
	case l.match(':'):
		if l.match('=') {
			return token.Token{Kind: token.ASSIGN, Text: ":=", Pos: start}
		}
		l.errorf(start, "expected '=' after ':'")
		return l.Next()
	case l.match('+'):
		return token.Token{Kind: token.PLUS, Text: "+", Pos: start}
	case l.match('-'):
		return token.Token{Kind: token.MINUS, Text: "-", Pos: start}
	case l.match('*'):
		return token.Token{Kind: token.STAR, Text: "*", Pos: start}
	case l.match('/'):
		return token.Token{Kind: token.SLASH, Text: "/", Pos: start}
	case l.match('='):
		return token.Token{Kind: token.EQ, Text: "=", Pos: start}
	case l.match('#'):
		return token.Token{Kind: token.HASH, Text: "#", Pos: start}
	case l.match('<'):
		if l.match('=') {
			return token.Token{Kind: token.LE, Text: "<=", Pos: start}
		}
		return token.Token{Kind: token.LT, Text: "<", Pos: start}
	case l.match('>'):
		if l.match('=') {
			return token.Token{Kind: token.GE, Text: ">=", Pos: start}
		}
		return token.Token{Kind: token.GT, Text: ">", Pos: start}
	case l.match(','):
		return token.Token{Kind: token.COMMA, Text: ",", Pos: start}
	case l.match(';'):
		return token.Token{Kind: token.SEMI, Text: ";", Pos: start}
	case l.match('.'):
		return token.Token{Kind: token.PERIOD, Text: ".", Pos: start}
	case l.match('('):
		return token.Token{Kind: token.LPAREN, Text: "(", Pos: start}
	case l.match(')'):
		return token.Token{Kind: token.RPAREN, Text: ")", Pos: start}
	case l.match('!'):
		return token.Token{Kind: token.BANG, Text: "!", Pos: start}
	case l.match('?'):
		return token.Token{Kind: token.QMARK, Text: "?", Pos: start}
	default:
		r := l.next()
		l.errorf(start, "unexpected character %q", r)
		return l.Next()
	}
}

func (l *Lexer) scanIdent(start token.Position) token.Token {
	text := string(l.ch)
	for l.matchIf(isLetter) || l.matchIf(isDigit) || l.match('_') {
		text += string(l.ch)
	}
	if kind, ok := token.Keywords[text]; ok {
		return token.Token{Kind: kind, Text: text, Pos: start}
	}
	return token.Token{Kind: token.IDENT, Text: text, Pos: start}
}

func (l *Lexer) scanNumber(start token.Position) token.Token {
	text := string(l.ch)
	for l.matchIf(isDigit) {
		text += string(l.ch)
	}
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		l.errorf(start, "number %s out of range for a 32-bit signed integer", text)
		v = 0
	}
	return token.Token{Kind: token.NUMBER, Text: text, Pos: start, Value: int32(v)}
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
