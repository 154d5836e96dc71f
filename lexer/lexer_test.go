package lexer

import (
	"testing"

	"github.com/pl0-lang/pl0/token"
)

func scanAll(src string) []token.Token {
	l := New(src)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestLexerPunctuationAndKeywords(t *testing.T) {
	toks := scanAll("const x = 1; var y; begin y := x + 2 end.")
	want := []token.Kind{
		token.CONST, token.IDENT, token.EQ, token.NUMBER, token.SEMI,
		token.VAR, token.IDENT, token.SEMI,
		token.BEGIN, token.IDENT, token.ASSIGN, token.IDENT, token.PLUS, token.NUMBER, token.END,
		token.PERIOD, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestLexerTwoCharOperators(t *testing.T) {
	toks := scanAll("<= >= := < > # = ! ?")
	want := []token.Kind{
		token.LE, token.GE, token.ASSIGN, token.LT, token.GT,
		token.HASH, token.EQ, token.BANG, token.QMARK, token.EOF,
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestLexerNumberValue(t *testing.T) {
	l := New("12345")
	tok := l.Next()
	if tok.Kind != token.NUMBER || tok.Value != 12345 {
		t.Fatalf("got %v, want NUMBER 12345", tok)
	}
}

func TestLexerNumberOverflow(t *testing.T) {
	l := New("99999999999")
	tok := l.Next()
	if tok.Kind != token.NUMBER {
		t.Fatalf("got %v, want NUMBER", tok)
	}
	if len(l.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(l.Errors), l.Errors)
	}
}

func TestLexerUnexpectedCharacterRecovers(t *testing.T) {
	toks := scanAll("x @ y")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3 (x, y, EOF): %v", len(toks), toks)
	}
	if toks[0].Text != "x" || toks[1].Text != "y" {
		t.Fatalf("got %v, want idents x and y around the bad character", toks)
	}
}

func TestLexerTracksLineAndColumn(t *testing.T) {
	l := New("x\ny")
	first := l.Next()
	if first.Pos.Line != 1 || first.Pos.Column != 1 {
		t.Errorf("first token pos = %s, want 1:1", first.Pos)
	}
	second := l.Next()
	if second.Pos.Line != 2 || second.Pos.Column != 1 {
		t.Errorf("second token pos = %s, want 2:1", second.Pos)
	}
}
