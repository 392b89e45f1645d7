package lexer_test

import (
	"testing"

	"github.com/1995hnagamin/spacec/internal/lexer"
	"github.com/1995hnagamin/spacec/internal/token"
)

func TestLexPunctuation(t *testing.T) {
	toks := lexer.LexString("( ) [ ] { } , ;")

	expected := []token.Kind{
		token.LParen, token.RParen, token.LBracket, token.RBracket,
		token.LBrace, token.RBrace, token.Comma, token.Semicolon, token.Eof,
	}
	if len(toks) != len(expected) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(expected), toks)
	}
	for i, k := range expected {
		if toks[i].Kind != k {
			t.Errorf("token %d: Kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLexDigitRun(t *testing.T) {
	toks := lexer.LexString("42 007")
	want := []string{"42", "007"}
	for i, w := range want {
		if toks[i].Kind != token.Digit || toks[i].Lexeme != w {
			t.Errorf("token %d = %v, want Digit(%q)", i, toks[i], w)
		}
	}
}

func TestLexSmallName(t *testing.T) {
	toks := lexer.LexString("my_var foo123")
	want := []string{"my_var", "foo123"}
	for i, w := range want {
		if toks[i].Kind != token.SmallName || toks[i].Lexeme != w {
			t.Errorf("token %d = %v, want SmallName(%q)", i, toks[i], w)
		}
	}
}

func TestLexCapitalName(t *testing.T) {
	toks := lexer.LexString("DefFn True If")
	want := []string{"DefFn", "True", "If"}
	for i, w := range want {
		if toks[i].Kind != token.CapitalName || toks[i].Lexeme != w {
			t.Errorf("token %d = %v, want CapitalName(%q)", i, toks[i], w)
		}
	}
}

func TestLexSymbolRun(t *testing.T) {
	toks := lexer.LexString("-> + = <")
	want := []string{"->", "+", "=", "<"}
	for i, w := range want {
		if toks[i].Kind != token.Symbol || toks[i].Lexeme != w {
			t.Errorf("token %d = %v, want Symbol(%q)", i, toks[i], w)
		}
	}
}

func TestLexDoubleQuoted(t *testing.T) {
	toks := lexer.LexString(`"hello world"`)
	if toks[0].Kind != token.DoubleQuoted {
		t.Fatalf("Kind = %v, want DoubleQuoted", toks[0].Kind)
	}
	if toks[0].Lexeme != `"hello world"` {
		t.Errorf("Lexeme = %q, want %q", toks[0].Lexeme, `"hello world"`)
	}
}

func TestLexDoubleQuotedEscape(t *testing.T) {
	toks := lexer.LexString(`"a\"b"`)
	if toks[0].Kind != token.DoubleQuoted {
		t.Fatalf("Kind = %v, want DoubleQuoted", toks[0].Kind)
	}
	if toks[0].Lexeme != `"a\"b"` {
		t.Errorf("Lexeme = %q, want %q", toks[0].Lexeme, `"a\"b"`)
	}
}

func TestLexWhitespaceSeparates(t *testing.T) {
	toks := lexer.LexString("a\n\tb")
	if len(toks) != 3 { // a, b, Eof
		t.Fatalf("got %d tokens, want 3: %v", len(toks), toks)
	}
	if toks[0].Lexeme != "a" || toks[1].Lexeme != "b" {
		t.Errorf("got lexemes %q, %q", toks[0].Lexeme, toks[1].Lexeme)
	}
}

func TestLexAlwaysAppendsExactlyOneEof(t *testing.T) {
	toks := lexer.LexString("")
	if len(toks) != 1 || toks[0].Kind != token.Eof {
		t.Fatalf("LexString(\"\") = %v, want single Eof", toks)
	}
}

func TestLexSampleDefFn(t *testing.T) {
	toks := lexer.LexString(`DefFn add(x: i32, y: i32) -> i32 { x + y }`)
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{
		token.CapitalName, token.SmallName, token.LParen,
		token.SmallName, token.Symbol, token.SmallName, token.Comma,
		token.SmallName, token.Symbol, token.SmallName, token.RParen,
		token.Symbol, token.SmallName, token.LBrace,
		token.SmallName, token.Symbol, token.SmallName, token.RBrace,
		token.Eof,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(kinds), len(want), toks)
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("token %d: Kind = %v, want %v (%v)", i, kinds[i], k, toks[i])
		}
	}
}

func TestLexPositions(t *testing.T) {
	toks := lexer.LexString("ab\ncd")
	if toks[0].Pos != (token.Position{Line: 1, Col: 1}) {
		t.Errorf("toks[0].Pos = %v, want 1:1", toks[0].Pos)
	}
	if toks[1].Pos.Line != 2 {
		t.Errorf("toks[1].Pos.Line = %d, want 2", toks[1].Pos.Line)
	}
}
