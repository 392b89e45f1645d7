package token_test

import (
	"testing"

	"github.com/1995hnagamin/spacec/internal/token"
)

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok      token.Token
		expected string
	}{
		{token.Token{Kind: token.Eof}, "Eof"},
		{token.Token{Kind: token.SmallName, Lexeme: "foo"}, `SmallName("foo")`},
		{token.Token{Kind: token.CapitalName, Lexeme: "DefFn"}, `CapitalName("DefFn")`},
		{token.Token{Kind: token.Digit, Lexeme: "42"}, `Digit("42")`},
		{token.Token{Kind: token.Symbol, Lexeme: "->"}, `Symbol("->")`},
		{token.Token{Kind: token.LParen, Lexeme: "("}, `LParen("(")`},
		{token.Token{Kind: token.DoubleQuoted, Lexeme: `"ab"`}, `DoubleQuoted("\"ab\"")`},
	}

	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.expected {
			t.Errorf("Token{%v}.String() = %q, want %q", tt.tok.Kind, got, tt.expected)
		}
	}
}

func TestTokenIs(t *testing.T) {
	tok := token.Token{Kind: token.Symbol, Lexeme: "+"}

	if !tok.Is(token.Symbol, "") {
		t.Error("expected Is(Symbol, \"\") to match any symbol")
	}
	if !tok.Is(token.Symbol, "+") {
		t.Error("expected Is(Symbol, \"+\") to match")
	}
	if tok.Is(token.Symbol, "-") {
		t.Error("did not expect Is(Symbol, \"-\") to match")
	}
	if tok.Is(token.Digit, "") {
		t.Error("did not expect Is(Digit, \"\") to match a Symbol token")
	}
}

func TestPositionString(t *testing.T) {
	pos := token.Position{Line: 3, Col: 7}
	if got, want := pos.String(), "3:7"; got != want {
		t.Errorf("Position.String() = %q, want %q", got, want)
	}
}

func TestKindString(t *testing.T) {
	kinds := []token.Kind{
		token.Eof, token.SmallName, token.CapitalName, token.Digit,
		token.LParen, token.RParen, token.LBracket, token.RBracket,
		token.LBrace, token.RBrace, token.Comma, token.Semicolon,
		token.Symbol, token.DoubleQuoted,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		if s == "Unknown" {
			t.Errorf("Kind %d stringified as Unknown", int(k))
		}
		if seen[s] {
			t.Errorf("duplicate Kind string %q", s)
		}
		seen[s] = true
	}
}
