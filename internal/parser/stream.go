package parser

import (
	"github.com/1995hnagamin/spacec/internal/diag"
	"github.com/1995hnagamin/spacec/internal/token"
)

// TokenStream is a random-access cursor over a fixed token vector. The
// grammar never backtracks, so advance is the only way the cursor moves.
type TokenStream interface {
	// Peek returns the current token without advancing.
	Peek() token.Token
	// Advance moves the cursor forward by one.
	Advance()
	// Expect advances past the current token if it has the given kind,
	// returning it; otherwise it fails with a ParseError. An empty lexeme
	// matches any lexeme of that kind.
	Expect(kind token.Kind, lexeme string) (token.Token, error)
	// Pos returns the position of the current token.
	Pos() token.Position
}

type tokenStream struct {
	tokens []token.Token
	pos    int
}

// NewTokenStream wraps a fixed token vector. tokens must end with exactly
// one Eof token, as produced by the lexer.
func NewTokenStream(tokens []token.Token) TokenStream {
	return &tokenStream{tokens: tokens}
}

func (ts *tokenStream) Peek() token.Token {
	if ts.pos >= len(ts.tokens) {
		return ts.tokens[len(ts.tokens)-1]
	}
	return ts.tokens[ts.pos]
}

func (ts *tokenStream) Advance() {
	if ts.pos < len(ts.tokens)-1 {
		ts.pos++
	}
}

func (ts *tokenStream) Expect(kind token.Kind, lexeme string) (token.Token, error) {
	tok := ts.Peek()
	if !tok.Is(kind, lexeme) {
		return token.Token{}, diag.NewParseError(tok.Pos, "expected %s, got %s", describeExpectation(kind, lexeme), tok)
	}
	ts.Advance()
	return tok, nil
}

func (ts *tokenStream) Pos() token.Position {
	return ts.Peek().Pos
}

func describeExpectation(kind token.Kind, lexeme string) string {
	if lexeme == "" {
		return kind.String()
	}
	return kind.String() + "(" + lexeme + ")"
}
