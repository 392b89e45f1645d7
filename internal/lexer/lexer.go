// Package lexer turns a source file's bytes into a token stream: classify
// the first byte of each lexeme, consume the rest of the run, repeat.
package lexer

import (
	"os"

	"github.com/1995hnagamin/spacec/internal/diag"
	"github.com/1995hnagamin/spacec/internal/token"
)

// Lex reads path and returns its tokens, terminated by exactly one Eof
// token. It fails with a LexError if the file cannot be opened.
func Lex(path string) ([]token.Token, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.NewLexError(token.Position{Line: 1, Col: 1}, "cannot open %q: %v", path, err)
	}
	return lex(buf), nil
}

// LexString is Lex without a filesystem round-trip, used by tests and by
// the REPL.
func LexString(input string) []token.Token {
	return lex([]byte(input))
}

func lex(buf []byte) []token.Token {
	s := newSource(buf)
	var toks []token.Token

	for !s.IsEOF() {
		tok, ok := next(s)
		if ok {
			toks = append(toks, tok)
		}
	}
	line, col := s.Pos()
	toks = append(toks, token.Token{Kind: token.Eof, Pos: token.Position{Line: line, Col: col}})
	return toks
}

// next classifies the current byte and consumes one token. It returns
// ok=false for a byte that is skipped as whitespace (rule 7, or actual
// whitespace), in which case no token was produced.
func next(s *source) (token.Token, bool) {
	ch := s.Ch()
	line, col := s.Pos()
	pos := token.Position{Line: line, Col: col}

	switch ch {
	case '(':
		s.Next()
		return token.Token{Kind: token.LParen, Lexeme: "(", Pos: pos}, true
	case ')':
		s.Next()
		return token.Token{Kind: token.RParen, Lexeme: ")", Pos: pos}, true
	case '[':
		s.Next()
		return token.Token{Kind: token.LBracket, Lexeme: "[", Pos: pos}, true
	case ']':
		s.Next()
		return token.Token{Kind: token.RBracket, Lexeme: "]", Pos: pos}, true
	case '{':
		s.Next()
		return token.Token{Kind: token.LBrace, Lexeme: "{", Pos: pos}, true
	case '}':
		s.Next()
		return token.Token{Kind: token.RBrace, Lexeme: "}", Pos: pos}, true
	case ',':
		s.Next()
		return token.Token{Kind: token.Comma, Lexeme: ",", Pos: pos}, true
	case ';':
		s.Next()
		return token.Token{Kind: token.Semicolon, Lexeme: ";", Pos: pos}, true
	}

	switch {
	case isDigit(ch):
		return token.Token{Kind: token.Digit, Lexeme: readRun(s, isDigit), Pos: pos}, true
	case isLower(ch):
		return token.Token{Kind: token.SmallName, Lexeme: readRun(s, isNameCont), Pos: pos}, true
	case isUpper(ch):
		return token.Token{Kind: token.CapitalName, Lexeme: readRun(s, isCapitalNameCont), Pos: pos}, true
	case isSymbolChar(ch):
		return token.Token{Kind: token.Symbol, Lexeme: readRun(s, isSymbolChar), Pos: pos}, true
	case ch == '"':
		return token.Token{Kind: token.DoubleQuoted, Lexeme: readQuoted(s), Pos: pos}, true
	default:
		s.Next()
		return token.Token{}, false
	}
}

// readRun consumes bytes including the current one while cont holds,
// leaving s positioned at the first byte outside the run (or eof).
func readRun(s *source, cont func(byte) bool) string {
	var out []byte
	for !s.IsEOF() && cont(s.Ch()) {
		out = append(out, s.Ch())
		s.Next()
	}
	return string(out)
}

// readQuoted consumes a double-quoted literal starting at the opening
// quote, through the matching unescaped closing quote. The lexeme includes
// both quotes.
func readQuoted(s *source) string {
	out := []byte{'"'}
	s.Next() // consume opening quote
	for !s.IsEOF() {
		ch := s.Ch()
		if ch == '\\' {
			out = append(out, ch)
			s.Next()
			if !s.IsEOF() {
				out = append(out, s.Ch())
				s.Next()
			}
			continue
		}
		if ch == '"' {
			out = append(out, '"')
			s.Next()
			break
		}
		out = append(out, ch)
		s.Next()
	}
	return string(out)
}
