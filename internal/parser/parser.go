// Package parser implements the recursive-descent parser, with a
// shunting-yard pass for binary expressions, that turns a token stream into
// an AST. Every syntax error is fatal: the first one aborts parsing.
package parser

import (
	"github.com/1995hnagamin/spacec/internal/ast"
	"github.com/1995hnagamin/spacec/internal/token"
)

// Parser drives one translation unit's worth of parsing from a TokenStream,
// allocating every node it produces from a shared Arena.
type Parser struct {
	stream TokenStream
	arena  *ast.Arena
}

// New builds a Parser over tokens, which must end with exactly one Eof
// token as produced by the lexer.
func New(tokens []token.Token, arena *ast.Arena) *Parser {
	return &Parser{stream: NewTokenStream(tokens), arena: arena}
}

// ParseFile parses a full TranslationUnit and reports the first syntax
// error encountered, if any.
func ParseFile(tokens []token.Token, arena *ast.Arena) (*ast.TranslationUnit, error) {
	return New(tokens, arena).ParseTranslationUnit()
}
