// Package diag defines the compiler's fatal error taxonomy. Every stage
// stops at its first error; there is no error recovery or accumulation.
package diag

import (
	"fmt"

	"github.com/1995hnagamin/spacec/internal/token"
)

// LexError is raised by the lexer, e.g. when the input file cannot be read.
type LexError struct {
	Pos     token.Position
	Message string
}

func NewLexError(pos token.Position, format string, args ...interface{}) *LexError {
	return &LexError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func (e *LexError) Error() string {
	return fmt.Sprintf("[LexError] %s", e.Message)
}

// ParseError is raised by the parser when the token stream does not match
// the grammar, including a mixed-precedence-class binary expression.
type ParseError struct {
	Pos     token.Position
	Message string
}

func NewParseError(pos token.Position, format string, args ...interface{}) *ParseError {
	return &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[ParseError] %s at %s", e.Message, e.Pos)
}

// TypeError is raised by the type checker, including UnboundName lookups.
type TypeError struct {
	Pos     token.Position
	Message string
}

func NewTypeError(pos token.Position, format string, args ...interface{}) *TypeError {
	return &TypeError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("[TypeError] %s at %s", e.Message, e.Pos)
}

// UnboundName builds the TypeError raised by a failed variable lookup.
func UnboundName(pos token.Position, name string) *TypeError {
	return NewTypeError(pos, "unbound name %q", name)
}

// IREmitError is raised by the IR emitter, e.g. function verification
// failure.
type IREmitError struct {
	Pos     token.Position
	Message string
}

func NewIREmitError(pos token.Position, format string, args ...interface{}) *IREmitError {
	return &IREmitError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func (e *IREmitError) Error() string {
	return fmt.Sprintf("[IREmitError] %s at %s", e.Message, e.Pos)
}
