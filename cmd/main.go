// Command spacec compiles a single KC source file to an object file.
//
// Usage:
//
//	spacec <input-file> [-o <output-file>]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1995hnagamin/spacec/internal/ast"
	"github.com/1995hnagamin/spacec/internal/backend/llvmtext"
	"github.com/1995hnagamin/spacec/internal/ir"
	"github.com/1995hnagamin/spacec/internal/lexer"
	"github.com/1995hnagamin/spacec/internal/parser"
	"github.com/1995hnagamin/spacec/internal/sema"
	"github.com/1995hnagamin/spacec/internal/token"
)

const defaultOutput = "kc.o"

const usage = `Usage: spacec <input-file> [-o <output-file>]
       spacec -repl
       spacec -tokens <input-file>`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run drives the whole pipeline: lex, parse, type-check, lower to IR, emit
// an object file. It never calls os.Exit itself so it can be exercised
// directly from tests.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("spacec", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	output := fs.String("o", defaultOutput, "output file path")
	repl := fs.Bool("repl", false, "start an interactive session")
	tokensOnly := fs.Bool("tokens", false, "print the token stream and exit")
	printIR := fs.Bool("print-ir", false, "print the generated IR to stdout on success")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}

	if *repl {
		return runREPL(stdout, stderr)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(stdout, usage)
		return 0
	}
	inputFile := fs.Arg(0)
	// Flags may also follow the input file, as in the usage line.
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}

	if *tokensOnly {
		if err := showTokens(stderr, inputFile); err != nil {
			fmt.Fprintln(stderr, err.Error())
			return 1
		}
		return 0
	}

	if err := compile(stdout, inputFile, *output, *printIR); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	return 0
}

// showTokens lexes a file and writes one "kind: lexeme" line per token to
// w, reviving the original driver's token dump without running the parser.
func showTokens(w io.Writer, inputFile string) error {
	toks, err := lexer.Lex(inputFile)
	if err != nil {
		return err
	}
	for _, tok := range toks {
		fmt.Fprintf(w, "%s: %s\n", tokenKindName(tok.Kind), tok.Lexeme)
	}
	return nil
}

func tokenKindName(k token.Kind) string {
	switch k {
	case token.SmallName:
		return "sma"
	case token.CapitalName:
		return "cap"
	case token.Digit:
		return "dig"
	case token.Symbol:
		return "sym"
	case token.LParen:
		return "lpar"
	case token.RParen:
		return "rpar"
	case token.LBracket:
		return "lbrk"
	case token.RBracket:
		return "rbrk"
	case token.LBrace:
		return "lbra"
	case token.RBrace:
		return "rbra"
	case token.Comma:
		return "comm"
	case token.Semicolon:
		return "semi"
	case token.DoubleQuoted:
		return "str"
	case token.Eof:
		return "eof"
	default:
		return "?"
	}
}

func compile(stdout io.Writer, inputFile, outputFile string, printIR bool) error {
	toks, err := lexer.Lex(inputFile)
	if err != nil {
		return err
	}

	arena := ast.NewArena()
	tu, err := parser.ParseFile(toks, arena)
	if err != nil {
		return err
	}

	table, err := sema.Check(tu)
	if err != nil {
		return err
	}

	gen := llvmtext.NewGenerator()
	mod, err := ir.Emit(tu, table, gen, inputFile)
	if err != nil {
		return err
	}

	if err := gen.EmitObject(mod, outputFile); err != nil {
		return err
	}

	if printIR {
		fmt.Fprint(stdout, gen.Text())
	}
	return nil
}
