package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/1995hnagamin/spacec/internal/ast"
	"github.com/1995hnagamin/spacec/internal/backend/llvmtext"
	"github.com/1995hnagamin/spacec/internal/ir"
	"github.com/1995hnagamin/spacec/internal/lexer"
	"github.com/1995hnagamin/spacec/internal/parser"
	"github.com/1995hnagamin/spacec/internal/sema"
)

// runREPL drives an interactive session: each accumulated block of input is
// lexed, parsed, type-checked and lowered as its own translation unit, and
// the rendered IR for that unit is printed. braceDepth tracks nesting so a
// DefFn spanning multiple lines is only submitted once its braces balance.
func runREPL(stdout, stderr io.Writer) int {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".spacec_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "spacec> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          stdout,
		Stderr:          stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "readline init failed: %v\n", err)
		return 1
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), "spacec REPL (type 'exit' or Ctrl+D to quit)")

	var accumulated strings.Builder
	braceDepth := 0

	for {
		if braceDepth > 0 {
			rl.SetPrompt("...     ")
		} else {
			rl.SetPrompt("spacec> ")
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				accumulated.Reset()
				braceDepth = 0
				continue
			}
			break
		}

		if braceDepth == 0 && strings.TrimSpace(line) == "exit" {
			break
		}

		braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
		accumulated.WriteString(line)
		accumulated.WriteString("\n")
		if braceDepth > 0 {
			continue
		}
		braceDepth = 0

		src := accumulated.String()
		accumulated.Reset()
		if strings.TrimSpace(src) == "" {
			continue
		}

		if err := evalOne(rl.Stdout(), src); err != nil {
			fmt.Fprintf(rl.Stderr(), "%s\n", err)
		}
	}
	return 0
}

func evalOne(out io.Writer, src string) error {
	toks := lexer.LexString(src)
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
	mod, err := ir.Emit(tu, table, gen, "<repl>")
	if err != nil {
		return err
	}
	fmt.Fprint(out, gen.Text())
	_ = mod
	return nil
}
