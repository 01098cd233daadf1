package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"snexpr/ast"
	"snexpr/engine"
)

// replCmd implements the REPL command.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive snexpr REPL session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive REPL session. Type "exit" to quit.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {}

// printResult writes a Result the way the REPL and the run command both
// want it printed: numbers via Go's shortest round-trip formatting, strings
// bare (no surrounding quotes).
func printResult(out io.Writer, result ast.Result) {
	if result.IsString() {
		fmt.Fprintln(out, result.Str)
		return
	}
	fmt.Fprintln(out, result.Num)
}

func repl(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	vars := engine.NewVarTable()

	for {
		fmt.Fprintf(out, ">>> ")
		scanned := scanner.Scan()
		if !scanned {
			return
		}
		line := scanner.Text()
		if line == "exit" {
			os.Exit(0)
		}
		if line == "" {
			continue
		}

		n, err := engine.Create(line, vars, nil)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		result, err := engine.Eval(n)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		printResult(out, result)
		// Only run call cleanup; vars must survive into the next line.
		engine.Destroy(n, nil)
	}
}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("\n\nWelcome to snexpr!")
	repl(os.Stdin, os.Stdout)
	return subcommands.ExitSuccess
}
