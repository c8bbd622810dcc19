// Command glox runs the tree-walking interpreter either over a script
// file or as an interactive prompt.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"glox/internal/lox"
)

var rootCmd = &cobra.Command{
	Use:   "glox [script]",
	Short: "A tree-walking interpreter for a small dynamically-typed language",
	Args:  cobra.MaximumNArgs(1),
	RunE:  run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(64)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return runFile(args[0])
	}
	return runPrompt()
}

// runFile exits 65 on a syntax/resolution error and 70 on a runtime
// error, per spec.md §6's exit code contract.
func runFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	session := lox.NewSession(func(line string) {
		fmt.Fprintln(os.Stderr, line)
	})
	interp := lox.NewInterpreter(session)
	lox.Run(string(source), interp)

	if session.HadError() {
		os.Exit(65)
	}
	if session.HadRuntimeError() {
		os.Exit(70)
	}
	return nil
}

// runPrompt is a line-at-a-time REPL. A syntax, resolution, or runtime
// error on one line never kills the prompt; the error flag resets
// before the next line is read. The Interpreter is built once, before
// the loop, and reused for every line so that variables, functions,
// and classes declared on one line stay visible on the next. A line
// reading "quit", or end of input, ends the prompt.
func runPrompt() error {
	reader := bufio.NewReader(os.Stdin)
	session := lox.NewSession(func(line string) {
		fmt.Fprintln(os.Stderr, line)
	})
	interp := lox.NewInterpreter(session)

	for {
		fmt.Print("> ")

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "quit" {
			return nil
		}

		lox.Run(line, interp)
		session.ResetError()
	}
}
