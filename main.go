package main

import (
	"errors"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/mistlab/bigforth/internal/logio"
	"golang.org/x/term"
)

// prompt is the only thing printed before reading a line; bigforth
// takes no flags and reads no environment variables.
const prompt = "> "

func main() {
	log := logio.Logger{}
	log.SetOutput(os.Stderr)

	vm := New(
		WithInput(os.Stdin),
		WithOutput(os.Stdout),
		WithLogf(log.Leveledf("TRACE")),
	)

	var err error
	if term.IsTerminal(int(os.Stdin.Fd())) {
		err = runInteractive(vm)
	} else {
		err = vm.Run()
	}
	if err != nil && !errors.Is(err, io.EOF) {
		log.ErrorIf(err)
		os.Exit(1)
	}
}

// runInteractive drives the same Interp.InterpretLine loop as Run, but
// reads lines through chzyer/readline for history and in-line editing
// instead of a plain bufio.Scanner, matching spec.md §4.4's REPL: prompt
// "> ", print "Stack: ..." after every line that isn't a LOAD, clean
// exit on EOF.
func runInteractive(vm *Interp) error {
	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		suppress := vm.interpretLineRecovered(line)
		if !suppress {
			vm.printStack()
		}
		if ferr := vm.Flush(); ferr != nil {
			return ferr
		}
	}
}
