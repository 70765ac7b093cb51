package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mistlab/bigforth/internal/flushio"
	"github.com/mistlab/bigforth/internal/panicerr"
)

// Capacity defaults, per spec; an embedder may construct larger stacks
// by composing its own Option if it ever needs to (none does today).
const (
	valueStackCapacity   = 1000
	dictionaryCapacity   = 100
	variableCapacity     = 100
	controlStackCapacity = 100
	loopStackCapacity    = 100
	wordCodeCapacity     = 256
	wordStringCapacity   = 256
	lineLengthCapacity   = 256
)

// Interp is the whole interpreter: value stack, loop stack, compile-
// time control stack, dictionary, variable table, and the single
// process-wide bits of state (compiling flag, in-progress word, error
// flag) spec.md §5 says are mutated only from one activation.
type Interp struct {
	input io.Reader
	out   flushio.WriteFlusher
	logf  func(mess string, args ...interface{})
	trace bool

	values *valueStack
	loops  *loopStack
	ctrl   *controlStack
	dict   Dictionary
	vars   *variableTable

	compiling  bool
	current    CompiledWord
	currentIdx int

	errFlag bool
}

// New builds an Interp the way gothird's VM is built: zero-value
// struct plus options, defaults filled in by defaultOptions.
func New(opts ...Option) *Interp {
	in := &Interp{
		values: newValueStack(valueStackCapacity),
		loops:  newLoopStack(loopStackCapacity),
		ctrl:   newControlStack(controlStackCapacity),
		vars:   newVariableTable(variableCapacity),
	}
	Options(defaultOptions, Options(opts...)).apply(in)
	return in
}

func (in *Interp) tracef(mess string, args ...interface{}) {
	if in.trace && in.logf != nil {
		in.logf(mess, args...)
	}
}

// reportError prints the spec's "Error: <reason>\n" line and sets the
// runtime error flag; it does not reset any stack, matching spec.md §9's
// decision not to scrub loop-stack entries on recovery.
func (in *Interp) reportError(err error) {
	in.errFlag = true
	in.printf("Error: %s\n", err)
}

// reportDiagnostic prints a compile-time diagnostic. Per spec.md §7
// these do not set the runtime error flag.
func (in *Interp) reportDiagnostic(mess string, args ...interface{}) {
	in.printf(mess+"\n", args...)
}

func (in *Interp) printf(mess string, args ...interface{}) {
	if in.out == nil {
		return
	}
	if len(args) == 0 {
		io.WriteString(in.out, mess)
	} else {
		fmt.Fprintf(in.out, mess, args...)
	}
}

// Flush flushes any buffered output; the REPL driver calls this before
// each blocking read, the way core.go's readRune does.
func (in *Interp) Flush() error {
	if in.out == nil {
		return nil
	}
	return in.out.Flush()
}

// Run feeds the configured input (see WithInput), one line at a time,
// to Interpret until EOF, printing "Stack: ..." after each top-level
// line the way the REPL driver does -- exposed so tests can exercise a
// whole session without constructing their own scanner.
func (in *Interp) Run() error {
	sc := bufio.NewScanner(in.input)
	sc.Buffer(make([]byte, 0, lineLengthCapacity), 1<<20)
	for sc.Scan() {
		suppress := in.interpretLineRecovered(sc.Text())
		if !suppress {
			in.printStack()
		}
		if err := in.Flush(); err != nil {
			return err
		}
	}
	return sc.Err()
}

// interpretLineRecovered wraps a single top-level InterpretLine call in
// panicerr.Recover, so that a programmer error deep in the compiler or
// bytecode interpreter surfaces as a reported error rather than taking
// down the REPL process, per spec.md §5.
func (in *Interp) interpretLineRecovered(line string) (suppress bool) {
	err := panicerr.Recover("interpret", func() error {
		suppress = in.InterpretLine(line)
		return nil
	})
	if err != nil {
		in.reportError(err)
	}
	return suppress
}

// printStack matches forth_gmp.c's own output exactly: "Stack: " is
// printed unconditionally, then each value followed by a trailing
// space, then a newline -- so an empty stack prints "Stack: \n" and
// [1,2,3] prints "Stack: 1 2 3 \n".
func (in *Interp) printStack() {
	var b []byte
	b = append(b, "Stack: "...)
	for _, v := range in.values.values() {
		b = append(b, v.String()...)
		b = append(b, ' ')
	}
	b = append(b, '\n')
	if in.out != nil {
		in.out.Write(b)
	}
}
