package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/mistlab/bigforth/internal/bigint"
)

// lineScanner threads a cursor through one input line the way
// forth_gmp.c's strtok_r/saveptr pair does, splitting on spaces and
// tabs and letting quote-capturing tokens (`."`, `LOAD`) consume past
// the normal token boundary.
type lineScanner struct {
	s   string
	pos int
}

func newLineScanner(s string) *lineScanner { return &lineScanner{s: s} }

func isSpaceTab(b byte) bool { return b == ' ' || b == '\t' }

// nextToken returns the next whitespace-delimited token, or ok=false
// once the line is exhausted.
func (ls *lineScanner) nextToken() (string, bool) {
	for ls.pos < len(ls.s) && isSpaceTab(ls.s[ls.pos]) {
		ls.pos++
	}
	if ls.pos >= len(ls.s) {
		return "", false
	}
	start := ls.pos
	for ls.pos < len(ls.s) && !isSpaceTab(ls.s[ls.pos]) {
		ls.pos++
	}
	return ls.s[start:ls.pos], true
}

// quoted parses a double-quoted argument per spec.md §6: leading
// spaces/tabs are skipped, the next character must be `"`, and the
// text runs up to (not including) the next `"` on the line. what names
// the construct for the diagnostic text ("LOAD expects a quoted
// argument", "Missing closing quote for LOAD").
func (ls *lineScanner) quoted(what string) (string, error) {
	for ls.pos < len(ls.s) && isSpaceTab(ls.s[ls.pos]) {
		ls.pos++
	}
	if ls.pos >= len(ls.s) || ls.s[ls.pos] != '"' {
		return "", errUnquoted(what)
	}
	start := ls.pos + 1
	end := strings.IndexByte(ls.s[start:], '"')
	if end < 0 {
		return "", errUnclosedQuote(what)
	}
	text := ls.s[start : start+end]
	ls.pos = start + end + 1
	return text, nil
}

type quoteDiag string

func (e quoteDiag) Error() string { return string(e) }

func errUnquoted(what string) error {
	return quoteDiag(what + " expects a quoted argument")
}

func errUnclosedQuote(what string) error {
	return quoteDiag("Missing closing quote for " + what)
}

// startsWithLoad reports whether the line's first token is LOAD, the
// trigger for suppressing the REPL's post-line "Stack: ..." print
// (forth_gmp.c checks the raw prefix "LOAD "; matching on the first
// token is equivalent for well-formed input and tolerant of leading
// whitespace).
func startsWithLoad(line string) bool {
	tok, ok := newLineScanner(line).nextToken()
	return ok && tok == "LOAD"
}

// InterpretLine feeds one line of input through the outer interpreter
// (spec.md §4.1), clearing the error flag on entry. It reports whether
// the REPL's post-line stack print should be suppressed, which is the
// case only for a LOAD line.
func (in *Interp) InterpretLine(line string) (suppressStackPrint bool) {
	in.errFlag = false
	ls := newLineScanner(line)
	for {
		tok, ok := ls.nextToken()
		if !ok || in.errFlag {
			break
		}
		if in.compiling {
			if tok == ";" {
				in.current.emit(OpEnd, 0)
				in.dict.Commit(in.currentIdx, in.current)
				in.compiling = false
				in.current = CompiledWord{}
				in.currentIdx = -1
			} else {
				in.compileToken(tok, ls)
			}
			continue
		}
		if abort := in.interpretImmediate(tok, ls); abort {
			break
		}
	}
	return startsWithLoad(line)
}

// interpretImmediate dispatches one token in immediate (non-compiling)
// mode, per spec.md §4.1. It returns true only for the two cases
// forth_gmp.c's interpret() abandons the rest of the line outright: a
// malformed `LOAD` or `."` quoted argument.
func (in *Interp) interpretImmediate(tok string, ls *lineScanner) (abort bool) {
	if v, ok := bigint.Parse(tok); ok {
		in.pushValue(v)
		return false
	}

	switch tok {
	case ":":
		name, ok := ls.nextToken()
		if !ok {
			return false
		}
		idx, err := in.dict.Declare(name, dictionaryCapacity)
		if err != nil {
			in.reportError(err)
			return false
		}
		in.compiling = true
		in.ctrl.entries = in.ctrl.entries[:0]
		in.current = CompiledWord{Name: name}
		in.currentIdx = idx
		return false

	case "LOAD":
		path, err := ls.quoted("LOAD")
		if err != nil {
			in.reportDiagnostic(err.Error())
			return true
		}
		in.loadTopLevelFile(path)
		return false

	case `."`:
		text, err := ls.quoted(`."`)
		if err != nil {
			in.reportDiagnostic(err.Error())
			return true
		}
		in.printf("%s", text)
		return false

	case "FORGET":
		name, ok := ls.nextToken()
		if !ok {
			in.reportDiagnostic("FORGET requires a word name")
			return false
		}
		idx := in.dict.Find(name)
		if idx < 0 {
			in.reportDiagnostic("FORGET: Unknown word: %s", name)
			return false
		}
		if err := in.dict.Forget(idx); err != nil {
			in.reportError(err)
		}
		return false

	case "VARIABLE":
		name, ok := ls.nextToken()
		if !ok {
			in.reportDiagnostic("VARIABLE requires a name")
			return false
		}
		in.execVariableDecl(&CompiledWord{Strings: []string{name}}, 0)
		return false
	}

	if op, ok := primitiveOpcodes[tok]; ok {
		in.executeOpcode(op)
		return false
	}
	if idx := in.dict.Find(tok); idx >= 0 {
		in.executeWord(idx)
		return false
	}
	in.reportDiagnostic("Unknown word: %s", tok)
	return false
}

// loadTopLevelFile implements top-level LOAD "path" (spec.md §6): a
// missing file prints a bare diagnostic and does not set the runtime
// error flag, unlike the CALL-as-LOAD path in exec.go.
func (in *Interp) loadTopLevelFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		in.reportDiagnostic("Cannot open file: %s", path)
		return
	}
	defer f.Close()
	in.interpretFile(f)
}

// interpretFile interprets each line of r as if typed at the prompt,
// shared by top-level LOAD and the CALL-as-LOAD runtime path. Every
// line is attempted through to EOF: a line that sets the error flag
// aborts only that line, since InterpretLine clears the flag again on
// entry for the next one, matching forth_gmp.c's file-inclusion loops
// (neither interpret()'s top-level LOAD handler nor OP_CALL's
// filename branch checks error_flag between fgets iterations).
func (in *Interp) interpretFile(r io.Reader) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, lineLengthCapacity), 1<<20)
	for sc.Scan() {
		in.InterpretLine(sc.Text())
	}
}
