package main

import "github.com/mistlab/bigforth/internal/bigint"

// compileToken implements the structured-control compiler table
// (spec.md §4.2) against the colon-definition currently being built in
// in.current. ls supplies the remaining unconsumed input for the
// tokens that capture further text (`."`, `LOAD`, `FORGET`, `VARIABLE`).
//
// A malformed construct (ENDOF without OF, ENDCASE without CASE,
// missing quote, unknown word) prints a diagnostic and is skipped;
// per spec.md §7 this does not set the runtime error flag and does not
// abort the rest of the line, matching forth_gmp.c's compileToken,
// which simply returns having emitted nothing.
func (in *Interp) compileToken(tok string, ls *lineScanner) {
	w := &in.current

	if op, ok := primitiveOpcodes[tok]; ok {
		w.emit(op, 0)
		return
	}

	switch tok {
	case "IF":
		w.emit(OpBranchFalse, 0)
		in.ctrl.push(controlEntry{ctIf, w.here() - 1})
	case "ELSE":
		w.emit(OpBranch, 0)
		if e, ok := in.ctrl.pop(); ok && e.kind == ctIf {
			w.patch(e.addr, w.here())
			in.ctrl.push(controlEntry{ctIf, w.here() - 1})
		}
	case "THEN":
		if e, ok := in.ctrl.pop(); ok && e.kind == ctIf {
			w.patch(e.addr, w.here())
		}
	case "DO":
		w.emit(OpDo, 0)
		in.ctrl.push(controlEntry{ctDo, w.here() - 1})
	case "LOOP":
		if e, ok := in.ctrl.top(); ok && e.kind == ctDo {
			w.emit(OpLoop, 0)
			in.ctrl.pop()
		}
	case "BEGIN":
		w.emit(OpBegin, 0)
		in.ctrl.push(controlEntry{ctDo, w.here() - 1})
	case "WHILE":
		w.emit(OpWhile, 0)
		in.ctrl.push(controlEntry{ctIf, w.here() - 1})
	case "REPEAT":
		if len(in.ctrl.entries) >= 2 {
			whileEnt := in.ctrl.entries[len(in.ctrl.entries)-1]
			beginEnt := in.ctrl.entries[len(in.ctrl.entries)-2]
			w.emit(OpRepeat, beginEnt.addr)
			w.patch(whileEnt.addr, w.here())
			in.ctrl.entries = in.ctrl.entries[:len(in.ctrl.entries)-2]
		}
	case "CASE":
		w.emit(OpCase, 0)
		in.ctrl.push(controlEntry{ctCase, w.here() - 1})
	case "OF":
		w.emit(OpOf, 0)
		in.ctrl.push(controlEntry{ctOf, w.here() - 1})
	case "ENDOF":
		if e, ok := in.ctrl.pop(); ok && e.kind == ctOf {
			w.emit(OpEndOf, 0)
			w.patch(e.addr, w.here())
			in.ctrl.push(controlEntry{ctEndOf, w.here() - 1})
		} else {
			in.reportDiagnostic("ENDOF without OF!")
		}
	case "ENDCASE":
		if in.ctrl.topIs(ctEndOf) {
			w.emit(OpEndCase, 0)
			for in.ctrl.topIs(ctEndOf) {
				e, _ := in.ctrl.pop()
				w.patch(e.addr, w.here())
			}
			if in.ctrl.topIs(ctCase) {
				in.ctrl.pop()
			}
		} else {
			in.reportDiagnostic("ENDCASE without CASE!")
		}
	case "LOAD":
		text, err := ls.quoted("LOAD")
		if err != nil {
			in.reportDiagnostic(err.Error())
			return
		}
		s := w.addString(text)
		w.emit(OpCall, s)
	case `."`:
		text, err := ls.quoted(`."`)
		if err != nil {
			in.reportDiagnostic(err.Error())
			return
		}
		s := w.addString(text)
		w.emit(OpDotQuote, s)
	case "FORGET":
		name, ok := ls.nextToken()
		if !ok {
			in.reportDiagnostic("FORGET requires a word name")
			return
		}
		idx := in.dict.Find(name)
		if idx < 0 {
			in.reportDiagnostic("FORGET: Unknown word: %s", name)
			return
		}
		w.emit(OpForget, idx)
	case "VARIABLE":
		name, ok := ls.nextToken()
		if !ok {
			in.reportDiagnostic("VARIABLE requires a name")
			return
		}
		s := w.addString(name)
		w.emit(OpVariable, s)
	default:
		if idx := in.dict.Find(tok); idx >= 0 {
			w.emit(OpCall, idx)
			return
		}
		if _, ok := bigint.Parse(tok); ok {
			s := w.addString(tok)
			w.emit(OpPush, s)
			return
		}
		in.reportDiagnostic("Unknown word: %s", tok)
	}
}
