package main

import "github.com/pkg/errors"

// Sentinel runtime errors, one per kind listed in spec.md §7. Every one
// of these, when surfaced from executeCompiledWord or the outer
// interpreter, sets Interp.errFlag and is printed as "Error: <reason>"
// rather than propagated as a Go error to the embedder — see
// Interp.reportError in interp.go.
var (
	errStackOverflow     = errors.New("Stack overflow")
	errStackUnderflow    = errors.New("Stack underflow")
	errLoopStackOverflow = errors.New("Loop stack overflow")
	errNotInLoop         = errors.New("I used outside a loop")
	errDivByZero         = errors.New("Division by zero")
	errInvalidAddress    = errors.New("Invalid variable address")
	errInvalidCall       = errors.New("Invalid word reference")
	errForgetRange       = errors.New("FORGET: Word index out of range")
	errInvalidPick       = errors.New("Invalid PICK index")
	errNumberParse       = errors.New("Invalid number")
	errFileOpen          = errors.New("Cannot open file")
	errVariablesFull     = errors.New("Variable table full")
	errDictionaryFull    = errors.New("Dictionary full")
)
