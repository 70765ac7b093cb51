package main

import "github.com/pkg/errors"

// controlKind tags what kind of structured construct a controlEntry is
// holding open while the compiler is still inside a colon-definition.
type controlKind int

const (
	ctIf controlKind = iota
	ctDo
	ctCase
	ctOf
	ctEndOf
)

// controlEntry records an open construct awaiting back-patch: addr is
// the index of the instruction whose operand the matching close token
// will set (IF/ELSE/WHILE/OF) or refer back to (DO/LOOP, BEGIN/REPEAT).
type controlEntry struct {
	kind controlKind
	addr int
}

// controlStack is the compile-time-only LIFO tracking open IF/DO/CASE/
// OF/ENDOF constructs of the colon-definition being compiled. A
// well-formed definition pushes and pops in balanced pairs; entries an
// unbalanced construct (IF without THEN) leaves behind are discarded
// when the next ":" starts a new definition (interpretImmediate in
// tokenize.go), so they never leak into another word.
type controlStack struct {
	entries []controlEntry
	cap     int
}

func newControlStack(capacity int) *controlStack {
	return &controlStack{cap: capacity}
}

func (s *controlStack) push(e controlEntry) error {
	if len(s.entries) >= s.cap {
		return errors.New("control stack overflow")
	}
	s.entries = append(s.entries, e)
	return nil
}

func (s *controlStack) top() (controlEntry, bool) {
	if len(s.entries) == 0 {
		return controlEntry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// topIs reports whether the stack is non-empty and its top has kind k.
func (s *controlStack) topIs(k controlKind) bool {
	e, ok := s.top()
	return ok && e.kind == k
}

func (s *controlStack) pop() (controlEntry, bool) {
	e, ok := s.top()
	if ok {
		s.entries = s.entries[:len(s.entries)-1]
	}
	return e, ok
}

func (s *controlStack) len() int { return len(s.entries) }
