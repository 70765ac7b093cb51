package main

import "github.com/mistlab/bigforth/internal/bigint"

// loopFrame is one activation record of a DO...LOOP. BEGIN...WHILE...
// REPEAT does not use this machinery at all -- it has no runtime
// loop-stack entry, see exec.go. Limit and index are arbitrary
// precision: a loop counter is just another stack value that happens to
// live on the loop stack instead.
type loopFrame struct {
	index, limit bigint.Int
	returnAddr   int
}

// loopStack is the runtime LIFO DO pushes onto and LOOP pops from. I
// reads the top frame's index without touching the stack.
type loopStack struct {
	frames []loopFrame
	cap    int
}

func newLoopStack(capacity int) *loopStack {
	return &loopStack{cap: capacity}
}

func (s *loopStack) push(f loopFrame) error {
	if len(s.frames) >= s.cap {
		return errLoopStackOverflow
	}
	s.frames = append(s.frames, f)
	return nil
}

func (s *loopStack) top() (*loopFrame, bool) {
	if len(s.frames) == 0 {
		return nil, false
	}
	return &s.frames[len(s.frames)-1], true
}

func (s *loopStack) pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

func (s *loopStack) depth() int { return len(s.frames) }
