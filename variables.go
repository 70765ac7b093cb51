package main

import "github.com/mistlab/bigforth/internal/bigint"

// variableTable holds the storage cells VARIABLE allocates. Each slot
// holds one big integer; VARIABLE additionally declares a dictionary
// word whose body is just PUSH of the slot index, so that subsequent
// uses of the name leave the address (not the value) on the stack,
// exactly as FETCH/STORE expect.
type variableTable struct {
	names []string
	cells []bigint.Int
	cap   int
}

func newVariableTable(capacity int) *variableTable {
	return &variableTable{cap: capacity}
}

// Define allocates a new cell initialized to zero and returns its
// index. VARIABLE never reuses a slot by name: redefining a variable
// name wastes a cell rather than aliasing the old one, while the
// dictionary accessor word of that name is replaced in place
// (Dictionary.Declare) to push the new cell's index.
func (t *variableTable) Define(name string) (idx int, err error) {
	if len(t.cells) >= t.cap {
		return -1, errVariablesFull
	}
	t.names = append(t.names, name)
	t.cells = append(t.cells, bigint.Zero)
	return len(t.cells) - 1, nil
}

func (t *variableTable) Fetch(idx int) (bigint.Int, error) {
	if idx < 0 || idx >= len(t.cells) {
		return bigint.Zero, errInvalidAddress
	}
	return t.cells[idx], nil
}

func (t *variableTable) Store(idx int, v bigint.Int) error {
	if idx < 0 || idx >= len(t.cells) {
		return errInvalidAddress
	}
	t.cells[idx] = v
	return nil
}

func (t *variableTable) Len() int { return len(t.cells) }
