package main

// CompiledWord is a named, already-compiled procedure: a flat
// instruction stream plus the pool of text literals its instructions
// reference (numeric-literal text, ."-quoted strings, LOAD filenames,
// VARIABLE names).
type CompiledWord struct {
	Name    string
	Code    []Instruction
	Strings []string
}

// addString appends s to the word's string pool and returns its index,
// the operand PUSH, DOT_QUOTE, CALL-as-LOAD, and VARIABLE instructions
// reference.
func (w *CompiledWord) addString(s string) int {
	w.Strings = append(w.Strings, s)
	return len(w.Strings) - 1
}

// emit appends an instruction and returns its index (HERE before the
// append), which back-patching needs to record jump targets.
func (w *CompiledWord) emit(op Opcode, operand int) int {
	w.Code = append(w.Code, Instruction{Op: op, Operand: operand})
	return len(w.Code) - 1
}

// here is the index the next emitted instruction will occupy.
func (w *CompiledWord) here() int { return len(w.Code) }

// patch sets the operand of the instruction at addr, used to back-patch
// forward branches once their target becomes known.
func (w *CompiledWord) patch(addr, operand int) {
	w.Code[addr].Operand = operand
}

// Dictionary is the ordered sequence of compiled words. Lookup is a
// linear scan by name; the most recently defined (non-forgotten) word
// wins. Redefinition overwrites an existing entry in place, preserving
// its index, so that other words already compiled with CALL idx against
// it silently pick up the new body (spec's late-bound-by-slot semantics).
type Dictionary struct {
	words []CompiledWord
}

// Len reports how many words are currently defined.
func (d *Dictionary) Len() int { return len(d.words) }

// At returns the word at idx, or nil if idx is out of range.
func (d *Dictionary) At(idx int) *CompiledWord {
	if idx < 0 || idx >= len(d.words) {
		return nil
	}
	return &d.words[idx]
}

// Find returns the index of the most recently defined word named name,
// or -1 if none exists.
func (d *Dictionary) Find(name string) int {
	for i := len(d.words) - 1; i >= 0; i-- {
		if d.words[i].Name == name {
			return i
		}
	}
	return -1
}

// Declare creates (or, if name already exists, replaces in place) an
// empty word named name and returns its index. Colon-definitions call
// this immediately on seeing ":", before the body is compiled, so that
// a word may recursively CALL itself by index.
func (d *Dictionary) Declare(name string, capacity int) (idx int, err error) {
	if idx = d.Find(name); idx >= 0 {
		d.words[idx] = CompiledWord{Name: name}
		return idx, nil
	}
	if len(d.words) >= capacity {
		return -1, errDictionaryFull
	}
	d.words = append(d.words, CompiledWord{Name: name})
	return len(d.words) - 1, nil
}

// Commit installs word's compiled code and strings into the entry at
// idx, called when ";" closes a colon-definition.
func (d *Dictionary) Commit(idx int, word CompiledWord) {
	d.words[idx] = word
}

// Forget truncates the dictionary so that it ends just before idx.
func (d *Dictionary) Forget(idx int) error {
	if idx < 0 || idx >= len(d.words) {
		return errForgetRange
	}
	d.words = d.words[:idx]
	return nil
}

// Names returns every word name in dictionary order, for WORDS.
func (d *Dictionary) Names() []string {
	names := make([]string, len(d.words))
	for i := range d.words {
		names[i] = d.words[i].Name
	}
	return names
}
