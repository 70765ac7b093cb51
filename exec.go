package main

import (
	"os"

	"github.com/mistlab/bigforth/internal/bigint"
	"github.com/pkg/errors"
)

// executeWord runs the dictionary word at idx as a fresh activation
// sharing the same value/loop/variable state -- the recursive case for
// nested CALL and for top-level execution of a known word.
func (in *Interp) executeWord(idx int) {
	word := in.dict.At(idx)
	if word == nil {
		in.reportError(errInvalidCall)
		return
	}
	in.executeCode(word)
}

// executeOpcode runs a single opcode with no string pool and no
// branch targets of its own, the ephemeral one-instruction word the
// outer interpreter builds for a bare primitive token typed at the
// prompt.
func (in *Interp) executeOpcode(op Opcode) {
	w := &CompiledWord{Code: []Instruction{{Op: op}}}
	in.executeCode(w)
}

// executeCode runs word's instruction stream from ip 0 until ip runs
// off the end or the error flag is set, per spec.md §4.3.
func (in *Interp) executeCode(word *CompiledWord) {
	for ip := 0; ip < len(word.Code) && !in.errFlag; ip++ {
		in.tracef("exec %s %d", word.Code[ip].Op, word.Code[ip].Operand)
		in.execInstr(word, &ip)
	}
}

func (in *Interp) execInstr(word *CompiledWord, ip *int) {
	instr := word.Code[*ip]
	switch instr.Op {
	case OpPush:
		in.execPush(word, instr.Operand)
	case OpAdd:
		in.binop(func(b, a bigint.Int) bigint.Int { return b.Add(a) })
	case OpSub:
		in.binop(func(b, a bigint.Int) bigint.Int { return b.Sub(a) })
	case OpMul:
		in.binop(func(b, a bigint.Int) bigint.Int { return b.Mul(a) })
	case OpDiv:
		in.execDiv()
	case OpDup:
		in.execDup()
	case OpSwap:
		in.execSwap()
	case OpOver:
		in.execOver()
	case OpRot:
		in.execRot()
	case OpDrop:
		if _, err := in.values.pop(); err != nil {
			in.reportError(err)
		}
	case OpEq:
		in.compareop(func(c int) bool { return c == 0 })
	case OpLt:
		in.compareop(func(c int) bool { return c < 0 })
	case OpGt:
		in.compareop(func(c int) bool { return c > 0 })
	case OpAnd:
		in.logicop(func(b, a bool) bool { return b && a })
	case OpOr:
		in.logicop(func(b, a bool) bool { return b || a })
	case OpNot:
		in.execNot()
	case OpI:
		in.execI()
	case OpDo:
		in.execDo(word, ip)
	case OpLoop:
		in.execLoop(ip)
	case OpBranchFalse:
		in.execBranchFalse(ip, instr.Operand)
	case OpBranch:
		*ip = instr.Operand - 1
	case OpCall:
		in.execCall(word, instr.Operand)
	case OpEnd:
		// no-op: the loop's bound already stops execution
	case OpDotQuote:
		in.execDotQuote(word, instr.Operand)
	case OpCR:
		in.printf("\n")
	case OpDotS:
		in.printStack()
	case OpFlush:
		in.values.clear()
	case OpDot:
		in.execDot()
	case OpCase:
		// no-op marker
	case OpOf:
		in.execOf(ip, instr.Operand)
	case OpEndOf:
		*ip = instr.Operand - 1
	case OpEndCase:
		if _, err := in.values.pop(); err != nil {
			in.reportError(err)
		}
	case OpExit:
		*ip = len(word.Code) - 1
	case OpBegin:
		// no-op marker
	case OpWhile:
		in.execBranchFalse(ip, instr.Operand)
	case OpRepeat:
		*ip = instr.Operand - 1
	case OpBitAnd:
		in.binop(func(b, a bigint.Int) bigint.Int { return b.And(a) })
	case OpBitOr:
		in.binop(func(b, a bigint.Int) bigint.Int { return b.Or(a) })
	case OpBitXor:
		in.binop(func(b, a bigint.Int) bigint.Int { return b.Xor(a) })
	case OpBitNot:
		in.execBitNot()
	case OpLShift:
		in.execShift(true)
	case OpRShift:
		in.execShift(false)
	case OpWords:
		in.execWords()
	case OpForget:
		if err := in.dict.Forget(instr.Operand); err != nil {
			in.reportError(err)
		}
	case OpVariable:
		in.execVariableDecl(word, instr.Operand)
	case OpFetch:
		in.execFetch()
	case OpStore:
		in.execStore()
	case OpPick:
		in.execPick()
	}
}

// execPush implements OP_PUSH's dual mode: an operand that indexes a
// valid string in the word's pool is parsed as decimal text (numeric
// literals, which are always compiled this way); otherwise the operand
// itself is the value to push (the VARIABLE accessor body, whose
// single PUSH carries the variable's index directly and has no string
// pool entry at all, per forth_gmp.c's addCompiledWord call for it).
func (in *Interp) execPush(word *CompiledWord, operand int) {
	if operand >= 0 && operand < len(word.Strings) {
		v, ok := bigint.Parse(word.Strings[operand])
		if !ok {
			in.reportError(errNumberParse)
			return
		}
		in.pushValue(v)
		return
	}
	in.pushValue(bigint.FromInt64(int64(operand)))
}

func (in *Interp) pushValue(v bigint.Int) {
	if err := in.values.push(v); err != nil {
		in.reportError(err)
	}
}

func (in *Interp) popValue() (bigint.Int, bool) {
	v, err := in.values.pop()
	if err != nil {
		in.reportError(err)
		return bigint.Zero, false
	}
	return v, true
}

// binop pops a then b and pushes op(b, a), matching ADD/SUB/MUL and the
// bitwise ops' "pop a, pop b, push op(b,a)" convention.
func (in *Interp) binop(op func(b, a bigint.Int) bigint.Int) {
	a, ok := in.popValue()
	if !ok {
		return
	}
	b, ok := in.popValue()
	if !ok {
		return
	}
	in.pushValue(op(b, a))
}

func (in *Interp) compareop(pred func(cmp int) bool) {
	a, ok := in.popValue()
	if !ok {
		return
	}
	b, ok := in.popValue()
	if !ok {
		return
	}
	if pred(b.Cmp(a)) {
		in.pushValue(bigint.FromInt64(1))
	} else {
		in.pushValue(bigint.FromInt64(0))
	}
}

func (in *Interp) logicop(pred func(b, a bool) bool) {
	a, ok := in.popValue()
	if !ok {
		return
	}
	b, ok := in.popValue()
	if !ok {
		return
	}
	if pred(!b.IsZero(), !a.IsZero()) {
		in.pushValue(bigint.FromInt64(1))
	} else {
		in.pushValue(bigint.FromInt64(0))
	}
}

func (in *Interp) execNot() {
	a, ok := in.popValue()
	if !ok {
		return
	}
	if a.IsZero() {
		in.pushValue(bigint.FromInt64(1))
	} else {
		in.pushValue(bigint.FromInt64(0))
	}
}

func (in *Interp) execDiv() {
	a, ok := in.popValue()
	if !ok {
		return
	}
	b, ok := in.popValue()
	if !ok {
		return
	}
	if a.IsZero() {
		in.reportError(errDivByZero)
		return
	}
	in.pushValue(b.Quo(a))
}

func (in *Interp) execDup() {
	a, ok := in.popValue()
	if !ok {
		return
	}
	in.pushValue(a)
	in.pushValue(a)
}

func (in *Interp) execSwap() {
	a, ok := in.popValue()
	if !ok {
		return
	}
	b, ok := in.popValue()
	if !ok {
		return
	}
	in.pushValue(a)
	in.pushValue(b)
}

func (in *Interp) execOver() {
	a, ok := in.popValue()
	if !ok {
		return
	}
	b, ok := in.popValue()
	if !ok {
		return
	}
	in.pushValue(b)
	in.pushValue(a)
	in.pushValue(b)
}

func (in *Interp) execRot() {
	c, ok := in.popValue()
	if !ok {
		return
	}
	b, ok := in.popValue()
	if !ok {
		return
	}
	a, ok := in.popValue()
	if !ok {
		return
	}
	in.pushValue(b)
	in.pushValue(c)
	in.pushValue(a)
}

func (in *Interp) execI() {
	f, ok := in.loops.top()
	if !ok {
		in.reportError(errNotInLoop)
		return
	}
	in.pushValue(f.index)
}

// execDo implements DO: the stack holds "limit start DO", start pushed
// last and popped first, matching forth_gmp.c's OP_DO (pop b=start,
// pop a=limit). When start is already at or past limit the body runs
// zero times -- forth_gmp.c's literal OP_DO/OP_LOOP pair does not check
// this and always runs the body once, but spec.md §8 states the zero-
// iteration boundary explicitly, so DO scans forward to the matching
// LOOP and jumps past it instead of pushing a loop frame.
func (in *Interp) execDo(word *CompiledWord, ip *int) {
	start, ok := in.popValue()
	if !ok {
		return
	}
	limit, ok := in.popValue()
	if !ok {
		return
	}
	if start.Cmp(limit) >= 0 {
		if end, ok := matchingLoop(word, *ip); ok {
			*ip = end
			return
		}
		in.reportError(errors.New("DO without matching LOOP"))
		return
	}
	if err := in.loops.push(loopFrame{index: start, limit: limit, returnAddr: *ip + 1}); err != nil {
		in.reportError(err)
	}
}

// matchingLoop scans forward from the instruction after DO (at doIP) for
// the OP_LOOP that closes it, tracking nested DO/LOOP pairs so an inner
// loop's LOOP doesn't match an outer DO.
func matchingLoop(word *CompiledWord, doIP int) (int, bool) {
	depth := 0
	for i := doIP + 1; i < len(word.Code); i++ {
		switch word.Code[i].Op {
		case OpDo:
			depth++
		case OpLoop:
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}
	return 0, false
}

func (in *Interp) execLoop(ip *int) {
	f, ok := in.loops.top()
	if !ok {
		in.reportError(errors.New("LOOP without DO"))
		return
	}
	f.index = f.index.Inc()
	if f.index.Cmp(f.limit) < 0 {
		*ip = f.returnAddr - 1
	} else {
		in.loops.pop()
	}
}

func (in *Interp) execBranchFalse(ip *int, operand int) {
	a, ok := in.popValue()
	if !ok {
		return
	}
	if a.IsZero() {
		*ip = operand - 1
	}
}

func (in *Interp) execCall(word *CompiledWord, operand int) {
	if operand >= 0 && operand < in.dict.Len() {
		in.executeWord(operand)
		return
	}
	if operand >= 0 && operand < len(word.Strings) {
		in.loadCompiledFile(word.Strings[operand])
		return
	}
	in.reportError(errInvalidCall)
}

// loadCompiledFile implements the CALL-as-LOAD path: unlike top-level
// LOAD (tokenize.go), a failure here sets the runtime error flag, per
// forth_gmp.c's executeInstruction OP_CALL branch.
func (in *Interp) loadCompiledFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		in.reportError(errFileOpen)
		return
	}
	defer f.Close()
	in.interpretFile(f)
}

func (in *Interp) execDotQuote(word *CompiledWord, operand int) {
	if operand < 0 || operand >= len(word.Strings) {
		in.reportError(errors.New("Invalid string index for .\""))
		return
	}
	in.printf("%s", word.Strings[operand])
}

func (in *Interp) execDot() {
	a, ok := in.popValue()
	if !ok {
		return
	}
	in.printf("%s\n", a.String())
}

func (in *Interp) execOf(ip *int, operand int) {
	a, ok := in.popValue()
	if !ok {
		return
	}
	b, ok := in.popValue()
	if !ok {
		return
	}
	if a.Cmp(b) != 0 {
		in.pushValue(b)
		*ip = operand - 1
	}
}

func (in *Interp) execBitNot() {
	a, ok := in.popValue()
	if !ok {
		return
	}
	in.pushValue(a.Not())
}

func (in *Interp) execShift(left bool) {
	n, ok := in.popValue()
	if !ok {
		return
	}
	a, ok := in.popValue()
	if !ok {
		return
	}
	small, ok := n.Small()
	if !ok || small < 0 {
		in.reportError(errors.New("Invalid shift amount"))
		return
	}
	if left {
		in.pushValue(a.Lsh(uint(small)))
	} else {
		in.pushValue(a.Rsh(uint(small)))
	}
}

// execWords matches forth_gmp.c's OP_WORDS: every name is followed by
// a trailing space, even the last, before the final newline.
func (in *Interp) execWords() {
	names := in.dict.Names()
	var b []byte
	for _, n := range names {
		b = append(b, n...)
		b = append(b, ' ')
	}
	b = append(b, '\n')
	in.printf("%s", string(b))
}

func (in *Interp) execVariableDecl(word *CompiledWord, operand int) {
	if operand < 0 || operand >= len(word.Strings) {
		in.reportError(errInvalidAddress)
		return
	}
	name := word.Strings[operand]
	varIdx, err := in.vars.Define(name)
	if err != nil {
		in.reportError(err)
		return
	}
	accessor := CompiledWord{Name: name, Code: []Instruction{{Op: OpPush, Operand: varIdx}}}
	idx, err := in.dict.Declare(name, dictionaryCapacity)
	if err != nil {
		in.reportError(err)
		return
	}
	in.dict.Commit(idx, accessor)
}

func (in *Interp) execFetch() {
	a, ok := in.popValue()
	if !ok {
		return
	}
	idx, ok := a.Small()
	if !ok || idx < 0 {
		in.reportError(errInvalidAddress)
		return
	}
	v, err := in.vars.Fetch(idx)
	if err != nil {
		in.reportError(err)
		return
	}
	in.pushValue(v)
}

// execStore implements STORE: the index is on top of the stack (pushed
// last, e.g. by the VARIABLE accessor word), the value to write below
// it -- `42 X !` stores 42 into the cell X names.
func (in *Interp) execStore() {
	addr, ok := in.popValue()
	if !ok {
		return
	}
	val, ok := in.popValue()
	if !ok {
		return
	}
	idx, ok := addr.Small()
	if !ok || idx < 0 {
		in.reportError(errInvalidAddress)
		return
	}
	if err := in.vars.Store(idx, val); err != nil {
		in.reportError(err)
	}
}

func (in *Interp) execPick() {
	n, ok := in.popValue()
	if !ok {
		return
	}
	small, ok := n.Small()
	if !ok || small < 0 {
		in.reportError(errInvalidPick)
		return
	}
	v, ok := in.values.peek(small)
	if !ok {
		in.reportError(errInvalidPick)
		return
	}
	in.pushValue(v)
}
