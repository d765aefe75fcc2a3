package compiler

// This file is the tape-idiom library: a set of primitive operations on
// cells, each a fixed pattern of tape instructions over temporary cells,
// ending at a documented cursor position.

// Set zeroes dest then writes the constant val. Cursor ends on dest.
func (t *Tape) Set(dest int, val uint8) {
	t.Goto(dest)
	t.emitStr("[-]")
	for i := 0; i < int(val); i++ {
		t.emit('+')
	}
}

// AddConst adjusts v(dest) by +k without zeroing first. Cursor ends on dest.
func (t *Tape) AddConst(dest int, k uint8) {
	t.Goto(dest)
	for i := 0; i < int(k); i++ {
		t.emit('+')
	}
}

// SubConst adjusts v(dest) by -k without zeroing first. Cursor ends on dest.
func (t *Tape) SubConst(dest int, k uint8) {
	t.Goto(dest)
	for i := 0; i < int(k); i++ {
		t.emit('-')
	}
}

// Move sets v(dest) = v(src) and leaves v(src) = 0 (move-destructive). No
// scratch cell is used. Cursor ends on src.
func (t *Tape) Move(src, dest int) {
	t.Goto(dest)
	t.emitStr("[-]")
	t.Goto(src)
	t.emit('[')
	t.emit('-')
	t.Goto(dest)
	t.emit('+')
	t.Goto(src)
	t.emit(']')
}

// Copy sets v(dest) = v(src), preserving v(src). Drains src into both dest
// and a scratch cell, then drains the scratch back into src. Cursor ends
// on the (freed) scratch cell.
func (t *Tape) Copy(src, dest int) error {
	temp, err := t.AllocZeroed(1)
	if err != nil {
		return err
	}

	t.Set(dest, 0)
	t.Goto(src)
	t.emitStr("[-")
	t.Goto(dest)
	t.emit('+')
	t.Goto(temp)
	t.emit('+')
	t.Goto(src)
	t.emit(']')
	t.Move(temp, src)

	return t.Free(temp)
}

// ConsumingAdd computes v(rhs) += v(lhs), consuming both operands: v(lhs)
// is zero on exit. Cursor ends on lhs.
func (t *Tape) ConsumingAdd(lhs, rhs int) {
	t.Goto(lhs)
	t.emitStr("[-")
	t.Goto(rhs)
	t.emit('+')
	t.Goto(lhs)
	t.emit(']')
}

// Add computes v(rhs) += v(lhs), preserving v(lhs) via a scratch copy.
func (t *Tape) Add(lhs, rhs int) error {
	temp, err := t.Alloc(1)
	if err != nil {
		return err
	}
	if err := t.Copy(lhs, temp); err != nil {
		return err
	}
	t.ConsumingAdd(temp, rhs)
	return t.Free(temp)
}

// ConsumingSub computes v(rhs) -= v(lhs), consuming both operands: v(lhs)
// is zero on exit. Cursor ends on lhs.
func (t *Tape) ConsumingSub(lhs, rhs int) {
	t.Goto(lhs)
	t.emitStr("[-")
	t.Goto(rhs)
	t.emit('-')
	t.Goto(lhs)
	t.emit(']')
}

// Sub computes v(rhs) -= v(lhs), preserving v(lhs) via a scratch copy.
func (t *Tape) Sub(lhs, rhs int) error {
	temp, err := t.Alloc(1)
	if err != nil {
		return err
	}
	if err := t.Copy(lhs, temp); err != nil {
		return err
	}
	t.ConsumingSub(temp, rhs)
	return t.Free(temp)
}

// ConsumingMul computes v(rhs) *= v(lhs) by repeated addition, consuming
// both operands. Uses one scratch cell as an accumulator.
func (t *Tape) ConsumingMul(lhs, rhs int) error {
	temp, err := t.Alloc(1)
	if err != nil {
		return err
	}

	t.Move(rhs, temp)
	t.Goto(lhs)
	t.emitStr("[-[-")
	if err := t.Add(temp, rhs); err != nil {
		return err
	}
	t.Goto(lhs)
	t.emit(']')
	t.ConsumingAdd(temp, rhs)
	t.Goto(lhs)
	t.emit(']')

	return t.Free(temp)
}

// Mul computes v(rhs) *= v(lhs), preserving v(lhs) via a scratch copy.
func (t *Tape) Mul(lhs, rhs int) error {
	lhsCopy, err := t.Alloc(1)
	if err != nil {
		return err
	}
	if err := t.Copy(lhs, lhsCopy); err != nil {
		return err
	}
	if err := t.ConsumingMul(lhsCopy, rhs); err != nil {
		return err
	}
	return t.Free(lhsCopy)
}

// Not writes 1 to adr if it was zero, and 0 otherwise. Relies on the
// runtime's wrap-around arithmetic (0 - 1 = 255).
func (t *Tape) Not(adr int) error {
	temp, err := t.AllocZeroed(1)
	if err != nil {
		return err
	}

	// Sets temp to 1 if adr is zero, 0 otherwise. Also zeroes adr.
	t.Goto(adr)
	t.emitStr("[[-]")
	t.Goto(temp)
	t.emit('-')
	t.Goto(adr)
	t.emit(']')
	t.Goto(temp)
	t.emit('+')

	// Moves the value back from temp into adr.
	t.emitStr("[-")
	t.Goto(adr)
	t.emit('+')
	t.Goto(temp)
	t.emit(']')

	return t.Free(temp)
}

// Eq tests whether v(lhs) == v(rhs), writing 1 or 0 into rhs. lhs is read
// through an internal copy, so its stack slot is left stale rather than
// cleared — harmless, since the expression evaluator always treats an
// operator's left operand slot as dead once the operator has been applied.
func (t *Tape) Eq(lhs, rhs int) error {
	temp, err := t.AllocZeroed(1)
	if err != nil {
		return err
	}
	if err := t.Copy(lhs, temp); err != nil {
		return err
	}
	t.ConsumingSub(temp, rhs)
	if err := t.Not(rhs); err != nil {
		return err
	}
	return t.Free(temp)
}

// Neq tests whether v(lhs) != v(rhs), writing 1 or 0 into rhs.
func (t *Tape) Neq(lhs, rhs int) error {
	if err := t.Eq(lhs, rhs); err != nil {
		return err
	}
	return t.Not(rhs)
}

// Geq tests whether v(lhs) >= v(rhs), writing 1 or 0 into rhs. v(lhs) is
// preserved (read via an internal copy); v(rhs) is overwritten.
//
// This is the classic six-cell Brainfuck comparison idiom: layout
// [0 1 0 a b 0] where a and b are copies of lhs and rhs. The idiom
// decrements both operands in lockstep while stepping a marker left
// through the two sentinel cells, so that control flow crosses [ ... ]
// loop boundaries without going through Goto. The compile-time cursor is
// therefore out of sync with the idiom's internal moves until the idiom
// manually re-sets it before returning — the one sanctioned escape hatch
// from the pointer tracker's contract.
func (t *Tape) Geq(lhs, rhs int) error {
	result, err := t.Alloc(6)
	if err != nil {
		return err
	}
	a := result + 3
	b := result + 4

	t.Set(result, 0)
	t.Set(result+1, 1)
	t.Set(result+2, 0)
	if err := t.Copy(lhs, a); err != nil {
		return err
	}
	if err := t.Copy(rhs, b); err != nil {
		return err
	}
	t.Set(result+5, 0)

	t.Goto(a)
	t.emitStr(">[>]<<")      // stops on result+2 if b=0, else back on a
	t.emitStr("[->-[>]<<]<") // ends on result+1 if a>=b, else result+2
	t.emitStr("[<+>>]<<")    // sets result to 1 if a>=b, and moves to result

	// Escape hatch: the three loop runs above leave the runtime pointer
	// on `result`, which Goto was never told about. Re-sync manually.
	t.cursor = result

	t.Move(result, rhs)
	return t.Free(result)
}

// Leq tests whether v(lhs) <= v(rhs), writing 1 or 0 into rhs. Defined as
// Geq(rhs, lhs) followed by a move into rhs — this matches the evaluator's
// expectation that comparisons write into their second argument, and
// leaks no scratch cell.
func (t *Tape) Leq(lhs, rhs int) error {
	if err := t.Geq(rhs, lhs); err != nil {
		return err
	}
	t.Move(lhs, rhs)
	return nil
}

// Gt tests whether v(lhs) > v(rhs), writing 1 or 0 into rhs.
func (t *Tape) Gt(lhs, rhs int) error {
	if err := t.Leq(lhs, rhs); err != nil {
		return err
	}
	return t.Not(rhs)
}

// Lt tests whether v(lhs) < v(rhs), writing 1 or 0 into rhs.
func (t *Tape) Lt(lhs, rhs int) error {
	if err := t.Geq(lhs, rhs); err != nil {
		return err
	}
	return t.Not(rhs)
}
