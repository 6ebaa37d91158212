// Package emit appends tape machine instructions while tracking where the
// machine cursor will be.
//
// The emitter never sees the tape. It only knows the offset of the cell the
// cursor points at after the instructions emitted so far, and inserts the
// moves needed before each instruction that targets another cell.
package emit

import (
	"fmt"

	"github.com/sarchlab/polyderiv/isa"
)

// Emitter is a cursor-tracked, append-only instruction buffer.
type Emitter struct {
	code   isa.Program
	cursor int
}

// New creates an emitter with the cursor at offset 0, where the machine
// cursor starts.
func New() *Emitter {
	return &Emitter{}
}

// Cursor returns the offset the machine cursor will be at.
func (e *Emitter) Cursor() int {
	return e.cursor
}

// Len returns the number of instructions emitted so far.
func (e *Emitter) Len() int {
	return len(e.code)
}

// Program returns a copy of the instructions emitted so far.
func (e *Emitter) Program() isa.Program {
	return append(isa.Program(nil), e.code...)
}

// Goto moves the cursor to offset with one move instruction per cell.
// Nothing is emitted if the cursor is already there.
func (e *Emitter) Goto(offset int) {
	op := isa.Right
	n := offset - e.cursor
	if n < 0 {
		op = isa.Left
		n = -n
	}

	for i := 0; i < n; i++ {
		e.code = append(e.code, op)
	}
	e.cursor = offset
}

// Emit appends one non-move instruction at the current cell.
func (e *Emitter) Emit(op isa.Opcode) {
	if !op.Valid() || op.IsMove() {
		panic(fmt.Sprintf("emit: %s is not a cell instruction", op))
	}
	e.code = append(e.code, op)
}

// EmitAt moves to offset and appends op there.
func (e *Emitter) EmitAt(offset int, op isa.Opcode) {
	e.Goto(offset)
	e.Emit(op)
}

// Repeat appends op n times at offset.
func (e *Emitter) Repeat(offset int, op isa.Opcode, n int) {
	if n < 0 {
		panic(fmt.Sprintf("emit: negative repeat count %d", n))
	}

	e.Goto(offset)
	for i := 0; i < n; i++ {
		e.Emit(op)
	}
}

// Loop emits a loop over the cell at offset. The brackets are balanced and
// both sit at offset, so the cursor is at offset whether the body runs zero
// or many times.
func (e *Emitter) Loop(offset int, body func()) {
	e.EmitAt(offset, isa.LoopOpen)
	if body != nil {
		body()
	}
	e.EmitAt(offset, isa.LoopClose)
}
