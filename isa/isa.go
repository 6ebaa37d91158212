// Package isa defines the instruction set of the tape machine.
//
// The machine has a linear array of wrapping 8-bit cells, a single cursor and
// eight primitive instructions. Each instruction is written as one ASCII
// symbol; every other byte in a program text is ignored.
package isa

import "fmt"

// Opcode is a primitive tape machine instruction. Its value is the symbol
// used in the program text.
type Opcode byte

const (
	Right     Opcode = '>' // move the cursor one cell right
	Left      Opcode = '<' // move the cursor one cell left
	Inc       Opcode = '+' // increment the current cell
	Dec       Opcode = '-' // decrement the current cell
	Out       Opcode = '.' // output the current cell as a character
	In        Opcode = ',' // read one character into the current cell
	LoopOpen  Opcode = '[' // skip past the matching LoopClose if the cell is zero
	LoopClose Opcode = ']' // jump back to the matching LoopOpen if the cell is nonzero
)

// Opcodes lists the instruction set in a fixed order.
var Opcodes = []Opcode{Right, Left, Inc, Dec, Out, In, LoopOpen, LoopClose}

var opcodeNames = map[Opcode]string{
	Right:     "RIGHT",
	Left:      "LEFT",
	Inc:       "INC",
	Dec:       "DEC",
	Out:       "OUT",
	In:        "IN",
	LoopOpen:  "LOOP_OPEN",
	LoopClose: "LOOP_CLOSE",
}

// Valid reports whether o is one of the eight primitives.
func (o Opcode) Valid() bool {
	_, ok := opcodeNames[o]
	return ok
}

// IsMove reports whether o moves the cursor.
func (o Opcode) IsMove() bool {
	return o == Right || o == Left
}

// IsLoop reports whether o is a loop bracket.
func (o Opcode) IsLoop() bool {
	return o == LoopOpen || o == LoopClose
}

// Name returns the mnemonic of the opcode.
func (o Opcode) Name() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%#x)", byte(o))
}

// Symbol returns the program text symbol of the opcode.
func (o Opcode) Symbol() string {
	return string(rune(o))
}

func (o Opcode) String() string {
	return o.Name()
}
