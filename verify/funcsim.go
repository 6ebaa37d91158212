package verify

import (
	"fmt"

	"github.com/sarchlab/polyderiv/isa"
)

// FunctionalSimulator executes a program without any timing model
type FunctionalSimulator struct {
	program isa.Program
	tape    *TapeInfo
	cells   []byte

	ptr    int
	pc     int
	steps  int
	input  []byte
	inPos  int
	output []byte

	TraceOpPre func(pc, ptr int, op isa.Opcode, cell byte)
}

// NewFunctionalSimulator creates a new functional simulator
func NewFunctionalSimulator(p isa.Program, tape *TapeInfo) *FunctionalSimulator {
	if tape == nil {
		tape = &TapeInfo{Cells: DefaultTapeCells}
	}

	n := tape.Cells
	if n <= 0 {
		n = DefaultTapeCells
	}

	return &FunctionalSimulator{
		program: p,
		tape:    tape,
		cells:   make([]byte, n),
	}
}

// PreloadCell sets a cell before the program runs
func (fs *FunctionalSimulator) PreloadCell(offset int, value byte) error {
	if offset < 0 || offset >= len(fs.cells) {
		return fmt.Errorf("invalid cell offset %d", offset)
	}
	fs.cells[offset] = value
	return nil
}

// GetCellValue retrieves a cell value (0 for offsets off the tape)
func (fs *FunctionalSimulator) GetCellValue(offset int) byte {
	if offset < 0 || offset >= len(fs.cells) {
		return 0
	}
	return fs.cells[offset]
}

// Snapshot copies the first n cells of the tape
func (fs *FunctionalSimulator) Snapshot(n int) []byte {
	if n > len(fs.cells) {
		n = len(fs.cells)
	}
	return append([]byte(nil), fs.cells[:n]...)
}

// Output returns everything the program has written so far
func (fs *FunctionalSimulator) Output() string {
	return string(fs.output)
}

// Steps returns the number of instructions executed
func (fs *FunctionalSimulator) Steps() int {
	return fs.steps
}

// Pointer returns the cursor position
func (fs *FunctionalSimulator) Pointer() int {
	return fs.ptr
}

// Run executes the program on input for up to maxSteps instructions.
// Output produced before an error is kept.
func (fs *FunctionalSimulator) Run(input []byte, maxSteps int) error {
	jumps, err := fs.program.MatchBrackets()
	if err != nil {
		return err
	}

	fs.input = input
	fs.inPos = 0

	for fs.pc < len(fs.program) {
		if fs.steps >= maxSteps {
			return fmt.Errorf("%w: %d steps, output so far %q", ErrStepLimit, maxSteps, fs.output)
		}
		fs.steps++

		op := fs.program[fs.pc]
		if fs.TraceOpPre != nil {
			fs.TraceOpPre(fs.pc, fs.ptr, op, fs.cells[fs.ptr])
		}

		switch op {
		case isa.Right:
			fs.ptr++
			if fs.ptr >= len(fs.cells) {
				return fmt.Errorf("%w at step %d", ErrCursorOverflow, fs.steps)
			}
		case isa.Left:
			fs.ptr--
			if fs.ptr < 0 {
				return fmt.Errorf("%w at step %d", ErrCursorUnderflow, fs.steps)
			}
		case isa.Inc:
			fs.cells[fs.ptr]++
		case isa.Dec:
			fs.cells[fs.ptr]--
		case isa.Out:
			fs.output = append(fs.output, fs.cells[fs.ptr])
		case isa.In:
			fs.cells[fs.ptr] = fs.readByte()
		case isa.LoopOpen:
			if fs.cells[fs.ptr] == 0 {
				fs.pc = jumps[fs.pc]
			}
		case isa.LoopClose:
			if fs.cells[fs.ptr] != 0 {
				fs.pc = jumps[fs.pc]
			}
		}
		fs.pc++
	}

	return nil
}

func (fs *FunctionalSimulator) readByte() byte {
	if fs.inPos >= len(fs.input) {
		return 0
	}
	b := fs.input[fs.inPos]
	fs.inPos++
	return b
}

// Execute runs p on a fresh default tape and returns its output.
func Execute(p isa.Program, input string, maxSteps int) (string, error) {
	fs := NewFunctionalSimulator(p, nil)
	err := fs.Run([]byte(input), maxSteps)
	return fs.Output(), err
}
