package core

import (
	"errors"
	"fmt"

	"github.com/sarchlab/polyderiv/isa"
	"github.com/sarchlab/polyderiv/util"
)

var (
	// ErrStepLimit is returned when the program does not halt within the
	// step budget.
	ErrStepLimit = errors.New("step limit exceeded")

	// ErrCursorUnderflow is returned when the cursor moves left of cell 0.
	ErrCursorUnderflow = errors.New("cursor moved below cell 0")

	// ErrCursorOverflow is returned when the cursor moves past the tape end.
	ErrCursorOverflow = errors.New("cursor moved past the end of the tape")
)

type machineState struct {
	Code  isa.Program
	Jumps []int

	PC    int
	Ptr   int
	Tape  []byte
	Steps int

	Halted bool
	Err    error
}

func (s *machineState) reset(tapeSize int) {
	s.PC = 0
	s.Ptr = 0
	s.Steps = 0
	s.Halted = false
	s.Err = nil
	s.Tape = make([]byte, tapeSize)
}

type instEmulator struct {
	console Console
}

// RunInst executes the instruction at PC and advances PC.
func (i instEmulator) RunInst(state *machineState) error {
	op := state.Code[state.PC]
	state.Steps++

	switch op {
	case isa.Right:
		return i.runRight(state)
	case isa.Left:
		return i.runLeft(state)
	case isa.Inc:
		state.Tape[state.Ptr]++
	case isa.Dec:
		state.Tape[state.Ptr]--
	case isa.Out:
		i.runOut(state)
	case isa.In:
		i.runIn(state)
	case isa.LoopOpen:
		if state.Tape[state.Ptr] == 0 {
			state.PC = state.Jumps[state.PC]
		}
	case isa.LoopClose:
		if state.Tape[state.Ptr] != 0 {
			state.PC = state.Jumps[state.PC]
		}
	default:
		panic(fmt.Sprintf("unknown opcode %q at %d", byte(op), state.PC))
	}

	state.PC++
	return nil
}

func (i instEmulator) runRight(state *machineState) error {
	if state.Ptr+1 >= len(state.Tape) {
		return fmt.Errorf("%w: pc %d, tape of %d cells",
			ErrCursorOverflow, state.PC, len(state.Tape))
	}
	state.Ptr++
	state.PC++
	return nil
}

func (i instEmulator) runLeft(state *machineState) error {
	if state.Ptr == 0 {
		return fmt.Errorf("%w: pc %d", ErrCursorUnderflow, state.PC)
	}
	state.Ptr--
	state.PC++
	return nil
}

func (i instEmulator) runOut(state *machineState) {
	if i.console != nil {
		i.console.Output(state.Tape[state.Ptr])
	}

	util.Trace("Inst",
		"Behavior", "Out",
		"PC", state.PC,
		"Ptr", state.Ptr,
		"Data", state.Tape[state.Ptr],
	)
}

// runIn stores the next input byte, or 0 once the input is exhausted.
func (i instEmulator) runIn(state *machineState) {
	var b byte
	if i.console != nil {
		if v, ok := i.console.Input(); ok {
			b = v
		}
	}
	state.Tape[state.Ptr] = b

	util.Trace("Inst",
		"Behavior", "In",
		"PC", state.PC,
		"Ptr", state.Ptr,
		"Data", b,
	)
}
